package core

import "runtime"

// goid extracts the current goroutine's ID by parsing the first line of its
// stack trace ("goroutine 123 [running]:"). This is the universal slow path
// (~1-2µs per call, dominated by runtime.Stack); it is only used on the
// Monitor's lock-transition and assertion paths, never on hot data paths.
func goid() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]

	// Skip the "goroutine " prefix, then accumulate digits.
	const prefix = "goroutine "
	var id uint64
	for i := len(prefix); i < len(b); i++ {
		if b[i] < '0' || b[i] > '9' {
			break
		}
		id = id*10 + uint64(b[i]-'0')
	}
	return id
}
