package core

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Monitor: mutex + condition variable with timed waits
// =============================================================================

// Monitor combines one mutex and one condition variable into a single
// synchronization object. It supports exclusive locking, indefinite and timed
// waits, and notify/notifyAll wakeups.
//
// Contract:
//   - The lock is NOT reentrant. A goroutine that already holds the lock and
//     calls Lock again is failed fast with a panic rather than deadlocking.
//   - Wait, WaitTimeout, Notify, NotifyAll and Unlock may only be called
//     while holding the lock; violations panic immediately (programming
//     error, never silent misbehavior).
//   - Wait may return spuriously. Callers must re-check their predicate in a
//     loop; the Monitor does not guarantee the predicate holds on return.
//   - A Monitor must be shared as a *Monitor handle and never copied after
//     first use (it owns its internal primitives and waiter queue).
//   - Abandoning a Monitor while goroutines are still blocked in Wait is
//     undefined: the waiters pin the Monitor in memory, but no further
//     notify will ever reach them. Notify all waiters out before dropping
//     the last handle.
//
// The standard library's sync.Cond has no timed wait, so the Monitor is built
// on a mutex plus an explicit FIFO queue of per-waiter channels: Notify
// closes the oldest waiter's channel, NotifyAll closes every queued channel,
// and a timed waiter races its timer against its channel.
type Monitor struct {
	mu sync.Mutex

	// owner is the goroutine ID of the current lock holder, 0 when unheld.
	// Written only on lock transitions; read by the misuse assertions.
	owner atomic.Uint64

	// waiters is the FIFO queue of blocked waiters. Guarded by mu.
	waiters []chan struct{}
}

// NewMonitor creates a Monitor ready for use.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Lock acquires the Monitor's lock, blocking until it is available.
// Recursive acquisition by the holding goroutine panics.
func (m *Monitor) Lock() {
	if gid := goid(); m.owner.Load() == gid {
		panic(fmt.Sprintf("core: monitor Lock is not reentrant (goroutine %d already holds the lock)", gid))
	}
	m.mu.Lock()
	m.owner.Store(goid())
}

// Unlock releases the Monitor's lock. Panics if the calling goroutine does
// not hold it.
func (m *Monitor) Unlock() {
	m.assertOwner("Unlock")
	m.owner.Store(0)
	m.mu.Unlock()
}

// Wait blocks the calling goroutine until another goroutine calls Notify or
// NotifyAll on the same Monitor. The caller must hold the lock; Wait releases
// it atomically with blocking and reacquires it before returning.
//
// A return from Wait does not imply anything about protected state; callers
// loop:
//
//	m.Lock()
//	for !predicate() {
//		m.Wait()
//	}
//	// ... predicate holds, lock held ...
//	m.Unlock()
func (m *Monitor) Wait() {
	m.assertOwner("Wait")
	ch := make(chan struct{})
	m.waiters = append(m.waiters, ch)

	m.owner.Store(0)
	m.mu.Unlock()

	<-ch

	m.mu.Lock()
	m.owner.Store(goid())
}

// WaitTimeout behaves like Wait but gives up after at least timeout has
// elapsed, returning ErrTimedOut. A nil return means the wake was
// notify-driven (or spurious) and the caller should re-check its predicate.
//
// The timeout is a floor, not a ceiling: on a busy system the elapsed time
// before WaitTimeout returns may exceed the request by an arbitrary amount.
// No upper bound is guaranteed.
//
// A timeout <= 0 means "wait forever": the call degenerates to Wait and
// never times out on its own.
func (m *Monitor) WaitTimeout(timeout time.Duration) error {
	m.assertOwner("WaitTimeout")
	if timeout <= 0 {
		m.Wait()
		return nil
	}

	ch := make(chan struct{})
	m.waiters = append(m.waiters, ch)

	m.owner.Store(0)
	m.mu.Unlock()

	timer := time.NewTimer(timeout)
	timedOut := false
	select {
	case <-ch:
		timer.Stop()
	case <-timer.C:
		timedOut = true
	}

	m.mu.Lock()
	m.owner.Store(goid())

	if timedOut {
		// A notify may have raced the timer. If our channel was already
		// closed we consumed that wakeup, so report a normal wake instead
		// of dropping it on the floor.
		select {
		case <-ch:
			timedOut = false
		default:
			m.removeWaiter(ch)
		}
	}

	if timedOut {
		return ErrTimedOut
	}
	return nil
}

// Notify wakes at most one goroutine blocked in Wait/WaitTimeout on this
// Monitor. Which waiter wakes is unspecified. The caller must hold the lock;
// calling Notify without it panics (it would race a waiter checking its
// predicate and lose wakeups).
func (m *Monitor) Notify() {
	m.assertOwner("Notify")
	if len(m.waiters) == 0 {
		return
	}
	close(m.waiters[0])
	m.waiters = m.waiters[1:]
}

// NotifyAll wakes every goroutine currently blocked in Wait/WaitTimeout on
// this Monitor. Each woken goroutine competes independently to reacquire the
// lock. The caller must hold the lock.
func (m *Monitor) NotifyAll() {
	m.assertOwner("NotifyAll")
	for _, ch := range m.waiters {
		close(ch)
	}
	m.waiters = nil
}

// assertOwner panics unless the calling goroutine holds the lock.
func (m *Monitor) assertOwner(op string) {
	if m.owner.Load() != goid() {
		panic(fmt.Sprintf("core: monitor %s called without holding the lock", op))
	}
}

// removeWaiter unregisters a timed-out waiter. Caller holds the lock.
func (m *Monitor) removeWaiter(ch chan struct{}) {
	for i, w := range m.waiters {
		if w == ch {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			return
		}
	}
}

// =============================================================================
// Synchronized: scoped mutual exclusion
// =============================================================================

// Synchronized runs body while holding m's lock, releasing it on every exit
// path including panic. It is the scoped-guard form of Lock/Unlock:
//
//	Synchronized(m, func() {
//		// ... critical section, lock held ...
//	})
//
// body may call m.Wait, m.WaitTimeout, m.Notify and m.NotifyAll directly.
func Synchronized(m *Monitor, body func()) {
	m.Lock()
	defer m.Unlock()
	body()
}

// =============================================================================
// Guarded: state reachable only under the lock
// =============================================================================

// Guarded couples a Monitor with the value it protects, making it
// structurally impossible to touch the value without holding the lock: the
// value is only ever exposed to closures that run inside the critical
// section.
type Guarded[T any] struct {
	mon   *Monitor
	value T
}

// NewGuarded wraps initial under mon's protection. A nil mon allocates a
// fresh Monitor.
func NewGuarded[T any](mon *Monitor, initial T) *Guarded[T] {
	if mon == nil {
		mon = NewMonitor()
	}
	return &Guarded[T]{mon: mon, value: initial}
}

// Monitor returns the protecting Monitor, for callers that coordinate other
// state or wakeups on the same lock.
func (g *Guarded[T]) Monitor() *Monitor {
	return g.mon
}

// Do runs body with exclusive access to the protected value. body may call
// the Monitor's Wait/Notify methods; the lock is held for its full duration.
func (g *Guarded[T]) Do(body func(*T)) {
	Synchronized(g.mon, func() {
		body(&g.value)
	})
}

// WaitFor blocks until pred holds for the protected value, re-checking on
// every wakeup, then runs body with the lock still held. A nil body just
// waits for the predicate.
func (g *Guarded[T]) WaitFor(pred func(*T) bool, body func(*T)) {
	Synchronized(g.mon, func() {
		for !pred(&g.value) {
			g.mon.Wait()
		}
		if body != nil {
			body(&g.value)
		}
	})
}
