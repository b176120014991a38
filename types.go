package conckit

import "github.com/Swind/go-concurrency-kit/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the conckit package for most use cases.

// Runnable is the unit of work executed on a dedicated thread of control
type Runnable = core.Runnable

// RunnableFunc adapts a plain function to Runnable
type RunnableFunc = core.RunnableFunc

// Monitor is a mutex + condition variable supporting (timed) wait/notify
type Monitor = core.Monitor

// Guarded couples a Monitor with the state it protects
type Guarded[T any] = core.Guarded[T]

// Thread wraps a Runnable with identity, lifecycle state and start/join
type Thread = core.Thread

// ThreadFactory mints Thread instances bound to Runnables
type ThreadFactory = core.ThreadFactory

// ThreadState is the lifecycle state of a thread of control
type ThreadState = core.ThreadState

// Lifecycle is the launcher/worker start/stop rendezvous backbone
type Lifecycle = core.Lifecycle

// ThreadPriority is the best-effort scheduling hint
type ThreadPriority = core.ThreadPriority

// Logger is the structured logging interface used by the factory
type Logger = core.Logger

// ThreadMetrics is the lifecycle metrics interface used by the factory
type ThreadMetrics = core.ThreadMetrics

// PanicHandler handles Runnable panics recovered on the spawned goroutine
type PanicHandler = core.PanicHandler

// Lifecycle state constants
const (
	ThreadUninitialized ThreadState = core.ThreadUninitialized
	ThreadStarting      ThreadState = core.ThreadStarting
	ThreadStarted       ThreadState = core.ThreadStarted
	ThreadStopping      ThreadState = core.ThreadStopping
	ThreadStopped       ThreadState = core.ThreadStopped
)

// Priority constants
const (
	ThreadPriorityLow    ThreadPriority = core.ThreadPriorityLow
	ThreadPriorityNormal ThreadPriority = core.ThreadPriorityNormal
	ThreadPriorityHigh   ThreadPriority = core.ThreadPriorityHigh
)

// Error kinds surfaced to callers
var (
	ErrTimedOut             = core.ErrTimedOut
	ErrResourceExhausted    = core.ErrResourceExhausted
	ErrNilRunnable          = core.ErrNilRunnable
	ErrThreadAlreadyStarted = core.ErrThreadAlreadyStarted
	ErrThreadAlreadyJoined  = core.ErrThreadAlreadyJoined
	ErrThreadDetached       = core.ErrThreadDetached
	ErrThreadNotStarted     = core.ErrThreadNotStarted
)

// NewMonitor creates a Monitor ready for use.
func NewMonitor() *Monitor {
	return core.NewMonitor()
}

// NewGuarded wraps initial under mon's protection; a nil mon allocates a
// fresh Monitor.
func NewGuarded[T any](mon *Monitor, initial T) *Guarded[T] {
	return core.NewGuarded(mon, initial)
}

// NewLifecycle creates a Lifecycle coordinating on mon; a nil mon allocates
// a dedicated Monitor.
func NewLifecycle(mon *Monitor) *Lifecycle {
	return core.NewLifecycle(mon)
}

// NewThreadFactory creates a factory minting joinable, normal-priority
// threads with no live-thread limit.
func NewThreadFactory() *ThreadFactory {
	return core.NewThreadFactory()
}

// Synchronized runs body while holding m's lock, releasing it on every exit
// path.
func Synchronized(m *Monitor, body func()) {
	core.Synchronized(m, body)
}
