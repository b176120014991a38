package core

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

// nextThreadID mints process-wide thread identities. IDs are stable for a
// Thread's lifetime and used only for diagnostics; under concurrent factory
// use they carry no ordering guarantee relative to creation order.
var nextThreadID atomic.Uint64

// Thread wraps a Runnable with an identity, a lifecycle state and
// start/join operations, independent of the underlying goroutine machinery.
// Threads are minted by a ThreadFactory and must not be constructed
// directly; the zero Thread is not usable.
//
// A Thread is either joinable (the caller may block in Join until the
// Runnable returns) or detached (fire-and-forget, resources reclaimed
// autonomously on completion).
type Thread struct {
	id       uint64
	runnable Runnable

	// Attributes snapshotted from the factory at creation time.
	detached  bool
	stackSize int
	priority  ThreadPriority

	lifecycle *Lifecycle
	done      chan struct{}
	joined    atomic.Bool

	factory *ThreadFactory
}

// ID returns the thread's unique identity.
func (t *Thread) ID() uint64 {
	return t.id
}

// Runnable returns the bound unit of work.
func (t *Thread) Runnable() Runnable {
	return t.runnable
}

// Detached reports whether the thread is detached.
func (t *Thread) Detached() bool {
	return t.detached
}

// StackSize returns the configured stack-size hint in bytes (0 = default).
// The Go runtime sizes goroutine stacks dynamically, so the hint is
// best-effort and recorded for diagnostics only.
func (t *Thread) StackSize() int {
	return t.stackSize
}

// Priority returns the configured scheduling priority hint. The Go runtime
// schedules goroutines without priorities, so the hint is best-effort and
// recorded for diagnostics only.
func (t *Thread) Priority() ThreadPriority {
	return t.priority
}

// State returns the thread's current lifecycle state.
func (t *Thread) State() ThreadState {
	return t.lifecycle.State()
}

// Start brings the thread of control into existence and invokes the bound
// Runnable's Run on it. Start never blocks waiting for the new thread to
// begin executing; launchers that need that rendezvous build it from a
// Monitor (see Lifecycle).
//
// Errors:
//   - ErrResourceExhausted (wrapped with the thread ID) when the factory's
//     live-thread limit refuses another thread of control. The failure is
//     reported for exactly this attempt; previously started threads are
//     unaffected.
//   - ErrThreadAlreadyStarted on a second Start.
func (t *Thread) Start() error {
	if err := t.factory.reserve(t.id); err != nil {
		return err
	}
	if !t.lifecycle.MarkStarting() {
		t.factory.unreserve()
		return fmt.Errorf("thread %d: %w", t.id, ErrThreadAlreadyStarted)
	}

	go t.main()
	return nil
}

// Join blocks the calling goroutine until the thread's Runnable has
// returned. Only joinable threads may be joined, at most once: the second
// call returns ErrThreadAlreadyJoined rather than blocking again.
func (t *Thread) Join() error {
	if t.detached {
		return fmt.Errorf("thread %d: %w", t.id, ErrThreadDetached)
	}
	if t.lifecycle.State() == ThreadUninitialized {
		return fmt.Errorf("thread %d: %w", t.id, ErrThreadNotStarted)
	}
	if t.joined.Swap(true) {
		return fmt.Errorf("thread %d: %w", t.id, ErrThreadAlreadyJoined)
	}
	<-t.done
	return nil
}

// main is the body of the spawned goroutine. It drives the worker side of
// the lifecycle state machine and releases the factory's live-thread slot
// on every exit path.
func (t *Thread) main() {
	t.lifecycle.MarkStarted()
	t.factory.threadStarted(t)
	defer t.finish()

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 8192)
			stack = stack[:runtime.Stack(stack, false)]
			t.factory.handlePanic(t.id, r, stack)
		}
	}()

	t.runnable.Run()
}

// finish moves the thread to its terminal state and wakes joiners. The
// factory's live-thread slot is released before the done channel closes, so
// a caller returning from Join can immediately Start another thread against
// the same limit.
func (t *Thread) finish() {
	t.lifecycle.RequestStop()
	t.lifecycle.MarkStopped()
	t.factory.threadFinished(t)
	close(t.done)
}
