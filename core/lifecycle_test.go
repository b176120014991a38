package core

import (
	"errors"
	"testing"
	"time"
)

// TestThreadState_String verifies state names for diagnostics
func TestThreadState_String(t *testing.T) {
	cases := map[ThreadState]string{
		ThreadUninitialized: "uninitialized",
		ThreadStarting:      "starting",
		ThreadStarted:       "started",
		ThreadStopping:      "stopping",
		ThreadStopped:       "stopped",
		ThreadState(99):     "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("ThreadState(%d).String(): got = %q, want %q", state, got, want)
		}
	}
}

// TestLifecycle_GuardedTransitions verifies transitions are guarded, not forced
// Given: a Lifecycle in various states
// When: an actor drives a transition whose predecessor state does not hold
// Then: the transition reports false and the state is unchanged
func TestLifecycle_GuardedTransitions(t *testing.T) {
	lc := NewLifecycle(nil)

	// Stop before ever starting: no action, state unchanged.
	if lc.RequestStop() {
		t.Fatal("RequestStop on uninitialized lifecycle should not apply")
	}
	if got := lc.State(); got != ThreadUninitialized {
		t.Fatalf("state after rejected RequestStop: got = %v, want uninitialized", got)
	}

	// Worker marking started before the launcher marked starting.
	if lc.MarkStarted() {
		t.Fatal("MarkStarted from uninitialized should not apply")
	}

	// The canonical order applies cleanly.
	if !lc.MarkStarting() {
		t.Fatal("MarkStarting from uninitialized should apply")
	}
	if lc.MarkStarting() {
		t.Fatal("second MarkStarting should not apply")
	}
	if !lc.MarkStarted() {
		t.Fatal("MarkStarted from starting should apply")
	}
	if !lc.RequestStop() {
		t.Fatal("RequestStop from started should apply")
	}
	if !lc.MarkStopped() {
		t.Fatal("MarkStopped from stopping should apply")
	}
	if got := lc.State(); got != ThreadStopped {
		t.Fatalf("final state: got = %v, want stopped", got)
	}
}

// TestLifecycle_SynchronizedStartStop verifies the launcher/worker handshake
// Given: a worker thread driving the worker side of a shared Lifecycle
// When: the launcher starts it, awaits Started, requests a stop and awaits
// Stopped
// Then: every rendezvous completes without hanging and the final state is
// Stopped
func TestLifecycle_SynchronizedStartStop(t *testing.T) {
	// Arrange
	lc := NewLifecycle(nil)
	mon := lc.Monitor()

	factory := NewThreadFactory()
	worker, err := factory.NewThread(RunnableFunc(func() {
		lc.MarkStarted()
		if state := lc.AwaitStopRequest(); state == ThreadStopping {
			lc.MarkStopped()
		}
	}))
	if err != nil {
		t.Fatalf("NewThread failed: %v", err)
	}

	// Act - launcher side
	if got := lc.State(); got != ThreadUninitialized {
		t.Fatalf("initial state: got = %v, want uninitialized", got)
	}
	lc.MarkStarting()
	if err := worker.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if state := lc.AwaitStarted(); state != ThreadStarted {
		t.Fatalf("state after AwaitStarted: got = %v, want started", state)
	}

	// A short timed wait, timing out, must not disturb the handshake.
	Synchronized(mon, func() {
		if err := mon.WaitTimeout(50 * time.Millisecond); !errors.Is(err, ErrTimedOut) {
			t.Fatalf("idle timed wait: got = %v, want ErrTimedOut", err)
		}
	})

	lc.RequestStop()
	lc.AwaitStopped()

	// Assert
	if got := lc.State(); got != ThreadStopped {
		t.Fatalf("final state: got = %v, want stopped", got)
	}
	if err := worker.Join(); err != nil {
		t.Fatalf("Join failed: %v", err)
	}
}

// TestLifecycle_StopRequestReachesWorker verifies wakeup routing in the handshake
// Given: a goroutine already parked in AwaitStopped ahead of the worker's
// AwaitStopRequest in the wait queue
// When: a coordinator calls RequestStop
// Then: the worker still observes the stop request — the early stopped-waiter
// does not absorb its wakeup — and both goroutines run to completion
func TestLifecycle_StopRequestReachesWorker(t *testing.T) {
	// Arrange - a running lifecycle with a stopped-waiter enqueued first
	lc := NewLifecycle(nil)
	lc.MarkStarting()
	lc.MarkStarted()

	stoppedReturned := make(chan struct{})
	go func() {
		lc.AwaitStopped()
		close(stoppedReturned)
	}()
	time.Sleep(20 * time.Millisecond)

	observed := make(chan ThreadState, 1)
	go func() {
		s := lc.AwaitStopRequest()
		observed <- s
		lc.MarkStopped()
	}()
	time.Sleep(20 * time.Millisecond)

	// Act
	if !lc.RequestStop() {
		t.Fatal("RequestStop should apply to a started lifecycle")
	}

	// Assert
	select {
	case s := <-observed:
		if s != ThreadStopping {
			t.Fatalf("worker wake state: got = %v, want %v", s, ThreadStopping)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("worker never observed the stop request")
	}
	select {
	case <-stoppedReturned:
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitStopped never returned")
	}
	if got := lc.State(); got != ThreadStopped {
		t.Fatalf("final state: got = %v, want %v", got, ThreadStopped)
	}
}
