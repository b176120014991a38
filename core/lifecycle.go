package core

// =============================================================================
// ThreadState: canonical lifecycle states
// =============================================================================

// ThreadState is the lifecycle state of a thread of control.
//
// State Machine:
//
//	ThreadUninitialized → ThreadStarting   [launcher, before Start]
//	ThreadStarting      → ThreadStarted    [worker, on first instruction, + NotifyAll]
//	ThreadStarted       → ThreadStopping   [coordinator requests stop, + NotifyAll]
//	ThreadStopping      → ThreadStopped    [worker acknowledges, + NotifyAll]
//
// Transitions are guarded, not forced: an actor observing a state it does not
// expect leaves the state unchanged and takes no action.
type ThreadState int32

const (
	// ThreadUninitialized: created, Start not yet requested.
	ThreadUninitialized ThreadState = iota

	// ThreadStarting: launcher has requested Start; the worker has not yet
	// begun executing.
	ThreadStarting

	// ThreadStarted: the worker is executing.
	ThreadStarted

	// ThreadStopping: a coordinator has asked the worker to terminate; the
	// worker has not yet acknowledged.
	ThreadStopping

	// ThreadStopped: terminal. The worker has finished.
	ThreadStopped
)

// String returns a human-readable state name for diagnostics.
func (s ThreadState) String() string {
	switch s {
	case ThreadUninitialized:
		return "uninitialized"
	case ThreadStarting:
		return "starting"
	case ThreadStarted:
		return "started"
	case ThreadStopping:
		return "stopping"
	case ThreadStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// =============================================================================
// Lifecycle: launcher/worker rendezvous backbone
// =============================================================================

// Lifecycle is the reusable start/stop handshake between a launcher and a
// spawned worker. The state lives entirely under a Monitor's lock and every
// signal travels through wait/notify on that same Monitor; there is no
// atomic or other memory-visibility side channel — the lock provides the
// only visibility guarantee.
//
// Typical worker shape:
//
//	lc.MarkStarted()        // wake a launcher blocked in AwaitStarted
//	lc.AwaitStopRequest()   // block until a coordinator calls RequestStop
//	lc.MarkStopped()        // wake everyone blocked in AwaitStopped
//
// All Mark*/Request* transitions are guarded: they return false, with state
// unchanged, when the current state is not the expected predecessor.
type Lifecycle struct {
	mon   *Monitor
	state ThreadState
}

// NewLifecycle creates a Lifecycle in ThreadUninitialized coordinating on
// mon. A nil mon allocates a dedicated Monitor; pass a shared one to
// rendezvous several lifecycles (or other state) on a single lock.
func NewLifecycle(mon *Monitor) *Lifecycle {
	if mon == nil {
		mon = NewMonitor()
	}
	return &Lifecycle{mon: mon, state: ThreadUninitialized}
}

// Monitor returns the coordinating Monitor.
func (l *Lifecycle) Monitor() *Monitor {
	return l.mon
}

// State returns a snapshot of the current state, read under the lock.
func (l *Lifecycle) State() ThreadState {
	var s ThreadState
	Synchronized(l.mon, func() {
		s = l.state
	})
	return s
}

// MarkStarting is the launcher-side transition Uninitialized → Starting,
// taken before the worker is spawned.
func (l *Lifecycle) MarkStarting() bool {
	return l.transition(ThreadUninitialized, ThreadStarting, false)
}

// MarkStarted is the worker-side transition Starting → Started, taken
// immediately upon beginning execution. It wakes a launcher blocked in
// AwaitStarted.
func (l *Lifecycle) MarkStarted() bool {
	return l.transition(ThreadStarting, ThreadStarted, true)
}

// RequestStop is the coordinator-side transition Started → Stopping. It
// wakes a worker blocked in AwaitStopRequest. Requesting a stop on a
// worker that never started is a no-op returning false.
func (l *Lifecycle) RequestStop() bool {
	return l.transition(ThreadStarted, ThreadStopping, true)
}

// MarkStopped is the worker-side transition Stopping → Stopped, taken upon
// observing the stop request. It notifies ALL waiters blocked in
// AwaitStopped.
func (l *Lifecycle) MarkStopped() bool {
	applied := false
	Synchronized(l.mon, func() {
		if l.state == ThreadStopping {
			l.state = ThreadStopped
			applied = true
			l.mon.NotifyAll()
		}
	})
	return applied
}

// AwaitStarted blocks the launcher until the worker has left Starting.
// Returns the state observed on wake.
func (l *Lifecycle) AwaitStarted() ThreadState {
	var s ThreadState
	Synchronized(l.mon, func() {
		for l.state == ThreadStarting {
			l.mon.Wait()
		}
		s = l.state
	})
	return s
}

// AwaitStopRequest blocks the worker for as long as the state remains
// Started, i.e. until a coordinator calls RequestStop (or some other
// transition moves the state along). Returns the state observed on wake.
func (l *Lifecycle) AwaitStopRequest() ThreadState {
	var s ThreadState
	Synchronized(l.mon, func() {
		for l.state == ThreadStarted {
			l.mon.Wait()
		}
		s = l.state
	})
	return s
}

// AwaitStopped blocks until the state reaches ThreadStopped. Call it only
// once a stop has been (or is about to be) requested; awaiting a worker
// nobody asked to stop blocks until someone does.
func (l *Lifecycle) AwaitStopped() {
	Synchronized(l.mon, func() {
		for l.state != ThreadStopped {
			l.mon.Wait()
		}
	})
}

// transition applies from → to under the lock, optionally notifying when it
// takes effect. Notification uses NotifyAll: with a single Notify a waiter
// blocked on a later state (say AwaitStopped, enqueued before the worker
// reached AwaitStopRequest) would absorb the wakeup meant for the worker and
// stall the handshake. Every Await* loop re-checks its predicate, so waking
// the extras is harmless.
func (l *Lifecycle) transition(from, to ThreadState, notify bool) bool {
	applied := false
	Synchronized(l.mon, func() {
		if l.state == from {
			l.state = to
			applied = true
			if notify {
				l.mon.NotifyAll()
			}
		}
	})
	return applied
}
