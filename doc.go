// Package conckit provides a portable thread-and-monitor runtime primitive layer for Go.
//
// This library abstracts native threads of control behind a Runnable/Thread
// lifecycle model, a Monitor combining a mutex with a condition variable
// (with both indefinite and timed waits), and a ThreadFactory that mints
// threads with configurable attributes and surfaces resource exhaustion as a
// typed error instead of crashing the process.
//
// # Quick Start
//
// Build a Runnable, wrap it into a Thread, start it:
//
//	factory := conckit.NewThreadFactory()
//	thread, err := factory.NewThread(conckit.RunnableFunc(func() {
//		// Your code here - runs on its own thread of control
//	}))
//	if err != nil {
//		// nil Runnable
//	}
//	if err := thread.Start(); err != nil {
//		// resource exhaustion, reported for exactly this attempt
//	}
//	thread.Join()
//
// # Key Concepts
//
// Monitor: one mutex + one condition variable. Wait releases the lock
// atomically with blocking and reacquires it before returning; timed waits
// return ErrTimedOut with a floor (never a ceiling) guarantee on the elapsed
// time, and a non-positive timeout means "wait forever". Wakeups may be
// spurious, so callers re-check their predicate in a loop.
//
// Synchronized: scoped mutual exclusion - the body runs with the lock held
// and the lock is released on every exit path, including panic.
//
// Guarded: state coupled to its Monitor so it is only reachable while the
// lock is held, making unlocked mutation structurally impossible.
//
// Lifecycle: the reusable launcher/worker start/stop rendezvous
// (Uninitialized -> Starting -> Started -> Stopping -> Stopped), with every
// transition guarded and every signal traveling through wait/notify.
//
// ThreadFactory: configuration object minting Thread instances; detached
// vs. joinable, stack-size and priority hints, and an optional live-thread
// limit whose refusal surfaces as ErrResourceExhausted per attempt.
//
// # Coordination Example
//
//	count := conckit.NewGuarded(nil, 10)
//	mon := count.Monitor()
//
//	factory := conckit.NewThreadFactory()
//	for i := 0; i < 10; i++ {
//		thread, _ := factory.NewThread(conckit.RunnableFunc(func() {
//			count.Do(func(n *int) {
//				*n--
//				if *n == 0 {
//					mon.Notify()
//				}
//			})
//		}))
//		thread.Start()
//	}
//
//	count.WaitFor(func(n *int) bool { return *n == 0 }, nil)
//
// Coordination between launchers and spawned threads is expressed through
// Monitor wait/notify, never through busy polling.
package conckit
