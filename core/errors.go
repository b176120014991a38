package core

import "errors"

// =============================================================================
// Error taxonomy
// =============================================================================

// ErrTimedOut is returned by Monitor.WaitTimeout when the timeout elapses
// before a notify arrives. It is a routine control-flow outcome, not a fault;
// callers typically match it with errors.Is and continue their wait loop.
var ErrTimedOut = errors.New("monitor wait timed out")

// ErrResourceExhausted is returned by Thread.Start when the platform (or the
// factory's configured live-thread limit standing in for it) declines to
// provision another thread of control. The error is raised per attempt and
// wraps the failing thread's ID, so a caller flooding the system can observe
// exactly which attempt failed. It is never retried automatically.
var ErrResourceExhausted = errors.New("thread resources exhausted")

// ErrNilRunnable is returned by ThreadFactory.NewThread for a nil Runnable.
var ErrNilRunnable = errors.New("runnable cannot be nil")

// ErrThreadAlreadyStarted is returned by Thread.Start on a thread whose
// Start has already been called.
var ErrThreadAlreadyStarted = errors.New("thread already started")

// ErrThreadAlreadyJoined is returned by the second and any subsequent call
// to Thread.Join. Join is a consume-once operation.
var ErrThreadAlreadyJoined = errors.New("thread already joined")

// ErrThreadDetached is returned by Thread.Join on a detached thread, whose
// completion is reclaimed autonomously and cannot be awaited.
var ErrThreadDetached = errors.New("thread is detached")

// ErrThreadNotStarted is returned by Thread.Join on a thread that was never
// started; joining it would block forever.
var ErrThreadNotStarted = errors.New("thread not started")
