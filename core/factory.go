package core

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// =============================================================================
// ThreadPriority: best-effort scheduling hint
// =============================================================================

type ThreadPriority int

const (
	// ThreadPriorityLow: Lowest priority
	ThreadPriorityLow ThreadPriority = iota

	// ThreadPriorityNormal: Default priority
	ThreadPriorityNormal

	// ThreadPriorityHigh: Highest priority
	ThreadPriorityHigh
)

// String returns a human-readable priority name.
func (p ThreadPriority) String() string {
	switch p {
	case ThreadPriorityLow:
		return "low"
	case ThreadPriorityNormal:
		return "normal"
	case ThreadPriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// =============================================================================
// ThreadFactory: mints Thread instances bound to Runnables
// =============================================================================

// ThreadFactory constructs Thread instances bound to Runnables, applying its
// configured attributes (detached flag, stack-size hint, priority hint) to
// each thread it mints. A factory may be used repeatedly and concurrently;
// calls share nothing but the factory's configuration, which the Set*
// methods mutate for subsequently created threads only.
//
// Stack size and priority are best-effort hints: the Go runtime sizes
// goroutine stacks dynamically and schedules without priorities, so both are
// recorded on the Thread for diagnostics and have no scheduling effect.
//
// The factory also owns the live-thread accounting that stands in for the
// platform's thread-count limit: when SetMaxThreads is configured and the
// limit is reached, Thread.Start fails with ErrResourceExhausted for exactly
// the attempt that hit the limit, never by crashing the process.
type ThreadFactory struct {
	mu        sync.Mutex
	detached  bool
	stackSize int
	priority  ThreadPriority

	maxThreads atomic.Int64
	live       atomic.Int64

	logger       Logger
	metrics      ThreadMetrics
	panicHandler PanicHandler
}

// NewThreadFactory creates a factory minting joinable, normal-priority
// threads with no live-thread limit.
func NewThreadFactory() *ThreadFactory {
	return &ThreadFactory{
		detached: false,
		priority: ThreadPriorityNormal,
		logger:   NewNoOpLogger(),
		metrics:  &NilThreadMetrics{},
	}
}

// SetDetached sets whether subsequently created threads are detached.
// Already-created Thread instances are unaffected.
func (f *ThreadFactory) SetDetached(detached bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detached = detached
}

// Detached returns the current default detached attribute.
func (f *ThreadFactory) Detached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detached
}

// SetStackSize sets the stack-size hint in bytes for subsequently created
// threads. Best-effort: recorded for diagnostics only.
func (f *ThreadFactory) SetStackSize(bytes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stackSize = bytes
}

// SetPriority sets the priority hint for subsequently created threads.
// Best-effort: recorded for diagnostics only.
func (f *ThreadFactory) SetPriority(priority ThreadPriority) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priority = priority
}

// SetMaxThreads sets the maximum number of simultaneously live threads this
// factory will start (0 = unlimited). Starts beyond the limit fail with
// ErrResourceExhausted.
func (f *ThreadFactory) SetMaxThreads(n int64) {
	f.maxThreads.Store(n)
}

// SetLogger replaces the factory's logger. A nil logger discards output.
func (f *ThreadFactory) SetLogger(logger Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if logger == nil {
		logger = NewNoOpLogger()
	}
	f.logger = logger
}

// SetMetrics replaces the factory's metrics sink. A nil sink disables
// metrics.
func (f *ThreadFactory) SetMetrics(metrics ThreadMetrics) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if metrics == nil {
		metrics = &NilThreadMetrics{}
	}
	f.metrics = metrics
}

// SetPanicHandler replaces the handler invoked when a Runnable panics.
// A nil handler falls back to DefaultPanicHandler.
func (f *ThreadFactory) SetPanicHandler(handler PanicHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.panicHandler = handler
}

// LiveThreads returns the number of threads started via this factory whose
// Runnables have not yet returned.
func (f *ThreadFactory) LiveThreads() int64 {
	return f.live.Load()
}

// NewThread allocates a Thread bound to runnable, configured per the
// factory's current attributes. The thread is NOT started; starting is a
// separate explicit step. Resource exhaustion surfaces at Start, where the
// thread of control is actually provisioned, not here.
func (f *ThreadFactory) NewThread(runnable Runnable) (*Thread, error) {
	if runnable == nil {
		return nil, ErrNilRunnable
	}

	f.mu.Lock()
	t := &Thread{
		id:        nextThreadID.Add(1),
		runnable:  runnable,
		detached:  f.detached,
		stackSize: f.stackSize,
		priority:  f.priority,
		lifecycle: NewLifecycle(nil),
		done:      make(chan struct{}),
		factory:   f,
	}
	logger := f.logger
	f.mu.Unlock()

	logger.Debug("thread created",
		F("thread_id", t.id),
		F("detached", t.detached),
		F("priority", t.priority.String()),
	)
	return t, nil
}

// reserve claims a live-thread slot for a Start attempt, failing the
// attempt precisely when the configured limit is reached.
func (f *ThreadFactory) reserve(threadID uint64) error {
	max := f.maxThreads.Load()
	for {
		cur := f.live.Load()
		if max > 0 && cur >= max {
			s := f.snapshot()
			s.metrics.RecordStartRejected()
			s.logger.Warn("thread start rejected",
				F("thread_id", threadID),
				F("live", cur),
				F("max", max),
			)
			return fmt.Errorf("thread %d: %w", threadID, ErrResourceExhausted)
		}
		if f.live.CompareAndSwap(cur, cur+1) {
			return nil
		}
	}
}

// unreserve gives back a slot claimed by reserve when the Start attempt
// fails after reservation.
func (f *ThreadFactory) unreserve() {
	f.live.Add(-1)
}

// threadStarted records that the thread's goroutine began executing.
func (f *ThreadFactory) threadStarted(t *Thread) {
	s := f.snapshot()
	s.metrics.RecordThreadStarted(t.detached)
	s.logger.Debug("thread started", F("thread_id", t.id))
}

// threadFinished releases the thread's slot once its Runnable has returned.
// Detached threads arrive here autonomously on completion.
func (f *ThreadFactory) threadFinished(t *Thread) {
	f.live.Add(-1)
	s := f.snapshot()
	s.metrics.RecordThreadFinished()
	s.logger.Debug("thread finished", F("thread_id", t.id))
}

// handlePanic routes a recovered Runnable panic to the configured handler.
func (f *ThreadFactory) handlePanic(threadID uint64, panicInfo any, stack []byte) {
	s := f.snapshot()
	s.metrics.RecordThreadPanic()
	handler := s.panicHandler
	if handler == nil {
		handler = &DefaultPanicHandler{Logger: s.logger}
	}
	handler.HandlePanic(threadID, panicInfo, stack)
}

// factorySnapshot is a consistent view of the mutable hooks.
type factorySnapshot struct {
	logger       Logger
	metrics      ThreadMetrics
	panicHandler PanicHandler
}

func (f *ThreadFactory) snapshot() factorySnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return factorySnapshot{logger: f.logger, metrics: f.metrics, panicHandler: f.panicHandler}
}
