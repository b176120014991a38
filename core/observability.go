package core

// =============================================================================
// PanicHandler: Interface for handling Runnable panics
// =============================================================================

// PanicHandler is called when a Runnable panics on its thread of control.
// The panic is recovered on the spawned goroutine so a misbehaving Runnable
// cannot take the process down; the handler decides what to do with it
// (log, report, re-raise).
//
// Implementations must be thread-safe; handlers run concurrently when
// several threads panic at once.
type PanicHandler interface {
	// HandlePanic is called on the panicking thread's goroutine.
	//
	// Parameters:
	// - threadID: The identity of the Thread whose Runnable panicked
	// - panicInfo: The panic value recovered from the Runnable
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(threadID uint64, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler logs the panic through a Logger.
type DefaultPanicHandler struct {
	Logger Logger
}

// HandlePanic logs the panic with its stack trace.
func (h *DefaultPanicHandler) HandlePanic(threadID uint64, panicInfo any, stackTrace []byte) {
	logger := h.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}
	logger.Error("runnable panicked",
		F("thread_id", threadID),
		F("panic", panicInfo),
		F("stack", string(stackTrace)),
	)
}

// =============================================================================
// ThreadMetrics: Interface for observability and monitoring
// =============================================================================

// ThreadMetrics defines the interface for collecting thread lifecycle
// metrics. Implementations can send metrics to monitoring systems
// (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast; they run on the thread start and
// completion paths.
type ThreadMetrics interface {
	// RecordThreadStarted records that a thread of control began executing.
	//
	// Parameters:
	// - detached: Whether the thread is detached (fire-and-forget)
	RecordThreadStarted(detached bool)

	// RecordThreadFinished records that a thread's Runnable returned.
	RecordThreadFinished()

	// RecordStartRejected records that a Start attempt was refused with a
	// resource-exhaustion error.
	RecordStartRejected()

	// RecordThreadPanic records that a Runnable panicked.
	RecordThreadPanic()
}

// NilThreadMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilThreadMetrics struct{}

// RecordThreadStarted is a no-op.
func (m *NilThreadMetrics) RecordThreadStarted(detached bool) {}

// RecordThreadFinished is a no-op.
func (m *NilThreadMetrics) RecordThreadFinished() {}

// RecordStartRejected is a no-op.
func (m *NilThreadMetrics) RecordStartRejected() {}

// RecordThreadPanic is a no-op.
func (m *NilThreadMetrics) RecordThreadPanic() {}
