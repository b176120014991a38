package prometheus

import (
	"errors"
	"fmt"

	"github.com/Swind/go-concurrency-kit/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// MetricsExporter adapts core.ThreadMetrics to Prometheus collectors.
type MetricsExporter struct {
	threadsStartedTotal *prom.CounterVec
	threadsLive         prom.Gauge
	startRejectedTotal  prom.Counter
	threadPanicTotal    prom.Counter
}

var _ core.ThreadMetrics = (*MetricsExporter)(nil)

// NewMetricsExporter creates and registers Prometheus collectors for
// core.ThreadMetrics.
func NewMetricsExporter(namespace string, reg prom.Registerer) (*MetricsExporter, error) {
	if namespace == "" {
		namespace = "conckit"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	startedVec := prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "threads_started_total",
		Help:      "Total number of threads of control started.",
	}, []string{"mode"})
	liveGauge := prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "threads_live",
		Help:      "Number of threads whose Runnable has not yet returned.",
	})
	rejectedCounter := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "thread_start_rejected_total",
		Help:      "Total number of Start attempts refused with resource exhaustion.",
	})
	panicCounter := prom.NewCounter(prom.CounterOpts{
		Namespace: namespace,
		Name:      "thread_panic_total",
		Help:      "Total number of Runnable panics.",
	})

	var err error
	if startedVec, err = registerCollector(reg, startedVec); err != nil {
		return nil, err
	}
	if liveGauge, err = registerCollector(reg, liveGauge); err != nil {
		return nil, err
	}
	if rejectedCounter, err = registerCollector(reg, rejectedCounter); err != nil {
		return nil, err
	}
	if panicCounter, err = registerCollector(reg, panicCounter); err != nil {
		return nil, err
	}

	return &MetricsExporter{
		threadsStartedTotal: startedVec,
		threadsLive:         liveGauge,
		startRejectedTotal:  rejectedCounter,
		threadPanicTotal:    panicCounter,
	}, nil
}

// RecordThreadStarted records that a thread of control began executing.
func (m *MetricsExporter) RecordThreadStarted(detached bool) {
	if m == nil {
		return
	}
	m.threadsStartedTotal.WithLabelValues(modeLabel(detached)).Inc()
	m.threadsLive.Inc()
}

// RecordThreadFinished records that a thread's Runnable returned.
func (m *MetricsExporter) RecordThreadFinished() {
	if m == nil {
		return
	}
	m.threadsLive.Dec()
}

// RecordStartRejected records a resource-exhaustion refusal.
func (m *MetricsExporter) RecordStartRejected() {
	if m == nil {
		return
	}
	m.startRejectedTotal.Inc()
}

// RecordThreadPanic records a Runnable panic.
func (m *MetricsExporter) RecordThreadPanic() {
	if m == nil {
		return
	}
	m.threadPanicTotal.Inc()
}

func modeLabel(detached bool) string {
	if detached {
		return "detached"
	}
	return "joinable"
}

func normalizeLabel(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
