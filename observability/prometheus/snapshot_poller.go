package prometheus

import (
	"context"
	"sync"
	"time"

	"github.com/Swind/go-concurrency-kit/core"
	prom "github.com/prometheus/client_golang/prometheus"
)

// FactorySnapshotProvider provides a live-thread count snapshot. It is
// implemented by *core.ThreadFactory.
type FactorySnapshotProvider interface {
	LiveThreads() int64
}

var _ FactorySnapshotProvider = (*core.ThreadFactory)(nil)

// SnapshotPoller periodically exports per-factory live-thread snapshots into
// Prometheus gauges. Event-driven counters come from MetricsExporter; the
// poller complements them with a sampled view that survives factories the
// exporter was never attached to.
type SnapshotPoller struct {
	interval time.Duration

	factoriesMu sync.RWMutex
	factories   map[string]FactorySnapshotProvider

	factoryLive *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	factoryLive := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "conckit",
		Name:      "factory_live_threads",
		Help:      "Live threads per factory, sampled.",
	}, []string{"factory"})

	var err error
	if factoryLive, err = registerCollector(reg, factoryLive); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:    interval,
		factories:   make(map[string]FactorySnapshotProvider),
		factoryLive: factoryLive,
	}, nil
}

// AddFactory adds or replaces a factory snapshot provider by name.
func (p *SnapshotPoller) AddFactory(name string, provider FactorySnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "factory")
	p.factoriesMu.Lock()
	p.factories[name] = provider
	p.factoriesMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.factoriesMu.RLock()
	for name, provider := range p.factories {
		p.factoryLive.WithLabelValues(name).Set(float64(provider.LiveThreads()))
	}
	p.factoriesMu.RUnlock()
}
