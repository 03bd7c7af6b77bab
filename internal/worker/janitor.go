package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Prometheus metrics
var (
	sweepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formats_janitor_sweeps_total",
		Help: "Total number of expiry sweeps run",
	}, []string{"name"})

	expiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formats_janitor_expired_total",
		Help: "Total number of entries removed by expiry sweeps",
	}, []string{"name"})

	liveEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "formats_janitor_live_entries",
		Help: "Entries left after the last sweep",
	}, []string{"name"})
)

// Sweeper drops expired entries. Sweep returns how many it removed, Len how many remain.
type Sweeper interface {
	Sweep() int
	Len() int
}

// JanitorConfig configures a Janitor
type JanitorConfig struct {
	Name     string
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   *zap.Logger
}

// Janitor runs a Sweeper on a fixed interval until stopped
type Janitor struct {
	config  JanitorConfig
	sweeper Sweeper
	logger  *zap.SugaredLogger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewJanitor creates a janitor for sweeper
func NewJanitor(cfg JanitorConfig, sweeper Sweeper) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	return &Janitor{
		config:  cfg,
		sweeper: sweeper,
		logger:  cfg.Logger.Sugar(),
	}
}

// Start launches the sweep loop
func (j *Janitor) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	ticker := j.config.Clock.NewTicker(j.config.Interval)

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
				j.RunOnce()
			}
		}
	}()

	j.logger.Infow("Janitor started", "name", j.config.Name, "interval", j.config.Interval)
}

// RunOnce sweeps immediately
func (j *Janitor) RunOnce() int {
	removed := j.sweeper.Sweep()
	sweepsTotal.WithLabelValues(j.config.Name).Inc()
	expiredTotal.WithLabelValues(j.config.Name).Add(float64(removed))
	liveEntries.WithLabelValues(j.config.Name).Set(float64(j.sweeper.Len()))
	if removed > 0 {
		j.logger.Debugw("Expired entries removed", "name", j.config.Name, "removed", removed)
	}
	return removed
}

// Stop ends the sweep loop and waits for it to exit
func (j *Janitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	j.wg.Wait()
	j.logger.Infow("Janitor stopped", "name", j.config.Name)
}
