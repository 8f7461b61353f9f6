package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"property-management/internal/config"
	"property-management/internal/logger"
	"property-management/internal/metrics"
	"property-management/internal/ratelimit"
)

// Probe is the database surface the latency job samples.
type Probe interface {
	Latency(ctx context.Context) (time.Duration, error)
	PoolStats() (open, inUse int)
}

// Scheduler runs the periodic housekeeping jobs
type Scheduler struct {
	cron      *cron.Cron
	metrics   *metrics.Registry
	probe     Probe
	limiter   *ratelimit.RateLimiter
	config    config.MetricsConfig
	log       *logger.Logger
	isRunning bool
}

// NewScheduler creates a new scheduler. probe and limiter may be nil.
func NewScheduler(cfg config.MetricsConfig, reg *metrics.Registry, probe Probe, limiter *ratelimit.RateLimiter, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Get()
	}
	return &Scheduler{
		cron:    cron.New(),
		metrics: reg,
		probe:   probe,
		limiter: limiter,
		config:  cfg,
		log:     log,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		s.log.Info("scheduler: metrics jobs disabled in configuration")
		return nil
	}

	if _, err := s.cron.AddFunc(orDefault(s.config.WindowSchedule, "@every 1m"), s.RollWindow); err != nil {
		return fmt.Errorf("schedule window roll: %w", err)
	}

	if s.probe != nil {
		if _, err := s.cron.AddFunc(orDefault(s.config.LatencySchedule, "@every 30s"), s.SampleDatabase); err != nil {
			return fmt.Errorf("schedule latency sample: %w", err)
		}
	}

	if s.limiter != nil {
		if _, err := s.cron.AddFunc("@every 10m", s.PruneLimiter); err != nil {
			return fmt.Errorf("schedule limiter prune: %w", err)
		}
	}

	s.cron.Start()
	s.isRunning = true
	s.log.Info("scheduler: started",
		zap.String("window_schedule", s.config.WindowSchedule),
		zap.String("latency_schedule", s.config.LatencySchedule),
		zap.Int("jobs", len(s.cron.Entries())))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	if s.isRunning {
		<-s.cron.Stop().Done()
		s.isRunning = false
		s.log.Info("scheduler: stopped")
	}
}

// RunNow runs the sampling and pruning jobs synchronously
func (s *Scheduler) RunNow() {
	if s.probe != nil {
		s.SampleDatabase()
	}
	if s.limiter != nil {
		s.PruneLimiter()
	}
}

// RollWindow closes the per-minute request window
func (s *Scheduler) RollWindow() {
	s.metrics.RollWindow()
}

// SampleDatabase records ping latency and pool usage
func (s *Scheduler) SampleDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d, err := s.probe.Latency(ctx)
	if err != nil {
		s.log.Warn("scheduler: database ping failed", zap.Error(err))
		return
	}
	s.metrics.SetDBLatency(d)
	open, inUse := s.probe.PoolStats()
	s.metrics.SetPoolStats(open, inUse)
}

// PruneLimiter forgets rate-limit clients idle for an hour
func (s *Scheduler) PruneLimiter() {
	if n := s.limiter.Prune(); n > 0 {
		s.log.Debug("scheduler: pruned idle rate limit clients", zap.Int("clients", n))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
