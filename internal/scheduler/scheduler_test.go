package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-management/internal/config"
	"property-management/internal/logger"
	"property-management/internal/metrics"
	"property-management/internal/ratelimit"
)

type stubProbe struct {
	latency time.Duration
	err     error
}

func (p stubProbe) Latency(context.Context) (time.Duration, error) { return p.latency, p.err }
func (p stubProbe) PoolStats() (int, int)                          { return 3, 1 }

func TestSampleDatabase(t *testing.T) {
	reg := metrics.New()
	s := NewScheduler(config.MetricsConfig{Enabled: true}, reg, stubProbe{latency: 7 * time.Millisecond}, nil, logger.NewNop())

	s.SampleDatabase()
	assert.Equal(t, 7*time.Millisecond, reg.DBLatency())
}

func TestSampleDatabase_ErrorKeepsLastValue(t *testing.T) {
	reg := metrics.New()
	reg.SetDBLatency(time.Millisecond)
	s := NewScheduler(config.MetricsConfig{Enabled: true}, reg, stubProbe{err: errors.New("down")}, nil, logger.NewNop())

	s.SampleDatabase()
	assert.Equal(t, time.Millisecond, reg.DBLatency())
}

func TestRollWindow(t *testing.T) {
	reg := metrics.New()
	s := NewScheduler(config.MetricsConfig{Enabled: true}, reg, nil, nil, logger.NewNop())

	reg.ObserveRequest("GET", "/", 200, 0)
	s.RollWindow()
	reg.ObserveRequest("GET", "/", 200, 0)
	reg.ObserveRequest("GET", "/", 200, 0)
	assert.EqualValues(t, 1, reg.RequestsPerMinute())
}

func TestStartStop(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(10, 100, true)
	s := NewScheduler(config.DefaultConfig().Metrics, metrics.New(), stubProbe{}, limiter, logger.NewNop())

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 3)
	s.Stop()
	assert.False(t, s.isRunning)
}

func TestStart_Disabled(t *testing.T) {
	s := NewScheduler(config.MetricsConfig{Enabled: false}, metrics.New(), nil, nil, logger.NewNop())
	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
}

func TestStart_BadSchedule(t *testing.T) {
	s := NewScheduler(config.MetricsConfig{Enabled: true, WindowSchedule: "not a cron"}, metrics.New(), nil, nil, logger.NewNop())
	assert.Error(t, s.Start())
}

func TestRunNow(t *testing.T) {
	reg := metrics.New()
	s := NewScheduler(config.MetricsConfig{Enabled: true}, reg, stubProbe{latency: 3 * time.Millisecond}, ratelimit.NewRateLimiter(1, 1, true), logger.NewNop())

	s.RunNow()
	assert.Equal(t, 3*time.Millisecond, reg.DBLatency())
	assert.False(t, s.isRunning)
}
