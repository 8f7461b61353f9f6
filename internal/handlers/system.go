package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-management/internal/dto"
)

const probeTimeout = 2 * time.Second

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: h.cfg.App.Name})
}

// Health pings the database and reports its latency.
func (h *Handler) Health(c *gin.Context) {
	now := h.now().UTC()
	if h.probe == nil {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:    "healthy",
			Version:   h.cfg.App.Version,
			Database:  "unknown",
			Timestamp: now,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	latency, err := h.probe.Latency(ctx)
	if err != nil {
		h.log.WithContext(c.Request.Context()).Warn("health check: database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.APIError{
			Error:     "Service unavailable",
			Detail:    "Database connection error",
			Path:      c.Request.URL.Path,
			Timestamp: now,
		})
		return
	}
	h.metrics.SetDBLatency(latency)

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Version:   h.cfg.App.Version,
		Database:  fmt.Sprintf("connected (latency: %.1fms)", millis(latency)),
		Timestamp: now,
	})
}

// Metrics reports the in-process counters. Latency is sampled live and
// falls back to the last scheduled sample when the ping fails.
func (h *Handler) Metrics(c *gin.Context) {
	var inUse int
	if h.probe != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
		if latency, err := h.probe.Latency(ctx); err == nil {
			h.metrics.SetDBLatency(latency)
		}
		cancel()

		var open int
		open, inUse = h.probe.PoolStats()
		h.metrics.SetPoolStats(open, inUse)
	}

	c.JSON(http.StatusOK, dto.MetricsResponse{
		Uptime:            h.metrics.Uptime().Seconds(),
		DatabaseLatencyMS: millis(h.metrics.DBLatency()),
		ActiveConnections: inUse,
		RequestsPerMinute: h.metrics.RequestsPerMinute(),
		Status: dto.MetricsStatus{
			ProcessID:     os.Getpid(),
			Goroutines:    runtime.NumGoroutine(),
			PoolSize:      h.cfg.Database.MaxOpenConns,
			RequestsTotal: h.metrics.RequestsTotal(),
		},
	})
}

// Prometheus serves the exposition format.
func (h *Handler) Prometheus(c *gin.Context) {
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
