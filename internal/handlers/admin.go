package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"property-management/internal/dto"
	"property-management/internal/logger"
	"property-management/internal/models"
	"property-management/internal/ratelimit"
	"property-management/internal/scheduler"
	"property-management/internal/store"
)

// AdminHandler handles admin-related requests
type AdminHandler struct {
	store     *store.Store
	scheduler *scheduler.Scheduler
	limiter   *ratelimit.RateLimiter
	log       *logger.Logger
}

// NewAdminHandler creates a new admin handler. sched and limiter may be nil.
func NewAdminHandler(st *store.Store, sched *scheduler.Scheduler, limiter *ratelimit.RateLimiter, log *logger.Logger) *AdminHandler {
	if log == nil {
		log = logger.Get()
	}
	return &AdminHandler{
		store:     st,
		scheduler: sched,
		limiter:   limiter,
		log:       log,
	}
}

// GetStats returns portfolio statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	props, err := h.store.Properties.CountByStatus(ctx)
	if err != nil {
		h.failed(c, err)
		return
	}
	tenants, err := h.store.Tenants.CountByStatus(ctx)
	if err != nil {
		h.failed(c, err)
		return
	}
	activeLeases, err := h.store.Leases.Count(ctx, store.ListOptions{Status: string(models.LeaseStatusActive)})
	if err != nil {
		h.failed(c, err)
		return
	}

	// Open maintenance = anything not yet completed
	var openMaintenance int64
	for _, st := range []models.MaintenanceStatus{models.MaintenanceStatusOpen, models.MaintenanceStatusInProgress} {
		n, err := h.store.MaintenanceRequests.Count(ctx, store.ListOptions{Status: string(st)})
		if err != nil {
			h.failed(c, err)
			return
		}
		openMaintenance += n
	}

	stats := dto.StatsResponse{
		PropertiesByStatus:      make([]dto.StatusCount, 0, len(props)),
		TenantsByStatus:         make([]dto.StatusCount, 0, len(tenants)),
		ActiveLeases:            activeLeases,
		OpenMaintenanceRequests: openMaintenance,
	}

	var occupied int64
	for _, row := range props {
		stats.Properties += row.Count
		status := models.NormalizeStatus(row.Status)
		for _, unavailable := range models.UnavailablePropertyStatuses {
			if status == unavailable {
				occupied += row.Count
			}
		}
		stats.PropertiesByStatus = append(stats.PropertiesByStatus, dto.StatusCount{Status: statusLabel(row.Status), Count: row.Count})
	}
	for _, row := range tenants {
		stats.Tenants += row.Count
		stats.TenantsByStatus = append(stats.TenantsByStatus, dto.StatusCount{Status: statusLabel(row.Status), Count: row.Count})
	}
	if stats.Properties > 0 {
		stats.OccupancyRate = float64(occupied) / float64(stats.Properties)
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecentActivity returns the most recently created leases
func (h *AdminHandler) GetRecentActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}

	var leases []models.Lease
	err = h.store.DB().WithContext(c.Request.Context()).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&leases).Error
	if err != nil {
		h.failed(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leases": dto.NewLeaseList(leases),
		"count":  len(leases),
	})
}

// RentRange is one bucket of the rent distribution
type RentRange struct {
	RangeLabel string `json:"range_label"`
	MinRent    int    `json:"min_rent"`
	MaxRent    int    `json:"max_rent"`
	Count      int64  `json:"count"`
}

// GetRentDistribution returns how many properties fall in each monthly rent band
func (h *AdminHandler) GetRentDistribution(c *gin.Context) {
	ranges := []RentRange{
		{RangeLabel: "under 500", MinRent: 0, MaxRent: 500},
		{RangeLabel: "500-999", MinRent: 500, MaxRent: 1000},
		{RangeLabel: "1000-1499", MinRent: 1000, MaxRent: 1500},
		{RangeLabel: "1500-1999", MinRent: 1500, MaxRent: 2000},
		{RangeLabel: "2000-2999", MinRent: 2000, MaxRent: 3000},
		{RangeLabel: "3000 and over", MinRent: 3000, MaxRent: 0},
	}

	var props []models.Property
	if err := h.store.DB().WithContext(c.Request.Context()).
		Select("id", "rent_amount").
		Where("rent_amount IS NOT NULL").
		Find(&props).Error; err != nil {
		h.failed(c, err)
		return
	}

	for _, p := range props {
		for i := range ranges {
			if inRange(p.RentAmount.Decimal, ranges[i]) {
				ranges[i].Count++
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"rent_distribution": ranges,
	})
}

func inRange(rent decimal.Decimal, r RentRange) bool {
	if rent.LessThan(decimal.NewFromInt(int64(r.MinRent))) {
		return false
	}
	return r.MaxRent == 0 || rent.LessThan(decimal.NewFromInt(int64(r.MaxRent)))
}

// RunJobs runs the database sampling and limiter pruning jobs immediately
func (h *AdminHandler) RunJobs(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Detail: "Scheduler not available"})
		return
	}

	h.log.WithContext(c.Request.Context()).Info("admin: manual job run requested")
	h.scheduler.RunNow()

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Jobs completed"})
}

// GetRateLimitStats returns the limiter state for the calling client
func (h *AdminHandler) GetRateLimitStats(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, ratelimit.Stats{Enabled: false})
		return
	}
	c.JSON(http.StatusOK, h.limiter.GetStats(c.ClientIP()))
}

func (h *AdminHandler) failed(c *gin.Context, err error) {
	h.log.WithContext(c.Request.Context()).Error("admin: query failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"})
}

func statusLabel(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
