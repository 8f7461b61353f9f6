package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-management/internal/config"
	"property-management/internal/dto"
	"property-management/internal/logger"
	"property-management/internal/metrics"
	"property-management/internal/middleware"
	"property-management/internal/ratelimit"
	"property-management/internal/scheduler"
	"property-management/internal/store"
)

// RouterDeps are the collaborators NewRouter wires into the engine.
type RouterDeps struct {
	Config    *config.Config
	Store     *store.Store
	Assigner  Assigner
	Metrics   *metrics.Registry
	Probe     Probe
	Limiter   *ratelimit.RateLimiter
	Scheduler *scheduler.Scheduler
	Logger    *logger.Logger
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d RouterDeps) *gin.Engine {
	log := d.Logger
	if log == nil {
		log = logger.Get()
	}
	if err := dto.RegisterValidators(); err != nil {
		log.Error("request validation rules not registered", zap.Error(err))
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Metrics(d.Metrics),
	)
	if d.Config.Logging.LogRequests {
		r.Use(middleware.AccessLog(log))
	}

	// CORS configuration
	corsCfg := cors.Config{
		AllowOrigins:     d.Config.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	if d.Limiter != nil && d.Config.RateLimit.Enabled {
		r.Use(middleware.RateLimit(d.Limiter))
	}

	h := NewHandler(d.Config, d.Store, d.Assigner, d.Metrics, d.Probe, log)

	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
	r.GET("/metrics/prometheus", h.Prometheus)

	properties := r.Group("/properties")
	{
		properties.POST("/", h.CreateProperty)
		properties.GET("/", h.ListProperties)
		properties.GET("/:id", h.GetProperty)
		properties.PUT("/:id", h.ReplaceProperty)
		properties.PATCH("/:id", h.PatchProperty)
		properties.DELETE("/:id", h.DeleteProperty)
		properties.GET("/:id/leases", h.PropertyLeases)
	}

	tenants := r.Group("/tenants")
	{
		tenants.POST("/", h.CreateTenant)
		tenants.GET("/", h.ListTenants)
		tenants.GET("/:tenant_id", h.GetTenant)
		tenants.PUT("/:tenant_id", h.ReplaceTenant)
		tenants.PATCH("/:tenant_id", h.PatchTenant)
		tenants.DELETE("/:tenant_id", h.DeleteTenant)
		tenants.GET("/:tenant_id/leases", h.TenantLeases)
		tenants.POST("/:tenant_id/assign/:property_id", h.AssignTenant)
	}

	leases := r.Group("/leases")
	{
		leases.GET("/", h.ListLeases)
		leases.GET("/:id", h.GetLease)
	}

	maintenance := r.Group("/maintenance-requests")
	{
		maintenance.POST("/", h.CreateMaintenanceRequest)
		maintenance.GET("/", h.ListMaintenanceRequests)
		maintenance.GET("/:id", h.GetMaintenanceRequest)
		maintenance.PUT("/:id", h.ReplaceMaintenanceRequest)
		maintenance.PATCH("/:id", h.PatchMaintenanceRequest)
		maintenance.DELETE("/:id", h.DeleteMaintenanceRequest)
		maintenance.POST("/:id/complete", h.CompleteMaintenanceRequest)
	}

	transactions := r.Group("/transactions")
	{
		transactions.POST("/", h.CreateTransaction)
		transactions.GET("/", h.ListTransactions)
		transactions.GET("/summary", h.TransactionSummary)
		transactions.GET("/:id", h.GetTransaction)
		transactions.PUT("/:id", h.ReplaceTransaction)
		transactions.PATCH("/:id", h.PatchTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}

	files := r.Group("/files")
	{
		files.POST("/", h.CreateFile)
		files.GET("/", h.ListFiles)
		files.GET("/:id", h.GetFile)
		files.PUT("/:id", h.ReplaceFile)
		files.PATCH("/:id", h.PatchFile)
		files.DELETE("/:id", h.DeleteFile)
	}

	adminHandler := NewAdminHandler(d.Store, d.Scheduler, d.Limiter, log)
	admin := r.Group("/admin")
	{
		admin.GET("/stats", adminHandler.GetStats)
		admin.GET("/activity", adminHandler.GetRecentActivity)
		admin.GET("/rent-distribution", adminHandler.GetRentDistribution)
		admin.POST("/jobs/run", adminHandler.RunJobs)
		admin.GET("/ratelimit", adminHandler.GetRateLimitStats)
	}

	return r
}
