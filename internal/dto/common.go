package dto

import "time"

// ErrorResponse is the error body every endpoint returns.
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError is the 503 body of a failed health check.
type APIError struct {
	Error     string    `json:"error"`
	Detail    string    `json:"detail,omitempty"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type MetricsStatus struct {
	ProcessID     int   `json:"process_id"`
	Goroutines    int   `json:"goroutines"`
	PoolSize      int   `json:"pool_size"`
	RequestsTotal int64 `json:"requests_total"`
}

type MetricsResponse struct {
	Uptime            float64       `json:"uptime"`
	DatabaseLatencyMS float64       `json:"database_latency_ms"`
	ActiveConnections int           `json:"active_connections"`
	RequestsPerMinute int64         `json:"requests_per_minute"`
	Status            MetricsStatus `json:"status"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatsResponse is the admin dashboard summary.
type StatsResponse struct {
	Properties              int64         `json:"properties"`
	PropertiesByStatus      []StatusCount `json:"properties_by_status"`
	Tenants                 int64         `json:"tenants"`
	TenantsByStatus         []StatusCount `json:"tenants_by_status"`
	ActiveLeases            int64         `json:"active_leases"`
	OccupancyRate           float64       `json:"occupancy_rate"`
	OpenMaintenanceRequests int64         `json:"open_maintenance_requests"`
}
