package models

import "time"

type MaintenanceRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	PropertyID  *uint      `gorm:"index" json:"property_id"`
	TenantID    *uint      `gorm:"index" json:"tenant_id"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      *string    `gorm:"size:50;index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// IsCompleted reports whether the request has been closed out.
func (m *MaintenanceRequest) IsCompleted() bool {
	return NormalizeStatus(m.Status) == string(MaintenanceStatusCompleted)
}
