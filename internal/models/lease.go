package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease records a tenant's occupancy of a property. Rows are only created by
// the assignment workflow; RentAmount is a snapshot, not a reference.
type Lease struct {
	ID         uint                `gorm:"primaryKey" json:"id"`
	PropertyID uint                `gorm:"not null;index" json:"property_id"`
	TenantID   uint                `gorm:"not null;index" json:"tenant_id"`
	StartDate  time.Time           `gorm:"type:date" json:"start_date"`
	EndDate    *time.Time          `gorm:"type:date" json:"end_date"`
	RentAmount decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"rent_amount"`
	Status     LeaseStatus         `gorm:"size:50;index" json:"status"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

type LeaseStatus string

const (
	LeaseStatusActive LeaseStatus = "active"
	LeaseStatusEnded  LeaseStatus = "ended"
)

// IsActive reports whether the lease is the property's current tenancy.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
