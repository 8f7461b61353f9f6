package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Address string `gorm:"type:text;not null" json:"address"`

	// Optional attributes; nil means "not recorded"
	Bedrooms   *int                `json:"bedrooms"`
	Bathrooms  *float64            `json:"bathrooms"`
	Area       *float64            `json:"area"`
	RentAmount decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"rent_amount"`

	// Status is free text in storage; see the PropertyStatus constants
	Status *string `gorm:"size:50;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Leases              []Lease              `gorm:"foreignKey:PropertyID;constraint:OnDelete:RESTRICT" json:"-"`
	MaintenanceRequests []MaintenanceRequest `gorm:"foreignKey:PropertyID" json:"-"`
	Transactions        []Transaction        `gorm:"foreignKey:PropertyID" json:"-"`
	Files               []File               `gorm:"foreignKey:PropertyID" json:"-"`
}

// PropertyStatus is the lifecycle state stored in properties.status.
type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "available"
	PropertyStatusVacant      PropertyStatus = "vacant"
	PropertyStatusRented      PropertyStatus = "rented"
	PropertyStatusOccupied    PropertyStatus = "occupied"
	PropertyStatusMaintenance PropertyStatus = "maintenance"
)

// UnavailablePropertyStatuses lists the lower-cased statuses that block a new assignment.
var UnavailablePropertyStatuses = []string{
	string(PropertyStatusRented),
	string(PropertyStatusOccupied),
}

// NormalizeStatus lower-cases and trims a free-text status.
func NormalizeStatus(s *string) string {
	if s == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*s))
}

// IsAvailable reports whether the property can take a new tenant.
func (p *Property) IsAvailable() bool {
	status := NormalizeStatus(p.Status)
	for _, blocked := range UnavailablePropertyStatuses {
		if status == blocked {
			return false
		}
	}
	return true
}

// StatusString returns the status or "" when unset.
func (p *Property) StatusString() string {
	if p.Status == nil {
		return ""
	}
	return *p.Status
}

// MarkAsRented flips the in-memory status after a successful assignment.
func (p *Property) MarkAsRented() {
	s := string(PropertyStatusRented)
	p.Status = &s
}
