package models

import "time"

type Tenant struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	FirstName *string `gorm:"size:100" json:"first_name"`
	LastName  *string `gorm:"size:100" json:"last_name"`
	Email     *string `gorm:"size:255;uniqueIndex" json:"email"`
	Phone     *string `gorm:"size:20" json:"phone"`
	Status    *string `gorm:"size:50;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Leases              []Lease              `gorm:"foreignKey:TenantID;constraint:OnDelete:RESTRICT" json:"-"`
	MaintenanceRequests []MaintenanceRequest `gorm:"foreignKey:TenantID" json:"-"`
	Transactions        []Transaction        `gorm:"foreignKey:TenantID" json:"-"`
	Files               []File               `gorm:"foreignKey:TenantID" json:"-"`
}

type TenantStatus string

const (
	TenantStatusApplicant TenantStatus = "applicant"
	TenantStatusActive    TenantStatus = "active"
	TenantStatusInactive  TenantStatus = "inactive"
)

// IsActive reports whether the tenant currently holds a tenancy.
func (t *Tenant) IsActive() bool {
	return NormalizeStatus(t.Status) == string(TenantStatusActive)
}

// Activate sets the in-memory status to active.
func (t *Tenant) Activate() {
	s := string(TenantStatusActive)
	t.Status = &s
}
