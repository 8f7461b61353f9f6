package dto

import (
	"time"

	"property-management/internal/models"
)

type LeaseResponse struct {
	ID         uint       `json:"id"`
	PropertyID uint       `json:"property_id"`
	TenantID   uint       `json:"tenant_id"`
	StartDate  *string    `json:"start_date"`
	EndDate    *string    `json:"end_date"`
	RentAmount *string    `json:"rent_amount"`
	Status     string     `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
}

func NewLeaseResponse(l *models.Lease) LeaseResponse {
	return LeaseResponse{
		ID:         l.ID,
		PropertyID: l.PropertyID,
		TenantID:   l.TenantID,
		StartDate:  formatDate(&l.StartDate),
		EndDate:    formatDate(l.EndDate),
		RentAmount: formatMoney(l.RentAmount),
		Status:     string(l.Status),
		CreatedAt:  timePtr(l.CreatedAt),
	}
}

func NewLeaseList(leases []models.Lease) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		out = append(out, NewLeaseResponse(&leases[i]))
	}
	return out
}
