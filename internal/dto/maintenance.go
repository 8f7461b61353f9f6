package dto

import (
	"strings"
	"time"

	"property-management/internal/models"
)

// MaintenanceRequestInput is the body of POST /maintenance-requests.
type MaintenanceRequestInput struct {
	PropertyID  Optional[uint]   `json:"property_id" binding:"required"`
	TenantID    Optional[uint]   `json:"tenant_id"`
	Description Optional[string] `json:"description" binding:"required,notblank"`
	Status      Optional[string] `json:"status" binding:"omitempty,enum=open in_progress completed"`
}

type MaintenanceRequestUpdate struct {
	PropertyID  Optional[uint]   `json:"property_id"`
	TenantID    Optional[uint]   `json:"tenant_id"`
	Description Optional[string] `json:"description" binding:"omitempty,notblank"`
	Status      Optional[string] `json:"status" binding:"omitempty,enum=open in_progress completed"`
}

func (in *MaintenanceRequestUpdate) Fields(partial bool, now time.Time) map[string]interface{} {
	full := MaintenanceRequestInput(*in)
	return full.Fields(partial, now)
}

// ToModel builds a new request; status defaults to open.
func (in *MaintenanceRequestInput) ToModel(now time.Time) *models.MaintenanceRequest {
	status := string(models.MaintenanceStatusOpen)
	if in.Status.Present() {
		status = normalizeStatus(in.Status.Value)
	}
	m := &models.MaintenanceRequest{
		PropertyID:  in.PropertyID.Ptr(),
		TenantID:    in.TenantID.Ptr(),
		Description: in.Description.Ptr(),
		Status:      &status,
	}
	if status == string(models.MaintenanceStatusCompleted) {
		m.CompletedAt = &now
	}
	return m
}

// Fields returns column updates. Moving to completed stamps completed_at;
// moving away from it clears the stamp.
func (in *MaintenanceRequestInput) Fields(partial bool, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{}
	collect(fields, "property_id", in.PropertyID, partial, nil)
	collect(fields, "tenant_id", in.TenantID, partial, nil)
	collect(fields, "description", in.Description, partial, nil)
	collect(fields, "status", in.Status, partial, func(s string) interface{} { return normalizeStatus(s) })
	if st, ok := fields["status"].(string); ok {
		if st == string(models.MaintenanceStatusCompleted) {
			fields["completed_at"] = now
		} else {
			fields["completed_at"] = nil
		}
	}
	return fields
}

func normalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

type MaintenanceRequestResponse struct {
	ID          uint       `json:"id"`
	PropertyID  *uint      `json:"property_id"`
	TenantID    *uint      `json:"tenant_id"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func NewMaintenanceRequestResponse(m *models.MaintenanceRequest) MaintenanceRequestResponse {
	return MaintenanceRequestResponse{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		TenantID:    m.TenantID,
		Description: m.Description,
		Status:      m.Status,
		CreatedAt:   timePtr(m.CreatedAt),
		CompletedAt: m.CompletedAt,
	}
}

func NewMaintenanceRequestList(ms []models.MaintenanceRequest) []MaintenanceRequestResponse {
	out := make([]MaintenanceRequestResponse, 0, len(ms))
	for i := range ms {
		out = append(out, NewMaintenanceRequestResponse(&ms[i]))
	}
	return out
}
