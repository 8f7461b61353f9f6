package dto

import (
	"strings"
	"time"

	"property-management/internal/assignment"
	"property-management/internal/models"
)

// TenantInput is the body of POST, PUT and PATCH /tenants. Every field is optional.
type TenantInput struct {
	FirstName Optional[string] `json:"first_name" binding:"omitempty,max=100"`
	LastName  Optional[string] `json:"last_name" binding:"omitempty,max=100"`
	Email     Optional[string] `json:"email" binding:"omitempty,max=255,email_or_blank"`
	Phone     Optional[string] `json:"phone" binding:"omitempty,max=20"`
	Status    Optional[string] `json:"status" binding:"omitempty,max=50"`
}

func (in *TenantInput) ToModel() *models.Tenant {
	return &models.Tenant{
		FirstName: in.FirstName.Ptr(),
		LastName:  in.LastName.Ptr(),
		Email:     normalizeEmail(in.Email.Ptr()),
		Phone:     in.Phone.Ptr(),
		Status:    in.Status.Ptr(),
	}
}

func (in *TenantInput) Fields(partial bool) map[string]interface{} {
	fields := map[string]interface{}{}
	collect(fields, "first_name", in.FirstName, partial, nil)
	collect(fields, "last_name", in.LastName, partial, nil)
	collect(fields, "email", in.Email, partial, func(s string) interface{} {
		if e := normalizeEmail(&s); e != nil {
			return *e
		}
		return nil
	})
	collect(fields, "phone", in.Phone, partial, nil)
	collect(fields, "status", in.Status, partial, nil)
	return fields
}

// normalizeEmail trims the address and maps blank to NULL so blank emails
// never collide on the unique index.
func normalizeEmail(s *string) *string {
	if s == nil {
		return nil
	}
	e := strings.TrimSpace(*s)
	if e == "" {
		return nil
	}
	return &e
}

type TenantResponse struct {
	ID        uint       `json:"id"`
	FirstName *string    `json:"first_name"`
	LastName  *string    `json:"last_name"`
	Email     *string    `json:"email"`
	Phone     *string    `json:"phone"`
	Status    *string    `json:"status"`
	CreatedAt *time.Time `json:"created_at"`
}

func NewTenantResponse(t *models.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		Email:     t.Email,
		Phone:     t.Phone,
		Status:    t.Status,
		CreatedAt: timePtr(t.CreatedAt),
	}
}

func NewTenantList(tenants []models.Tenant) []TenantResponse {
	out := make([]TenantResponse, 0, len(tenants))
	for i := range tenants {
		out = append(out, NewTenantResponse(&tenants[i]))
	}
	return out
}

// AssignmentResponse is the tenant after assignment plus the property it now
// rents. lease_id is additive; older clients ignore it.
type AssignmentResponse struct {
	TenantResponse
	PropertyID uint `json:"property_id"`
	LeaseID    uint `json:"lease_id"`
}

func NewAssignmentResponse(r *assignment.Result) AssignmentResponse {
	return AssignmentResponse{
		TenantResponse: NewTenantResponse(&r.Tenant),
		PropertyID:     r.PropertyID,
		LeaseID:        r.Lease.ID,
	}
}
