package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"property-management/internal/assignment"
	"property-management/internal/dto"
	"property-management/internal/store"
)

// Assigner runs the tenant assignment workflow.
type Assigner interface {
	AssignTenantToProperty(ctx context.Context, tenantID, propertyID uint) (*assignment.Result, error)
}

func (h *Handler) CreateTenant(c *gin.Context) {
	var in dto.TenantInput
	if !bindJSON(c, &in) {
		return
	}

	t := in.ToModel()
	if err := h.store.Tenants.Create(c.Request.Context(), t); err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	c.JSON(http.StatusOK, dto.NewTenantResponse(t))
}

// ListTenants handles GET /tenants/ and returns a plain array.
func (h *Handler) ListTenants(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	tenants, err := h.store.Tenants.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	c.JSON(http.StatusOK, dto.NewTenantList(tenants))
}

func (h *Handler) GetTenant(c *gin.Context) {
	id, ok := pathID(c, "tenant_id")
	if !ok {
		return
	}
	t, err := h.store.Tenants.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	c.JSON(http.StatusOK, dto.NewTenantResponse(t))
}

func (h *Handler) ReplaceTenant(c *gin.Context) {
	h.updateTenant(c, false)
}

func (h *Handler) PatchTenant(c *gin.Context) {
	h.updateTenant(c, true)
}

func (h *Handler) updateTenant(c *gin.Context, partial bool) {
	id, ok := pathID(c, "tenant_id")
	if !ok {
		return
	}
	var in dto.TenantInput
	if !bindJSON(c, &in) {
		return
	}

	t, err := h.store.Tenants.UpdateFields(c.Request.Context(), id, in.Fields(partial))
	if err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	c.JSON(http.StatusOK, dto.NewTenantResponse(t))
}

func (h *Handler) DeleteTenant(c *gin.Context) {
	id, ok := pathID(c, "tenant_id")
	if !ok {
		return
	}
	if err := h.store.DeleteTenant(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Tenant %d deleted successfully", id)})
}

// TenantLeases handles GET /tenants/:id/leases
func (h *Handler) TenantLeases(c *gin.Context) {
	id, ok := pathID(c, "tenant_id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.store.Tenants.Get(ctx, id); err != nil {
		h.fail(c, err, "Tenant")
		return
	}
	leases, err := h.store.Leases.List(ctx, store.ListOptions{TenantID: &id, Status: c.Query("status")})
	if err != nil {
		h.fail(c, err, "Lease")
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaseList(leases))
}

// AssignTenant handles POST /tenants/:tenant_id/assign/:property_id.
// Retryable transaction failures are retried up to assignment.retry_attempts
// times before answering 503.
func (h *Handler) AssignTenant(c *gin.Context) {
	tenantID, ok := pathID(c, "tenant_id")
	if !ok {
		return
	}
	propertyID, ok := pathID(c, "property_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	attempts := h.cfg.Assignment.RetryAttempts

	var (
		res *assignment.Result
		err error
	)
	for attempt := 0; ; attempt++ {
		res, err = h.assign.AssignTenantToProperty(ctx, tenantID, propertyID)
		if err == nil || !assignment.IsRetryable(err) || attempt >= attempts || ctx.Err() != nil {
			break
		}
		h.log.WithContext(ctx).Warn("retrying tenant assignment",
			zap.Uint("tenant_id", tenantID),
			zap.Uint("property_id", propertyID),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	if err != nil {
		h.assignFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAssignmentResponse(res))
}

func (h *Handler) assignFailed(c *gin.Context, err error) {
	switch {
	case errors.Is(err, assignment.ErrTenantNotFound):
		detail(c, http.StatusNotFound, "Tenant not found")
	case errors.Is(err, assignment.ErrPropertyNotFound):
		detail(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, assignment.ErrPropertyUnavailable):
		detail(c, http.StatusBadRequest, "Property already rented")
	case errors.Is(err, assignment.ErrTenantHasActiveLease):
		detail(c, http.StatusBadRequest, "Tenant already has an active lease")
	case assignment.IsRetryable(err):
		c.Header("Retry-After", "1")
		detail(c, http.StatusServiceUnavailable, "Assignment could not be completed, please retry")
	default:
		h.fail(c, err, "Assignment")
	}
}
