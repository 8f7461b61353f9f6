package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-management/internal/dto"
	"property-management/internal/models"
)

func (h *Handler) CreateMaintenanceRequest(c *gin.Context) {
	var in dto.MaintenanceRequestInput
	if !bindJSON(c, &in) {
		return
	}
	if !h.checkRefs(c, in.PropertyID.Ptr(), in.TenantID.Ptr()) {
		return
	}

	m := in.ToModel(h.now().UTC())
	if err := h.store.MaintenanceRequests.Create(c.Request.Context(), m); err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	c.JSON(http.StatusOK, dto.NewMaintenanceRequestResponse(m))
}

func (h *Handler) ListMaintenanceRequests(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	ms, err := h.store.MaintenanceRequests.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	c.JSON(http.StatusOK, dto.NewMaintenanceRequestList(ms))
}

func (h *Handler) GetMaintenanceRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.store.MaintenanceRequests.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	c.JSON(http.StatusOK, dto.NewMaintenanceRequestResponse(m))
}

func (h *Handler) ReplaceMaintenanceRequest(c *gin.Context) {
	h.updateMaintenanceRequest(c, false)
}

func (h *Handler) PatchMaintenanceRequest(c *gin.Context) {
	h.updateMaintenanceRequest(c, true)
}

func (h *Handler) updateMaintenanceRequest(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.MaintenanceRequestUpdate
	if !bindJSON(c, &in) {
		return
	}

	fields := in.Fields(partial, h.now().UTC())
	propertyID, tenantID := refsFromFields(fields)
	if !h.checkRefs(c, propertyID, tenantID) {
		return
	}
	m, err := h.store.MaintenanceRequests.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	c.JSON(http.StatusOK, dto.NewMaintenanceRequestResponse(m))
}

// CompleteMaintenanceRequest handles POST /maintenance-requests/:id/complete.
// Completing an already completed request keeps the original completion time.
func (h *Handler) CompleteMaintenanceRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	m, err := h.store.MaintenanceRequests.Get(ctx, id)
	if err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	if !m.IsCompleted() {
		m, err = h.store.MaintenanceRequests.UpdateFields(ctx, id, map[string]interface{}{
			"status":       string(models.MaintenanceStatusCompleted),
			"completed_at": h.now().UTC(),
		})
		if err != nil {
			h.fail(c, err, "Maintenance request")
			return
		}
	}
	c.JSON(http.StatusOK, dto.NewMaintenanceRequestResponse(m))
}

func (h *Handler) DeleteMaintenanceRequest(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.MaintenanceRequests.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Maintenance request")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Maintenance request %d deleted successfully", id)})
}
