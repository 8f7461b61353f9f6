package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"property-management/internal/dto"
	"property-management/internal/store"
)

// CreateProperty handles POST /properties/
func (h *Handler) CreateProperty(c *gin.Context) {
	var in dto.PropertyInput
	if !bindJSON(c, &in) {
		return
	}

	p := in.ToModel()
	if err := h.store.Properties.Create(c.Request.Context(), p); err != nil {
		h.fail(c, err, "Property")
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(p))
}

// ListProperties handles GET /properties/ and keeps the {"value", "Count"} envelope.
func (h *Handler) ListProperties(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	props, err := h.store.Properties.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Property")
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyList(props))
}

func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.store.Properties.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Property")
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(p))
}

// ReplaceProperty handles PUT: supplied fields are written, explicit nulls clear.
func (h *Handler) ReplaceProperty(c *gin.Context) {
	h.updateProperty(c, false)
}

// PatchProperty handles PATCH: null fields are ignored.
func (h *Handler) PatchProperty(c *gin.Context) {
	h.updateProperty(c, true)
}

func (h *Handler) updateProperty(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if partial {
		var in dto.PropertyPatch
		if !bindJSON(c, &in) {
			return
		}
		fields = in.Fields()
	} else {
		// PUT requires an address just like POST
		var in dto.PropertyInput
		if !bindJSON(c, &in) {
			return
		}
		fields = in.Fields(false)
	}

	p, err := h.store.Properties.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		h.fail(c, err, "Property")
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(p))
}

func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteProperty(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Property")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Property %d deleted successfully", id)})
}

// PropertyLeases handles GET /properties/:id/leases
func (h *Handler) PropertyLeases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := h.store.Properties.Get(ctx, id); err != nil {
		h.fail(c, err, "Property")
		return
	}
	leases, err := h.store.Leases.List(ctx, store.ListOptions{PropertyID: &id, Status: c.Query("status")})
	if err != nil {
		h.fail(c, err, "Lease")
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaseList(leases))
}
