package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"property-management/internal/dto"
)

// Leases are written only by the assignment workflow; the API reads them.

func (h *Handler) ListLeases(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	leases, err := h.store.Leases.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Lease")
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaseList(leases))
}

func (h *Handler) GetLease(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	l, err := h.store.Leases.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Lease")
		return
	}
	c.JSON(http.StatusOK, dto.NewLeaseResponse(l))
}
