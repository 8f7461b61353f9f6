package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"property-management/internal/dto"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var in dto.TransactionInput
	if !bindJSON(c, &in) {
		return
	}
	if !h.checkRefs(c, in.PropertyID.Ptr(), in.TenantID.Ptr()) {
		return
	}

	t := in.ToModel(h.now())
	if err := h.store.Transactions.Create(c.Request.Context(), t); err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(t))
}

// ListTransactions handles GET /transactions/. Transactions carry no status;
// property_id and tenant_id narrow the ledger.
func (h *Handler) ListTransactions(c *gin.Context) {
	opts, ok := listOptions(c)
	if !ok {
		return
	}
	opts.Status = ""
	ts, err := h.store.Transactions.List(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionList(ts))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.store.Transactions.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(t))
}

func (h *Handler) ReplaceTransaction(c *gin.Context) {
	h.updateTransaction(c, false)
}

func (h *Handler) PatchTransaction(c *gin.Context) {
	h.updateTransaction(c, true)
}

func (h *Handler) updateTransaction(c *gin.Context, partial bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.TransactionUpdate
	if !bindJSON(c, &in) {
		return
	}

	fields := in.Fields(partial)
	propertyID, tenantID := refsFromFields(fields)
	if !h.checkRefs(c, propertyID, tenantID) {
		return
	}
	t, err := h.store.Transactions.UpdateFields(c.Request.Context(), id, fields)
	if err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(t))
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.store.Transactions.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Transaction %d deleted successfully", id)})
}

// TransactionSummary handles GET /transactions/summary?property_id=
func (h *Handler) TransactionSummary(c *gin.Context) {
	var propertyID *uint
	if raw := c.Query("property_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: []dto.FieldError{{
				Loc: []string{"query", "property_id"}, Msg: "value is not a valid integer", Type: "type_error.integer",
			}}})
			return
		}
		id := uint(n)
		propertyID = &id
		if !h.checkRefs(c, propertyID, nil) {
			return
		}
	}

	sum, err := h.store.IncomeSummary(c.Request.Context(), propertyID)
	if err != nil {
		h.fail(c, err, "Transaction")
		return
	}
	c.JSON(http.StatusOK, dto.NewIncomeSummaryResponse(sum))
}
