package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"property-management/internal/models"
	"property-management/internal/store"
)

// TransactionInput is the body of POST /transactions.
type TransactionInput struct {
	PropertyID  Optional[uint]            `json:"property_id"`
	TenantID    Optional[uint]            `json:"tenant_id"`
	Type        Optional[string]          `json:"type" binding:"required,enum=revenue expense"`
	Amount      Optional[decimal.Decimal] `json:"amount" binding:"required,gte=0"`
	Description Optional[string]          `json:"description" binding:"omitempty,max=10000"`
	Date        Optional[Date]            `json:"date"`
}

// TransactionUpdate is the body of PUT and PATCH /transactions/:id.
type TransactionUpdate struct {
	PropertyID  Optional[uint]            `json:"property_id"`
	TenantID    Optional[uint]            `json:"tenant_id"`
	Type        Optional[string]          `json:"type" binding:"omitempty,enum=revenue expense"`
	Amount      Optional[decimal.Decimal] `json:"amount" binding:"omitempty,gte=0"`
	Description Optional[string]          `json:"description" binding:"omitempty,max=10000"`
	Date        Optional[Date]            `json:"date"`
}

func (in *TransactionUpdate) Fields(partial bool) map[string]interface{} {
	full := TransactionInput(*in)
	return full.Fields(partial)
}

// ToModel builds a new ledger entry; date defaults to today.
func (in *TransactionInput) ToModel(now time.Time) *models.Transaction {
	date := models.DateOnly(now)
	if in.Date.Present() {
		date = in.Date.Value.Time
	}
	typ := normalizeStatus(in.Type.Value)
	return &models.Transaction{
		PropertyID:  in.PropertyID.Ptr(),
		TenantID:    in.TenantID.Ptr(),
		Type:        &typ,
		Amount:      decimal.NewNullDecimal(in.Amount.Value.Round(2)),
		Description: in.Description.Ptr(),
		Date:        &date,
	}
}

func (in *TransactionInput) Fields(partial bool) map[string]interface{} {
	fields := map[string]interface{}{}
	collect(fields, "property_id", in.PropertyID, partial, nil)
	collect(fields, "tenant_id", in.TenantID, partial, nil)
	collect(fields, "type", in.Type, partial, func(s string) interface{} { return normalizeStatus(s) })
	collect(fields, "amount", in.Amount, partial, func(d decimal.Decimal) interface{} { return d.Round(2) })
	collect(fields, "description", in.Description, partial, nil)
	collect(fields, "date", in.Date, partial, func(d Date) interface{} { return d.Time })
	return fields
}

type TransactionResponse struct {
	ID          uint       `json:"id"`
	PropertyID  *uint      `json:"property_id"`
	TenantID    *uint      `json:"tenant_id"`
	Type        *string    `json:"type"`
	Amount      *string    `json:"amount"`
	Description *string    `json:"description"`
	Date        *string    `json:"date"`
	CreatedAt   *time.Time `json:"created_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		PropertyID:  t.PropertyID,
		TenantID:    t.TenantID,
		Type:        t.Type,
		Amount:      formatMoney(t.Amount),
		Description: t.Description,
		Date:        formatDate(t.Date),
		CreatedAt:   timePtr(t.CreatedAt),
	}
}

func NewTransactionList(ts []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for i := range ts {
		out = append(out, NewTransactionResponse(&ts[i]))
	}
	return out
}

type IncomeSummaryResponse struct {
	PropertyID       *uint  `json:"property_id"`
	TotalRevenue     string `json:"total_revenue"`
	TotalExpenses    string `json:"total_expenses"`
	NetIncome        string `json:"net_income"`
	TransactionCount int    `json:"transaction_count"`
}

func NewIncomeSummaryResponse(s *store.IncomeSummary) IncomeSummaryResponse {
	return IncomeSummaryResponse{
		PropertyID:       s.PropertyID,
		TotalRevenue:     s.TotalRevenue.StringFixed(2),
		TotalExpenses:    s.TotalExpenses.StringFixed(2),
		NetIncome:        s.NetIncome.StringFixed(2),
		TransactionCount: s.TransactionCount,
	}
}
