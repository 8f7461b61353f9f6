package store

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"property-management/internal/models"
)

// IncomeSummary totals the ledger, optionally for a single property.
type IncomeSummary struct {
	PropertyID       *uint
	TotalRevenue     decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
	TransactionCount int
}

// IncomeSummary sums revenue and expense transactions. Types are matched
// case-insensitively; rows with another type or no amount only count toward
// TransactionCount.
func (s *Store) IncomeSummary(ctx context.Context, propertyID *uint) (*IncomeSummary, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{})
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}

	var txs []models.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, wrapErr(err, "income summary")
	}

	sum := &IncomeSummary{
		PropertyID:       propertyID,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		TransactionCount: len(txs),
	}
	for _, t := range txs {
		if !t.Amount.Valid || t.Type == nil {
			continue
		}
		switch models.TransactionType(strings.ToLower(strings.TrimSpace(*t.Type))) {
		case models.TransactionTypeRevenue:
			sum.TotalRevenue = sum.TotalRevenue.Add(t.Amount.Decimal)
		case models.TransactionTypeExpense:
			sum.TotalExpenses = sum.TotalExpenses.Add(t.Amount.Decimal)
		}
	}
	sum.NetIncome = sum.TotalRevenue.Sub(sum.TotalExpenses)
	return sum, nil
}
