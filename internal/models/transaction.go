package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a ledger entry against a property, optionally tied to a tenant.
type Transaction struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	PropertyID  *uint               `gorm:"index" json:"property_id"`
	TenantID    *uint               `gorm:"index" json:"tenant_id"`
	Type        *string             `gorm:"size:50;index" json:"type"`
	Amount      decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"amount"`
	Description *string             `gorm:"type:text" json:"description"`
	Date        *time.Time          `gorm:"type:date" json:"date"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
}

type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "revenue"
	TransactionTypeExpense TransactionType = "expense"
)
