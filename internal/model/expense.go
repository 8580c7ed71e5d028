package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an operating cost independent of billing; it only appears in
// reporting rollups.
type Expense struct {
	ID          uint   `gorm:"primaryKey"`
	Category    string `gorm:"index;not null"`
	Description string
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpenseDate time.Time       `gorm:"index;not null"`
}
