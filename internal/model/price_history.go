package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory keeps the previous cost/selling prices whenever a product's
// pricing is edited.
type PriceHistory struct {
	ID         uint `gorm:"primaryKey"`
	ProductID  uint `gorm:"index;not null"`
	OldCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NewCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	OldSelling decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NewSelling decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time
}
