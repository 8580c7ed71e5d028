package model

import "time"

// StockMovement records every change to a product's stock quantity.
// One row is written per line item on sale/purchase and per manual update.
type StockMovement struct {
	ID          uint   `gorm:"primaryKey"`
	ProductID   uint   `gorm:"index;not null"`
	Type        string `gorm:"not null"` // "sale" | "purchase" | "manual_add" | "manual_remove"
	Quantity    int    `gorm:"not null"` // positive = in, negative = out
	StockBefore int    `gorm:"not null"`
	StockAfter  int    `gorm:"not null"`
	Reason      string
	ReferenceID *uint // invoice or purchase id when applicable
	CreatedAt   time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
