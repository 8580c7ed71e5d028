package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. GSTRate is the percentage applied to this
// product's line totals (5/12/18/28 under the standard rate ladder).
type Product struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"index;not null"`
	Category      string `gorm:"index;not null"`
	Brand         string `gorm:"not null"`
	MRPPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	VendorID      *uint           `gorm:"index"`
	CreatedAt     time.Time

	Vendor *Vendor `gorm:"foreignKey:VendorID"`
}
