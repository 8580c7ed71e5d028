package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values shared by Invoice and Purchase headers.
const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// Invoice is a sale header. BillNo is the human-readable identifier
// ("INV-001"); the surrogate ID stays internal.
//
// FinalAmount = TotalAmount − Discount + CGST + SGST + IGST, validated once
// at creation and never recomputed afterwards.
type Invoice struct {
	ID            uint   `gorm:"primaryKey"`
	BillNo        string `gorm:"uniqueIndex;not null"`
	CustomerID    *uint  `gorm:"index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'unpaid'"`
	CreatedAt     time.Time

	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is an immutable sale line. TotalPrice is caller-supplied
// (quantity × unit_price) and trusted at the boundary.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey"`
	InvoiceID uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`
	Quantity  int  `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// Payment is money received against an invoice.
type Payment struct {
	ID          uint `gorm:"primaryKey"`
	InvoiceID   uint `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method      string          `gorm:"type:varchar(20);not null"` // cash | card | upi
	PaymentDate time.Time       `gorm:"not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'completed'"`
}

// DerivePaymentStatus maps the sum of recorded payments against the final
// amount to the tri-state payment status. Overpayment reports as paid.
func DerivePaymentStatus(totalPaid, finalAmount decimal.Decimal) string {
	switch {
	case totalPaid.IsZero():
		return StatusUnpaid
	case totalPaid.GreaterThanOrEqual(finalAmount):
		return StatusPaid
	default:
		return StatusPartial
	}
}
