package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a stock-intake header ("PUR-001"). It mirrors Invoice except
// that purchases carry no IGST component and the vendor's bill reference
// (POBillNo) is kept alongside our own number.
type Purchase struct {
	ID            uint   `gorm:"primaryKey"`
	BillNo        string `gorm:"uniqueIndex;not null"`
	POBillNo      *string
	PurchaseDate  time.Time `gorm:"type:date;not null"`
	VendorID      uint      `gorm:"index;not null"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SGST          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus string          `gorm:"type:varchar(20);not null;default:'unpaid'"`
	CreatedAt     time.Time

	Vendor   *Vendor         `gorm:"foreignKey:VendorID"`
	Items    []PurchaseItem  `gorm:"foreignKey:PurchaseID"`
	Payments []VendorPayment `gorm:"foreignKey:PurchaseID"`
}

type PurchaseItem struct {
	ID         uint `gorm:"primaryKey"`
	PurchaseID uint `gorm:"index;not null"`
	ProductID  uint `gorm:"index;not null"`
	Quantity   int  `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// VendorPayment is money paid out against a purchase.
type VendorPayment struct {
	ID          uint `gorm:"primaryKey"`
	PurchaseID  uint `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Method      string          `gorm:"type:varchar(20);not null"`
	PaymentDate time.Time       `gorm:"not null"`
	Description string
}
