package model

import "time"

// Vendor is a supplier. GSTNumber is the vendor's GSTIN as free text.
type Vendor struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	MobileNumber     string `gorm:"uniqueIndex;not null"`
	GSTNumber        *string
	Address          *string
	ProductsSupplied *string
	CreatedAt        time.Time

	Products  []Product  `gorm:"foreignKey:VendorID"`
	Purchases []Purchase `gorm:"foreignKey:VendorID"`
}
