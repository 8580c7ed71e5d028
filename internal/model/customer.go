package model

import "time"

// Customer is a buyer identified by a unique mobile number.
type Customer struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"not null"`
	MobileNumber string  `gorm:"uniqueIndex;not null"`
	Email        *string
	Address      *string
	CreatedAt    time.Time
}
