package model

import "time"

// User is a system login. MobileNumber doubles as the login identity.
// Role: "admin" | "employee" | "owner"
type User struct {
	ID           uint   `gorm:"primaryKey"`
	MobileNumber string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	Name         string `gorm:"not null"`
	CreatedAt    time.Time
}
