package models

import "time"

const RoleOwner = "OWNER"

// User is an owner account tied to exactly one business. Customers do
// not have accounts; they identify bookings by phone number.
type User struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Email      string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password   string   `json:"-" gorm:"not null"`
	Role       string   `json:"role" gorm:"type:varchar(20);default:OWNER"`
	BusinessID uint     `json:"businessId" gorm:"index;not null"`
	Business   Business `json:"-" gorm:"foreignKey:BusinessID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
