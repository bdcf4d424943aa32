package models

import "time"

// Court belongs to exactly one business and can only be booked while
// active. Deactivating a court hides it from the public listing but
// keeps its booking history.
type Court struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"businessId" gorm:"index;not null"`
	Business   Business `json:"-" gorm:"foreignKey:BusinessID"`

	Name     string `json:"name" gorm:"not null"`
	IsActive bool   `json:"isActive" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
