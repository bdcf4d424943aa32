package models

import "time"

// Business is the tenant. Every court, booking, and owner account
// hangs off one business, and the slug is its permanent public URL
// handle.
type Business struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:120;not null"`

	Address  string `json:"address"`
	State    string `json:"state" gorm:"index"`
	City     string `json:"city" gorm:"index"`
	Postcode string `json:"postcode"`
	Phone    string `json:"phone"`

	Courts   []Court   `json:"-" gorm:"foreignKey:BusinessID"`
	Bookings []Booking `json:"-" gorm:"foreignKey:BusinessID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
