package models

import "time"

const (
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
)

const (
	PaymentPending   = "PENDING"
	PaymentSubmitted = "SUBMITTED"
	PaymentVerified  = "VERIFIED"
)

// Booking reserves the half-open minute interval [StartMinutes,
// EndMinutes) on one court for one calendar day. Date is stored as a
// plain YYYY-MM-DD string and always compared by exact equality.
//
// Confirmed bookings on the same (court, date) must never overlap; the
// application checks inside a transaction and Postgres enforces it
// with an exclusion constraint (see storage.Migrate). Cancellation is
// a soft status transition so history survives for the owner.
type Booking struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	BusinessID uint     `json:"businessId" gorm:"index;not null"`
	Business   Business `json:"-" gorm:"foreignKey:BusinessID"`
	CourtID    uint     `json:"courtId" gorm:"index:idx_court_date;not null"`
	Court      *Court   `json:"court,omitempty" gorm:"foreignKey:CourtID"`

	Date         string `json:"date" gorm:"size:10;index:idx_court_date;not null"`
	StartMinutes int    `json:"startMinutes" gorm:"not null"`
	EndMinutes   int    `json:"endMinutes" gorm:"not null"`

	CustomerName string `json:"customerName" gorm:"not null"`
	Phone        string `json:"phone" gorm:"index;not null"`

	Status string `json:"status" gorm:"size:12;default:CONFIRMED;index"`

	PaymentProof  string `json:"paymentProof"`
	PaymentStatus string `json:"paymentStatus" gorm:"size:12;default:PENDING"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
