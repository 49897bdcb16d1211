package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation status values.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// Payment status values. Transitions are forward-only.
const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
)

// Reservation binds a tenant, a landlord and a property over a date range.
// "Contract" is a legacy alias for the same entity; the contract endpoints
// are served by the reservation handlers.
type Reservation struct {
	gorm.Model
	PropertyID      uint      `json:"propertyID" gorm:"index"`
	TenantID        uint      `json:"tenantID" gorm:"index"`
	LandlordID      uint      `json:"landlordID" gorm:"index"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	TotalPrice      int       `json:"totalPrice"`
	Status          string    `json:"status" gorm:"size:16;default:'pending';index"`        // pending, confirmed, cancelled, completed
	PaymentStatus   string    `json:"paymentStatus" gorm:"size:16;default:'unpaid';index"`  // unpaid, partially_paid, paid
	SpecialRequests string    `json:"specialRequests"`
	OfferID         *uint     `json:"offerID" gorm:"index"` // set when the booking converts an accepted offer

	Property *Property      `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *User          `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Landlord *User          `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Offer    *PropertyOffer `json:"offer,omitempty" gorm:"foreignKey:OfferID"`
}
