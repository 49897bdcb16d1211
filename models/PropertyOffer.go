package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Offer status values. The machine is one-way: a terminal offer is never reopened.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
)

type PropertyOffer struct {
	gorm.Model
	LandlordID         uint           `json:"landlordID" gorm:"index"`
	RequestID          uint           `json:"requestID" gorm:"index"`
	Price              int            `json:"price"`
	Description        string         `json:"description"`
	AvailableAmenities datatypes.JSON `json:"availableAmenities"` // subset of the request's amenities
	Status             string         `json:"status" gorm:"size:16;default:'pending';index"` // pending, accepted, rejected

	Landlord *User          `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
	Request  *RentalRequest `json:"request,omitempty" gorm:"foreignKey:RequestID"`
}

// AmenityList decodes the availableAmenities JSON column.
func (o *PropertyOffer) AmenityList() []string {
	return decodeStringList(o.AvailableAmenities)
}

func (o *PropertyOffer) MarshalJSON() ([]byte, error) {
	type Alias PropertyOffer
	aux := &struct {
		AvailableAmenities []string `json:"availableAmenities"`
		*Alias
	}{
		AvailableAmenities: decodeStringList(o.AvailableAmenities),
		Alias:              (*Alias)(o),
	}
	return json.Marshal(aux)
}
