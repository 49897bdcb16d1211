package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxPropertyPhotos caps the photo list per listing.
const MaxPropertyPhotos = 5

type Property struct {
	gorm.Model
	LandlordID  uint           `json:"landlordID" gorm:"uniqueIndex"` // one property per landlord
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	Lat         float64        `json:"lat"`
	Lng         float64        `json:"lng"`
	Photos      datatypes.JSON `json:"photos"` // ordered list of up to MaxPropertyPhotos URLs
	Amenities   datatypes.JSON `json:"amenities"`

	Landlord *User `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
}

// PhotoList decodes the photos JSON column.
func (p *Property) PhotoList() []string {
	return decodeStringList(p.Photos)
}

// AmenityList decodes the amenities JSON column.
func (p *Property) AmenityList() []string {
	return decodeStringList(p.Amenities)
}

func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Photos    []string `json:"photos"`
		Amenities []string `json:"amenities"`
		Landlord  *User    `json:"landlord,omitempty"`
		*Alias
	}{
		Photos:    decodeStringList(p.Photos),
		Amenities: decodeStringList(p.Amenities),
		Alias:     (*Alias)(p),
	}

	// Avoid a circular reference through Landlord.Properties
	if p.Landlord != nil && p.Landlord.ID > 0 {
		landlordCopy := *p.Landlord
		landlordCopy.Properties = nil
		aux.Landlord = &landlordCopy
	}

	return json.Marshal(aux)
}
