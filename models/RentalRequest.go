package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RentalRequest struct {
	gorm.Model
	UserID        uint           `json:"userID" gorm:"index"`
	DepartureCity string         `json:"departureCity" gorm:"index"`
	LocationType  datatypes.JSON `json:"locationType"` // non-empty set of tags: mountain, sea, city, countryside, ...
	MaxDistance   int            `json:"maxDistance"`  // km the tenant is willing to travel from the departure city
	Adults        int            `json:"adults"`
	Children      int            `json:"children"`
	Babies        int            `json:"babies"`
	Pets          int            `json:"pets"`
	MaxBudget     int            `json:"maxBudget"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	Amenities     datatypes.JSON `json:"amenities"`
	Status        string         `json:"status" gorm:"size:16;default:'active';index"` // active

	User   *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Offers []PropertyOffer `json:"offers,omitempty" gorm:"foreignKey:RequestID"`
}

// LocationTypes decodes the locationType JSON column.
func (r *RentalRequest) LocationTypes() []string {
	return decodeStringList(r.LocationType)
}

// AmenityList decodes the amenities JSON column.
func (r *RentalRequest) AmenityList() []string {
	return decodeStringList(r.Amenities)
}

// Custom JSON marshaling to expose the JSON columns as plain arrays
func (r *RentalRequest) MarshalJSON() ([]byte, error) {
	type Alias RentalRequest
	aux := &struct {
		LocationType []string `json:"locationType"`
		Amenities    []string `json:"amenities"`
		*Alias
	}{
		LocationType: []string{},
		Amenities:    []string{},
		Alias:        (*Alias)(r),
	}

	aux.LocationType = decodeStringList(r.LocationType)
	aux.Amenities = decodeStringList(r.Amenities)

	return json.Marshal(aux)
}

func decodeStringList(raw datatypes.JSON) []string {
	out := []string{}
	if raw == nil {
		return out
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err == nil {
		out = values
	}
	return out
}

// EncodeStringList marshals a string slice into a JSON column value.
func EncodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}
