package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `json:"username" gorm:"uniqueIndex;size:64"`
	Email          string `json:"email" gorm:"uniqueIndex;size:256"`
	Password       string `json:"-"`
	IsLandlord     bool   `json:"isLandlord" gorm:"index"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`

	Requests   []RentalRequest `json:"requests,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Properties []Property      `json:"properties,omitempty" gorm:"foreignKey:LandlordID;references:ID"`
}
