package models

import (
	"gorm.io/gorm"
)

// Message is store-and-poll only: no conversation threading, no delivery state.
type Message struct {
	gorm.Model
	SenderID   uint   `json:"senderID" gorm:"index"`
	ReceiverID uint   `json:"receiverID" gorm:"index"`
	Content    string `json:"content" gorm:"size:5000"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
