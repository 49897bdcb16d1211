package models

import "time"

// Notification types emitted by the dispatcher.
const (
	NotificationOfferReceived        = "offer_received"
	NotificationOfferAccepted        = "offer_accepted"
	NotificationOfferRejected        = "offer_rejected"
	NotificationReservationRequested = "reservation_requested"
	NotificationReservationConfirmed = "reservation_confirmed"
	NotificationReservationCancelled = "reservation_cancelled"
	NotificationReservationCompleted = "reservation_completed"
	NotificationPaymentUpdated       = "payment_updated"
)

// Notification represents an in-app notification for a user. Rows are created
// only by the dispatcher in reaction to state transitions and are never deleted.
type Notification struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userID" gorm:"not null;index"`

	Type    string `json:"type" gorm:"size:32;index"`
	Title   string `json:"title" gorm:"size:100"`
	Message string `json:"message" gorm:"size:500"`

	RelatedType string `json:"relatedType" gorm:"size:32"` // offer, reservation, ...
	RelatedID   uint   `json:"relatedID"`

	IsRead    bool       `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt"`
}
