package services

import (
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"gorm.io/gorm"
)

// NotificationEvent is a domain event the dispatcher reacts to.
type NotificationEvent struct {
	Type        string
	UserID      uint // recipient
	Title       string
	Message     string
	RelatedType string
	RelatedID   uint
}

// NotificationDispatcher creates notification rows in reaction to state
// transitions and serves the read/unread queries. Rows are never deleted.
type NotificationDispatcher struct {
	db *gorm.DB
}

func NewNotificationDispatcher(db *gorm.DB) *NotificationDispatcher {
	return &NotificationDispatcher{db: db}
}

// Dispatch creates exactly one unread notification for the event.
func (d *NotificationDispatcher) Dispatch(event NotificationEvent) (*models.Notification, error) {
	notification := models.Notification{
		UserID:      event.UserID,
		Type:        event.Type,
		Title:       event.Title,
		Message:     event.Message,
		RelatedType: event.RelatedType,
		RelatedID:   event.RelatedID,
		IsRead:      false,
	}

	if err := d.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListForUser returns the user's notifications, newest first. The id tiebreak
// keeps the order deterministic for rows sharing a timestamp.
func (d *NotificationDispatcher) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

// UnreadCount supports the client's polling badge.
func (d *NotificationDispatcher) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips a single notification to read. Marking an already-read
// notification again is a no-op success.
func (d *NotificationDispatcher) MarkRead(notificationID uint, userID uint) error {
	var notification models.Notification
	res := d.db.Where("id = ? AND user_id = ?", notificationID, userID).Limit(1).Find(&notification)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if notification.IsRead {
		return nil
	}

	now := time.Now()
	return d.db.Model(&notification).
		Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}

// MarkAllRead flips every unread notification of the user; calling it again
// affects zero rows. Returns the number of rows updated.
func (d *NotificationDispatcher) MarkAllRead(userID uint) (int64, error) {
	now := time.Now()
	res := d.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	return res.RowsAffected, res.Error
}
