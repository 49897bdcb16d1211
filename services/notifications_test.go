package services

import (
	"errors"
	"testing"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
)

func TestMarkAllReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	dispatcher := NewNotificationDispatcher(db)

	for i := 0; i < 2; i++ {
		if _, err := dispatcher.Dispatch(NotificationEvent{
			Type:   models.NotificationOfferReceived,
			UserID: 7,
			Title:  "New Offer Received",
		}); err != nil {
			t.Fatalf("failed to dispatch: %v", err)
		}
	}
	if _, err := dispatcher.Dispatch(NotificationEvent{
		Type:   models.NotificationOfferReceived,
		UserID: 8,
		Title:  "New Offer Received",
	}); err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}

	first, err := dispatcher.MarkAllRead(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != 2 {
		t.Fatalf("expected 2 rows updated on the first call, got %d", first)
	}

	second, err := dispatcher.MarkAllRead(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != 0 {
		t.Fatalf("expected 0 rows updated on the second call, got %d", second)
	}

	unread, err := dispatcher.UnreadCount(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unread != 0 {
		t.Fatalf("expected 0 unread for user 7, got %d", unread)
	}

	// Another user's notifications are untouched.
	otherUnread, err := dispatcher.UnreadCount(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if otherUnread != 1 {
		t.Fatalf("expected 1 unread for user 8, got %d", otherUnread)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	dispatcher := NewNotificationDispatcher(db)

	notification, err := dispatcher.Dispatch(NotificationEvent{
		Type:   models.NotificationOfferAccepted,
		UserID: 5,
		Title:  "Offer Accepted",
	})
	if err != nil {
		t.Fatalf("failed to dispatch: %v", err)
	}

	if err := dispatcher.MarkRead(notification.ID, 5); err != nil {
		t.Fatalf("unexpected error on first MarkRead: %v", err)
	}
	if err := dispatcher.MarkRead(notification.ID, 5); err != nil {
		t.Fatalf("expected no-op success on second MarkRead, got %v", err)
	}

	if err := dispatcher.MarkRead(notification.ID, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another user's notification, got %v", err)
	}
}
