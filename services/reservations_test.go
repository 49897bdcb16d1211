package services

import (
	"errors"
	"testing"
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"gorm.io/gorm"
)

func TestValidateReservationTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    error
	}{
		{"pending to confirmed", models.ReservationStatusPending, models.ReservationStatusConfirmed, nil},
		{"pending to cancelled", models.ReservationStatusPending, models.ReservationStatusCancelled, nil},
		{"confirmed to completed", models.ReservationStatusConfirmed, models.ReservationStatusCompleted, nil},
		{"cannot complete pending", models.ReservationStatusPending, models.ReservationStatusCompleted, ErrInvalidState},
		{"cannot cancel confirmed", models.ReservationStatusConfirmed, models.ReservationStatusCancelled, ErrInvalidState},
		{"cancelled is final", models.ReservationStatusCancelled, models.ReservationStatusConfirmed, ErrInvalidState},
		{"completed is final", models.ReservationStatusCompleted, models.ReservationStatusCancelled, ErrInvalidState},
		{"cannot reset to pending", models.ReservationStatusConfirmed, models.ReservationStatusPending, ErrValidation},
		{"unknown target", models.ReservationStatusPending, "bogus", ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateReservationTransition(tc.current, tc.next)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("ValidateReservationTransition(%q, %q) = %v, want %v", tc.current, tc.next, got, tc.want)
			}
		})
	}
}

func TestValidatePaymentTransitionIsForwardOnly(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    error
	}{
		{"unpaid to partial", models.PaymentStatusUnpaid, models.PaymentStatusPartiallyPaid, nil},
		{"unpaid to paid", models.PaymentStatusUnpaid, models.PaymentStatusPaid, nil},
		{"partial to paid", models.PaymentStatusPartiallyPaid, models.PaymentStatusPaid, nil},
		{"paid cannot regress", models.PaymentStatusPaid, models.PaymentStatusPartiallyPaid, ErrInvalidState},
		{"partial cannot regress", models.PaymentStatusPartiallyPaid, models.PaymentStatusUnpaid, ErrInvalidState},
		{"no self transition", models.PaymentStatusPaid, models.PaymentStatusPaid, ErrInvalidState},
		{"unknown target", models.PaymentStatusUnpaid, "refunded", ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidatePaymentTransition(tc.current, tc.next)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("ValidatePaymentTransition(%q, %q) = %v, want %v", tc.current, tc.next, got, tc.want)
			}
		})
	}
}

func TestValidateReservationWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  error
	}{
		{"future window", now.AddDate(0, 0, 7), now.AddDate(0, 0, 14), nil},
		{"start after end", now.AddDate(0, 0, 14), now.AddDate(0, 0, 7), ErrValidation},
		{"zero-length window", now.AddDate(0, 0, 7), now.AddDate(0, 0, 7), ErrValidation},
		{"start in the past", now.AddDate(0, 0, -1), now.AddDate(0, 0, 7), ErrValidation},
		{"start is now", now, now.AddDate(0, 0, 7), ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateReservationWindow(tc.start, tc.end, now)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("ValidateReservationWindow(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func createTestReservation(t *testing.T, db *gorm.DB, svc *ReservationService, tenantID, landlordID uint) *models.Reservation {
	t.Helper()

	property := models.Property{LandlordID: landlordID, Title: "Loft", Address: "Lyon"}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to create property: %v", err)
	}

	reservation, err := svc.Create(tenantID, CreateReservationParams{
		PropertyID: property.ID,
		LandlordID: landlordID,
		StartDate:  time.Now().AddDate(0, 0, 7),
		EndDate:    time.Now().AddDate(0, 0, 14),
		TotalPrice: 900,
	})
	if err != nil {
		t.Fatalf("failed to create reservation: %v", err)
	}
	return reservation
}

func TestTenantCancelNotifiesLandlord(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db, NewNotificationDispatcher(db))

	tenant := createTestUser(t, db, "tenant", false)
	landlord := createTestUser(t, db, "landlord", true)
	reservation := createTestReservation(t, db, svc, tenant.ID, landlord.ID)

	cancelled, err := svc.Cancel(reservation.ID, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error cancelling: %v", err)
	}
	if cancelled.Status != models.ReservationStatusCancelled {
		t.Fatalf("expected cancelled status, got %q", cancelled.Status)
	}

	// The cancellation notice goes to the landlord, not back to the tenant.
	if got := countNotifications(t, db, landlord.ID, models.NotificationReservationCancelled); got != 1 {
		t.Fatalf("expected 1 cancellation notification for the landlord, got %d", got)
	}
	if got := countNotifications(t, db, tenant.ID, models.NotificationReservationCancelled); got != 0 {
		t.Fatalf("expected no cancellation notification for the tenant, got %d", got)
	}
}

func TestLandlordConfirmNotifiesTenant(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db, NewNotificationDispatcher(db))

	tenant := createTestUser(t, db, "tenant", false)
	landlord := createTestUser(t, db, "landlord", true)
	reservation := createTestReservation(t, db, svc, tenant.ID, landlord.ID)

	if _, err := svc.SetStatus(reservation.ID, models.ReservationStatusConfirmed, landlord.ID); err != nil {
		t.Fatalf("unexpected error confirming: %v", err)
	}

	if got := countNotifications(t, db, tenant.ID, models.NotificationReservationConfirmed); got != 1 {
		t.Fatalf("expected 1 confirmation notification for the tenant, got %d", got)
	}
	if got := countNotifications(t, db, landlord.ID, models.NotificationReservationConfirmed); got != 0 {
		t.Fatalf("expected no confirmation notification for the landlord, got %d", got)
	}
}
