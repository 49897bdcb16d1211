package services

import (
	"errors"
	"testing"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
)

func TestValidateOfferTransition(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		want    error
	}{
		{"pending to accepted", models.OfferStatusPending, models.OfferStatusAccepted, nil},
		{"pending to rejected", models.OfferStatusPending, models.OfferStatusRejected, nil},
		{"accepted is final", models.OfferStatusAccepted, models.OfferStatusRejected, ErrInvalidState},
		{"rejected is final", models.OfferStatusRejected, models.OfferStatusAccepted, ErrInvalidState},
		{"cannot re-accept", models.OfferStatusAccepted, models.OfferStatusAccepted, ErrInvalidState},
		{"cannot reset to pending", models.OfferStatusAccepted, models.OfferStatusPending, ErrValidation},
		{"unknown target", models.OfferStatusPending, "bogus", ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateOfferTransition(tc.current, tc.next)
			if !errors.Is(got, tc.want) && got != tc.want {
				t.Fatalf("ValidateOfferTransition(%q, %q) = %v, want %v", tc.current, tc.next, got, tc.want)
			}
		})
	}
}

func createTestOffer(t *testing.T, svc *OfferService, landlordID, requestID uint) *models.PropertyOffer {
	t.Helper()

	offer, err := svc.Create(landlordID, CreateOfferParams{RequestID: requestID, Price: 800})
	if err != nil {
		t.Fatalf("failed to create offer: %v", err)
	}
	return offer
}

func TestSetOfferStatusForbiddenForNonOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewOfferService(db, NewNotificationDispatcher(db))

	tenant := createTestUser(t, db, "tenant", false)
	other := createTestUser(t, db, "othertenant", false)
	landlord := createTestUser(t, db, "landlord", true)

	request := models.RentalRequest{UserID: tenant.ID, DepartureCity: "Paris", MaxDistance: 50, MaxBudget: 1000, Status: "active"}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	offer := createTestOffer(t, svc, landlord.ID, request.ID)

	// A tenant who does not own the request cannot decide the offer.
	if _, err := svc.SetStatus(offer.ID, models.OfferStatusAccepted, other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	var reloaded models.PropertyOffer
	db.First(&reloaded, offer.ID)
	if reloaded.Status != models.OfferStatusPending {
		t.Fatalf("offer status changed to %q after a forbidden call", reloaded.Status)
	}
	if got := countNotifications(t, db, landlord.ID, models.NotificationOfferAccepted); got != 0 {
		t.Fatalf("expected no acceptance notification after a forbidden call, got %d", got)
	}
}

func TestAcceptOfferNotifiesLandlordExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewOfferService(db, NewNotificationDispatcher(db))

	tenant := createTestUser(t, db, "tenant", false)
	landlord := createTestUser(t, db, "landlord", true)

	request := models.RentalRequest{UserID: tenant.ID, DepartureCity: "Paris", MaxDistance: 50, MaxBudget: 1000, Status: "active"}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	offer := createTestOffer(t, svc, landlord.ID, request.ID)
	if got := countNotifications(t, db, tenant.ID, models.NotificationOfferReceived); got != 1 {
		t.Fatalf("expected 1 offer_received notification for the tenant, got %d", got)
	}

	accepted, err := svc.SetStatus(offer.ID, models.OfferStatusAccepted, tenant.ID)
	if err != nil {
		t.Fatalf("unexpected error accepting offer: %v", err)
	}
	if accepted.Status != models.OfferStatusAccepted {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}
	if got := countNotifications(t, db, landlord.ID, models.NotificationOfferAccepted); got != 1 {
		t.Fatalf("expected exactly 1 offer_accepted notification, got %d", got)
	}

	// A second decision on the now-terminal offer must fail and must not
	// notify again.
	if _, err := svc.SetStatus(offer.ID, models.OfferStatusRejected, tenant.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState on a terminal offer, got %v", err)
	}

	var reloaded models.PropertyOffer
	db.First(&reloaded, offer.ID)
	if reloaded.Status != models.OfferStatusAccepted {
		t.Fatalf("expected status to remain accepted, got %q", reloaded.Status)
	}
	if got := countNotifications(t, db, landlord.ID, models.NotificationOfferAccepted); got != 1 {
		t.Fatalf("expected the acceptance notification count to stay at 1, got %d", got)
	}
	if got := countNotifications(t, db, landlord.ID, models.NotificationOfferRejected); got != 0 {
		t.Fatalf("expected no rejection notification, got %d", got)
	}
}
