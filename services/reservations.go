package services

import (
	"fmt"
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"gorm.io/gorm"
)

// ReservationService owns the booking lifecycle. The entity carries two
// independent status axes: status (landlord-driven) and paymentStatus
// (tenant-driven). They are deliberately uncoupled; a cancelled reservation
// with paid paymentStatus stays representable.
type ReservationService struct {
	db            *gorm.DB
	notifications *NotificationDispatcher
}

func NewReservationService(db *gorm.DB, notifications *NotificationDispatcher) *ReservationService {
	return &ReservationService{db: db, notifications: notifications}
}

// ValidateReservationTransition checks the status axis:
// pending -> confirmed|cancelled, confirmed -> completed.
func ValidateReservationTransition(current, next string) error {
	switch next {
	case models.ReservationStatusConfirmed, models.ReservationStatusCancelled:
		if current != models.ReservationStatusPending {
			return ErrInvalidState
		}
	case models.ReservationStatusCompleted:
		if current != models.ReservationStatusConfirmed {
			return ErrInvalidState
		}
	default:
		return ErrValidation
	}
	return nil
}

var paymentRank = map[string]int{
	models.PaymentStatusUnpaid:        0,
	models.PaymentStatusPartiallyPaid: 1,
	models.PaymentStatusPaid:          2,
}

// ValidatePaymentTransition checks the payment axis. Strictly forward-only:
// paid -> unpaid style rewinds are rejected rather than silently overwritten.
func ValidatePaymentTransition(current, next string) error {
	nextRank, ok := paymentRank[next]
	if !ok {
		return ErrValidation
	}
	currentRank, ok := paymentRank[current]
	if !ok {
		return ErrValidation
	}
	if nextRank <= currentRank {
		return ErrInvalidState
	}
	return nil
}

// ValidateReservationWindow rejects inverted or past-starting date ranges.
func ValidateReservationWindow(start, end, now time.Time) error {
	if !start.Before(end) {
		return ErrValidation
	}
	if !start.After(now) {
		return ErrValidation
	}
	return nil
}

type CreateReservationParams struct {
	PropertyID      uint
	LandlordID      uint
	StartDate       time.Time
	EndDate         time.Time
	TotalPrice      int
	SpecialRequests string
	OfferID         *uint
}

// Create books a property for a tenant and notifies the landlord. No row is
// persisted when validation fails.
func (s *ReservationService) Create(tenantID uint, params CreateReservationParams) (*models.Reservation, error) {
	if params.TotalPrice <= 0 {
		return nil, ErrValidation
	}
	if err := ValidateReservationWindow(params.StartDate, params.EndDate, time.Now()); err != nil {
		return nil, err
	}

	var property models.Property
	res := s.db.Limit(1).Find(&property, params.PropertyID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var landlord models.User
	res = s.db.Limit(1).Find(&landlord, params.LandlordID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 || !landlord.IsLandlord {
		return nil, ErrNotFound
	}

	reservation := models.Reservation{
		PropertyID:      params.PropertyID,
		TenantID:        tenantID,
		LandlordID:      params.LandlordID,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
		TotalPrice:      params.TotalPrice,
		Status:          models.ReservationStatusPending,
		PaymentStatus:   models.PaymentStatusUnpaid,
		SpecialRequests: params.SpecialRequests,
		OfferID:         params.OfferID,
	}

	if err := s.db.Create(&reservation).Error; err != nil {
		return nil, err
	}

	s.notifications.Dispatch(NotificationEvent{
		Type:        models.NotificationReservationRequested,
		UserID:      params.LandlordID,
		Title:       "New Reservation Request",
		Message:     fmt.Sprintf("You have a new reservation request for %s from %s to %s", property.Title, params.StartDate.Format("Jan 2, 2006"), params.EndDate.Format("Jan 2, 2006")),
		RelatedType: "reservation",
		RelatedID:   reservation.ID,
	})

	return &reservation, nil
}

// SetStatus moves the status axis. Only the landlord may drive it, with one
// asymmetry: cancelling a pending reservation is open to the tenant as well.
func (s *ReservationService) SetStatus(reservationID uint, newStatus string, actingUserID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	res := s.db.Limit(1).Find(&reservation, reservationID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	tenantCancel := newStatus == models.ReservationStatusCancelled &&
		reservation.Status == models.ReservationStatusPending &&
		actingUserID == reservation.TenantID

	if actingUserID != reservation.LandlordID && !tenantCancel {
		return nil, ErrForbidden
	}

	if err := ValidateReservationTransition(reservation.Status, newStatus); err != nil {
		return nil, err
	}

	update := s.db.Model(&models.Reservation{}).
		Where("id = ? AND status = ?", reservationID, reservation.Status).
		Update("status", newStatus)
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	reservation.Status = newStatus

	var notificationType, title string
	switch newStatus {
	case models.ReservationStatusConfirmed:
		notificationType = models.NotificationReservationConfirmed
		title = "Reservation Confirmed"
	case models.ReservationStatusCancelled:
		notificationType = models.NotificationReservationCancelled
		title = "Reservation Cancelled"
	case models.ReservationStatusCompleted:
		notificationType = models.NotificationReservationCompleted
		title = "Reservation Completed"
	}

	// Notify the party that did not act.
	recipient := reservation.TenantID
	message := fmt.Sprintf("Your reservation has been %s", newStatus)
	if tenantCancel {
		recipient = reservation.LandlordID
		message = fmt.Sprintf("The tenant cancelled reservation #%d", reservation.ID)
	}

	s.notifications.Dispatch(NotificationEvent{
		Type:        notificationType,
		UserID:      recipient,
		Title:       title,
		Message:     message,
		RelatedType: "reservation",
		RelatedID:   reservation.ID,
	})

	return &reservation, nil
}

// SetPaymentStatus moves the payment axis. Tenant-only, forward-only.
func (s *ReservationService) SetPaymentStatus(reservationID uint, newStatus string, actingUserID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	res := s.db.Limit(1).Find(&reservation, reservationID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	if actingUserID != reservation.TenantID {
		return nil, ErrForbidden
	}

	if err := ValidatePaymentTransition(reservation.PaymentStatus, newStatus); err != nil {
		return nil, err
	}

	update := s.db.Model(&models.Reservation{}).
		Where("id = ? AND payment_status = ?", reservationID, reservation.PaymentStatus).
		Update("payment_status", newStatus)
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		return nil, ErrInvalidState
	}

	reservation.PaymentStatus = newStatus

	s.notifications.Dispatch(NotificationEvent{
		Type:        models.NotificationPaymentUpdated,
		UserID:      reservation.LandlordID,
		Title:       "Payment Status Updated",
		Message:     fmt.Sprintf("The payment for reservation #%d is now %s", reservation.ID, newStatus),
		RelatedType: "reservation",
		RelatedID:   reservation.ID,
	})

	return &reservation, nil
}

// Cancel is the delete-like operation: it only succeeds on pending
// reservations and is open to both parties.
func (s *ReservationService) Cancel(reservationID uint, actingUserID uint) (*models.Reservation, error) {
	return s.SetStatus(reservationID, models.ReservationStatusCancelled, actingUserID)
}

// ListByTenant returns the tenant's reservations, newest first.
func (s *ReservationService) ListByTenant(tenantID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").Preload("Landlord").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// ListByLandlord returns the reservations on the landlord's property, newest first.
func (s *ReservationService) ListByLandlord(landlordID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("Property").Preload("Tenant").
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}
