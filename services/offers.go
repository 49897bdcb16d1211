package services

import (
	"fmt"

	"github.com/johndev38/LocationMatchmaker-sub000/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// OfferService owns the offer lifecycle: creation against a rental request
// and the one-way pending -> accepted|rejected machine.
type OfferService struct {
	db            *gorm.DB
	notifications *NotificationDispatcher
}

func NewOfferService(db *gorm.DB, notifications *NotificationDispatcher) *OfferService {
	return &OfferService{db: db, notifications: notifications}
}

// ValidateOfferTransition checks the requested transition against the offer
// state machine. Terminal states are never reopened.
func ValidateOfferTransition(current, next string) error {
	if next != models.OfferStatusAccepted && next != models.OfferStatusRejected {
		return ErrValidation
	}
	if current != models.OfferStatusPending {
		return ErrInvalidState
	}
	return nil
}

type CreateOfferParams struct {
	RequestID          uint
	Price              int
	Description        string
	AvailableAmenities []string
}

// Create registers a pending offer by a landlord on a rental request and
// notifies the tenant. Amenities must be a subset of the request's amenities,
// and a landlord cannot hold two open offers on the same request.
func (s *OfferService) Create(landlordID uint, params CreateOfferParams) (*models.PropertyOffer, error) {
	if params.Price <= 0 {
		return nil, ErrValidation
	}

	var request models.RentalRequest
	res := s.db.Limit(1).Find(&request, params.RequestID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	requested := request.AmenityList()
	for _, amenity := range params.AvailableAmenities {
		if !slices.Contains(requested, amenity) {
			return nil, ErrValidation
		}
	}

	var open int64
	err := s.db.Model(&models.PropertyOffer{}).
		Where("landlord_id = ? AND request_id = ? AND status <> ?",
			landlordID, params.RequestID, models.OfferStatusRejected).
		Count(&open).Error
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, ErrDuplicateOffer
	}

	offer := models.PropertyOffer{
		LandlordID:         landlordID,
		RequestID:          params.RequestID,
		Price:              params.Price,
		Description:        params.Description,
		AvailableAmenities: models.EncodeStringList(params.AvailableAmenities),
		Status:             models.OfferStatusPending,
	}

	if err := s.db.Create(&offer).Error; err != nil {
		return nil, err
	}

	s.notifications.Dispatch(NotificationEvent{
		Type:        models.NotificationOfferReceived,
		UserID:      request.UserID,
		Title:       "New Offer Received",
		Message:     fmt.Sprintf("A landlord made an offer of %d on your rental request for %s", params.Price, request.DepartureCity),
		RelatedType: "offer",
		RelatedID:   offer.ID,
	})

	return &offer, nil
}

// SetStatus accepts or rejects a pending offer. Only the tenant who owns the
// referenced rental request may decide; the landlord is notified on success.
// The status write is a compare-and-swap on the pending state so that two
// concurrent decisions cannot both succeed (and double-notify).
func (s *OfferService) SetStatus(offerID uint, newStatus string, actingUserID uint) (*models.PropertyOffer, error) {
	var offer models.PropertyOffer
	res := s.db.Limit(1).Find(&offer, offerID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var request models.RentalRequest
	res = s.db.Limit(1).Find(&request, offer.RequestID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	if request.UserID != actingUserID {
		return nil, ErrForbidden
	}

	if err := ValidateOfferTransition(offer.Status, newStatus); err != nil {
		return nil, err
	}

	update := s.db.Model(&models.PropertyOffer{}).
		Where("id = ? AND status = ?", offerID, models.OfferStatusPending).
		Update("status", newStatus)
	if update.Error != nil {
		return nil, update.Error
	}
	if update.RowsAffected == 0 {
		// Lost the race against a concurrent decision.
		return nil, ErrInvalidState
	}

	offer.Status = newStatus

	notificationType := models.NotificationOfferAccepted
	title := "Offer Accepted"
	message := fmt.Sprintf("Your offer on the rental request for %s was accepted", request.DepartureCity)
	if newStatus == models.OfferStatusRejected {
		notificationType = models.NotificationOfferRejected
		title = "Offer Rejected"
		message = fmt.Sprintf("Your offer on the rental request for %s was rejected", request.DepartureCity)
	}

	s.notifications.Dispatch(NotificationEvent{
		Type:        notificationType,
		UserID:      offer.LandlordID,
		Title:       title,
		Message:     message,
		RelatedType: "offer",
		RelatedID:   offer.ID,
	})

	return &offer, nil
}

// ListByRequest returns the offers made on a rental request, newest first.
func (s *OfferService) ListByRequest(requestID uint) ([]models.PropertyOffer, error) {
	var offers []models.PropertyOffer
	err := s.db.Preload("Landlord").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

// ListByLandlord returns all offers a landlord has made, newest first.
func (s *OfferService) ListByLandlord(landlordID uint) ([]models.PropertyOffer, error) {
	var offers []models.PropertyOffer
	err := s.db.Preload("Request").
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}
