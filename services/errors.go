package services

import "errors"

// Sentinel errors returned by the domain services. Routes map these onto the
// HTTP error taxonomy (NotFound, Forbidden, InvalidState, ValidationError).
var (
	ErrNotFound       = errors.New("resource not found")
	ErrForbidden      = errors.New("actor is not allowed to perform this operation")
	ErrInvalidState   = errors.New("transition not permitted from the current state")
	ErrValidation     = errors.New("invalid input")
	ErrDuplicateOffer = errors.New("landlord already has an open offer on this request")
)
