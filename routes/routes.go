package routes

import (
	"errors"

	"github.com/johndev38/LocationMatchmaker-sub000/services"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
)

// Services holds the domain services the handlers delegate to. They are
// constructed once at process start and injected via Configure, so tests can
// swap in fresh instances.
type Services struct {
	Offers        *services.OfferService
	Reservations  *services.ReservationService
	Notifications *services.NotificationDispatcher
	Geocoder      *services.Geocoder
}

var deps Services

// Configure injects the service objects. Must be called before serving.
func Configure(s Services) {
	deps = s
}

// handleServiceError maps the service sentinel errors onto the HTTP error
// taxonomy. Anything unrecognized is an internal error.
func handleServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrForbidden):
		utils.CreateForbidden(ctx)
	case errors.Is(err, services.ErrInvalidState):
		utils.CreateInvalidState(err.Error(), ctx)
	case errors.Is(err, services.ErrDuplicateOffer):
		utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
	case errors.Is(err, services.ErrValidation):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}
