package routes

import (
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/services"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateReservationInput struct {
	PropertyID      uint      `json:"propertyID" validate:"required"`
	LandlordID      uint      `json:"landlordID" validate:"required"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required"`
	TotalPrice      int       `json:"totalPrice" validate:"required,gt=0"`
	SpecialRequests string    `json:"specialRequests" validate:"max=2000"`
	OfferID         *uint     `json:"offerID"`
}

func CreateReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, err := deps.Reservations.Create(claims.ID, services.CreateReservationParams{
		PropertyID:      input.PropertyID,
		LandlordID:      input.LandlordID,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		TotalPrice:      input.TotalPrice,
		SpecialRequests: input.SpecialRequests,
		OfferID:         input.OfferID,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(reservation)
}

// GetTenantReservations lists the authenticated tenant's reservations.
func GetTenantReservations(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reservations, err := deps.Reservations.ListByTenant(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

// GetLandlordReservations lists reservations on the landlord's property.
func GetLandlordReservations(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reservations, err := deps.Reservations.ListByLandlord(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

type SetReservationStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

// SetReservationStatus moves a reservation through its lifecycle. The service
// enforces who may perform which transition.
func SetReservationStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input SetReservationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, svcErr := deps.Reservations.SetStatus(reservationID, input.Status, claims.ID)
	if svcErr != nil {
		handleServiceError(svcErr, ctx)
		return
	}

	ctx.JSON(reservation)
}

type SetPaymentStatusInput struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=partially_paid paid"`
}

// SetPaymentStatus advances the payment state. Only the tenant can do this,
// and it only ever moves forward.
func SetPaymentStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input SetPaymentStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, svcErr := deps.Reservations.SetPaymentStatus(reservationID, input.PaymentStatus, claims.ID)
	if svcErr != nil {
		handleServiceError(svcErr, ctx)
		return
	}

	ctx.JSON(reservation)
}

// CancelReservation is sugar for a status update to cancelled.
func CancelReservation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	reservationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	reservation, svcErr := deps.Reservations.Cancel(reservationID, claims.ID)
	if svcErr != nil {
		handleServiceError(svcErr, ctx)
		return
	}

	ctx.JSON(reservation)
}
