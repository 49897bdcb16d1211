package routes

import (
	"github.com/johndev38/LocationMatchmaker-sub000/services"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateOfferInput struct {
	RequestID          uint     `json:"requestID" validate:"required"`
	Price              int      `json:"price" validate:"required,gt=0"`
	Description        string   `json:"description" validate:"max=2000"`
	AvailableAmenities []string `json:"availableAmenities"`
}

func CreateOffer(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateOfferInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	offer, err := deps.Offers.Create(claims.ID, services.CreateOfferParams{
		RequestID:          input.RequestID,
		Price:              input.Price,
		Description:        input.Description,
		AvailableAmenities: input.AvailableAmenities,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(offer)
}

func GetOffersByRequest(ctx iris.Context) {
	requestID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid request ID", ctx)
		return
	}

	offers, listErr := deps.Offers.ListByRequest(requestID)
	if listErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(offers)
}

// GetMyOffers returns the authenticated landlord's offers.
func GetMyOffers(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	offers, err := deps.Offers.ListByLandlord(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(offers)
}

type SetOfferStatusInput struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// SetOfferStatus lets the tenant who owns the referenced rental request
// accept or reject a pending offer.
func SetOfferStatus(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	offerID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid offer ID", ctx)
		return
	}

	var input SetOfferStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	offer, svcErr := deps.Offers.SetStatus(offerID, input.Status, claims.ID)
	if svcErr != nil {
		handleServiceError(svcErr, ctx)
		return
	}

	ctx.JSON(offer)
}
