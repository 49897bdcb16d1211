package routes

import (
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
	"github.com/johndev38/LocationMatchmaker-sub000/services"
	"github.com/johndev38/LocationMatchmaker-sub000/storage"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateRentalRequestInput struct {
	DepartureCity string    `json:"departureCity" validate:"required,max=256"`
	LocationType  []string  `json:"locationType" validate:"required,min=1,dive,required"`
	MaxDistance   int       `json:"maxDistance" validate:"required,gt=0"`
	Adults        int       `json:"adults" validate:"gte=0"`
	Children      int       `json:"children" validate:"gte=0"`
	Babies        int       `json:"babies" validate:"gte=0"`
	Pets          int       `json:"pets" validate:"gte=0"`
	MaxBudget     int       `json:"maxBudget" validate:"required,gt=0"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required"`
	Amenities     []string  `json:"amenities"`
}

func CreateRentalRequest(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateRentalRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.EndDate.Before(input.StartDate) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "startDate must not be after endDate", ctx)
		return
	}
	if !input.EndDate.After(time.Now()) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "endDate must be in the future", ctx)
		return
	}

	request := models.RentalRequest{
		UserID:        claims.ID,
		DepartureCity: input.DepartureCity,
		LocationType:  models.EncodeStringList(input.LocationType),
		MaxDistance:   input.MaxDistance,
		Adults:        input.Adults,
		Children:      input.Children,
		Babies:        input.Babies,
		Pets:          input.Pets,
		MaxBudget:     input.MaxBudget,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Amenities:     models.EncodeStringList(input.Amenities),
		Status:        "active",
	}

	if err := storage.DB.Create(&request).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(request)
}

// GetRentalRequests lists all requests; readable by any authenticated user.
func GetRentalRequests(ctx iris.Context) {
	var requests []models.RentalRequest
	res := storage.DB.Order("created_at DESC").Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(requests)
}

func GetUserRentalRequests(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var requests []models.RentalRequest
	res := storage.DB.Where("user_id = ?", id).Order("created_at DESC").Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(requests)
}

// DeleteRentalRequest removes a request; only its owner may do so.
func DeleteRentalRequest(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var request models.RentalRequest
	res := storage.DB.Where("id = ?", id).Limit(1).Find(&request)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	if request.UserID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&request).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}

type FilterRentalRequestsInput struct {
	MaxDistance   *int     `json:"maxDistance" validate:"omitempty,gt=0"`
	City          string   `json:"city"`
	LocationTypes []string `json:"locationTypes"`
	BudgetFloor   *int     `json:"budgetFloor" validate:"omitempty,gt=0"`
	Proximity     bool     `json:"proximity"`
}

// FilterRentalRequests applies the composite filter over all active requests
// for a landlord. When the proximity toggle is on, distances are computed
// from the landlord's property; requests whose departure city could not be
// geocoded pass through rather than being hidden.
func FilterRentalRequests(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input FilterRentalRequestsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var requests []models.RentalRequest
	res := storage.DB.Where("status = ?", "active").Order("created_at DESC").Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var propertyCoords *services.Coordinates
	var property models.Property
	propRes := storage.DB.Where("landlord_id = ?", claims.ID).Limit(1).Find(&property)
	if propRes.Error == nil && propRes.RowsAffected > 0 && (property.Lat != 0 || property.Lng != 0) {
		propertyCoords = &services.Coordinates{Lat: property.Lat, Lng: property.Lng}
	}

	cities := make([]string, 0, len(requests))
	for _, request := range requests {
		cities = append(cities, request.DepartureCity)
	}
	origins := deps.Geocoder.GeocodeAll(ctx.Request().Context(), cities)

	filter := services.RequestFilter{
		MaxDistance:   input.MaxDistance,
		City:          input.City,
		LocationTypes: input.LocationTypes,
		BudgetFloor:   input.BudgetFloor,
		Proximity:     input.Proximity,
		Property:      propertyCoords,
	}

	ctx.JSON(filter.Apply(requests, origins))
}
