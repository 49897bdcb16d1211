package routes

import (
	"fmt"
	"time"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
	"github.com/johndev38/LocationMatchmaker-sub000/storage"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
)

type CreatePropertyInput struct {
	Title       string   `json:"title" validate:"required,max=256"`
	Description string   `json:"description" validate:"max=5000"`
	Address     string   `json:"address" validate:"required,max=512"`
	Amenities   []string `json:"amenities"`
	Photos      []string `json:"photos" validate:"max=5"` // base64 payloads
}

// CreateProperty registers the landlord's listing. Each landlord owns at most
// one property; the address is geocoded best-effort so the proximity filter
// can use it later.
func CreateProperty(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Property
	res := storage.DB.Where("landlord_id = ?", claims.ID).Limit(1).Find(&existing)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "You already have a property listed", ctx)
		return
	}

	property := models.Property{
		LandlordID:  claims.ID,
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		Amenities:   models.EncodeStringList(input.Amenities),
		Photos:      models.EncodeStringList(uploadPhotos(input.Photos, claims.ID)),
	}

	if coords, err := deps.Geocoder.Geocode(ctx.Request().Context(), input.Address); err == nil {
		property.Lat = coords.Lat
		property.Lng = coords.Lng
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

type UpdatePropertyInput struct {
	Title       *string   `json:"title" validate:"omitempty,max=256"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	Address     *string   `json:"address" validate:"omitempty,max=512"`
	Amenities   *[]string `json:"amenities"`
}

func UpdateProperty(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	property := getOwnProperty(claims.ID, ctx)
	if property == nil {
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.Amenities != nil {
		property.Amenities = models.EncodeStringList(*input.Amenities)
	}
	if input.Address != nil && *input.Address != property.Address {
		property.Address = *input.Address
		property.Lat = 0
		property.Lng = 0
		if coords, err := deps.Geocoder.Geocode(ctx.Request().Context(), property.Address); err == nil {
			property.Lat = coords.Lat
			property.Lng = coords.Lng
		}
	}

	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	res := storage.DB.Preload("Landlord").Where("id = ?", id).Limit(1).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(&property)
}

// GetMyProperty returns the authenticated landlord's own listing.
func GetMyProperty(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	property := getOwnProperty(claims.ID, ctx)
	if property == nil {
		return
	}

	ctx.JSON(property)
}

type AddPropertyPhotoInput struct {
	Photo string `json:"photo" validate:"required"` // base64 payload
}

func AddPropertyPhoto(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	property := getOwnProperty(claims.ID, ctx)
	if property == nil {
		return
	}

	var input AddPropertyPhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	photos := property.PhotoList()
	if len(photos) >= models.MaxPropertyPhotos {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			fmt.Sprintf("A property can have at most %d photos", models.MaxPropertyPhotos), ctx)
		return
	}

	publicID := fmt.Sprintf("property/%d/%d", property.ID, time.Now().UnixNano())
	url := storage.UploadPropertyPhoto(input.Photo, publicID)
	if url == "" {
		utils.CreateError(iris.StatusBadGateway, "Upload Error", "Photo upload failed", ctx)
		return
	}

	photos = append(photos, url)
	property.Photos = models.EncodeStringList(photos)

	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

type DeletePropertyPhotoInput struct {
	URL string `json:"url" validate:"required"`
}

func DeletePropertyPhoto(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	property := getOwnProperty(claims.ID, ctx)
	if property == nil {
		return
	}

	var input DeletePropertyPhotoInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	photos := property.PhotoList()
	if !slices.Contains(photos, input.URL) {
		utils.CreateNotFound(ctx)
		return
	}

	remaining := make([]string, 0, len(photos)-1)
	for _, photo := range photos {
		if photo != input.URL {
			remaining = append(remaining, photo)
		}
	}

	storage.DeletePropertyPhoto(input.URL)

	property.Photos = models.EncodeStringList(remaining)
	if err := storage.DB.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

func getOwnProperty(landlordID uint, ctx iris.Context) *models.Property {
	var property models.Property
	res := storage.DB.Where("landlord_id = ?", landlordID).Limit(1).Find(&property)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return nil
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return nil
	}
	return &property
}

func uploadPhotos(payloads []string, landlordID uint) []string {
	urls := make([]string, 0, len(payloads))
	for i, payload := range payloads {
		if i >= models.MaxPropertyPhotos {
			break
		}
		publicID := fmt.Sprintf("property/%d/%d-%d", landlordID, time.Now().UnixNano(), i)
		if url := storage.UploadPropertyPhoto(payload, publicID); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
