package routes

import (
	"strconv"

	"github.com/johndev38/LocationMatchmaker-sub000/models"
	"github.com/johndev38/LocationMatchmaker-sub000/storage"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type CreateMessageInput struct {
	ReceiverID uint   `json:"receiverID" validate:"required"`
	Content    string `json:"content" validate:"required,max=5000"`
}

// CreateMessage stores a direct message. The sender is always the
// authenticated user, never taken from the body.
func CreateMessage(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input CreateMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.ReceiverID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Cannot message yourself", ctx)
		return
	}

	var receiver models.User
	res := storage.DB.Limit(1).Find(&receiver, input.ReceiverID)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	message := models.Message{
		SenderID:   claims.ID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
	}

	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(message)
}

// GetConversation returns both directions of the thread between the
// authenticated user and ?withUserID=, oldest first.
func GetConversation(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	otherIDStr := ctx.URLParam("withUserID")
	otherID, err := strconv.ParseUint(otherIDStr, 10, 32)
	if err != nil || otherID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "withUserID query parameter is required", ctx)
		return
	}

	var messages []models.Message
	res := storage.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			claims.ID, otherID, otherID, claims.ID).
		Order("created_at ASC, id ASC").
		Find(&messages)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(messages)
}
