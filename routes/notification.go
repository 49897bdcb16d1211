package routes

import (
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// GetNotifications lists the user's notifications, newest first. With
// ?markAllRead=true the unread ones are flipped before the list is returned.
func GetNotifications(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	if ctx.URLParamDefault("markAllRead", "false") == "true" {
		if _, err := deps.Notifications.MarkAllRead(claims.ID); err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	notifications, err := deps.Notifications.ListForUser(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notifications)
}

func GetUnreadNotificationCount(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	count, err := deps.Notifications.UnreadCount(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"unread": count})
}

func MarkNotificationRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	notificationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid notification ID", ctx)
		return
	}

	if err := deps.Notifications.MarkRead(notificationID, claims.ID); err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"read": true})
}

func MarkAllNotificationsRead(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	updated, err := deps.Notifications.MarkAllRead(claims.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"updated": updated})
}
