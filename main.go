package main

import (
	"fmt"
	"log"
	"os"

	"github.com/johndev38/LocationMatchmaker-sub000/routes"
	"github.com/johndev38/LocationMatchmaker-sub000/services"
	"github.com/johndev38/LocationMatchmaker-sub000/storage"
	"github.com/johndev38/LocationMatchmaker-sub000/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	redisClient := storage.InitializeRedis()

	dispatcher := services.NewNotificationDispatcher(storage.DB)
	routes.Configure(routes.Services{
		Offers:        services.NewOfferService(storage.DB, dispatcher),
		Reservations:  services.NewReservationService(storage.DB, dispatcher),
		Notifications: dispatcher,
		Geocoder:      services.NewGeocoder(redisClient),
	})

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT Verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint - CRITICAL for Render
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/logout", refreshTokenVerifierMiddleware, routes.Logout)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetUser)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
	}

	rentalRequest := app.Party("/api/rentalrequest")
	{
		rentalRequest.Post("/", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.CreateRentalRequest)
		rentalRequest.Get("/", accessTokenVerifierMiddleware, routes.GetRentalRequests)
		rentalRequest.Post("/filter", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.FilterRentalRequests)
		rentalRequest.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserRentalRequests)
		rentalRequest.Delete("/{id}", accessTokenVerifierMiddleware, routes.DeleteRentalRequest)
	}

	offer := app.Party("/api/offer")
	{
		offer.Post("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.CreateOffer)
		offer.Get("/request/{id}", accessTokenVerifierMiddleware, routes.GetOffersByRequest)
		offer.Get("/mine", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.GetMyOffers)
		offer.Patch("/{id}/status", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.SetOfferStatus)
	}

	property := app.Party("/api/property")
	{
		property.Post("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.CreateProperty)
		property.Get("/mine", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.GetMyProperty)
		property.Get("/{id}", accessTokenVerifierMiddleware, routes.GetProperty)
		property.Patch("/", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.UpdateProperty)
		property.Post("/photo", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.AddPropertyPhoto)
		property.Delete("/photo", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.DeletePropertyPhoto)
	}

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.CreateReservation)
		reservation.Get("/tenant", accessTokenVerifierMiddleware, routes.GetTenantReservations)
		reservation.Get("/landlord", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.GetLandlordReservations)
		reservation.Patch("/{id}/status", accessTokenVerifierMiddleware, routes.SetReservationStatus)
		reservation.Patch("/{id}/payment", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.SetPaymentStatus)
		reservation.Delete("/{id}", accessTokenVerifierMiddleware, routes.CancelReservation)
	}

	// Legacy contract aliases kept for older mobile builds
	contracts := app.Party("/api/contracts")
	{
		contracts.Post("/", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.CreateContract)
		contracts.Get("/tenant", accessTokenVerifierMiddleware, routes.GetTenantContracts)
		contracts.Get("/landlord", accessTokenVerifierMiddleware, utils.LandlordOnlyMiddleware, routes.GetLandlordContracts)
		contracts.Patch("/{id}/status", accessTokenVerifierMiddleware, routes.SetContractStatus)
		contracts.Patch("/{id}/payment", accessTokenVerifierMiddleware, utils.TenantOnlyMiddleware, routes.SetContractPaymentStatus)
		contracts.Delete("/{id}", accessTokenVerifierMiddleware, routes.CancelContract)
	}

	messages := app.Party("/api/messages")
	{
		messages.Post("/", accessTokenVerifierMiddleware, routes.CreateMessage)
		messages.Get("/", accessTokenVerifierMiddleware, routes.GetConversation)
	}

	notifications := app.Party("/api/notifications")
	{
		notifications.Get("/", accessTokenVerifierMiddleware, routes.GetNotifications)
		notifications.Get("/unread-count", accessTokenVerifierMiddleware, routes.GetUnreadNotificationCount)
		notifications.Patch("/{id}/read", accessTokenVerifierMiddleware, routes.MarkNotificationRead)
		notifications.Post("/read-all", accessTokenVerifierMiddleware, routes.MarkAllNotificationsRead)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
