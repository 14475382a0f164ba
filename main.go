package main

import (
	"fougue-server/routes"
	"fougue-server/services"
	"fougue-server/storage"
	"fougue-server/utils"
	"fmt"
	"log"
	"os"

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

	// Initialize services
	storage.InitializeDB()
	storage.InitializeRedis()
	services.InitializeMailer()

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

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
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

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Public site surface
	experiences := app.Party("/api/experiences")
	{
		experiences.Get("/", routes.GetPublicExperiences)
		experiences.Get("/{slug}", routes.GetExperienceBySlug)
	}

	products := app.Party("/api/products")
	{
		products.Get("/", routes.GetPublicProducts)
		products.Get("/{slug}", routes.GetProductBySlug)
	}

	app.Post("/api/bookings", routes.CreateBooking)
	app.Post("/api/orders", routes.CreateOrder)
	app.Get("/api/user/orders", routes.GetUserOrders)

	newsletter := app.Party("/api/newsletter")
	{
		newsletter.Post("/subscribe", routes.SubscribeNewsletter)
		newsletter.Post("/unsubscribe", routes.UnsubscribeNewsletter)
	}
	app.Post("/api/contact", routes.CreateContactMessage)

	// Availability: reads are public (the site calendar needs them),
	// writes require an admin session.
	availability := app.Party("/api/availability")
	{
		availability.Get("/", routes.GetAvailability)
		availability.Get("/resolved", routes.GetResolvedAvailability)
		availability.Get("/{id}", routes.GetAvailabilityByID)
		availability.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateAvailability)
		availability.Put("/{id}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateAvailability)
		availability.Delete("/{id}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteAvailability)
	}

	// Admin back-office
	app.Post("/api/admin/login", routes.AdminLogin)
	app.Post("/api/admin/refresh", refreshTokenVerifierMiddleware, routes.AdminRefresh)
	app.Post("/api/admin/logout", routes.AdminLogout)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)

		admin.Post("/experiences", routes.AdminCreateExperience)
		admin.Put("/experiences/{slug}", routes.AdminUpdateExperience)
		admin.Delete("/experiences/{slug}", routes.AdminDeleteExperience)

		admin.Get("/calendars", routes.AdminListCalendars)
		admin.Post("/calendars", routes.AdminCreateCalendar)
		admin.Put("/calendars/{id}", routes.AdminUpdateCalendar)
		admin.Delete("/calendars/{id}", routes.AdminDeleteCalendar)

		admin.Get("/bookings", routes.AdminListBookings)
		admin.Patch("/bookings/{id:uint}/status", routes.AdminUpdateBookingStatus)

		admin.Post("/products", routes.AdminCreateProduct)
		admin.Put("/products/{slug}", routes.AdminUpdateProduct)
		admin.Delete("/products/{slug}", routes.AdminDeleteProduct)

		admin.Get("/orders", routes.AdminListOrders)
		admin.Patch("/orders/{id:uint}/status", routes.AdminUpdateOrderStatus)

		admin.Get("/newsletter", routes.AdminListSubscribers)
		admin.Get("/contact", routes.AdminListContactMessages)
		admin.Patch("/contact/{id:uint}/read", routes.AdminMarkContactRead)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000" // fallback for local dev
	}
	addr := ":" + port

	fmt.Println("Starting server on", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
