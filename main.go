package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ruzzidanali/smashit/config"
	"github.com/ruzzidanali/smashit/routes"
	"github.com/ruzzidanali/smashit/storage"
	"github.com/ruzzidanali/smashit/utils"

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

	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		log.Fatalf("invalid configuration: %v", cfgErr)
	}

	storage.InitializeDB(cfg.DatabaseURL)
	storage.InitializeRedis(cfg.RedisURL)
	storage.InitializeUploads(cfg.UploadsDir)

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
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	auth := app.Party("/api/auth")
	{
		auth.Post("/register", routes.Register)
		auth.Post("/login", routes.Login)
		auth.Get("/me", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware, routes.Me)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.OwnerOnlyMiddleware)
	{
		admin.Get("/business", routes.GetAdminBusiness)
		admin.Get("/business/profile", routes.GetBusinessProfile)
		admin.Put("/business/profile", routes.UpdateBusinessProfile)
		admin.Get("/courts", routes.AdminListCourts)
		admin.Post("/courts", routes.AdminCreateCourt)
		admin.Put("/courts/{id:uint}", routes.AdminUpdateCourt)
		admin.Get("/bookings", routes.AdminListBookings)
		admin.Delete("/bookings/{id:uint}", routes.AdminCancelBooking)
		admin.Patch("/bookings/{id:uint}/payment", routes.AdminUpdatePaymentStatus)
	}

	public := app.Party("/api/public")
	{
		public.Get("/businesses", routes.ListPublicBusinesses)
		public.Get("/locations/states", routes.ListStates)
		public.Get("/locations/cities", routes.ListCities)
	}

	// Customer-facing routes, scoped by business slug
	b := app.Party("/api/b/{slug}")
	{
		b.Get("/courts", routes.PublicListCourts)
		b.Get("/availability", routes.GetAvailability)
		b.Post("/bookings", routes.CreateBooking)
		b.Get("/my-bookings", routes.ListMyBookings)
		b.Delete("/my-bookings/{id:uint}", routes.CancelMyBooking)
		b.Post("/my-bookings/{id:uint}/payment-proof", routes.UploadPaymentProof)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	app.HandleDir("/uploads", iris.Dir(storage.UploadsDir()))

	addr := "0.0.0.0:" + cfg.Port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
