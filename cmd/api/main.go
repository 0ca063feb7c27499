package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"travia/internal/config"
	"travia/internal/database"
	"travia/internal/domain"
	"travia/internal/middleware"
	"travia/internal/modules/auth"
	"travia/internal/modules/booking"
	"travia/internal/modules/catalog"
	"travia/internal/modules/content"
	"travia/internal/modules/notify"
	"travia/internal/modules/payment"
	jwtsvc "travia/internal/pkg/jwt"
	"travia/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Midtrans.ServerKey == "" {
		log.Fatal("MIDTRANS_SERVER_KEY is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Schedule{},
		&domain.Booking{},
		&domain.Testimonial{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notify.NewHub()
	defer hub.Close()
	events := notify.NewSender(hub)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(scheduleRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	contentService := content.NewService(testimonialRepo, bookingRepo, scheduleRepo)
	contentHandler := content.NewHandler(contentService)

	bookingService := booking.NewService(bookingRepo, scheduleRepo, events)
	bookingHandler := booking.NewHandler(bookingService)

	gateway := payment.NewClient(cfg.Midtrans)
	paymentService := payment.NewService(gateway, bookingRepo, events, cfg.Midtrans.ServerKey, log.Printf)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	notifyHandler := notify.NewHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		contentHandler.RegisterRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)

		// gateway-facing; webhook authenticates by signature
		paymentHandler.RegisterRoutes(v1)

		// websocket auth happens in the handler (token query param)
		notifyHandler.RegisterRoutes(v1.Group("/admin"))

		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.RequireRole(string(domain.RoleAdmin)))
		{
			bookingHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Printf("level=info msg=starting api port=%s sandbox=%t", cfg.Port, cfg.Midtrans.IsSandbox())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
