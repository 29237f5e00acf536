package routes

import (
	"context"
	"net/http"

	"turf-booking/internal/config"
	"turf-booking/internal/delivery/http/handler"
	"turf-booking/internal/infrastructure/cache"
	"turf-booking/internal/infrastructure/database"
	"turf-booking/internal/logger"
	"turf-booking/internal/middleware"
	"turf-booking/internal/notification"
	"turf-booking/internal/receipt"
	"turf-booking/internal/usecase/access"
	"turf-booking/internal/usecase/booking"
	"turf-booking/internal/usecase/comment"
	"turf-booking/internal/usecase/payment"
	"turf-booking/internal/usecase/turf"
	"turf-booking/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

// Dependencies are the long-lived clients built in main.
type Dependencies struct {
	Cache    cache.Cache
	Notifier notification.Notifier
	Images   turf.ImageStore
	Random   payment.RandomSource
	Receipts receipt.Generator
}

// SetupRoutes wires repositories, services and handlers onto a gin engine.
// Background jobs started here stop when ctx is done.
func SetupRoutes(ctx context.Context, cfg *config.Config, db *database.DB, deps Dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if deps.Notifier == nil {
		deps.Notifier = notification.NewLogNotifier()
	}
	if deps.Receipts == nil {
		deps.Receipts = receipt.NewTextGenerator(cfg.App.Name)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware(cfg.Server.Environment == "production"))
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(requestSizeLimit(cfg)))
	router.Use(middleware.RateLimitMiddleware(
		middleware.NewRateLimiter(ctx, cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst),
	))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})
	router.Static(cfg.Upload.URLPrefix, cfg.Upload.Dir)

	userRepository := database.NewUserRepository(db)
	favoriteRepository := database.NewFavoriteRepository(db)
	turfRepository := database.NewTurfRepository(db)
	bookingRepository := database.NewBookingRepository(db)
	commentRepository := database.NewCommentRepository(db)

	guard := access.NewGuard(userRepository)

	userService := user.NewService(userRepository, favoriteRepository, turfRepository, guard, deps.Notifier, cfg)
	turfService := turf.NewService(turfRepository, guard, deps.Cache, deps.Images, cfg.Redis.TTL)
	bookingService := booking.NewService(bookingRepository, turfRepository, guard, deps.Notifier, cfg.Notification.Timeout)
	paymentService := payment.NewService(
		bookingRepository,
		guard,
		payment.NewSimulator(deps.Random, cfg.Payment.SuccessRate),
		deps.Receipts,
		deps.Notifier,
		cfg.Notification.Timeout,
	)
	commentService := comment.NewService(commentRepository, turfRepository, guard)

	if cfg.Notification.ResetSweepInterval > 0 {
		go userService.StartResetTokenSweeper(ctx, cfg.Notification.ResetSweepInterval)
	}

	authHandler := handler.NewAuthHandler(userService)
	turfHandler := handler.NewTurfHandler(turfService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	commentHandler := handler.NewCommentHandler(commentService)

	api := router.Group("/api")
	{
		authHandler.RegisterRoutes(api)
		turfHandler.RegisterRoutes(api)
		commentHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
		{
			authHandler.RegisterProtectedRoutes(protected)
			turfHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			commentHandler.RegisterProtectedRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}

// requestSizeLimit leaves room for the multipart envelope around an image.
func requestSizeLimit(cfg *config.Config) int64 {
	limit := int64(middleware.DefaultMaxRequestSize)
	if upload := cfg.Upload.MaxSize + 1<<20; upload > limit {
		limit = upload
	}
	return limit
}
