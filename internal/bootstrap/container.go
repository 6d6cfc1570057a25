package bootstrap

import (
	"context"
	"log"
	"time"

	"winetour-be/internal/config"
	"winetour-be/internal/controller"
	"winetour-be/internal/pkg/logger"
	"winetour-be/internal/pkg/mailer"
	"winetour-be/internal/pkg/ratelimit"
	"winetour-be/internal/repository/unitofwork"
	"winetour-be/internal/service"
	pktNats "winetour-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	UserController         controller.IUserController
	TripController         controller.ITripController
	CatalogController      controller.ICatalogController
	SubscriptionController controller.ISubscriptionController
	PaymentController      controller.IPaymentController
	AdminController        controller.IAdminController

	// Exposed for server middleware wiring and main.go
	AccessService   service.IAccessService
	ConsumerService service.IConsumerService
	Logger          logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderEmail,
		cfg.App.FrontendURL,
	)

	// In-process event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// NATS mirror for external consumers; the app runs fine without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		natsPub = nil
	}

	// Redis backs the OTP rate limiter only.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (OTP rate limiting disabled)", err)
		rdb = nil
	}
	otpLimiter := ratelimit.NewOTPLimiter(rdb, cfg.App.OTPRateLimit, time.Hour)

	// Services
	publisherService := service.NewPublisherService(cfg.App.TripConfirmedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.TripConfirmedTopic,
		uowFactory,
		emailService,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, emailService, otpLimiter, sysLogger)
	userService := service.NewUserService(uowFactory)
	accessService := service.NewAccessService(uowFactory, natsPub, sysLogger)
	tripService := service.NewTripService(uowFactory, publisherService, natsPub, sysLogger)
	catalogService := service.NewCatalogService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, accessService, natsPub, sysLogger)
	adminService := service.NewAdminService(uowFactory, catalogService, sysLogger)

	return &Container{
		AuthController:         controller.NewAuthController(authService),
		UserController:         controller.NewUserController(userService),
		TripController:         controller.NewTripController(tripService),
		CatalogController:      controller.NewCatalogController(catalogService),
		SubscriptionController: controller.NewSubscriptionController(accessService),
		PaymentController:      controller.NewPaymentController(paymentService),
		AdminController:        controller.NewAdminController(adminService),

		AccessService:   accessService,
		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
