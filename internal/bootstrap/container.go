package bootstrap

import (
	"context"
	"log"

	"qr-dine-be/internal/config"
	"qr-dine-be/internal/controller"
	"qr-dine-be/internal/handler"
	"qr-dine-be/internal/pkg/logger"
	"qr-dine-be/internal/pkg/mailer"
	"qr-dine-be/internal/pkg/otp"
	"qr-dine-be/internal/pkg/payment"
	"qr-dine-be/internal/pkg/sms"
	"qr-dine-be/internal/repository/unitofwork"
	"qr-dine-be/internal/service"
	"qr-dine-be/internal/websocket"

	pktNats "qr-dine-be/pkg/nats"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	TokenController    controller.ITokenController
	OrderController    controller.IOrderController
	ProductController  controller.IProductController
	MerchantController controller.IMerchantController

	// Background Services (exposed for main.go to run)
	TokenService service.ITokenService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	} else {
		log.Println("[WARN] SMTP not configured, order receipts disabled")
	}

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// In-process balance cache
	balanceCache := gocache.New(gocache.NoExpiration, 0)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Payment gateway
	var gateway payment.Gateway
	if cfg.Payment.ServerKey != "" {
		gateway = payment.NewMidtransGateway(cfg.Payment.ServerKey, cfg.Payment.IsProduction)
		log.Println("[INFO] Using Payment Gateway: MIDTRANS")
	} else {
		gateway = payment.NewSimulatedGateway()
		log.Println("[INFO] Using Payment Gateway: SIMULATED (no server key configured)")
	}

	// 3. Services
	otpStore := otp.NewStore(rdb)
	smsSender := sms.NewConsoleSender(sysLogger)

	authService := service.NewAuthService(uowFactory, otpStore, smsSender, sysLogger, cfg.App.JWTSecret)
	merchantService := service.NewMerchantService(uowFactory, sysLogger, cfg.App.JWTSecret)
	productService := service.NewProductService(uowFactory)
	tokenService := service.NewTokenService(uowFactory, balanceCache, sysLogger)
	rewardService := service.NewRewardService(sysLogger)

	// A typed nil would slip past the service's interface nil check.
	var eventPub service.EventPublisher
	if natsPub != nil {
		eventPub = natsPub
	}

	orderService := service.NewOrderService(
		uowFactory,
		rewardService,
		gateway,
		eventPub,
		emailService,
		balanceCache,
		sysLogger,
		cfg.Payment.ServerKey,
	)

	// 4. Notification System
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go func() {
			if err := notifService.Start(); err != nil {
				log.Printf("[WARN] Notification worker failed to start: %v", err)
			}
		}()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger, cfg.App.JWTSecret)

	// 5. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		TokenController:    controller.NewTokenController(tokenService),
		OrderController:    controller.NewOrderController(orderService),
		ProductController:  controller.NewProductController(productService),
		MerchantController: controller.NewMerchantController(merchantService, sysLogger),

		TokenService: tokenService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
