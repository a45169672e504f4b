// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"log"
	"time"

	"heartgift-be/internal/config"
	"heartgift-be/internal/controller"
	"heartgift-be/internal/handler"
	"heartgift-be/internal/pkg/logger"
	"heartgift-be/internal/pkg/mailer"
	"heartgift-be/internal/repository/unitofwork"
	"heartgift-be/internal/service"
	"heartgift-be/internal/websocket"
	"heartgift-be/pkg/music"
	pktNats "heartgift-be/pkg/nats"
	"heartgift-be/pkg/payment"
	"heartgift-be/pkg/qrserver"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const giftEventsTopic = "gift.events"

type Container struct {
	// Controllers
	GiftController    controller.IGiftController
	PlanController    controller.IPlanController
	PaymentController controller.IPaymentController
	MusicController   controller.IMusicController
	AdminController   controller.IAdminController

	// Background services (run by main.go)
	ConsumerService service.IConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("Warn: NATS unavailable, events stay in-process: %v", err)
		} else {
			natsPub = pub
		}
	}

	// 3. Redis (view cache + websocket fan-out); optional
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("Warn: invalid REDIS_URL, running without cache: %v", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	// 4. Domain clients
	qrClient := qrserver.NewClient(cfg.App.PublicOrigin)
	gateway := payment.NewGateway(cfg.Payment.Provider, cfg.Payment.ServerKey, cfg.Payment.IsProduction)

	var musicProvider music.Provider
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		musicProvider = music.NewSpotifyProvider(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)
	} else {
		log.Println("Info: no Spotify credentials, using built-in music catalog")
		musicProvider = music.NewMemoryProvider()
	}

	// 5. WebSocket hub (own log file so connection churn stays out of the main log)
	wsLogger := logger.NewIsolatedLogger("websocket." + cfg.App.LogFilePath)
	hub := websocket.NewHub(rdb, wsLogger)
	go hub.Run()

	// 6. Services
	planService := service.NewPlanService()
	giftService := service.NewGiftService(uowFactory, planService, qrClient, rdb, pubSub, giftEventsTopic, sysLogger)
	authTimeout := time.Duration(cfg.Payment.TimeoutSecs) * time.Second
	paymentService := service.NewPaymentService(uowFactory, planService, gateway, qrClient, rdb, pubSub, giftEventsTopic, hub, cfg.Payment.ServerKey, authTimeout, sysLogger)
	musicService := service.NewMusicService(musicProvider, sysLogger)
	adminService := service.NewAdminService(uowFactory, qrClient, cfg.Admin.Email, cfg.Admin.PasswordHash, cfg.Admin.JwtSecret)
	consumerService := service.NewConsumerService(pubSub, giftEventsTopic, emailService, natsPub, sysLogger)

	return &Container{
		GiftController:    controller.NewGiftController(giftService),
		PlanController:    controller.NewPlanController(planService),
		PaymentController: controller.NewPaymentController(paymentService),
		MusicController:   controller.NewMusicController(musicService),
		AdminController:   controller.NewAdminController(adminService),

		ConsumerService: consumerService,

		NotificationHandler: handler.NewNotificationHandler(hub, sysLogger),
		WebSocketHub:        hub,
	}
}
