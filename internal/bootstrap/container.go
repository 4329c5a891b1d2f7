package bootstrap

import (
	"context"
	"log"

	"quicknote-be/internal/config"
	"quicknote-be/internal/controller"
	"quicknote-be/internal/pkg/logger"
	"quicknote-be/internal/pkg/serverutils"
	"quicknote-be/internal/repository/contract"
	"quicknote-be/internal/repository/memory"
	"quicknote-be/internal/repository/redisstore"
	"quicknote-be/internal/repository/unitofwork"
	"quicknote-be/internal/service"

	pktNats "quicknote-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	NoteController controller.INoteController
	UserController controller.IUserController

	// Auth guard applied to protected route groups
	AuthGuard fiber.Handler

	// Background services (exposed for main.go to run)
	AuditService service.IAuditService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Session store: Redis when configured, in-process cache otherwise
	var sessionRepo contract.SessionRepository
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		sessionRepo = redisstore.NewSessionRepository(rdb)
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Auth.TokenTTL)
	}

	// 3. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		}
	}

	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub, natsPub)
	auditService := service.NewAuditService(pubSub, cfg.App.EventTopic, sysLogger)

	// 4. Domain services
	authService := service.NewAuthService(uowFactory, sessionRepo, publisherService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	noteService := service.NewNoteService(uowFactory, publisherService)
	userService := service.NewUserService(uowFactory, sessionRepo, publisherService)

	return &Container{
		AuthController: controller.NewAuthController(authService),
		NoteController: controller.NewNoteController(noteService),
		UserController: controller.NewUserController(authService, userService),

		AuthGuard: serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret, sessionRepo),

		AuditService: auditService,
		Logger:       sysLogger,
	}
}
