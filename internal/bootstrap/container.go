package bootstrap

import (
	"context"
	"fmt"
	"time"

	"buddyai-be/internal/config"
	"buddyai-be/internal/controller"
	"buddyai-be/internal/pkg/logger"
	"buddyai-be/internal/pkg/mailer"
	"buddyai-be/internal/pkg/metrics"
	"buddyai-be/internal/pkg/serverutils"
	"buddyai-be/internal/repository/contract"
	"buddyai-be/internal/repository/memory"
	"buddyai-be/internal/repository/redisstore"
	"buddyai-be/internal/repository/unitofwork"
	"buddyai-be/internal/service"
	"buddyai-be/pkg/database"
	"buddyai-be/pkg/events"
	"buddyai-be/pkg/llm"
	"buddyai-be/pkg/llm/factory"
	"buddyai-be/pkg/token"

	pktNats "buddyai-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const activityTopic = "buddyai.activity"

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// NewContainer builds the LLM provider from cfg and wires everything around it.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction())

	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		APIKey:   cfg.ProviderAPIKey(),
		BaseURL:  cfg.ProviderBaseURL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM provider: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    cfg.Ai.LLMModel,
	})

	return newContainer(db, cfg, provider, sysLogger)
}

// NewContainerWith wires the application around an already constructed provider.
func NewContainerWith(db *gorm.DB, cfg *config.Config, provider llm.LLMProvider) (*Container, error) {
	return newContainer(db, cfg, provider, logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.IsProduction()))
}

func newContainer(db *gorm.DB, cfg *config.Config, provider llm.LLMProvider, sysLogger logger.ILogger) (*Container, error) {
	if cfg.Auth.JwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, sysLogger); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() {
		_ = activityLogger.Sync()
		_ = sysLogger.Sync()
	})

	tokens := token.NewManager(cfg.Auth.JwtSecret, cfg.Auth.JwtExpiry)
	denylist := c.newDenylist(cfg, sysLogger)

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			sysLogger,
		)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	bus := events.MultiPublisher{service.NewWatermillPublisher(pubSub, activityTopic)}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, events stay in-process", map[string]interface{}{"error": err.Error()})
		} else {
			bus = append(bus, natsPub)
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	publisherService := service.NewPublisherService(bus, sysLogger)
	c.ConsumerService = service.NewConsumerService(pubSub, activityTopic, activityLogger, sysLogger)

	// 3. Services
	authService := service.NewAuthService(uowFactory, tokens, denylist, emailService, publisherService, sysLogger)
	chatService := service.NewChatService(
		uowFactory,
		metrics.InstrumentProvider(provider),
		cfg.Ai.ProviderTimeout,
		publisherService,
		sysLogger,
	)

	// 4. Controllers
	jwt := serverutils.JwtMiddleware(authService)
	c.AuthController = controller.NewAuthController(authService, jwt)
	c.ChatController = controller.NewChatController(chatService, jwt)

	return c, nil
}

// newDenylist prefers Redis so revocations are shared between instances.
func (c *Container) newDenylist(cfg *config.Config, log logger.ILogger) contract.TokenDenylist {
	if cfg.App.RedisURL == "" {
		return memory.NewTokenDenylist()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unavailable, using in-process token denylist", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewTokenDenylist()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return redisstore.NewTokenDenylist(rdb)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
