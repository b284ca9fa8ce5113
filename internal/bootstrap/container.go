package bootstrap

import (
	"context"
	"log"
	"os"
	"time"

	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/controller"
	"faq-chatbot-be/internal/handler"
	"faq-chatbot-be/internal/pkg/lineclient"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/mailer"
	"faq-chatbot-be/internal/repository/memory"
	"faq-chatbot-be/internal/repository/rediscache"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/internal/service"
	"faq-chatbot-be/internal/websocket"
	"faq-chatbot-be/pkg/conversation"
	"faq-chatbot-be/pkg/events"
	pktNats "faq-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	FaqController     controller.IFaqController
	AdminController   controller.IAdminController
	AuthController    controller.IAuthController
	LineController    controller.ILineController

	// WebSockets
	ChatWsHandler *handler.ChatWsHandler
	WebSocketHub  *websocket.Hub

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Used directly by the CLI tools
	Orchestrator *conversation.Orchestrator
	FaqService   service.IFaqService
	Logger       logger.ILogger

	closers []func()
}

// Options tweak the container for tools that do not serve HTTP
type Options struct {
	// Logger replaces the default zap logger
	Logger logger.ILogger
	// SkipNats keeps CLI tools off the event bus
	SkipNats bool
	// SyncChatLog makes each chat log append wait until the consumer has
	// stored it, so short-lived tools do not exit with logs in flight
	SyncChatLog bool
}

func instanceId() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "node"
	}
	return host + "-" + uuid.New().String()[:8]
}

func connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func NewContainer(db *gorm.DB, cfg *config.Config, opts Options) *Container {
	c := &Container{}
	instance := instanceId()

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := opts.Logger
	if sysLogger == nil {
		sysLogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c.Logger = sysLogger

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            256,
			BlockPublishUntilSubscriberAck: opts.SyncChatLog,
		},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	// 3. Infrastructure
	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" && !opts.SkipNats {
		var err error
		if natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		if natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL); err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	var rdb *redis.Client
	if cfg.Chatbot.StateStore == constant.StateStoreRedis || cfg.App.RedisURL != "" {
		rdb = connectRedis(cfg.App.RedisURL)
		if rdb != nil {
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	var states conversation.StateStore
	var locker conversation.Locker
	if cfg.Chatbot.StateStore == constant.StateStoreRedis && rdb != nil {
		states = rediscache.NewConversationRepository(rdb, cfg.Chatbot.StateTTL)
		// Instances sharing the store must share the per-user lock as well.
		locker = rediscache.NewUserLocker(rdb, cfg.Chatbot.LockTTL, 0)
		log.Printf("[INFO] Using conversation store: REDIS")
	} else {
		states = memory.NewConversationRepository(cfg.Chatbot.StateTTL)
		log.Printf("[INFO] Using conversation store: MEMORY")
	}

	// 4. Services
	// The bus publisher is passed only when connected; a typed nil would
	// defeat the nil checks in the services.
	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	faqService := service.NewFaqService(uowFactory, cfg.Chatbot.CorpusCacheTTL, eventPublisher, instance, sysLogger)
	if natsSub != nil {
		err := natsSub.Subscribe(pktNats.Subject(events.FaqAdded), constant.FaqEventsDurablePrefix+instance, faqService.HandleEvent)
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to FAQ events: %v", err)
		}
	}
	c.FaqService = faqService

	publisherService := service.NewPublisherService(cfg.Chatbot.ChatLogTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Chatbot.ChatLogTopic,
		uowFactory,
		emailService,
		cfg.Chatbot.EscalationEmail,
		eventPublisher,
		sysLogger,
	)

	orchestratorOpts := []conversation.Option{
		conversation.WithCorpusTimeout(cfg.Chatbot.FaqReadTimeout),
		conversation.WithLockTimeout(cfg.Chatbot.LockWaitTimeout),
	}
	if locker != nil {
		orchestratorOpts = append(orchestratorOpts, conversation.WithLocker(locker))
	}
	if cfg.Chatbot.SuggestionPool != nil {
		orchestratorOpts = append(orchestratorOpts, conversation.WithSuggestionPool(cfg.Chatbot.SuggestionPool))
	}
	c.Orchestrator = conversation.NewOrchestrator(faqService, states, publisherService, sysLogger, orchestratorOpts...)

	chatbotService := service.NewChatbotService(c.Orchestrator)
	authService := service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.App.JwtSecret, cfg.Admin.TokenTTL)
	adminService := service.NewAdminService(uowFactory, sysLogger)

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.Chatbot.WebSocketLogPath)
	c.WebSocketHub = websocket.NewHub(c.Orchestrator.Respond, rdb, instance, wsLogger)
	c.ChatWsHandler = handler.NewChatWsHandler(c.WebSocketHub, wsLogger)

	// 6. LINE
	if cfg.Line.ChannelSecret != "" && cfg.Line.ChannelToken != "" {
		replier, err := lineclient.NewReplier(cfg.Line.ChannelToken)
		if err != nil {
			log.Printf("[WARN] LINE channel disabled: %v", err)
		} else {
			c.LineController = controller.NewLineController(cfg.Line.ChannelSecret, chatbotService, replier, sysLogger)
		}
	}

	// 7. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.FaqController = controller.NewFaqController(faqService)
	c.AdminController = controller.NewAdminController(adminService)
	c.AuthController = controller.NewAuthController(authService)

	return c
}

// Close releases bus and cache connections in reverse order
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if err := c.Logger.Sync(); err != nil {
		log.Printf("[WARN] Failed to flush logs: %v", err)
	}
}
