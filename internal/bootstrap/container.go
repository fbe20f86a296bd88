package bootstrap

import (
	"fmt"
	"log"

	"soulstart-be/internal/config"
	"soulstart-be/internal/controller"
	"soulstart-be/internal/pkg/logger"
	"soulstart-be/internal/repository/memory"
	"soulstart-be/internal/service"
	"soulstart-be/pkg/devotion"
	pktNats "soulstart-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	DevotionController controller.IDevotionController
	ContentController  controller.IContentController
	DispatchController controller.IDispatchController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Devotion Engine
	store := devotion.NewStore(cfg.Devotions.Dir)
	resolver := devotion.NewResolver(store, devotion.DefaultFallbacks())
	renderer := devotion.NewRenderer(cfg.Devotions.SiteURL, cfg.Dispatch.MaxMessageChars, func(format string, args ...any) {
		sysLogger.Warn("Renderer", fmt.Sprintf(format, args...), nil)
	})

	// 4. In-Memory Outbox Storage
	outbox := memory.NewOutboxRepository()

	// 4.5 Infrastructure
	// NATS delivery bridge (optional). Sender automations subscribe to the
	// dispatch subjects and deliver the rendered messages.
	var deliveryPub *pktNats.Publisher
	if cfg.Dispatch.NatsURL != "" {
		var err error
		deliveryPub, err = pktNats.NewPublisher(cfg.Dispatch.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Dispatch.Topic, pubSub)

	devotionService := service.NewDevotionService(resolver, renderer, sysLogger)
	contentService := service.NewContentService(cfg.Devotions.Dir, cfg.Devotions.SiteURL, sysLogger)
	dispatchService := service.NewDispatchService(publisherService, outbox, sysLogger)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Dispatch.Topic,
		resolver,
		renderer,
		contentService, // Injected
		outbox,
		deliveryPub, // Injected (nil without NATS_URL)
	)

	// 6. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		DevotionController: controller.NewDevotionController(devotionService),
		ContentController:  controller.NewContentController(contentService),
		DispatchController: controller.NewDispatchController(dispatchService),

		ConsumerService: consumerService,
	}
}
