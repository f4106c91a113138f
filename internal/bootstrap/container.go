package bootstrap

import (
	"errors"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"

	"github.com/fabi0dev/amby/internal/config"
	"github.com/fabi0dev/amby/internal/controller"
	"github.com/fabi0dev/amby/internal/pkg/logger"
	"github.com/fabi0dev/amby/internal/pkg/mailer"
	"github.com/fabi0dev/amby/internal/repository/unitofwork"
	"github.com/fabi0dev/amby/internal/service"
	"github.com/fabi0dev/amby/pkg/ai/contextdocs"
	"github.com/fabi0dev/amby/pkg/llm"
	"github.com/fabi0dev/amby/pkg/llm/factory"
	"github.com/fabi0dev/amby/pkg/turnlock"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	WorkspaceController controller.IWorkspaceController
	ProjectController   controller.IProjectController
	DocumentController  controller.IDocumentController
	CommentController   controller.ICommentController
	ShareController     controller.IShareController
	ChatController      controller.IChatController

	// Background services, run from main.go
	ConsumerService service.IConsumerService

	Logger logger.ILogger
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
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	publisherService := service.NewPublisherService(cfg.App.ReindexTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ReindexTopicName, uowFactory, sysLogger)

	// LLM provider; the chat keeps working without one, answering with a
	// configuration hint instead.
	var llmProvider llm.Provider
	provider, err := factory.New(factory.Config{
		Provider:    cfg.Ai.Provider,
		Model:       cfg.Ai.Model,
		GroqAPIKey:  cfg.Ai.GroqAPIKey,
		GroqBaseURL: cfg.Ai.GroqBaseURL,
		OllamaHost:  cfg.Ai.OllamaHost,
	})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Printf("[WARN] LLM provider not configured, chat completions disabled")
		} else {
			log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
		}
	} else {
		llmProvider = provider
		log.Printf("[INFO] Using LLM provider: %s (%s)", llmProvider.Name(), llmProvider.Model())
	}

	// Turn serialization; Redis when available, in-process otherwise.
	var locker turnlock.Locker
	if cfg.App.RedisURL != "" {
		redisLocker, err := turnlock.NewRedisLocker(cfg.App.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to Redis: %v", err)
		}
		locker = redisLocker
		log.Printf("[INFO] Turn lock backed by Redis")
	} else {
		locker = turnlock.NewMemoryLocker()
		log.Printf("[INFO] Turn lock backed by process memory")
	}

	retriever := contextdocs.NewRetriever(service.NewDocumentSource(uowFactory))

	if cfg.App.JWTSecret == "" {
		log.Fatalf("[FATAL] JWT_SECRET is not set")
	}

	// Services
	authService := service.NewAuthService(uowFactory, cfg.App.JWTSecret)
	workspaceService := service.NewWorkspaceService(uowFactory, emailService, sysLogger)
	projectService := service.NewProjectService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, publisherService, sysLogger)
	commentService := service.NewCommentService(uowFactory)
	shareService := service.NewShareService(uowFactory, cfg.App.ClientURL)
	searchService := service.NewSearchService(uowFactory)
	chatService := service.NewChatService(uowFactory, llmProvider, retriever, locker, publisherService, sysLogger)

	return &Container{
		AuthController:      controller.NewAuthController(authService),
		WorkspaceController: controller.NewWorkspaceController(workspaceService),
		ProjectController:   controller.NewProjectController(projectService),
		DocumentController:  controller.NewDocumentController(documentService, searchService),
		CommentController:   controller.NewCommentController(commentService),
		ShareController:     controller.NewShareController(shareService),
		ChatController:      controller.NewChatController(chatService),

		ConsumerService: consumerService,

		Logger: sysLogger,
	}
}
