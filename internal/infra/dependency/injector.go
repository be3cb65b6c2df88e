// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/agency-ops/backend/config"
	"github.com/agency-ops/backend/internal/application/adapter"
	"github.com/agency-ops/backend/internal/application/usecase/auth"
	"github.com/agency-ops/backend/internal/application/usecase/client"
	"github.com/agency-ops/backend/internal/application/usecase/document"
	"github.com/agency-ops/backend/internal/application/usecase/vat"
	"github.com/agency-ops/backend/internal/infra/server/router"
	"github.com/agency-ops/backend/internal/integration/adapters"
	"github.com/agency-ops/backend/internal/integration/email"
	"github.com/agency-ops/backend/internal/integration/email/templates"
	"github.com/agency-ops/backend/internal/integration/entrypoint/controller"
	"github.com/agency-ops/backend/internal/integration/entrypoint/middleware"
	"github.com/agency-ops/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	objectStorage adapter.ObjectStorage,
) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	documentRepo := persistence.NewDocumentRepository(db)
	clientRepo := persistence.NewClientRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	extractionService := newExtractionService(cfg)

	// Create auth use cases
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	// Create document use cases
	ingestDocumentsUseCase := document.NewIngestDocumentsUseCase(documentRepo, objectStorage)
	listDocumentsUseCase := document.NewListDocumentsUseCase(documentRepo)
	reviewDocumentUseCase := document.NewReviewDocumentUseCase(documentRepo)
	extractFieldsUseCase := document.NewExtractFieldsUseCase(documentRepo, extractionService)

	// Create VAT reporting use cases
	periodReportUseCase := vat.NewGetPeriodReportUseCase(documentRepo)
	dataHealthUseCase := vat.NewGetDataHealthUseCase(documentRepo)
	exportPeriodUseCase := vat.NewExportPeriodUseCase(periodReportUseCase)
	exportXLSXUseCase := vat.NewExportReportXLSXUseCase(periodReportUseCase, dataHealthUseCase)

	// Create client use cases
	createClientUseCase := client.NewCreateClientUseCase(clientRepo)
	listClientsUseCase := client.NewListClientsUseCase(clientRepo)
	updateClientUseCase := client.NewUpdateClientUseCase(clientRepo)
	deleteClientUseCase := client.NewDeleteClientUseCase(clientRepo)
	inviteClientUseCase := client.NewInviteClientUseCase(clientRepo, emailService, cfg.Portal.BaseURL)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	documentController := controller.NewDocumentController(
		ingestDocumentsUseCase,
		listDocumentsUseCase,
		reviewDocumentUseCase,
		extractFieldsUseCase,
	)

	vatController := controller.NewVATController(
		periodReportUseCase,
		dataHealthUseCase,
		exportPeriodUseCase,
		exportXLSXUseCase,
	)

	clientController := controller.NewClientController(
		createClientUseCase,
		listClientsUseCase,
		updateClientUseCase,
		deleteClientUseCase,
		inviteClientUseCase,
	)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(redisClient)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create email worker
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create email template renderer: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, newEmailSender(cfg), renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		documentController,
		vatController,
		clientController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: emailWorker,
	}, nil
}

// newExtractionService picks the extraction backend from configuration. A
// configured HTTP service wins over Gemini; with neither, extraction stays
// disabled and the extract endpoint answers with empty fields.
func newExtractionService(cfg *config.Config) adapter.ExtractionService {
	switch {
	case cfg.Extraction.ServiceURL != "":
		slog.Info("Using HTTP extraction service", "url", cfg.Extraction.ServiceURL)
		return adapters.NewHTTPExtractionService(cfg.Extraction.ServiceURL)
	case cfg.Extraction.GeminiAPIKey != "":
		slog.Info("Using Gemini extraction service", "model", cfg.Extraction.GeminiModel)
		return adapters.NewGeminiExtractionService(cfg.Extraction.GeminiAPIKey, cfg.Extraction.GeminiModel)
	default:
		slog.Info("Field extraction disabled, no backend configured")
		return nil
	}
}

// newEmailSender returns the Resend client, or the mock sender when no API
// key is configured so local development works without an account.
func newEmailSender(cfg *config.Config) adapter.EmailSender {
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails will be logged instead of sent")
		return email.NewMockEmailSender()
	}
	return email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
}
