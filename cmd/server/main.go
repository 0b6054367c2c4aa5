package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frameyourvoice/api/internal/config"
	"github.com/frameyourvoice/api/internal/database"
	"github.com/frameyourvoice/api/internal/handler"
	"github.com/frameyourvoice/api/internal/jobs"
	"github.com/frameyourvoice/api/internal/middleware"
	"github.com/frameyourvoice/api/internal/model"
	"github.com/frameyourvoice/api/internal/repository"
	"github.com/frameyourvoice/api/internal/service"
	"github.com/frameyourvoice/api/pkg/jwt"
)

// targetReader adapts the campaign and user repositories to the
// reconciler's view of reported targets
type targetReader struct {
	campaigns *repository.CampaignRepository
	users     *repository.UserRepository
}

func (t *targetReader) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	return t.campaigns.GetByID(ctx, id)
}

func (t *targetReader) GetUser(ctx context.Context, id string) (*model.User, error) {
	return t.users.GetByID(ctx, id)
}

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	reportRepo := repository.NewReportRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	warningRepo := repository.NewWarningRepository(db)
	appealRepo := repository.NewAppealRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Initialize services
	notifier := service.NewNotifier(service.NotifierConfig{
		Store:   notificationRepo,
		Enabled: cfg.Notifications.Enabled,
	})

	reportService := service.NewReportService(db, reportRepo, summaryRepo, userRepo, campaignRepo)
	moderationService := service.NewModerationService(db, reportRepo, summaryRepo, userRepo, campaignRepo, warningRepo, notifier)
	userService := service.NewUserService(db, userRepo, warningRepo, notifier)
	appealService := service.NewAppealService(db, appealRepo, userRepo, campaignRepo, notifier)
	campaignService := service.NewCampaignService(userRepo, campaignRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.RequestsPerMinute,
		Window: time.Minute,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize summary reconciler
	reconciler := jobs.NewSummaryReconciler(
		summaryRepo,
		reportRepo,
		&targetReader{campaigns: campaignRepo, users: userRepo},
		cfg.Jobs.SummaryReconcileInterval,
	)
	reconciler.Start()
	defer reconciler.Stop()

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(db)
	reportHandler := handler.NewReportHandler(reportService)
	moderationHandler := handler.NewModerationHandler(moderationService)
	userHandler := handler.NewUserHandler(userService)
	appealHandler := handler.NewAppealHandler(appealService)
	campaignHandler := handler.NewCampaignHandler(campaignService)
	notificationHandler := handler.NewNotificationHandler(notifier)

	// Create router and register routes
	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)

	// API routes sit behind OptionalAuth: report intake and campaign
	// lookup accept anonymous callers, the rest enforce identity in the
	// handler.
	api := http.NewServeMux()
	reportHandler.RegisterPublicRoutes(api)
	campaignHandler.RegisterRoutes(api)
	campaignHandler.RegisterPublicRoutes(api)
	appealHandler.RegisterRoutes(api)
	userHandler.RegisterRoutes(api)
	notificationHandler.RegisterRoutes(api)

	// Admin routes sit behind AdminAuth as one sub-router
	admin := http.NewServeMux()
	reportHandler.RegisterAdminRoutes(admin)
	moderationHandler.RegisterAdminRoutes(admin)
	userHandler.RegisterAdminRoutes(admin)
	appealHandler.RegisterAdminRoutes(admin)

	optionalAuth := middleware.OptionalAuth(jwtService)
	adminAuth := middleware.AdminAuth(jwtService)
	mux.Handle("/v1/admin/", adminAuth(admin))
	mux.Handle("/v1/", optionalAuth(api))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
