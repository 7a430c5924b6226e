/*
Api-server is the editorial web application.

It loads configuration from the environment (and an optional .env file), migrates the
database, then serves the JSON API until SIGINT or SIGTERM.

Usage:

	api-server
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"editorial/database"
	"editorial/internal/config"
	"editorial/internal/http-api/handler"
	"editorial/internal/http-api/middleware"
	"editorial/internal/http-api/repository"
	"editorial/internal/http-api/service"
	"editorial/internal/notify"
	"editorial/internal/session"
	"editorial/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cfg.NewLogger(os.Stdout)
	slog.SetDefault(log)
	log.Info("application_initializing", "env", cfg.GoEnv)

	// open the database before registering handlers so a bad DSN exits immediately
	db, err := database.OpenGorm(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	sessions, closeSessions, err := openSessionStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	files, err := storage.NewFileStore(cfg.MediaRoot, cfg.UploadMaxBytes)
	if err != nil {
		return fmt.Errorf("open media root: %w", err)
	}
	defer files.Close()

	notifier := notify.NewNotifier(notify.NewMailer(cfg), cfg.AdminNotifyEmails, log)
	if !cfg.MailEnabled() {
		log.Warn("mail_disabled", "reason", "SMTP_HOST or SMTP_FROM not set")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	manuscriptRepo := repository.NewManuscriptRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)
	newsRepo := repository.NewNewsRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, sessions, cfg)
	workflowService := service.NewWorkflowService(manuscriptRepo, reviewRepo, historyRepo, files, notifier, log)
	reviewService := service.NewReviewService(reviewRepo, manuscriptRepo, userRepo, log)
	contentService := service.NewContentService(newsRepo, publicationRepo, manuscriptRepo, log)
	messageService := service.NewMessageService(messageRepo, userRepo, notifier, log)
	userAdminService := service.NewUserAdminService(userRepo, log)
	reportService := service.NewReportService(userRepo, manuscriptRepo, publicationRepo, newsRepo, messageRepo)
	dashboardService := service.NewDashboardService(userRepo, manuscriptRepo, reviewRepo, publicationRepo, newsRepo)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql handle: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.MaxMultipartMemory = cfg.UploadMaxBytes

	handler.RegisterRoutes(r, handler.Routes{
		Auth:        authService,
		RateLimiter: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Health:      handler.NewHealthHandler(sqlDB),
		AuthH:       handler.NewAuthHandler(authService, cfg.CookieSecure),
		Content:     handler.NewContentHandler(contentService),
		Manuscripts: handler.NewManuscriptHandler(workflowService, reviewService, cfg.UploadMaxBytes),
		Reviews:     handler.NewReviewHandler(reviewService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Admin:       handler.NewAdminHandler(reportService, userAdminService, messageService),
		Contact:     handler.NewContactHandler(messageService),
		Media:       handler.NewMediaHandler(files),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           applyCORSHandler(r, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("server_listening", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Info("shutdown_started", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Warn("graceful_shutdown_failed", "error", err)
			_ = server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		if err := notifier.Wait(ctx); err != nil {
			log.Warn("pending_mail_dropped", "error", err)
		}
		log.Info("shutdown_complete")
	}
	return nil
}

// openSessionStore uses Redis when REDIS_URL is set and process memory otherwise.
func openSessionStore(cfg *config.Config, log *slog.Logger) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Warn("session_store_memory", "reason", "REDIS_URL not set, sessions are lost on restart")
		return session.NewMemoryStore(), func() {}, nil
	}

	store, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("session_store_redis")
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn("redis_close_failed", "error", err)
		}
	}, nil
}
