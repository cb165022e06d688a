// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/evlist/event-signup/internal/config"
	"github.com/evlist/event-signup/internal/database"
	"github.com/evlist/event-signup/internal/handler"
	"github.com/evlist/event-signup/internal/repository"
	"github.com/evlist/event-signup/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// ── 1. Connect to PostgreSQL and bootstrap the schema ─────────────────
	pool, err := database.NewPool(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	logger.Info("connected to postgres", zap.String("db", cfg.DBName))

	// ── 2. Wire up layers ────────────────────────────────────────────────
	eventRepo := repository.NewEventRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	surveyRepo := repository.NewSurveyRepository(pool)

	eventSvc := service.NewEventService(eventRepo)
	regSvc := service.NewRegistrationService(eventRepo, regRepo)
	surveySvc := service.NewSurveyService(eventRepo, surveyRepo)

	eventHandler := handler.NewEventHandler(eventSvc, regSvc, surveySvc, logger)
	uploadHandler, err := handler.NewUploadHandler(cfg.UploadDir, logger)
	if err != nil {
		logger.Fatal("uploads", zap.Error(err))
	}

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.AccessLog(logger))
	r.Use(handler.CORS)

	r.Get("/health", handler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventHandler.CreateEvent)
			r.Get("/", eventHandler.ListEvents)
			r.Get("/{id}", eventHandler.GetEvent)
			r.Put("/{id}", eventHandler.UpdateEvent)
			r.Delete("/{id}", eventHandler.DeleteEvent)
			r.Post("/{id}/register", eventHandler.Register)
			r.Get("/{id}/registrations", eventHandler.ListRegistrations)
			r.Post("/{id}/survey", eventHandler.SubmitSurvey)
			r.Get("/{id}/survey-stats", eventHandler.SurveyStats)
		})
		r.Post("/upload", uploadHandler.Upload)
	})

	r.Handle("/uploads/*", uploadHandler.ServeUploads())

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
