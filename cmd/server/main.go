package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmoreira/callsync/internal/api"
	"github.com/dmoreira/callsync/internal/auth"
	"github.com/dmoreira/callsync/internal/bitrix"
	"github.com/dmoreira/callsync/internal/config"
	"github.com/dmoreira/callsync/internal/directory"
	"github.com/dmoreira/callsync/internal/metrics"
	"github.com/dmoreira/callsync/internal/sheets"
	"github.com/dmoreira/callsync/internal/storage"
	syncer "github.com/dmoreira/callsync/internal/sync"
	"github.com/dmoreira/callsync/pkg/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("department", cfg.TargetDepartment).
		Str("worksheet", cfg.WorksheetName).
		Dur("lookback", cfg.Lookback).
		Msg("starting callsync server")

	ctx := context.Background()

	// Connect to the spreadsheet sink
	sink, err := sheets.NewSink(ctx, cfg.CredentialsFile, cfg.SheetKey, cfg.WorksheetName, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to spreadsheet sink")
	}

	// Create run-record store (noop unless DYNAMO_MODE is set)
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize run store")
	}

	// Create CRM client and directory resolver
	crm := bitrix.NewClient(cfg.WebhookBaseURL, cfg.HTTPTimeout, log.Logger)
	resolver := directory.NewResolver(crm, cfg.TargetDepartment, cfg.ExcludedUserIDs, log.Logger)

	// Create sync runner
	runner := syncer.NewRunner(crm, resolver, sink, store, cfg.Lookback, log.Logger)

	// Create HTTP handlers
	triggerHandler := api.NewTriggerHandler(runner, cfg.TriggerToken, log.Logger)
	runsHandler := api.NewRunsHandler(store, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Register public routes (no auth required)
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())

	// Internal operator routes
	r.Route("/internal", func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/runs", runsHandler.List)
	})

	// The sync trigger answers on any remaining GET path; the external
	// scheduler only knows the base URL plus the token parameter.
	r.Get("/", triggerHandler.Handle)
	r.Get("/*", triggerHandler.Handle)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // a full sync run happens inside one request
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"callsync"}`)
}
