// @title           Ireland Travel Planner API
// @version         1.0
// @description     Builds day by day Ireland itineraries from a POI catalogue and an LLM.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	appLogger "github.com/FACorreiaa/go-ireland-travel-planner/app/logger"
	appMiddleware "github.com/FACorreiaa/go-ireland-travel-planner/app/middleware"
	"github.com/FACorreiaa/go-ireland-travel-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-ireland-travel-planner/app/tracer"
	"github.com/FACorreiaa/go-ireland-travel-planner/config"
	_ "github.com/FACorreiaa/go-ireland-travel-planner/docs"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/container"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger, closeLog := appLogger.New(os.Stdout, cfg.Mode, cfg.Logging)
	defer closeLog()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	shutdownTelemetry, err := tracer.InitTracingAndMetrics(cfg.Otel.ServiceName)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	metricsAddress := fmt.Sprintf("%s:%s", cfg.Handlers.Prometheus.Host, cfg.Handlers.Prometheus.Port)
	metricsServer := tracer.NewMetricsServer(metricsAddress, logger)
	go func() {
		logger.Info("Starting metrics server", slog.String("address", metricsAddress))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server error", slog.Any("error", err))
		}
	}()

	// --- Dependencies ---
	c, err := container.NewContainer(ctx, &cfg, logger, metrics.Get())
	if err != nil {
		logger.Error("Failed to initialize container", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	routerConfig := &router.Config{
		CatalogueHandler: c.CatalogueHandler,
		ItineraryHandler: c.ItineraryHandler,
		TagsHandler:      c.TagsHandler,
	}
	if cfg.Auth.JWTSecret != "" {
		routerConfig.AuthenticateMiddleware = appMiddleware.Authenticate([]byte(cfg.Auth.JWTSecret), cfg.Auth.Audience, logger)
	} else {
		logger.Warn("auth.jwt_secret is empty, itinerary generation is not protected")
	}

	requestTimeout := cfg.Server.Timeout
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Minute
	}

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(requestTimeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", router.SetupRouter(routerConfig))

	// --- HTTP Server ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: requestTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", slog.Any("error", err))
	}

	logger.Info("Application shut down complete.")
}
