package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fantastic-tour/service-routing/internal/application"
	"github.com/fantastic-tour/service-routing/internal/config"
	"github.com/fantastic-tour/service-routing/internal/geocode"
	"github.com/fantastic-tour/service-routing/internal/handler"
	"github.com/fantastic-tour/service-routing/internal/health"
	"github.com/fantastic-tour/service-routing/internal/logger"
	"github.com/fantastic-tour/service-routing/internal/middleware"
	"github.com/fantastic-tour/service-routing/internal/routing"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-routing")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-routing",
		zap.String("port", cfg.Port),
		zap.Strings("vehicles", cfg.Vehicles.List()),
	)

	// Initialize upstream clients
	geocoder := geocode.NewClient(cfg.Geocode.BaseURL, cfg.APIKey,
		geocode.WithTimeout(cfg.Geocode.Timeout),
		geocode.WithRateLimit(cfg.Geocode.RateLimit),
		geocode.WithLogger(log),
	)
	router := routing.NewClient(cfg.Route.BaseURL, cfg.APIKey,
		routing.WithTimeout(cfg.Route.Timeout),
		routing.WithRateLimit(cfg.Route.RateLimit),
		routing.WithVehicles(cfg.Vehicles),
		routing.WithLogger(log),
	)

	// Initialize application service
	plannerService := application.NewPlannerService(geocoder, router, cfg.Vehicles, log)

	// Initialize HTTP handler
	routeHandler := handler.NewRouteHandler(plannerService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler("service-routing")
	healthHandler.RegisterRoutes(engine)

	// Register metrics endpoint
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register routes
	routeHandler.RegisterRoutes(&engine.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-routing...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-routing stopped")
}
