package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poolmate/carpool/internal/api/handlers"
	"github.com/poolmate/carpool/internal/api/routes"
	"github.com/poolmate/carpool/internal/config"
	"github.com/poolmate/carpool/internal/repository/riderepo"
	"github.com/poolmate/carpool/internal/service/geocode"
	"github.com/poolmate/carpool/internal/service/matching"
	"github.com/poolmate/carpool/internal/service/pricing"
	"github.com/poolmate/carpool/internal/service/routing"
	"github.com/poolmate/carpool/internal/service/weather"
	"github.com/poolmate/carpool/pkg/cache"
	"github.com/poolmate/carpool/pkg/database"
	"github.com/poolmate/carpool/pkg/logger"
	"github.com/poolmate/carpool/pkg/monitoring"
	"github.com/poolmate/carpool/pkg/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Poolmate Carpool Application",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
		LogLevel:   cfg.NewRelic.LogLevel,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
		nrApp = &monitoring.NewRelicApp{}
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized successfully",
			logger.String("app_name", cfg.NewRelic.AppName))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Pick the provider-cache backend. Memory is per-process; Redis shares
	// cached weather and geocode responses across instances.
	var store cache.Store = cache.NewMemory()
	if cfg.Cache.Backend == "redis" {
		redisClient, err := cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		defer cache.Close(redisClient)
		store = cache.NewRedis(redisClient)
		appLogger.Info("Connected to Redis successfully")
	}

	// Initialize PostgreSQL
	postgresDB, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MaxIdle:  cfg.Database.MaxIdle,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresDB.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	// Initialize WebSocket hub
	wsHub := websocket.NewHub(appLogger)
	go wsHub.Run()

	// Wire up services
	rideRepo := riderepo.NewPostgres(postgresDB)

	matcher := matching.NewService(matching.Config{
		PerfectRadiusKM:   cfg.Matching.PerfectRadiusKM,
		GoodRadiusKM:      cfg.Matching.GoodRadiusKM,
		PerfectTimeWindow: cfg.Matching.PerfectTimeWindow,
		GoodTimeWindow:    cfg.Matching.GoodTimeWindow,
	})

	weatherClient := weather.NewClient(weather.ClientConfig{
		BaseURL:  cfg.Weather.BaseURL,
		Timeout:  cfg.Weather.Timeout,
		CacheTTL: cfg.Weather.CacheTTL,
	}, store)
	weatherSvc := weather.NewService(weatherClient, appLogger)

	geocoder := geocode.NewClient(geocode.ClientConfig{
		BaseURL:  cfg.Geocode.BaseURL,
		Timeout:  cfg.Geocode.Timeout,
		CacheTTL: cfg.Geocode.CacheTTL,
	}, store)

	router := routing.NewClient(routing.ClientConfig{
		BaseURL: cfg.Routing.BaseURL,
		Timeout: cfg.Routing.Timeout,
	})

	pricer := pricing.NewService(pricing.Config{
		BaseFare:      cfg.Pricing.BaseFare,
		PerKMRate:     cfg.Pricing.PerKMRate,
		PerMinuteRate: cfg.Pricing.PerMinuteRate,
	})

	// Initialize handlers with dependencies
	h := handlers.NewHandlers(rideRepo, matcher, weatherSvc, geocoder, router, pricer, appLogger, wsHub, nrApp)

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if nrApp.IsEnabled() {
		routes.SetupRoutes(engine, h, nrApp.Application)
	} else {
		routes.SetupRoutes(engine, h, nil)
	}

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
