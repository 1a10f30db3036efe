package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saverfox/saverfox/internal/infra/gateway/aiservice"
	"github.com/saverfox/saverfox/internal/infra/postgres"
	infraRedis "github.com/saverfox/saverfox/internal/infra/redis"
	"github.com/saverfox/saverfox/internal/module/adventure"
	"github.com/saverfox/saverfox/internal/module/goal"
	"github.com/saverfox/saverfox/internal/module/mission"
	"github.com/saverfox/saverfox/internal/module/shop"
	"github.com/saverfox/saverfox/internal/module/tamagotchi"
	"github.com/saverfox/saverfox/internal/platform/profile"
	"github.com/saverfox/saverfox/internal/platform/user"
	"github.com/saverfox/saverfox/internal/platform/wallet"
	"github.com/saverfox/saverfox/internal/transport/httpapi"
	"github.com/saverfox/saverfox/internal/transport/httpapi/handler"
	"github.com/saverfox/saverfox/internal/transport/httpapi/middleware"
	"github.com/saverfox/saverfox/pkg/config"
	"github.com/saverfox/saverfox/pkg/logger"
)

func main() {
	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewDefault(cfg.Env)
	log.Info("Starting SaverFox API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize database connection pool
	db, err := postgres.NewPool(ctx, postgres.Config{
		URL:             cfg.DB.URL(),
		MaxConns:        cfg.DB.PoolMax,
		MinConns:        cfg.DB.PoolMin,
		MaxConnIdleTime: cfg.DB.IdleTimeout,
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize Redis client for catalog and daily mission caching.
	// Redis is optional: when unreachable the services read through to
	// the database.
	var cache *infraRedis.Cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		cache = infraRedis.NewCache(redisClient, log)
		log.Info("Redis connection established")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.Pool)
	profileRepo := postgres.NewProfileRepository(db.Pool)
	walletRepo := postgres.NewWalletRepository(db.Pool)
	catalogRepo := postgres.NewCatalogRepository(db.Pool)
	inventoryRepo := postgres.NewInventoryRepository(db.Pool)
	missionRepo := postgres.NewMissionRepository(db.Pool)
	tamagotchiRepo := postgres.NewTamagotchiRepository(db.Pool)
	goalRepo := postgres.NewGoalRepository(db.Pool)
	adventureRepo := postgres.NewAdventureRepository(db.Pool)

	txManager := postgres.NewTxManager(db.Pool)

	// Initialize the AI service client
	aiClient := aiservice.NewClient(aiservice.Config{
		BaseURL:    cfg.AI.BaseURL,
		Timeout:    cfg.AI.Timeout,
		MaxRetries: cfg.AI.MaxRetries,
		RetryDelay: cfg.AI.RetryDelay,
	}, log)

	// Initialize services. The progress evaluator registry maps
	// mission types to their percentage rules.
	userSvc := user.NewService(userRepo)
	jwtSvc := middleware.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	walletSvc := wallet.NewService(walletRepo, txManager)

	var catalogCache shop.CatalogCache
	var dailyCache mission.DailyCache
	if cache != nil {
		catalogCache = cache
		dailyCache = cache
	}

	shopSvc := shop.NewService(catalogRepo, inventoryRepo, walletSvc, catalogCache, txManager, log)
	missionSvc := mission.NewService(missionRepo, walletSvc, mission.DefaultRegistry(), dailyCache, txManager, log)
	tamagotchiSvc := tamagotchi.NewService(tamagotchiRepo, shopSvc, missionSvc, txManager, log)
	goalSvc := goal.NewService(goalRepo, walletSvc, txManager, log)
	profileSvc := profile.NewService(profileRepo, shopSvc, tamagotchiSvc, txManager, log)
	adventureSvc := adventure.NewService(adventureRepo, aiClient, profileSvc, goalSvc, missionSvc, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(userSvc, jwtSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, shopSvc)
	walletHandler := handler.NewWalletHandler(walletSvc, profileSvc)
	shopHandler := handler.NewShopHandler(shopSvc)
	missionHandler := handler.NewMissionHandler(missionSvc)
	tamagotchiHandler := handler.NewTamagotchiHandler(tamagotchiSvc)
	goalHandler := handler.NewGoalHandler(goalSvc)
	adventureHandler := handler.NewAdventureHandler(adventureSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Create HTTP router
	r := httpapi.NewRouter(httpapi.Config{
		Logger:            log,
		APIPrefix:         cfg.APIPrefix,
		AllowedOrigins:    strings.Split(cfg.CORSOrigin, ","),
		AuthHandler:       authHandler,
		ProfileHandler:    profileHandler,
		WalletHandler:     walletHandler,
		ShopHandler:       shopHandler,
		MissionHandler:    missionHandler,
		TamagotchiHandler: tamagotchiHandler,
		GoalHandler:       goalHandler,
		AdventureHandler:  adventureHandler,
		HealthHandler:     healthHandler,
		JWTMiddleware:     middleware.JWT(jwtSvc),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("Server stopped gracefully")
}
