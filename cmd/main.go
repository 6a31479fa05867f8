package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pawmart/pawmart-backend/internal/clients/redis"
	"github.com/pawmart/pawmart-backend/internal/data/db"
	"github.com/pawmart/pawmart-backend/internal/http/handlers"
	"github.com/pawmart/pawmart-backend/internal/http/middleware"
	"github.com/pawmart/pawmart-backend/internal/observability"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
	"github.com/pawmart/pawmart-backend/internal/repos"
	"github.com/pawmart/pawmart-backend/internal/server"
	"github.com/pawmart/pawmart-backend/internal/services"
	"github.com/pawmart/pawmart-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Tracing
	ctx := context.Background()
	shutdownTracing := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "pawmart-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})
	if shutdownTracing != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()
	if err = db.SeedAdmin(thePG, log); err != nil {
		log.Warn("Admin seed failed", "error", err)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	productRepo := repos.NewProductRepo(thePG, log)
	viewRepo := repos.NewProductViewRepo(thePG, log)
	wishlistRepo := repos.NewWishlistRepo(thePG, log)
	cartRepo := repos.NewCartRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)

	// Redis
	popularCache, err := redis.NewPopularityCache(log)
	if err != nil {
		log.Warn("Popularity cache unavailable, serving fallback from Postgres", "error", err)
		popularCache = nil
	}
	if popularCache != nil {
		defer popularCache.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(log, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	behaviorService := services.NewBehaviorService(thePG, log, productRepo, viewRepo, wishlistRepo, cartRepo)
	recommendationService := services.NewRecommendationService(thePG, log, productRepo, viewRepo, wishlistRepo, cartRepo, orderRepo, popularCache)

	// Handlers
	log.Info("Setting up handlers from main...")
	healthHandler := handlers.NewHealthHandler()
	recommendationHandler := handlers.NewRecommendationHandler(log, recommendationService, behaviorService)
	wishlistHandler := handlers.NewWishlistHandler(log, behaviorService)
	cartHandler := handlers.NewCartHandler(log, behaviorService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                   log,
		AuthMiddleware:        authMiddleware,
		HealthHandler:         healthHandler,
		RecommendationHandler: recommendationHandler,
		WishlistHandler:       wishlistHandler,
		CartHandler:           cartHandler,
		TracingEnabled:        observability.Enabled(),
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
