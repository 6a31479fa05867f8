package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pawmart/pawmart-backend/internal/http/handlers"
	"github.com/pawmart/pawmart-backend/internal/http/middleware"
	"github.com/pawmart/pawmart-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                   *logger.Logger
	AuthMiddleware        *middleware.AuthMiddleware
	HealthHandler         *handlers.HealthHandler
	RecommendationHandler *handlers.RecommendationHandler
	WishlistHandler       *handlers.WishlistHandler
	CartHandler           *handlers.CartHandler
	TracingEnabled        bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger(cfg.Log))
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("pawmart-backend"))
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.GET("/recommendations/:userId", cfg.RecommendationHandler.GetRecommendations)
		api.POST("/recommendations/track-view", cfg.RecommendationHandler.TrackView)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Wishlist
	protected.GET("/wishlist/:userId", cfg.WishlistHandler.Get)
	protected.POST("/wishlist/:userId", cfg.WishlistHandler.Add)
	protected.DELETE("/wishlist/:userId/:productId", cfg.WishlistHandler.Remove)
	// Cart
	protected.GET("/cart/:userId", cfg.CartHandler.Get)
	protected.POST("/cart/:userId", cfg.CartHandler.Add)
	protected.DELETE("/cart/:userId/:productId", cfg.CartHandler.Remove)

	return router
}
