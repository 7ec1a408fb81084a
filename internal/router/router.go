package router

import (
	"github.com/gin-gonic/gin"

	"github.com/whamhub/backend/internal/api"
	"github.com/whamhub/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	profileHandler *api.ProfileHandler,
	metaHandler *api.MetaHandler,
	verifier middleware.TokenVerifier,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Public routes
	metaHandler.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(verifier))
	profileHandler.RegisterRoutes(protected, limiter)

	return router
}
