package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/recipebox/frontend/internal/middleware"
	"github.com/pageza/recipebox/frontend/internal/web"
)

// Options configures the router
type Options struct {
	AllowedOrigins []string
	// Limiter guards the routes that change recipes; nil disables it
	Limiter middleware.Limiter
}

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *web.RecipeHandler, opts Options) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Logger(),
		middleware.RequestID(),
		middleware.ErrorHandler(),
		middleware.Metrics(),
		middleware.CORS(opts.AllowedOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var mutating []gin.HandlerFunc
	if opts.Limiter != nil {
		mutating = append(mutating, middleware.RateLimitMiddleware(opts.Limiter))
	}
	recipeHandler.RegisterRoutes(router, mutating...)

	return router
}
