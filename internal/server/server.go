package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/frontend/config"
	"github.com/pageza/recipebox/frontend/internal/client"
	"github.com/pageza/recipebox/frontend/internal/database"
	"github.com/pageza/recipebox/frontend/internal/middleware"
	"github.com/pageza/recipebox/frontend/internal/render"
	"github.com/pageza/recipebox/frontend/internal/router"
	"github.com/pageza/recipebox/frontend/internal/service"
	"github.com/pageza/recipebox/frontend/internal/web"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	redis  *redis.Client
}

// New wires the catalog client, renderer and page handlers into a server
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	apiClient, err := client.New(cfg.APIBaseURL, client.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, err
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	var source web.ImageSource
	if cfg.S3Enabled() {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up S3 images: %w", err)
		}
		source = s3Config
		log.Printf("Serving recipe images from s3://%s/%s", cfg.S3BucketName, cfg.S3ImagePrefix)
	}
	images, err := web.NewImageHandler(source, apiClient.BaseURL())
	if err != nil {
		return nil, err
	}

	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := router.Options{AllowedOrigins: cfg.AllowedOrigins}
	if cfg.RateLimit > 0 {
		opts.Limiter = middleware.NewRecipeMutationRateLimiter(redisClient, cfg.RateLimit, cfg.RateLimitWindow)
	}

	recipes := service.NewRecipeClient(apiClient, renderer)
	handler := web.NewRecipeHandler(recipes, renderer, cfg.Categories, images)
	engine := router.SetupRouter(handler, opts)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Address(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		redis: redisClient,
	}, nil
}

// Handler returns the configured router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and closes Redis
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
