// Package httpapi assembles the gin engine: global middleware, the health
// and metrics endpoints, and every resource handler.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"playnext/internal/logging"
	"playnext/internal/microservices/http-api/handler"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/service"
)

const healthTimeout = 2 * time.Second

// RouterDeps is everything NewRouter mounts.
type RouterDeps struct {
	Logger          zerolog.Logger
	AuthService     service.AuthService
	Users           service.UserService
	Games           service.GameService
	Ratings         service.RatingService
	Backlog         service.BacklogService
	Recommendations service.RecommendationService

	// Ping checks the database for /health.
	Ping func(ctx context.Context) error

	CORSOrigins           []string
	RateLimitRPS          float64
	RateLimitBurst        int
	MetricsEnabled        bool
	RecommendationTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(logging.RequestLogger(deps.Logger))
	if deps.MetricsEnabled {
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to PlayNext"})
	})
	r.GET("/health", health(deps.Ping))

	authMW := middleware.AuthMiddleware(deps.AuthService)

	handler.NewAuthHandler(deps.AuthService).RegisterRoutes(r.Group(""))
	handler.NewUserHandler(deps.Users, deps.Ratings, deps.Backlog, authMW).RegisterRoutes(r.Group("/users"))
	handler.NewGameHandler(deps.Games, authMW).RegisterRoutes(r.Group("/games"))
	handler.NewRatingHandler(deps.Ratings).RegisterRoutes(r.Group("/ratings", authMW))
	handler.NewBacklogHandler(deps.Backlog).RegisterRoutes(r.Group("/backlog", authMW))

	recs := handler.NewRecommendationHandler(deps.Recommendations, deps.RecommendationTimeout)
	recs.RegisterRoutes(r.Group("/recommendations", authMW))
	recs.RegisterUserRoutes(r.Group("/users", authMW))

	return r
}

func health(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				logging.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	}
}
