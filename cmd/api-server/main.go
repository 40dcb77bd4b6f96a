package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"playnext/database"
	"playnext/internal/cache"
	"playnext/internal/config"
	"playnext/internal/genai"
	"playnext/internal/ingestion/igdb"
	"playnext/internal/logging"
	httpapi "playnext/internal/microservices/http-api"
	"playnext/internal/microservices/http-api/middleware"
	"playnext/internal/microservices/http-api/repository"
	"playnext/internal/microservices/http-api/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	// 2. Logger
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.SetDefault(logger)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		logger.Fatal().Err(err).Msg("failed to register validators")
	}

	// 3. Database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("failed to close database")
		}
	}()

	// 4. Recommendation cache, optional
	var recCache service.RecommendationCache
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRecommendationCache(ctx, cfg.RedisURL, cfg.RecommendationFreshness)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, recommendation cache disabled")
		} else {
			recCache = rc
			defer rc.Close()
		}
	}

	// 5. Adapters, repositories, services
	tokens := igdb.NewTokenProvider(cfg.IGDBClientID, cfg.IGDBClientSecret, cfg.TwitchTokenURL, &http.Client{Timeout: 10 * time.Second})
	catalog := igdb.NewClient(igdb.Options{
		BaseURL:    cfg.IGDBBaseURL,
		ClientID:   cfg.IGDBClientID,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	})
	generator := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	})
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY not set, recommendations will be empty")
	}

	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	backlogRepo := repository.NewBacklogRepository(db)
	recRepo := repository.NewRecommendationRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	userService := service.NewUserService(userRepo, recCache)
	gameService := service.NewGameService(gameRepo, ratingRepo, catalog, cfg)
	ratingService := service.NewRatingService(ratingRepo, gameRepo)
	backlogService := service.NewBacklogService(backlogRepo, gameRepo)
	recService := service.NewRecommendationService(service.RecommendationDeps{
		Recommendations: recRepo,
		Ratings:         ratingRepo,
		Backlog:         backlogRepo,
		Games:           gameRepo,
		Catalog:         catalog,
		Generator:       generator,
		Cache:           recCache,
	}, cfg)

	// 6. Routes
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Logger:                logger,
		AuthService:           authService,
		Users:                 userService,
		Games:                 gameService,
		Ratings:               ratingService,
		Backlog:               backlogService,
		Recommendations:       recService,
		Ping:                  func(ctx context.Context) error { return database.Ping(ctx, db) },
		CORSOrigins:           cfg.CORSOrigins,
		RateLimitRPS:          cfg.RateLimitRPS,
		RateLimitBurst:        cfg.RateLimitBurst,
		MetricsEnabled:        cfg.MetricsEnabled,
		RecommendationTimeout: cfg.RecommendationTimeout,
	})

	// 7. Serve
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RecommendationTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.GoEnv).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
