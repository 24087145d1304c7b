package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "bakehouse/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"bakehouse/internal/auth"
	"bakehouse/internal/cache"
	"bakehouse/internal/config"
	"bakehouse/internal/db"
	"bakehouse/internal/events"
	"bakehouse/internal/handler"
	"bakehouse/internal/logging"
	"bakehouse/internal/metrics"
	"bakehouse/internal/ratelimit"
	"bakehouse/internal/repository"
	"bakehouse/internal/router"
	"bakehouse/internal/service"
	"bakehouse/internal/storage"
	"bakehouse/internal/web"
)

const shutdownTimeout = 10 * time.Second

// @title Bakehouse API
// @version 1.0
// @description Bakery portfolio API with recipes, a photo gallery, contact enquiries and image uploads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	logger := logging.Default(cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, db.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		logger.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	var limiter echomw.RateLimiterStore
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); cacheClient.Enabled() && err == nil {
		limiter = ratelimit.NewWindowStore(cacheClient, cfg.RateLimitRequests, cfg.RateLimitWindow, logger)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("rate limiting through redis")
	} else {
		if err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, rate limiting in memory")
		}
		limiter = ratelimit.NewMemoryStore(cfg.RateLimitRequests, cfg.RateLimitWindow, logger)
	}
	cancel()

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("kafka unavailable, contact events disabled")
		} else {
			publisher = kafka
		}
	}
	defer publisher.Close()

	imageHost, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("storage init")
	}

	m := metrics.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	galleryRepo := repository.NewGalleryRepository(gormDB)
	contactRepo := repository.NewContactRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn)
	authService := service.NewAuthService(userRepo, jwtService)
	recipeService := service.NewRecipeService(recipeRepo)
	galleryService := service.NewGalleryService(galleryRepo)
	contactService := service.NewContactService(contactRepo, publisher, m, logger)
	uploadService := service.NewUploadService(imageHost, m)

	site, err := web.New(web.Deps{
		Auth:         authService,
		Recipes:      recipeService,
		Gallery:      galleryService,
		Contact:      contactService,
		Uploads:      uploadService,
		Users:        service.NewUserService(userRepo),
		CookieSecure: cfg.CookieSecure,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("templates")
	}

	e := echo.New()
	router.Register(e, cfg, router.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.CookieSecure),
		Recipe:  handler.NewRecipeHandler(recipeService),
		Gallery: handler.NewGalleryHandler(galleryService),
		Contact: handler.NewContactHandler(contactService),
		Upload:  handler.NewUploadHandler(uploadService),
		Web:     site,
	}, router.Options{
		Authenticator:  authService,
		Metrics:        m,
		RateLimitStore: limiter,
		Logger:         logger,
	})

	logger.Info().Str("url", swaggerURL(cfg)).Msg("swagger documentation available")

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info().Str("addr", addr).Str("db", cfg.DBDriver).Str("storage", cfg.Storage.Provider).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
