package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/prepnerdz/prepnerdz-api/api/swagger"
	"github.com/prepnerdz/prepnerdz-api/internal/handler"
	"github.com/prepnerdz/prepnerdz-api/internal/middleware"
	"github.com/prepnerdz/prepnerdz-api/internal/repository"
	"github.com/prepnerdz/prepnerdz-api/internal/service"
	"github.com/prepnerdz/prepnerdz-api/pkg/cache"
	"github.com/prepnerdz/prepnerdz-api/pkg/config"
	"github.com/prepnerdz/prepnerdz-api/pkg/database"
	"github.com/prepnerdz/prepnerdz-api/pkg/logger"
	corsmiddleware "github.com/prepnerdz/prepnerdz-api/pkg/middleware/cors"
	reqidmiddleware "github.com/prepnerdz/prepnerdz-api/pkg/middleware/requestid"
)

// @title PrepNerdz Resource API
// @version 1.0.0
// @description Study resources by branch, semester and subject: listing, search and bookmarks.
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{"postgres": db}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
			checks["redis"] = handler.RedisPinger{Client: client}
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ResourceTTL, logr, cacheRepo != nil)

	validate := validator.New()
	resourceRepo := repository.NewResourceRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)

	resourceSvc := service.NewResourceService(resourceRepo, taxonomyRepo, cacheSvc, metrics, validate, logr, cfg.Cache.ResourceTTL)
	taxonomySvc := service.NewTaxonomyService(taxonomyRepo, logr)
	bookmarkSvc := service.NewBookmarkService(bookmarkRepo, resourceRepo, metrics, validate, logr)
	authSvc := service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	registerRoutes(r, cfg.APIPrefix, authSvc, cfg.JWT.CookieName, handlers{
		resources: handler.NewResourceHandler(resourceSvc),
		taxonomy:  handler.NewTaxonomyHandler(taxonomySvc),
		bookmarks: handler.NewBookmarkHandler(bookmarkSvc),
		session:   handler.NewSessionHandler(authSvc),
		metrics:   handler.NewMetricsHandler(metrics, checks),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "prefix", cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
