package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ridedispatch/api"
	"ridedispatch/config"
	"ridedispatch/pkg/logger"
	"ridedispatch/pkg/maps"
	"ridedispatch/pkg/notifier"
	"ridedispatch/pkg/security"
	"ridedispatch/service"
	"ridedispatch/storage/cache"
	"ridedispatch/storage/objectstore"
	"ridedispatch/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer func() { _ = log.Zap().Sync() }()

	// 3. Initialize Storage (Postgres, migrations run on connect)
	pgStore, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	// 4. Optional collaborators. Each one missing disables only its feature.
	deps := service.Deps{
		JWT:                security.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		MaxRefreshSessions: cfg.MaxRefreshSessions,
		MaxUploadSize:      cfg.MaxUploadSize,
		Notifier:           notifier.Nop{},
	}

	if routeCache, err := cache.New(ctx, cfg, log); err != nil {
		log.Warning("Route cache disabled", logger.Error(err))
	} else {
		defer routeCache.Close()
		deps.RouteCache = routeCache
	}

	if cfg.S3Bucket != "" {
		bucket, err := objectstore.New(ctx, cfg, log)
		if err != nil {
			log.Warning("File storage disabled", logger.Error(err))
		} else {
			deps.Objects = bucket
		}
	}

	if cfg.GoogleMapsAPIKey != "" {
		router, err := maps.NewGoogleRouter(cfg.GoogleMapsAPIKey)
		if err != nil {
			log.Warning("Route pricing disabled", logger.Error(err))
		} else {
			deps.Router = router
		}
	} else {
		log.Warning("GOOGLE_MAPS_API_KEY is not set, route pricing disabled")
	}

	if cfg.DriverBotToken != "" {
		tg, err := notifier.NewTelegram(cfg.DriverBotToken, "", log)
		if err != nil {
			log.Warning("Driver notifications disabled", logger.Error(err))
		} else {
			deps.Notifier = tg
		}
	}

	// 5. Initialize Services
	svc := service.New(pgStore, deps, log)

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := svc.Auth().EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Error("Failed to bootstrap admin", logger.Error(err))
			os.Exit(1)
		}
	}

	// 6. HTTP API
	if cfg.LoggerLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv, err := api.NewServer(cfg, svc, pgStore, log)
	if err != nil {
		log.Error("Failed to build HTTP server", logger.Error(err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.AppPort),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 Dispatch API is listening",
			logger.String("addr", httpServer.Addr),
			logger.Bool("cookie_secure", cfg.CookieSecure),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	// 7. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("Shutting down...", logger.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", logger.Error(err))
	}
}
