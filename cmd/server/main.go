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
	"github.com/redis/go-redis/v9"

	"github.com/maxviazov/gamelib-analytics/internal/cache"
	"github.com/maxviazov/gamelib-analytics/internal/config"
	"github.com/maxviazov/gamelib-analytics/internal/handler"
	"github.com/maxviazov/gamelib-analytics/internal/logger"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
	"github.com/maxviazov/gamelib-analytics/internal/repository/postgres"
	"github.com/maxviazov/gamelib-analytics/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	// The derived-result cache is optional: no redis address, no cache.
	var derivedCache service.Cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			appLogger.Warn().Err(err).Msg("redis unreachable, running without derived-result cache")
		} else {
			derivedCache = cache.New(rdb, time.Duration(cfg.Redis.TTL)*time.Second)
		}
	}

	pgx := pool.Pgx()
	games := postgres.NewGameRepository(pgx)
	sessions := postgres.NewSessionRepository(pgx)
	library := postgres.NewLibraryRepository(pgx)
	tx := postgres.NewTxManager(pgx)
	pinger := postgres.NewPinger(pgx)

	gameSvc := service.NewGameService(games, tx, appLogger)
	sessionSvc := service.NewSessionService(sessions, games, tx, appLogger)
	analyticsSvc := service.NewAnalyticsService(library, derivedCache, cfg.Thresholds, time.Now, appLogger)

	if cfg.Logger.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	handler.Register(engine, pinger, gameSvc, sessionSvc, analyticsSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
