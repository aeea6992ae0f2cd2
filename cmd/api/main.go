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

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	dbpkg "github.com/BruksfildServices01/amai-mens-care/internal/db"
	"github.com/BruksfildServices01/amai-mens-care/internal/infra/cache"
	"github.com/BruksfildServices01/amai-mens-care/internal/infra/events"
	"github.com/BruksfildServices01/amai-mens-care/internal/infra/storage"
	"github.com/BruksfildServices01/amai-mens-care/internal/logger"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/routes"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Env, cfg.LogLevel)

	if !timezone.IsValid(cfg.ShopTimezone) {
		log.Warn().Str("timezone", cfg.ShopTimezone).Msg("unknown shop timezone, falling back to default")
		cfg.ShopTimezone = timezone.DefaultTimezone
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	rdb := cache.NewRedisClient(cfg.Redis)

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	sinks := []audit.Sink{audit.New(db)}

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher = events.NewPublisher(cfg.AMQPURL)
		sinks = append(sinks, publisher)
	}
	dispatcher := audit.NewDispatcher(sinks...)

	photos := storage.NewS3Uploader(cfg.Storage)
	if photos == nil {
		log.Warn().Msg("S3_BUCKET not set, photo uploads disabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Redis:  rdb,
		Audit:  dispatcher,
		Photos: photos,
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Error().Err(err).Msg("audit dispatcher did not drain")
	}
	if publisher != nil {
		_ = publisher.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
