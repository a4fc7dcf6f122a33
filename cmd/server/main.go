package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Gulrukh07/BeautyShopBooking/internal/config"
	"github.com/Gulrukh07/BeautyShopBooking/internal/db"
	"github.com/Gulrukh07/BeautyShopBooking/internal/migrations"
	"github.com/Gulrukh07/BeautyShopBooking/internal/redis"
	"github.com/Gulrukh07/BeautyShopBooking/internal/server"
)

func main() {
	config.LoadDotEnvUp(8)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.AppEnv == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.NewRunner(pool).Up(ctx); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	// Redis only backs the rate limiter; the API stays up without it.
	rdb, err := redis.New(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		defer redis.Close(rdb)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.NewRouter(cfg, pool, rdb, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
