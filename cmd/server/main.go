package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/itzbandhan/sallukobirthday/config"
	"github.com/itzbandhan/sallukobirthday/internal/api"
	"github.com/itzbandhan/sallukobirthday/internal/store"
	"github.com/itzbandhan/sallukobirthday/internal/token"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	if cfg.Admin.Token == "" {
		cfg.Admin.Token = token.New()
		logger.Info("generated admin token", zap.String("token", cfg.Admin.Token))
	}

	st := initStore(cfg, logger)

	router := api.SetupRouter(st, cfg, logger)

	logger.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("store", cfg.Store.Type),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		st.Close()
		logger.Fatal("server stopped", zap.Error(err))
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
		if err := st.Close(); err != nil {
			logger.Error("store close failed", zap.Error(err))
		}
	}
}

func initStore(cfg *config.Config, logger *zap.Logger) store.Store {
	switch cfg.Store.Type {
	case "redis":
		st, err := store.NewRedisStore(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		return st
	default:
		return store.NewMemoryStore()
	}
}
