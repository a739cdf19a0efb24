package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"localwear-storefront/internal/config"
	"localwear-storefront/internal/gateway"
	"localwear-storefront/internal/httpserver"
	"localwear-storefront/internal/session"
	"localwear-storefront/internal/storage"
)

func main() {
	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("load .env: %v", err)
	}
	cfg := config.FromEnv()

	ctx := context.Background()
	repo, closeStorage, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open session storage: %v", err)
	}
	defer closeStorage()

	store := session.New(ctx, repo, logger)
	client := gateway.New(cfg.APIBase, store, gateway.WithLogger(logger))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Store:          store,
		Gateway:        client,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting storefront on %s (api %s, storage %s)", cfg.HTTPAddr, cfg.APIBase, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
