package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jw6ventures/stravaview/internal/auth"
	"github.com/jw6ventures/stravaview/internal/cache"
	"github.com/jw6ventures/stravaview/internal/config"
	httpserver "github.com/jw6ventures/stravaview/internal/http"
	"github.com/jw6ventures/stravaview/internal/logger"
	"github.com/jw6ventures/stravaview/internal/strava"
	"github.com/jw6ventures/stravaview/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to configure logger: %v", err)
	}
	logg.Info("starting stravaview server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stravaClient := strava.NewClient(cfg)
	sessionManager, err := auth.NewSessionManager(cfg, logg)
	if err != nil {
		logg.WithError(err).Fatal("failed to initialize sessions")
	}
	authService := auth.NewService(cfg, stravaClient, sessionManager, logg)
	uiHandler := ui.NewHandler(stravaClient, cache.New(), logg)

	r := httpserver.NewRouter(ctx, cfg, logg, authService, uiHandler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logg.WithField("addr", cfg.ListenAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Error("graceful shutdown failed")
	}
}
