package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/restaurant-admin/internal/config"
	"github.com/jwalitptl/restaurant-admin/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	base := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	})
	base.SetGlobal()
	lg := base.WithFields(map[string]interface{}{"component": "server"})

	a, err := newApp(cfg, prometheus.NewRegistry())
	if err != nil {
		lg.Fatal(err, "failed to initialize console")
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		lg.Info("starting server", "addr", srv.Addr, "api", cfg.API.BaseURL)
		lg.Debug("loaded configuration", "time_zone", cfg.TimeZone, "redis", cfg.Redis.URL != "")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal(err, "failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error(err, "server forced to shutdown")
	}
	if err := a.Close(); err != nil {
		lg.Error(err, "failed to close console")
	}

	lg.Info("server exited properly")
}
