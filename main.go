package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"commodity-forecast-engine/api"
	"commodity-forecast-engine/config"
	"commodity-forecast-engine/dataset"
	"commodity-forecast-engine/pipeline"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager("config.json")
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	cfg := configManager.GetConfig()

	log := newLogger(cfg.Logging)
	log.Info("Starting Commodity Forecast Engine...")

	// Load the cleaned monthly dataset
	csvOpts := dataset.DefaultCSVOptions()
	csvOpts.DateColumn = cfg.Data.DateColumn
	csvOpts.TargetColumn = cfg.Data.TargetColumn
	series, table, err := dataset.LoadCSV(cfg.Data.Path, csvOpts)
	if err != nil {
		log.Fatalf("Failed to load dataset %s: %v", cfg.Data.Path, err)
	}
	log.WithFields(logrus.Fields{
		"observations": series.Len(),
		"predictors":   len(table.Predictors()),
		"span":         series.Start().String() + ".." + series.End().String(),
	}).Info("dataset loaded")

	// Fit every model family once at startup
	models, err := pipeline.Run(cfg, series, table, log)
	if err != nil {
		log.Fatalf("Startup fit failed: %v", err)
	}

	// Initialize HTTP API over the fitted bundle
	apiServer := api.NewServer(models, log, cfg.Server.RateLimit, cfg.Server.RateBurst)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		IdleTimeout:  cfg.Server.IdleTimeout.Duration,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("Server forced to shutdown: %v", err)
	}
	log.Info("Server gracefully stopped")
}

func newLogger(cfg config.LoggingConfig) *logrus.Logger {
	log := logrus.New()
	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}
