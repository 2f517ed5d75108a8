package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/chobisangyak/catalog"
	"github.com/giygas/chobisangyak/config"
	"github.com/giygas/chobisangyak/data"
	"github.com/giygas/chobisangyak/handlers"
	"github.com/giygas/chobisangyak/health"
	"github.com/giygas/chobisangyak/logging"
	"github.com/giygas/chobisangyak/scheduler"
	"github.com/giygas/chobisangyak/server"
	"github.com/giygas/chobisangyak/validation"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	logging.InitLoggerWithOptions(logging.Options{
		Dir:            cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to close log file:", err)
		}
	}()

	images, err := catalog.LoadImageOverrides(cfg.ImageOverridesPath)
	if err != nil {
		logging.Error("Failed to load image overrides", "path", cfg.ImageOverridesPath, "error", err)
		os.Exit(1)
	}
	logging.Info("Image overrides loaded", "entries", len(images))

	validator := validation.NewDataValidator()
	dataContainer := data.NewDataContainer(
		catalog.NewCatalogParser(catalog.DefaultColumns()),
		validator,
		cfg.CatalogPath,
	)
	dataContainer.SetServerStartTime(time.Now())

	sched := scheduler.NewScheduler(dataContainer, cfg.SourceCheckInterval)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	healthChecker := health.NewHealthChecker(dataContainer, sched)
	handler := handlers.NewHTTPHandler(dataContainer, validator, images, healthChecker)
	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		logging.Error("Server failed to start", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
