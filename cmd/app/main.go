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

	"marketplace/cmd"
	"marketplace/internal/pkg/logger"
	"marketplace/internal/platform/observability"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	l := logger.Setup(configs.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := observability.Init(ctx, observability.Config{
		ServiceName:  "marketplace-bff",
		Environment:  configs.Env,
		OTLPEndpoint: configs.OTLPEndpoint,
		OTLPInsecure: configs.OTLPInsecure,
	}, l)
	if err != nil {
		log.Fatalf("Error initializing telemetry: %v", err)
	}

	var db *gorm.DB
	if configs.HasDatabase() {
		db, err = cmd.OpenDatabase(configs)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
	}

	app, err := cmd.NewCompositionRoot(configs, db, instruments, l)
	if err != nil {
		log.Fatalf("Error creating application: %v", err)
	}

	e, err := app.CreateEcho(ctx)
	if err != nil {
		log.Fatalf("Error creating web server: %v", err)
	}

	app.Warmup(ctx)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		l.Info("Starting web server", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("Web server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	l.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		l.Error("Web server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	if err := app.Close(); err != nil {
		l.Error("Closing application failed", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		l.Error("Telemetry shutdown failed", "error", err)
	}
}
