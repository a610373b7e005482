package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/janhq/imagine-api/internal/config"
	domain "github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/infrastructure/auth"
	"github.com/janhq/imagine-api/internal/infrastructure/logger"
	"github.com/janhq/imagine-api/internal/infrastructure/midjourney"
	"github.com/janhq/imagine-api/internal/infrastructure/observability"
	"github.com/janhq/imagine-api/internal/interfaces/httpserver"
)

// @title Imagine API
// @version 1.0
// @description Relays image generation requests to Midjourney and returns the finished image.
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	client     domain.Client
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, client domain.Client, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		client:     client,
		log:        log,
	}
}

// Start serves HTTP while the client connects in the background. A client
// init failure is logged and leaves the server running. On shutdown the
// client is closed first so pending jobs fail fast.
func (a *Application) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		return a.httpServer.Run(gctx)
	})
	// release handlers waiting on jobs before the HTTP server drains
	g.Go(func() error {
		<-gctx.Done()
		if err := a.client.Close(); err != nil {
			a.log.Error().Err(err).Msg("close Midjourney client")
		}
		return nil
	})
	g.Go(func() error {
		if err := a.client.Init(gctx); err != nil {
			a.log.Error().Err(err).Msg("Failed to initialize Midjourney client")
			return nil
		}
		a.log.Info().Msg("Midjourney client initialized successfully.")
		return nil
	})

	return g.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}
	defer authValidator.Close()

	client := midjourney.New(midjourney.ConfigFrom(cfg), log)
	imagineService := domain.NewService(client, log)

	httpServer := httpserver.New(cfg, log, imagineService, authValidator)
	app := NewApplication(httpServer, client, log)

	if err := app.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
