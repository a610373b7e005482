//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/janhq/imagine-api/internal/config"
	domain "github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/infrastructure/auth"
	"github.com/janhq/imagine-api/internal/infrastructure/logger"
	"github.com/janhq/imagine-api/internal/infrastructure/midjourney"
	"github.com/janhq/imagine-api/internal/interfaces/httpserver"
)

var imagineSet = wire.NewSet(
	midjourney.ConfigFrom,
	midjourney.New,
	wire.Bind(new(domain.Client), new(*midjourney.Client)),
	domain.NewService,
)

// BuildApplication assembles the imagine service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newAuthValidator,
		imagineSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}
