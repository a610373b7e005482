package handlers

import (
	"github.com/rs/zerolog"

	domain "github.com/janhq/imagine-api/internal/domain/imagine"
)

// Provider wires HTTP handlers.
type Provider struct {
	Imagine *ImagineHandler
}

func NewProvider(service *domain.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Imagine: NewImagineHandler(service, log),
	}
}
