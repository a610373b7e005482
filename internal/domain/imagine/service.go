package imagine

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/janhq/imagine-api/internal/utils/platformerrors"
	"github.com/janhq/imagine-api/internal/utils/requestid"
)

// simpleImageIndex is the grid cell upscaled by SimpleImage.
const simpleImageIndex = 1

// Service validates requests, delegates to the image client and normalizes its results.
type Service struct {
	client Client
	log    zerolog.Logger
}

// NewService wires the service with the image client.
func NewService(client Client, log zerolog.Logger) *Service {
	return &Service{
		client: client,
		log:    log.With().Str("component", "imagine-service").Logger(),
	}
}

// Ready reports whether the underlying client finished initializing.
func (s *Service) Ready() bool {
	return s.client.Ready()
}

// Imagine generates a new image grid from a prompt.
func (s *Service) Imagine(ctx context.Context, prompt string) (GenerationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GenerationResult{}, validationError(ctx, OperationImagine, MsgPromptRequired)
	}

	msg, err := s.client.Imagine(ctx, prompt, s.progressLogger(ctx, OperationImagine))
	return s.finish(ctx, OperationImagine, msg, err)
}

// Variation creates variations of one cell of a generated grid.
func (s *Service) Variation(ctx context.Context, opts ActionOptions) (GenerationResult, error) {
	if strings.TrimSpace(opts.MsgID) == "" {
		return GenerationResult{}, validationError(ctx, OperationVariation, MsgMissingParams)
	}

	opts.Progress = s.progressLogger(ctx, OperationVariation)
	msg, err := s.client.Variation(ctx, opts)
	return s.finish(ctx, OperationVariation, msg, err)
}

// Upscale upscales one cell of a generated grid.
func (s *Service) Upscale(ctx context.Context, opts ActionOptions) (GenerationResult, error) {
	if strings.TrimSpace(opts.MsgID) == "" || strings.TrimSpace(opts.Hash) == "" {
		return GenerationResult{}, validationError(ctx, OperationUpscale, MsgMissingParams)
	}

	opts.Progress = s.progressLogger(ctx, OperationUpscale)
	msg, err := s.client.Upscale(ctx, opts)
	return s.finish(ctx, OperationUpscale, msg, err)
}

// ZoomOut outpaints (or re-varies) a previously generated image.
func (s *Service) ZoomOut(ctx context.Context, opts ActionOptions) (GenerationResult, error) {
	if strings.TrimSpace(opts.MsgID) == "" || strings.TrimSpace(opts.Hash) == "" {
		return GenerationResult{}, validationError(ctx, OperationZoomOut, MsgMissingParams)
	}
	level, ok := ParseZoomLevel(string(opts.Level))
	if !ok {
		return GenerationResult{}, validationError(ctx, OperationZoomOut, MsgInvalidZoomLevel)
	}
	opts.Level = level

	opts.Progress = s.progressLogger(ctx, OperationZoomOut)
	msg, err := s.client.ZoomOut(ctx, opts)
	return s.finish(ctx, OperationZoomOut, msg, err)
}

// SimpleImage runs Imagine and upscales the first cell of the resulting grid.
// A failed upscale leaves the generated grid on the platform.
func (s *Service) SimpleImage(ctx context.Context, prompt string) (GenerationResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GenerationResult{}, validationError(ctx, OperationSimpleImage, MsgPromptRequired)
	}

	grid, err := s.client.Imagine(ctx, prompt, s.progressLogger(ctx, OperationImagine))
	if err != nil {
		return GenerationResult{}, s.fail(ctx, OperationSimpleImage, err)
	}
	if grid == nil || grid.ID == "" {
		return GenerationResult{}, s.empty(ctx, OperationImagine)
	}

	upscaled, err := s.client.Upscale(ctx, ActionOptions{
		MsgID:    grid.ID,
		Index:    simpleImageIndex,
		Flags:    grid.Flags,
		Hash:     grid.Hash,
		Progress: s.progressLogger(ctx, OperationUpscale),
	})
	if err != nil {
		return GenerationResult{}, s.fail(ctx, OperationSimpleImage, err)
	}
	if !upscaled.Complete() {
		return GenerationResult{}, s.empty(ctx, OperationUpscale)
	}
	return upscaled.Result(), nil
}

func (s *Service) finish(ctx context.Context, op Operation, msg *Message, err error) (GenerationResult, error) {
	if err != nil {
		return GenerationResult{}, s.fail(ctx, op, err)
	}
	if !msg.Complete() {
		return GenerationResult{}, s.empty(ctx, op)
	}
	return msg.Result(), nil
}

func (s *Service) fail(ctx context.Context, op Operation, err error) error {
	perr := failureError(ctx, op, err)
	platformerrors.LogError(s.log, perr)
	return perr
}

func (s *Service) empty(ctx context.Context, op Operation) error {
	perr := emptyResultError(ctx, op)
	platformerrors.LogError(s.log, perr)
	return perr
}

func (s *Service) progressLogger(ctx context.Context, op Operation) ProgressFunc {
	log := s.log.With().
		Str("operation", string(op)).
		Str("request_id", requestid.FromContext(ctx)).
		Logger()
	return func(uri, progress string) {
		log.Info().Str("uri", uri).Str("progress", progress).Msg("loading")
	}
}
