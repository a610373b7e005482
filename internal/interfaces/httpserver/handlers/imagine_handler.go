package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	domain "github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/interfaces/httpserver/requests"
	"github.com/janhq/imagine-api/internal/interfaces/httpserver/responses"
	"github.com/janhq/imagine-api/internal/utils/platformerrors"
)

const (
	uuidPromptBinding = "5d0a6c3e-1b7f-4e29-8c4a-0f2b6d9e3a71"
	uuidParamsBinding = "9a2f4e6c-3d1b-4a8e-b7c0-6e5d4c3b2a19"
)

// ImagineHandler exposes the generation endpoints.
type ImagineHandler struct {
	service *domain.Service
	log     zerolog.Logger
}

func NewImagineHandler(service *domain.Service, log zerolog.Logger) *ImagineHandler {
	return &ImagineHandler{
		service: service,
		log:     log.With().Str("component", "imagine-handler").Logger(),
	}
}

// Imagine godoc
// @Summary      Generate an image grid
// @Description  Runs /imagine with the prompt and returns the finished grid.
// @Tags         imagine
// @Accept       json
// @Produce      json
// @Param        request  body      requests.PromptRequest  true  "Prompt"
// @Success      200      {object}  responses.GenerationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /imagine [post]
func (h *ImagineHandler) Imagine(c *gin.Context) {
	var req requests.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, domain.OperationImagine, err, domain.MsgPromptRequired, uuidPromptBinding)
		return
	}

	result, err := h.service.Imagine(c.Request.Context(), *req.Prompt)
	h.respond(c, domain.OperationImagine, result, err)
}

// Variation godoc
// @Summary      Create variations
// @Description  Presses the V<index> button of a generated grid.
// @Tags         imagine
// @Accept       json
// @Produce      json
// @Param        request  body      requests.VariationRequest  true  "Grid reference"
// @Success      200      {object}  responses.GenerationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /variation [post]
func (h *ImagineHandler) Variation(c *gin.Context) {
	var req requests.VariationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, domain.OperationVariation, err, domain.MsgMissingParams, uuidParamsBinding)
		return
	}

	result, err := h.service.Variation(c.Request.Context(), req.ToOptions())
	h.respond(c, domain.OperationVariation, result, err)
}

// Upscale godoc
// @Summary      Upscale one image
// @Description  Presses the U<index> button of a generated grid. customId must be non-empty; the button is derived from index and hash.
// @Tags         imagine
// @Accept       json
// @Produce      json
// @Param        request  body      requests.UpscaleRequest  true  "Grid reference"
// @Success      200      {object}  responses.GenerationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /upscale [post]
func (h *ImagineHandler) Upscale(c *gin.Context) {
	var req requests.UpscaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, domain.OperationUpscale, err, domain.MsgMissingParams, uuidParamsBinding)
		return
	}
	if !req.HasCustomID() {
		h.rejectBody(c, domain.OperationUpscale, errors.New("customId is empty"), domain.MsgMissingParams, uuidParamsBinding)
		return
	}

	result, err := h.service.Upscale(c.Request.Context(), req.ToOptions())
	h.respond(c, domain.OperationUpscale, result, err)
}

// SimpleImage godoc
// @Summary      Generate and upscale
// @Description  Runs /imagine, then upscales the first image of the grid.
// @Tags         imagine
// @Accept       json
// @Produce      json
// @Param        request  body      requests.PromptRequest  true  "Prompt"
// @Success      200      {object}  responses.GenerationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /simpleimage [post]
func (h *ImagineHandler) SimpleImage(c *gin.Context) {
	var req requests.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, domain.OperationSimpleImage, err, domain.MsgPromptRequired, uuidPromptBinding)
		return
	}

	result, err := h.service.SimpleImage(c.Request.Context(), *req.Prompt)
	h.respond(c, domain.OperationSimpleImage, result, err)
}

// ZoomOut godoc
// @Summary      Zoom out an image
// @Description  Outpaints (2x, 1.5x) or re-varies (high, low) an upscaled image. Level defaults to 2x.
// @Tags         imagine
// @Accept       json
// @Produce      json
// @Param        request  body      requests.ZoomOutRequest  true  "Image reference"
// @Success      200      {object}  responses.GenerationResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /zoomout [post]
func (h *ImagineHandler) ZoomOut(c *gin.Context) {
	var req requests.ZoomOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.rejectBody(c, domain.OperationZoomOut, err, domain.MsgMissingParams, uuidParamsBinding)
		return
	}

	result, err := h.service.ZoomOut(c.Request.Context(), req.ToOptions())
	h.respond(c, domain.OperationZoomOut, result, err)
}

func (h *ImagineHandler) respond(c *gin.Context, op domain.Operation, result domain.GenerationResult, err error) {
	if err != nil {
		responses.HandleError(c, err, domain.FailureMessage(op))
		return
	}
	c.JSON(http.StatusOK, responses.BuildGenerationResponse(result))
}

// rejectBody answers 400 for malformed or incomplete bodies.
func (h *ImagineHandler) rejectBody(c *gin.Context, op domain.Operation, err error, message, uuid string) {
	event := h.log.Warn().Err(err).Str("operation", string(op))
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		event = event.Strs("missing", missing)
	}
	event.Msg("rejecting request body")

	responses.HandleNewError(c, platformerrors.ErrorTypeValidation, message, uuid)
}
