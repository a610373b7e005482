package requests

import (
	"strings"

	"github.com/janhq/imagine-api/internal/domain/imagine"
)

// Numeric and id fields are pointers so that `required` distinguishes an
// absent field from an explicit 0.

// PromptRequest is the body of POST /imagine and POST /simpleimage.
type PromptRequest struct {
	Prompt *string `json:"prompt" binding:"required" example:"a red fox in the snow"`
}

// VariationRequest is the body of POST /variation.
type VariationRequest struct {
	MessageID *string `json:"messageId" binding:"required" example:"1180000000000000000"`
	Index     *int    `json:"index" binding:"required" example:"1"`
	Flags     *int    `json:"flags" binding:"required" example:"0"`
	Hash      *string `json:"hash" binding:"required" example:"0f1e2d3c-aaaa-bbbb-cccc-1234567890ab"`
}

// ToOptions converts the request into client options.
func (r *VariationRequest) ToOptions() imagine.ActionOptions {
	return imagine.ActionOptions{
		MsgID: strings.TrimSpace(*r.MessageID),
		Index: *r.Index,
		Flags: *r.Flags,
		Hash:  strings.TrimSpace(*r.Hash),
	}
}

// UpscaleRequest is the body of POST /upscale.
type UpscaleRequest struct {
	MessageID *string `json:"messageId" binding:"required" example:"1180000000000000000"`
	Index     *int    `json:"index" binding:"required" example:"1"`
	Flags     *int    `json:"flags" binding:"required" example:"0"`
	CustomID  *string `json:"customId" binding:"required" example:"MJ::JOB::upsample::1::0f1e2d3c-aaaa-bbbb-cccc-1234567890ab"`
	Hash      *string `json:"hash" binding:"required" example:"0f1e2d3c-aaaa-bbbb-cccc-1234567890ab"`
}

// HasCustomID reports whether customId carries a value.
func (r *UpscaleRequest) HasCustomID() bool {
	return strings.TrimSpace(*r.CustomID) != ""
}

// ToOptions converts the request into client options. The button is
// always derived from index and hash; customId is only validated.
func (r *UpscaleRequest) ToOptions() imagine.ActionOptions {
	return imagine.ActionOptions{
		MsgID: strings.TrimSpace(*r.MessageID),
		Index: *r.Index,
		Flags: *r.Flags,
		Hash:  strings.TrimSpace(*r.Hash),
	}
}

// ZoomOutRequest is the body of POST /zoomout.
type ZoomOutRequest struct {
	ImagineID *string `json:"imagineId" binding:"required" example:"1180000000000000001"`
	Flags     *int    `json:"flags" binding:"required" example:"0"`
	Hash      *string `json:"hash" binding:"required" example:"0f1e2d3c-aaaa-bbbb-cccc-1234567890ab"`
	Level     string  `json:"level" example:"2x" enums:"2x,1.5x,high,low"`
}

// ToOptions converts the request into client options.
func (r *ZoomOutRequest) ToOptions() imagine.ActionOptions {
	return imagine.ActionOptions{
		MsgID: strings.TrimSpace(*r.ImagineID),
		Flags: *r.Flags,
		Hash:  strings.TrimSpace(*r.Hash),
		Level: imagine.ZoomLevel(strings.TrimSpace(r.Level)),
	}
}
