package imagine

import (
	"context"
	"fmt"

	"github.com/janhq/imagine-api/internal/utils/platformerrors"
)

// Caller-facing validation messages.
const (
	MsgPromptRequired   = "Prompt is required"
	MsgMissingParams    = "Missing required parameters"
	MsgInvalidZoomLevel = "Invalid zoom level"
)

const (
	uuidValidation  = "7c1e2a44-6f0b-4d57-9a3e-3f1d0b6c8e01"
	uuidEmptyResult = "b3f9d2c1-2e8a-4c6f-8d1b-5a7e9c0f4d12"
	uuidFailure     = "e4a8c6b2-9d3f-4b1e-a7c5-2f6d8e0b1a23"
)

// EmptyResultMessage is returned when the client answered without a usable message.
func EmptyResultMessage(op Operation) string {
	return fmt.Sprintf("No message from %s", op.Title())
}

// FailureMessage is returned when the client call errored.
func FailureMessage(op Operation) string {
	return fmt.Sprintf("Failed to process %s request", op)
}

func validationError(ctx context.Context, op Operation, message string) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
		message, nil, uuidValidation, map[string]any{"operation": string(op)})
}

func emptyResultError(ctx context.Context, op Operation) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeEmptyResult,
		EmptyResultMessage(op), nil, uuidEmptyResult, map[string]any{"operation": string(op)})
}

func failureError(ctx context.Context, op Operation, err error) *platformerrors.PlatformError {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
		FailureMessage(op), err, uuidFailure, map[string]any{"operation": string(op)})
}
