package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janhq/imagine-api/internal/utils/platformerrors"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required parameters"`
}

// HandleError maps domain errors onto an HTTP status and the caller-safe message.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		errorMessage := domainErr.Message
		if errorMessage == "" {
			errorMessage = message
		}
		_ = reqCtx.Error(domainErr)
		reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType()), ErrorResponse{Error: errorMessage})
		return
	}

	// Non-platform errors
	_ = reqCtx.Error(err)
	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// HandleNewError creates a new typed error at the route layer and handles it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string, uuid string) {
	err := platformerrors.NewError(reqCtx.Request.Context(), platformerrors.LayerRoute, errorType, message, nil, uuid)
	HandleError(reqCtx, err, message)
}
