package midjourney

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned when no gateway session is established yet.
	ErrNotReady = errors.New("midjourney client not ready")
	// ErrJobFailed wraps failures reported by the bot.
	ErrJobFailed = errors.New("midjourney job failed")
	// ErrCommandNotFound is returned when the application command lookup is empty.
	ErrCommandNotFound = errors.New("application command not found")
	// ErrClosed is returned to waiters when the client shuts down.
	ErrClosed = errors.New("midjourney client closed")
)

// APIError is a non-2xx answer from the Discord REST API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord api error (%d): %s", e.Status, e.Body)
}
