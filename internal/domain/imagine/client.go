package imagine

import "context"

// Client is the chat-platform automation client the service delegates to.
// Implementations must be safe for concurrent use. A nil message with a nil
// error means the platform produced nothing usable.
type Client interface {
	Init(ctx context.Context) error
	Ready() bool
	Imagine(ctx context.Context, prompt string, progress ProgressFunc) (*Message, error)
	Variation(ctx context.Context, opts ActionOptions) (*Message, error)
	Upscale(ctx context.Context, opts ActionOptions) (*Message, error)
	ZoomOut(ctx context.Context, opts ActionOptions) (*Message, error)
	Close() error
}
