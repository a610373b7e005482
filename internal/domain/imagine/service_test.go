package imagine_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/utils/platformerrors"
	"github.com/janhq/imagine-api/internal/utils/requestid"
)

type fakeClient struct {
	imagine func(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error)
	action  func(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error)
	ready   bool
	calls   []string
}

func (f *fakeClient) Init(context.Context) error { return nil }

func (f *fakeClient) Ready() bool { return f.ready }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Imagine(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
	f.calls = append(f.calls, "imagine")
	return f.imagine(ctx, prompt, progress)
}

func (f *fakeClient) Variation(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	f.calls = append(f.calls, "variation")
	return f.action(ctx, opts)
}

func (f *fakeClient) Upscale(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	f.calls = append(f.calls, "upscale")
	return f.action(ctx, opts)
}

func (f *fakeClient) ZoomOut(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	f.calls = append(f.calls, "zoomout")
	return f.action(ctx, opts)
}

func TestServiceImagineLogsProgress(t *testing.T) {
	var buf bytes.Buffer
	client := &fakeClient{
		imagine: func(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
			assert.Equal(t, "a red fox", prompt)
			progress("https://cdn/p1.webp", "12%")
			progress("https://cdn/p2.webp", "78%")
			return &imagine.Message{ID: "m1", Hash: "h1", URI: "https://cdn/m1.png"}, nil
		},
	}
	svc := imagine.NewService(client, zerolog.New(&buf))

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	result, err := svc.Imagine(ctx, "  a red fox ")
	require.NoError(t, err)
	assert.Equal(t, imagine.GenerationResult{ID: "m1", Hash: "h1", URI: "https://cdn/m1.png"}, result)

	logs := buf.String()
	assert.Contains(t, logs, `"progress":"12%"`)
	assert.Contains(t, logs, `"uri":"https://cdn/p2.webp"`)
	assert.Contains(t, logs, `"request_id":"req-1"`)
	assert.Contains(t, logs, `"message":"loading"`)
}

func TestServiceValidation(t *testing.T) {
	tests := []struct {
		name    string
		call    func(svc *imagine.Service) error
		wantMsg string
	}{
		{"imagine blank", func(svc *imagine.Service) error {
			_, err := svc.Imagine(context.Background(), " ")
			return err
		}, imagine.MsgPromptRequired},
		{"simpleimage blank", func(svc *imagine.Service) error {
			_, err := svc.SimpleImage(context.Background(), "")
			return err
		}, imagine.MsgPromptRequired},
		{"variation no message", func(svc *imagine.Service) error {
			_, err := svc.Variation(context.Background(), imagine.ActionOptions{Hash: "h"})
			return err
		}, imagine.MsgMissingParams},
		{"upscale no hash", func(svc *imagine.Service) error {
			_, err := svc.Upscale(context.Background(), imagine.ActionOptions{MsgID: "m"})
			return err
		}, imagine.MsgMissingParams},
		{"zoomout no message", func(svc *imagine.Service) error {
			_, err := svc.ZoomOut(context.Background(), imagine.ActionOptions{Hash: "h"})
			return err
		}, imagine.MsgMissingParams},
		{"zoomout bad level", func(svc *imagine.Service) error {
			_, err := svc.ZoomOut(context.Background(), imagine.ActionOptions{MsgID: "m", Hash: "h", Level: "3x"})
			return err
		}, imagine.MsgInvalidZoomLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			err := tt.call(imagine.NewService(client, zerolog.Nop()))

			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
			assert.Equal(t, tt.wantMsg, platformerrors.GetPlatformError(err).Message)
			assert.Empty(t, client.calls)
		})
	}
}

func TestServiceClientFailureKeepsCause(t *testing.T) {
	cause := errors.New("discord api error (500): upstream")
	client := &fakeClient{
		action: func(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
			return nil, cause
		},
	}
	svc := imagine.NewService(client, zerolog.Nop())

	ctx := requestid.WithRequestID(context.Background(), "req-9")
	_, err := svc.Upscale(ctx, imagine.ActionOptions{MsgID: "m", Hash: "h"})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeExternal, perr.Type)
	assert.Equal(t, "Failed to process upscale request", perr.Message)
	assert.Equal(t, "req-9", perr.RequestID)
}

func TestServiceZoomOutDefaultsLevel(t *testing.T) {
	var got imagine.ActionOptions
	client := &fakeClient{
		action: func(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
			got = opts
			return &imagine.Message{ID: "z", Hash: "hz", URI: "u"}, nil
		},
	}

	_, err := imagine.NewService(client, zerolog.Nop()).ZoomOut(context.Background(), imagine.ActionOptions{MsgID: "m", Hash: "h", Level: " HIGH "})
	require.NoError(t, err)
	assert.Equal(t, imagine.ZoomLevelHigh, got.Level)

	_, err = imagine.NewService(client, zerolog.Nop()).ZoomOut(context.Background(), imagine.ActionOptions{MsgID: "m", Hash: "h"})
	require.NoError(t, err)
	assert.Equal(t, imagine.ZoomLevel2x, got.Level)
}

func TestServiceSimpleImage(t *testing.T) {
	client := &fakeClient{
		imagine: func(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
			return &imagine.Message{ID: "m1", Flags: 0, Hash: "h1"}, nil
		},
		action: func(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
			assert.Equal(t, imagine.ActionOptions{MsgID: "m1", Index: 1, Flags: 0, Hash: "h1"},
				imagine.ActionOptions{MsgID: opts.MsgID, Index: opts.Index, Flags: opts.Flags, Hash: opts.Hash})
			return &imagine.Message{ID: "m2", Flags: 2, Hash: "h2", URI: "https://cdn/fox.png"}, nil
		},
	}

	result, err := imagine.NewService(client, zerolog.Nop()).SimpleImage(context.Background(), "a red fox")
	require.NoError(t, err)
	assert.Equal(t, imagine.GenerationResult{ID: "m2", Flags: 2, Hash: "h2", URI: "https://cdn/fox.png"}, result)
	assert.Equal(t, []string{"imagine", "upscale"}, client.calls)
}

func TestServiceSimpleImageStopsOnEmptyGrid(t *testing.T) {
	for name, grid := range map[string]*imagine.Message{
		"nil":   nil,
		"no id": {Hash: "h1", URI: "https://cdn/grid.png"},
	} {
		t.Run(name, func(t *testing.T) {
			client := &fakeClient{
				imagine: func(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
					return grid, nil
				},
			}

			_, err := imagine.NewService(client, zerolog.Nop()).SimpleImage(context.Background(), "a red fox")
			require.Error(t, err)
			assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeEmptyResult))
			assert.Equal(t, "No message from Imagine", platformerrors.GetPlatformError(err).Message)
			assert.Equal(t, []string{"imagine"}, client.calls)
		})
	}
}

func TestServiceSimpleImageUpscalesGridWithOnlyID(t *testing.T) {
	client := &fakeClient{
		imagine: func(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
			return &imagine.Message{ID: "m1"}, nil
		},
		action: func(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
			assert.Equal(t, "m1", opts.MsgID)
			return &imagine.Message{ID: "m2", Hash: "h2", URI: "https://cdn/fox.png"}, nil
		},
	}

	result, err := imagine.NewService(client, zerolog.Nop()).SimpleImage(context.Background(), "a red fox")
	require.NoError(t, err)
	assert.Equal(t, "m2", result.ID)
	assert.Equal(t, []string{"imagine", "upscale"}, client.calls)
}

func TestServiceReady(t *testing.T) {
	client := &fakeClient{}
	svc := imagine.NewService(client, zerolog.Nop())
	assert.False(t, svc.Ready())
	client.ready = true
	assert.True(t, svc.Ready())
}
