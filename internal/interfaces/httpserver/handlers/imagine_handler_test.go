package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/interfaces/httpserver/handlers"
	v1 "github.com/janhq/imagine-api/internal/interfaces/httpserver/routes/v1"
)

// MockClient implements domain.Client with overridable funcs.
type MockClient struct {
	ImagineFunc   func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error)
	VariationFunc func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error)
	UpscaleFunc   func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error)
	ZoomOutFunc   func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error)

	calls int
}

func (m *MockClient) Init(ctx context.Context) error { return nil }

func (m *MockClient) Ready() bool { return true }

func (m *MockClient) Close() error { return nil }

func (m *MockClient) Imagine(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
	m.calls++
	if m.ImagineFunc != nil {
		return m.ImagineFunc(ctx, prompt, progress)
	}
	return nil, errors.New("unexpected Imagine call")
}

func (m *MockClient) Variation(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
	m.calls++
	if m.VariationFunc != nil {
		return m.VariationFunc(ctx, opts)
	}
	return nil, errors.New("unexpected Variation call")
}

func (m *MockClient) Upscale(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
	m.calls++
	if m.UpscaleFunc != nil {
		return m.UpscaleFunc(ctx, opts)
	}
	return nil, errors.New("unexpected Upscale call")
}

func (m *MockClient) ZoomOut(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
	m.calls++
	if m.ZoomOutFunc != nil {
		return m.ZoomOutFunc(ctx, opts)
	}
	return nil, errors.New("unexpected ZoomOut call")
}

func setupRouter(client *MockClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := domain.NewService(client, zerolog.Nop())
	router := gin.New()
	v1.NewRoutes(handlers.NewProvider(service, zerolog.Nop())).Register(router)
	return router
}

func post(t *testing.T, router *gin.Engine, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func completeMessage(id string, flags int, hash string) *domain.Message {
	return &domain.Message{ID: id, Flags: flags, Hash: hash, URI: "https://cdn/" + id + ".png", Content: "**prompt**"}
}

func TestImagine(t *testing.T) {
	client := &MockClient{
		ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
			assert.Equal(t, "a red fox", prompt)
			require.NotNil(t, progress)
			progress("https://cdn/preview.webp", "50%")
			return completeMessage("m1", 0, "h1"), nil
		},
	}
	router := setupRouter(client)

	code, body := post(t, router, "/imagine", `{"prompt":"a red fox"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "m1", "flags": float64(0), "hash": "h1", "uri": "https://cdn/m1.png"}, body)
}

func TestImagineServedUnderV1(t *testing.T) {
	client := &MockClient{
		ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
			return completeMessage("m1", 0, "h1"), nil
		},
	}

	code, body := post(t, setupRouter(client), "/v1/imagine", `{"prompt":"a red fox"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "m1", body["id"])
}

func TestImagineRejectsMissingPrompt(t *testing.T) {
	for name, payload := range map[string]string{
		"absent":    `{}`,
		"empty":     `{"prompt":""}`,
		"blank":     `{"prompt":"   "}`,
		"not text":  `{"prompt":42}`,
		"malformed": `{"prompt":`,
	} {
		t.Run(name, func(t *testing.T) {
			client := &MockClient{}
			code, body := post(t, setupRouter(client), "/imagine", payload)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, map[string]any{"error": "Prompt is required"}, body)
			assert.Zero(t, client.calls)
		})
	}
}

func TestImagineIncompleteResult(t *testing.T) {
	results := map[string]*domain.Message{
		"nil":          nil,
		"missing id":   {Hash: "h", URI: "u"},
		"missing hash": {ID: "m", URI: "u"},
		"missing uri":  {ID: "m", Hash: "h"},
	}
	for name, msg := range results {
		t.Run(name, func(t *testing.T) {
			client := &MockClient{
				ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
					return msg, nil
				},
			}
			code, body := post(t, setupRouter(client), "/imagine", `{"prompt":"fox"}`)
			assert.Equal(t, http.StatusInternalServerError, code)
			assert.Equal(t, map[string]any{"error": "No message from Imagine"}, body)
		})
	}
}

func TestImagineClientError(t *testing.T) {
	client := &MockClient{
		ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
			return nil, errors.New("discord api error (401): secret details")
		},
	}

	code, body := post(t, setupRouter(client), "/imagine", `{"prompt":"fox"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, map[string]any{"error": "Failed to process imagine request"}, body)
}

func TestVariation(t *testing.T) {
	var got domain.ActionOptions
	client := &MockClient{
		VariationFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			got = opts
			return completeMessage("v1", 0, "hv"), nil
		},
	}

	code, body := post(t, setupRouter(client), "/variation", `{"messageId":"m1","index":0,"flags":0,"hash":"h1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "v1", body["id"])
	assert.Equal(t, "m1", got.MsgID)
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, 0, got.Flags)
	assert.Equal(t, "h1", got.Hash)
}

func TestVariationMissingParams(t *testing.T) {
	for name, payload := range map[string]string{
		"no message id":    `{"index":1,"flags":0,"hash":"h1"}`,
		"empty message id": `{"messageId":"","index":1,"flags":0,"hash":"h1"}`,
		"no index":         `{"messageId":"m1","flags":0,"hash":"h1"}`,
		"no flags":         `{"messageId":"m1","index":1,"hash":"h1"}`,
		"no hash":          `{"messageId":"m1","index":1,"flags":0}`,
		"malformed":        `not json`,
	} {
		t.Run(name, func(t *testing.T) {
			client := &MockClient{}
			code, body := post(t, setupRouter(client), "/variation", payload)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, map[string]any{"error": "Missing required parameters"}, body)
			assert.Zero(t, client.calls)
		})
	}
}

func TestVariationErrors(t *testing.T) {
	client := &MockClient{
		VariationFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			return nil, nil
		},
	}
	code, body := post(t, setupRouter(client), "/variation", `{"messageId":"m1","index":1,"flags":0,"hash":"h1"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "No message from Variation", body["error"])

	client.VariationFunc = func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
		return nil, errors.New("boom")
	}
	code, body = post(t, setupRouter(client), "/variation", `{"messageId":"m1","index":1,"flags":0,"hash":"h1"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to process variation request", body["error"])
}

func TestUpscale(t *testing.T) {
	var got domain.ActionOptions
	client := &MockClient{
		UpscaleFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			got = opts
			return completeMessage("u1", 2, "hu"), nil
		},
	}

	code, body := post(t, setupRouter(client), "/upscale",
		`{"messageId":"m1","index":0,"flags":0,"customId":"MJ::JOB::upsample::1::h1","hash":"h1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "u1", "flags": float64(2), "hash": "hu", "uri": "https://cdn/u1.png"}, body)
	assert.Equal(t, domain.ActionOptions{MsgID: "m1", Index: 0, Flags: 0, Hash: "h1"},
		domain.ActionOptions{MsgID: got.MsgID, Index: got.Index, Flags: got.Flags, Hash: got.Hash})
	assert.NotNil(t, got.Progress)
}

func TestUpscaleUsesRequestedIndex(t *testing.T) {
	var got domain.ActionOptions
	client := &MockClient{
		UpscaleFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			got = opts
			return completeMessage("u2", 2, "hu"), nil
		},
	}

	code, _ := post(t, setupRouter(client), "/upscale",
		`{"messageId":"m1","index":2,"flags":0,"customId":"MJ::JOB::upsample::1::h1","hash":"h1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, got.Index)
	assert.Equal(t, "h1", got.Hash)
}

func TestUpscaleMissingParams(t *testing.T) {
	for name, payload := range map[string]string{
		"no custom id":    `{"messageId":"m1","index":1,"flags":0,"hash":"h1"}`,
		"empty custom id": `{"messageId":"m1","index":1,"flags":0,"customId":"","hash":"h1"}`,
		"empty hash":      `{"messageId":"m1","index":1,"flags":0,"customId":"c","hash":""}`,
		"no flags":        `{"messageId":"m1","index":1,"customId":"c","hash":"h1"}`,
		"no index":        `{"messageId":"m1","flags":0,"customId":"c","hash":"h1"}`,
		"null message id": `{"messageId":null,"index":1,"flags":0,"customId":"c","hash":"h1"}`,
	} {
		t.Run(name, func(t *testing.T) {
			client := &MockClient{}
			code, body := post(t, setupRouter(client), "/upscale", payload)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, map[string]any{"error": "Missing required parameters"}, body)
			assert.Zero(t, client.calls)
		})
	}
}

func TestSimpleImage(t *testing.T) {
	client := &MockClient{
		ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
			assert.Equal(t, "a red fox", prompt)
			return &domain.Message{ID: "m1", Flags: 0, Hash: "h1"}, nil
		},
		UpscaleFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			assert.Equal(t, "m1", opts.MsgID)
			assert.Equal(t, 1, opts.Index)
			assert.Equal(t, 0, opts.Flags)
			assert.Equal(t, "h1", opts.Hash)
			return &domain.Message{ID: "m2", Flags: 2, Hash: "h2", URI: "https://x/fox.png"}, nil
		},
	}

	code, body := post(t, setupRouter(client), "/simpleimage", `{"prompt":"a red fox"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"id": "m2", "flags": float64(2), "hash": "h2", "uri": "https://x/fox.png"}, body)
	assert.Equal(t, 2, client.calls)
}

func TestSimpleImageFailures(t *testing.T) {
	grid := func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
		return completeMessage("m1", 0, "h1"), nil
	}

	tests := []struct {
		name    string
		client  *MockClient
		wantErr string
	}{
		{
			name: "imagine empty",
			client: &MockClient{ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
				return nil, nil
			}},
			wantErr: "No message from Imagine",
		},
		{
			name: "upscale empty",
			client: &MockClient{ImagineFunc: grid, UpscaleFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
				return &domain.Message{ID: "m2"}, nil
			}},
			wantErr: "No message from Upscale",
		},
		{
			name: "imagine error",
			client: &MockClient{ImagineFunc: func(ctx context.Context, prompt string, progress domain.ProgressFunc) (*domain.Message, error) {
				return nil, errors.New("gateway down")
			}},
			wantErr: "Failed to process simpleimage request",
		},
		{
			name: "upscale error",
			client: &MockClient{ImagineFunc: grid, UpscaleFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
				return nil, errors.New("rejected")
			}},
			wantErr: "Failed to process simpleimage request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := post(t, setupRouter(tt.client), "/simpleimage", `{"prompt":"a red fox"}`)
			assert.Equal(t, http.StatusInternalServerError, code)
			assert.Equal(t, map[string]any{"error": tt.wantErr}, body)
		})
	}
}

func TestSimpleImageMissingPrompt(t *testing.T) {
	client := &MockClient{}
	code, body := post(t, setupRouter(client), "/simpleimage", `{"prompt":""}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Prompt is required", body["error"])
	assert.Zero(t, client.calls)
}

func TestZoomOut(t *testing.T) {
	for payloadLevel, want := range map[string]domain.ZoomLevel{
		`"2x"`:   domain.ZoomLevel2x,
		`"1.5x"`: domain.ZoomLevel1_5x,
		`"high"`: domain.ZoomLevelHigh,
		`"low"`:  domain.ZoomLevelLow,
		`""`:     domain.ZoomLevel2x,
	} {
		t.Run(payloadLevel, func(t *testing.T) {
			client := &MockClient{
				ZoomOutFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
					assert.Equal(t, want, opts.Level)
					assert.Equal(t, "u1", opts.MsgID)
					return completeMessage("z1", 0, "hz"), nil
				},
			}
			code, body := post(t, setupRouter(client), "/zoomout",
				`{"imagineId":"u1","flags":0,"hash":"h1","level":`+payloadLevel+`}`)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "z1", body["id"])
		})
	}
}

func TestZoomOutValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"no imagine id", `{"flags":0,"hash":"h1","level":"2x"}`, "Missing required parameters"},
		{"no flags", `{"imagineId":"u1","hash":"h1","level":"2x"}`, "Missing required parameters"},
		{"empty hash", `{"imagineId":"u1","flags":0,"hash":"","level":"2x"}`, "Missing required parameters"},
		{"bad level", `{"imagineId":"u1","flags":0,"hash":"h1","level":"4x"}`, "Invalid zoom level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockClient{}
			code, body := post(t, setupRouter(client), "/zoomout", tt.payload)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.Equal(t, map[string]any{"error": tt.wantErr}, body)
			assert.Zero(t, client.calls)
		})
	}
}

func TestZoomOutClientError(t *testing.T) {
	client := &MockClient{
		ZoomOutFunc: func(ctx context.Context, opts domain.ActionOptions) (*domain.Message, error) {
			return nil, errors.New("boom")
		},
	}
	code, body := post(t, setupRouter(client), "/zoomout", `{"imagineId":"u1","flags":0,"hash":"h1"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to process zoomout request", body["error"])
}
