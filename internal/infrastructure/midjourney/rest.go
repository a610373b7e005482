package midjourney

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/janhq/imagine-api/internal/infrastructure/metrics"
)

// restClient sends interactions and looks up application commands.
type restClient struct {
	cfg  Config
	http *resty.Client
	log  zerolog.Logger

	mu       sync.Mutex
	commands map[string]*applicationCommand
}

func newRESTClient(cfg Config, log zerolog.Logger) *restClient {
	return &restClient{
		cfg: cfg,
		http: resty.New().
			SetBaseURL(cfg.APIURL).
			SetTimeout(30*time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("Authorization", cfg.Token),
		log:      log,
		commands: make(map[string]*applicationCommand),
	}
}

// command returns the application command named name, fetching it once.
func (r *restClient) command(ctx context.Context, name string) (*applicationCommand, error) {
	r.mu.Lock()
	cached, ok := r.commands[name]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	var body struct {
		ApplicationCommands []json.RawMessage `json:"application_commands"`
	}
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"type":                 "1",
			"include_applications": "true",
			"query":                name,
		}).
		SetResult(&body).
		Get(fmt.Sprintf("/channels/%s/application-commands/search", r.cfg.ChannelID))
	if err != nil {
		return nil, fmt.Errorf("search application commands: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), Body: resp.String()}
	}

	for _, raw := range body.ApplicationCommands {
		var cmd applicationCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return nil, fmt.Errorf("decode application command: %w", err)
		}
		if cmd.Name != name || cmd.ApplicationID != r.cfg.ApplicationID {
			continue
		}
		cmd.Raw = raw

		r.mu.Lock()
		r.commands[name] = &cmd
		r.mu.Unlock()
		return &cmd, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, name)
}

// imagine posts the /imagine slash command.
func (r *restClient) imagine(ctx context.Context, sessionID, nonce, prompt string) error {
	cmd, err := r.command(ctx, "imagine")
	if err != nil {
		return err
	}
	data, err := json.Marshal(commandData{
		Version:            cmd.Version,
		ID:                 cmd.ID,
		Name:               cmd.Name,
		Type:               1,
		Options:            []commandOption{{Type: 3, Name: "prompt", Value: prompt}},
		ApplicationCommand: cmd.Raw,
		Attachments:        []any{},
	})
	if err != nil {
		return fmt.Errorf("encode command data: %w", err)
	}
	return r.interact(ctx, ActionImagine, interactionRequest{
		Type:          interactionApplicationCommand,
		ApplicationID: r.cfg.ApplicationID,
		GuildID:       r.cfg.ServerID,
		ChannelID:     r.cfg.ChannelID,
		SessionID:     sessionID,
		Nonce:         nonce,
		Data:          data,
	})
}

// press clicks a button on messageID.
func (r *restClient) press(ctx context.Context, action Action, sessionID, nonce, messageID string, flags int, customID string) error {
	data, err := json.Marshal(componentData{ComponentType: 2, CustomID: customID})
	if err != nil {
		return fmt.Errorf("encode component data: %w", err)
	}
	return r.interact(ctx, action, interactionRequest{
		Type:          interactionMessageComponent,
		ApplicationID: r.cfg.ApplicationID,
		GuildID:       r.cfg.ServerID,
		ChannelID:     r.cfg.ChannelID,
		SessionID:     sessionID,
		Nonce:         nonce,
		MessageFlags:  &flags,
		MessageID:     messageID,
		Data:          data,
	})
}

func (r *restClient) interact(ctx context.Context, action Action, payload interactionRequest) error {
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/interactions")
	if err != nil {
		metrics.RecordInteraction(string(action), "error")
		return fmt.Errorf("post interaction: %w", err)
	}
	if resp.IsError() {
		metrics.RecordInteraction(string(action), "rejected")
		return &APIError{Status: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	metrics.RecordInteraction(string(action), "sent")
	r.log.Debug().
		Str("action", string(action)).
		Str("nonce", payload.Nonce).
		Int("status", resp.StatusCode()).
		Dur("latency", resp.Time()).
		Msg("interaction sent")
	return nil
}
