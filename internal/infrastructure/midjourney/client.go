package midjourney

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/imagine-api/internal/config"
	"github.com/janhq/imagine-api/internal/domain/imagine"
	"github.com/janhq/imagine-api/internal/infrastructure/metrics"
)

// Config holds the Discord connection settings.
type Config struct {
	APIURL         string
	WSURL          string
	ServerID       string
	ChannelID      string
	Token          string
	ApplicationID  string
	ReconnectDelay time.Duration
	Debug          bool
}

// ConfigFrom maps the service configuration onto the client settings.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		APIURL:         cfg.MJAPIURL,
		WSURL:          cfg.MJWSURL,
		ServerID:       cfg.ServerID,
		ChannelID:      cfg.ChannelID,
		Token:          cfg.SalaiToken,
		ApplicationID:  cfg.MJApplicationID,
		ReconnectDelay: cfg.MJReconnectDelay,
		Debug:          cfg.MJDebug,
	}
}

// Client drives the Midjourney bot through a Discord user session.
type Client struct {
	cfg     Config
	log     zerolog.Logger
	rest    *restClient
	tracker *tracker

	mu      sync.RWMutex
	session *gatewaySession
	ready   atomic.Bool
	closed  atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

var _ imagine.Client = (*Client)(nil)

// New creates a client. Call Init before submitting jobs.
func New(cfg Config, log zerolog.Logger) *Client {
	log = log.With().Str("component", "midjourney").Logger()
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	return &Client{
		cfg:     cfg,
		log:     log,
		rest:    newRESTClient(cfg, log),
		tracker: newTracker(),
	}
}

// Init opens the gateway session and keeps it alive until Close.
func (c *Client) Init(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	s, err := dialGateway(ctx, c.cfg, c.log)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		cancel()
		s.close()
		return ErrClosed
	}
	c.storeSessionLocked(s)
	c.cancel = cancel
	c.wg.Add(1)
	c.mu.Unlock()

	go c.maintain(runCtx, s)
	return nil
}

// Ready reports whether a gateway session is established.
func (c *Client) Ready() bool {
	return c.ready.Load()
}

// Imagine submits /imagine and waits for the finished grid.
func (c *Client) Imagine(ctx context.Context, prompt string, progress imagine.ProgressFunc) (*imagine.Message, error) {
	sessionID, err := c.sessionID()
	if err != nil {
		return nil, err
	}
	j := newJob(newNonce(), ActionImagine, progress)
	j.prompt = normalizePrompt(prompt)
	return c.run(ctx, j, func() error {
		return c.rest.imagine(ctx, sessionID, j.nonce, prompt)
	})
}

// Variation presses a V button on a grid.
func (c *Client) Variation(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	return c.press(ctx, ActionVariation, opts)
}

// Upscale presses a U button on a grid.
func (c *Client) Upscale(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	return c.press(ctx, ActionUpscale, opts)
}

// ZoomOut presses a zoom or vary button on an upscaled image.
func (c *Client) ZoomOut(ctx context.Context, opts imagine.ActionOptions) (*imagine.Message, error) {
	return c.press(ctx, ActionZoomOut, opts)
}

// Close stops the gateway and releases every waiting job.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	c.wg.Wait()

	if s := c.setSession(nil); s != nil {
		s.close()
	}
	c.tracker.failAll(ErrClosed)
	return nil
}

func (c *Client) press(ctx context.Context, action Action, opts imagine.ActionOptions) (*imagine.Message, error) {
	id, err := customID(action, opts)
	if err != nil {
		return nil, err
	}
	sessionID, err := c.sessionID()
	if err != nil {
		return nil, err
	}
	j := newJob(newNonce(), action, opts.Progress)
	j.sourceID = opts.MsgID
	return c.run(ctx, j, func() error {
		return c.rest.press(ctx, action, sessionID, j.nonce, opts.MsgID, opts.Flags, id)
	})
}

// run registers j, sends the interaction and waits for the bot's answer.
func (c *Client) run(ctx context.Context, j *job, send func() error) (*imagine.Message, error) {
	c.tracker.add(j)
	metrics.JobsInFlight.Inc()
	defer metrics.JobsInFlight.Dec()

	log := c.log.With().Str("job", j.String()).Logger()
	log.Debug().Msg("submitting job")

	if err := send(); err != nil {
		c.tracker.remove(j.nonce)
		metrics.RecordJob(string(j.action), "send_error", time.Since(j.startedAt).Seconds())
		return nil, err
	}

	select {
	case out := <-j.done:
		status := "success"
		if out.err != nil {
			status = "failed"
		}
		metrics.RecordJob(string(j.action), status, time.Since(j.startedAt).Seconds())
		log.Debug().Err(out.err).Dur("elapsed", time.Since(j.startedAt)).Msg("job finished")
		return out.msg, out.err
	case <-ctx.Done():
		c.tracker.remove(j.nonce)
		metrics.RecordJob(string(j.action), "cancelled", time.Since(j.startedAt).Seconds())
		return nil, ctx.Err()
	}
}

// maintain reads from s and redials after every disconnect until ctx ends.
func (c *Client) maintain(ctx context.Context, s *gatewaySession) {
	defer c.wg.Done()
	for {
		err := s.run(ctx, c.dispatch)
		c.setSession(nil)
		if ctx.Err() != nil {
			return
		}
		c.log.Warn().Err(err).Dur("retry_in", c.cfg.ReconnectDelay).Msg("gateway disconnected")

		s = c.reconnect(ctx)
		if s == nil {
			return
		}
		c.setSession(s)
	}
}

func (c *Client) reconnect(ctx context.Context) *gatewaySession {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.cfg.ReconnectDelay):
		}
		s, err := dialGateway(ctx, c.cfg, c.log)
		if err == nil {
			c.log.Info().Msg("gateway reconnected")
			return s
		}
		if ctx.Err() != nil {
			return nil
		}
		c.log.Error().Err(err).Msg("gateway reconnect failed")
	}
}

func (c *Client) dispatch(event string, data json.RawMessage) {
	metrics.RecordGatewayEvent(event)

	switch event {
	case eventMessageCreate, eventMessageUpdate:
		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Warn().Err(err).Str("event", event).Msg("decode message")
			return
		}
		if !c.fromBot(&msg, event == eventMessageCreate) {
			return
		}
		c.log.Debug().Str("event", event).Str("message_id", msg.ID).Msg(msg.Content)
		if event == eventMessageCreate {
			c.tracker.handleCreate(&msg)
		} else {
			c.tracker.handleUpdate(&msg)
		}
	case eventInteractionCreate, eventInteractionSuccess:
		var ev interactionEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return
		}
		c.tracker.bindInteraction(ev.Nonce, ev.ID)
	case eventInteractionFailure:
		var ev interactionEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return
		}
		c.tracker.fail(ev.Nonce, fmt.Errorf("%w: interaction rejected", ErrJobFailed))
	}
}

// fromBot keeps messages posted by the bot in the configured channel. Partial
// updates may omit the author.
func (c *Client) fromBot(msg *message, requireAuthor bool) bool {
	if msg.ChannelID != c.cfg.ChannelID {
		return false
	}
	if msg.Author == nil {
		return !requireAuthor
	}
	return msg.Author.ID == c.cfg.ApplicationID
}

func (c *Client) sessionID() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return "", ErrNotReady
	}
	return c.session.sessionID, nil
}

// setSession swaps the active session and returns the previous one.
func (c *Client) setSession(s *gatewaySession) *gatewaySession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storeSessionLocked(s)
}

// storeSessionLocked swaps the active session. c.mu must be held.
func (c *Client) storeSessionLocked(s *gatewaySession) *gatewaySession {
	prev := c.session
	c.session = s
	c.ready.Store(s != nil)
	metrics.SetGatewayConnected(s != nil)
	return prev
}
