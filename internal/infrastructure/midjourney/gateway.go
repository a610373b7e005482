package midjourney

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	handshakeTimeout = 30 * time.Second
	writeWait        = 10 * time.Second
)

var errReconnectRequested = errors.New("gateway requested reconnect")

type dispatchFunc func(event string, data json.RawMessage)

// gatewaySession is one authenticated websocket connection.
type gatewaySession struct {
	conn      *websocket.Conn
	log       zerolog.Logger
	sessionID string
	interval  time.Duration

	writeMu sync.Mutex
	seq     atomic.Int64
	acked   atomic.Bool
	closed  atomic.Bool
}

// dialGateway connects, identifies and waits for READY.
func dialGateway(ctx context.Context, cfg Config, log zerolog.Logger) (*gatewaySession, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, cfg.WSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dial gateway: %w", err)
	}

	s := &gatewaySession{conn: conn, log: log}
	s.seq.Store(-1)
	s.acked.Store(true)

	// unblock the handshake reads on cancellation
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	if err := s.handshake(ctx, cfg.Token); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *gatewaySession) handshake(ctx context.Context, token string) error {
	deadline := time.Now().Add(handshakeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = s.conn.SetReadDeadline(deadline)
	defer s.conn.SetReadDeadline(time.Time{})

	hello, err := s.read()
	if err != nil {
		return fmt.Errorf("read hello: %w", err)
	}
	if hello.Op != opHello {
		return fmt.Errorf("expected hello, got op %d", hello.Op)
	}
	var h helloData
	if err := json.Unmarshal(hello.D, &h); err != nil {
		return fmt.Errorf("decode hello: %w", err)
	}
	s.interval = time.Duration(h.HeartbeatInterval) * time.Millisecond
	if s.interval <= 0 {
		s.interval = 41250 * time.Millisecond
	}

	if err := s.send(opIdentify, identifyData{
		Token:        token,
		Capabilities: 16381,
		Properties: identifyProperties{
			OS:      "Mac OS X",
			Browser: "Chrome",
		},
	}); err != nil {
		return fmt.Errorf("send identify: %w", err)
	}

	for {
		p, err := s.read()
		if err != nil {
			return fmt.Errorf("wait for ready: %w", err)
		}
		switch p.Op {
		case opInvalidSession:
			return errors.New("gateway rejected identify: invalid session")
		case opDispatch:
			if p.T != eventReady {
				continue
			}
			var ready readyData
			if err := json.Unmarshal(p.D, &ready); err != nil {
				return fmt.Errorf("decode ready: %w", err)
			}
			if ready.SessionID == "" {
				return errors.New("ready without session id")
			}
			s.sessionID = ready.SessionID
			s.log.Info().Str("user", ready.User.Username).Msg("gateway session ready")
			return nil
		}
	}
}

// run pumps events until the connection drops or ctx is cancelled.
func (s *gatewaySession) run(ctx context.Context, dispatch dispatchFunc) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.heartbeat(runCtx)
	go func() {
		<-runCtx.Done()
		s.close()
	}()

	for {
		p, err := s.read()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		switch p.Op {
		case opDispatch:
			dispatch(p.T, p.D)
		case opHeartbeat:
			if err := s.sendHeartbeat(); err != nil {
				return err
			}
		case opHeartbeatACK:
			s.acked.Store(true)
		case opReconnect, opInvalidSession:
			return errReconnectRequested
		}
	}
}

func (s *gatewaySession) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.acked.Load() {
				s.log.Warn().Msg("heartbeat not acknowledged, dropping connection")
				s.close()
				return
			}
			s.acked.Store(false)
			if err := s.sendHeartbeat(); err != nil {
				s.log.Warn().Err(err).Msg("send heartbeat")
				s.close()
				return
			}
		}
	}
}

func (s *gatewaySession) sendHeartbeat() error {
	if seq := s.seq.Load(); seq >= 0 {
		return s.send(opHeartbeat, seq)
	}
	return s.send(opHeartbeat, nil)
}

func (s *gatewaySession) read() (*gatewayPayload, error) {
	_, data, err := s.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	var p gatewayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode gateway payload: %w", err)
	}
	if p.S != nil {
		s.seq.Store(*p.S)
	}
	return &p, nil
}

func (s *gatewaySession) send(op int, d any) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(gatewayPayload{Op: op, D: raw})
}

func (s *gatewaySession) close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	s.writeMu.Unlock()
	_ = s.conn.Close()
}
