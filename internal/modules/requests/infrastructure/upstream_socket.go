package infrastructure

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"mesaYaManager/internal/platform/metrics"
)

const defaultUpstreamURL = "ws://localhost:8001/ws/requests/"

// FrameHandler processes one text frame from the backend socket.
type FrameHandler func(ctx context.Context, value []byte) error

// UpstreamSocket subscribes to the backend request-events channel.
type UpstreamSocket struct {
	url            string
	header         http.Header
	dialer         *websocket.Dialer
	handler        FrameHandler
	reconnectDelay time.Duration
	onConnect      func(ctx context.Context)
	connected      atomic.Bool
}

// UpstreamOption customises an UpstreamSocket.
type UpstreamOption func(*UpstreamSocket)

// WithReconnectDelay makes Run redial after a disconnect. Zero disables reconnection.
func WithReconnectDelay(d time.Duration) UpstreamOption {
	return func(s *UpstreamSocket) { s.reconnectDelay = d }
}

// WithBearerToken authenticates the handshake.
func WithBearerToken(token string) UpstreamOption {
	return func(s *UpstreamSocket) {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			s.header.Set("Authorization", "Bearer "+trimmed)
		}
	}
}

// WithOnConnect runs fn after every successful handshake, before frames are read.
func WithOnConnect(fn func(ctx context.Context)) UpstreamOption {
	return func(s *UpstreamSocket) { s.onConnect = fn }
}

func WithHandshakeTimeout(d time.Duration) UpstreamOption {
	return func(s *UpstreamSocket) {
		if d > 0 {
			s.dialer.HandshakeTimeout = d
		}
	}
}

func NewUpstreamSocket(url string, handler FrameHandler, opts ...UpstreamOption) *UpstreamSocket {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		trimmed = defaultUpstreamURL
	}
	dialer := *websocket.DefaultDialer
	s := &UpstreamSocket{
		url:     trimmed,
		header:  http.Header{},
		dialer:  &dialer,
		handler: handler,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UpstreamSocket) Connected() bool {
	return s.connected.Load()
}

// Run blocks until ctx is cancelled, or until the first disconnect when reconnection is disabled.
func (s *UpstreamSocket) Run(ctx context.Context) error {
	for {
		err := s.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Error("upstream socket error", slog.String("url", s.url), slog.Any("error", err))
		}
		if s.reconnectDelay <= 0 {
			return err
		}
		slog.Info("upstream socket reconnecting", slog.String("url", s.url), slog.Duration("delay", s.reconnectDelay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *UpstreamSocket) session(ctx context.Context) error {
	conn, res, err := s.dialer.DialContext(ctx, s.url, s.header)
	if res != nil && res.Body != nil {
		_ = res.Body.Close()
	}
	if err != nil {
		return err
	}
	s.setConnected(true)
	slog.Info("upstream socket connected", slog.String("url", s.url))

	done := make(chan struct{})
	defer func() {
		close(done)
		_ = conn.Close()
		s.setConnected(false)
		slog.Info("upstream socket closed", slog.String("url", s.url))
	}()
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	if s.onConnect != nil {
		s.onConnect(ctx)
	}

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		if kind != websocket.TextMessage && kind != websocket.BinaryMessage {
			continue
		}
		if err := s.handler(ctx, data); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			slog.Warn("upstream frame skipped", slog.Any("error", err))
		}
	}
}

func (s *UpstreamSocket) setConnected(v bool) {
	s.connected.Store(v)
	if v {
		metrics.UpstreamConnected.Set(1)
		return
	}
	metrics.UpstreamConnected.Set(0)
}
