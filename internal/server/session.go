// Package server adapts gorilla WebSocket connections to chat.Session,
// handling frame classification, deadlines, keepalive and rate limiting.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/gorilla/websocket"
)

// wsSession is a chat.Session over an upgraded gorilla connection.
// Writes are serialized by sendMu; Close and WriteControl may run concurrently
// with everything else.
type wsSession struct {
	conn         *websocket.Conn
	addr         string
	writeTimeout time.Duration
	limiter      *rateLimiter
	log          *slog.Logger

	sendMu    sync.Mutex
	closeOnce sync.Once
	stop      chan struct{}
}

func newWSSession(conn *websocket.Conn, addr string, cfg Config, log *slog.Logger) *wsSession {
	s := &wsSession{
		conn:         conn,
		addr:         addr,
		writeTimeout: cfg.WriteTimeout,
		limiter:      newRateLimiterFromConfig(cfg.RateLimit),
		log:          log.With("addr", addr),
		stop:         make(chan struct{}),
	}
	conn.SetReadLimit(cfg.MaxMessageSize)
	if cfg.PingInterval > 0 {
		s.keepAlive(cfg.PingInterval)
	}
	return s
}

// keepAlive pings the peer every interval and expects traffic or a pong
// within pongWait, otherwise the next read fails.
func (s *wsSession) keepAlive(interval time.Duration) {
	pongWait := interval * 10 / 9
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.log.Warn("Error setting initial read deadline", "error", err)
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(s.writeTimeout)
				if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					if !isExpectedCloseError(err) {
						s.log.Warn("Error writing ping message", "error", err)
					}
					return
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Receive returns the next text or binary frame. Frames over the rate limit
// are discarded.
func (s *wsSession) Receive(ctx context.Context) (chat.Message, error) {
	for {
		if err := ctx.Err(); err != nil {
			return chat.Message{}, err
		}

		typ, data, err := s.conn.ReadMessage()
		if err != nil {
			return chat.Message{}, classifyReadError(err)
		}

		if !s.limiter.allow() {
			s.log.Warn("Rate limit exceeded; discarding message", "bytes", len(data))
			continue
		}

		switch typ {
		case websocket.TextMessage:
			return chat.Text(string(data)), nil
		case websocket.BinaryMessage:
			return chat.Binary(data), nil
		}
	}
}

// classifyReadError marks a read failure with ErrSessionClosed when the peer
// simply went away.
func classifyReadError(err error) error {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		return fmt.Errorf("message exceeded maximum size: %w", err)
	case websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived):
		return fmt.Errorf("%w: %w", chat.ErrSessionClosed, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), isExpectedCloseError(err):
		return fmt.Errorf("%w: %w", chat.ErrSessionClosed, err)
	default:
		return err
	}
}

// Send writes msg as one frame within the write timeout.
func (s *wsSession) Send(_ context.Context, msg chat.Message) error {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case <-s.stop:
		return chat.ErrSessionClosed
	default:
	}

	if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
		return err
	}
	if msg.IsText() {
		return s.conn.WriteMessage(websocket.TextMessage, []byte(msg.Text))
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, msg.Data)
}

// RemoteAddr returns the peer address recorded at upgrade time.
func (s *wsSession) RemoteAddr() string {
	return s.addr
}

// Close stops the session immediately and tears the connection down in the
// background, so a stalled peer never holds up the caller.
func (s *wsSession) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		go s.teardown()
	})
	return nil
}

// teardown sends a close frame on a best-effort basis and drops the connection.
func (s *wsSession) teardown() {
	deadline := time.Now().Add(s.writeTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := s.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && !isExpectedCloseError(err) {
		s.log.Debug("Error writing close message", "error", err)
	}
	if err := s.conn.Close(); err != nil && !isExpectedCloseError(err) {
		s.log.Warn("Error closing connection", "error", err)
	}
}

// isExpectedCloseError checks if an error is expected during connection closure.
func isExpectedCloseError(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, websocket.ErrCloseSent) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset by peer")
}
