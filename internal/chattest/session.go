// Package chattest provides an in-memory chat.Session for exercising the
// hub without a network.
package chattest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/stretchr/testify/require"
)

// Session is a chat.Session backed by channels. The test plays the remote
// peer: Deliver feeds frames to the server, Expect reads what it sent back.
type Session struct {
	addr     string
	inbound  chan chat.Message
	outbound chan chat.Message
	hangup   chan error
	done     chan struct{}
	once     sync.Once

	mu      sync.Mutex
	sendErr error
}

// NewSession returns an open session identified by addr.
func NewSession(addr string) *Session {
	return &Session{
		addr:     addr,
		inbound:  make(chan chat.Message),
		outbound: make(chan chat.Message, 1024),
		hangup:   make(chan error, 1),
		done:     make(chan struct{}),
	}
}

// Receive implements chat.Session.
func (s *Session) Receive(ctx context.Context) (chat.Message, error) {
	select {
	case msg := <-s.inbound:
		return msg, nil
	case err := <-s.hangup:
		return chat.Message{}, err
	case <-s.done:
		return chat.Message{}, fmt.Errorf("%s: %w", s.addr, chat.ErrSessionClosed)
	case <-ctx.Done():
		return chat.Message{}, ctx.Err()
	}
}

// Send implements chat.Session.
func (s *Session) Send(_ context.Context, msg chat.Message) error {
	s.mu.Lock()
	err := s.sendErr
	s.mu.Unlock()
	if err != nil {
		return err
	}

	select {
	case <-s.done:
		return chat.ErrSessionClosed
	default:
	}
	select {
	case s.outbound <- msg:
		return nil
	case <-s.done:
		return chat.ErrSessionClosed
	}
}

// RemoteAddr implements chat.Session.
func (s *Session) RemoteAddr() string {
	return s.addr
}

// Close implements chat.Session.
func (s *Session) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Closed reports whether the server side closed the session.
func (s *Session) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Deliver hands msg to the server's receive loop. It fails the test if the
// server does not pick it up in time.
func (s *Session) Deliver(t testing.TB, msg chat.Message) {
	t.Helper()
	select {
	case s.inbound <- msg:
	case <-time.After(time.Second):
		t.Fatalf("%s: server did not receive message %q", s.addr, msg.Text)
	}
}

// Hangup makes the pending or next Receive fail with err, as if the peer
// dropped the connection.
func (s *Session) Hangup(err error) {
	select {
	case s.hangup <- err:
	default:
	}
}

// FailSends makes every subsequent Send return err.
func (s *Session) FailSends(err error) {
	s.mu.Lock()
	s.sendErr = err
	s.mu.Unlock()
}

// Expect waits for the next frame the server sent.
func (s *Session) Expect(t testing.TB) chat.Message {
	t.Helper()
	select {
	case msg := <-s.outbound:
		return msg
	case <-time.After(time.Second):
		require.FailNow(t, "no message received", "session %s", s.addr)
		return chat.Message{}
	}
}

// ExpectTexts reads len(want) frames and checks they are the given texts in order.
func (s *Session) ExpectTexts(t testing.TB, want ...string) {
	t.Helper()
	got := make([]string, 0, len(want))
	for range want {
		msg := s.Expect(t)
		require.Equal(t, chat.KindText, msg.Kind)
		got = append(got, msg.Text)
	}
	require.Equal(t, want, got)
}

// ExpectNone checks that nothing arrives within d.
func (s *Session) ExpectNone(t testing.TB, d time.Duration) {
	t.Helper()
	select {
	case msg := <-s.outbound:
		require.FailNow(t, "unexpected message", "session %s got %v %q", s.addr, msg.Kind, msg.Text)
	case <-time.After(d):
	}
}
