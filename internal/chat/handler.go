package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// State is a connection's position in its lifecycle.
type State int32

const (
	StateConnecting State = iota
	StateJoined
	StateRelaying
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateJoined:
		return "joined"
	case StateRelaying:
		return "relaying"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Handler drives one connection: join, replay, relay inbound frames to the
// hub, then leave. It runs two goroutines, the caller's for receiving and
// one for draining the outbound queue.
type Handler struct {
	hub     *Hub
	session Session
	log     *slog.Logger
	state   atomic.Int32
	client  atomic.Pointer[Client]
}

// NewHandler prepares a handler for session. Nothing happens until Run.
func (h *Hub) NewHandler(session Session) *Handler {
	return &Handler{
		hub:     h,
		session: session,
		log:     h.log.With("addr", session.RemoteAddr()),
	}
}

// State returns the current lifecycle state.
func (hd *Handler) State() State {
	return State(hd.state.Load())
}

// ClientID returns the identity assigned on join, or uuid.Nil before it.
func (hd *Handler) ClientID() uuid.UUID {
	if c := hd.client.Load(); c != nil {
		return c.id
	}
	return uuid.Nil
}

// Run blocks until the session ends. It returns nil when the remote side
// closed the stream cleanly and the receive error otherwise. A failure here
// never touches any other connection.
func (hd *Handler) Run(ctx context.Context) error {
	c, err := hd.hub.join(hd.session, true)
	if err != nil {
		hd.state.Store(int32(StateDisconnected))
		_ = hd.session.Close()
		return err
	}
	defer hd.hub.wg.Done()

	hd.client.Store(c)
	hd.state.Store(int32(StateJoined))
	log := hd.log.With("client", c.id)

	var drained sync.WaitGroup
	drained.Add(1)
	go func() {
		defer drained.Done()
		c.drain(ctx, log)
	}()

	hd.state.Store(int32(StateRelaying))
	err = hd.relay(ctx, log)

	// Leave disconnects c, unless a broadcast pass already pruned it.
	hd.hub.Leave(c)
	drained.Wait()
	hd.state.Store(int32(StateDisconnected))

	if errors.Is(err, ErrSessionClosed) {
		return nil
	}
	return err
}

func (hd *Handler) relay(ctx context.Context, log *slog.Logger) error {
	for {
		msg, err := hd.session.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrSessionClosed) {
				log.Info("Client disconnected")
			} else {
				log.Warn("Receive failed", "error", err)
			}
			return err
		}
		hd.hub.Broadcast(msg)
	}
}
