package chat

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Hub is the broadcast engine. It owns the history and the registry, and
// serializes joins against broadcast passes so a joining client sees every
// text message exactly once, either in its replay or live.
type Hub struct {
	log        *slog.Logger
	history    *History
	registry   *Registry
	queueLimit int

	// mu orders joins and broadcast passes. Leaves do not take it.
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// Option customizes a Hub.
type Option func(*Hub)

// WithQueueLimit bounds each client's outbound queue. A client whose queue
// is full when a broadcast reaches it is pruned. Zero means unbounded.
func WithQueueLimit(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.queueLimit = n
		}
	}
}

// NewHub creates a hub with an empty history and registry.
func NewHub(log *slog.Logger, opts ...Option) *Hub {
	h := &Hub{
		log:      log,
		history:  NewHistory(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Delivery summarizes one broadcast pass.
type Delivery struct {
	Delivered int
	Pruned    []uuid.UUID
}

// Join registers a client for session and queues the current history for
// it ahead of any live traffic. Nothing drains the client's queue; the caller
// owns it. Shutdown disconnects such clients but does not wait on them, since
// only Handler.Run is tracked.
func (h *Hub) Join(session Session) (*Client, error) {
	return h.join(session, false)
}

// join registers session; tracked joins are counted until the handler
// calls h.wg.Done, so Shutdown can wait for them.
func (h *Hub) join(session Session, tracked bool) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	c := NewClient(session, h.queueLimit)
	if err := c.replay(h.history.Snapshot()); err != nil {
		return nil, err
	}
	h.registry.Register(c)
	if tracked {
		h.wg.Add(1)
	}
	h.log.Info("Client joined", "client", c.id, "addr", c.Addr(),
		"clients", h.registry.Len(), "replayed", c.Pending())
	return c, nil
}

// Leave removes c from the registry. Leaving twice is harmless.
func (h *Hub) Leave(c *Client) {
	if h.registry.Deregister(c.id) {
		h.log.Info("Client left", "client", c.id, "addr", c.Addr(), "clients", h.registry.Len())
	}
}

// Broadcast appends text messages to history and queues msg for every
// registered client, sender included. Clients that cannot take the message
// are pruned; their failure never affects delivery to the others.
func (h *Hub) Broadcast(msg Message) Delivery {
	h.mu.Lock()
	defer h.mu.Unlock()

	if msg.IsText() {
		h.history.Append(msg.Text)
	} else if h.log.Enabled(context.Background(), slog.LevelDebug) {
		h.log.Debug("Broadcasting binary message", "bytes", msg.Len(), "content_type", msg.ContentType())
	}

	var d Delivery
	pruned := h.registry.ForEachActive(func(c *Client) error {
		if err := c.Enqueue(msg); err != nil {
			return err
		}
		d.Delivered++
		return nil
	})
	for _, c := range pruned {
		h.log.Warn("Client pruned after failed delivery", "client", c.id, "addr", c.Addr())
	}
	d.Pruned = lo.Map(pruned, func(c *Client, _ int) uuid.UUID { return c.id })
	return d
}

// History returns a snapshot of the text history.
func (h *Hub) History() []string {
	return h.history.Snapshot()
}

// Clients returns the number of joined clients.
func (h *Hub) Clients() int {
	return h.registry.Len()
}

// Active lists the identities of joined clients.
func (h *Hub) Active() []uuid.UUID {
	return h.registry.Active()
}

// Connected reports whether id is currently joined.
func (h *Hub) Connected(id uuid.UUID) bool {
	return h.registry.Contains(id)
}

// Lookup returns the joined client with the given identity.
func (h *Hub) Lookup(id uuid.UUID) (*Client, bool) {
	return h.registry.Get(id)
}

// Serve runs a Handler for session until the connection ends.
func (h *Hub) Serve(ctx context.Context, session Session) error {
	return h.NewHandler(session).Run(ctx)
}

// Shutdown refuses further joins, disconnects every client and waits for
// running handlers to return, or for timeout to elapse.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.log.Info("Initiating hub shutdown...")

	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	n := h.registry.Clear()
	h.log.Info("Closed client connections", "clients", n)

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.log.Info("Hub shutdown completed successfully")
		return nil
	case <-time.After(timeout):
		h.log.Warn("Hub shutdown timeout reached, some handlers may still be running")
		return context.DeadlineExceeded
	}
}
