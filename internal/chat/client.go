package chat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Client is one joined connection: a stable identity, the Session it writes
// to and its outbound queue.
type Client struct {
	id      uuid.UUID
	session Session
	out     *queue
	once    sync.Once
}

// NewClient wraps session with a fresh identity and an outbound queue
// holding at most queueLimit pending frames (0 for no limit).
func NewClient(session Session, queueLimit int) *Client {
	return &Client{
		id:      uuid.New(),
		session: session,
		out:     newQueue(queueLimit),
	}
}

// ID returns the client's identity.
func (c *Client) ID() uuid.UUID {
	return c.id
}

// Addr returns the remote address of the underlying session, if any.
func (c *Client) Addr() string {
	if c.session == nil {
		return ""
	}
	return c.session.RemoteAddr()
}

// Enqueue queues msg for delivery without blocking. It fails with
// ErrQueueClosed once the client is gone and with ErrQueueFull when a
// bounded queue has no room.
func (c *Client) Enqueue(msg Message) error {
	return c.out.push(msg)
}

// Pending returns the number of frames waiting to be written.
func (c *Client) Pending() int {
	return c.out.len()
}

// Closed reports whether the client can no longer receive frames.
func (c *Client) Closed() bool {
	return c.out.isClosed()
}

func (c *Client) replay(texts []string) error {
	return c.out.pushAll(lo.Map(texts, func(t string, _ int) Message {
		return Text(t)
	}))
}

// disconnect closes the queue and the session. Safe to call repeatedly.
func (c *Client) disconnect() {
	c.once.Do(func() {
		c.out.close()
		if c.session != nil {
			_ = c.session.Close()
		}
	})
}

// drain writes queued frames to the session until the queue is closed or
// ctx is done. A failed write is logged, the frame discarded and the queue
// closed, so the next broadcast pass prunes the client.
func (c *Client) drain(ctx context.Context, log *slog.Logger) {
	for {
		batch, ok := c.out.next(ctx)
		if !ok {
			return
		}
		for _, msg := range batch {
			if err := c.session.Send(ctx, msg); err != nil {
				log.Warn("Send failed, dropping outbound queue",
					"client", c.id, "addr", c.Addr(), "kind", msg.Kind, "error", err)
				c.out.close()
				return
			}
		}
	}
}
