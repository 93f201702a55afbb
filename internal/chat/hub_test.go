package chat_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/Tyrowin/relaychat/internal/chattest"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newHub(opts ...chat.Option) *chat.Hub {
	return chat.NewHub(logs.GetLoggerFromLevel(slog.LevelDebug), opts...)
}

// serve runs a handler for s in the background and waits until it relays.
func serve(t *testing.T, hub *chat.Hub, s *chattest.Session) (*chat.Handler, <-chan error) {
	t.Helper()
	handler := hub.NewHandler(s)
	done := make(chan error, 1)
	go func() {
		done <- handler.Run(context.Background())
	}()
	require.Eventually(t, func() bool {
		return handler.State() == chat.StateRelaying
	}, time.Second, time.Millisecond)
	return handler, done
}

func TestHub_Broadcast_Text_Goes_To_History_And_Everyone(t *testing.T) {
	req := require.New(t)
	hub := newHub()
	a, err := hub.Join(chattest.NewSession("a"))
	req.NoError(err)
	b, err := hub.Join(chattest.NewSession("b"))
	req.NoError(err)

	delivery := hub.Broadcast(chat.Text("hi"))

	req.Equal(2, delivery.Delivered)
	req.Empty(delivery.Pruned)
	req.Equal([]string{"hi"}, hub.History())
	req.Equal(1, a.Pending())
	req.Equal(1, b.Pending())
}

func TestHub_Broadcast_Binary_Skips_History(t *testing.T) {
	req := require.New(t)
	hub := newHub()
	a, err := hub.Join(chattest.NewSession("a"))
	req.NoError(err)

	for i := 0; i < 5; i++ {
		delivery := hub.Broadcast(chat.Binary([]byte{0x89, 'P', 'N', 'G'}))
		req.Equal(1, delivery.Delivered)
	}

	req.Empty(hub.History())
	req.Equal(5, a.Pending())

	// A later joiner has nothing to replay
	late, err := hub.Join(chattest.NewSession("late"))
	req.NoError(err)
	req.Zero(late.Pending())
}

func TestHub_Join_Replays_Whole_History(t *testing.T) {
	req := require.New(t)
	hub := newHub(chat.WithQueueLimit(1))

	for _, text := range []string{"a", "b", "c", "d"} {
		hub.Broadcast(chat.Text(text))
	}

	// Replay ignores the queue bound
	client, err := hub.Join(chattest.NewSession("joiner"))
	req.NoError(err)
	req.Equal(4, client.Pending())
}

func TestHub_Broadcast_Prunes_Only_The_Failing_Client(t *testing.T) {
	req := require.New(t)
	hub := newHub(chat.WithQueueLimit(2))
	slowSession := chattest.NewSession("slow")
	slow, err := hub.Join(slowSession)
	req.NoError(err)
	b, err := hub.Join(chattest.NewSession("b"))
	req.NoError(err)
	c, err := hub.Join(chattest.NewSession("c"))
	req.NoError(err)

	// Given the slow client's queue is already full
	req.NoError(slow.Enqueue(chat.Text("backlog-1")))
	req.NoError(slow.Enqueue(chat.Text("backlog-2")))

	// When a message is broadcast
	first := hub.Broadcast(chat.Text("m1"))

	// Then only the slow client is pruned and the others still get the message
	req.Equal(2, first.Delivered)
	req.Equal([]uuid.UUID{slow.ID()}, first.Pruned)
	req.False(hub.Connected(slow.ID()))
	req.True(slowSession.Closed())
	req.Equal(1, b.Pending())
	req.Equal(1, c.Pending())

	// And the next pass no longer tries the pruned client
	second := hub.Broadcast(chat.Text("m2"))
	req.Equal(2, second.Delivered)
	req.Empty(second.Pruned)
	req.Equal(2, hub.Clients())

	// Leaving after being pruned is a no-op
	hub.Leave(slow)
	req.Equal(2, hub.Clients())
}

func TestHub_Shutdown(t *testing.T) {
	req := require.New(t)
	hub := newHub()
	alice := chattest.NewSession("alice")
	bob := chattest.NewSession("bob")
	_, aliceDone := serve(t, hub, alice)
	_, bobDone := serve(t, hub, bob)

	req.NoError(hub.Shutdown(time.Second))

	req.Zero(hub.Clients())
	req.True(alice.Closed())
	req.True(bob.Closed())
	req.NoError(<-aliceDone)
	req.NoError(<-bobDone)

	// No joins after shutdown
	_, err := hub.Join(chattest.NewSession("late"))
	req.ErrorIs(err, chat.ErrHubClosed)
}

func TestHub_Shutdown_Does_Not_Wait_For_Untracked_Joins(t *testing.T) {
	req := require.New(t)
	hub := newHub()
	session := chattest.NewSession("direct")
	client, err := hub.Join(session)
	req.NoError(err)

	// Nothing runs a handler for client, so there is nothing to wait for
	start := time.Now()
	req.NoError(hub.Shutdown(time.Second))
	req.Less(time.Since(start), 200*time.Millisecond)

	req.True(client.Closed())
	req.True(session.Closed())
	req.ErrorIs(client.Enqueue(chat.Text("late")), chat.ErrQueueClosed)
}

func TestHub_Shutdown_Without_Clients(t *testing.T) {
	hub := newHub()

	start := time.Now()
	require.NoError(t, hub.Shutdown(50*time.Millisecond))
	require.Less(t, time.Since(start), 200*time.Millisecond)
}
