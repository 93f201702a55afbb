package chat

import "errors"

var (
	// ErrQueueClosed is returned when enqueueing onto a client that left or was pruned.
	ErrQueueClosed = errors.New("outbound queue closed")
	// ErrQueueFull is returned when a bounded outbound queue has no room left.
	ErrQueueFull = errors.New("outbound queue full")
	// ErrSessionClosed marks a clean end of stream on a Session.
	ErrSessionClosed = errors.New("session closed")
	// ErrHubClosed is returned by Run once the hub has been shut down.
	ErrHubClosed = errors.New("hub closed")
)
