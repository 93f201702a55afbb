//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session.go -package=mocks
package chat

import "context"

// Session is one accepted connection as seen by the core. The transport
// performs the handshake and hands over a Session ready to exchange frames.
//
// Receive blocks until the next frame arrives. It returns an error wrapping
// ErrSessionClosed on a clean end of stream, any other error on failure.
// Send and Receive are called from different goroutines; Close may be
// called concurrently with both and more than once.
type Session interface {
	Receive(ctx context.Context) (Message, error)
	Send(ctx context.Context, msg Message) error
	RemoteAddr() string
	Close() error
}
