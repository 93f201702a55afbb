package server

import (
	"errors"
	"io"
	"testing"

	"github.com/Tyrowin/relaychat/internal/chat"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// TestClassifyReadError verifies which read failures count as a clean end of stream.
func TestClassifyReadError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		closed bool
	}{
		{name: "EOF", err: io.EOF, closed: true},
		{name: "normal close", err: &websocket.CloseError{Code: websocket.CloseNormalClosure}, closed: true},
		{name: "going away", err: &websocket.CloseError{Code: websocket.CloseGoingAway}, closed: true},
		{name: "closed network connection", err: errors.New("read tcp: use of closed network connection"), closed: true},
		{name: "abnormal close", err: &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, closed: false},
		{name: "read limit", err: websocket.ErrReadLimit, closed: false},
		{name: "other", err: errors.New("boom"), closed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyReadError(tt.err)
			require.Equal(t, tt.closed, errors.Is(got, chat.ErrSessionClosed))
		})
	}

	require.ErrorIs(t, classifyReadError(websocket.ErrReadLimit), websocket.ErrReadLimit)
}

// TestClassifyReadErrorKeepsCause verifies the transport error stays reachable
// after it is marked as a clean close.
func TestClassifyReadErrorKeepsCause(t *testing.T) {
	req := require.New(t)

	got := classifyReadError(io.EOF)
	req.ErrorIs(got, chat.ErrSessionClosed)
	req.ErrorIs(got, io.EOF)

	got = classifyReadError(&websocket.CloseError{Code: websocket.CloseGoingAway, Text: "bye"})
	var closeErr *websocket.CloseError
	req.ErrorAs(got, &closeErr)
	req.Equal(websocket.CloseGoingAway, closeErr.Code)
	req.ErrorIs(got, chat.ErrSessionClosed)
}

// TestIsExpectedCloseError mirrors the errors that are not worth logging.
func TestIsExpectedCloseError(t *testing.T) {
	require.True(t, isExpectedCloseError(nil))
	require.True(t, isExpectedCloseError(websocket.ErrCloseSent))
	require.True(t, isExpectedCloseError(errors.New("write: broken pipe")))
	require.False(t, isExpectedCloseError(errors.New("timeout")))
}
