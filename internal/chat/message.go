package chat

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// Kind discriminates the two frame types a client may send.
type Kind int

const (
	KindText Kind = iota + 1
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBinary:
		return "binary"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Message is a single chat frame. Only one of Text or Data is meaningful,
// depending on Kind. Messages are treated as immutable once built.
type Message struct {
	Kind Kind
	Text string
	Data []byte
}

// Text builds a text message.
func Text(s string) Message {
	return Message{Kind: KindText, Text: s}
}

// Binary builds a binary message holding its own copy of b.
func Binary(b []byte) Message {
	return Message{Kind: KindBinary, Data: append([]byte(nil), b...)}
}

// IsText reports whether the message goes into history.
func (m Message) IsText() bool {
	return m.Kind == KindText
}

// Len returns the payload size in bytes.
func (m Message) Len() int {
	if m.IsText() {
		return len(m.Text)
	}
	return len(m.Data)
}

// ContentType sniffs the payload. Text frames are always reported as UTF-8 text.
func (m Message) ContentType() string {
	if m.IsText() {
		return "text/plain; charset=utf-8"
	}
	return mimetype.Detect(m.Data).String()
}
