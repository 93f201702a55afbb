package chat

import "sync"

// History is the append-only log of every text message broadcast so far.
// It is replayed in full to each client that joins.
type History struct {
	mu    sync.RWMutex
	texts []string
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append adds text at the end of the log.
func (h *History) Append(text string) {
	h.mu.Lock()
	h.texts = append(h.texts, text)
	h.mu.Unlock()
}

// Snapshot returns a copy of the log as of the call.
func (h *History) Snapshot() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]string, len(h.texts))
	copy(out, h.texts)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.texts)
}
