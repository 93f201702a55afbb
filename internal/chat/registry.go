package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Registry is the set of joined clients, keyed by identity.
// All methods are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[uuid.UUID]*Client)}
}

// Register adds c and returns the handle used to remove it later.
func (r *Registry) Register(c *Client) uuid.UUID {
	r.mu.Lock()
	r.clients[c.id] = c
	r.mu.Unlock()
	return c.id
}

// Deregister removes the client behind id and disconnects it. Removing an
// unknown or already removed id is a no-op and reports false.
func (r *Registry) Deregister(id uuid.UUID) bool {
	r.mu.Lock()
	c, ok := r.clients[id]
	if ok {
		delete(r.clients, id)
	}
	r.mu.Unlock()

	if ok {
		c.disconnect()
	}
	return ok
}

// ForEachActive calls fn for every registered client while holding the
// registry lock, so no client joins or leaves mid-pass. Clients for which
// fn returns an error are removed by identity once the pass is over and
// disconnected after the lock is released. The removed clients are returned.
func (r *Registry) ForEachActive(fn func(c *Client) error) []*Client {
	r.mu.Lock()
	var failed []*Client
	for _, c := range r.clients {
		if err := fn(c); err != nil {
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		delete(r.clients, c.id)
	}
	r.mu.Unlock()

	for _, c := range failed {
		c.disconnect()
	}
	return failed
}

// Get returns the client registered under id.
func (r *Registry) Get(id uuid.UUID) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	return c, ok
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[id]
	return ok
}

// Len returns the number of registered clients.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

// Active lists the registered identities in no particular order.
func (r *Registry) Active() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.clients)
}

// Clear removes and disconnects every client, returning how many there were.
func (r *Registry) Clear() int {
	r.mu.Lock()
	clients := lo.Values(r.clients)
	r.clients = make(map[uuid.UUID]*Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.disconnect()
	}
	return len(clients)
}
