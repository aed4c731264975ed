package app

import (
	"sync"

	"alumni_network_service/internal/chat/domain"

	"github.com/google/uuid"
)

type registryEntry struct {
	conn domain.ChatConn
	gen  string
}

// ConnRegistry is the in-process directory of live chat sockets, keyed by
// user id. At most one socket per user; a later Register for the same user
// silently displaces the earlier one (last-writer-wins). Handlers run on
// separate goroutines, so every access takes the lock.
type ConnRegistry struct {
	mu    sync.RWMutex
	conns map[int64]registryEntry
}

// NewConnRegistry create a ConnRegistry
func NewConnRegistry() *ConnRegistry {
	return &ConnRegistry{conns: make(map[int64]registryEntry)}
}

// Register binds userID to conn and returns a generation token. The token
// must be presented to Unregister so a late-closing displaced socket cannot
// evict a newer registration.
func (r *ConnRegistry) Register(userID int64, conn domain.ChatConn) string {
	gen := uuid.New().String()
	r.mu.Lock()
	r.conns[userID] = registryEntry{conn: conn, gen: gen}
	r.mu.Unlock()
	return gen
}

// Lookup returns the live socket for userID, if any.
func (r *ConnRegistry) Lookup(userID int64) (domain.ChatConn, bool) {
	r.mu.RLock()
	entry, ok := r.conns[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return entry.conn, true
}

// Unregister removes the entry for userID if gen still matches the current
// registration; a stale gen is a no-op.
func (r *ConnRegistry) Unregister(userID int64, gen string) {
	r.mu.Lock()
	if entry, ok := r.conns[userID]; ok && entry.gen == gen {
		delete(r.conns, userID)
	}
	r.mu.Unlock()
}

// Size returns the number of registered sockets.
func (r *ConnRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
