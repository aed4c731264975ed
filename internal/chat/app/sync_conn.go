package app

import (
	"sync"

	"alumni_network_service/internal/chat/domain"
)

// syncConn serializes writes to one websocket. The read loop echoes frames
// on its own goroutine while delivery to a recipient socket comes from the
// sender's goroutine, and the underlying conn does not allow concurrent
// writers.
type syncConn struct {
	mu   sync.Mutex
	conn domain.ChatConn
}

func newSyncConn(conn domain.ChatConn) *syncConn {
	return &syncConn{conn: conn}
}

func (c *syncConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}
