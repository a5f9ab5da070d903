package ws

import "sync"

type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// client serializes writes to one websocket connection. The connection is
// written to from two goroutines — the read loop (acks) and the hub
// (broadcasts) — and gorilla/websocket permits at most one concurrent
// writer, so every write goes through this lock.
type client struct {
	mu   sync.Mutex
	conn jsonWriter
}

func newClient(conn jsonWriter) *client {
	return &client{conn: conn}
}

func (c *client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}
