package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

// Client is one websocket connection registered on the hub.
type Client struct {
	principalID string
	conn        *websocket.Conn
	send        chan []byte
	hub         *Hub
	closeOnce   sync.Once
}

// NewClient registers a connection for a principal and starts its write
// pump. The caller keeps ownership of the read side.
func NewClient(hub *Hub, principalID string, conn *websocket.Conn) *Client {
	c := &Client{
		principalID: principalID,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		hub:         hub,
	}
	hub.add(c)
	go c.writePump()
	return c
}

// Close deregisters the client and closes the connection.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.remove(c)
		close(c.send)
		_ = c.conn.Close()
	})
}

// ReadLoop consumes inbound frames until the peer disconnects. The channel
// is one-way push; inbound payloads are discarded.
func (c *Client) ReadLoop() {
	defer c.Close()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Close()
			return
		}
	}
}
