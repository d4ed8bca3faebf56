package handlers

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pongarena/pongarena-backend/models"
)

// Connection represents a WebSocket connection and the user it belongs to.
// It implements game.Conn: the lobby and match engines address outgoing
// events through Send, which never blocks.
type Connection struct {
	id       string
	ws       *websocket.Conn
	send     chan models.WsMessage
	username string

	mu     sync.Mutex
	closed bool
}

func (c *Connection) ID() string {
	return c.id
}

// Send queues an event frame for the writePump. Slow consumers lose
// frames rather than stalling a match's tick loop, and sends after the
// connection closed are dropped.
func (c *Connection) Send(event string, data interface{}) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			log.Printf("error marshalling %s event: %v", event, err)
			return
		}
		raw = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- models.WsMessage{Event: event, Data: raw}:
	default:
		log.Printf("dropping %s event for %s: send buffer full", event, c.username)
	}
}

// closeSend stops the writePump. A match loop may still try to Send for
// one more tick; Send checks the flag under the same lock.
func (c *Connection) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Connection) readPump() {
	defer func() {
		// Queue/challenge/session cleanup runs before the registry entry
		// goes away, then the socket is closed.
		lobby.Disconnect(c.id)
		c.closeSend()
		c.ws.Close()
		log.Printf("connection %s closed (user %s)", c.id, c.username)
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			log.Printf("error reading message from %s: %v", c.username, err)
			break
		}
		processMessage(c, message)
	}
}

func (c *Connection) writePump() {
	defer func() {
		c.ws.Close()
	}()

	for message := range c.send {
		if err := c.ws.WriteJSON(message); err != nil {
			log.Printf("error writing message: %v", err)
			break
		}
	}
}
