// Package tui implements the terminal chat client for a running standup
// server.
package tui

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/standuplabs/standup/internal/server"
)

// Conn is the websocket connection to the server. Writes are serialized;
// reads happen on a single loop goroutine.
type Conn struct {
	ws *websocket.Conn

	writeMu sync.Mutex
}

// Dial connects to a standup server websocket endpoint, e.g.
// ws://localhost:8080/ws.
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

// SendEvent writes one envelope to the server.
func (c *Conn) SendEvent(eventType string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteJSON(server.Envelope{Type: eventType, Payload: raw})
}

// ReadLoop reads envelopes until the connection closes, invoking onEvent
// for each. onClose runs once with the terminal error.
func (c *Conn) ReadLoop(onEvent func(server.Envelope), onClose func(error)) {
	for {
		var env server.Envelope
		if err := c.ws.ReadJSON(&env); err != nil {
			if onClose != nil {
				onClose(err)
			}
			return
		}
		onEvent(env)
	}
}

// Close tears down the connection.
func (c *Conn) Close() error {
	return c.ws.Close()
}
