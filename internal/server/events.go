// Package server exposes the chat over HTTP: a websocket endpoint for the
// live conversation and a small REST surface for health and state reads.
package server

import "encoding/json"

// Inbound event types (client to server).
const (
	EventMessage        = "message"
	EventToggleAgent    = "toggle_agent"
	EventSetRole        = "set_role"
	EventRequestHistory = "request_history"
	EventRequestAgents  = "request_agents"
)

// Outbound event types (server to client).
const (
	EventNewMessage   = "new_message"
	EventChatHistory  = "chat_history"
	EventAgentsUpdate = "agents_update"
	EventError        = "error"
)

// Envelope is the wire format for both directions: a type tag and a
// type-specific payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessagePayload is the inbound chat message.
type MessagePayload struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// TogglePayload flips an agent's active flag.
type TogglePayload struct {
	AgentID string `json:"agent_id"`
	Active  bool   `json:"active"`
}

// SetRolePayload renames an agent's display role.
type SetRolePayload struct {
	AgentID string `json:"agent_id"`
	Role    string `json:"role"`
}

// ErrorPayload carries a human-readable failure description.
type ErrorPayload struct {
	Message string `json:"message"`
}

// encodeEvent marshals an envelope for the wire. Marshal failures are
// programming errors; they yield a generic error event instead of
// panicking.
func encodeEvent(eventType string, payload interface{}) []byte {
	raw, err := json.Marshal(payload)
	if err != nil {
		fallback, _ := json.Marshal(Envelope{Type: EventError})
		return fallback
	}
	data, err := json.Marshal(Envelope{Type: eventType, Payload: raw})
	if err != nil {
		fallback, _ := json.Marshal(Envelope{Type: EventError})
		return fallback
	}
	return data
}
