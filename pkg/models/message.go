package models

import "time"

// MessageType distinguishes who produced a chat message.
type MessageType string

const (
	// MessageHuman is a message typed by the human operator.
	MessageHuman MessageType = "human"
	// MessageAI is a message generated by an agent.
	MessageAI MessageType = "ai"
	// MessageSystem is a notice produced by the server itself.
	MessageSystem MessageType = "system"
)

// Valid returns true if the type is a known value.
func (t MessageType) Valid() bool {
	switch t {
	case MessageHuman, MessageAI, MessageSystem:
		return true
	default:
		return false
	}
}

// Message is one entry in the append-only conversation log.
// Ordering is by timestamp, strictly increasing for a single server
// instance because the orchestrator writes sequentially.
type Message struct {
	// ID is the unique identifier for this message.
	ID string `json:"id"`
	// Content is the message text.
	Content string `json:"content"`
	// Author is the sender label: the human's name, an agent's display
	// role, or "System".
	Author string `json:"author"`
	// Timestamp is when the message was created.
	Timestamp time.Time `json:"timestamp"`
	// Type records whether a human, an agent, or the system wrote it.
	Type MessageType `json:"type"`
	// Tagged is set on agent replies that were explicitly targeted
	// with an @ tag in the triggering human message.
	Tagged bool `json:"tagged,omitempty"`
}
