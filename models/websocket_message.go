package models

import (
	"time"

	"github.com/google/uuid"
)

// WebSocketMessageType represents message type constants
type WebSocketMessageType string

const (
	EventMessage WebSocketMessageType = "event"
	ErrorMessage WebSocketMessageType = "error"
)

// StandardMessage is the wire format pushed to connected clients when one of
// their entities changes. Clients use Entity/EntityID to refresh the views
// that depend on the changed record.
type StandardMessage struct {
	ID        string                 `json:"id"`
	Type      WebSocketMessageType   `json:"type"`
	Event     string                 `json:"event,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
	Entity    string                 `json:"entity,omitempty"`
	EntityID  string                 `json:"entity_id,omitempty"`
}

// NewStandardMessage creates a new standard message
func NewStandardMessage(msgType WebSocketMessageType, event string, payload map[string]interface{}) *StandardMessage {
	return &StandardMessage{
		ID:        uuid.New().String(),
		Type:      msgType,
		Event:     event,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// WithEntity adds entity information to the message
func (m *StandardMessage) WithEntity(entity string, entityID string) *StandardMessage {
	m.Entity = entity
	m.EntityID = entityID
	return m
}
