package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the closed set of supported interaction event types.
type EventType string

const (
	EventTypeView     EventType = "view"
	EventTypeClick    EventType = "click"
	EventTypeLocation EventType = "location"
)

// EventTypes lists every known type in a fixed order.
func EventTypes() []EventType {
	return []EventType{EventTypeView, EventTypeClick, EventTypeLocation}
}

var ErrUnknownEventType = fmt.Errorf("unknown event type, must be one of: %s, %s, %s",
	EventTypeView, EventTypeClick, EventTypeLocation)

// ParseEventType maps a raw tag onto the closed set.
func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventTypeView, EventTypeClick, EventTypeLocation:
		return EventType(s), nil
	default:
		return "", ErrUnknownEventType
	}
}

// Event is the persisted record. Records are append-only: once written they
// are never updated or deleted by this service.
type Event struct {
	EventID   string
	UserID    string
	EventType EventType
	Timestamp time.Time
	Payload   json.RawMessage
}
