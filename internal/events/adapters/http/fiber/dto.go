package fiber

import "encoding/json"

// CreateEventRequest represents event ingestion payload
// @Description Event ingestion DTO
type CreateEventRequest struct {
	UserID    string          `json:"user_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp string          `json:"timestamp,omitempty" example:"2025-05-01T10:30:00Z"`
}

type CreateEventResponse struct {
	Message string `json:"message" example:"Event received successfully"`
	EventID string `json:"event_id"`
}

type EventResponse struct {
	EventID   string          `json:"event_id"`
	UserID    string          `json:"user_id"`
	EventType string          `json:"event_type"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
	Skip   int             `json:"skip"`
	Limit  int             `json:"limit"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"schema_violation"`
	Message string `json:"message" example:"invalid payload: field \"url\" is required"`
}
