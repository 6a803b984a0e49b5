package domain

import (
	"encoding/json"
	"fmt"
)

// Payload is the validated, type-specific document carried by an event.
// The set of implementations is sealed: exactly one per EventType.
type Payload interface {
	payloadType() EventType
}

// ViewPayload is the document for page-view events.
type ViewPayload struct {
	URL   string
	Title *string
}

func (ViewPayload) payloadType() EventType { return EventTypeView }

// ClickPayload is the document for click events. Every field is optional;
// an empty payload is valid.
type ClickPayload struct {
	ElementID *string
	Text      *string
	XPath     *string
}

func (ClickPayload) payloadType() EventType { return EventTypeClick }

// LocationPayload is the document for geolocation pings.
type LocationPayload struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

func (LocationPayload) payloadType() EventType { return EventTypeLocation }

// SchemaViolationError reports a payload field that fails its schema:
// a missing required field, a wrong primitive kind, or a numeric bound.
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("invalid payload: field %q %s", e.Field, e.Reason)
}

func violation(field, reason string) error {
	return &SchemaViolationError{Field: field, Reason: reason}
}

// ValidatePayload checks raw against the schema for eventType and returns
// the typed payload on success. Unknown fields in raw are ignored. The
// function is pure: no I/O, deterministic for the same inputs.
func ValidatePayload(eventType EventType, raw json.RawMessage) (Payload, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	switch eventType {
	case EventTypeView:
		return validateView(doc)
	case EventTypeClick:
		return validateClick(doc)
	case EventTypeLocation:
		return validateLocation(doc)
	default:
		return nil, ErrUnknownEventType
	}
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, violation("payload", "must be a JSON object")
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func validateView(doc map[string]any) (Payload, error) {
	url, err := requireString(doc, "url")
	if err != nil {
		return nil, err
	}
	if url == "" {
		return nil, violation("url", "must be a non-empty string")
	}

	title, err := optionalString(doc, "title")
	if err != nil {
		return nil, err
	}

	return ViewPayload{URL: url, Title: title}, nil
}

func validateClick(doc map[string]any) (Payload, error) {
	var p ClickPayload
	var err error

	if p.ElementID, err = optionalString(doc, "element_id"); err != nil {
		return nil, err
	}
	if p.Text, err = optionalString(doc, "text"); err != nil {
		return nil, err
	}
	if p.XPath, err = optionalString(doc, "xpath"); err != nil {
		return nil, err
	}

	return p, nil
}

func validateLocation(doc map[string]any) (Payload, error) {
	lat, err := requireNumber(doc, "latitude")
	if err != nil {
		return nil, err
	}
	if lat < -90 || lat > 90 {
		return nil, violation("latitude", "must be between -90 and 90")
	}

	lon, err := requireNumber(doc, "longitude")
	if err != nil {
		return nil, err
	}
	if lon < -180 || lon > 180 {
		return nil, violation("longitude", "must be between -180 and 180")
	}

	acc, err := optionalNumber(doc, "accuracy")
	if err != nil {
		return nil, err
	}
	if acc != nil && *acc < 0 {
		return nil, violation("accuracy", "must be greater than or equal to 0")
	}

	return LocationPayload{Latitude: lat, Longitude: lon, Accuracy: acc}, nil
}

func requireString(doc map[string]any, field string) (string, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return "", violation(field, "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", violation(field, "must be a string")
	}
	return s, nil
}

func optionalString(doc map[string]any, field string) (*string, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, violation(field, "must be a string")
	}
	return &s, nil
}

func requireNumber(doc map[string]any, field string) (float64, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return 0, violation(field, "is required")
	}
	n, ok := v.(float64)
	if !ok {
		return 0, violation(field, "must be a number")
	}
	return n, nil
}

func optionalNumber(doc map[string]any, field string) (*float64, error) {
	v, ok := doc[field]
	if !ok || v == nil {
		return nil, nil
	}
	n, ok := v.(float64)
	if !ok {
		return nil, violation(field, "must be a number")
	}
	return &n, nil
}
