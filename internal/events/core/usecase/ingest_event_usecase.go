package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/ports"
)

var (
	ErrInvalidUserID      = errors.New("user_id must be a non-empty string")
	ErrStorageUnavailable = errors.New("event store unavailable")
)

type IngestEventUseCase struct {
	repo ports.EventRepositoryPort
	now  func() time.Time
}

func NewIngestEventUseCase(repo ports.EventRepositoryPort) *IngestEventUseCase {
	return &IngestEventUseCase{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type SubmitEventInput struct {
	UserID    string
	EventType string
	Payload   json.RawMessage
	Timestamp *time.Time
}

// Execute validates one inbound event and persists it, returning the
// generated event id. Either the full record is validated and written or
// nothing is written.
func (uc *IngestEventUseCase) Execute(ctx context.Context, in SubmitEventInput) (string, error) {

	if in.UserID == "" {
		return "", ErrInvalidUserID
	}

	eventType, err := domain.ParseEventType(in.EventType)
	if err != nil {
		return "", err
	}

	payload := in.Payload
	if payload == nil {
		payload = json.RawMessage("{}")
	}

	if _, err := domain.ValidatePayload(eventType, payload); err != nil {
		return "", err
	}

	timestamp := uc.now()
	if in.Timestamp != nil {
		timestamp = in.Timestamp.UTC()
	}

	e := &domain.Event{
		EventID:   uuid.NewString(),
		UserID:    in.UserID,
		EventType: eventType,
		Timestamp: timestamp,
		Payload:   payload,
	}

	err = uc.repo.Insert(ctx, e)
	if errors.Is(err, ports.ErrDuplicateKey) {
		// Random ids should never collide; regenerate and retry once.
		e.EventID = uuid.NewString()
		err = uc.repo.Insert(ctx, e)
		if errors.Is(err, ports.ErrDuplicateKey) {
			return "", fmt.Errorf("%w: event id collided twice", ErrStorageUnavailable)
		}
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return e.EventID, nil
}
