package usecase

import (
	"context"
	"errors"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/ports"
)

var ErrInvalidPaging = errors.New("skip and limit must not be negative")

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

type GetEventsUseCase struct {
	repo ports.EventRepositoryPort
}

func NewGetEventsUseCase(repo ports.EventRepositoryPort) *GetEventsUseCase {
	return &GetEventsUseCase{repo: repo}
}

func (uc *GetEventsUseCase) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	return uc.repo.GetByID(ctx, eventID)
}

type ListEventsInput struct {
	Skip      int
	Limit     int
	UserID    *string
	EventType *string
}

// List pages events, most recent semantics left to the store's stable
// (timestamp, event_id) ordering. Limit 0 means the default page size.
func (uc *GetEventsUseCase) List(ctx context.Context, in ListEventsInput) ([]domain.Event, error) {

	if in.Skip < 0 || in.Limit < 0 {
		return nil, ErrInvalidPaging
	}

	limit := in.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	var eventType *domain.EventType
	if in.EventType != nil {
		parsed, err := domain.ParseEventType(*in.EventType)
		if err != nil {
			return nil, err
		}
		eventType = &parsed
	}

	return uc.repo.List(ctx, ports.ListFilter{
		Offset:    in.Skip,
		Limit:     limit,
		UserID:    in.UserID,
		EventType: eventType,
	})
}
