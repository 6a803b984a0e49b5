package ports

import (
	"context"
	"errors"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
)

var (
	// ErrDuplicateKey is returned by Insert when the event_id already
	// exists. Never a silent overwrite.
	ErrDuplicateKey = errors.New("duplicate event id")

	// ErrNotFound is returned by GetByID when no record matches.
	ErrNotFound = errors.New("event not found")
)

// ListFilter narrows and pages a List call. Nil filters match everything
// for their dimension.
type ListFilter struct {
	Offset    int
	Limit     int
	UserID    *string
	EventType *domain.EventType
}

// EventRepositoryPort is the append-only event store.
//
// Insert:
//
//	err == nil                  -> record written
//	errors.Is(ErrDuplicateKey)  -> event_id collision, nothing written
//	other err                   -> storage failure, write must not be assumed
type EventRepositoryPort interface {
	Insert(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, eventID string) (*domain.Event, error)
	List(ctx context.Context, f ListFilter) ([]domain.Event, error)
}
