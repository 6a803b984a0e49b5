package ports

import (
	"context"
	"time"

	events "github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
)

// CountFilter narrows a count query. Nil filters match everything for
// their dimension; Start/End denote a closed interval [Start, End].
type CountFilter struct {
	EventType *events.EventType
	Start     *time.Time
	End       *time.Time
}

type AnalyticsReaderPort interface {
	CountEvents(ctx context.Context, f CountFilter) (int64, error)

	// CountEventsByType groups counts by event type within the window.
	// Types with zero matching records may be absent from the result;
	// zero-filling is the caller's concern.
	CountEventsByType(ctx context.Context, start, end *time.Time) (map[events.EventType]int64, error)
}
