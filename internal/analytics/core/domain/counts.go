package domain

import (
	events "github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
)

// TypeCounts always carries all three event types, zero-filled. Consumers
// never need to special-case a missing key.
type TypeCounts struct {
	View     int64
	Click    int64
	Location int64
}

// MergeTypeCounts folds a raw group-by result, which may omit zero-count
// types, into a fully populated TypeCounts.
func MergeTypeCounts(raw map[events.EventType]int64) TypeCounts {
	return TypeCounts{
		View:     raw[events.EventTypeView],
		Click:    raw[events.EventTypeClick],
		Location: raw[events.EventTypeLocation],
	}
}

// Total sums the per-type counts.
func (c TypeCounts) Total() int64 {
	return c.View + c.Click + c.Location
}
