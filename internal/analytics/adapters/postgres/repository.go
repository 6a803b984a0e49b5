package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/prashsamosa/web-analytics-service/internal/analytics/core/ports"
	events "github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type AnalyticsRepository struct {
	db DB
}

func NewAnalyticsRepository(db DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

var _ ports.AnalyticsReaderPort = (*AnalyticsRepository)(nil)

func (r *AnalyticsRepository) CountEvents(ctx context.Context, f ports.CountFilter) (int64, error) {
	where, args := buildWindowClause(f.Start, f.End)
	if f.EventType != nil {
		args = append(args, string(*f.EventType))
		where = append(where, fmt.Sprintf("event_type = $%d", len(args)))
	}

	query := `SELECT COUNT(*) FROM events` + whereClause(where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var total int64
	if rows.Next() {
		if err := rows.Scan(&total); err != nil {
			return 0, err
		}
	}

	return total, rows.Err()
}

func (r *AnalyticsRepository) CountEventsByType(ctx context.Context, start, end *time.Time) (map[events.EventType]int64, error) {
	where, args := buildWindowClause(start, end)

	query := `
SELECT event_type, COUNT(*) AS total
FROM events` + whereClause(where) + `
GROUP BY event_type`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[events.EventType]int64)
	for rows.Next() {
		var eventType string
		var total int64

		if err := rows.Scan(&eventType, &total); err != nil {
			return nil, err
		}
		counts[events.EventType(eventType)] = total
	}

	return counts, rows.Err()
}

// buildWindowClause renders the closed [start, end] interval as
// conjunctive conditions. An absent bound matches everything.
func buildWindowClause(start, end *time.Time) ([]string, []any) {
	var where []string
	var args []any

	if start != nil {
		args = append(args, *start)
		where = append(where, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		where = append(where, fmt.Sprintf("timestamp <= $%d", len(args)))
	}

	return where, args
}

func whereClause(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	clause := "\nWHERE " + conditions[0]
	for _, cond := range conditions[1:] {
		clause += " AND " + cond
	}
	return clause
}
