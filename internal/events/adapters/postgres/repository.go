package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/prashsamosa/web-analytics-service/internal/events/core/domain"
	"github.com/prashsamosa/web-analytics-service/internal/events/core/ports"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// SQL templates
const insertEventSQL = `
INSERT INTO events (
    event_id,
    user_id,
    event_type,
    timestamp,
    payload
) VALUES (
    $1, $2, $3, $4, $5
);
`

const uniqueViolationCode = "23505"

func (r *EventRepository) Insert(ctx context.Context, e *domain.Event) error {
	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.UserID,
		string(e.EventType),
		e.Timestamp,
		[]byte(e.Payload),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return ports.ErrDuplicateKey
		}
		return err
	}

	return nil
}

const getEventSQL = `
SELECT event_id, user_id, event_type, timestamp, payload
FROM events
WHERE event_id = $1;
`

func (r *EventRepository) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, getEventSQL, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ports.ErrNotFound
	}

	e, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}

	return e, rows.Err()
}

func (r *EventRepository) List(ctx context.Context, f ports.ListFilter) ([]domain.Event, error) {
	query := `
SELECT event_id, user_id, event_type, timestamp, payload
FROM events`

	var conditions []string
	var args []any

	if f.UserID != nil {
		args = append(args, *f.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.EventType != nil {
		args = append(args, string(*f.EventType))
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += "\nWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	// Stable ordering keeps paging deterministic over an unchanged store.
	args = append(args, f.Limit)
	query += fmt.Sprintf("\nORDER BY timestamp, event_id\nLIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}

	return events, rows.Err()
}

func scanEvent(rows RowScanner) (*domain.Event, error) {
	var (
		e         domain.Event
		eventType string
		timestamp time.Time
		payload   []byte
	)

	if err := rows.Scan(&e.EventID, &e.UserID, &eventType, &timestamp, &payload); err != nil {
		return nil, err
	}

	e.EventType = domain.EventType(eventType)
	e.Timestamp = timestamp.UTC()
	e.Payload = payload

	return &e, nil
}
