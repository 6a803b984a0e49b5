package postgres

import "context"

// Schema for the single events table. The two compound indexes back the
// aggregation access patterns: counts by (type, time) and per-user paging.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS events (
    event_id   TEXT PRIMARY KEY,
    user_id    TEXT NOT NULL,
    event_type TEXT NOT NULL CHECK (event_type IN ('view', 'click', 'location')),
    timestamp  TIMESTAMPTZ NOT NULL,
    payload    JSONB NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_events_type_time ON events (event_type, timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user_time ON events (user_id, timestamp)`,
}

// EnsureSchema creates the events table and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
