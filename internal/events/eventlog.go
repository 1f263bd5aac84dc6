package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"
)

// EventLog appends published events to the event_log table.
type EventLog struct {
	db     *sql.DB
	siteID string
	logger *slog.Logger
}

func NewEventLog(db *sql.DB, siteID string, logger *slog.Logger) *EventLog {
	if siteID == "" {
		siteID = "local"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EventLog{db: db, siteID: siteID, logger: logger}
}

func (l *EventLog) Append(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := ""
	if len(e.IDs) > 0 {
		key = e.IDs[0]
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		l.siteID, string(e.Kind), key, string(data), at.Unix())
	return err
}

// Handler adapts the log to a Bus subscriber. Append failures are logged.
func (l *EventLog) Handler() Handler {
	return func(e Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.Append(ctx, e); err != nil {
			l.logger.Warn("event log append failed", "kind", e.Kind, "err", err)
		}
	}
}

// Recent returns up to limit events, newest first.
func (l *EventLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT data FROM event_log ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Event{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e Event
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
