// Package analytics is a best-effort append-only event log. Recording must
// never block or fail a user action: errors are logged and swallowed, and
// when no backend is configured the sink is a no-op.
package analytics

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventType string

const (
	EventJobViewed       EventType = "job_viewed"
	EventSearchPerformed EventType = "search_performed"
	EventJobSubmitted    EventType = "job_submitted"
	EventJobApproved     EventType = "job_approved"
	EventJobArchived     EventType = "job_archived"
	EventSaveToggled     EventType = "save_toggled"
)

type Event struct {
	Type       EventType
	UserID     string
	JobID      string
	Detail     string
	OccurredAt time.Time
}

type Sink interface {
	Record(ctx context.Context, e Event)
}

// NopSink is used when ClickHouse is not configured; analytics is optional.
type NopSink struct{}

func (NopSink) Record(ctx context.Context, e Event) {}

type ClickHouseSink struct {
	conn   clickhouse.Conn
	logger *zap.Logger
}

func NewClickHouseSink(conn clickhouse.Conn, logger *zap.Logger) *ClickHouseSink {
	return &ClickHouseSink{
		conn:   conn,
		logger: logger,
	}
}

// EnsureSchema creates the events table when absent.
func (s *ClickHouseSink) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS app_events (
			id          String,
			event_type  String,
			user_id     String,
			job_id      String,
			detail      String,
			occurred_at DateTime
		) ENGINE = MergeTree()
		ORDER BY (occurred_at, event_type)
	`
	return s.conn.Exec(ctx, ddl)
}

func (s *ClickHouseSink) Record(ctx context.Context, e Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	err := s.conn.Exec(ctx,
		`INSERT INTO app_events (id, event_type, user_id, job_id, detail, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		string(e.Type),
		e.UserID,
		e.JobID,
		e.Detail,
		e.OccurredAt,
	)
	if err != nil {
		s.logger.Warn("failed to record analytics event",
			zap.String("event_type", string(e.Type)),
			zap.Error(err))
	}
}
