// Package store is the boundary to the document-store collaborator: the
// jobs collection with a live change feed, identity profiles, and the
// first-activation seed posting.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
	"facultyjobs/internal/telemetry"
)

var tracer = telemetry.GetTracer("facultyjobs/store")

// SubjectJobsChanged carries change notifications for the jobs collection.
const SubjectJobsChanged = "jobs.changed"

// ChangeEvent is the payload published after every mutation. Consumers
// re-read the collection rather than patching from the event.
type ChangeEvent struct {
	JobID     string    `json:"job_id"`
	Op        string    `json:"op"`
	ChangedAt time.Time `json:"changed_at"`
}

// updatableColumns whitelists the fields a partial-merge update may touch.
var updatableColumns = map[string]bool{
	"title":            true,
	"institution":      true,
	"location":         true,
	"description":      true,
	"application_link": true,
	"deadline":         true,
	"approved":         true,
	"approved_at":      true,
	"active":           true,
	"archived":         true,
}

type Jobs struct {
	pool   *pgxpool.Pool
	nc     *nats.Conn
	logger *zap.Logger
}

func NewJobs(pool *pgxpool.Pool, nc *nats.Conn, logger *zap.Logger) *Jobs {
	return &Jobs{
		pool:   pool,
		nc:     nc,
		logger: logger,
	}
}

// EnsureSchema creates the jobs table when absent.
func (s *Jobs) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS jobs (
			id               TEXT PRIMARY KEY,
			title            TEXT NOT NULL,
			institution      TEXT NOT NULL DEFAULT '',
			location         TEXT NOT NULL DEFAULT '',
			departments      TEXT[] NOT NULL DEFAULT '{}',
			levels           TEXT[] NOT NULL DEFAULT '{}',
			description      TEXT NOT NULL DEFAULT '',
			application_link TEXT NOT NULL DEFAULT '',
			deadline         TIMESTAMPTZ,
			approved         BOOLEAN NOT NULL DEFAULT FALSE,
			approved_at      TIMESTAMPTZ,
			created_by       TEXT NOT NULL,
			active           BOOLEAN NOT NULL DEFAULT TRUE,
			archived         BOOLEAN NOT NULL DEFAULT FALSE,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return apperr.Internal("creating jobs schema", err)
	}
	return nil
}

const jobColumns = `id, title, institution, location, departments, levels,
	description, application_link, deadline, approved, approved_at,
	created_by, active, archived, created_at`

// List returns the whole collection ordered by approval timestamp
// descending, unapproved postings last by creation time.
func (s *Jobs) List(ctx context.Context) ([]models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "store.ListJobs")
	defer span.End()

	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT %s FROM jobs ORDER BY approved_at DESC NULLS LAST, created_at DESC`, jobColumns))
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("listing jobs", err)
	}
	defer rows.Close()

	var jobs []models.JobPosting
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			span.RecordError(err)
			return nil, apperr.Internal("scanning job row", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("listing jobs", err)
	}

	span.SetAttributes(telemetry.Int("jobs.count", len(jobs)))
	return jobs, nil
}

// Get is a point read by identifier.
func (s *Jobs) Get(ctx context.Context, id string) (models.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "store.GetJob")
	defer span.End()

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns), id)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.JobPosting{}, apperr.NotFound("job not found", nil)
	}
	if err != nil {
		span.RecordError(err)
		return models.JobPosting{}, apperr.Unavailable("reading job", err)
	}
	return j, nil
}

// Add writes a new posting, assigns its identifier, and publishes a change
// notification. The passed posting's ID field is ignored.
func (s *Jobs) Add(ctx context.Context, j models.JobPosting) (string, error) {
	ctx, span := tracer.Start(ctx, "store.AddJob")
	defer span.End()

	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, institution, location, departments, levels,
			description, application_link, deadline, approved, approved_at,
			created_by, active, archived, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		id, j.Title, j.Institution, j.Location, j.Departments, j.Levels,
		j.Description, j.ApplicationLink, j.Deadline, j.Approved, j.ApprovedAt,
		j.CreatedBy, j.Active, j.Archived, j.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		return "", apperr.Unavailable("adding job", err)
	}

	s.notifyChanged(ctx, id, "add")
	s.logger.Info("job added",
		zap.String("id", id),
		zap.String("title", j.Title),
		zap.Bool("approved", j.Approved))
	return id, nil
}

// Update merges the given fields into an existing posting and publishes a
// change notification. Field names follow the document's attribute names;
// unknown fields are rejected.
func (s *Jobs) Update(ctx context.Context, id string, fields map[string]any) error {
	ctx, span := tracer.Start(ctx, "store.UpdateJob")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", id))

	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	args = append(args, id)
	for col, val := range fields {
		if !updatableColumns[col] {
			return apperr.Invalid(fmt.Sprintf("field %q is not updatable", col), nil)
		}
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $1`, strings.Join(sets, ", ")),
		args...,
	)
	if err != nil {
		span.RecordError(err)
		return apperr.Unavailable("updating job", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("job not found", nil)
	}

	s.notifyChanged(ctx, id, "update")
	return nil
}

// notifyChanged is best effort: the write already committed, so a feed
// failure is logged and swallowed. Subscribers catch up on the next event.
func (s *Jobs) notifyChanged(ctx context.Context, id, op string) {
	_, span := tracer.Start(ctx, "store.notifyChanged")
	defer span.End()

	data, err := json.Marshal(ChangeEvent{JobID: id, Op: op, ChangedAt: time.Now()})
	if err != nil {
		s.logger.Error("failed to marshal change event", zap.Error(err))
		return
	}
	if err := s.nc.Publish(SubjectJobsChanged, data); err != nil {
		span.RecordError(err)
		s.logger.Warn("failed to publish change event",
			zap.String("id", id),
			zap.Error(err))
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (models.JobPosting, error) {
	var j models.JobPosting
	err := row.Scan(
		&j.ID, &j.Title, &j.Institution, &j.Location, &j.Departments, &j.Levels,
		&j.Description, &j.ApplicationLink, &j.Deadline, &j.Approved, &j.ApprovedAt,
		&j.CreatedBy, &j.Active, &j.Archived, &j.CreatedAt,
	)
	return j, err
}
