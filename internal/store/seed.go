package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"facultyjobs/internal/models"
)

// SeedIfEmpty creates one example approved posting when the collection is
// empty, so a fresh deployment shows something immediately. Check-then-create
// without a transactional guard: two concurrent first activations can
// double-seed. Known limitation, accepted.
func (s *Jobs) SeedIfEmpty(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "store.SeedIfEmpty")
	defer span.End()

	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&count); err != nil {
		span.RecordError(err)
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	deadline := time.Date(2025, 9, 25, 0, 0, 0, 0, time.UTC)
	seed := models.JobPosting{
		Title:           "Assistant Professor – Mathematics",
		Institution:     "IIT Patna",
		Location:        "Patna, Bihar, India",
		Departments:     []string{"Mathematics", "Statistics"},
		Levels:          []string{"Assistant Professor"},
		Description:     "Teach UG/PG, guide projects, contribute to research in control theory. We are looking for candidates with strong background in mathematics and statistics.",
		ApplicationLink: "https://example.com/apply",
		Deadline:        &deadline,
		Approved:        true,
		ApprovedAt:      &now,
		CreatedBy:       "seed",
		Active:          true,
		Archived:        false,
		CreatedAt:       now,
	}

	id, err := s.Add(ctx, seed)
	if err != nil {
		return err
	}
	s.logger.Info("seeded empty jobs collection", zap.String("id", id))
	return nil
}
