// Package moderation implements the admin view's derivations and actions.
// The admin gate re-fetches the profile on every call rather than trusting
// the cached session copy.
package moderation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
	"facultyjobs/internal/telemetry"
)

var tracer = telemetry.GetTracer("facultyjobs/moderation")

// Pending returns postings awaiting review: not approved, not archived.
func Pending(jobs []models.JobPosting) []models.JobPosting {
	var out []models.JobPosting
	for _, j := range jobs {
		if !j.Approved && !j.Archived {
			out = append(out, j)
		}
	}
	return out
}

// ApprovedLive returns postings that are approved and not archived.
func ApprovedLive(jobs []models.JobPosting) []models.JobPosting {
	var out []models.JobPosting
	for _, j := range jobs {
		if j.Approved && !j.Archived {
			out = append(out, j)
		}
	}
	return out
}

// JobUpdater merges fields into an existing posting.
type JobUpdater interface {
	Update(ctx context.Context, id string, fields map[string]any) error
}

// ProfileGetter is a point read of an identity profile.
type ProfileGetter interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
}

type Service struct {
	jobs     JobUpdater
	profiles ProfileGetter
	logger   *zap.Logger
}

func NewService(jobs JobUpdater, profiles ProfileGetter, logger *zap.Logger) *Service {
	return &Service{
		jobs:     jobs,
		profiles: profiles,
		logger:   logger,
	}
}

// Gate verifies the identity currently holds the admin role.
func (s *Service) Gate(ctx context.Context, uid string) error {
	if uid == "" {
		return apperr.Unauthenticated("login required")
	}
	profile, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return err
	}
	if profile.Role != models.RoleAdmin {
		return apperr.Permission("admin role required")
	}
	return nil
}

// Approve marks the posting approved and stamps the approval time.
func (s *Service) Approve(ctx context.Context, uid, jobID string, now time.Time) error {
	ctx, span := tracer.Start(ctx, "moderation.Approve")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", jobID))

	if err := s.Gate(ctx, uid); err != nil {
		return err
	}

	err := s.jobs.Update(ctx, jobID, map[string]any{
		"approved":    true,
		"approved_at": now,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info("job approved",
		zap.String("id", jobID),
		zap.String("by", uid))
	return nil
}

// Archive marks the posting archived and inactive.
func (s *Service) Archive(ctx context.Context, uid, jobID string) error {
	ctx, span := tracer.Start(ctx, "moderation.Archive")
	defer span.End()
	span.SetAttributes(telemetry.String("job.id", jobID))

	if err := s.Gate(ctx, uid); err != nil {
		return err
	}

	err := s.jobs.Update(ctx, jobID, map[string]any{
		"archived": true,
		"active":   false,
	})
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info("job archived",
		zap.String("id", jobID),
		zap.String("by", uid))
	return nil
}
