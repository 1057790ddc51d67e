package submit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
	"facultyjobs/internal/telemetry"
)

var tracer = telemetry.GetTracer("facultyjobs/submit")

// JobAdder writes a new posting and returns its assigned identifier.
type JobAdder interface {
	Add(ctx context.Context, j models.JobPosting) (string, error)
}

// ProfileGetter is a point read of an identity profile.
type ProfileGetter interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
}

type Service struct {
	jobs     JobAdder
	profiles ProfileGetter
	logger   *zap.Logger
}

func NewService(jobs JobAdder, profiles ProfileGetter, logger *zap.Logger) *Service {
	return &Service{
		jobs:     jobs,
		profiles: profiles,
		logger:   logger,
	}
}

// Result reports what happened to a successful submission.
type Result struct {
	JobID     string
	Published bool
}

// Submit validates the submitter's role, applies the auto-publish policy,
// and writes the new posting. Permission failures happen before any write.
func (s *Service) Submit(ctx context.Context, submitterUID string, d Draft, cfg models.AppConfig, now time.Time) (Result, error) {
	ctx, span := tracer.Start(ctx, "submit.Submit")
	defer span.End()

	if submitterUID == "" {
		return Result{}, apperr.Unauthenticated("login as employer to post")
	}

	profile, err := s.profiles.Get(ctx, submitterUID)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	if !profile.Role.CanPostJobs() {
		return Result{}, apperr.Permission("only employers and admins can post jobs")
	}

	autoPublish := cfg.AutoPublish(profile.TrustLevel)
	span.SetAttributes(
		telemetry.String("submitter.role", string(profile.Role)),
		telemetry.Bool("auto_publish", autoPublish),
	)

	posting := d.Posting()
	posting.Approved = autoPublish
	if autoPublish {
		approvedAt := now
		posting.ApprovedAt = &approvedAt
	}
	posting.CreatedBy = submitterUID
	posting.Active = true
	posting.Archived = false
	posting.CreatedAt = now

	id, err := s.jobs.Add(ctx, posting)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	s.logger.Info("job submitted",
		zap.String("id", id),
		zap.String("created_by", submitterUID),
		zap.Bool("published", autoPublish))
	return Result{JobID: id, Published: autoPublish}, nil
}
