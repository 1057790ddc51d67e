package submit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
)

func TestWizardTransitions(t *testing.T) {
	tests := []struct {
		name string
		walk func(w *Wizard) Step
		want Step
	}{
		{"starts at details", func(w *Wizard) Step { return w.Step() }, StepDetails},
		{"next to preview", func(w *Wizard) Step { return w.Next() }, StepPreview},
		{"next twice to confirm", func(w *Wizard) Step { w.Next(); return w.Next() }, StepConfirm},
		{"next clamps at confirm", func(w *Wizard) Step { w.Next(); w.Next(); return w.Next() }, StepConfirm},
		{"prev clamps at details", func(w *Wizard) Step { return w.Prev() }, StepDetails},
		{"prev from confirm", func(w *Wizard) Step { w.Next(); w.Next(); return w.Prev() }, StepPreview},
		{"reset returns to details", func(w *Wizard) Step { w.Next(); w.Reset(); return w.Step() }, StepDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.walk(NewWizard()))
		})
	}
}

func TestResetClearsDraft(t *testing.T) {
	w := NewWizard()
	w.SetDraft(Draft{Title: "Lecturer"})
	w.Next()
	w.Reset()
	assert.Equal(t, Draft{}, w.Draft())
}

func TestDraftPostingJoinsLocation(t *testing.T) {
	d := Draft{Title: "  Lecturer ", City: "Patna", State: "Bihar", Country: "India"}
	j := d.Posting()
	assert.Equal(t, "Lecturer", j.Title)
	assert.Equal(t, "Patna, Bihar, India", j.Location)
}

type fakeJobs struct {
	added []models.JobPosting
}

func (f *fakeJobs) Add(ctx context.Context, j models.JobPosting) (string, error) {
	f.added = append(f.added, j)
	return "job-1", nil
}

type fakeProfiles struct {
	profiles map[string]*models.UserProfile
}

func (f *fakeProfiles) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	p, ok := f.profiles[uid]
	if !ok {
		return nil, apperr.NotFound("profile not found", nil)
	}
	return p, nil
}

func newService(profiles map[string]*models.UserProfile) (*Service, *fakeJobs) {
	jobs := &fakeJobs{}
	return NewService(jobs, &fakeProfiles{profiles: profiles}, zap.NewNop()), jobs
}

var submitNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func employer(trust int) map[string]*models.UserProfile {
	return map[string]*models.UserProfile{
		"emp": {UID: "emp", Role: models.RoleEmployer, TrustLevel: trust},
	}
}

func autoPublishConfig(minLevel int) models.AppConfig {
	return models.AppConfig{
		Policy:                  models.PolicyAutoPublishTrusted,
		TrustedEmployerMinLevel: minLevel,
	}
}

func TestSubmitTrustedEmployerAutoPublishes(t *testing.T) {
	svc, jobs := newService(employer(3))

	res, err := svc.Submit(context.Background(), "emp", Draft{Title: "Lecturer"}, autoPublishConfig(2), submitNow)
	require.NoError(t, err)
	assert.True(t, res.Published)

	require.Len(t, jobs.added, 1)
	j := jobs.added[0]
	assert.True(t, j.Approved)
	require.NotNil(t, j.ApprovedAt)
	assert.Equal(t, submitNow, *j.ApprovedAt)
	assert.Equal(t, "emp", j.CreatedBy)
	assert.True(t, j.Active)
	assert.False(t, j.Archived)
	assert.Equal(t, submitNow, j.CreatedAt)
}

func TestSubmitUntrustedEmployerHeldForReview(t *testing.T) {
	svc, jobs := newService(employer(1))

	res, err := svc.Submit(context.Background(), "emp", Draft{Title: "Lecturer"}, autoPublishConfig(2), submitNow)
	require.NoError(t, err)
	assert.False(t, res.Published)

	require.Len(t, jobs.added, 1)
	assert.False(t, jobs.added[0].Approved)
	assert.Nil(t, jobs.added[0].ApprovedAt)
}

func TestSubmitAdminApprovalPolicyNeverAutoPublishes(t *testing.T) {
	svc, jobs := newService(employer(10))

	cfg := models.AppConfig{Policy: models.PolicyAdminApproval, TrustedEmployerMinLevel: 2}
	res, err := svc.Submit(context.Background(), "emp", Draft{Title: "Lecturer"}, cfg, submitNow)
	require.NoError(t, err)
	assert.False(t, res.Published)
	assert.False(t, jobs.added[0].Approved)
}

func TestSubmitRejectsCandidates(t *testing.T) {
	svc, jobs := newService(map[string]*models.UserProfile{
		"cand": {UID: "cand", Role: models.RoleCandidate},
	})

	_, err := svc.Submit(context.Background(), "cand", Draft{Title: "Lecturer"}, autoPublishConfig(2), submitNow)
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
	assert.Empty(t, jobs.added)
}

func TestSubmitRequiresIdentity(t *testing.T) {
	svc, jobs := newService(nil)

	_, err := svc.Submit(context.Background(), "", Draft{}, autoPublishConfig(2), submitNow)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.Empty(t, jobs.added)
}
