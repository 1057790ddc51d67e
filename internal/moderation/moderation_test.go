package moderation

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

func TestDerivations(t *testing.T) {
	jobs := []models.JobPosting{
		{ID: "pending"},
		{ID: "live", Approved: true},
		{ID: "archived-pending", Archived: true},
		{ID: "archived-live", Approved: true, Archived: true},
	}

	pending := Pending(jobs)
	require.Len(t, pending, 1)
	assert.Equal(t, "pending", pending[0].ID)

	live := ApprovedLive(jobs)
	require.Len(t, live, 1)
	assert.Equal(t, "live", live[0].ID)
}

type fakeUpdater struct {
	updates map[string]map[string]any
}

func (f *fakeUpdater) Update(ctx context.Context, id string, fields map[string]any) error {
	if f.updates == nil {
		f.updates = make(map[string]map[string]any)
	}
	f.updates[id] = fields
	return nil
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

func newService(role models.Role) (*Service, *fakeUpdater) {
	jobs := &fakeUpdater{}
	profiles := &fakeProfiles{profiles: map[string]*models.UserProfile{
		"u1": {UID: "u1", Role: role},
	}}
	return NewService(jobs, profiles, zap.NewNop()), jobs
}

func TestApproveStampsApprovalTime(t *testing.T) {
	svc, jobs := newService(models.RoleAdmin)
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Approve(context.Background(), "u1", "job1", now))

	fields := jobs.updates["job1"]
	require.NotNil(t, fields)
	assert.Equal(t, true, fields["approved"])
	assert.Equal(t, now, fields["approved_at"])
}

func TestArchiveDeactivates(t *testing.T) {
	svc, jobs := newService(models.RoleAdmin)

	require.NoError(t, svc.Archive(context.Background(), "u1", "job1"))

	fields := jobs.updates["job1"]
	require.NotNil(t, fields)
	assert.Equal(t, true, fields["archived"])
	assert.Equal(t, false, fields["active"])
}

func TestNonAdminRejectedBeforeWrite(t *testing.T) {
	svc, jobs := newService(models.RoleEmployer)

	err := svc.Approve(context.Background(), "u1", "job1", time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
	assert.Empty(t, jobs.updates)
}

func TestAnonymousRejected(t *testing.T) {
	svc, jobs := newService(models.RoleAdmin)

	err := svc.Archive(context.Background(), "", "job1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	assert.Empty(t, jobs.updates)
}
