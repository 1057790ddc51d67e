package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"facultyjobs/internal/analytics"
	"facultyjobs/internal/apperr"
	"facultyjobs/internal/cache"
	"facultyjobs/internal/engine"
	"facultyjobs/internal/identity"
	"facultyjobs/internal/models"
	"facultyjobs/internal/moderation"
	"facultyjobs/internal/savedjobs"
	"facultyjobs/internal/session"
	"facultyjobs/internal/submit"
	"facultyjobs/internal/view"
)

var testNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

type fakePresenter struct {
	listings []view.Listing
	admins   []view.Admin
	details  []view.Detail
	previews []view.Card
	notices  []view.Notice
}

func (f *fakePresenter) RenderListing(l view.Listing) { f.listings = append(f.listings, l) }
func (f *fakePresenter) RenderAdmin(a view.Admin)     { f.admins = append(f.admins, a) }
func (f *fakePresenter) RenderDetail(d view.Detail)   { f.details = append(f.details, d) }
func (f *fakePresenter) RenderPreview(c view.Card)    { f.previews = append(f.previews, c) }
func (f *fakePresenter) Notify(n view.Notice)         { f.notices = append(f.notices, n) }

func (f *fakePresenter) lastListing() view.Listing {
	return f.listings[len(f.listings)-1]
}

type fakeProvider struct {
	identity.Provider
	listener func(*identity.Identity)
}

func (f *fakeProvider) Subscribe(fn func(*identity.Identity)) func() {
	f.listener = fn
	return func() {}
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

func (f *fakeProfiles) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	var out []models.UserProfile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

type fakeJobStore struct {
	added   []models.JobPosting
	updates map[string]map[string]any
}

func (f *fakeJobStore) Add(ctx context.Context, j models.JobPosting) (string, error) {
	f.added = append(f.added, j)
	return "job-new", nil
}

func (f *fakeJobStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if f.updates == nil {
		f.updates = make(map[string]map[string]any)
	}
	f.updates[id] = fields
	return nil
}

type fakeSavedStore struct {
	saved map[string][]string
}

func (f *fakeSavedStore) List(ctx context.Context, uid string) ([]string, error) {
	return f.saved[uid], nil
}

func (f *fakeSavedStore) Add(ctx context.Context, uid, jobID string, at time.Time) error {
	if f.saved == nil {
		f.saved = make(map[string][]string)
	}
	f.saved[uid] = append(f.saved[uid], jobID)
	return nil
}

func (f *fakeSavedStore) Remove(ctx context.Context, uid, jobID string) error { return nil }
func (f *fakeSavedStore) Close() error                                        { return nil }

type recordingSink struct {
	events []analytics.Event
}

func (r *recordingSink) Record(ctx context.Context, e analytics.Event) {
	r.events = append(r.events, e)
}

type fixture struct {
	ctrl      *Controller
	presenter *fakePresenter
	provider  *fakeProvider
	jobs      *fakeJobStore
	sink      *recordingSink
}

func newFixture(profiles map[string]*models.UserProfile) *fixture {
	logger := zap.NewNop()
	presenter := &fakePresenter{}
	provider := &fakeProvider{}
	jobs := &fakeJobStore{}
	sink := &recordingSink{}
	dir := &fakeProfiles{profiles: profiles}

	state := NewState(
		session.NewStore(),
		cache.NewJobCache(),
		engine.NewFilterState(),
		savedjobs.NewManager(&fakeSavedStore{}, logger),
		models.AppConfig{Policy: models.PolicyAdminApproval, TrustedEmployerMinLevel: 2},
	)

	ctrl := NewController(
		state,
		provider,
		dir,
		submit.NewService(jobs, dir, logger),
		moderation.NewService(jobs, dir, logger),
		sink,
		presenter,
		logger,
	)
	ctrl.now = func() time.Time { return testNow }
	return &fixture{ctrl: ctrl, presenter: presenter, provider: provider, jobs: jobs, sink: sink}
}

func approvedJob(id string) models.JobPosting {
	at := testNow.Add(-time.Hour)
	return models.JobPosting{
		ID:         id,
		Title:      "Assistant Professor",
		Approved:   true,
		ApprovedAt: &at,
		Active:     true,
		CreatedAt:  at,
	}
}

func TestSnapshotTriggersRender(t *testing.T) {
	f := newFixture(nil)

	f.ctrl.OnSnapshot([]models.JobPosting{approvedJob("a"), {ID: "b", Active: true}})

	require.Len(t, f.presenter.listings, 1)
	l := f.presenter.lastListing()
	require.Len(t, l.Open, 1)
	assert.Equal(t, "a", l.Open[0].ID)
	assert.Empty(t, f.presenter.admins, "no admin view when signed out")
}

func TestSearchFiltersWithoutNetwork(t *testing.T) {
	f := newFixture(nil)
	a := approvedJob("a")
	b := approvedJob("b")
	b.Title = "Research Scientist"
	f.ctrl.OnSnapshot([]models.JobPosting{a, b})

	f.ctrl.SetSearch("Research")

	l := f.presenter.lastListing()
	require.Len(t, l.Open, 1)
	assert.Equal(t, "b", l.Open[0].ID)
	assert.Equal(t, "research", l.SearchQuery)

	require.Len(t, f.sink.events, 1)
	assert.Equal(t, analytics.EventSearchPerformed, f.sink.events[0].Type)

	f.ctrl.ClearFilters()
	assert.Len(t, f.presenter.lastListing().Open, 2)
}

func TestAdminSignInRendersAdminView(t *testing.T) {
	f := newFixture(map[string]*models.UserProfile{
		"admin": {UID: "admin", Role: models.RoleAdmin, TrustLevel: 5},
	})
	f.ctrl.OnSnapshot([]models.JobPosting{approvedJob("a"), {ID: "pending", Active: true}})

	// simulate the auth-state stream firing after sign-in
	f.ctrl.onAuthChange(&identity.Identity{UID: "admin"})

	require.NotEmpty(t, f.presenter.admins)
	admin := f.presenter.admins[len(f.presenter.admins)-1]
	require.Len(t, admin.Pending, 1)
	assert.Equal(t, "pending", admin.Pending[0].ID)
	require.Len(t, admin.Approved, 1)
	assert.Equal(t, "a", admin.Approved[0].ID)
}

func TestSignOutClearsSavedSet(t *testing.T) {
	f := newFixture(map[string]*models.UserProfile{
		"u1": {UID: "u1", Role: models.RoleCandidate},
	})
	f.ctrl.OnSnapshot([]models.JobPosting{approvedJob("a")})
	f.ctrl.onAuthChange(&identity.Identity{UID: "u1"})
	f.ctrl.ToggleSave(context.Background(), "a")
	require.True(t, f.presenter.lastListing().Open[0].Saved)

	f.ctrl.onAuthChange(nil)
	assert.False(t, f.presenter.lastListing().Open[0].Saved)
}

func TestToggleSaveSignedOutNotifiesError(t *testing.T) {
	f := newFixture(nil)
	f.ctrl.OnSnapshot([]models.JobPosting{approvedJob("a")})

	f.ctrl.ToggleSave(context.Background(), "a")

	require.NotEmpty(t, f.presenter.notices)
	last := f.presenter.notices[len(f.presenter.notices)-1]
	assert.Equal(t, view.NoticeError, last.Level)
	assert.Empty(t, f.sink.events)
}

func TestWizardPreviewUsesCardBuilder(t *testing.T) {
	f := newFixture(nil)
	f.ctrl.SetDraft(submit.Draft{Title: "Lecturer", Institution: "IIT Patna", City: "Patna", State: "Bihar", Country: "India"})

	f.ctrl.NextStep()

	require.Len(t, f.presenter.previews, 1)
	assert.Equal(t, "Lecturer", f.presenter.previews[0].Title)
	assert.Equal(t, "IIT Patna • Patna, Bihar, India", f.presenter.previews[0].InstitutionLine)
	assert.Equal(t, submit.StepPreview, f.ctrl.WizardStep())
}

func TestSubmitJobResetsWizardAndNotifies(t *testing.T) {
	f := newFixture(map[string]*models.UserProfile{
		"emp": {UID: "emp", Role: models.RoleEmployer, TrustLevel: 3},
	})
	f.ctrl.onAuthChange(&identity.Identity{UID: "emp"})
	f.ctrl.SetDraft(submit.Draft{Title: "Lecturer"})
	f.ctrl.NextStep()
	f.ctrl.NextStep()

	f.ctrl.SubmitJob(context.Background())

	require.Len(t, f.jobs.added, 1)
	assert.False(t, f.jobs.added[0].Approved, "admin-approval policy holds submissions")
	assert.Equal(t, submit.StepDetails, f.ctrl.WizardStep())

	last := f.presenter.notices[len(f.presenter.notices)-1]
	assert.Equal(t, "Job submitted for review", last.Message)
}

func TestApproveRecordsAnalyticsEvent(t *testing.T) {
	f := newFixture(map[string]*models.UserProfile{
		"admin": {UID: "admin", Role: models.RoleAdmin, TrustLevel: 5},
	})
	f.ctrl.onAuthChange(&identity.Identity{UID: "admin"})

	f.ctrl.Approve(context.Background(), "job1")

	fields := f.jobs.updates["job1"]
	require.NotNil(t, fields)
	assert.Equal(t, true, fields["approved"])
	assert.Equal(t, testNow, fields["approved_at"])

	var kinds []analytics.EventType
	for _, e := range f.sink.events {
		kinds = append(kinds, e.Type)
	}
	assert.Contains(t, kinds, analytics.EventJobApproved)
}

func TestShowJobDetails(t *testing.T) {
	f := newFixture(nil)
	j := approvedJob("a")
	j.Description = "Full description, not truncated in the detail view."
	f.ctrl.OnSnapshot([]models.JobPosting{j})

	f.ctrl.ShowJobDetails("a")

	require.Len(t, f.presenter.details, 1)
	assert.Equal(t, j.Description, f.presenter.details[0].Description)

	f.ctrl.ShowJobDetails("missing")
	assert.Len(t, f.presenter.details, 1)
}

func TestSaveConfigIsClientLocal(t *testing.T) {
	f := newFixture(nil)

	f.ctrl.SaveConfig(models.PolicyAutoPublishTrusted, 3)

	cfg := f.ctrl.state.Config()
	assert.Equal(t, models.PolicyAutoPublishTrusted, cfg.Policy)
	assert.Equal(t, 3, cfg.TrustedEmployerMinLevel)
}
