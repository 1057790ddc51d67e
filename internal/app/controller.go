// Package app wires the application together: the controller reacts to
// collection snapshots, auth-state changes, and user actions, re-derives the
// buckets through the engine, and hands view models to the presenter.
//
// Every collaborator failure is caught here, logged, and converted into a
// transient notification; no error path is fatal and each returns control to
// the view the user was on.
package app

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"facultyjobs/internal/analytics"
	"facultyjobs/internal/apperr"
	"facultyjobs/internal/engine"
	"facultyjobs/internal/identity"
	"facultyjobs/internal/models"
	"facultyjobs/internal/moderation"
	"facultyjobs/internal/submit"
	"facultyjobs/internal/view"
)

// Presenter renders view models. view/term provides the terminal
// implementation.
type Presenter interface {
	RenderListing(view.Listing)
	RenderAdmin(view.Admin)
	RenderDetail(view.Detail)
	RenderPreview(view.Card)
	Notify(view.Notice)
}

// ProfileDirectory reads identity profiles from the document store.
type ProfileDirectory interface {
	Get(ctx context.Context, uid string) (*models.UserProfile, error)
	ListAll(ctx context.Context) ([]models.UserProfile, error)
}

type Controller struct {
	state     *State
	provider  identity.Provider
	profiles  ProfileDirectory
	submitter *submit.Service
	moderator *moderation.Service
	wizard    *submit.Wizard
	sink      analytics.Sink
	presenter Presenter
	logger    *zap.Logger

	now  func() time.Time
	stop chan struct{}
}

func NewController(
	state *State,
	provider identity.Provider,
	profiles ProfileDirectory,
	submitter *submit.Service,
	moderator *moderation.Service,
	sink analytics.Sink,
	presenter Presenter,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		state:     state,
		provider:  provider,
		profiles:  profiles,
		submitter: submitter,
		moderator: moderator,
		wizard:    submit.NewWizard(),
		sink:      sink,
		presenter: presenter,
		logger:    logger,
		now:       time.Now,
		stop:      make(chan struct{}),
	}
}

// Register hooks the controller into the process lifecycle: the auth-state
// subscription and a periodic re-render so time-derived buckets stay
// current as deadlines pass.
func (c *Controller) Register(lc fx.Lifecycle, refreshInterval time.Duration) {
	var cancelAuth func()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			cancelAuth = c.provider.Subscribe(c.onAuthChange)

			go func() {
				ticker := time.NewTicker(refreshInterval)
				defer ticker.Stop()
				for {
					select {
					case <-c.stop:
						return
					case <-ticker.C:
						c.Render()
					}
				}
			}()

			c.logger.Info("controller started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(c.stop)
			if cancelAuth != nil {
				cancelAuth()
			}
			return nil
		},
	})
}

// OnSnapshot receives each live snapshot of the jobs collection.
func (c *Controller) OnSnapshot(jobs []models.JobPosting) {
	c.state.Cache.Replace(jobs)
	c.Render()
}

func (c *Controller) onAuthChange(ident *identity.Identity) {
	ctx := context.Background()

	if ident == nil {
		c.state.Session.Clear()
		c.state.Saved.Clear()
		c.Render()
		return
	}

	profile, err := c.profiles.Get(ctx, ident.UID)
	if err != nil {
		c.logger.Warn("failed to load profile on sign-in",
			zap.String("uid", ident.UID),
			zap.Error(err))
		profile = nil
	}
	c.state.Session.Set(ident, profile)
	c.state.Saved.Load(ctx, ident.UID)
	c.Render()
}

// Render recomputes the buckets from the current state and hands the
// listing (and, for admins, the moderation view) to the presenter. The
// admin gate re-fetches the profile every time.
func (c *Controller) Render() {
	jobs := c.state.Cache.Snapshot()
	filters := c.state.Filters.Snapshot()
	buckets := engine.Bucketize(jobs, filters, c.now())

	listing := view.BuildListing(buckets, filters, c.state.Saved.IsSaved, c.state.Session.Role())
	c.presenter.RenderListing(listing)

	uid := c.state.Session.UID()
	if uid == "" {
		return
	}
	ctx := context.Background()
	if err := c.moderator.Gate(ctx, uid); err != nil {
		return
	}

	users, err := c.profiles.ListAll(ctx)
	if err != nil {
		c.logger.Warn("failed to list users for admin view", zap.Error(err))
	}
	admin := view.BuildAdmin(
		moderation.Pending(jobs),
		moderation.ApprovedLive(jobs),
		users,
		c.state.Config(),
	)
	c.presenter.RenderAdmin(admin)
}

// ---- auth actions ----

func (c *Controller) SignIn(ctx context.Context, email, password string) {
	if _, err := c.provider.SignIn(ctx, email, password); err != nil {
		c.notifyError(err)
		return
	}
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Login successful!"})
}

func (c *Controller) RegisterAccount(ctx context.Context, params identity.RegisterParams) {
	if _, err := c.provider.Register(ctx, params); err != nil {
		c.notifyError(err)
		return
	}
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Registration successful!"})
}

func (c *Controller) ForgotPassword(ctx context.Context, email string) {
	if err := c.provider.SendPasswordReset(ctx, email); err != nil {
		c.notifyError(err)
		return
	}
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Password reset link sent"})
}

func (c *Controller) SignOut(ctx context.Context) {
	if err := c.provider.SignOut(ctx); err != nil {
		c.notifyError(err)
		return
	}
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Logged out successfully"})
}

// ---- filter actions (no network round-trip) ----

func (c *Controller) SetSearch(query string) {
	c.state.Filters.SetSearch(query)
	if query != "" {
		c.sink.Record(context.Background(), analytics.Event{
			Type:   analytics.EventSearchPerformed,
			UserID: c.state.Session.UID(),
			Detail: query,
		})
	}
	c.Render()
}

func (c *Controller) ToggleDepartment(dept string) {
	c.state.Filters.ToggleDepartment(dept)
	c.Render()
}

func (c *Controller) ToggleLevel(level string) {
	c.state.Filters.ToggleLevel(level)
	c.Render()
}

func (c *Controller) ClearFilters() {
	c.state.Filters.Clear()
	c.Render()
}

// ---- saved jobs ----

func (c *Controller) ToggleSave(ctx context.Context, jobID string) {
	uid := c.state.Session.UID()
	saved, err := c.state.Saved.Toggle(ctx, uid, jobID)
	if err != nil {
		c.notifyError(err)
		return
	}

	detail := "removed"
	if saved {
		detail = "saved"
	}
	c.sink.Record(ctx, analytics.Event{
		Type:   analytics.EventSaveToggled,
		UserID: uid,
		JobID:  jobID,
		Detail: detail,
	})
	c.Render()
}

// ---- submission wizard ----

func (c *Controller) SetDraft(d submit.Draft) {
	c.wizard.SetDraft(d)
}

func (c *Controller) WizardStep() submit.Step {
	return c.wizard.Step()
}

// NextStep advances the wizard; entering the preview step renders the draft
// through the same card builder real postings use.
func (c *Controller) NextStep() {
	if c.wizard.Next() == submit.StepPreview {
		c.presenter.RenderPreview(view.NewCard(c.wizard.Draft().Posting(), false))
	}
}

func (c *Controller) PrevStep() {
	c.wizard.Prev()
}

func (c *Controller) SubmitJob(ctx context.Context) {
	uid := c.state.Session.UID()
	res, err := c.submitter.Submit(ctx, uid, c.wizard.Draft(), c.state.Config(), c.now())
	if err != nil {
		c.notifyError(err)
		return
	}

	c.sink.Record(ctx, analytics.Event{
		Type:   analytics.EventJobSubmitted,
		UserID: uid,
		JobID:  res.JobID,
	})

	message := "Job submitted for review"
	if res.Published {
		message = "Job published!"
	}
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: message})
	c.wizard.Reset()
}

// ---- moderation ----

func (c *Controller) Approve(ctx context.Context, jobID string) {
	uid := c.state.Session.UID()
	if err := c.moderator.Approve(ctx, uid, jobID, c.now()); err != nil {
		c.notifyError(err)
		return
	}
	c.sink.Record(ctx, analytics.Event{Type: analytics.EventJobApproved, UserID: uid, JobID: jobID})
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Job approved"})
}

func (c *Controller) Archive(ctx context.Context, jobID string) {
	uid := c.state.Session.UID()
	if err := c.moderator.Archive(ctx, uid, jobID); err != nil {
		c.notifyError(err)
		return
	}
	c.sink.Record(ctx, analytics.Event{Type: analytics.EventJobArchived, UserID: uid, JobID: jobID})
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Job archived"})
}

// ---- detail / config ----

func (c *Controller) ShowJobDetails(jobID string) {
	j, ok := c.state.Cache.Get(jobID)
	if !ok {
		return
	}
	c.presenter.RenderDetail(view.NewDetail(j, c.state.Saved.IsSaved(jobID)))
	c.sink.Record(context.Background(), analytics.Event{
		Type:   analytics.EventJobViewed,
		UserID: c.state.Session.UID(),
		JobID:  jobID,
	})
}

func (c *Controller) SaveConfig(policy models.ValidationPolicy, trustedMinLevel int) {
	c.state.SetConfig(models.AppConfig{
		Policy:                  policy,
		TrustedEmployerMinLevel: trustedMinLevel,
	})
	c.presenter.Notify(view.Notice{Level: view.NoticeSuccess, Message: "Settings saved (local to this client)."})
	c.Render()
}

func (c *Controller) notifyError(err error) {
	message := err.Error()
	if e, ok := err.(*apperr.Error); ok {
		message = e.Message
	}
	c.logger.Warn("action failed", zap.Error(err))
	c.presenter.Notify(view.Notice{Level: view.NoticeError, Message: message})
}
