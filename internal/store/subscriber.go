package store

import (
	"context"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"facultyjobs/internal/models"
)

// Subscriber keeps a live snapshot of the jobs collection flowing to the
// application. On every change notification it re-reads the full ordered
// collection and delivers it wholesale; if the read fails the last delivered
// snapshot stays in effect (stale but available).
type Subscriber struct {
	nc     *nats.Conn
	jobs   *Jobs
	logger *zap.Logger
	sub    *nats.Subscription
}

func NewSubscriber(nc *nats.Conn, jobs *Jobs, logger *zap.Logger) *Subscriber {
	return &Subscriber{
		nc:     nc,
		jobs:   jobs,
		logger: logger,
	}
}

// Register subscribes to the change feed for the process lifetime and pushes
// an initial snapshot on startup.
func (s *Subscriber) Register(lc fx.Lifecycle, onSnapshot func([]models.JobPosting)) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sub, err := s.nc.Subscribe(SubjectJobsChanged, func(msg *nats.Msg) {
				s.refresh(context.Background(), onSnapshot)
			})
			if err != nil {
				return err
			}
			s.sub = sub
			s.logger.Info("subscribed to jobs change feed")

			s.refresh(ctx, onSnapshot)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if s.sub == nil {
				return nil
			}
			return s.sub.Unsubscribe()
		},
	})
}

func (s *Subscriber) refresh(ctx context.Context, onSnapshot func([]models.JobPosting)) {
	ctx, span := tracer.Start(ctx, "store.refreshSnapshot")
	defer span.End()

	jobs, err := s.jobs.List(ctx)
	if err != nil {
		// keep the previous snapshot
		span.RecordError(err)
		s.logger.Error("jobs subscription refresh failed", zap.Error(err))
		return
	}
	onSnapshot(jobs)
}
