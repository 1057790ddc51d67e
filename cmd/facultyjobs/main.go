package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"facultyjobs/internal/analytics"
	"facultyjobs/internal/app"
	"facultyjobs/internal/cache"
	"facultyjobs/internal/config"
	"facultyjobs/internal/database"
	"facultyjobs/internal/engine"
	"facultyjobs/internal/identity"
	"facultyjobs/internal/models"
	"facultyjobs/internal/moderation"
	"facultyjobs/internal/savedjobs"
	redisstore "facultyjobs/internal/savedjobs/redis"
	"facultyjobs/internal/session"
	"facultyjobs/internal/store"
	"facultyjobs/internal/submit"
	"facultyjobs/internal/telemetry"
	"facultyjobs/internal/view/term"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newPostgresPool(cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(context.Background(), cfg.PostgresURL)
	if err != nil {
		return nil, err
	}
	logger.Info("postgres pool opened")
	return pool, nil
}

func newNATSConnection(cfg *config.Config) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("facultyjobs"),
		nats.RetryOnFailedConnect(true),
	}
	return nats.Connect(cfg.NATSURL, opts...)
}

func newSavedJobsStore(cfg *config.Config) savedjobs.Store {
	return redisstore.New(redisstore.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// newAnalyticsSink selects ClickHouse when a DSN is configured and a no-op
// sink otherwise. Analytics stays optional.
func newAnalyticsSink(cfg *config.Config, logger *zap.Logger) (analytics.Sink, error) {
	if cfg.ClickHouseDSN == "" {
		logger.Info("analytics disabled, no clickhouse dsn configured")
		return analytics.NopSink{}, nil
	}

	ctx := context.Background()
	conn, err := database.OpenClickHouse(ctx, database.ClickHouseOptions{
		DSN:      cfg.ClickHouseDSN,
		Database: cfg.ClickHouseDatabase,
		Username: cfg.ClickHouseUsername,
		Password: cfg.ClickHousePassword,
	}, logger)
	if err != nil {
		return nil, err
	}

	sink := analytics.NewClickHouseSink(conn, logger)
	if err := sink.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return sink, nil
}

func newIdentityProvider(pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *identity.PostgresProvider {
	return identity.NewPostgresProvider(pool, identity.PostgresOptions{
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.SessionTTL,
		AdminEmail: cfg.AdminEmail,
	}, logger)
}

func newAppState(cfg *config.Config, saved *savedjobs.Manager, logger *zap.Logger) *app.State {
	policy, err := models.ParseValidationPolicy(cfg.JobValidationPolicy)
	if err != nil {
		logger.Warn("invalid validation policy, using admin approval", zap.Error(err))
		policy = models.PolicyAdminApproval
	}
	appCfg := models.AppConfig{
		Policy:                  policy,
		TrustedEmployerMinLevel: cfg.TrustedEmployerMinLevel,
	}
	return app.NewState(
		session.NewStore(),
		cache.NewJobCache(),
		engine.NewFilterState(),
		saved,
		appCfg,
	)
}

func newSubmitService(jobs *store.Jobs, profiles *store.Profiles, logger *zap.Logger) *submit.Service {
	return submit.NewService(jobs, profiles, logger)
}

func newModerationService(jobs *store.Jobs, profiles *store.Profiles, logger *zap.Logger) *moderation.Service {
	return moderation.NewService(jobs, profiles, logger)
}

func newController(
	state *app.State,
	provider *identity.PostgresProvider,
	profiles *store.Profiles,
	submitter *submit.Service,
	moderator *moderation.Service,
	sink analytics.Sink,
	presenter *term.Presenter,
	logger *zap.Logger,
) *app.Controller {
	return app.NewController(state, provider, profiles, submitter, moderator, sink, presenter, logger)
}

func registerTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) {
	var shutdown func()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			fn, err := telemetry.InitTracer(ctx, "facultyjobs", cfg.OTLPCollectorURL)
			if err != nil {
				logger.Warn("tracing disabled", zap.Error(err))
				return nil
			}
			shutdown = fn
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown != nil {
				shutdown()
			}
			return nil
		},
	})
}

func bootstrap(cfg *config.Config, jobs *store.Jobs, provider *identity.PostgresProvider) error {
	ctx := context.Background()
	if err := jobs.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := provider.EnsureSchema(ctx); err != nil {
		return err
	}
	if cfg.SeedOnEmpty {
		return jobs.SeedIfEmpty(ctx)
	}
	return nil
}

func main() {
	_ = godotenv.Load()

	fxApp := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newPostgresPool,
			newNATSConnection,
			newSavedJobsStore,
			savedjobs.NewManager,
			newAnalyticsSink,
			newIdentityProvider,
			store.NewJobs,
			store.NewProfiles,
			store.NewSubscriber,
			newAppState,
			newSubmitService,
			newModerationService,
			term.NewPresenter,
			newController,
		),
		fx.Invoke(
			registerTracing,
			bootstrap,
			func(lc fx.Lifecycle, sub *store.Subscriber, ctrl *app.Controller) {
				sub.Register(lc, ctrl.OnSnapshot)
			},
			func(lc fx.Lifecycle, cfg *config.Config, ctrl *app.Controller) {
				ctrl.Register(lc, cfg.RefreshInterval)
			},
			func(lc fx.Lifecycle, pool *pgxpool.Pool, nc *nats.Conn, saved savedjobs.Store) {
				lc.Append(fx.Hook{
					OnStop: func(ctx context.Context) error {
						nc.Close()
						pool.Close()
						return saved.Close()
					},
				})
			},
		),
	)

	startCtx := context.Background()
	if err := fxApp.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := fxApp.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
