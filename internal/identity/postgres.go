package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
	"facultyjobs/internal/telemetry"
)

var tracer = telemetry.GetTracer("facultyjobs/identity")

const minPasswordLen = 6

type PostgresOptions struct {
	JWTSecret  string
	SessionTTL time.Duration
	// AdminEmail registers as the admin role regardless of the requested
	// role. Bootstrap convenience for the first deployment.
	AdminEmail string
}

// PostgresProvider authenticates against the users table with bcrypt
// password hashes and issues HS256 session tokens.
type PostgresProvider struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	opts   PostgresOptions
	hub    *hub

	mu      sync.Mutex
	current *Identity
}

var _ Provider = (*PostgresProvider)(nil)

func NewPostgresProvider(pool *pgxpool.Pool, opts PostgresOptions, logger *zap.Logger) *PostgresProvider {
	return &PostgresProvider{
		pool:   pool,
		logger: logger,
		opts:   opts,
		hub:    newHub(),
	}
}

// EnsureSchema creates the identity tables when absent.
func (p *PostgresProvider) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS users (
			uid            TEXT PRIMARY KEY,
			email          TEXT NOT NULL UNIQUE,
			display_name   TEXT NOT NULL DEFAULT '',
			role           TEXT NOT NULL DEFAULT 'candidate',
			org_name       TEXT,
			trust_level    INT NOT NULL DEFAULT 0,
			verified_email BOOLEAN NOT NULL DEFAULT TRUE,
			password_hash  TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS password_resets (
			token      TEXT PRIMARY KEY,
			uid        TEXT NOT NULL REFERENCES users(uid),
			expires_at TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := p.pool.Exec(ctx, ddl); err != nil {
		return apperr.Internal("creating identity schema", err)
	}
	return nil
}

func (p *PostgresProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	ctx, span := tracer.Start(ctx, "identity.SignIn")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))

	var uid, displayName, passwordHash string
	err := p.pool.QueryRow(ctx,
		`SELECT uid, display_name, password_hash FROM users WHERE email = $1`, email,
	).Scan(&uid, &displayName, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Unauthenticated("invalid email or password")
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("looking up user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	token, err := p.issueToken(uid)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Internal("issuing session token", err)
	}

	ident := &Identity{UID: uid, Email: email, DisplayName: displayName, SessionToken: token}
	p.setCurrent(ident)
	p.logger.Info("user signed in", zap.String("uid", uid))
	return ident, nil
}

func (p *PostgresProvider) Register(ctx context.Context, params RegisterParams) (*Identity, error) {
	ctx, span := tracer.Start(ctx, "identity.Register")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, apperr.Invalid("email is required", nil)
	}
	if len(params.Password) < minPasswordLen {
		return nil, apperr.Invalid("password should be at least 6 characters", nil)
	}

	role := params.Role
	if email == strings.ToLower(p.opts.AdminEmail) {
		role = models.RoleAdmin
	} else if role == "" {
		role = models.RoleCandidate
	}

	orgName := ""
	if role == models.RoleEmployer {
		orgName = params.OrgName
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("hashing password", err)
	}

	uid := uuid.NewString()
	_, err = p.pool.Exec(ctx,
		`INSERT INTO users (uid, email, display_name, role, org_name, trust_level, verified_email, password_hash)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, TRUE, $7)`,
		uid, email, params.DisplayName, string(role), orgName,
		models.DefaultTrustLevel(role), string(hash),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, apperr.Invalid("email already in use", err)
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("creating user", err)
	}

	token, err := p.issueToken(uid)
	if err != nil {
		return nil, apperr.Internal("issuing session token", err)
	}

	ident := &Identity{UID: uid, Email: email, DisplayName: params.DisplayName, SessionToken: token}
	p.setCurrent(ident)
	p.logger.Info("user registered",
		zap.String("uid", uid),
		zap.String("role", string(role)))
	return ident, nil
}

func (p *PostgresProvider) SendPasswordReset(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "identity.SendPasswordReset")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))

	var uid string
	err := p.pool.QueryRow(ctx, `SELECT uid FROM users WHERE email = $1`, email).Scan(&uid)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("no account for that email", nil)
	}
	if err != nil {
		span.RecordError(err)
		return apperr.Unavailable("looking up user", err)
	}

	token := uuid.NewString()
	_, err = p.pool.Exec(ctx,
		`INSERT INTO password_resets (token, uid, expires_at) VALUES ($1, $2, $3)`,
		token, uid, time.Now().Add(time.Hour),
	)
	if err != nil {
		span.RecordError(err)
		return apperr.Unavailable("storing reset token", err)
	}

	// Delivery belongs to a mail collaborator; the token is logged so the
	// reset flow works in development.
	p.logger.Info("password reset issued",
		zap.String("uid", uid),
		zap.String("token", token))
	return nil
}

func (p *PostgresProvider) SignOut(ctx context.Context) error {
	_, span := tracer.Start(ctx, "identity.SignOut")
	defer span.End()

	p.setCurrent(nil)
	return nil
}

func (p *PostgresProvider) Subscribe(fn func(*Identity)) func() {
	return p.hub.subscribe(fn)
}

func (p *PostgresProvider) setCurrent(ident *Identity) {
	p.mu.Lock()
	p.current = ident
	p.mu.Unlock()
	p.hub.notify(ident)
}

func (p *PostgresProvider) issueToken(uid string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.opts.SessionTTL)),
		Issuer:    "facultyjobs",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.opts.JWTSecret))
}
