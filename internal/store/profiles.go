package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"facultyjobs/internal/apperr"
	"facultyjobs/internal/models"
)

// Profiles reads identity profile records. Creation happens through the
// identity collaborator at registration; this client never mutates profiles.
type Profiles struct {
	pool *pgxpool.Pool
}

func NewProfiles(pool *pgxpool.Pool) *Profiles {
	return &Profiles{pool: pool}
}

// Get is a point read of a profile by identity identifier.
func (p *Profiles) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "store.GetProfile")
	defer span.End()

	var profile models.UserProfile
	var role string
	var orgName *string
	err := p.pool.QueryRow(ctx,
		`SELECT uid, email, display_name, role, org_name, trust_level, verified_email, created_at
		 FROM users WHERE uid = $1`, uid,
	).Scan(&profile.UID, &profile.Email, &profile.DisplayName, &role,
		&orgName, &profile.TrustLevel, &profile.VerifiedEmail, &profile.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("profile not found", nil)
	}
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("reading profile", err)
	}

	profile.Role, err = models.ParseRole(role)
	if err != nil {
		return nil, apperr.Internal("parsing profile role", err)
	}
	if orgName != nil {
		profile.OrgName = *orgName
	}
	return &profile, nil
}

// ListAll returns every profile, for the admin users tab.
func (p *Profiles) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	ctx, span := tracer.Start(ctx, "store.ListProfiles")
	defer span.End()

	rows, err := p.pool.Query(ctx,
		`SELECT uid, email, display_name, role, org_name, trust_level, verified_email, created_at
		 FROM users ORDER BY created_at`)
	if err != nil {
		span.RecordError(err)
		return nil, apperr.Unavailable("listing profiles", err)
	}
	defer rows.Close()

	var profiles []models.UserProfile
	for rows.Next() {
		var profile models.UserProfile
		var role string
		var orgName *string
		if err := rows.Scan(&profile.UID, &profile.Email, &profile.DisplayName, &role,
			&orgName, &profile.TrustLevel, &profile.VerifiedEmail, &profile.CreatedAt); err != nil {
			return nil, apperr.Internal("scanning profile row", err)
		}
		if profile.Role, err = models.ParseRole(role); err != nil {
			return nil, apperr.Internal("parsing profile role", err)
		}
		if orgName != nil {
			profile.OrgName = *orgName
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}
