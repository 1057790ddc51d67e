package models

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// ParseRole converts a raw string to a Role, returning an error for unknown
// values. The empty string maps to candidate, matching registration defaults.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCandidate, RoleEmployer, RoleAdmin:
		return Role(s), nil
	case "":
		return RoleCandidate, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanPostJobs reports whether the role may submit new postings.
func (r Role) CanPostJobs() bool {
	return r == RoleEmployer || r == RoleAdmin
}

// UserProfile is the identity profile record, created once at registration.
// OrgName is present only for the employer role. TrustLevel gates the
// auto-publish policy.
type UserProfile struct {
	UID           string    `json:"uid"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Role          Role      `json:"role"`
	OrgName       string    `json:"org_name,omitempty"`
	TrustLevel    int       `json:"trust_level"`
	VerifiedEmail bool      `json:"verified_email"`
	CreatedAt     time.Time `json:"created_at"`
}

// DefaultTrustLevel returns the trust level a freshly registered identity
// starts with for the given role.
func DefaultTrustLevel(r Role) int {
	switch r {
	case RoleAdmin:
		return 5
	case RoleEmployer:
		return 1
	default:
		return 0
	}
}
