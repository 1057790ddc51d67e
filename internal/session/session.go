// Package session holds the current authenticated identity and its profile.
// Fed by the identity collaborator's auth-state stream; cleared on sign-out.
package session

import (
	"sync"

	"facultyjobs/internal/identity"
	"facultyjobs/internal/models"
)

type Store struct {
	mu      sync.RWMutex
	ident   *identity.Identity
	profile *models.UserProfile
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(ident *identity.Identity, profile *models.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = ident
	s.profile = profile
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ident = nil
	s.profile = nil
}

// Identity returns the signed-in identity, or nil.
func (s *Store) Identity() *identity.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident
}

// UID returns the signed-in identity's identifier, or "".
func (s *Store) UID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ident == nil {
		return ""
	}
	return s.ident.UID
}

// Profile returns the cached profile, or nil. Trust-sensitive paths must
// re-fetch from the store instead of relying on this copy.
func (s *Store) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Role returns the cached profile's role, defaulting to candidate.
func (s *Store) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return models.RoleCandidate
	}
	return s.profile.Role
}

// SignedIn reports whether an identity is present.
func (s *Store) SignedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident != nil
}
