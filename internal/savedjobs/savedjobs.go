// Package savedjobs manages the per-identity set of saved job identifiers.
// The set lives only while that identity is signed in: loaded fresh on every
// sign-in, discarded on sign-out, never merged across sessions. Every toggle
// is a direct write-through to the remote store.
package savedjobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"facultyjobs/internal/apperr"
)

// Store is the remote persistence boundary for saved-job membership.
type Store interface {
	// List returns every saved job identifier for the identity.
	List(ctx context.Context, uid string) ([]string, error)

	// Add records an add-intent with a server-stamped save time.
	Add(ctx context.Context, uid, jobID string, savedAt time.Time) error

	// Remove records a remove-intent.
	Remove(ctx context.Context, uid, jobID string) error

	Close() error
}

// Manager mirrors the remote set locally so renders never block on the
// store. The local mirror is updated in the same call that issues the write.
type Manager struct {
	store  Store
	logger *zap.Logger

	mu  sync.Mutex
	set map[string]bool
}

func NewManager(store Store, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		logger: logger,
		set:    make(map[string]bool),
	}
}

// Load replaces the local set with the identity's persisted saved jobs.
// A missing or failing identity degrades silently to an empty set.
func (m *Manager) Load(ctx context.Context, uid string) {
	m.mu.Lock()
	m.set = make(map[string]bool)
	m.mu.Unlock()

	if uid == "" {
		return
	}

	ids, err := m.store.List(ctx, uid)
	if err != nil {
		m.logger.Warn("failed to load saved jobs, starting empty",
			zap.String("uid", uid),
			zap.Error(err))
		return
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	m.mu.Lock()
	m.set = set
	m.mu.Unlock()
}

// Clear drops the local set, used on sign-out.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = make(map[string]bool)
}

// Toggle flips membership of jobID for the signed-in identity, issuing
// exactly one add-intent or remove-intent write. It reports whether the job
// is saved afterwards. An absent identity yields an authentication-required
// error and no write.
func (m *Manager) Toggle(ctx context.Context, uid, jobID string) (bool, error) {
	if uid == "" {
		return false, apperr.Unauthenticated("login to save jobs")
	}

	m.mu.Lock()
	saved := m.set[jobID]
	m.mu.Unlock()

	if saved {
		if err := m.store.Remove(ctx, uid, jobID); err != nil {
			return true, apperr.Unavailable("removing saved job", err)
		}
		m.mu.Lock()
		delete(m.set, jobID)
		m.mu.Unlock()
		return false, nil
	}

	if err := m.store.Add(ctx, uid, jobID, time.Now()); err != nil {
		return false, apperr.Unavailable("saving job", err)
	}
	m.mu.Lock()
	m.set[jobID] = true
	m.mu.Unlock()
	return true, nil
}

// IsSaved reports local membership of jobID.
func (m *Manager) IsSaved(jobID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.set[jobID]
}

// Len reports the size of the local set.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.set)
}
