package app

import (
	"sync"

	"facultyjobs/internal/cache"
	"facultyjobs/internal/engine"
	"facultyjobs/internal/models"
	"facultyjobs/internal/savedjobs"
	"facultyjobs/internal/session"
)

// State is the explicit application state owned by the controller: session,
// collection mirror, filter selection, saved set, and the client-local
// config. Nothing here is ambient or global.
type State struct {
	Session *session.Store
	Cache   *cache.JobCache
	Filters *engine.FilterState
	Saved   *savedjobs.Manager

	mu     sync.Mutex
	config models.AppConfig
}

func NewState(sess *session.Store, jobCache *cache.JobCache, filters *engine.FilterState, saved *savedjobs.Manager, cfg models.AppConfig) *State {
	return &State{
		Session: sess,
		Cache:   jobCache,
		Filters: filters,
		Saved:   saved,
		config:  cfg,
	}
}

// Config returns the current client-local configuration.
func (s *State) Config() models.AppConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the client-local configuration. It is never persisted
// remotely; other running clients may diverge.
func (s *State) SetConfig(cfg models.AppConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}
