// Package cache holds the client-side mirror of the remote jobs collection.
// The snapshot is replaced wholesale on every subscription event, so readers
// always observe a consistent point-in-time view.
package cache

import (
	"sync"

	"facultyjobs/internal/models"
)

type JobCache struct {
	mu   sync.RWMutex
	jobs []models.JobPosting
}

func NewJobCache() *JobCache {
	return &JobCache{}
}

// Replace swaps in a fresh snapshot. Ordering is whatever the store
// delivered (approval timestamp descending).
func (c *JobCache) Replace(jobs []models.JobPosting) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = jobs
}

// Snapshot returns a copy of the current mirror; callers may not see later
// updates through it.
func (c *JobCache) Snapshot() []models.JobPosting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.JobPosting, len(c.jobs))
	copy(out, c.jobs)
	return out
}

// Get returns the cached posting with the given identifier.
func (c *JobCache) Get(id string) (models.JobPosting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, j := range c.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.JobPosting{}, false
}

// Len reports the number of cached postings.
func (c *JobCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}
