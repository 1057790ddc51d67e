package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"facultyjobs/internal/models"
)

func TestSnapshotIsIsolatedFromReplace(t *testing.T) {
	c := NewJobCache()
	c.Replace([]models.JobPosting{{ID: "a"}, {ID: "b"}})

	snap := c.Snapshot()
	c.Replace([]models.JobPosting{{ID: "c"}})

	assert.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestGet(t *testing.T) {
	c := NewJobCache()
	c.Replace([]models.JobPosting{{ID: "a", Title: "Lecturer"}})

	j, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "Lecturer", j.Title)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}
