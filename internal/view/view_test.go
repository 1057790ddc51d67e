package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facultyjobs/internal/engine"
	"facultyjobs/internal/models"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", FormatDate(nil))

	d := time.Date(2025, 9, 5, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "05/09/2025", FormatDate(&d))
}

func TestCardTruncatesDescription(t *testing.T) {
	long := strings.Repeat("x", 200)
	c := NewCard(models.JobPosting{Description: long}, false)
	assert.Equal(t, strings.Repeat("x", 140)+"…", c.Description)

	short := "concise"
	c = NewCard(models.JobPosting{Description: short}, false)
	assert.Equal(t, short, c.Description)
}

func TestCardInstitutionLine(t *testing.T) {
	c := NewCard(models.JobPosting{Institution: "IIT Patna", Location: "Patna, Bihar, India"}, true)
	assert.Equal(t, "IIT Patna • Patna, Bihar, India", c.InstitutionLine)
	assert.True(t, c.Saved)
}

// The preview card for a draft must render exactly like the listing card of
// the resulting posting.
func TestPreviewCardMatchesListingCard(t *testing.T) {
	j := models.JobPosting{
		Title:       "Lecturer",
		Institution: "IIT Patna",
		Location:    "Patna, Bihar, India",
		Departments: []string{"Mathematics"},
		Description: "Teach UG and PG courses.",
	}

	preview := NewCard(j, false)
	j.ID = "job-1" // assigned at submission
	listing := NewCard(j, false)
	listing.ID = ""
	assert.Equal(t, preview, listing)
}

func TestListingEmptyMessageVariesByRole(t *testing.T) {
	l := BuildListing(engine.Buckets{}, engine.Filters{}, nil, models.RoleEmployer)
	assert.Equal(t, "Be the first to post a job.", l.EmptyMessage)

	l = BuildListing(engine.Buckets{}, engine.Filters{}, nil, models.RoleCandidate)
	assert.Equal(t, "No matches. Try clearing filters.", l.EmptyMessage)
}

func TestBuildListingMarksSaved(t *testing.T) {
	b := engine.Buckets{Open: []models.JobPosting{{ID: "a"}, {ID: "b"}}}
	saved := func(id string) bool { return id == "b" }

	l := BuildListing(b, engine.Filters{}, saved, models.RoleCandidate)
	require.Len(t, l.Open, 2)
	assert.False(t, l.Open[0].Saved)
	assert.True(t, l.Open[1].Saved)
}

func TestBuildAdmin(t *testing.T) {
	pending := []models.JobPosting{{ID: "p", Title: "A", Institution: "X", Location: "Y"}}
	approved := []models.JobPosting{{ID: "a", Title: "B", Institution: "X", Location: "Y"}}
	users := []models.UserProfile{{UID: "u1", Role: models.RoleAdmin, TrustLevel: 5}}

	a := BuildAdmin(pending, approved, users, models.AppConfig{Policy: models.PolicyAdminApproval})
	require.Len(t, a.Pending, 1)
	assert.True(t, a.Pending[0].CanApprove)
	require.Len(t, a.Approved, 1)
	assert.False(t, a.Approved[0].CanApprove)
	require.Len(t, a.Users, 1)
	assert.Equal(t, models.RoleAdmin, a.Users[0].Role)
}
