package view

import (
	"facultyjobs/internal/engine"
	"facultyjobs/internal/models"
)

// SavedChecker reports whether a job identifier is in the saved set.
type SavedChecker func(jobID string) bool

// Listing is the main job board view: the three buckets plus the active
// filter selection.
type Listing struct {
	Open        []Card
	ClosingSoon []Card
	Archived    []Card

	SearchQuery         string
	SelectedDepartments []string
	SelectedLevels      []string

	// Filter chip vocabularies, rendered alongside the selection.
	AvailableDepartments []string
	AvailableLevels      []string

	EmptyMessage string
}

// BuildListing converts engine output into the listing view model.
func BuildListing(b engine.Buckets, f engine.Filters, saved SavedChecker, role models.Role) Listing {
	l := Listing{
		Open:                 cards(b.Open, saved),
		ClosingSoon:          cards(b.ClosingSoon, saved),
		Archived:             cards(b.Archived, saved),
		SearchQuery:          f.Search,
		SelectedDepartments:  f.SelectedDepartments(),
		SelectedLevels:       f.SelectedLevels(),
		AvailableDepartments: models.Departments,
		AvailableLevels:      models.Levels,
	}
	if role == models.RoleEmployer {
		l.EmptyMessage = "Be the first to post a job."
	} else {
		l.EmptyMessage = "No matches. Try clearing filters."
	}
	return l
}

func cards(jobs []models.JobPosting, saved SavedChecker) []Card {
	out := make([]Card, len(jobs))
	for i, j := range jobs {
		out[i] = NewCard(j, saved != nil && saved(j.ID))
	}
	return out
}

// Detail is the per-posting modal: full description plus the save, apply,
// and share affordances.
type Detail struct {
	ID              string
	Title           string
	InstitutionLine string
	Departments     []string
	Levels          []string
	Deadline        string
	Description     string
	ApplicationLink string
	Saved           bool
}

func NewDetail(j models.JobPosting, saved bool) Detail {
	return Detail{
		ID:              j.ID,
		Title:           j.Title,
		InstitutionLine: j.Institution + " • " + j.Location,
		Departments:     j.Departments,
		Levels:          j.Levels,
		Deadline:        FormatDate(j.Deadline),
		Description:     j.Description,
		ApplicationLink: j.ApplicationLink,
		Saved:           saved,
	}
}

// AdminRow is one posting in the moderation lists with its available
// actions.
type AdminRow struct {
	ID         string
	Summary    string
	CanApprove bool
}

// UserRow is one profile in the admin users tab.
type UserRow struct {
	UID         string
	Email       string
	DisplayName string
	Role        models.Role
	TrustLevel  int
}

// Admin is the moderation view: pending and approved postings, registered
// users, and the client-local config values.
type Admin struct {
	Pending  []AdminRow
	Approved []AdminRow
	Users    []UserRow
	Config   models.AppConfig
}

func BuildAdmin(pending, approved []models.JobPosting, users []models.UserProfile, cfg models.AppConfig) Admin {
	a := Admin{Config: cfg}
	for _, j := range pending {
		a.Pending = append(a.Pending, adminRow(j, true))
	}
	for _, j := range approved {
		a.Approved = append(a.Approved, adminRow(j, false))
	}
	for _, u := range users {
		a.Users = append(a.Users, UserRow{
			UID:         u.UID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			Role:        u.Role,
			TrustLevel:  u.TrustLevel,
		})
	}
	return a
}

func adminRow(j models.JobPosting, pending bool) AdminRow {
	return AdminRow{
		ID:         j.ID,
		Summary:    j.Title + " — " + j.Institution + " • " + j.Location,
		CanApprove: pending,
	}
}
