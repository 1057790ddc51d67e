// Package view builds presenter-agnostic view models from domain state.
// Rendering proper is the presenter's job (see view/term).
package view

import (
	"fmt"
	"time"

	"facultyjobs/internal/models"
)

const descriptionPreviewLen = 140

// Card is the summary rendering of one posting, used on the listing, in the
// admin lists, and for the submission preview.
type Card struct {
	ID              string
	Title           string
	InstitutionLine string
	Approved        bool
	DepartmentChips []string
	LevelChips      []string
	Description     string
	Deadline        string
	ApplicationLink string
	Saved           bool
}

// NewCard builds the card for a posting. The submission preview feeds a
// draft posting through this same function, so preview and listing render
// identically.
func NewCard(j models.JobPosting, saved bool) Card {
	return Card{
		ID:              j.ID,
		Title:           j.Title,
		InstitutionLine: j.Institution + " • " + j.Location,
		Approved:        j.Approved,
		DepartmentChips: j.Departments,
		LevelChips:      j.Levels,
		Description:     truncate(j.Description, descriptionPreviewLen),
		Deadline:        FormatDate(j.Deadline),
		ApplicationLink: j.ApplicationLink,
		Saved:           saved,
	}
}

// FormatDate renders a nullable date as dd/mm/yyyy, empty when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), t.Month(), t.Year())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
