package models

import (
	"time"
)

// JobPosting is one faculty job listing. Identifiers are assigned by the
// store. Deadline and ApprovedAt are nullable; ApprovedAt is set exactly
// once, when Approved transitions to true.
type JobPosting struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Institution     string     `json:"institution"`
	Location        string     `json:"location"`
	Departments     []string   `json:"departments"`
	Levels          []string   `json:"levels"`
	Description     string     `json:"description"`
	ApplicationLink string     `json:"application_link"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Approved        bool       `json:"approved"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	CreatedBy       string     `json:"created_by"`
	Active          bool       `json:"active"`
	Archived        bool       `json:"archived"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DisplayOrderKey is the timestamp postings are ordered by in the Open and
// Archived listings: approval time, falling back to creation time.
func (j JobPosting) DisplayOrderKey() time.Time {
	if j.ApprovedAt != nil {
		return *j.ApprovedAt
	}
	return j.CreatedAt
}
