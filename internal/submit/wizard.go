// Package submit implements the three-step posting wizard and the final
// submission, including the auto-publish trust policy.
//
// Step graph:
//
//	Details (1) ◄──► Preview (2) ◄──► Confirm (3)
//
// No network activity happens before Submit.
package submit

import (
	"strings"
	"sync"
	"time"

	"facultyjobs/internal/models"
)

type Step int

const (
	StepDetails Step = 1
	StepPreview Step = 2
	StepConfirm Step = 3
)

// Draft holds the in-progress form values. Location is entered as three
// fields and joined on build, mirroring the submission form.
type Draft struct {
	Title           string
	Institution     string
	City            string
	State           string
	Country         string
	Departments     []string
	Levels          []string
	Description     string
	ApplicationLink string
	Deadline        *time.Time
}

// Posting builds the JobPosting the draft describes. Used both for the
// preview card and for the final submission, so the preview is exactly what
// gets published.
func (d Draft) Posting() models.JobPosting {
	return models.JobPosting{
		Title:           strings.TrimSpace(d.Title),
		Institution:     strings.TrimSpace(d.Institution),
		Location:        d.City + ", " + d.State + ", " + d.Country,
		Departments:     d.Departments,
		Levels:          d.Levels,
		Description:     strings.TrimSpace(d.Description),
		ApplicationLink: strings.TrimSpace(d.ApplicationLink),
		Deadline:        d.Deadline,
	}
}

// Wizard tracks the current step and draft. Transitions are pure state
// changes clamped to the step range.
type Wizard struct {
	mu    sync.Mutex
	step  Step
	draft Draft
}

func NewWizard() *Wizard {
	return &Wizard{step: StepDetails}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) SetDraft(d Draft) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = d
}

func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Next advances toward confirmation and returns the resulting step.
func (w *Wizard) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < StepConfirm {
		w.step++
	}
	return w.step
}

// Prev steps back toward field entry and returns the resulting step.
func (w *Wizard) Prev() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepDetails {
		w.step--
	}
	return w.step
}

// Reset returns the wizard to field entry with an empty draft, as happens
// after a successful submission.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = StepDetails
	w.draft = Draft{}
}
