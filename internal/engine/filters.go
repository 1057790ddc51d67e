package engine

import (
	"sort"
	"strings"
	"sync"
)

// Filters is an immutable snapshot of the active filter selection. The zero
// value matches every posting.
type Filters struct {
	// Search is held lower-cased; matching is a plain substring test.
	Search      string
	Departments map[string]bool
	Levels      map[string]bool
}

func (f Filters) empty() bool {
	return f.Search == "" && len(f.Departments) == 0 && len(f.Levels) == 0
}

// FilterState is the mutable filter selection for the page session. Readers
// take a Snapshot; the engine itself only ever sees Filters values.
type FilterState struct {
	mu          sync.Mutex
	search      string
	departments map[string]bool
	levels      map[string]bool
}

func NewFilterState() *FilterState {
	return &FilterState{
		departments: make(map[string]bool),
		levels:      make(map[string]bool),
	}
}

// SetSearch stores the query lower-cased.
func (s *FilterState) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = strings.ToLower(query)
}

// ToggleDepartment flips membership of dept in the selected set and reports
// whether it is selected afterwards.
func (s *FilterState) ToggleDepartment(dept string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.departments[dept] {
		delete(s.departments, dept)
		return false
	}
	s.departments[dept] = true
	return true
}

// ToggleLevel flips membership of level in the selected set and reports
// whether it is selected afterwards.
func (s *FilterState) ToggleLevel(level string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.levels[level] {
		delete(s.levels, level)
		return false
	}
	s.levels[level] = true
	return true
}

// Clear resets the state to no search and no selected facets.
func (s *FilterState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = ""
	s.departments = make(map[string]bool)
	s.levels = make(map[string]bool)
}

// Snapshot returns an independent copy of the current selection.
func (s *FilterState) Snapshot() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := Filters{
		Search:      s.search,
		Departments: make(map[string]bool, len(s.departments)),
		Levels:      make(map[string]bool, len(s.levels)),
	}
	for d := range s.departments {
		f.Departments[d] = true
	}
	for l := range s.levels {
		f.Levels[l] = true
	}
	return f
}

// SelectedDepartments returns the selected departments sorted for display.
func (f Filters) SelectedDepartments() []string {
	return sortedKeys(f.Departments)
}

// SelectedLevels returns the selected levels sorted for display.
func (f Filters) SelectedLevels() []string {
	return sortedKeys(f.Levels)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
