// Package engine partitions the job collection into the three display
// buckets. Bucketize is a pure function of the cached collection, the filter
// selection, and a reference time; it has no side effects and the same
// inputs always produce the same output, including order.
package engine

import (
	"sort"
	"strings"
	"time"

	"facultyjobs/internal/models"
)

// ClosingSoonWindow is how far ahead a deadline may lie for an open posting
// to count as closing soon.
const ClosingSoonWindow = 30 * 24 * time.Hour

// Buckets are independent views over the filtered collection, not a
// partition: a posting may appear in zero, one, or several of them.
type Buckets struct {
	Open        []models.JobPosting
	ClosingSoon []models.JobPosting
	Archived    []models.JobPosting
}

// Matches reports whether the posting passes the filter selection. The three
// conditions are conjunctive; the department and level conditions hold when
// the posting's own set intersects the selected set.
func Matches(f Filters, j models.JobPosting) bool {
	if f.Search != "" {
		haystack := strings.ToLower(
			j.Title + " " + j.Institution + " " + j.Location + " " + strings.Join(j.Departments, " "),
		)
		if !strings.Contains(haystack, f.Search) {
			return false
		}
	}
	if len(f.Departments) > 0 && !intersects(j.Departments, f.Departments) {
		return false
	}
	if len(f.Levels) > 0 && !intersects(j.Levels, f.Levels) {
		return false
	}
	return true
}

func intersects(values []string, selected map[string]bool) bool {
	for _, v := range values {
		if selected[v] {
			return true
		}
	}
	return false
}

// IsOpen reports whether the posting belongs in the Open bucket.
func IsOpen(j models.JobPosting) bool {
	return j.Approved && !j.Archived && j.Active
}

// IsClosingSoon reports whether the posting belongs in the Closing-Soon
// bucket: open, with a deadline no later than now plus the window. There is
// no lower bound, so an open posting whose deadline just passed still
// qualifies.
func IsClosingSoon(j models.JobPosting, now time.Time) bool {
	if !IsOpen(j) || j.Deadline == nil {
		return false
	}
	return !j.Deadline.After(now.Add(ClosingSoonWindow))
}

// IsArchivedView reports whether the posting belongs in the Archived view.
// This is a display classification only: a past-deadline posting shows here
// without its archived flag ever being set.
func IsArchivedView(j models.JobPosting, now time.Time) bool {
	if j.Archived {
		return true
	}
	return j.Deadline != nil && j.Deadline.Before(now)
}

// Bucketize filters the collection and derives the three ordered buckets.
// Open and Archived sort descending by approval time (creation time when
// approval time is absent); Closing-Soon sorts ascending by deadline. Ties
// break on identifier so the output is deterministic.
func Bucketize(jobs []models.JobPosting, f Filters, now time.Time) Buckets {
	var b Buckets
	for _, j := range jobs {
		if !Matches(f, j) {
			continue
		}
		if IsOpen(j) {
			b.Open = append(b.Open, j)
		}
		if IsClosingSoon(j, now) {
			b.ClosingSoon = append(b.ClosingSoon, j)
		}
		if IsArchivedView(j, now) {
			b.Archived = append(b.Archived, j)
		}
	}

	sortByDisplayOrder(b.Open)
	sortByDeadline(b.ClosingSoon)
	sortByDisplayOrder(b.Archived)
	return b
}

func sortByDisplayOrder(jobs []models.JobPosting) {
	sort.SliceStable(jobs, func(a, b int) bool {
		ka, kb := jobs[a].DisplayOrderKey(), jobs[b].DisplayOrderKey()
		if ka.Equal(kb) {
			return jobs[a].ID < jobs[b].ID
		}
		return ka.After(kb)
	})
}

func sortByDeadline(jobs []models.JobPosting) {
	sort.SliceStable(jobs, func(a, b int) bool {
		da, db := *jobs[a].Deadline, *jobs[b].Deadline
		if da.Equal(db) {
			return jobs[a].ID < jobs[b].ID
		}
		return da.Before(db)
	})
}
