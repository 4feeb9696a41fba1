package organizer

import (
	"sort"
	"time"

	"sorter/internal/archive"
	"sorter/internal/category"
)

// Move records one file that ended the pass in a category folder.
type Move struct {
	From     string
	To       string
	Category category.Category
}

// CategoryCount is the number of files placed in one category folder.
type CategoryCount struct {
	Category category.Category
	Files    int
}

// Report summarizes a completed organizing pass.
type Report struct {
	RunID      string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	Discovered int
	Renamed    int
	// Unchanged counts files that already sat at their destination.
	Unchanged int
	Moves     []Move
	Archives  []archive.Record
}

// Duration reports how long the pass took.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// CategoryCounts groups the recorded moves by category, sorted by name.
func (r Report) CategoryCounts() []CategoryCount {
	counts := make(map[category.Category]int)
	for _, move := range r.Moves {
		counts[move.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		out = append(out, CategoryCount{Category: cat, Files: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
