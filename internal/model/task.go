package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// ItemOutcome is the result of processing one URL of a batch.
// A nil Err means success and OutputPath points at the written file.
type ItemOutcome struct {
	Index      int
	URL        string
	OutputPath string
	Err        *ItemError
}

// Succeeded reports whether the item was converted and saved
func (o ItemOutcome) Succeeded() bool {
	return o.Err == nil
}

// Status returns the terminal queue status for the outcome
func (o ItemOutcome) Status() TaskStatus {
	if o.Succeeded() {
		return TaskStatusCompleted
	}
	return TaskStatusError
}

// FileName returns the base name of the written file, or "" on failure
func (o ItemOutcome) FileName() string {
	if o.OutputPath == "" {
		return ""
	}
	return filepath.Base(o.OutputPath)
}

// BatchResult aggregates the outcomes of a single run.
type BatchResult struct {
	RunID     string
	Directory string
	Total     int
	Succeeded int
	Outcomes  []ItemOutcome
	// Failures holds the failure messages in input order
	Failures []string
	// DirectoryErr is set when the run aborted before any item was attempted
	DirectoryErr *ItemError
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Record appends an outcome and updates the counters.
func (r *BatchResult) Record(o ItemOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Succeeded() {
		r.Succeeded++
		return
	}
	r.Failures = append(r.Failures, o.Err.Error())
}

// Success is true when at least one item succeeded or nothing failed.
// An empty batch is therefore successful.
func (r *BatchResult) Success() bool {
	if r.DirectoryErr != nil {
		return false
	}
	return r.Succeeded > 0 || len(r.Failures) == 0
}

// Summary returns the completion message, e.g. "Finished. 2/3 converted."
func (r *BatchResult) Summary() string {
	if r.DirectoryErr != nil {
		return "Failed to access Downloads folder."
	}
	return fmt.Sprintf("Finished. %d/%d converted.", r.Succeeded, r.Total)
}

// Duration returns how long the run took
func (r *BatchResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Shorten truncates s to at most limit runes and appends "..." the way status
// lines render URLs. The ellipsis is always appended, matching the status
// line format.
func Shorten(s string, limit int) string {
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	if limit > 0 && utf8.RuneCountInString(s) > limit {
		runes := []rune(s)
		s = string(runes[:limit])
	}
	return s + "..."
}
