package batch

// Package batch runs the conversion pipeline over an ordered list of URLs.
// It owns the run state machine, isolates per-item failures, and delivers
// status, progress and completion events to a Reporter from a single
// goroutine so presentation code is never called concurrently.
