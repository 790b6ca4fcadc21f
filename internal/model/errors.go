package model

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an item (or a whole run) failed.
type FailureKind string

const (
	// FailureDirectoryAccess aborts the whole run before any item is attempted
	FailureDirectoryAccess FailureKind = "DirectoryAccessError"

	FailureNetwork           FailureKind = "NetworkError"
	FailureUnidentifiedImage FailureKind = "UnidentifiedImage"
	FailureIO                FailureKind = "IOError"
	FailureNamingConflict    FailureKind = "NamingConflictExhausted"
	FailureProcessing        FailureKind = "ProcessingError"
	FailureCancelled         FailureKind = "Cancelled"
)

// URL truncation limits used in human readable messages
const (
	MessageURLLimit  = 50
	ProgressURLLimit = 60
)

// ErrNamingConflictExhausted is returned when no free suffix was found for a candidate name.
var ErrNamingConflictExhausted = errors.New("too many naming conflicts")

// ItemError is the failure recorded for a single URL. It never aborts the batch.
type ItemError struct {
	Kind FailureKind
	URL  string
	// Stem is the filename stem involved, set for naming conflicts
	Stem string
	Err  error
}

// NewItemError wraps err with a failure kind and the offending URL.
func NewItemError(kind FailureKind, url string, err error) *ItemError {
	return &ItemError{Kind: kind, URL: url, Err: err}
}

// Error returns the message shown to the user in the failure list.
func (e *ItemError) Error() string {
	short := Shorten(e.URL, MessageURLLimit)
	switch e.Kind {
	case FailureNetwork:
		return fmt.Sprintf("Network error for %s: %v", short, e.Err)
	case FailureUnidentifiedImage:
		return fmt.Sprintf("Cannot identify image file: %s", short)
	case FailureIO:
		return fmt.Sprintf("Error saving %s: %v", short, e.Err)
	case FailureNamingConflict:
		return fmt.Sprintf("Too many conflicts for base name: %s", e.Stem)
	case FailureCancelled:
		return fmt.Sprintf("Cancelled before processing: %s", short)
	case FailureDirectoryAccess:
		return fmt.Sprintf("Error creating Downloads folder: %v", e.Err)
	default:
		return fmt.Sprintf("Error processing %s: %v", short, e.Err)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *ItemError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or FailureProcessing when
// err is not an *ItemError.
func KindOf(err error) FailureKind {
	var itemErr *ItemError
	if errors.As(err, &itemErr) {
		return itemErr.Kind
	}
	return FailureProcessing
}
