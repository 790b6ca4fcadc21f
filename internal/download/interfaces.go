package download

import (
	"context"
)

// Fetcher defines the interface for retrieving one resource.
type Fetcher interface {
	// Fetch downloads rawURL and returns the full body.
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}
