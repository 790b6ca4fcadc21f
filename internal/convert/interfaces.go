package convert

import (
	"context"

	"github.com/ytget/img2png/internal/model"
)

// PhaseFunc is notified when the unit moves to the next step of an item.
type PhaseFunc func(phase model.Phase)

// Converter defines the interface for the fetch-decode-encode unit.
type Converter interface {
	// Process converts rawURL into a PNG at outputPath. Errors are *model.ItemError.
	Process(ctx context.Context, rawURL, outputPath string, onPhase PhaseFunc) error
}
