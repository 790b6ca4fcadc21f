package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/ytget/img2png/internal/download"
	"github.com/ytget/img2png/internal/model"
	"github.com/ytget/img2png/internal/platform"
)

// PNG compression presets accepted by ParseCompression
const (
	CompressionDefault = "default"
	CompressionSpeed   = "speed"
	CompressionBest    = "best"
	CompressionNone    = "none"
)

// ParseCompression maps a preset name to a PNG compression level
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", CompressionDefault:
		return png.DefaultCompression, nil
	case CompressionSpeed:
		return png.BestSpeed, nil
	case CompressionBest:
		return png.BestCompression, nil
	case CompressionNone:
		return png.NoCompression, nil
	default:
		return png.DefaultCompression, fmt.Errorf("unknown compression preset %q", name)
	}
}

// CompressionPresets returns the accepted preset names
func CompressionPresets() []string {
	return []string{CompressionDefault, CompressionSpeed, CompressionBest, CompressionNone}
}

// Service handles fetch, decode, normalize, encode and write for one URL
type Service struct {
	fetcher download.Fetcher
	encoder *png.Encoder
	log     *logrus.Entry

	// write is replaceable in tests
	write func(path string, data []byte) error
}

// NewService creates a conversion service on top of a fetcher
func NewService(fetcher download.Fetcher, level png.CompressionLevel, log *logrus.Entry) *Service {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		fetcher: fetcher,
		encoder: &png.Encoder{CompressionLevel: level},
		log:     log,
		write:   platform.WriteFileExclusive,
	}
}

// Process converts rawURL into a PNG at outputPath.
// Every returned error is a *model.ItemError; panics are recovered as
// processing errors so a bad item never takes down the batch.
func (s *Service) Process(ctx context.Context, rawURL, outputPath string, onPhase PhaseFunc) (err error) {
	itemLog := s.log.WithFields(logrus.Fields{"url": rawURL, "path": outputPath})

	defer func() {
		if r := recover(); r != nil {
			itemLog.WithFields(logrus.Fields{
				"panic_info":  r,
				"stack_trace": string(debug.Stack()),
			}).Error("PANIC recovered while processing image")
			err = model.NewItemError(model.FailureProcessing, rawURL, fmt.Errorf("panic: %v", r))
		}
	}()

	notify(onPhase, model.PhaseDownloading)
	resp, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return asItemError(err, model.FailureNetwork, rawURL)
	}

	if !resp.IsImage() {
		itemLog.WithField("content_type", resp.ContentType).
			Warn("Content-Type is not an image, trying to decode anyway")
	}

	notify(onPhase, model.PhaseConverting)
	img, format, err := Decode(resp.Body)
	if err != nil {
		if IsUnknownFormat(err) {
			return model.NewItemError(model.FailureUnidentifiedImage, rawURL, err)
		}
		return model.NewItemError(model.FailureProcessing, rawURL, fmt.Errorf("decoding %s: %w", format, err))
	}
	img = Normalize(img)

	var buf bytes.Buffer
	if err := s.encoder.Encode(&buf, img); err != nil {
		return model.NewItemError(model.FailureProcessing, rawURL, fmt.Errorf("encoding png: %w", err))
	}

	notify(onPhase, model.PhaseSaving)
	if err := s.write(outputPath, buf.Bytes()); err != nil {
		return model.NewItemError(model.FailureIO, rawURL, err)
	}

	itemLog.WithFields(logrus.Fields{
		"source_format": format,
		"size":          humanize.Bytes(uint64(buf.Len())),
		"file":          filepath.Base(outputPath),
	}).Info("Saved PNG")
	return nil
}

func notify(onPhase PhaseFunc, phase model.Phase) {
	if onPhase != nil {
		onPhase(phase)
	}
}

// asItemError keeps an existing classification or wraps err with fallback.
func asItemError(err error, fallback model.FailureKind, rawURL string) error {
	var itemErr *model.ItemError
	if errors.As(err, &itemErr) {
		return err
	}
	return model.NewItemError(fallback, rawURL, err)
}
