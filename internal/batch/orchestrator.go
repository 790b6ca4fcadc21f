package batch

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/img2png/internal/convert"
	"github.com/ytget/img2png/internal/download"
	"github.com/ytget/img2png/internal/model"
	"github.com/ytget/img2png/internal/naming"
	"github.com/ytget/img2png/internal/platform"
)

// Parallelism bounds
const (
	DefaultMaxParallel = 1
	MaxParallelLimit   = 10
)

// RunIDPrefix prefixes generated run identifiers
const RunIDPrefix = "run-"

// ErrAlreadyRunning is returned when a run is started on a busy orchestrator.
var ErrAlreadyRunning = errors.New("batch already running")

// DirectoryFunc makes sure the output directory exists and is usable
type DirectoryFunc func(dir string) error

// Options configures an Orchestrator
type Options struct {
	// Dir is the output directory for every item of a run
	Dir string
	// EnsureDir defaults to platform.CreateDirectoryIfNotExists
	EnsureDir DirectoryFunc
	// Converter defaults to a convert.Service over a default download.Client
	Converter convert.Converter
	// MaxParallel above 1 enables bounded fan-out; 1 keeps items strictly sequential
	MaxParallel int
	EventBuffer int
	Logger      *logrus.Entry
}

// Orchestrator drives one run at a time over a list of URLs
type Orchestrator struct {
	dir         string
	ensureDir   DirectoryFunc
	converter   convert.Converter
	maxParallel int
	eventBuffer int
	log         *logrus.Entry

	stateMu sync.RWMutex
	state   model.BatchState
	running atomic.Bool
}

// New creates an orchestrator
func New(opts Options) *Orchestrator {
	if opts.EnsureDir == nil {
		opts.EnsureDir = platform.CreateDirectoryIfNotExists
	}
	if opts.MaxParallel < 1 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if opts.MaxParallel > MaxParallelLimit {
		opts.MaxParallel = MaxParallelLimit
	}
	if opts.Logger == nil {
		opts.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.Converter == nil {
		client := download.NewClient(download.Options{Logger: opts.Logger})
		opts.Converter = convert.NewService(client, png.DefaultCompression, opts.Logger)
	}

	return &Orchestrator{
		dir:         opts.Dir,
		ensureDir:   opts.EnsureDir,
		converter:   opts.Converter,
		maxParallel: opts.MaxParallel,
		eventBuffer: opts.EventBuffer,
		log:         opts.Logger,
		state:       model.BatchStateIdle,
	}
}

// Dir returns the output directory
func (o *Orchestrator) Dir() string {
	return o.dir
}

// State returns the state of the current or last run
func (o *Orchestrator) State() model.BatchState {
	o.stateMu.RLock()
	defer o.stateMu.RUnlock()
	return o.state
}

func (o *Orchestrator) setState(state model.BatchState) {
	o.stateMu.Lock()
	o.state = state
	o.stateMu.Unlock()
}

// Run processes urls in order and blocks until the completion event has been
// delivered to r. The only error is ErrAlreadyRunning; item failures and a
// directory failure are reported through the result.
func (o *Orchestrator) Run(ctx context.Context, urls []string, r Reporter) (*model.BatchResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer o.running.Store(false)

	return o.run(ctx, urls, r), nil
}

// Start runs the batch on a background goroutine. The returned channel
// yields the result once and is then closed.
func (o *Orchestrator) Start(ctx context.Context, urls []string, r Reporter) (<-chan *model.BatchResult, error) {
	if !o.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}

	urls = append([]string(nil), urls...)
	results := make(chan *model.BatchResult, 1)
	go func() {
		defer close(results)
		defer o.running.Store(false)
		results <- o.run(ctx, urls, r)
	}()
	return results, nil
}

func (o *Orchestrator) run(ctx context.Context, urls []string, r Reporter) *model.BatchResult {
	result := &model.BatchResult{
		RunID:     RunIDPrefix + uuid.NewString(),
		Directory: o.dir,
		StartedAt: time.Now(),
	}
	runLog := o.log.WithFields(logrus.Fields{"run_id": result.RunID, "dir": o.dir})
	events := newDispatcher(r, o.eventBuffer, runLog)

	o.setState(model.BatchStateEnsuringDirectory)
	if err := o.ensureDir(o.dir); err != nil {
		dirErr := model.NewItemError(model.FailureDirectoryAccess, "", err)
		result.DirectoryErr = dirErr
		result.Failures = []string{dirErr.Error()}
		result.FinishedAt = time.Now()
		o.setState(model.BatchStateDirectoryFailed)

		runLog.WithError(err).Error("Cannot access output directory, batch aborted")
		events.status(dirErr.Error())
		events.complete(false, result.Summary(), copyStrings(result.Failures))
		return result
	}

	result.Total = len(urls)
	o.setState(model.BatchStateIterating)
	runLog.WithFields(logrus.Fields{"total": result.Total, "parallel": o.maxParallel}).Info("Starting batch")
	events.status(fmt.Sprintf("Saving to: %s", o.dir))

	outcomes := o.iterate(ctx, urls, naming.NewResolver(o.dir), events, runLog)
	for _, outcome := range outcomes {
		result.Record(outcome)
	}

	result.FinishedAt = time.Now()
	o.setState(model.BatchStateCompleted)
	runLog.WithFields(logrus.Fields{
		"succeeded": result.Succeeded,
		"failed":    len(result.Failures),
		"duration":  result.Duration().Round(time.Millisecond).String(),
	}).Info(result.Summary())

	events.complete(result.Success(), result.Summary(), copyStrings(result.Failures))
	return result
}

// iterate produces exactly one outcome per URL, in input order. Progress is
// always emitted from this goroutine so it follows input order even when
// items run in parallel.
func (o *Orchestrator) iterate(ctx context.Context, urls []string, resolver *naming.Resolver, events *dispatcher, runLog *logrus.Entry) []model.ItemOutcome {
	total := len(urls)
	outcomes := make([]model.ItemOutcome, total)

	var g errgroup.Group
	g.SetLimit(o.maxParallel)

	for i, rawURL := range urls {
		itemLog := runLog.WithFields(logrus.Fields{"index": i + 1, "url": rawURL})

		if ctx.Err() != nil {
			outcomes[i] = failed(i, rawURL, model.NewItemError(model.FailureCancelled, rawURL, ctx.Err()))
			events.itemDone(outcomes[i])
			continue
		}

		events.progress(i+1, total, rawURL)

		outputPath, err := resolver.Resolve(naming.Derive(rawURL))
		if err != nil {
			itemErr := toItemError(err, model.FailureNamingConflict, rawURL)
			itemLog.WithError(err).Warn("No free output name, item skipped")
			outcomes[i] = failed(i, rawURL, itemErr)
			events.itemDone(outcomes[i])
			continue
		}

		if o.maxParallel == 1 {
			outcomes[i] = o.processItem(ctx, i, total, rawURL, outputPath, events, itemLog)
			events.itemDone(outcomes[i])
			continue
		}

		g.Go(func() error {
			outcomes[i] = o.processItem(ctx, i, total, rawURL, outputPath, events, itemLog)
			events.itemDone(outcomes[i])
			return nil
		})
	}

	g.Wait()
	return outcomes
}

func (o *Orchestrator) processItem(ctx context.Context, index, total int, rawURL, outputPath string, events *dispatcher, itemLog *logrus.Entry) model.ItemOutcome {
	prefix := fmt.Sprintf("[%d/%d]", index+1, total)

	err := o.converter.Process(ctx, rawURL, outputPath, func(phase model.Phase) {
		events.itemStatus(index, phase.Status())
		switch phase {
		case model.PhaseDownloading:
			events.status(fmt.Sprintf("%s Downloading: %s", prefix, model.Shorten(rawURL, model.MessageURLLimit)))
		case model.PhaseConverting:
			events.status(prefix + " Converting...")
		case model.PhaseSaving:
			events.status(fmt.Sprintf("%s Saving as: %s", prefix, filepath.Base(outputPath)))
		}
	})
	if err != nil {
		itemErr := toItemError(err, model.FailureProcessing, rawURL)
		itemLog.WithField("kind", itemErr.Kind).Warn(itemErr.Error())
		return failed(index, rawURL, itemErr)
	}

	return model.ItemOutcome{Index: index, URL: rawURL, OutputPath: outputPath}
}

func failed(index int, rawURL string, err *model.ItemError) model.ItemOutcome {
	return model.ItemOutcome{Index: index, URL: rawURL, Err: err}
}

// toItemError keeps an existing classification, fills in a missing URL, or
// wraps err with the fallback kind.
func toItemError(err error, fallback model.FailureKind, rawURL string) *model.ItemError {
	var itemErr *model.ItemError
	if !errors.As(err, &itemErr) {
		return model.NewItemError(fallback, rawURL, err)
	}
	if itemErr.URL == "" {
		itemErr.URL = rawURL
	}
	return itemErr
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
