package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ytget/img2png/internal/batch"
	"github.com/ytget/img2png/internal/config"
	"github.com/ytget/img2png/internal/convert"
	"github.com/ytget/img2png/internal/download"
	"github.com/ytget/img2png/internal/model"
)

func loadConfig(cmd *cobra.Command) (*config.FileConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Output.Directory = config.ExpandPath(outputDir)
	}
	if flags.Changed("compression") {
		cfg.Output.Compression = compression
	}
	if flags.Changed("parallel") {
		cfg.Batch.MaxParallel = parallel
	}
	if flags.Changed("timeout") {
		cfg.Network.TimeoutSeconds = timeoutSecs
	}
	if verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.FileConfig, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logrus.NewEntry(logger).WithField("version", version)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	urls, err := readURLs(args, urlFile, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given; pass them as arguments or with --file")
	}

	log := newLogger(cfg, cmd.ErrOrStderr())
	level, err := convert.ParseCompression(cfg.Output.Compression)
	if err != nil {
		return err
	}

	client := download.NewClient(download.Options{
		Timeout:   time.Duration(cfg.Network.TimeoutSeconds) * time.Second,
		MaxBytes:  cfg.Network.MaxBytes,
		UserAgent: cfg.Network.UserAgent,
		Logger:    log,
	})
	orch := batch.New(batch.Options{
		Dir:         cfg.Output.Directory,
		Converter:   convert.NewService(client, level, log),
		MaxParallel: cfg.Batch.MaxParallel,
		Logger:      log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := orch.Run(ctx, urls, &cliReporter{out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	if !result.Success() {
		return errUnsuccessful
	}
	return nil
}

// readURLs merges positional arguments with the lines of file. A file of "-"
// reads from stdin.
func readURLs(args []string, file string, stdin io.Reader) ([]string, error) {
	var urls []string
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			urls = append(urls, arg)
		}
	}
	if file == "" {
		return urls, nil
	}

	var r io.Reader = stdin
	if file != "-" {
		f, err := os.Open(config.ExpandPath(file))
		if err != nil {
			return nil, fmt.Errorf("opening URL file: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return append(urls, model.ParseURLList(string(data))...), nil
}

// cliReporter prints batch events as plain lines
type cliReporter struct {
	out io.Writer
}

func (r *cliReporter) OnStatus(text string) {
	fmt.Fprintln(r.out, text)
}

func (r *cliReporter) OnProgress(current, total int, url string) {
	fmt.Fprintf(r.out, "Processing [%d/%d]: %s\n", current, total, model.Shorten(url, model.ProgressURLLimit))
}

func (r *cliReporter) OnCompletion(success bool, message string, failures []string) {
	fmt.Fprintln(r.out, message)
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(r.out, "Encountered %d error(s):\n", len(failures))
	for _, failure := range failures {
		fmt.Fprintf(r.out, "  - %s\n", failure)
	}
}

func (r *cliReporter) OnItemStatus(int, model.TaskStatus) {}

func (r *cliReporter) OnItemDone(outcome model.ItemOutcome) {
	if !outcome.Succeeded() {
		return
	}
	size := "?"
	if info, err := os.Stat(outcome.OutputPath); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	fmt.Fprintf(r.out, "  saved %s (%s)\n", outcome.FileName(), size)
}
