package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/acruzgit/heco-energy/internal/infrastructure/config"
	"github.com/acruzgit/heco-energy/internal/infrastructure/logging"
	"github.com/acruzgit/heco-energy/internal/interval"
)

// Terminal outcomes for a processed file.
const (
	OutcomeImported = "imported"
	OutcomeFailed   = "failed"
)

// dirPermissions is the permission mode for created terminal directories.
const dirPermissions = 0750

// Sink accepts one batched write per successfully parsed file.
//
// The write is synchronous: it must not return until the batch is durably
// accepted, because the caller relocates the source file on success.
type Sink interface {
	WriteSamples(ctx context.Context, batch interval.Batch) (int, error)
}

// Recorder persists terminal file outcomes (the SQLite history ledger).
// Implementations are optional and strictly best-effort: a Record error is
// logged and ignored.
type Recorder interface {
	Record(ctx context.Context, file, outcome string, points int, errText string) error
}

// Notifier announces terminal file outcomes (the MQTT result topic).
// Implementations are optional and strictly best-effort.
type Notifier interface {
	NotifyResult(file, outcome string, points int, errText string) error
}

// Options configures a Pipeline.
type Options struct {
	// Config supplies the three directories and the poll interval.
	Config config.ImporterConfig

	// Parser extracts samples from candidate files.
	Parser *interval.FileParser

	// Sink receives one batched write per parsed file.
	Sink Sink

	// Recorder is the optional outcome ledger (may be nil).
	Recorder Recorder

	// Notifier is the optional outcome notifier (may be nil).
	Notifier Notifier

	// Logger defaults to logging.Default() when nil.
	Logger *logging.Logger
}

// Pipeline drives the file lifecycle: poll the incoming directory, parse
// each candidate, write its batch to the sink, and relocate the file to a
// terminal directory.
//
// Files are processed strictly sequentially — one file is fully resolved
// before the next is considered. There is no claim table: moving a file
// out of incoming is the single atomic "no longer pending" signal, so a
// restart simply re-lists incoming and finds only genuinely unprocessed
// files.
type Pipeline struct {
	cfg      config.ImporterConfig
	parser   *interval.FileParser
	sink     Sink
	recorder Recorder
	notifier Notifier
	log      *logging.Logger
}

// New creates a Pipeline from options.
//
// Returns:
//   - *Pipeline: Ready to Run
//   - error: If a required collaborator is missing
func New(opts Options) (*Pipeline, error) {
	if opts.Parser == nil {
		return nil, errors.New("importer: parser is required")
	}
	if opts.Sink == nil {
		return nil, errors.New("importer: sink is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}

	return &Pipeline{
		cfg:      opts.Config,
		parser:   opts.Parser,
		sink:     opts.Sink,
		recorder: opts.Recorder,
		notifier: opts.Notifier,
		log:      log.With("component", "importer"),
	}, nil
}

// Run polls the incoming directory until ctx is cancelled.
//
// The terminal directories are created if absent before the first sweep.
// Cancellation is checked between sweeps, never mid-file: once a file's
// processing starts it is fully resolved.
//
// Parameters:
//   - ctx: Stop signal; cancelling ends the loop after the current sweep
//
// Returns:
//   - error: If the directories cannot be created; nil on cancellation
func (p *Pipeline) Run(ctx context.Context) error {
	if err := p.ensureDirs(); err != nil {
		return err
	}

	p.log.Info("watching incoming directory",
		"incoming", p.cfg.IncomingDir,
		"poll_interval", p.cfg.PollInterval,
	)

	pause := time.Duration(p.cfg.PollInterval) * time.Second
	for {
		p.Sweep(ctx)

		select {
		case <-ctx.Done():
			p.log.Info("stopping importer")
			return nil
		case <-time.After(pause):
		}
	}
}

// Sweep performs one pass over the incoming directory's current contents.
//
// Plain files with a recognised extension are processed sequentially;
// directories and other extensions are ignored entirely — left untouched,
// not routed to failed.
func (p *Pipeline) Sweep(ctx context.Context) {
	entries, err := os.ReadDir(p.cfg.IncomingDir)
	if err != nil {
		p.log.Error("listing incoming directory", "dir", p.cfg.IncomingDir, "error", err)
		return
	}

	for _, entry := range entries {
		if !isCandidate(entry) {
			continue
		}
		p.processFile(ctx, entry.Name())
	}
}

// isCandidate reports whether a directory entry should be processed.
// Accepted extensions are case-insensitive .csv and .txt.
func isCandidate(entry os.DirEntry) bool {
	if entry.IsDir() {
		return false
	}
	name := strings.ToLower(entry.Name())
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".txt")
}

// processFile resolves one file end to end: parse, write, relocate.
//
// Relocation is best-effort. If the move to a terminal directory fails the
// error is logged and the file stays in incoming for the next sweep; for an
// already-written batch that re-attempt is safe because sink points are
// keyed by measurement, tag and timestamp, so a rewrite overwrites.
func (p *Pipeline) processFile(ctx context.Context, name string) {
	src := filepath.Join(p.cfg.IncomingDir, name)

	points, err := p.importFile(ctx, src)
	if err == nil {
		dest := filepath.Join(p.cfg.ProcessedDir, name)
		if moveErr := os.Rename(src, dest); moveErr != nil {
			p.log.Error("relocating to processed", "file", name, "error", moveErr)
			return
		}
		p.log.Info("imported", "file", name, "points", points)
		p.recordOutcome(ctx, name, OutcomeImported, points, "")
		return
	}

	dest := filepath.Join(p.cfg.FailedDir, name)
	if moveErr := os.Rename(src, dest); moveErr != nil {
		p.log.Error("relocating to failed", "file", name, "error", moveErr)
	}
	p.log.Error("import failed", "file", name, "error", err)
	p.recordOutcome(ctx, name, OutcomeFailed, 0, err.Error())
}

// importFile parses one file and writes its batch to the sink.
//
// A zero-sample batch is a valid result: the write call is skipped and
// zero points reported, which still counts as success.
func (p *Pipeline) importFile(ctx context.Context, path string) (int, error) {
	batch, err := p.parser.ParseFile(path)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}
	return p.sink.WriteSamples(ctx, batch)
}

// recordOutcome reports a terminal outcome to the optional ledger and
// notifier. Both are best-effort; failures are logged and ignored.
func (p *Pipeline) recordOutcome(ctx context.Context, file, outcome string, points int, errText string) {
	if p.recorder != nil {
		if err := p.recorder.Record(ctx, file, outcome, points, errText); err != nil {
			p.log.Warn("recording import history", "file", file, "error", err)
		}
	}
	if p.notifier != nil {
		if err := p.notifier.NotifyResult(file, outcome, points, errText); err != nil {
			p.log.Warn("publishing import result", "file", file, "error", err)
		}
	}
}

// ensureDirs creates the incoming and terminal directories if absent.
func (p *Pipeline) ensureDirs() error {
	for _, dir := range []string{p.cfg.IncomingDir, p.cfg.ProcessedDir, p.cfg.FailedDir} {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}
