package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/brdecode/internal/config"
	"github.com/backmassage/brdecode/internal/display"
	"github.com/backmassage/brdecode/internal/logging"
)

// job is one resolved input with its final output path.
type job struct {
	index int
	src   string
	dst   string
}

// Run is the top-level batch entry point. It resolves cfg.Inputs, processes
// each file (up to cfg.Jobs at a time), logs each outcome as it completes,
// and returns aggregate stats plus the outcomes in input order. Missing or
// unreadable literal inputs are reported as errored outcomes; arguments
// that match nothing only produce warnings.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, []Outcome) {
	start := time.Now()
	rec := &statsRecorder{stats: RunStats{RunID: uuid.NewString()}}

	res := Resolve(cfg.Inputs, DiscoverOptions{
		Extensions: cfg.Extensions,
		Recursive:  cfg.Recursive,
		Suffix:     cfg.Suffix,
	})
	for _, w := range res.Warnings {
		log.Warn("%s", w)
	}

	total := len(res.Missing) + len(res.Failed) + len(res.Files)
	logBatchHeader(cfg, log, rec.stats.RunID, total)

	if cfg.OutputDir != "" && !cfg.DryRun {
		// A failure here surfaces per file as a write error.
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %v", err)
		}
	}

	outcomes := make([]Outcome, total)
	done := make([]bool, total)
	var reportMu sync.Mutex
	report := func(i int, o Outcome) {
		rec.record(o)
		reportMu.Lock()
		defer reportMu.Unlock()
		outcomes[i] = o
		done[i] = true
		logOutcome(cfg, log, o, i+1, total)
	}

	for i, path := range res.Missing {
		report(i, Outcome{
			Source: path,
			State:  StateErrored,
			Err:    fmt.Errorf("%w: %s", ErrNotFound, path),
		})
	}

	for i, f := range res.Failed {
		report(len(res.Missing)+i, Outcome{
			Source: f.Path,
			State:  StateErrored,
			Err:    fmt.Errorf("%w: stat: %w", ErrIOFailure, f.Err),
		})
	}
	first := len(res.Missing) + len(res.Failed)

	resolver := NewCollisionResolver()
	for _, path := range res.Files {
		resolver.Reserve(path)
	}
	jobs := make([]job, len(res.Files))
	for i, path := range res.Files {
		dst := OutputPath(path, cfg.OutputDir, cfg.Suffix)
		jobs[i] = job{index: first + i, src: path, dst: resolver.Resolve(path, dst)}
	}

	opts := Options{Overwrite: cfg.Overwrite, DryRun: cfg.DryRun}
	var g errgroup.Group
	g.SetLimit(max(cfg.Jobs, 1))
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if o, started := processJob(ctx, j, opts); started {
				report(j.index, o)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in outcomes

	stats := rec.snapshot()
	stats.Elapsed = time.Since(start)
	if ctx.Err() != nil {
		stats.Interrupted = true
		log.Warn("Interrupted: %d of %d files not processed", total-stats.Total, total)
	}

	finished := make([]Outcome, 0, total)
	for i, o := range outcomes {
		if done[i] {
			finished = append(finished, o)
		}
	}

	logSummary(log, &stats)
	return stats, finished
}

// processJob runs j unless the run was cancelled before the file was
// started. A file that never started is not an outcome, so started is
// false and nothing is recorded for it.
func processJob(ctx context.Context, j job, opts Options) (o Outcome, started bool) {
	if ctx.Err() != nil {
		return Outcome{}, false
	}
	o = ProcessFile(ctx, j.src, j.dst, opts)
	if o.State == StateErrored && ctx.Err() != nil && errors.Is(o.Err, ctx.Err()) {
		return Outcome{}, false
	}
	return o, true
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, runID string, total int) {
	log.Info("Found %d files", total)
	log.Debug(cfg.Verbose, "Run ID: %s", runID)
	if cfg.OutputDir != "" {
		log.Info("Output directory: %s", cfg.OutputDir)
	} else {
		log.Info("Output: beside each input")
	}
	log.Info("Suffix: %s", cfg.Suffix)
	if cfg.Overwrite {
		log.Info("Existing outputs: overwrite")
	} else {
		log.Info("Existing outputs: skip")
	}
	if cfg.Jobs > 1 {
		log.Info("Workers: %d", cfg.Jobs)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN - no files will be written")
	}
	log.Blank()
}

func logOutcome(cfg *config.Config, log *logging.Logger, o Outcome, n, total int) {
	name := filepath.Base(o.Source)
	log.Info("[%d/%d] %s", n, total, name)

	switch o.State {
	case StateSkipped:
		log.Warn("  Skip (exists): %s", filepath.Base(o.Destination))
	case StateCopied:
		if o.Written {
			log.Warn("  Not encoded, copied unchanged -> %s", filepath.Base(o.Destination))
		} else {
			log.Warn("  Not encoded [DRY] would copy -> %s", filepath.Base(o.Destination))
		}
	case StateDecoded:
		if o.Written {
			log.Success("  Decoded -> %s (%s)", filepath.Base(o.Destination), display.FormatBytes(o.Size))
		} else {
			log.Success("  [DRY] Would decode -> %s (%s)", filepath.Base(o.Destination), display.FormatBytes(o.Size))
		}
		logVerdict(cfg, log, o)
	case StateErrored:
		log.Error("  %s: %v", name, o.Err)
	}
}

func logVerdict(cfg *config.Config, log *logging.Logger, o Outcome) {
	v := o.Verdict
	if v == nil {
		return
	}
	log.Debug(cfg.Verbose, "  Sections found: %s", display.FormatList(v.Keywords))
	log.Debug(cfg.Verbose, "  Printable ratio: %s, lines: %d", display.FormatRatio(v.PrintableRatio), v.Lines)
	if !v.Plausible {
		log.Warn("  Decoded content does not look like BRD (sections: %s, printable: %s)",
			display.FormatList(v.Keywords), display.FormatRatio(v.PrintableRatio))
	}
}

func logSummary(log *logging.Logger, stats *RunStats) {
	log.Blank()
	log.Info("==============================")
	log.Info("BATCH PROCESSING COMPLETE")
	log.Info("==============================")
	log.Info("Total files processed: %d", stats.Total)
	log.Info("Encoded files found:   %d", stats.Encoded)
	log.Info("Successfully decoded:  %d", stats.Decoded)
	log.Info("Copied unchanged:      %d", stats.Copied)
	log.Info("Skipped files:         %d", stats.Skipped)
	if stats.Errored > 0 {
		log.Error("Errors:                %d", stats.Errored)
	} else {
		log.Info("Errors:                %d", stats.Errored)
	}
	if stats.Total > 0 {
		log.Info("Success rate:          %s", display.FormatPercent(stats.Decoded, stats.Total))
	}
	if stats.Decoded > 0 && stats.Plausible < stats.Decoded {
		log.Warn("Questionable decodes:  %d", stats.Decoded-stats.Plausible)
	}
	log.Info("Processing time:       %.2f seconds", stats.Elapsed.Seconds())
}
