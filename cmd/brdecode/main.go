// Command brdecode decodes obfuscated BRD board files back to plain text.
//
// It parses flags, validates configuration, and then either inspects
// inputs (--check), runs the interactive shell (--interactive), or runs the
// batch decode pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/backmassage/brdecode/internal/check"
	"github.com/backmassage/brdecode/internal/config"
	"github.com/backmassage/brdecode/internal/display"
	"github.com/backmassage/brdecode/internal/interactive"
	"github.com/backmassage/brdecode/internal/logging"
	"github.com/backmassage/brdecode/internal/pipeline"
	"github.com/backmassage/brdecode/internal/report"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "brdecode: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "brdecode: %v\n", err)
		return 1
	}
	if cfg.ReportPath != "" {
		if _, err := report.FormatFor(cfg.ReportPath); err != nil {
			fmt.Fprintf(os.Stderr, "brdecode: %v\n", err)
			return 1
		}
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "brdecode: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	display.PrintBanner(os.Stdout)
	if cfg.ConfigFile != "" {
		log.Debug(cfg.Verbose, "Config file: %s", cfg.ConfigFile)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	if err := validateOutputPaths(&cfg); err != nil {
		log.Error("%v", err)
		log.Error("Set a suffix or choose a different output directory")
		return 1
	}

	// Phase 3: Signal handling. Cancel on SIGINT/SIGTERM so the pipeline
	// stops between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file...")
		cancel()
	}()

	if cfg.Interactive {
		s := interactive.NewSession(interactive.Options{
			OutputDir: cfg.OutputDir,
			Suffix:    cfg.Suffix,
			Overwrite: cfg.Overwrite,
			DryRun:    cfg.DryRun,
		})
		// Unblock the pending stdin read on interrupt.
		go func() {
			<-ctx.Done()
			os.Stdin.Close()
		}()
		if err := s.Shell(ctx, os.Stdin, os.Stdout, log); err != nil && ctx.Err() == nil {
			log.Error("%v", err)
			return 1
		}
		return 0
	}

	log.Info("=== brdecode v%s (%s) ===", version, commit)

	// Phase 4: Run pipeline (resolve → decode → validate → write).
	stats, outcomes := pipeline.Run(ctx, &cfg, log)

	if cfg.ReportPath != "" {
		if err := report.Write(cfg.ReportPath, stats, outcomes); err != nil {
			log.Error("%v", err)
			return 1
		}
		log.Info("Report written: %s", cfg.ReportPath)
	}

	if stats.Errored > 0 {
		return 1
	}
	return 0
}

// validateOutputPaths rejects an empty suffix when any directory input
// would be written back into itself.
func validateOutputPaths(cfg *config.Config) error {
	if cfg.Suffix != "" {
		return nil
	}
	outputAbs, err := absPath(cfg.OutputDir)
	if err != nil {
		// Not created yet, so it cannot be any existing input directory.
		return nil
	}
	for _, in := range cfg.Inputs {
		fi, err := os.Stat(in)
		if err != nil || !fi.IsDir() {
			continue
		}
		inputAbs, err := absPath(in)
		if err != nil {
			continue
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			return err
		}
	}
	return nil
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input and output directories.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
