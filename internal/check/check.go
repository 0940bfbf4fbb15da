// Package check implements --check mode: a read-only inspection of each
// input that reports its signature, whether it is encoded, and how its
// (decoded) content scores against the BRD heuristics. Nothing is written.
package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/backmassage/brdecode/internal/codec"
	"github.com/backmassage/brdecode/internal/config"
	"github.com/backmassage/brdecode/internal/display"
	"github.com/backmassage/brdecode/internal/pipeline"
	"github.com/backmassage/brdecode/internal/validate"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Report describes one inspected file.
type Report struct {
	Path      string
	Size      int64
	Signature string // First four bytes as hex, or "N/A".
	Encoded   bool
	// Verdict scores the decoded content for encoded files, and the raw
	// content for plain ones (answering "is this already decoded BRD?").
	Verdict validate.Verdict
}

// Inspect reads path and reports on it without writing anything.
func Inspect(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", pipeline.ErrNotFound, path)
		}
		return Report{}, fmt.Errorf("%w: read: %w", pipeline.ErrIOFailure, err)
	}

	r := Report{
		Path:      path,
		Size:      int64(len(data)),
		Signature: codec.SignatureHex(data),
		Encoded:   codec.IsEncoded(data),
	}
	r.Verdict = validate.Validate(codec.DecodeBuffer(data))
	return r, nil
}

// RunCheck inspects every file cfg.Inputs resolves to and logs a report per
// file. It returns false if any input was missing or unreadable.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== File Check ===")

	res := pipeline.Resolve(cfg.Inputs, pipeline.DiscoverOptions{
		Extensions: cfg.Extensions,
		Recursive:  cfg.Recursive,
		Suffix:     cfg.Suffix,
	})
	for _, w := range res.Warnings {
		log.Warn("%s", w)
	}

	ok := true
	for _, path := range res.Missing {
		log.Error("File not found: %s", path)
		ok = false
	}
	for _, f := range res.Failed {
		log.Error("Cannot read %s: %v", f.Path, f.Err)
		ok = false
	}

	var encoded int
	for _, path := range res.Files {
		r, err := Inspect(path)
		if err != nil {
			log.Error("%v", err)
			ok = false
			continue
		}
		if r.Encoded {
			encoded++
		}
		LogReport(cfg.Verbose, log, r)
	}

	log.Info("Checked %d files, %d encoded", len(res.Files), encoded)
	return ok
}

// LogReport writes the lines describing r.
func LogReport(verbose bool, log Logger, r Report) {
	log.Info("%s", r.Path)
	log.Info("  Size: %s, signature: %s", display.FormatBytes(r.Size), r.Signature)

	v := r.Verdict
	switch {
	case r.Encoded && v.Plausible:
		log.Success("  Encoded BRD; decodes to valid content")
	case r.Encoded:
		log.Warn("  Encoded signature, but decoded content does not look like BRD")
	case v.Plausible:
		log.Success("  Not encoded; already looks like decoded BRD")
	default:
		log.Warn("  Not encoded and not recognized as BRD")
	}
	log.Info("  Sections: %s", display.FormatList(v.Keywords))
	log.Info("  Printable: %s, lines: %d", display.FormatRatio(v.PrintableRatio), v.Lines)
	log.Debug(verbose, "  Plausible threshold: > %s printable with at least one section", display.FormatRatio(validate.PlausibleRatio))
}
