// Package report serializes a finished run (statistics plus per-file
// outcomes) to JSON or YAML, chosen by the file extension.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/backmassage/brdecode/internal/pipeline"
	"github.com/backmassage/brdecode/internal/validate"
)

// ErrFormat is returned for report paths with an unsupported extension.
var ErrFormat = errors.New("unsupported report format")

// Format is a report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Report is the document written for one run.
type Report struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Stats       Stats     `json:"stats" yaml:"stats"`
	Files       []Entry   `json:"files" yaml:"files"`
}

// Stats mirrors pipeline.RunStats with stable field names.
type Stats struct {
	Total          int     `json:"total" yaml:"total"`
	Encoded        int     `json:"encoded" yaml:"encoded"`
	Decoded        int     `json:"decoded" yaml:"decoded"`
	Copied         int     `json:"copied" yaml:"copied"`
	Skipped        int     `json:"skipped" yaml:"skipped"`
	Errored        int     `json:"errored" yaml:"errored"`
	Plausible      int     `json:"plausible" yaml:"plausible"`
	BytesIn        int64   `json:"bytes_in" yaml:"bytes_in"`
	SuccessRate    float64 `json:"success_rate" yaml:"success_rate"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Interrupted    bool    `json:"interrupted,omitempty" yaml:"interrupted,omitempty"`
}

// Entry is one file's outcome.
type Entry struct {
	Source      string            `json:"source" yaml:"source"`
	Destination string            `json:"destination,omitempty" yaml:"destination,omitempty"`
	State       string            `json:"state" yaml:"state"`
	Encoded     bool              `json:"encoded" yaml:"encoded"`
	Written     bool              `json:"written" yaml:"written"`
	Size        int64             `json:"size" yaml:"size"`
	Verdict     *validate.Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// FormatFor picks the encoding from path's extension: .json, .yaml or .yml.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q (use .json, .yaml or .yml)", ErrFormat, path)
}

// Build assembles the report document for a run.
func Build(stats pipeline.RunStats, outcomes []pipeline.Outcome) Report {
	r := Report{
		RunID:       stats.RunID,
		GeneratedAt: time.Now().UTC(),
		Stats: Stats{
			Total:          stats.Total,
			Encoded:        stats.Encoded,
			Decoded:        stats.Decoded,
			Copied:         stats.Copied,
			Skipped:        stats.Skipped,
			Errored:        stats.Errored,
			Plausible:      stats.Plausible,
			BytesIn:        stats.BytesIn,
			SuccessRate:    stats.SuccessRate(),
			ElapsedSeconds: stats.Elapsed.Seconds(),
			Interrupted:    stats.Interrupted,
		},
		Files: make([]Entry, 0, len(outcomes)),
	}
	for _, o := range outcomes {
		e := Entry{
			Source:      o.Source,
			Destination: o.Destination,
			State:       o.State.String(),
			Encoded:     o.Encoded,
			Written:     o.Written,
			Size:        o.Size,
			Verdict:     o.Verdict,
		}
		if o.Err != nil {
			e.Error = o.Err.Error()
		}
		r.Files = append(r.Files, e)
	}
	return r
}

// Marshal encodes r in the given format.
func Marshal(r Report, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, format)
}

// Write builds the run report and writes it to path atomically.
func Write(path string, stats pipeline.RunStats, outcomes []pipeline.Outcome) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(Build(stats, outcomes), format)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := pipeline.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
