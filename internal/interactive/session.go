// Package interactive drives single-file inspect and decode requests, both
// programmatically through Session and from a line-oriented shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/backmassage/brdecode/internal/check"
	"github.com/backmassage/brdecode/internal/pipeline"
)

// ErrBusy is returned by Decode while another decode is in flight.
var ErrBusy = errors.New("a decode is already in progress")

// Options configure a Session.
type Options struct {
	OutputDir string // Empty: write beside the source.
	Suffix    string // Used to derive dst when Decode is given none.
	Overwrite bool
	DryRun    bool // Decode and validate, write nothing.
}

// Session serves inspect and decode requests for one user. At most one
// decode runs at a time; Inspect is read-only and never blocked.
type Session struct {
	opts Options
	busy atomic.Bool
}

// NewSession returns a Session with opts.
func NewSession(opts Options) *Session {
	return &Session{opts: opts}
}

// Inspect reports on path without writing anything.
func (s *Session) Inspect(path string) (check.Report, error) {
	return check.Inspect(path)
}

// Decode runs the full pipeline for exactly one file. An empty dst is
// derived from the session's output directory and suffix; that directory
// is created on first use. It fails fast with ErrBusy if another Decode has
// not returned yet.
func (s *Session) Decode(ctx context.Context, src, dst string) (pipeline.Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return pipeline.Outcome{Source: src, Destination: dst}, ErrBusy
	}
	defer s.busy.Store(false)

	if dst == "" {
		dst = pipeline.OutputPath(src, s.opts.OutputDir, s.opts.Suffix)
		if s.opts.OutputDir != "" && !s.opts.DryRun {
			if err := os.MkdirAll(s.opts.OutputDir, 0o755); err != nil {
				o := pipeline.Outcome{
					Source:      src,
					Destination: dst,
					State:       pipeline.StateErrored,
					Err:         fmt.Errorf("%w: create output directory: %w", pipeline.ErrIOFailure, err),
				}
				return o, o.Err
			}
		}
	}
	o := pipeline.ProcessFile(ctx, src, dst, pipeline.Options{
		Overwrite: s.opts.Overwrite,
		DryRun:    s.opts.DryRun,
	})
	return o, o.Err
}
