package pipeline

import "github.com/backmassage/brdecode/internal/validate"

// State is the terminal state of one input.
type State int

const (
	StateSkipped State = iota // Output already existed and overwrite is off.
	StateDecoded              // Signature found; decoded output written.
	StateCopied               // No signature; input copied unchanged.
	StateErrored              // Missing input or read/write failure.
)

func (s State) String() string {
	switch s {
	case StateSkipped:
		return "skipped"
	case StateDecoded:
		return "decoded"
	case StateCopied:
		return "copied"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Outcome is the per-file result. It is built once by [ProcessFile] (or
// for missing inputs by the runner) and not modified afterwards.
type Outcome struct {
	Source      string
	Destination string
	State       State
	Encoded     bool              // Signature detected.
	Written     bool              // Output file was written (false on skip, error, dry run).
	Size        int64             // Input size in bytes; 0 when never read.
	Verdict     *validate.Verdict // Set for decoded inputs only.
	Err         error             // Wraps ErrNotFound or ErrIOFailure when State is StateErrored.
}
