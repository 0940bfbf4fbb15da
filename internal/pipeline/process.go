package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/backmassage/brdecode/internal/codec"
	"github.com/backmassage/brdecode/internal/validate"
)

// Options are the per-file settings shared by batch and interactive runs.
type Options struct {
	Overwrite bool // Replace an existing output instead of skipping.
	DryRun    bool // Read, decode and validate, but write nothing.
}

// ProcessFile runs one input through the decode pipeline and returns its
// outcome:
//
//   - dst exists and Overwrite is off → StateSkipped, src is never read.
//   - src has no signature → StateCopied, src bytes written verbatim.
//   - src is encoded → decoded, validated (report only), written; StateDecoded.
//   - any read or write failure → StateErrored with Err wrapping
//     ErrNotFound or ErrIOFailure.
//
// ctx is checked once before any I/O; a decode that has started always
// runs to completion so the output is never partial.
func ProcessFile(ctx context.Context, src, dst string, opts Options) Outcome {
	o := Outcome{Source: src, Destination: dst}

	if err := ctx.Err(); err != nil {
		o.State = StateErrored
		o.Err = err
		return o
	}

	if !opts.Overwrite {
		if _, err := os.Lstat(dst); err == nil {
			o.State = StateSkipped
			return o
		}
	}

	data, err := os.ReadFile(src)
	if err != nil {
		o.State = StateErrored
		if errors.Is(err, fs.ErrNotExist) {
			o.Err = fmt.Errorf("%w: %s", ErrNotFound, src)
		} else {
			o.Err = fmt.Errorf("%w: read: %w", ErrIOFailure, err)
		}
		return o
	}
	o.Size = int64(len(data))

	out := data
	o.State = StateCopied
	if codec.IsEncoded(data) {
		o.Encoded = true
		out = codec.DecodeBuffer(data)
		v := validate.Validate(out)
		o.Verdict = &v
		o.State = StateDecoded
	}

	if opts.DryRun {
		return o
	}
	if err := WriteFileAtomic(dst, out); err != nil {
		o.State = StateErrored
		o.Err = fmt.Errorf("%w: %w", ErrIOFailure, err)
		return o
	}
	o.Written = true
	return o
}
