package pipeline

import "errors"

// Sentinel errors attached (wrapped) to errored outcomes. Use errors.Is.
var (
	// ErrNotFound: an explicitly named input does not exist.
	ErrNotFound = errors.New("input not found")
	// ErrIOFailure: reading the input or writing the output failed.
	ErrIOFailure = errors.New("i/o failure")
)
