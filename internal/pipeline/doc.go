// Package pipeline orchestrates input resolution, per-file decoding, and
// batch summary reporting.
//
// A run goes resolve → derive output path → existence guard → read and
// classify → decode, validate and write. Every resolved input (and every
// literal input that does not exist) produces exactly one [Outcome], and
// each outcome is recorded exactly once in the [RunStats] returned by [Run].
//
// Per-file failures never abort the batch. Files may be processed
// concurrently (Config.Jobs); outputs are written through a temporary file
// and renamed into place, so an interrupted run never leaves a partial
// output behind.
package pipeline
