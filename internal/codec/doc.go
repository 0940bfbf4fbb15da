// Package codec detects the BRD obfuscation signature and reverses the
// per-byte transform applied to encoded board files.
//
// Everything here is pure and operates on in-memory buffers: no I/O, no
// errors. Every front end (batch runner, inspect mode, interactive shell)
// goes through [DecodeBuffer] so there is exactly one implementation of the
// transform.
//
// The mapping applied to each non-control byte is
//
//	x = ^(((c >> 6) & 3) | (c << 2))
//
// truncated to 8 bits. The two high bits pushed out by the shift come back
// in through the ORed (c >> 6) term, so the result equals the complement of
// an 8-bit left rotate by two. The expression is kept in this form.
package codec
