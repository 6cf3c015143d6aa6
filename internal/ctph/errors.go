package ctph

import "errors"

var (
	// ErrSizeOverflow reports an input longer than the largest size a digest
	// can represent.
	ErrSizeOverflow = errors.New("input exceeds maximum digest size")
	// ErrFixedSizeMismatch reports a declared total size that differs from the
	// number of bytes actually hashed, or a conflicting second declaration.
	ErrFixedSizeMismatch = errors.New("hashed size does not match declared size")
	// ErrInvariant reports corrupted engine state. It is never caused by input
	// data and should not be retried.
	ErrInvariant = errors.New("ctph internal invariant violated")
	// ErrMalformedDigest reports a digest string that does not parse.
	ErrMalformedDigest = errors.New("malformed digest")
)
