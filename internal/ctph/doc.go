// Package ctph computes context-triggered piecewise hashes (ssdeep-style
// fuzzy digests) over byte streams.
//
// A Hash is fed incrementally through Update or its io.Writer methods and
// finalized with Digest, which yields "<blocksize>:<digest>:<digest>" drawn
// from a 64-symbol alphabet. Inputs differing by small edits produce digests
// that differ only near the edit, because segment boundaries are chosen by a
// rolling checksum over the content rather than by byte offsets.
//
// The engine tracks 32 block sizes (3 << i) at once and keeps only the window
// of resolutions that can still represent the input: finer sizes are forked
// lazily the first time they trigger and coarse-enough ones retire the older
// ones once their digests fill up. Memory use is constant in the input size.
//
// The package performs no I/O and no logging. A Hash is not safe for
// concurrent use; hash independent streams with independent values.
package ctph
