// Package filehash streams files and readers through the ctph engine.
//
// It owns the read loop (pooled buffers, cancellation between reads), the
// optional size declaration taken from stat, and the sequential-access hint
// given to the kernel on Linux. Each call hashes with its own engine, so the
// functions are safe to call from many goroutines.
package filehash
