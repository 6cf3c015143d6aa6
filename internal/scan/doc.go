// Package scan walks directory trees and hashes the files it finds on a pool of
// workers.
//
// Walk applies the traversal filters from configuration (hidden entries,
// symlinks, size bounds, exclude patterns). Run feeds the walked files to
// Options.Workers goroutines, each hashing with its own engine, and hands
// every outcome to a sink on the caller's goroutine. A file that fails to hash
// is reported as an Outcome with Err set; the run keeps going.
package scan
