// Package logging assembles structured slog loggers for the fuzzyhash CLI and
// scanner.
//
// It owns the console and JSON handlers, fans records out to the terminal and
// the optional log file, and exposes context helpers so scan workers tag every
// line with the run identifier and worker index. Standard output is reserved
// for digests, so loggers write to stderr unless told otherwise.
//
// A no-op logger is provided for tests and for library callers that do not
// care about diagnostics.
package logging
