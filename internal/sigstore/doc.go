// Package sigstore persists fuzzy-hash signatures in a SQLite catalog.
//
// The catalog lives at <data_dir>/signatures.db and records one row per file
// path together with the scan run that last hashed it. Writers serialize on
// an advisory file lock so that two scans never interleave their updates.
package sigstore
