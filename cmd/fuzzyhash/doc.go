// Package main hosts the fuzzyhash CLI entrypoint and command graph.
//
// The Cobra command tree hashes files and standard input, scans directory
// trees into the signature catalog, and lists or prunes what the catalog
// holds. Configuration resolution and logger construction happen once in the
// shared command context so subcommands only deal with their own flags.
//
// Keep this package lean: hashing, traversal, and persistence live in the
// internal packages and are surfaced here through dedicated commands.
package main
