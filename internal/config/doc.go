// Package config loads, normalizes, and validates fuzzyhash configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// FUZZYHASH_DATA_DIR. The Config type centralizes every knob the CLI, the
// scanner, and the signature catalog need so they can be discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
