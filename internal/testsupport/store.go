package testsupport

import (
	"context"
	"testing"

	"fuzzyhash/internal/config"
	"fuzzyhash/internal/filehash"
	"fuzzyhash/internal/sigstore"
)

// MustOpenStore opens a sigstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *sigstore.Store {
	t.Helper()

	store, err := sigstore.Open(cfg)
	if err != nil {
		t.Fatalf("sigstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustHashFile writes data to path, hashes it, and returns the result.
func MustHashFile(t testing.TB, path string, data []byte) filehash.Result {
	t.Helper()

	WriteFile(t, path, data)
	res, err := filehash.HashFile(context.Background(), path, filehash.Options{})
	if err != nil {
		t.Fatalf("filehash.HashFile: %v", err)
	}
	return res
}
