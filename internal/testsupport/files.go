package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Bytes returns n deterministic pseudo-random bytes for seed. Equal arguments
// always give equal output, so digests of the result are stable.
func Bytes(n int, seed uint32) []byte {
	out := make([]byte, n)
	s := seed
	if s == 0 {
		s = 1
	}
	for i := range out {
		s ^= s << 13
		s ^= s >> 17
		s ^= s << 5
		out[i] = byte(s >> 24)
	}
	return out
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
