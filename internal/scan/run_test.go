package scan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fuzzyhash/internal/ctph"
	"fuzzyhash/internal/scan"
	"fuzzyhash/internal/testsupport"
)

func TestRunHashesEveryFile(t *testing.T) {
	root := t.TempDir()
	want := map[string]string{}
	for i := 0; i < 20; i++ {
		data := testsupport.Bytes(1000+i*517, uint32(i+1))
		path := filepath.Join(root, "dir", string(rune('a'+i))+".bin")
		testsupport.WriteFile(t, path, data)
		digest, err := ctph.Sum(data)
		if err != nil {
			t.Fatalf("Sum: %v", err)
		}
		want[path] = digest
	}

	for _, workers := range []int{1, 4} {
		got := map[string]string{}
		summary, err := scan.Run(context.Background(), []string{root}, scan.Options{Workers: workers}, func(o scan.Outcome) error {
			if o.Err != nil {
				t.Errorf("unexpected failure for %s: %v", o.Entry.Path, o.Err)
				return nil
			}
			got[o.Result.Path] = o.Result.Digest
			return nil
		})
		if err != nil {
			t.Fatalf("Run(workers=%d): %v", workers, err)
		}
		if summary.Files != len(want) || summary.Failures != 0 {
			t.Fatalf("summary = %+v, want %d files", summary, len(want))
		}
		for path, digest := range want {
			if got[path] != digest {
				t.Errorf("workers=%d %s: digest %q, want %q", workers, path, got[path], digest)
			}
		}
	}
}

func TestRunReportsPerFileFailures(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "ok.bin"), testsupport.Bytes(500, 7))
	locked := filepath.Join(root, "locked.bin")
	testsupport.WriteFile(t, locked, testsupport.Bytes(500, 8))
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	var failed []string
	summary, err := scan.Run(context.Background(), []string{root}, scan.Options{Workers: 2}, func(o scan.Outcome) error {
		if o.Err != nil {
			failed = append(failed, o.Entry.Path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Files != 2 || summary.Failures != 1 {
		t.Fatalf("summary = %+v, want 2 files with 1 failure", summary)
	}
	if len(failed) != 1 || failed[0] != locked {
		t.Fatalf("failed = %v, want [%s]", failed, locked)
	}
}

func TestRunStopsOnSinkError(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		testsupport.WriteFile(t, filepath.Join(root, string(rune('a'+i))), testsupport.Bytes(64, uint32(i+1)))
	}
	stop := errors.New("stop")

	calls := 0
	_, err := scan.Run(context.Background(), []string{root}, scan.Options{Workers: 3}, func(scan.Outcome) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Run error = %v, want %v", err, stop)
	}
	if calls != 1 {
		t.Fatalf("sink called %d times, want 1", calls)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(root, "a"), []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := scan.Run(ctx, []string{root}, scan.Options{}, func(scan.Outcome) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}

func TestRunEmptyTree(t *testing.T) {
	summary, err := scan.Run(context.Background(), []string{t.TempDir()}, scan.Options{}, func(scan.Outcome) error {
		t.Fatal("sink called for empty tree")
		return nil
	})
	if err != nil || summary.Files != 0 {
		t.Fatalf("Run = %+v, %v", summary, err)
	}
}
