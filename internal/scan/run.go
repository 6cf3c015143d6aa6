package scan

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"fuzzyhash/internal/filehash"
	"fuzzyhash/internal/logging"
)

// Outcome is the result of hashing one walked file.
type Outcome struct {
	Entry  Entry
	Result filehash.Result
	Err    error
}

// Summary totals a completed run.
type Summary struct {
	Files    int
	Failures int
	Bytes    int64
	Elapsed  time.Duration
}

// Run walks roots and hashes every selected file on opts.Workers goroutines.
// sink is called once per file, in completion order, from the calling
// goroutine; a sink error stops the run and is returned. Cancelling ctx stops
// the run and returns ctx.Err().
func Run(ctx context.Context, roots []string, opts Options, sink func(Outcome) error) (Summary, error) {
	started := time.Now()
	logger := logging.NewComponentLogger(logging.WithContext(ctx, opts.Logger), "scan")

	var entries []Entry
	if err := Walk(ctx, roots, opts, func(e Entry) error {
		entries = append(entries, e)
		return nil
	}); err != nil {
		return Summary{}, err
	}
	logger.Info("scan started", slog.Int("files", len(entries)), slog.Int("workers", workerCount(opts.Workers, len(entries))))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan Entry)
	outcomes := make(chan Outcome)
	var wg sync.WaitGroup
	for w := 0; w < workerCount(opts.Workers, len(entries)); w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			wlog := logger.With(slog.Int(logging.FieldWorker, worker))
			for entry := range jobs {
				res, err := filehash.HashFile(ctx, entry.Path, opts.Hash)
				if err != nil && !errors.Is(err, context.Canceled) {
					wlog.Debug("hash failed", slog.String(logging.FieldPath, entry.Path), logging.Error(err))
				}
				select {
				case outcomes <- Outcome{Entry: entry, Result: res, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}(w)
	}

	go func() {
		defer close(jobs)
		for _, entry := range entries {
			select {
			case jobs <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var summary Summary
	var runErr error
	sampler := logging.NewProgressSampler(10)
	for outcome := range outcomes {
		if runErr != nil {
			continue
		}
		if outcome.Err != nil && ctx.Err() != nil {
			continue
		}
		summary.Files++
		if outcome.Err != nil {
			summary.Failures++
		} else {
			summary.Bytes += outcome.Result.Size
		}
		if err := sink(outcome); err != nil {
			runErr = err
			cancel()
			continue
		}
		if sampler.ShouldLog(summary.Files, len(entries)) {
			logger.Info("scan progress", slog.Int("done", summary.Files), slog.Int("total", len(entries)), slog.Int("failures", summary.Failures))
		}
	}
	summary.Elapsed = time.Since(started)

	if runErr != nil {
		return summary, runErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	logger.Info("scan finished",
		slog.Int("files", summary.Files),
		slog.Int("failures", summary.Failures),
		slog.Int64("bytes", summary.Bytes),
		slog.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func workerCount(configured, jobs int) int {
	n := configured
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if jobs < n {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
