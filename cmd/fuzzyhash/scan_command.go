package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"fuzzyhash/internal/logging"
	"fuzzyhash/internal/scan"
	"fuzzyhash/internal/sigstore"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var workers int
	var printDigests bool

	cmd := &cobra.Command{
		Use:   "scan <paths...>",
		Short: "Hash directory trees into the signature catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			roots := make([]string, 0, len(args))
			for _, arg := range args {
				abs, err := absPath(arg)
				if err != nil {
					return err
				}
				roots = append(roots, abs)
			}

			lock, err := sigstore.AcquireWriter(cfg)
			if err != nil {
				return err
			}
			defer lock.Release()

			store, err := sigstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.BeginRun(cmd.Context(), roots)
			if err != nil {
				return err
			}
			runCtx := logging.WithRunID(cmd.Context(), run.ID)

			opts := scan.OptionsFromConfig(cfg, logger)
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			if printDigests {
				fmt.Fprintln(out, digestHeader)
			}
			summary, err := scan.Run(runCtx, roots, opts, func(o scan.Outcome) error {
				if o.Err != nil {
					fmt.Fprintf(errOut, "fuzzyhash: %v\n", o.Err)
					return nil
				}
				if printDigests {
					fmt.Fprintln(out, digestLine(o.Result.Digest, o.Result.Path))
				}
				return store.Record(runCtx, run.ID, o.Result)
			})
			if err != nil {
				logging.WithContext(runCtx, logger).Warn("scan aborted", logging.Error(err))
				return err
			}
			if err := store.FinishRun(context.WithoutCancel(runCtx), run.ID, summary.Files, summary.Failures); err != nil {
				return err
			}

			logging.WithContext(runCtx, logger).Debug("run recorded", slog.String("catalog", store.Path()))
			fmt.Fprintf(errOut, "Scanned %s files (%s) in %s, %s failed; run %s\n",
				formatCount(int64(summary.Files)),
				formatBytes(summary.Bytes),
				summary.Elapsed.Round(time.Millisecond),
				formatCount(int64(summary.Failures)),
				run.ID,
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Files hashed concurrently (default from config)")
	cmd.Flags().BoolVar(&printDigests, "print", false, "Print digest lines while scanning")
	return cmd
}

func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return abs, nil
}
