package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"fuzzyhash/internal/filehash"
	"fuzzyhash/internal/logging"
	"fuzzyhash/internal/sigstore"
)

const stdinName = "-"

func newHashCommand(ctx *commandContext) *cobra.Command {
	var declareSize bool
	var record bool
	var noHeader bool

	cmd := &cobra.Command{
		Use:   "hash [files...]",
		Short: "Print fuzzy hashes of files or standard input",
		Long:  "Print one digest,\"path\" line per input. With no arguments, or with -, standard input is hashed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "hash")

			opts := filehash.Options{
				BufferSize:  cfg.Hashing.ReadBufferSize,
				DeclareSize: cfg.Hashing.DeclareSize,
			}
			if cmd.Flags().Changed("declare-size") {
				opts.DeclareSize = declareSize
			}
			if len(args) == 0 {
				args = []string{stdinName}
			}

			var store *sigstore.Store
			if record {
				lock, err := sigstore.AcquireWriter(cfg)
				if err != nil {
					return err
				}
				defer lock.Release()
				store, err = sigstore.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			out := cmd.OutOrStdout()
			if !noHeader {
				fmt.Fprintln(out, digestHeader)
			}
			failed := 0
			for _, arg := range args {
				digest, err := hashInput(cmd.Context(), cmd, arg, opts, store)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return err
					}
					failed++
					logger.Warn("hash failed", slog.String(logging.FieldPath, arg), logging.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "fuzzyhash: %v\n", err)
					continue
				}
				fmt.Fprintln(out, digestLine(digest, arg))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs could not be hashed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&declareSize, "declare-size", false, "Declare file sizes to the engine before hashing (default from config)")
	cmd.Flags().BoolVar(&record, "record", false, "Also store file digests in the signature catalog")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Omit the ssdeep header line")
	return cmd
}

func hashInput(ctx context.Context, cmd *cobra.Command, arg string, opts filehash.Options, store *sigstore.Store) (string, error) {
	if arg == stdinName {
		digest, _, err := filehash.HashReader(ctx, cmd.InOrStdin(), -1, opts)
		if err != nil {
			return "", fmt.Errorf("hash stdin: %w", err)
		}
		return digest, nil
	}
	res, err := filehash.HashFile(ctx, arg, opts)
	if err != nil {
		return "", err
	}
	if store != nil {
		abs, absErr := absPath(arg)
		if absErr != nil {
			return "", absErr
		}
		res.Path = abs
		if err := store.Record(ctx, "", res); err != nil {
			return "", err
		}
	}
	return res.Digest, nil
}
