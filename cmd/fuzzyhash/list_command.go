package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fuzzyhash/internal/sigstore"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var opts sigstore.ListOptions
	var plain bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued signatures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := sigstore.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			sigs, err := store.List(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, signatureViews(sigs))
			}

			out := cmd.OutOrStdout()
			if len(sigs) == 0 {
				if !plain {
					fmt.Fprintln(out, "No signatures catalogued")
				}
				return nil
			}
			if plain || !isTerminal(out) {
				rows := make([][]string, 0, len(sigs))
				for _, sig := range sigs {
					rows = append(rows, []string{sig.Path, strconv.FormatInt(sig.Size, 10), sig.Digest})
				}
				writeTSV(out, rows)
				return nil
			}

			rows := make([][]string, 0, len(sigs))
			for _, sig := range sigs {
				rows = append(rows, []string{
					sig.Path,
					formatBytes(sig.Size),
					formatCount(int64(sig.BlockSize)),
					sig.Digest,
					formatTimestamp(sig.HashedAt),
				})
			}
			var total int64
			for _, sig := range sigs {
				total += sig.Size
			}
			fmt.Fprintln(out, renderTable(
				[]column{{title: "Path"}, {title: "Size", right: true}, {title: "Block", right: true}, {title: "Digest"}, {title: "Hashed"}},
				rows,
				[]string{printer.Sprintf("%d files", len(sigs)), formatBytes(total)},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Only paths starting with this prefix")
	cmd.Flags().StringVar(&opts.Checksum, "checksum", "", "Only files whose BLAKE3 checksum matches")
	cmd.Flags().Uint64Var(&opts.BlockSize, "block-size", 0, "Only signatures with this block size")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output even on a terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type signatureView struct {
	Path      string `json:"path"`
	Size      int64  `json:"size"`
	Digest    string `json:"digest"`
	Checksum  string `json:"checksum,omitempty"`
	BlockSize uint64 `json:"block_size"`
	RunID     string `json:"run_id,omitempty"`
	HashedAt  string `json:"hashed_at"`
}

func signatureViews(sigs []*sigstore.Signature) []signatureView {
	views := make([]signatureView, 0, len(sigs))
	for _, sig := range sigs {
		views = append(views, signatureView{
			Path:      sig.Path,
			Size:      sig.Size,
			Digest:    sig.Digest,
			Checksum:  sig.Checksum,
			BlockSize: sig.BlockSize,
			RunID:     sig.RunID,
			HashedAt:  sig.HashedAt.UTC().Format(time.RFC3339),
		})
	}
	return views
}
