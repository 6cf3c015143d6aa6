package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fuzzyhash/internal/sigstore"
)

func newPruneCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove catalog entries for files that no longer exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
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

			removed, err := store.Prune(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !quiet {
				for _, path := range removed {
					fmt.Fprintf(out, "removed %s\n", path)
				}
			}
			fmt.Fprintf(out, "Pruned %s signatures\n", formatCount(int64(len(removed))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the total")
	return cmd
}
