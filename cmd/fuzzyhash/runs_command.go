package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"fuzzyhash/internal/sigstore"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var plain bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent scan runs",
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

			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, runViews(runs))
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				if !plain {
					fmt.Fprintln(out, "No scan runs recorded")
				}
				return nil
			}
			if plain || !isTerminal(out) {
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.ID,
						runState(run),
						strconv.Itoa(run.Files),
						strconv.Itoa(run.Failures),
						strings.Join(run.Roots, ","),
					})
				}
				writeTSV(out, rows)
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					formatTimestamp(run.StartedAt),
					formatTimestamp(run.FinishedAt),
					formatCount(int64(run.Files)),
					formatCount(int64(run.Failures)),
					strings.Join(run.Roots, "\n"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]column{{title: "ID"}, {title: "Started"}, {title: "Finished"}, {title: "Files", right: true}, {title: "Failures", right: true}, {title: "Roots"}},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Tab-separated output even on a terminal")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type runView struct {
	ID         string   `json:"id"`
	State      string   `json:"state"`
	StartedAt  string   `json:"started_at"`
	FinishedAt string   `json:"finished_at,omitempty"`
	Roots      []string `json:"roots"`
	Files      int      `json:"files"`
	Failures   int      `json:"failures"`
}

func runViews(runs []sigstore.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		view := runView{
			ID:        run.ID,
			State:     runState(run),
			StartedAt: run.StartedAt.UTC().Format(time.RFC3339),
			Roots:     run.Roots,
			Files:     run.Files,
			Failures:  run.Failures,
		}
		if run.Finished() {
			view.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
		}
		views = append(views, view)
	}
	return views
}

func runState(run sigstore.Run) string {
	if run.Finished() {
		return "finished"
	}
	return "incomplete"
}
