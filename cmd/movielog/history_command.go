package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"movielog/internal/history"
	"movielog/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently saved notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.History.Enabled {
				fmt.Fprintln(out, "History is disabled (history.enabled = false)")
				return nil
			}
			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return services.Wrap(services.ErrTransient, "cli", "history", "open store", err)
			}
			defer store.Close()

			entries, err := store.Recent(commandCtx(cmd), limit)
			if err != nil {
				return services.Wrap(services.ErrTransient, "cli", "history", "query", err)
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No notes saved yet")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.SavedAt.Local().Format("2006-01-02 15:04"),
					e.Title,
					orDash(e.Year),
					string(e.Action),
					e.FileName,
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Saved", "Title", "Year", "Action", "File"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultRecentLimit, "Maximum entries to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
