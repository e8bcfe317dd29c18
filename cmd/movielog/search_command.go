package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
	"movielog/internal/omdb"
	"movielog/internal/services"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var opts omdb.SearchOptions
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List OMDb titles matching a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *logbook.Service) error {
				runCtx = services.WithOperation(runCtx, "search")
				page, err := svc.Search(runCtx, strings.Join(args, " "), opts)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, page.Results)
				}
				rows := make([][]string, 0, len(page.Results))
				for _, r := range page.Results {
					rows = append(rows, []string{r.Title, orDash(r.Year), r.Type, r.IMDbID})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"Title", "Year", "Type", "IMDb ID"}, rows, []columnAlignment{alignLeft, alignRight}))
				fmt.Fprintf(out, "Page %d: %d of %d results\n", page.Page, len(page.Results), page.TotalResults)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&opts.Year, "year", "y", 0, "Restrict to a release year")
	cmd.Flags().StringVar(&opts.Type, "type", "", "Restrict to movie, series, or episode")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "Result page (10 per page)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
