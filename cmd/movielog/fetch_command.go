package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
	"movielog/internal/note"
	"movielog/internal/services"
)

// lookupFlags selects how the positional argument is resolved.
type lookupFlags struct {
	byID bool
}

func (f *lookupFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.byID, "id", false, "Treat the argument as an IMDb ID (tt...)")
}

func (f *lookupFlags) fetch(ctx context.Context, svc *logbook.Service, args []string) (note.MovieRecord, error) {
	query := strings.Join(args, " ")
	if f.byID {
		return svc.FetchByID(ctx, query)
	}
	return svc.Fetch(ctx, query)
}

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var lookup lookupFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fetch <title>",
		Short: "Show OMDb metadata for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *logbook.Service) error {
				runCtx = services.WithOperation(runCtx, "fetch")
				rec, err := lookup.fetch(runCtx, svc, args)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, rec)
				}
				printRecord(cmd, rec)
				return nil
			})
		},
	}
	lookup.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printRecord(cmd *cobra.Command, rec note.MovieRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rec.Label())
	fields := []struct {
		label string
		value string
	}{
		{"Rated", rec.Rated},
		{"Runtime", rec.Runtime},
		{"Genre", rec.Genre},
		{"Director", rec.Director},
		{"Stars", rec.Actors},
		{"IMDb", rec.IMDbRating},
		{"IMDb ID", rec.IMDbID},
		{"Poster", rec.Poster},
	}
	for _, f := range fields {
		fmt.Fprintf(out, "  %-9s %s\n", f.label+":", orDash(f.value))
	}
	if plot := strings.TrimSpace(rec.Plot); plot != "" {
		fmt.Fprintf(out, "\n%s\n", plot)
	}
}
