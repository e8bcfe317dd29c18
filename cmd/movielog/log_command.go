package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"movielog/internal/config"
	"movielog/internal/logbook"
	"movielog/internal/note"
	"movielog/internal/services"
)

// metadataFlags are the user fields added to a note at log time.
type metadataFlags struct {
	rating    string
	mediaType string
	tags      []string
}

func (f *metadataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.rating, "rating", "r", "", "Your rating, written verbatim")
	cmd.Flags().StringVarP(&f.mediaType, "type", "t", "", "Media type tag (movie, tv series, ...)")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, "Tag to add (repeatable)")
}

func (f *metadataFlags) metadata() note.UserMetadata {
	return note.UserMetadata{Rating: f.rating, MediaType: f.mediaType, Tags: f.tags}
}

func newLogCommand(ctx *commandContext) *cobra.Command {
	var lookup lookupFlags
	var meta metadataFlags
	var onConflict string
	var dryRun bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "log <title>",
		Short: "Fetch a title and save it as a note in the vault",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConflictFlag(onConflict); err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *logbook.Service) error {
				runCtx = services.WithOperation(runCtx, "log")
				rec, err := lookup.fetch(runCtx, svc, args)
				if err != nil {
					return err
				}
				rec = svc.Prepare(rec, meta.metadata())
				runCtx = services.WithTitle(runCtx, rec.Label())

				res, err := svc.Save(runCtx, rec, logbook.SaveOptions{OnConflict: onConflict, DryRun: dryRun})
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, res)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, res.Message)
				if dryRun {
					fmt.Fprintln(out)
					fmt.Fprint(out, res.Content)
				}
				return nil
			})
		},
	}
	lookup.register(cmd)
	meta.register(cmd)
	cmd.Flags().StringVar(&onConflict, "on-conflict", "", "When the note exists: ask, overwrite, copy, or cancel (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render the note and report the target without writing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the result as JSON")
	return cmd
}

func validateConflictFlag(value string) error {
	switch value {
	case "", config.ConflictAsk, config.ConflictOverwrite, config.ConflictCopy, config.ConflictCancel:
		return nil
	default:
		return services.Wrap(services.ErrValidation, "cli", "log",
			fmt.Sprintf("--on-conflict must be ask, overwrite, copy, or cancel; got %q", value), nil)
	}
}
