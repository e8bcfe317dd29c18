package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
	"movielog/internal/preview"
	"movielog/internal/services"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var lookup lookupFlags
	var meta metadataFlags
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "preview <title>",
		Short: "Print the note that would be saved for a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(runCtx context.Context, svc *logbook.Service) error {
				runCtx = services.WithOperation(runCtx, "preview")
				rec, err := lookup.fetch(runCtx, svc, args)
				if err != nil {
					return err
				}
				document := svc.Renderer().Render(svc.Prepare(rec, meta.metadata()))
				if !asHTML {
					fmt.Fprint(cmd.OutOrStdout(), document)
					return nil
				}
				html, err := preview.New().Note(document)
				if err != nil {
					return services.Wrap(services.ErrTransient, "cli", "preview", "render html", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), html)
				return nil
			})
		},
	}
	lookup.register(cmd)
	meta.register(cmd)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the note as sanitized HTML")
	return cmd
}
