package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
	"movielog/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the vault, state directory, and OMDb access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withService(cmd, func(runCtx context.Context, svc *logbook.Service) error {
				vaultDir, _, settingsErr := svc.VaultDir()
				apiKey, _, keyErr := svc.APIKey()
				if settingsErr == nil {
					settingsErr = keyErr
				}
				results := preflight.RunAll(runCtx, cfg, preflight.Targets{
					VaultDir:    vaultDir,
					APIKey:      apiKey,
					SettingsErr: settingsErr,
				})
				if asJSON {
					return writeJSON(cmd, results)
				}
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Name, passFail(r.Passed), r.Detail})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, rows, nil))
				if failed := preflight.Failed(results); failed > 0 {
					fmt.Fprintf(out, "%d of %d checks failed\n", failed, len(results))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
