package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
)

func newVaultCommand(ctx *commandContext) *cobra.Command {
	vaultCmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the vault directory notes are written into",
	}

	vaultCmd.AddCommand(newVaultSetCommand(ctx))
	vaultCmd.AddCommand(newVaultShowCommand(ctx))
	vaultCmd.AddCommand(newVaultListCommand(ctx))

	return vaultCmd
}

func newVaultSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <path>",
		Short: "Remember the vault directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(_ context.Context, svc *logbook.Service) error {
				res, err := svc.SetVaultPath(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			})
		},
	}
}

func newVaultShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the configured vault directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(_ context.Context, svc *logbook.Service) error {
				status, err := svc.VaultStatus()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, status)
				}
				out := cmd.OutOrStdout()
				if !status.Configured {
					fmt.Fprintln(out, logbook.MsgVaultNotConfigured)
					fmt.Fprintln(out, "Run `movielog vault set <path>` or set paths.vault_dir.")
					return nil
				}
				fmt.Fprintf(out, "Vault: %s\n", status.Path)
				fmt.Fprintf(out, "Source: %s\n", status.Source)
				fmt.Fprintf(out, "Ready: %s\n", yesNo(status.Ready))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newVaultListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the notes in the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(_ context.Context, svc *logbook.Service) error {
				entries, err := svc.ListNotes()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No notes in the vault")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					fm := e.FrontMatter
					if e.Err != nil {
						rows = append(rows, []string{e.Name, "-", "-", "-", "unreadable front matter"})
						continue
					}
					rows = append(rows, []string{
						e.Name,
						orDash(fm.Year),
						orDash(fm.UserRating),
						orDash(fm.MediaType),
						strings.Join(fm.Tags, ", "),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Note", "Year", "Rating", "Type", "Tags"}, rows, nil))
				return nil
			})
		},
	}
}
