package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"movielog/internal/logbook"
)

func newKeyCommand(ctx *commandContext) *cobra.Command {
	keyCmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the OMDb API key",
	}

	keyCmd.AddCommand(&cobra.Command{
		Use:   "set <key>",
		Short: "Store the OMDb API key in the settings file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(_ context.Context, svc *logbook.Service) error {
				res, err := svc.SetAPIKey(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), res.Message)
				return nil
			})
		},
	})

	keyCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Report where the OMDb API key comes from",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(cmd, func(_ context.Context, svc *logbook.Service) error {
				key, source, err := svc.APIKey()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if key == "" {
					fmt.Fprintln(out, logbook.MsgKeyNotConfigured)
					return nil
				}
				fmt.Fprintf(out, "OMDb API key: %s (from %s)\n", maskKey(key), source)
				return nil
			})
		},
	})

	return keyCmd
}

// maskKey keeps the last two characters of a key for identification.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-2:]
}
