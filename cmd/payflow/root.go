package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:           "payflow",
		Short:         "Subscription checkout backend",
		Long:          "payflow lists purchasable plans and creates subscriptions, returning the client secret the browser needs to confirm payment.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to read before the environment (default .env when present)")

	rootCmd.AddCommand(
		newServeCmd(&envFiles),
		newPlansCmd(&envFiles),
	)
	return rootCmd
}
