package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newPlansCmd(envFiles *[]string) *cobra.Command {
	var pretty, refresh bool

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Print the purchasable plans as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := commandContext(cmd)

			cfg, err := loadConfig(*envFiles)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			a, err := wireApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.close()

			if refresh {
				if err := a.refreshPlans(ctx); err != nil {
					return err
				}
			}

			plans, err := a.service.ListPlans(ctx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(plans); err != nil {
				return fmt.Errorf("encode plans: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "drop the cached plan listing before reading it")
	return cmd
}
