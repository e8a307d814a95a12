package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/costwise/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render the dashboard whenever costwise.yaml changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dismissed, _ := cmd.Flags().GetStringSlice("dismiss")
			metricsFile, _ := cmd.Flags().GetString("metrics-file")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				DashboardOptions: app.DashboardOptions{Dismissed: dismissed},
				MetricsFile:      metricsFile,
			})
		},
	}
	cmd.Flags().StringSlice("dismiss", nil, "Alert IDs to hide, e.g. price-increase:flour")
	cmd.Flags().String("metrics-file", "", "Write cache metrics in the Prometheus text format to this file")
	return cmd
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the price history and other costwise state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context())
		},
	}
}
