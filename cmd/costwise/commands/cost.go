package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/costwise/internal/app"
)

func (c *CLI) newCostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cost [products...]",
		Short: "Show the cost breakdown of products",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Cost(cmd.Context(), app.CostOptions{Products: args})
		},
	}
}

func (c *CLI) newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the catalog summary and alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dismissed, _ := cmd.Flags().GetStringSlice("dismiss")
			return c.app.Dashboard(cmd.Context(), app.DashboardOptions{Dismissed: dismissed})
		},
	}
	cmd.Flags().StringSlice("dismiss", nil, "Alert IDs to hide, e.g. price-increase:flour")
	return cmd
}

func (c *CLI) newWorkdaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "workdays",
		Short: "Show working days and hourly rates of the catalog year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Workdays(cmd.Context())
		},
	}
}
