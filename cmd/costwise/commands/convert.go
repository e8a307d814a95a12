package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/costwise/internal/app"
)

const convertArgs = 3

func (c *CLI) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <quantity> <from> <to>",
		Short: "Convert a quantity between units",
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(convertArgs)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			list, _ := cmd.Flags().GetBool("list")
			opts := app.ConvertOptions{List: list}
			if !list {
				opts.Quantity, opts.From, opts.To = args[0], args[1], args[2]
			}
			return c.app.Convert(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("list", "l", false, "List every known conversion")
	return cmd
}
