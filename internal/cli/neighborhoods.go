package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNeighborhoodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "neighborhoods",
		Aliases: []string{"districts"},
		Short:   "List the known districts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := newAPIClient().Neighborhoods()
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
