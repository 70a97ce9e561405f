package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/immo-abidjan/internal/client"
	"github.com/evcraddock/immo-abidjan/internal/listing"
)

func newListCmd() *cobra.Command {
	var opts client.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List listings",
		Long:  "List stored listings, optionally only today's, filtered by district or transaction type.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Today, "today", false, "only listings published today")
	cmd.Flags().StringVar(&opts.Neighborhood, "neighborhood", "", "filter by district (case-insensitive substring)")
	cmd.Flags().StringVar(&opts.TransactionType, "type", "", "filter by transaction type (sale|rental)")

	return cmd
}

func runList(w io.Writer, opts client.ListOptions) error {
	if opts.TransactionType != "" && !listing.ValidTransactionType(opts.TransactionType) {
		return fmt.Errorf("invalid type %q: must be sale or rental", opts.TransactionType)
	}

	resp, err := newAPIClient().ListListings(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(w, resp)
	}

	return printListingTable(w, resp.Listings)
}
