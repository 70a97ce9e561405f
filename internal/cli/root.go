// Package cli defines the cobra command tree for immo-abidjan.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/immo-abidjan/internal/client"
)

var (
	flagFormat string
	flagServer string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "immo",
		Short:         "Abidjan real-estate listings",
		Long:          "Serve and browse real-estate listings for Abidjan. Run the API server with 'serve', or query a running server with the other commands.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: config file or http://localhost:5000)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: ~/.immo-abidjan/listings.db)")

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newShowCmd(),
		newStatsCmd(),
		newNeighborhoodsCmd(),
		newRefreshCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the listings API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
