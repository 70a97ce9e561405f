package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Tests the connection to the server and reports the state of its store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.OutOrStdout())
		},
	}
}

func runStatus(w io.Writer) error {
	serverURL := getServerURL()
	fmt.Fprintf(w, "Server:  %s\n", serverURL)

	h, err := newAPIClient().Health()
	if err != nil {
		fmt.Fprintf(w, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}

	fmt.Fprintf(w, "Status:  ✓ %s\n", h.Status)
	fmt.Fprintf(w, "Store:   %s\n", h.Store)
	if h.Store != "ready" {
		fmt.Fprintln(w, "\nThe store is initialized on the first request or refresh.")
	}
	return nil
}
