package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printListingSummary prints a single listing in text format.
func printListingSummary(w io.Writer, l *listing.Listing) {
	fmt.Fprintf(w, "Listing #%d\n", l.ID)
	fmt.Fprintf(w, "  Title:     %s\n", l.Title)
	fmt.Fprintf(w, "  Price:     %s\n", formatPrice(l.Price))
	fmt.Fprintf(w, "  Type:      %s\n", transactionLabel(l.TransactionType))
	fmt.Fprintf(w, "  District:  %s\n", l.Neighborhood)
	if l.Category != "" {
		fmt.Fprintf(w, "  Category:  %s\n", l.Category)
	}
	if l.SurfaceArea != "" {
		fmt.Fprintf(w, "  Surface:   %s\n", l.SurfaceArea)
	}
	if l.BedroomCount > 0 {
		fmt.Fprintf(w, "  Bedrooms:  %d\n", l.BedroomCount)
	}
	fmt.Fprintf(w, "  Published: %s\n", l.PublicationDate)
	fmt.Fprintf(w, "  Source:    %s\n", l.Source)
	fmt.Fprintf(w, "  URL:       %s\n", l.URL)

	if l.ContactName != "" || l.ContactPhone != "" || l.ContactEmail != "" {
		fmt.Fprintln(w, "  Contact:")
		if l.ContactName != "" {
			fmt.Fprintf(w, "    Name:     %s\n", l.ContactName)
		}
		if l.ContactPhone != "" {
			fmt.Fprintf(w, "    Phone:    %s\n", l.ContactPhone)
		}
		if l.ContactWhatsApp != "" {
			fmt.Fprintf(w, "    WhatsApp: %s\n", l.ContactWhatsApp)
		}
		if l.ContactEmail != "" {
			fmt.Fprintf(w, "    Email:    %s\n", l.ContactEmail)
		}
	}

	if l.Description != "" {
		fmt.Fprintf(w, "\n%s\n", l.Description)
	}
}

// printListingTable prints listings as a formatted table.
func printListingTable(w io.Writer, listings []listing.Listing) error {
	if len(listings) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tDISTRICT\tPRICE (FCFA)\tPUBLISHED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-----\t----\t--------\t------------\t---------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, l := range listings {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, truncate(l.Title, 40), transactionLabel(l.TransactionType),
			l.Neighborhood, formatPrice(l.Price), l.PublicationDate); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d listings\n", len(listings))
	return nil
}

// printStats prints aggregate counts in text format.
func printStats(w io.Writer, s listing.Stats) {
	fmt.Fprintf(w, "Total listings:   %d\n", s.Total)
	fmt.Fprintf(w, "Published today:  %d\n", s.Today)
	fmt.Fprintf(w, "For sale:         %d\n", s.SaleCount)
	fmt.Fprintf(w, "For rent:         %d\n", s.RentalCount)
	fmt.Fprintf(w, "Districts:        %d\n", s.DistinctNeighborhoods)
}

// formatPrice groups the digits of a price string with spaces, as is
// usual for FCFA amounts. Non-numeric input is returned unchanged.
func formatPrice(price string) string {
	if price == "" {
		return "-"
	}
	for _, r := range price {
		if r < '0' || r > '9' {
			return price
		}
	}

	s := price
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, " ")
}

// transactionLabel returns the French label for a transaction type.
func transactionLabel(t listing.TransactionType) string {
	switch t {
	case listing.Sale:
		return "vente"
	case listing.Rental:
		return "location"
	}
	return string(t)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
