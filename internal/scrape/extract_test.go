package scrape

import (
	"testing"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"international spaced", "Tel: +225 07 12 34 56", "+22507123456"},
		{"international ten digits", "+225 07 12 34 56 78", "+2250712345678"},
		{"without plus", "appelez 225 05 44 33 22", "+22505443322"},
		{"local groups", "contact 01 23 45 67", "+22501234567"},
		{"eight digits", "whatsapp 07123456", "+22507123456"},
		{"none", "pas de contact", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPhone(tt.text); got != tt.want {
				t.Errorf("extractPhone(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"millions", "85 millions FCFA", "85000000"},
		{"decimal millions", "1.5 millions FCFA", "1500000"},
		{"short millions", "120 M FCFA", "120000000"},
		{"spaced amount", "450 000 FCFA / mois", "450000"},
		{"dotted amount", "1.200.000 FCFA", "1200000"},
		{"prix label", "Prix : 75000000", "75000000"},
		{"on request", "Prix sur demande", ""},
		{"zero", "0 FCFA", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsePrice(tt.text); got != tt.want {
				t.Errorf("parsePrice(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		text         string
		neighborhood string
		tt           listing.TransactionType
		category     string
	}{
		{"Appartement 3P à louer - Cocody", "Cocody", listing.Rental, "apartment"},
		{"Villa duplex à vendre Rivera", "Rivera", listing.Sale, "duplex"},
		{"Terrain 500m² Bingerville", "Bingerville", listing.Sale, "land"},
		{"Maison en location Abobo", "Abobo", listing.Rental, "house"},
		{"Bel immeuble", "Abidjan", listing.Sale, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := detectNeighborhood(tt.text); got != tt.neighborhood {
				t.Errorf("neighborhood = %q, want %q", got, tt.neighborhood)
			}
			if got := detectTransactionType(tt.text); got != tt.tt {
				t.Errorf("transaction type = %q, want %q", got, tt.tt)
			}
			if got := detectCategory(tt.text); got != tt.category {
				t.Errorf("category = %q, want %q", got, tt.category)
			}
		})
	}
}

func TestExtractSurfaceAndBedrooms(t *testing.T) {
	tests := []struct {
		text     string
		surface  string
		bedrooms int
	}{
		{"Villa de 250 m² avec 4 chambres", "250 m²", 4},
		{"Appartement 3P 90m2", "90 m²", 3},
		{"Maison 5 pièces", "", 5},
		{"Duplex 2ch terrasse", "", 2},
		{"Local vide", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := extractSurface(tt.text); got != tt.surface {
				t.Errorf("surface = %q, want %q", got, tt.surface)
			}
			if got := extractBedrooms(tt.text); got != tt.bedrooms {
				t.Errorf("bedrooms = %d, want %d", got, tt.bedrooms)
			}
		})
	}
}
