package synth

import "github.com/evcraddock/immo-abidjan/internal/listing"

// Source describes one synthetic feed.
type Source struct {
	Name        string
	MinCount    int
	MaxCount    int
	IDOffset    int64
	URLTemplate string // fmt template taking the listing id

	// Empty sets default to the whole gazetteer, both transaction types,
	// and the residential categories.
	Neighborhoods    []string
	TransactionTypes []listing.TransactionType
	// Categories may repeat a name to weight it.
	Categories []string
}

var residential = []string{"apartment", "house", "studio", "duplex", "villa"}

// DefaultSources returns the four feeds the synthesizer imitates.
func DefaultSources() []Source {
	return []Source{
		{
			Name:        "Tonkro.ci",
			MinCount:    4,
			MaxCount:    8,
			IDOffset:    0,
			URLTemplate: "https://tonkro.ci/annonce/%d",
			Categories:  residential,
		},
		{
			Name:        "Jumia Deal CI",
			MinCount:    3,
			MaxCount:    6,
			IDOffset:    1000,
			URLTemplate: "https://deals.jumia.ci/annonce/%d",
			Categories: []string{
				"apartment", "house", "studio",
				"duplex", "duplex", "duplex",
				"villa", "villa", "villa",
			},
		},
		{
			Name:             "Expat Abidjan",
			MinCount:         2,
			MaxCount:         4,
			IDOffset:         2000,
			URLTemplate:      "https://expat-abidjan.com/annonce/%d",
			Neighborhoods:    []string{"Cocody", "Rivera", "Plateau", "Marcory"},
			TransactionTypes: []listing.TransactionType{listing.Rental},
			Categories:       []string{"villa", "apartment", "duplex"},
		},
		{
			Name:             "Afribaba CI",
			MinCount:         2,
			MaxCount:         4,
			IDOffset:         3000,
			URLTemplate:      "https://ci.afribaba.com/annonce/%d",
			Neighborhoods:    []string{"Bingerville", "Anyama", "Koumassi", "Port-Bouet", "Yopougon"},
			TransactionTypes: []listing.TransactionType{listing.Sale},
			Categories:       []string{"land", "commercial", "office", "warehouse"},
		},
	}
}

func (s Source) neighborhoods() []string {
	if len(s.Neighborhoods) == 0 {
		return neighborhoods
	}
	return s.Neighborhoods
}

func (s Source) transactionTypes() []listing.TransactionType {
	if len(s.TransactionTypes) == 0 {
		return []listing.TransactionType{listing.Sale, listing.Rental}
	}
	return s.TransactionTypes
}

func (s Source) categories() []string {
	if len(s.Categories) == 0 {
		return residential
	}
	return s.Categories
}
