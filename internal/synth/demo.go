package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// Demo serves a fixed set of showcase listings dated today.
type Demo struct {
	now func() time.Time
}

// NewDemo creates the demo strategy.
func NewDemo() *Demo {
	return &Demo{now: time.Now}
}

// Name implements Strategy.
func (d *Demo) Name() string {
	return "demo"
}

var demoListings = []listing.Listing{
	{
		ID: 1, Title: "Appartement 3 pièces - Cocody",
		Description: "Bel appartement meublé dans un quartier calme",
		Price:       "120000000", TransactionType: listing.Sale, Neighborhood: "Cocody",
		SurfaceArea: "85 m²", BedroomCount: 2, Category: "apartment",
		Image: "https://via.placeholder.com/300x200/4CAF50/white?text=Appartement",
	},
	{
		ID: 2, Title: "Studio à louer - Plateau",
		Description: "Studio moderne avec climatisation",
		Price:       "150000", TransactionType: listing.Rental, Neighborhood: "Plateau",
		SurfaceArea: "35 m²", BedroomCount: 1, Category: "studio",
		Image: "https://via.placeholder.com/300x200/2196F3/white?text=Studio",
	},
	{
		ID: 3, Title: "Villa 4 chambres - Marcory",
		Description: "Grande villa avec jardin et piscine",
		Price:       "250000000", TransactionType: listing.Sale, Neighborhood: "Marcory",
		SurfaceArea: "200 m²", BedroomCount: 4, Category: "villa",
		Image: "https://via.placeholder.com/300x200/FF9800/white?text=Villa",
	},
	{
		ID: 4, Title: "Terrain à Bingerville",
		Description: "Terrain plat de 500 m² près de la lagune",
		Price:       "80000000", TransactionType: listing.Sale, Neighborhood: "Bingerville",
		SurfaceArea: "500 m²", BedroomCount: 0, Category: "land",
		Image: "https://via.placeholder.com/300x200/9C27B0/white?text=Terrain",
	},
	{
		ID: 5, Title: "Duplex à louer - Yopougon",
		Description: "Duplex spacieux dans un quartier résidentiel",
		Price:       "200000", TransactionType: listing.Rental, Neighborhood: "Yopougon",
		SurfaceArea: "120 m²", BedroomCount: 3, Category: "duplex",
		Image: "https://via.placeholder.com/300x200/E91E63/white?text=Duplex",
	},
	{
		ID: 6, Title: "Appartement neuf - Rivera",
		Description: "Appartement neuf avec vue sur lagune",
		Price:       "180000000", TransactionType: listing.Sale, Neighborhood: "Rivera",
		SurfaceArea: "100 m²", BedroomCount: 3, Category: "apartment",
		Image: "https://via.placeholder.com/300x200/00BCD4/white?text=Neuf",
	},
}

// Generate implements Strategy. The ids and urls are fixed, so storing
// the demo set twice leaves the store unchanged.
func (d *Demo) Generate(ctx context.Context) ([]listing.Listing, error) {
	today := listing.DateOf(d.now())
	out := make([]listing.Listing, len(demoListings))
	for i, l := range demoListings {
		l.PublicationDate = today
		l.Source = "Démo"
		l.URL = fmt.Sprintf("https://immo-abidjan.ci/demo/%d", l.ID)
		out[i] = l
	}
	return out, nil
}
