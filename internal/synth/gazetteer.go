package synth

import (
	"fmt"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

// band is an inclusive FCFA price range.
type band struct {
	min, max int64
}

// priceBands holds 2024 asking prices per district and transaction type.
var priceBands = map[string]map[listing.TransactionType]band{
	"Plateau":     {listing.Sale: {80_000_000, 500_000_000}, listing.Rental: {300_000, 1_200_000}},
	"Cocody":      {listing.Sale: {120_000_000, 800_000_000}, listing.Rental: {400_000, 1_500_000}},
	"Treichville": {listing.Sale: {40_000_000, 200_000_000}, listing.Rental: {180_000, 600_000}},
	"Marcory":     {listing.Sale: {60_000_000, 300_000_000}, listing.Rental: {250_000, 750_000}},
	"Yopougon":    {listing.Sale: {35_000_000, 180_000_000}, listing.Rental: {120_000, 500_000}},
	"Rivera":      {listing.Sale: {100_000_000, 600_000_000}, listing.Rental: {350_000, 1_100_000}},
	"Bingerville": {listing.Sale: {50_000_000, 250_000_000}, listing.Rental: {200_000, 600_000}},
	"Anyama":      {listing.Sale: {30_000_000, 150_000_000}, listing.Rental: {100_000, 400_000}},
	"Koumassi":    {listing.Sale: {45_000_000, 220_000_000}, listing.Rental: {150_000, 550_000}},
	"Port-Bouet":  {listing.Sale: {55_000_000, 280_000_000}, listing.Rental: {200_000, 650_000}},
}

var neighborhoods = []string{
	"Plateau", "Cocody", "Treichville", "Marcory", "Yopougon",
	"Rivera", "Bingerville", "Anyama", "Koumassi", "Port-Bouet",
}

// Neighborhoods returns the Abidjan districts listings are drawn from.
func Neighborhoods() []string {
	return append([]string(nil), neighborhoods...)
}

// PriceBand returns the inclusive price range for a district and
// transaction type.
func PriceBand(neighborhood string, tt listing.TransactionType) (min, max int64, err error) {
	b, ok := priceBands[neighborhood][tt]
	if !ok {
		return 0, 0, fmt.Errorf("no price band for %s/%s", neighborhood, tt)
	}
	return b.min, b.max, nil
}
