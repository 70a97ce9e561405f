package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/evcraddock/immo-abidjan/internal/listing"
)

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+225\s*[0-9]{2}\s*[0-9]{2}\s*[0-9]{2}\s*[0-9]{2}(?:\s*[0-9]{2})?`),
		regexp.MustCompile(`225\s*[0-9]{2}\s*[0-9]{2}\s*[0-9]{2}\s*[0-9]{2}(?:\s*[0-9]{2})?`),
		regexp.MustCompile(`\b[0-9]{2}\s[0-9]{2}\s[0-9]{2}\s[0-9]{2}(?:\s[0-9]{2})?\b`),
		regexp.MustCompile(`\b[0-9]{8}\b`),
	}
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	millionsPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(?:millions?|M)\s*FCFA`)
	fcfaPattern     = regexp.MustCompile(`(?i)(\d[\d\s.]*\d|\d)\s*(?:FCFA|F\s?CFA)`)
	prixPattern     = regexp.MustCompile(`(?i)Prix\s*:?\s*(\d[\d\s.]*\d|\d)`)

	surfacePattern  = regexp.MustCompile(`(\d+)\s*m[²2]`)
	bedroomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*chambres?`),
		regexp.MustCompile(`(\d+)\s*ch\b`),
		regexp.MustCompile(`(\d+)\s*pièces?`),
		regexp.MustCompile(`(\d+)p\b`),
	}
)

// districts are matched in order; the first hit wins.
var districts = []string{
	"Plateau", "Cocody", "Treichville", "Marcory", "Yopougon",
	"Rivera", "Bingerville", "Anyama", "Koumassi", "Port-Bouet",
	"Adjamé", "Abobo", "Attécoubé", "Songon", "Bassam",
}

var categoryKeywords = []struct {
	keyword, category string
}{
	{"studio", "studio"},
	{"duplex", "duplex"},
	{"villa", "villa"},
	{"appartement", "apartment"},
	{"terrain", "land"},
	{"entrepôt", "warehouse"},
	{"bureau", "office"},
	{"local commercial", "commercial"},
	{"magasin", "commercial"},
	{"maison", "house"},
}

// extractPhone finds the first Ivorian phone number and returns it as +225XXXXXXXX.
func extractPhone(text string) string {
	for _, p := range phonePatterns {
		m := p.FindString(text)
		if m == "" {
			continue
		}
		phone := strings.Join(strings.Fields(m), "")
		switch {
		case strings.HasPrefix(phone, "+225"):
		case strings.HasPrefix(phone, "225"):
			phone = "+" + phone
		default:
			phone = "+225" + phone
		}
		return phone
	}
	return ""
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// parsePrice turns "45 millions FCFA", "1 500 000 FCFA" or "Prix : 250000"
// into a plain integer string. It returns "" when no amount is found.
func parsePrice(text string) string {
	if m := millionsPattern.FindStringSubmatch(text); m != nil {
		f, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err == nil && f > 0 {
			return strconv.FormatInt(int64(f*1_000_000), 10)
		}
	}
	for _, p := range []*regexp.Regexp{fcfaPattern, prixPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			if digits := onlyDigits(m[1]); digits != "" && strings.Trim(digits, "0") != "" {
				return strings.TrimLeft(digits, "0")
			}
		}
	}
	return ""
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func detectNeighborhood(text string) string {
	lower := strings.ToLower(text)
	for _, d := range districts {
		if strings.Contains(lower, strings.ToLower(d)) {
			return d
		}
	}
	return "Abidjan"
}

func detectTransactionType(text string) listing.TransactionType {
	lower := strings.ToLower(text)
	for _, w := range []string{"location", "louer", "rent"} {
		if strings.Contains(lower, w) {
			return listing.Rental
		}
	}
	return listing.Sale
}

func detectCategory(text string) string {
	lower := strings.ToLower(text)
	for _, k := range categoryKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.category
		}
	}
	return ""
}

func extractSurface(text string) string {
	if m := surfacePattern.FindStringSubmatch(text); m != nil {
		return m[1] + " m²"
	}
	return ""
}

func extractBedrooms(text string) int {
	lower := strings.ToLower(text)
	for _, p := range bedroomPatterns {
		if m := p.FindStringSubmatch(lower); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n
			}
		}
	}
	return 0
}
