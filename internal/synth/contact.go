package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	maleFirstNames = []string{
		"Kouassi", "Koffi", "Yao", "N'Guessan", "Ouattara", "Traoré", "Coulibaly",
		"Koné", "Diabaté", "Bamba", "Silué", "Doumbia", "Sawadogo", "Kaboré",
	}
	femaleFirstNames = []string{
		"Adjoua", "Akissi", "Ama", "Aminata", "Mariam", "Djénéba", "Fatima",
		"Salimata", "Aïcha", "Hawa", "Rokia", "Fatoumata",
	}
	familyNames = []string{
		"Jean", "Paul", "Marie", "Sandra", "Michel", "Eric", "Ali", "Sekou",
		"Ibrahim", "Mamadou", "Georges", "Raoul", "Salif", "Moussa", "Issouf",
	}

	// carrierPrefixes are the mobile prefixes in use in Côte d'Ivoire.
	carrierPrefixes = map[string][]string{
		"MTN":    {"05", "65", "45", "55"},
		"Orange": {"07", "67", "47", "57"},
		"Moov":   {"01", "61", "41", "51"},
	}
	carriers = []string{"MTN", "Orange", "Moov"}

	emailDomains = []string{"gmail.com", "yahoo.fr", "outlook.com", "hotmail.com"}
)

// Contact is a synthesized advertiser.
type Contact struct {
	Name     string
	Phone    string
	WhatsApp string
	Email    string
	Carrier  string
}

func newContact(r *rand.Rand) Contact {
	first := pick(r, maleFirstNames)
	if r.IntN(2) == 0 {
		first = pick(r, femaleFirstNames)
	}
	last := pick(r, familyNames)

	carrier := pick(r, carriers)
	prefix := pick(r, carrierPrefixes[carrier])
	a, b, c := 10+r.IntN(90), 10+r.IntN(90), 10+r.IntN(90)

	return Contact{
		Name:     first + " " + last,
		Phone:    fmt.Sprintf("+225 %s %02d %02d %02d", prefix, a, b, c),
		WhatsApp: fmt.Sprintf("225%s%02d%02d%02d", prefix, a, b, c),
		Email:    emailLocalPart(first) + "." + emailLocalPart(last) + "@" + pick(r, emailDomains),
		Carrier:  carrier,
	}
}

// emailLocalPart lower-cases a name, drops apostrophes and spaces, and
// folds accented letters to ASCII.
func emailLocalPart(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.NewReplacer("'", "", " ", "").Replace(strings.ToLower(folded))
}
