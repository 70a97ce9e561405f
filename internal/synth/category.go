package synth

import "fmt"

// Category describes a kind of property and the ranges its listings use.
type Category struct {
	Name        string
	Label       string // French noun used in descriptions
	MinBedrooms int
	MaxBedrooms int
	MinSurface  int
	MaxSurface  int

	// Title templates accept {n} (bedrooms), {s} (surface) and {q} (district).
	titles       []string
	descriptions []string
}

var residentialDescriptions = []string{
	"Beau {label} bien situé dans un quartier résidentiel calme et sécurisé. Proche des commodités (écoles, marchés, transports). Idéal pour famille.",
	"{Label} moderne avec finitions de qualité, carrelage au sol, cuisine aménagée. Quartier dynamique avec bon voisinage.",
	"Excellent {label} dans environnement paisible, titre foncier disponible. Eau, électricité SODECI. Très bon état général.",
	"{Label} récemment rénové, très bon état. Proche centres commerciaux et arrêts de transport. Quartier en développement.",
	"Superbe {label} avec vue dégagée, ventilé. Proche universités et zones d'emploi. Parfait pour jeunes professionnels ou familles.",
}

var categories = map[string]Category{
	"apartment": {
		Name: "apartment", Label: "appartement",
		MinBedrooms: 1, MaxBedrooms: 4, MinSurface: 40, MaxSurface: 120,
		titles: []string{
			"Appartement {n}P standing - {q}",
			"Bel appartement {n} pièces moderne - {q}",
			"Appartement {n} chambres climatisé - {q}",
			"Joli {n}P avec parking - {q}",
		},
		descriptions: residentialDescriptions,
	},
	"house": {
		Name: "house", Label: "maison",
		MinBedrooms: 2, MaxBedrooms: 6, MinSurface: 70, MaxSurface: 250,
		titles: []string{
			"Maison {n} pièces avec cour - {q}",
			"Belle maison familiale {n}ch - {q}",
			"Maison moderne {n} chambres - {q}",
			"Maison {n}P dans quartier calme - {q}",
		},
		descriptions: residentialDescriptions,
	},
	"studio": {
		Name: "studio", Label: "studio",
		MinBedrooms: 0, MaxBedrooms: 1, MinSurface: 20, MaxSurface: 45,
		titles: []string{
			"Studio meublé moderne - {q}",
			"Joli studio climatisé - {q}",
			"Studio équipé tout confort - {q}",
			"Studio neuf avec parking - {q}",
		},
		descriptions: residentialDescriptions,
	},
	"duplex": {
		Name: "duplex", Label: "duplex",
		MinBedrooms: 2, MaxBedrooms: 5, MinSurface: 80, MaxSurface: 200,
		titles: []string{
			"Duplex {n} chambres moderne - {q}",
			"Beau duplex {n}ch avec terrasse - {q}",
			"Duplex standing {n} chambres - {q}",
			"Duplex neuf {n}ch + garage - {q}",
		},
		descriptions: residentialDescriptions,
	},
	"villa": {
		Name: "villa", Label: "villa",
		MinBedrooms: 3, MaxBedrooms: 7, MinSurface: 120, MaxSurface: 400,
		titles: []string{
			"Villa {n} chambres avec jardin - {q}",
			"Magnifique villa moderne {n}ch - {q}",
			"Villa standing {n} chambres + piscine - {q}",
			"Belle villa familiale {n}ch - {q}",
		},
		descriptions: []string{
			"Grande {label} avec grand jardin et parking. Quartier résidentiel haut standing, sécurité 24h/24. Piscine et terrasse couverte.",
			"{Label} spacieuse avec garage double. Finitions luxueuses, climatisation centrale. Proche écoles internationales.",
			"Belle {label} familiale dans résidence fermée. Gardiennage, espace vert. Idéal expatriés et cadres supérieurs.",
			"{Label} haut standing avec vue panoramique. Cuisine équipée, buanderie. Quartier diplomatique prisé.",
		},
	},
	"land": {
		Name: "land", Label: "terrain",
		MinBedrooms: 0, MaxBedrooms: 0, MinSurface: 200, MaxSurface: 2000,
		titles: []string{
			"Terrain {s}m² à vendre - {q}",
			"Terrain viabilisé {s}m² - {q}",
		},
		descriptions: []string{
			"{Label} plat dans zone en développement, titre foncier disponible.",
			"{Label} loti et borné, accès facile, proche route bitumée.",
		},
	},
	"commercial": {
		Name: "commercial", Label: "local commercial",
		MinBedrooms: 0, MaxBedrooms: 0, MinSurface: 30, MaxSurface: 200,
		titles: []string{
			"Local commercial {s}m² - {q}",
			"Magasin {s}m² sur grande voie - {q}",
		},
		descriptions: []string{
			"{Label} bien situé, fort passage, idéal tout commerce.",
		},
	},
	"office": {
		Name: "office", Label: "bureau",
		MinBedrooms: 2, MaxBedrooms: 6, MinSurface: 50, MaxSurface: 300,
		titles: []string{
			"Bureau {s}m² - {q}",
			"Plateau de bureaux {n} pièces - {q}",
		},
		descriptions: []string{
			"{Label} moderne climatisé avec parking, quartier d'affaires.",
		},
	},
	"warehouse": {
		Name: "warehouse", Label: "entrepôt",
		MinBedrooms: 0, MaxBedrooms: 0, MinSurface: 200, MaxSurface: 1000,
		titles: []string{
			"Entrepôt {s}m² - {q}",
		},
		descriptions: []string{
			"Grand {label} avec quai de chargement, accès poids lourds.",
		},
	},
}

// CategoryNames lists every known category in a stable order.
var CategoryNames = []string{
	"apartment", "house", "studio", "duplex", "villa",
	"land", "commercial", "office", "warehouse",
}

// LookupCategory returns the category with the given name.
func LookupCategory(name string) (Category, error) {
	c, ok := categories[name]
	if !ok {
		return Category{}, fmt.Errorf("unknown category %q", name)
	}
	return c, nil
}
