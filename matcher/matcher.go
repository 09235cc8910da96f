package matcher

import (
	"sort"

	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
)

// Matcher ranks a brand's shades against a skin colour
type Matcher struct {
	// MaxMatches caps the number of names returned per brand
	MaxMatches int
	// UndertoneBonus is subtracted from the distance of shades whose
	// undertone matches the user's
	UndertoneBonus float64
}

// Default returns a matcher with three matches per brand and a bonus of 5
func Default() Matcher {
	return Matcher{MaxMatches: 3, UndertoneBonus: 5}
}

// Ranked is one shade with its raw and adjusted distance
type Ranked struct {
	Name     string  `json:"name"`
	DeltaE   float64 `json:"deltaE"`
	Adjusted float64 `json:"adjusted"`
}

// Rank orders every shade by adjusted distance. Shades with equal adjusted
// distance keep their catalog order.
func (m Matcher) Rank(skin colorscience.LabColor, undertone colorscience.Undertone, shades []catalog.Shade) []Ranked {
	ranked := make([]Ranked, len(shades))
	for i, shade := range shades {
		deltaE := colorscience.DeltaE(skin, shade.Lab)
		adjusted := deltaE
		if shade.Undertone == undertone {
			adjusted -= m.UndertoneBonus
		}
		ranked[i] = Ranked{Name: shade.Name, DeltaE: deltaE, Adjusted: adjusted}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Adjusted < ranked[j].Adjusted
	})
	return ranked
}

// MatchBrand returns up to MaxMatches shade names, best first
func (m Matcher) MatchBrand(skin colorscience.LabColor, undertone colorscience.Undertone, shades []catalog.Shade) []string {
	ranked := m.Rank(skin, undertone, shades)
	if m.MaxMatches >= 0 && len(ranked) > m.MaxMatches {
		ranked = ranked[:m.MaxMatches]
	}

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
	}
	return names
}

// MatchAll ranks each requested brand independently. With no brands given it
// covers every brand in the catalog. Unknown brands map to an empty list.
func (m Matcher) MatchAll(cat *catalog.Catalog, skin colorscience.LabColor, undertone colorscience.Undertone, brands []string) map[string][]string {
	if len(brands) == 0 {
		brands = cat.Brands()
	}

	matches := make(map[string][]string, len(brands))
	for _, brand := range brands {
		matches[brand] = m.MatchBrand(skin, undertone, cat.ShadesFor(brand))
	}
	return matches
}
