package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/models"
)

// Shade is a catalog entry with its LAB colour computed once at load time.
// Brand is the display name as stored; Brands() lists keys.
type Shade struct {
	ProductID   string
	Brand       string
	Name        string
	Hex         string
	ProductLine string
	Lab         colorscience.LabColor
	Undertone   colorscience.Undertone
}

// Catalog is an immutable, per-brand ordered collection of shades. It is safe
// for concurrent reads.
type Catalog struct {
	brands []string
	shades map[string][]Shade
}

// NewCatalog builds a catalog from product rows, preserving brand order and
// per-brand row order. LAB values are always recomputed from the hex colour so
// the catalog and live pixels share one colour space.
func NewCatalog(products []models.Product) (*Catalog, error) {
	cat := &Catalog{shades: make(map[string][]Shade)}
	seen := make(map[string]map[string]bool)

	for _, p := range products {
		brand := BrandKey(p.Brand)
		if brand == "" {
			return nil, fmt.Errorf("shade %q has no brand", p.ShadeName)
		}
		if p.ShadeName == "" {
			return nil, fmt.Errorf("brand %s has a shade without a name", brand)
		}

		lab, err := colorscience.HexToLab(p.HexColor)
		if err != nil {
			return nil, fmt.Errorf("shade %s/%s: %w", brand, p.ShadeName, err)
		}

		index := foldBrand(brand)
		if _, ok := seen[index]; !ok {
			seen[index] = make(map[string]bool)
			cat.brands = append(cat.brands, brand)
		}
		if seen[index][p.ShadeName] {
			return nil, fmt.Errorf("duplicate shade %q for brand %s", p.ShadeName, brand)
		}
		seen[index][p.ShadeName] = true

		cat.shades[index] = append(cat.shades[index], Shade{
			ProductID:   p.ProductID,
			Brand:       strings.TrimSpace(p.Brand),
			Name:        p.ShadeName,
			Hex:         p.HexColor,
			ProductLine: p.ProductLine,
			Lab:         lab,
			Undertone:   colorscience.ParseUndertone(p.Undertone),
		})
	}

	return cat, nil
}

// Brands returns the brand keys in insertion order
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// ShadesFor returns the brand's shades in catalog order. An unknown brand
// yields an empty slice.
func (c *Catalog) ShadesFor(brand string) []Shade {
	shades := c.shades[foldBrand(brand)]
	out := make([]Shade, len(shades))
	copy(out, shades)
	return out
}

// Lookup finds a single shade by brand and name
func (c *Catalog) Lookup(brand, name string) (Shade, bool) {
	for _, s := range c.shades[foldBrand(brand)] {
		if s.Name == name {
			return s, true
		}
	}
	return Shade{}, false
}

// Len is the total number of shades
func (c *Catalog) Len() int {
	n := 0
	for _, shades := range c.shades {
		n += len(shades)
	}
	return n
}

// BrandKey turns a display brand name into the key used in match results:
// "Too Faced" becomes "tooFaced", "Fenty" becomes "fenty". Single-word names
// that are already keys pass through.
func BrandKey(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range words {
		runes := []rune(w)
		if i == 0 {
			if isAllUpper(runes) {
				b.WriteString(strings.ToLower(w))
				continue
			}
			runes[0] = unicode.ToLower(runes[0])
			b.WriteString(string(runes))
			continue
		}
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(strings.ToLower(string(runes[1:])))
	}
	return b.String()
}

func isAllUpper(runes []rune) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// foldBrand is the case and space insensitive index for a brand
func foldBrand(brand string) string {
	return strings.ToLower(strings.Join(strings.Fields(brand), ""))
}
