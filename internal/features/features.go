// Package features turns product attributes into the fixed-order numeric row
// the eco score model was fit on.
package features

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
)

// Category flags a product category. Several may be set at once.
type Category int

const (
	CategoryAccessories Category = iota
	CategoryBeverage
	CategoryFood
	CategoryPersonalCare
)

// Packaging flags a packaging material. Several may be set at once.
type Packaging int

const (
	PackagingCardboard Packaging = iota
	PackagingCompost
	PackagingFoil
	PackagingGlass
	PackagingPaper
	PackagingPlastic
	PackagingTetraPak
	PackagingNoPacking
)

// Transport flags a transport mode. Several may be set at once.
type Transport int

const (
	TransportAir Transport = iota
	TransportShip
	TransportTruck
)

var (
	categoryNames  = []string{"Accessories", "Beverage", "Food", "PersonalCare"}
	packagingNames = []string{"Cardboard", "Compost", "Foil", "Glass", "Paper", "Plastic", "TetraPak", "NoPacking"}
	transportNames = []string{"Air", "Ship", "Truck"}
)

// Categories lists every category in column order.
func Categories() []Category {
	return []Category{CategoryAccessories, CategoryBeverage, CategoryFood, CategoryPersonalCare}
}

// PackagingMaterials lists every packaging flag in column order.
func PackagingMaterials() []Packaging {
	return []Packaging{
		PackagingCardboard, PackagingCompost, PackagingFoil, PackagingGlass,
		PackagingPaper, PackagingPlastic, PackagingTetraPak, PackagingNoPacking,
	}
}

// TransportModes lists every transport flag in column order.
func TransportModes() []Transport {
	return []Transport{TransportAir, TransportShip, TransportTruck}
}

func (c Category) String() string  { return nameOf(categoryNames, int(c)) }
func (p Packaging) String() string { return nameOf(packagingNames, int(p)) }
func (t Transport) String() string { return nameOf(transportNames, int(t)) }

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

// PredictionRequest holds one product's attributes. The zero value is the
// neutral default: no carbon, no water, no flags.
type PredictionRequest struct {
	CarbonKg    float64
	WaterL      float64
	AnimalBased bool
	Imported    bool

	Categories []Category
	Packaging  []Packaging
	Transport  []Transport
}

// Validate checks the numeric domains. Flag groups are never validated:
// overlapping memberships are accepted as given.
func (r PredictionRequest) Validate() error {
	if err := checkQuantity("carbon", r.CarbonKg); err != nil {
		return err
	}
	return checkQuantity("water", r.WaterL)
}

func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperr.Userf("%s must be a finite number", name)
	}
	if v < 0 {
		return apperr.Userf("%s must be >= 0, got %g", name, v)
	}
	return nil
}

// ParseCategory accepts names such as "food", "Personal Care" or "personal-care".
func ParseCategory(s string) (Category, error) {
	i, ok := lookup(categoryNames, s, nil)
	if !ok {
		return 0, apperr.Userf("unknown category %q (expected one of %s)", s, strings.Join(categoryNames, ", "))
	}
	return Category(i), nil
}

// ParsePackaging accepts names such as "tetra-pak", "no packing" or "none".
func ParsePackaging(s string) (Packaging, error) {
	i, ok := lookup(packagingNames, s, map[string]string{"none": "nopacking", "compostable": "compost"})
	if !ok {
		return 0, apperr.Userf("unknown packaging %q (expected one of %s)", s, strings.Join(packagingNames, ", "))
	}
	return Packaging(i), nil
}

// ParseTransport accepts "air", "ship" or "truck" in any case.
func ParseTransport(s string) (Transport, error) {
	i, ok := lookup(transportNames, s, nil)
	if !ok {
		return 0, apperr.Userf("unknown transport mode %q (expected one of %s)", s, strings.Join(transportNames, ", "))
	}
	return Transport(i), nil
}

func lookup(names []string, s string, aliases map[string]string) (int, bool) {
	key := normalize(s)
	if a, ok := aliases[key]; ok {
		key = a
	}
	for i, n := range names {
		if normalize(n) == key {
			return i, true
		}
	}
	return 0, false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}

// ParseCategories parses each entry, skipping blanks.
func ParseCategories(in []string) ([]Category, error) { return parseAll(in, ParseCategory) }

// ParsePackagingList parses each entry, skipping blanks.
func ParsePackagingList(in []string) ([]Packaging, error) { return parseAll(in, ParsePackaging) }

// ParseTransportModes parses each entry, skipping blanks.
func ParseTransportModes(in []string) ([]Transport, error) { return parseAll(in, ParseTransport) }

func parseAll[T any](in []string, parse func(string) (T, error)) ([]T, error) {
	var out []T
	for _, s := range in {
		if strings.TrimSpace(s) == "" {
			continue
		}
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// HasCategory reports whether c is flagged.
func (r PredictionRequest) HasCategory(c Category) bool { return slices.Contains(r.Categories, c) }

// HasPackaging reports whether p is flagged.
func (r PredictionRequest) HasPackaging(p Packaging) bool { return slices.Contains(r.Packaging, p) }

// HasTransport reports whether t is flagged.
func (r PredictionRequest) HasTransport(t Transport) bool { return slices.Contains(r.Transport, t) }
