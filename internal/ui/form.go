package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
)

var categoryLabels = map[features.Category]string{
	features.CategoryAccessories:  "👜 Accessories",
	features.CategoryBeverage:     "🥤 Beverage",
	features.CategoryFood:         "🍎 Food",
	features.CategoryPersonalCare: "🧴 Personal Care",
}

var packagingLabels = map[features.Packaging]string{
	features.PackagingCardboard: "📦 Cardboard",
	features.PackagingCompost:   "🌱 Compostable",
	features.PackagingFoil:      "🔸 Foil",
	features.PackagingGlass:     "🍶 Glass",
	features.PackagingPaper:     "📄 Paper",
	features.PackagingPlastic:   "🛍️ Plastic",
	features.PackagingTetraPak:  "📦 TetraPak",
	features.PackagingNoPacking: "🚫 No Packaging",
}

var transportLabels = map[features.Transport]string{
	features.TransportAir:   "✈️ Air Transport",
	features.TransportShip:  "🚢 Ship Transport",
	features.TransportTruck: "🚛 Truck Transport",
}

// ProductForm holds the values bound to the huh form fields.
type ProductForm struct {
	Carbon      string
	Water       string
	AnimalBased bool
	Imported    bool

	Categories []features.Category
	Packaging  []features.Packaging
	Transport  []features.Transport

	Submit bool
}

// NewProductForm returns a form pre-filled with neutral defaults.
func NewProductForm() *ProductForm {
	return &ProductForm{Carbon: "0.00", Water: "0.00", Submit: true}
}

// Form builds the huh form bound to f.
func (f *ProductForm) Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("🔧 Basic Product Information").
				Description("Production footprint and origin of the product."),
			huh.NewInput().
				Title("🔥 Carbon Footprint (kg)").
				Description("Carbon emissions during production").
				Value(&f.Carbon).
				Validate(validateQuantity),
			huh.NewInput().
				Title("💧 Water Usage (L)").
				Description("Water consumption during production").
				Value(&f.Water).
				Validate(validateQuantity),
			huh.NewSelect[bool]().
				Title("🐄 Animal-Based Product").
				Options(huh.NewOption("🌱 No", false), huh.NewOption("🐄 Yes", true)).
				Value(&f.AnimalBased),
			huh.NewSelect[bool]().
				Title("🌍 Imported Product").
				Options(huh.NewOption("🏠 Local", false), huh.NewOption("✈️ Yes", true)).
				Value(&f.Imported),
		),
		huh.NewGroup(
			huh.NewMultiSelect[features.Category]().
				Title("📦 Product Category").
				Description("Select every category that applies.").
				Options(options(features.Categories(), categoryLabels)...).
				Value(&f.Categories),
			huh.NewMultiSelect[features.Packaging]().
				Title("📦 Packaging Materials").
				Options(options(features.PackagingMaterials(), packagingLabels)...).
				Value(&f.Packaging),
			huh.NewMultiSelect[features.Transport]().
				Title("🚛 Transportation Mode").
				Options(options(features.TransportModes(), transportLabels)...).
				Value(&f.Transport),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("🔮 Predict Eco Score").
				Affirmative("Predict").
				Negative("Cancel").
				Value(&f.Submit),
		),
	).WithTheme(huh.ThemeCharm())
}

func options[T comparable](values []T, labels map[T]string) []huh.Option[T] {
	out := make([]huh.Option[T], 0, len(values))
	for _, v := range values {
		label, ok := labels[v]
		if !ok {
			label = fmt.Sprint(v)
		}
		out = append(out, huh.NewOption(label, v))
	}
	return out
}

// Request converts the bound values into a prediction request.
func (f *ProductForm) Request() (features.PredictionRequest, error) {
	carbon, err := parseQuantity(f.Carbon)
	if err != nil {
		return features.PredictionRequest{}, apperr.Userf("carbon footprint: %v", err)
	}
	water, err := parseQuantity(f.Water)
	if err != nil {
		return features.PredictionRequest{}, apperr.Userf("water usage: %v", err)
	}
	req := features.PredictionRequest{
		CarbonKg:    carbon,
		WaterL:      water,
		AnimalBased: f.AnimalBased,
		Imported:    f.Imported,
		Categories:  f.Categories,
		Packaging:   f.Packaging,
		Transport:   f.Transport,
	}
	return req, req.Validate()
}

func parseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	if v < 0 {
		return 0, errors.New("must be 0 or more")
	}
	return v, nil
}

func validateQuantity(s string) error {
	_, err := parseQuantity(s)
	return err
}

// FormPrompter collects requests through interactive huh forms.
type FormPrompter struct {
	// Accessible switches huh into its line-based accessible mode.
	Accessible bool
}

// Prompt shows the product form once.
func (p *FormPrompter) Prompt(ctx context.Context) (features.PredictionRequest, error) {
	f := NewProductForm()
	if err := f.Form().WithAccessible(p.Accessible).RunWithContext(ctx); err != nil {
		return features.PredictionRequest{}, formError(err)
	}
	if !f.Submit {
		return features.PredictionRequest{}, apperr.ErrCancelled
	}
	return f.Request()
}

// Continue asks whether to score another product.
func (p *FormPrompter) Continue(ctx context.Context) (bool, error) {
	again := true
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Score another product?").
			Affirmative("Yes").
			Negative("Quit").
			Value(&again),
	)).WithTheme(huh.ThemeCharm()).WithAccessible(p.Accessible).RunWithContext(ctx)
	if err != nil {
		return false, formError(err)
	}
	return again, nil
}

func formError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return apperr.ErrCancelled
	}
	return err
}
