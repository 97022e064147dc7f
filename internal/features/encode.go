package features

import (
	"fmt"
	"strconv"
	"strings"
)

// NumColumns is the width of every encoded row.
const NumColumns = 19

// Columns are the model's input names, in the order it was fit on.
// Changing this order breaks every existing artifact.
var Columns = []string{
	"Carbon (kg)",
	"Water (L)",
	"Animal-Based",
	"Imported",
	"Category_Accessories",
	"Category_Beverage",
	"Category_Food",
	"Category_Personal Care",
	"Packaging_Cardboard",
	"Packaging_Compost",
	"Packaging_Foil",
	"Packaging_Glass",
	"Packaging_Paper",
	"Packaging_Plastic",
	"Packaging_TetraPak",
	"Packaging_no packing",
	"Transport Mode_Air",
	"Transport Mode_Ship",
	"Transport Mode_Truck",
}

// Row is one encoded request.
type Row []float64

// Encode builds the model row for r. Booleans become 0 or 1.
func Encode(r PredictionRequest) Row {
	row := make(Row, 0, NumColumns)
	row = append(row, r.CarbonKg, r.WaterL, flag(r.AnimalBased), flag(r.Imported))
	for _, c := range Categories() {
		row = append(row, flag(r.HasCategory(c)))
	}
	for _, p := range PackagingMaterials() {
		row = append(row, flag(r.HasPackaging(p)))
	}
	for _, t := range TransportModes() {
		row = append(row, flag(r.HasTransport(t)))
	}
	return row
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// ColumnIndex resolves a column by its model name or by XGBoost's positional
// "f<index>" form.
func ColumnIndex(name string) (int, bool) {
	for i, c := range Columns {
		if c == name {
			return i, true
		}
	}
	if rest, ok := strings.CutPrefix(name, "f"); ok {
		if idx, err := strconv.Atoi(rest); err == nil && idx >= 0 && idx < NumColumns && strconv.Itoa(idx) == rest {
			return idx, true
		}
	}
	return 0, false
}

// Indicator is one side-panel impact metric.
type Indicator struct {
	Label string
	Value string
	Delta string
}

// Impact converts the raw quantities into the familiar units shown next to the form.
// Zero quantities produce no indicator.
func Impact(r PredictionRequest) []Indicator {
	var out []Indicator
	if r.CarbonKg > 0 {
		out = append(out, Indicator{
			Label: "Carbon Impact",
			Value: fmt.Sprintf("%g kg", r.CarbonKg),
			Delta: fmt.Sprintf("%.1f lbs CO2", r.CarbonKg*2.2),
		})
	}
	if r.WaterL > 0 {
		out = append(out, Indicator{
			Label: "Water Usage",
			Value: fmt.Sprintf("%g L", r.WaterL),
			Delta: fmt.Sprintf("%.1f gallons", r.WaterL*0.26),
		})
	}
	return out
}
