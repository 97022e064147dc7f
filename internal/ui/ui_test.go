package ui

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

func TestColorAppliesANSICodes(t *testing.T) {
	Init(false)
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorDisabled(t *testing.T) {
	Init(true)
	defer Init(false)
	if got := Color("hello", FgRed); got != "hello" {
		t.Fatalf("Color() = %q, want plain text", got)
	}
}

func TestResultUI_ShowResult(t *testing.T) {
	tests := []struct {
		name  string
		req   features.PredictionRequest
		score float64
		quiet bool
		want  []string
	}{
		{
			name:  "fair with zero inputs",
			score: 45,
			want: []string{
				"⚠️ Fair Environmental Performance",
				"45.0/100",
				"Consider reducing packaging or choosing more sustainable materials.",
				"45%",
				"-5.0 vs avg",
				"Fair",
				"54%",
			},
		},
		{
			name:  "excellent with impact",
			req:   features.PredictionRequest{CarbonKg: 2, WaterL: 10},
			score: 91.3,
			want: []string{
				"🌟 Excellent Environmental Performance!",
				"91.3/100",
				"+41.3 vs avg",
				"99%",
				"Carbon Impact",
				"4.4 lbs CO2",
				"2.6 gallons",
			},
		},
		{
			name:  "poor",
			score: 12,
			want:  []string{"❌ Needs Environmental Improvement", "12.0/100", "12%", "14%"},
		},
		{
			name:  "quiet mode produces no output",
			score: 50,
			quiet: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewResultUI(&buf, tt.quiet, "eco_model.yaml")
			r.ShowResult(tt.req, score.NewResult(tt.score))

			output := buf.String()
			if tt.quiet {
				if output != "" {
					t.Errorf("Expected no output in quiet mode, got: %q", output)
				}
				return
			}
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string %q.\nGot:\n%s", want, output)
				}
			}
		})
	}
}

func TestResultUI_NoImpactForZeroQuantities(t *testing.T) {
	var buf bytes.Buffer
	NewResultUI(&buf, false, "").ShowResult(features.PredictionRequest{}, score.NewResult(70))
	if strings.Contains(buf.String(), "Environmental Impact") {
		t.Fatalf("impact section should be omitted:\n%s", buf.String())
	}
}

func TestResultUI_ShowModelUnavailable(t *testing.T) {
	var buf bytes.Buffer
	r := NewResultUI(&buf, false, "fallback.yaml")
	r.ShowModelUnavailable(&apperr.ModelUnavailableError{Path: "models/eco.yaml", Err: errors.New("no such file")})

	out := buf.String()
	for _, want := range []string{
		"⚠️ Model could not be loaded. Please ensure 'models/eco.yaml' is in the correct directory.",
		"📁 Expected file location: models/eco.yaml",
		"no such file",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", want, out)
		}
	}
}

func TestResultUI_ShowModelUnavailableFallsBackToConfiguredPath(t *testing.T) {
	var buf bytes.Buffer
	NewResultUI(&buf, false, "fallback.yaml").ShowModelUnavailable(apperr.ErrModelUnavailable)
	if !strings.Contains(buf.String(), "'fallback.yaml'") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestResultUI_ShowPredictionFailure(t *testing.T) {
	var buf bytes.Buffer
	NewResultUI(&buf, false, "").ShowPredictionFailure(&apperr.PredictionError{Err: errors.New("bad booster")})

	out := buf.String()
	if !strings.Contains(out, "Error making prediction: bad booster") {
		t.Errorf("missing error line:\n%s", out)
	}
	if !strings.Contains(out, "Please check your model file and input data.") {
		t.Errorf("missing hint line:\n%s", out)
	}
}

func TestResultUI_ShowInputError(t *testing.T) {
	var buf bytes.Buffer
	NewResultUI(&buf, false, "").ShowInputError(apperr.User("water must be a finite number"))
	if !strings.Contains(buf.String(), "Invalid input: water must be a finite number") {
		t.Errorf("missing input error:\n%s", buf.String())
	}

	buf.Reset()
	NewResultUI(&buf, true, "").ShowInputError(apperr.User("x"))
	if buf.Len() != 0 {
		t.Errorf("quiet UI wrote %q", buf.String())
	}
}

func TestResultUI_ShowIntro(t *testing.T) {
	var buf bytes.Buffer
	NewResultUI(&buf, false, "").ShowIntro()
	for _, want := range []string{"About", "How to Use", "Tips"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("intro missing %q", want)
		}
	}

	buf.Reset()
	NewResultUI(&buf, true, "").ShowIntro()
	if buf.Len() != 0 {
		t.Errorf("quiet intro wrote %q", buf.String())
	}
}

func TestRenderProgressBar(t *testing.T) {
	r := NewResultUI(nil, false, "")

	tests := []struct {
		name       string
		progress   float64
		width      int
		wantFilled int
	}{
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"empty", 0.0, 10, 0},
		{"partial", 0.75, 20, 15},
		{"overflow", 1.5, 10, 10},
		{"negative", -0.2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := r.renderProgressBar(tt.progress, score.TreatmentGood, tt.width)
			filled := strings.Count(bar, "█")
			empty := strings.Count(bar, "░")
			if filled != tt.wantFilled || filled+empty != tt.width {
				t.Errorf("bar has %d filled and %d empty cells, want %d of %d", filled, empty, tt.wantFilled, tt.width)
			}
		})
	}
}

func TestProductForm_Request(t *testing.T) {
	f := NewProductForm()
	f.Carbon = " 2.5 "
	f.Water = ""
	f.AnimalBased = true
	f.Categories = []features.Category{features.CategoryFood}
	f.Packaging = []features.Packaging{features.PackagingGlass, features.PackagingPaper}
	f.Transport = []features.Transport{features.TransportShip}

	req, err := f.Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if req.CarbonKg != 2.5 || req.WaterL != 0 || !req.AnimalBased || req.Imported {
		t.Fatalf("unexpected request %+v", req)
	}
	row := features.Encode(req)
	if row[2] != 1 || row[3] != 0 {
		t.Fatalf("flags not encoded: %v", row)
	}
}

func TestProductForm_RequestDefaultsAreZero(t *testing.T) {
	req, err := NewProductForm().Request()
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	for i, v := range features.Encode(req) {
		if v != 0 {
			t.Fatalf("row[%d] = %v, want 0", i, v)
		}
	}
}

func TestProductForm_RequestRejectsBadQuantities(t *testing.T) {
	tests := []struct {
		carbon, water string
		want          string
	}{
		{"abc", "0", "carbon footprint"},
		{"-1", "0", "must be 0 or more"},
		{"1", "x1", "water usage"},
		{"NaN", "0", "not a finite number"},
		{"0", "+Inf", "not a finite number"},
	}
	for _, tt := range tests {
		t.Run(tt.carbon+"/"+tt.water, func(t *testing.T) {
			f := NewProductForm()
			f.Carbon, f.Water = tt.carbon, tt.water
			_, err := f.Request()
			if !apperr.IsUser(err) || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want user error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateQuantityBlocksNonFinite(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf", "infinity"} {
		if err := validateQuantity(in); err == nil {
			t.Errorf("validateQuantity(%q) = nil, want error", in)
		}
	}
	for _, in := range []string{"", "0", "0.00", " 12.5 "} {
		if err := validateQuantity(in); err != nil {
			t.Errorf("validateQuantity(%q) = %v", in, err)
		}
	}
}

func TestOptionsUseLabels(t *testing.T) {
	opts := options(features.Categories(), categoryLabels)
	if len(opts) != 4 {
		t.Fatalf("got %d options", len(opts))
	}
	if opts[3].Key != "🧴 Personal Care" || opts[3].Value != features.CategoryPersonalCare {
		t.Fatalf("option = %+v", opts[3])
	}

	unlabelled := options(features.TransportModes(), map[features.Transport]string{})
	if unlabelled[0].Key != fmt.Sprint(features.TransportModes()[0]) {
		t.Fatalf("missing label should fall back to the value: %+v", unlabelled[0])
	}
}

func TestFormErrorMapsAbort(t *testing.T) {
	if !errors.Is(formError(huh.ErrUserAborted), apperr.ErrCancelled) {
		t.Fatalf("abort should map to ErrCancelled")
	}
	boom := errors.New("tty closed")
	if formError(boom) != boom {
		t.Fatalf("other errors pass through")
	}
}

func TestRunWithSpinnerQuiet(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("load failed")
	if err := RunWithSpinner(&buf, true, "Loading", func() error { return boom }); err != boom {
		t.Fatalf("err = %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("quiet spinner wrote %q", buf.String())
	}
}

func TestSpinnerModelQuitsOnDone(t *testing.T) {
	done := make(chan struct{})
	m := NewSpinnerModel("Loading model", done)
	if !strings.Contains(m.render(), "Loading model") {
		t.Fatalf("view = %q", m.render())
	}

	next, cmd := m.Update(DoneMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if got := next.(SpinnerModel); !got.finished || got.render() != "" {
		t.Fatalf("model should be finished and blank")
	}

	close(done)
	if _, ok := waitFor(done)().(DoneMsg); !ok {
		t.Fatalf("waitFor should yield DoneMsg")
	}
}

func TestArtifactUI_PrintSummary(t *testing.T) {
	s := ArtifactSummary{
		Name:     "eco-xgb",
		Kind:     "tree_ensemble",
		Path:     "eco_model.yaml",
		SHA256:   "abcd",
		Trees:    3,
		Features: features.Columns,
	}

	var buf bytes.Buffer
	NewArtifactUI(&buf, false).PrintSummary(s)
	out := buf.String()
	for _, want := range []string{"Model Artifact", "eco-xgb", "(unversioned)", "tree_ensemble", "eco_model.yaml", "abcd", "Features (19)", "Transport Mode_Truck"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", want, out)
		}
	}

	buf.Reset()
	NewArtifactUI(&buf, true).PrintSummary(s)
	NewArtifactUI(&buf, true).PrintBOMWritten("bom.json", "json")
	if buf.Len() != 0 {
		t.Errorf("quiet mode wrote %q", buf.String())
	}
}

func TestArtifactUI_PrintBOMWritten(t *testing.T) {
	var buf bytes.Buffer
	NewArtifactUI(&buf, false).PrintBOMWritten("dist/model.cdx.json", "json")
	if !strings.Contains(buf.String(), "dist/model.cdx.json") || !strings.Contains(buf.String(), "(json)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
