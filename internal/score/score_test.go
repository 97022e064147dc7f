package score

import (
	"math"
	"testing"
)

func TestClassify_Boundaries(t *testing.T) {
	tcs := []struct {
		score float64
		want  Tier
	}{
		{39.999, TierPoor},
		{40.0, TierFair},
		{59.999, TierFair},
		{60.0, TierGood},
		{79.999, TierGood},
		{80.0, TierExcellent},
		{100.0, TierExcellent},
		{0.0, TierPoor},
		{-15, TierPoor},
		{140, TierExcellent},
		{math.NaN(), TierPoor},
	}
	for _, tc := range tcs {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestTierText(t *testing.T) {
	tcs := []struct {
		tier      Tier
		label     string
		message   string
		treatment Treatment
	}{
		{TierExcellent, "Excellent", "Excellent Environmental Performance!", TreatmentExcellent},
		{TierGood, "Good", "Good Environmental Performance", TreatmentGood},
		{TierFair, "Fair", "Fair Environmental Performance", TreatmentGood},
		{TierPoor, "Poor", "Needs Environmental Improvement", TreatmentPoor},
	}
	for _, tc := range tcs {
		t.Run(tc.label, func(t *testing.T) {
			if tc.tier.String() != tc.label {
				t.Fatalf("String() = %q", tc.tier.String())
			}
			if tc.tier.Message() != tc.message {
				t.Fatalf("Message() = %q", tc.tier.Message())
			}
			if tc.tier.Treatment() != tc.treatment {
				t.Fatalf("Treatment() = %v", tc.tier.Treatment())
			}
			if tc.tier.Recommendation() == "" || tc.tier.Emoji() == "" {
				t.Fatalf("missing recommendation or emoji")
			}
		})
	}

	if TierFair.Recommendation() != "Consider reducing packaging or choosing more sustainable materials." {
		t.Fatalf("Fair recommendation = %q", TierFair.Recommendation())
	}
	if Tier(9).String() != "Poor" {
		t.Fatalf("out-of-range tier should render as Poor")
	}
}

func TestTierFloorMatchesClassify(t *testing.T) {
	for _, tier := range []Tier{TierFair, TierGood, TierExcellent} {
		if got := Classify(tier.Floor()); got != tier {
			t.Fatalf("Classify(%v.Floor()) = %v", tier, got)
		}
	}
}

func TestProgress(t *testing.T) {
	tcs := []struct{ in, want float64 }{
		{-10, 0.0},
		{0, 0.0},
		{50, 0.5},
		{100, 1.0},
		{150, 1.0},
		{45, 0.45},
		{math.NaN(), 0},
	}
	for _, tc := range tcs {
		if got := Progress(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Progress(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPercentile(t *testing.T) {
	tcs := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{50, 60},
		{82.5, 99},
		{100, 99},
		{10.5, 12},
		{-10, -12},
		{math.NaN(), 0},
	}
	for _, tc := range tcs {
		if got := Percentile(tc.in); got != tc.want {
			t.Fatalf("Percentile(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestResult_DeltaAndTierAreUnclamped(t *testing.T) {
	r := NewResult(-20)
	if r.Delta() != -70 {
		t.Fatalf("Delta() = %v, want -70", r.Delta())
	}
	if r.Progress() != 0 {
		t.Fatalf("Progress() = %v, want 0", r.Progress())
	}

	over := NewResult(120)
	if over.Score != 120 || over.Tier != TierExcellent || over.Delta() != 70 {
		t.Fatalf("unexpected result %+v delta %v", over, over.Delta())
	}
	if over.Percentile() != 99 {
		t.Fatalf("Percentile() = %d, want 99", over.Percentile())
	}
}

func TestResult_FairScenario(t *testing.T) {
	r := NewResult(45.0)
	if r.Tier != TierFair {
		t.Fatalf("tier = %v, want Fair", r.Tier)
	}
	if math.Abs(r.Progress()-0.45) > 1e-12 {
		t.Fatalf("progress = %v, want 0.45", r.Progress())
	}
	if r.Delta() != -5 {
		t.Fatalf("delta = %v, want -5", r.Delta())
	}
}
