// Package score buckets a predicted eco score into display tiers and derives
// the metrics shown next to it.
package score

import "math"

// Tier is a display bucket for a score.
type Tier int

const (
	TierPoor Tier = iota
	TierFair
	TierGood
	TierExcellent
)

// Tier thresholds. Each bound is inclusive on its own tier.
const (
	ExcellentMin = 80.0
	GoodMin      = 60.0
	FairMin      = 40.0
)

// Baseline is the average score the delta metric compares against.
const Baseline = 50.0

// Treatment selects the colour scheme of a result panel.
type Treatment int

const (
	TreatmentExcellent Treatment = iota
	TreatmentGood
	TreatmentPoor
)

type tierText struct {
	label          string
	emoji          string
	message        string
	recommendation string
	treatment      Treatment
}

var tiers = map[Tier]tierText{
	TierExcellent: {
		label:          "Excellent",
		emoji:          "🌟",
		message:        "Excellent Environmental Performance!",
		recommendation: "Your product has minimal environmental impact. Keep up the great work!",
		treatment:      TreatmentExcellent,
	},
	TierGood: {
		label:          "Good",
		emoji:          "✅",
		message:        "Good Environmental Performance",
		recommendation: "Your product is environmentally friendly with room for minor improvements.",
		treatment:      TreatmentGood,
	},
	// Fair shares the amber panel with Good.
	TierFair: {
		label:          "Fair",
		emoji:          "⚠️",
		message:        "Fair Environmental Performance",
		recommendation: "Consider reducing packaging or choosing more sustainable materials.",
		treatment:      TreatmentGood,
	},
	TierPoor: {
		label:          "Poor",
		emoji:          "❌",
		message:        "Needs Environmental Improvement",
		recommendation: "Focus on reducing carbon footprint, using sustainable packaging, and local sourcing.",
		treatment:      TreatmentPoor,
	},
}

// Classify maps a raw score to its tier. NaN falls through to Poor.
func Classify(score float64) Tier {
	switch {
	case score >= ExcellentMin:
		return TierExcellent
	case score >= GoodMin:
		return TierGood
	case score >= FairMin:
		return TierFair
	default:
		return TierPoor
	}
}

func (t Tier) text() tierText {
	if tt, ok := tiers[t]; ok {
		return tt
	}
	return tiers[TierPoor]
}

func (t Tier) String() string { return t.text().label }

// Emoji returns the icon shown in the panel heading.
func (t Tier) Emoji() string { return t.text().emoji }

// Message returns the panel heading.
func (t Tier) Message() string { return t.text().message }

// Recommendation returns the advice shown under the score.
func (t Tier) Recommendation() string { return t.text().recommendation }

// Treatment returns the colour scheme for the tier.
func (t Tier) Treatment() Treatment { return t.text().treatment }

// Floor returns the lowest score of the tier.
func (t Tier) Floor() float64 {
	switch t {
	case TierExcellent:
		return ExcellentMin
	case TierGood:
		return GoodMin
	case TierFair:
		return FairMin
	default:
		return math.Inf(-1)
	}
}

// Progress is the fraction of the bar to fill. Only this metric is clamped.
func Progress(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(0, math.Min(1, score/100))
}

// Delta is the difference to Baseline, unclamped.
func Delta(score float64) float64 { return score - Baseline }

// Percentile is a coarse estimate capped at 99.
func Percentile(score float64) int {
	p := math.Min(99, math.Floor(score*1.2))
	if math.IsNaN(p) || math.IsInf(p, -1) {
		return 0
	}
	return int(p)
}

// Result is one prediction ready for display.
type Result struct {
	Score float64
	Tier  Tier
}

// NewResult classifies score. The score is kept as the model returned it.
func NewResult(score float64) Result {
	return Result{Score: score, Tier: Classify(score)}
}

func (r Result) Progress() float64 { return Progress(r.Score) }
func (r Result) Delta() float64    { return Delta(r.Score) }
func (r Result) Percentile() int   { return Percentile(r.Score) }
