package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

// ResultUI renders the intro, score results and blocking errors
type ResultUI struct {
	writer    io.Writer
	quiet     bool
	modelPath string
}

// NewResultUI creates a new renderer. modelPath is shown when the model
// cannot be found.
func NewResultUI(w io.Writer, quiet bool, modelPath string) *ResultUI {
	return &ResultUI{writer: w, quiet: quiet, modelPath: modelPath}
}

// ShowIntro prints the banner and the about, usage and tips panels
func (r *ResultUI) ShowIntro() {
	if r.quiet {
		return
	}

	fmt.Fprintln(r.writer, RenderGradientBanner(BannerASCII))
	fmt.Fprintln(r.writer, Subtitle.Render("🌱 Predict the environmental impact of a product"))
	fmt.Fprintln(r.writer)

	about := SectionHeader.Render("🌍 About") + "\n" +
		"This tool predicts an eco score from 0 to 100 for a product,\n" +
		"based on its production footprint, packaging and transport."

	var usage strings.Builder
	usage.WriteString(SectionHeader.Render("📋 How to Use"))
	for i, step := range []string{
		"Enter the carbon footprint and water usage",
		"Tell whether the product is animal-based or imported",
		"Select categories, packaging materials and transport modes",
		"Submit the form to get the score",
	} {
		usage.WriteString(fmt.Sprintf("\n%d. %s", i+1, step))
	}

	var tips strings.Builder
	tips.WriteString(SectionHeader.Render("💡 Tips"))
	for _, tip := range []string{
		"Local products usually score higher",
		"Glass, paper and compostable packaging help",
		"Truck and ship transport beat air freight",
	} {
		tips.WriteString("\n" + GetBullet() + " " + tip)
	}

	fmt.Fprintln(r.writer, SectionBox.Render(about))
	fmt.Fprintln(r.writer, SectionBox.Render(usage.String()))
	fmt.Fprintln(r.writer, InfoBox.Render(tips.String()))
}

// ShowResult prints the score panel, progress bar, metrics and impact
func (r *ResultUI) ShowResult(req features.PredictionRequest, res score.Result) {
	if r.quiet {
		return
	}

	var out strings.Builder
	out.WriteString(r.renderScorePanel(res))
	out.WriteString("\n\n")

	out.WriteString(FormatKeyValue("Progress", r.renderProgressBar(res.Progress(), res.Tier.Treatment(), 40)+" "+fmt.Sprintf("%.0f%%", res.Progress()*100)))
	out.WriteString("\n\n")

	out.WriteString(r.renderMetrics(res))

	if impact := features.Impact(req); len(impact) > 0 {
		out.WriteString("\n\n")
		out.WriteString(r.renderImpact(impact))
	}

	fmt.Fprintln(r.writer, out.String())
}

func (r *ResultUI) renderScorePanel(res score.Result) string {
	headline := lipgloss.NewStyle().
		Foreground(TreatmentColor(res.Tier.Treatment())).
		Bold(true).
		Render(res.Tier.Emoji() + " " + res.Tier.Message())

	body := headline + "\n\n" +
		Bold.Render(fmt.Sprintf("%.1f/100", res.Score)) + "\n\n" +
		Dim.Render(res.Tier.Recommendation())

	return TreatmentBox(res.Tier.Treatment()).Render(body)
}

// renderMetrics lays the three metric cards out side by side
func (r *ResultUI) renderMetrics(res score.Result) string {
	cards := []string{
		MetricBox.Render(Dim.Render("Eco Score") + "\n" +
			Bold.Render(fmt.Sprintf("%.1f", res.Score)) + "\n" +
			r.renderDelta(res.Delta())),
		MetricBox.Render(Dim.Render("Category") + "\n" +
			Bold.Render(res.Tier.String()) + "\n" +
			res.Tier.Emoji()),
		MetricBox.Render(Dim.Render("Percentile") + "\n" +
			Bold.Render(fmt.Sprintf("%d%%", res.Percentile())) + "\n" +
			Muted.Render("of products")),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (r *ResultUI) renderDelta(d float64) string {
	s := fmt.Sprintf("%+.1f vs avg", d)
	if d >= 0 {
		return Success.Render(s)
	}
	return Error.Render(s)
}

func (r *ResultUI) renderImpact(impact []features.Indicator) string {
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render("📊 Environmental Impact"))
	for _, ind := range impact {
		sb.WriteString("\n")
		sb.WriteString(FormatKeyValue(ind.Label, Highlight.Render(ind.Value)+" "+Muted.Render("("+ind.Delta+")")))
	}
	return sb.String()
}

// renderProgressBar creates a visual progress bar
func (r *ResultUI) renderProgressBar(progress float64, t score.Treatment, width int) string {
	filled := int(progress * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	bar := lipgloss.NewStyle().Foreground(TreatmentColor(t)).Render(strings.Repeat("█", filled))
	return bar + ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// ShowModelUnavailable prints the blocking missing-model panel
func (r *ResultUI) ShowModelUnavailable(err error) {
	if r.quiet {
		return
	}

	path := r.modelPath
	var mu *apperr.ModelUnavailableError
	if errors.As(err, &mu) && mu.Path != "" {
		path = mu.Path
	}

	var sb strings.Builder
	sb.WriteString(Error.Bold(true).Render(fmt.Sprintf("⚠️ Model could not be loaded. Please ensure '%s' is in the correct directory.", path)))
	sb.WriteString("\n")
	sb.WriteString(Dim.Render("📁 Expected file location: " + path))
	if mu != nil && mu.Err != nil {
		sb.WriteString("\n")
		sb.WriteString(Muted.Render(mu.Err.Error()))
	}
	fmt.Fprintln(r.writer, ErrorBox.Render(sb.String()))
}

// ShowPredictionFailure prints the recoverable scoring error panel
func (r *ResultUI) ShowPredictionFailure(err error) {
	if r.quiet {
		return
	}

	msg := "unknown error"
	var pe *apperr.PredictionError
	switch {
	case errors.As(err, &pe) && pe.Err != nil:
		msg = pe.Err.Error()
	case err != nil:
		msg = err.Error()
	}

	body := GetCrossMark() + " " + Error.Render("Error making prediction: "+msg) + "\n" +
		GetInfoMark() + " " + Dim.Render("Please check your model file and input data.")
	fmt.Fprintln(r.writer, ErrorBox.Render(body))
}

// ShowInputError prints rejected form input. The session re-prompts after it.
func (r *ResultUI) ShowInputError(err error) {
	if r.quiet || err == nil {
		return
	}
	fmt.Fprintln(r.writer, GetWarnMark()+" "+Warning.Render("Invalid input: "+err.Error()))
}
