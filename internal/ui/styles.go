package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"

	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

// Color palette for the application (single source of truth)
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#4CAF50") // Leaf green
	ColorSecondary = lipgloss.Color("#2E7D32") // Forest green
	ColorInfo      = lipgloss.Color("#2196F3") // Blue
	ColorSuccess   = lipgloss.Color("#8BC34A") // Light green
	ColorWarning   = lipgloss.Color("#FF9800") // Orange
	ColorError     = lipgloss.Color("#F44336") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorHighlight = lipgloss.Color("#C8E6C9") // Pale green

	// Text colors
	ColorText     = lipgloss.Color("#F9FAFB") // White
	ColorTextDim  = lipgloss.Color("#9CA3AF") // Light gray
	ColorTextMute = lipgloss.Color("#6B7280") // Muted gray
)

// styleWrapper wraps a lipgloss style
type styleWrapper struct {
	style lipgloss.Style
}

// Render renders the string with the style
func (s styleWrapper) Render(str string) string {
	return s.style.Render(str)
}

// Bold returns a new style with bold enabled
func (s styleWrapper) Bold(v bool) styleWrapper {
	return styleWrapper{s.style.Bold(v)}
}

// Text styles using lipgloss
var (
	Bold = styleWrapper{lipgloss.NewStyle().Bold(true)}

	// Dimmed text for secondary information
	Dim = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextDim)}

	// Muted text for hints
	Muted = styleWrapper{lipgloss.NewStyle().Foreground(ColorTextMute)}

	Success = styleWrapper{lipgloss.NewStyle().Foreground(ColorSuccess)}
	Warning = styleWrapper{lipgloss.NewStyle().Foreground(ColorWarning)}
	Error   = styleWrapper{lipgloss.NewStyle().Foreground(ColorError)}
	Info    = styleWrapper{lipgloss.NewStyle().Foreground(ColorInfo)}

	Primary   = styleWrapper{lipgloss.NewStyle().Foreground(ColorPrimary)}
	Secondary = styleWrapper{lipgloss.NewStyle().Foreground(ColorSecondary)}

	Highlight = styleWrapper{lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)}
)

// GetCheckMark returns a styled check mark
func GetCheckMark() string { return Success.Render("✓") }

// GetCrossMark returns a styled cross mark
func GetCrossMark() string { return Error.Render("✗") }

// GetWarnMark returns a styled warning mark
func GetWarnMark() string { return Warning.Render("⚠") }

// GetInfoMark returns a styled info mark
func GetInfoMark() string { return Info.Render("ℹ") }

// GetBullet returns a styled bullet point
func GetBullet() string { return Muted.Render("•") }

// Box styles for panels and containers
type boxWrapper struct {
	style lipgloss.Style
}

func (b boxWrapper) Render(str string) string {
	return b.style.Render(str)
}

var (
	// Standard box with border
	Box = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1)}

	// Section panel, green left accent
	SectionBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorPrimary).
			Padding(0, 1)}

	// Tips panel
	InfoBox = boxWrapper{lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorInfo).
		Padding(0, 1)}

	ErrorBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)}

	// Metric card in the result row
	MetricBox = boxWrapper{lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 2).
			Align(lipgloss.Center)}
)

// Score panels, one per score.Treatment
var (
	ScoreExcellentBox = boxWrapper{scorePanel(ColorPrimary)}
	ScoreGoodBox      = boxWrapper{scorePanel(ColorWarning)}
	ScorePoorBox      = boxWrapper{scorePanel(ColorError)}
)

func scorePanel(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(c).
		Padding(1, 4).
		Align(lipgloss.Center)
}

// TreatmentBox selects the score panel for a treatment.
func TreatmentBox(t score.Treatment) boxWrapper {
	switch t {
	case score.TreatmentExcellent:
		return ScoreExcellentBox
	case score.TreatmentGood:
		return ScoreGoodBox
	default:
		return ScorePoorBox
	}
}

// TreatmentColor is the accent colour of a treatment.
func TreatmentColor(t score.Treatment) color.Color {
	switch t {
	case score.TreatmentExcellent:
		return ColorPrimary
	case score.TreatmentGood:
		return ColorWarning
	default:
		return ColorError
	}
}

// Header styles
var (
	Title = styleWrapper{lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)}

	Subtitle = styleWrapper{lipgloss.NewStyle().
			Foreground(ColorTextDim).
			Italic(true)}

	SectionHeader = styleWrapper{lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)}
)

// Empty portion of a progress bar
var ProgressEmpty = styleWrapper{lipgloss.NewStyle().Foreground(ColorMuted)}

// FormatKeyValue formats a key-value pair with styling
func FormatKeyValue(key, value string) string {
	return Dim.Render(key+": ") + value
}

// FormatStatus formats a status message with an appropriate icon
func FormatStatus(status, message string) string {
	var icon string
	switch status {
	case "success":
		icon = GetCheckMark()
	case "error":
		icon = GetCrossMark()
	case "warning":
		icon = GetWarnMark()
	case "info":
		icon = GetInfoMark()
	default:
		icon = GetBullet()
	}
	return icon + " " + message
}

// FangColorScheme returns a Fang color scheme based on the application's color palette
func FangColorScheme(c lipgloss.LightDarkFunc) fang.ColorScheme {
	return fang.ColorScheme{
		Base:           ColorText,
		Title:          ColorPrimary,
		Description:    ColorTextDim,
		Codeblock:      c(lipgloss.Color("#1F2937"), lipgloss.Color("#1B2E1C")),
		Program:        ColorSecondary,
		DimmedArgument: ColorMuted,
		Comment:        ColorMuted,
		Flag:           ColorSuccess,
		FlagDefault:    ColorTextDim,
		Command:        ColorPrimary,
		QuotedString:   ColorSecondary,
		Argument:       ColorText,
		Help:           ColorTextDim,
		Dash:           ColorMuted,
		ErrorHeader:    [2]color.Color{ColorText, ColorError},
		ErrorDetails:   ColorError,
	}
}

// BannerASCII is the ASCII art banner for the application
const BannerASCII = `
 ___ ___ ___    ___  ___ ___  ___ ___
| __/ __/ _ \  / __|/ __/ _ \| _ \ __|
| _| (_| (_) | \__ \ (_| (_) |   / _|
|___\___\___/  |___/\___\___/|_|_\___|
`

// RenderGradientBanner renders the banner in the primary colour
func RenderGradientBanner(banner string) string {
	return Primary.Render(banner)
}
