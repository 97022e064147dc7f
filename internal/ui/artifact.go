package ui

import (
	"fmt"
	"io"
	"strings"
)

// ArtifactSummary mirrors model.Info to avoid circular imports
type ArtifactSummary struct {
	Name     string
	Version  string
	Kind     string
	Path     string
	SHA256   string
	Trees    int
	Features []string
}

// ArtifactUI renders the model command output
type ArtifactUI struct {
	writer io.Writer
	quiet  bool
}

// NewArtifactUI creates a new UI handler for the model command
func NewArtifactUI(w io.Writer, quiet bool) *ArtifactUI {
	return &ArtifactUI{writer: w, quiet: quiet}
}

// PrintSummary renders the artifact details and its feature layout
func (a *ArtifactUI) PrintSummary(s ArtifactSummary) {
	if a.quiet {
		return
	}

	var sb strings.Builder
	sb.WriteString(Title.Render("🤖 Model Artifact"))
	sb.WriteString("\n\n")

	version := s.Version
	if version == "" {
		version = Muted.Render("(unversioned)")
	}
	sb.WriteString(FormatKeyValue("Name", Highlight.Render(s.Name)) + "\n")
	sb.WriteString(FormatKeyValue("Version", version) + "\n")
	sb.WriteString(FormatKeyValue("Kind", s.Kind) + "\n")
	if s.Trees > 0 {
		sb.WriteString(FormatKeyValue("Trees", fmt.Sprintf("%d", s.Trees)) + "\n")
	}
	sb.WriteString(FormatKeyValue("Path", s.Path) + "\n")
	sb.WriteString(FormatKeyValue("SHA-256", Dim.Render(s.SHA256)) + "\n\n")

	sb.WriteString(SectionHeader.Render(fmt.Sprintf("Features (%d)", len(s.Features))))
	for i, f := range s.Features {
		sb.WriteString(fmt.Sprintf("\n%s %s", Muted.Render(fmt.Sprintf("%2d", i)), f))
	}

	fmt.Fprintln(a.writer, Box.Render(sb.String()))
}

// PrintBOMWritten confirms where the ML-BOM was saved
func (a *ArtifactUI) PrintBOMWritten(path, format string) {
	if a.quiet {
		return
	}
	fmt.Fprintln(a.writer, FormatStatus("success", fmt.Sprintf("ML-BOM written to %s (%s)", Highlight.Render(path), format)))
}
