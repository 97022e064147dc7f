package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/bom"
	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

// modelCmd describes the scoring artifact and optionally exports an ML-BOM
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the scoring artifact and export its ML-BOM",
	Long:  "Loads the scoring artifact, prints its name, kind, digest and feature layout, and with --bom writes a CycloneDX ML-BOM describing it.",
	RunE:  runModel,
}

func runModel(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings()
	if err != nil {
		return err
	}

	bomPath := strings.TrimSpace(viper.GetString("model.bom"))
	bomFormat := viper.GetString("model.bom-format")
	if bomFormat == "" {
		bomFormat = "auto"
	}
	specVersion := strings.TrimSpace(viper.GetString("model.spec"))
	if specVersion != "" {
		if _, ok := bom.ParseSpecVersion(specVersion); !ok {
			return apperr.Userf("unsupported --spec %q (expected 1.0 to 1.6)", specVersion)
		}
	}

	st.wireLogging(cmd.ErrOrStderr())
	handle := model.Open(st.modelPath)
	if err := handle.Err(); err != nil {
		ui.NewResultUI(cmd.ErrOrStderr(), st.quiet(), handle.Path()).ShowModelUnavailable(err)
		return err
	}

	info := handle.Info()
	artifactUI := ui.NewArtifactUI(cmd.OutOrStdout(), st.quiet())
	artifactUI.PrintSummary(ui.ArtifactSummary{
		Name:     info.Name,
		Version:  info.Version,
		Kind:     string(info.Kind),
		Path:     info.Path,
		SHA256:   info.SHA256,
		Trees:    info.Trees,
		Features: info.Features,
	})

	if bomPath == "" {
		return nil
	}

	doc, err := bom.Build(info, bom.ToolVersion())
	if err != nil {
		return err
	}
	if err := bom.Write(doc, bomPath, bomFormat, specVersion); err != nil {
		return err
	}
	if err := bom.Verify(bomPath, bomFormat, doc.Metadata.Component.Name, info.SHA256); err != nil {
		return err
	}
	format, _ := bom.ResolveFormat(bomPath, bomFormat)
	artifactUI.PrintBOMWritten(bomPath, format)
	return nil
}

func init() {
	modelCmd.Flags().String("bom", "", "Write a CycloneDX ML-BOM of the artifact to this path")
	modelCmd.Flags().String("bom-format", "", "ML-BOM format: json|xml|auto")
	modelCmd.Flags().String("spec", "", "CycloneDX spec version for the ML-BOM (default: latest)")

	viper.BindPFlag("model.bom", modelCmd.Flags().Lookup("bom"))
	viper.BindPFlag("model.bom-format", modelCmd.Flags().Lookup("bom-format"))
	viper.BindPFlag("model.spec", modelCmd.Flags().Lookup("spec"))
}
