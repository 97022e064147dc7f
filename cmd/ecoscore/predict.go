package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/predict"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

// predictCmd scores one product described entirely by flags
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score a single product from flags",
	Long:  "Score one product without the interactive form. Category, packaging and transport accept comma separated or repeated values.",
	Example: `  ecoscore predict --carbon 2.5 --water 120 --category food --packaging glass,paper --transport truck
  ecoscore predict --imported --transport air --format json`,
	RunE: runPredict,
}

// predictionJSON is the machine-readable result of predict --format json
type predictionJSON struct {
	Score          float64            `json:"score"`
	Tier           string             `json:"tier"`
	Message        string             `json:"message"`
	Recommendation string             `json:"recommendation"`
	Progress       float64            `json:"progress"`
	Delta          float64            `json:"delta"`
	Percentile     int                `json:"percentile"`
	Features       map[string]float64 `json:"features"`
}

func newPredictionJSON(req features.PredictionRequest, res score.Result) predictionJSON {
	row := features.Encode(req)
	named := make(map[string]float64, len(row))
	for i, v := range row {
		named[features.Columns[i]] = v
	}
	return predictionJSON{
		Score:          res.Score,
		Tier:           res.Tier.String(),
		Message:        res.Tier.Message(),
		Recommendation: res.Tier.Recommendation(),
		Progress:       res.Progress(),
		Delta:          res.Delta(),
		Percentile:     res.Percentile(),
		Features:       named,
	}
}

func runPredict(cmd *cobra.Command, args []string) error {
	st, err := resolveSettings()
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(viper.GetString("predict.format")))
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "json" {
		return apperr.Userf("invalid --format %q (expected text|json)", format)
	}

	req, err := requestFromFlags()
	if err != nil {
		return err
	}

	st.wireLogging(cmd.ErrOrStderr())
	handle := model.Open(st.modelPath)
	svc := predict.NewService(handle, predict.Options{Timeout: st.timeout})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Errors go to stderr as panels in text mode; the error itself is always returned.
	errUI := ui.NewResultUI(cmd.ErrOrStderr(), st.quiet() || format == "json", handle.Path())
	res, err := svc.Predict(ctx, req)
	switch {
	case err == nil:
	case apperr.IsModelUnavailable(err):
		errUI.ShowModelUnavailable(err)
		return err
	default:
		errUI.ShowPredictionFailure(err)
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(newPredictionJSON(req, res))
	}

	ui.NewResultUI(cmd.OutOrStdout(), st.quiet(), handle.Path()).ShowResult(req, res)
	return nil
}

// requestFromFlags builds and validates the request from bound flags and config.
func requestFromFlags() (features.PredictionRequest, error) {
	categories, err := features.ParseCategories(viper.GetStringSlice("predict.category"))
	if err != nil {
		return features.PredictionRequest{}, apperr.Userf("--category: %v", err)
	}
	packaging, err := features.ParsePackagingList(viper.GetStringSlice("predict.packaging"))
	if err != nil {
		return features.PredictionRequest{}, apperr.Userf("--packaging: %v", err)
	}
	transport, err := features.ParseTransportModes(viper.GetStringSlice("predict.transport"))
	if err != nil {
		return features.PredictionRequest{}, apperr.Userf("--transport: %v", err)
	}

	req := features.PredictionRequest{
		CarbonKg:    viper.GetFloat64("predict.carbon"),
		WaterL:      viper.GetFloat64("predict.water"),
		AnimalBased: viper.GetBool("predict.animal-based"),
		Imported:    viper.GetBool("predict.imported"),
		Categories:  categories,
		Packaging:   packaging,
		Transport:   transport,
	}
	if err := req.Validate(); err != nil {
		return features.PredictionRequest{}, err
	}
	return req, nil
}

func init() {
	predictCmd.Flags().Float64("carbon", 0, "Carbon footprint during production (kg)")
	predictCmd.Flags().Float64("water", 0, "Water usage during production (L)")
	predictCmd.Flags().Bool("animal-based", false, "Product is animal-based")
	predictCmd.Flags().Bool("imported", false, "Product is imported")
	predictCmd.Flags().StringSlice("category", nil, fmt.Sprintf("Product categories: %s", joinNames(features.Categories())))
	predictCmd.Flags().StringSlice("packaging", nil, fmt.Sprintf("Packaging materials: %s", joinNames(features.PackagingMaterials())))
	predictCmd.Flags().StringSlice("transport", nil, fmt.Sprintf("Transport modes: %s", joinNames(features.TransportModes())))
	predictCmd.Flags().StringP("format", "f", "", "Output format: text|json")

	// Bind all flags to viper for config file support
	for _, name := range []string{"carbon", "water", "animal-based", "imported", "category", "packaging", "transport", "format"} {
		viper.BindPFlag("predict."+name, predictCmd.Flags().Lookup(name))
	}
}

func joinNames[T fmt.Stringer](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = strings.ToLower(v.String())
	}
	return strings.Join(names, ", ")
}
