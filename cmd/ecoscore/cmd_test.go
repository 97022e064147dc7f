package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/bom"
	"github.com/idlab-discover/ecoscore-cli/internal/ui"
)

const linearArtifact = `name: eco-linear
version: "0.3"
kind: linear
intercept: 70
coefficients:
  "Carbon (kg)": -2
  Packaging_Plastic: -10
  Transport Mode_Air: -15
`

func writeArtifact(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "eco_model.yaml")
	if err := os.WriteFile(p, []byte(linearArtifact), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

// resetFlags puts every flag back to its default; cobra keeps values between runs.
func resetFlags(cmds ...*cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	for _, c := range cmds {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	cfgFile = ""
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	ui.Init(true)
	t.Setenv("HOME", t.TempDir())
	resetFlags(rootCmd, predictCmd, modelCmd)
	t.Cleanup(func() {
		resetFlags(rootCmd, predictCmd, modelCmd)
		// Drop values read from a config file so they do not leak into the next run.
		viper.SetConfigType("yaml")
		_ = viper.ReadConfig(strings.NewReader(""))
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestPredict_Text(t *testing.T) {
	path := writeArtifact(t)
	out, _, err := execute(t, "predict", "--model", path)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	for _, want := range []string{"70.0/100", "Good Environmental Performance", "+20.0 vs avg", "84%"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", want, out)
		}
	}
}

func TestPredict_JSON(t *testing.T) {
	path := writeArtifact(t)
	out, _, err := execute(t, "predict", "--model", path,
		"--carbon", "2.5", "--imported", "--packaging", "plastic,glass", "--transport", "air", "--format", "json")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	var got predictionJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	// 70 - 2*2.5 - 10 - 15
	if got.Score != 40 || got.Tier != "Fair" || got.Percentile != 48 || got.Delta != -10 {
		t.Fatalf("result = %+v", got)
	}
	if got.Progress != 0.4 {
		t.Fatalf("progress = %v", got.Progress)
	}
	checks := map[string]float64{
		"Carbon (kg)":         2.5,
		"Imported":            1,
		"Animal-Based":        0,
		"Packaging_Plastic":   1,
		"Packaging_Glass":     1,
		"Transport Mode_Air":  1,
		"Transport Mode_Ship": 0,
	}
	if len(got.Features) != 19 {
		t.Fatalf("features has %d entries", len(got.Features))
	}
	for k, want := range checks {
		if got.Features[k] != want {
			t.Errorf("features[%q] = %v, want %v", k, got.Features[k], want)
		}
	}
}

func TestPredict_RepeatedSliceFlags(t *testing.T) {
	path := writeArtifact(t)
	out, _, err := execute(t, "predict", "--model", path, "-f", "json",
		"--category", "food", "--category", "personal-care", "--transport", "ship")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	var got predictionJSON
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Features["Category_Food"] != 1 || got.Features["Category_Personal Care"] != 1 || got.Features["Transport Mode_Ship"] != 1 {
		t.Fatalf("features = %v", got.Features)
	}
}

func TestPredict_UserErrors(t *testing.T) {
	path := writeArtifact(t)
	tcs := []struct {
		name string
		args []string
		want string
	}{
		{"negative carbon", []string{"--carbon=-1"}, "carbon must be >= 0"},
		{"unknown category", []string{"--category", "toys"}, "unknown category"},
		{"unknown packaging", []string{"--packaging", "wood"}, "unknown packaging"},
		{"unknown transport", []string{"--transport", "rail"}, "unknown transport mode"},
		{"bad format", []string{"--format", "yaml"}, "invalid --format"},
		{"bad log level", []string{"--log-level", "loud"}, "invalid --log-level"},
		{"negative timeout", []string{"--timeout=-2"}, "invalid --timeout"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"predict", "--model", path}, tc.args...)
			_, _, err := execute(t, args...)
			if !apperr.IsUser(err) || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want user error containing %q", err, tc.want)
			}
		})
	}
}

func TestPredict_ModelUnavailable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")
	_, errOut, err := execute(t, "predict", "--model", missing)
	if !apperr.IsModelUnavailable(err) {
		t.Fatalf("err = %v, want ModelUnavailable", err)
	}
	if !strings.Contains(errOut, "Please ensure '"+missing+"' is in the correct directory.") {
		t.Fatalf("stderr missing the model panel:\n%s", errOut)
	}
}

func TestPredict_QuietWritesNothing(t *testing.T) {
	path := writeArtifact(t)
	out, errOut, err := execute(t, "predict", "--model", path, "--log-level", "quiet")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if out != "" || errOut != "" {
		t.Fatalf("quiet run wrote stdout=%q stderr=%q", out, errOut)
	}
}

func TestPredict_DebugLogging(t *testing.T) {
	path := writeArtifact(t)
	_, errOut, err := execute(t, "predict", "--model", path, "--log-level", "debug")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(errOut, "Model: artifact="+path) || !strings.Contains(errOut, "Predict: tier=Good") {
		t.Fatalf("debug logs missing:\n%s", errOut)
	}
}

func TestPredict_EnvironmentConfig(t *testing.T) {
	path := writeArtifact(t)
	t.Setenv("ECOSCORE_MODEL_PATH", path)
	t.Setenv("ECOSCORE_PREDICT_FORMAT", "json")
	out, _, err := execute(t, "predict")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, `"tier": "Good"`) {
		t.Fatalf("env config not applied:\n%s", out)
	}
}

func TestPredict_ConfigFile(t *testing.T) {
	path := writeArtifact(t)
	cfg := filepath.Join(t.TempDir(), "ecoscore.yaml")
	content := "model:\n  path: " + path + "\npredict:\n  format: json\n  carbon: 5\n"
	if err := os.WriteFile(cfg, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, _, err := execute(t, "--config", cfg, "predict")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !strings.Contains(out, `"score": 60`) {
		t.Fatalf("config file not applied:\n%s", out)
	}
}

func TestModel_Summary(t *testing.T) {
	path := writeArtifact(t)
	out, _, err := execute(t, "model", "--model", path)
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	for _, want := range []string{"eco-linear", "0.3", "linear", "Features (19)", "Carbon (kg)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", want, out)
		}
	}
}

func TestModel_WritesBOM(t *testing.T) {
	path := writeArtifact(t)
	bomPath := filepath.Join(t.TempDir(), "dist", "eco.cdx.xml")
	out, _, err := execute(t, "model", "--model", path, "--bom", bomPath, "--spec", "1.5")
	if err != nil {
		t.Fatalf("model: %v", err)
	}
	if !strings.Contains(out, "ML-BOM written to") || !strings.Contains(out, "(xml)") {
		t.Fatalf("missing confirmation:\n%s", out)
	}

	doc, err := bom.Read(bomPath, "")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	comp := doc.Metadata.Component
	if comp == nil || comp.Name != "eco-linear" || comp.Version != "0.3" {
		t.Fatalf("component = %+v", comp)
	}
}

func TestModel_Errors(t *testing.T) {
	path := writeArtifact(t)

	_, _, err := execute(t, "model", "--model", path, "--spec", "3.0")
	if !apperr.IsUser(err) {
		t.Fatalf("bad spec: err = %v", err)
	}

	_, _, err = execute(t, "model", "--model", path, "--bom", filepath.Join(t.TempDir(), "bom.json"), "--bom-format", "xml")
	if err == nil || !strings.Contains(err.Error(), "does not match format") {
		t.Fatalf("format mismatch: err = %v", err)
	}

	_, _, err = execute(t, "model", "--model", filepath.Join(t.TempDir(), "none.yaml"))
	if !apperr.IsModelUnavailable(err) {
		t.Fatalf("missing model: err = %v", err)
	}
}

func TestRoot_MissingModelShowsPanelOnce(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "eco_model.yaml")
	out, _, err := execute(t, "--model", missing, "--log-level", "quiet")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	if strings.Count(out, "Model could not be loaded") != 1 {
		t.Fatalf("expected one model panel:\n%s", out)
	}
	if strings.Contains(out, "How to Use") {
		t.Fatalf("intro must not be shown without a model")
	}
}
