package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/ecoscore-cli/internal/features"
)

// defaultBaseScore matches XGBoost's default for reg:squarederror.
const defaultBaseScore = 0.5

// manifest is the on-disk description of an artifact.
type manifest struct {
	Name     string   `yaml:"name"`
	Version  string   `yaml:"version"`
	Kind     Kind     `yaml:"kind"`
	Features []string `yaml:"features"`

	// tree_ensemble
	BaseScore *float64   `yaml:"base_score"`
	Trees     []treeNode `yaml:"trees"`
	TreesFile string     `yaml:"trees_file"`

	// linear
	Intercept    float64            `yaml:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients"`
}

func decodeManifest(data []byte, dir string) (Predictor, Info, error) {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, Info{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := checkFeatureList(m.Features); err != nil {
		return nil, Info{}, err
	}

	info := Info{Name: m.Name, Version: m.Version, Kind: m.Kind, Features: m.Features}

	switch m.Kind {
	case KindTreeEnsemble:
		trees := m.Trees
		if m.TreesFile != "" {
			if len(trees) > 0 {
				return nil, Info{}, errors.New("manifest sets both trees and trees_file")
			}
			p := m.TreesFile
			if !filepath.IsAbs(p) {
				p = filepath.Join(dir, p)
			}
			raw, err := os.ReadFile(p)
			if err != nil {
				return nil, Info{}, fmt.Errorf("read trees_file: %w", err)
			}
			if err := json.Unmarshal(raw, &trees); err != nil {
				return nil, Info{}, fmt.Errorf("parse trees_file %s: %w", m.TreesFile, err)
			}
		}
		base := defaultBaseScore
		if m.BaseScore != nil {
			base = *m.BaseScore
		}
		ens, err := compileEnsemble(trees, base)
		if err != nil {
			return nil, Info{}, err
		}
		info.Trees = len(ens.trees)
		return ens, info, nil

	case KindLinear:
		lin, err := compileLinear(m.Intercept, m.Coefficients)
		if err != nil {
			return nil, Info{}, err
		}
		return lin, info, nil

	case "":
		return nil, Info{}, errors.New("manifest has no kind (expected tree_ensemble or linear)")
	default:
		return nil, Info{}, fmt.Errorf("unknown model kind %q", m.Kind)
	}
}

// decodeDump reads a bare Booster.dump_model(..., dump_format="json") file.
func decodeDump(data []byte) (Predictor, Info, error) {
	var trees []treeNode
	if err := json.Unmarshal(data, &trees); err != nil {
		return nil, Info{}, fmt.Errorf("parse tree dump: %w", err)
	}
	ens, err := compileEnsemble(trees, defaultBaseScore)
	if err != nil {
		return nil, Info{}, err
	}
	return ens, Info{Kind: KindTreeEnsemble, Trees: len(ens.trees)}, nil
}

func checkFeatureList(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if len(names) != features.NumColumns {
		return fmt.Errorf("artifact declares %d features, want %d", len(names), features.NumColumns)
	}
	for i, n := range names {
		if n != features.Columns[i] {
			return fmt.Errorf("artifact feature %d is %q, want %q", i, n, features.Columns[i])
		}
	}
	return nil
}
