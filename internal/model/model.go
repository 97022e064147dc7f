// Package model loads the pre-trained eco score artifact and exposes it as an
// opaque Predictor.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
)

// DefaultPath is used when no artifact path is configured.
const DefaultPath = "eco_model.yaml"

// Predictor scores one encoded row.
type Predictor interface {
	Predict(row features.Row) (float64, error)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(row features.Row) (float64, error)

func (f PredictorFunc) Predict(row features.Row) (float64, error) { return f(row) }

// Kind names a built-in artifact family.
type Kind string

const (
	KindTreeEnsemble Kind = "tree_ensemble"
	KindLinear       Kind = "linear"
)

// Info describes a loaded artifact.
type Info struct {
	Name     string
	Version  string
	Kind     Kind
	Path     string
	SHA256   string
	Trees    int
	Features []string
}

// Handle is the process-wide model state, fixed once Open returns. It holds
// either a ready predictor or the load error; a failed load is never retried.
type Handle struct {
	path      string
	predictor Predictor
	info      Info
	err       error
}

// Open loads the artifact at path. It never fails outright: a load error is
// stored in the handle and reported by Predictor and Err.
func Open(path string) *Handle {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	p, info, err := Load(path)
	if err != nil {
		logf(path, "load failed: %v", err)
		return &Handle{path: path, err: &apperr.ModelUnavailableError{Path: path, Err: err}}
	}
	logf(path, "loaded %s model %q (%d trees, sha256=%s)", info.Kind, info.Name, info.Trees, shortHash(info.SHA256))
	return &Handle{path: path, predictor: p, info: info}
}

// NewHandle wraps an already constructed predictor.
func NewHandle(p Predictor, info Info) *Handle {
	if p == nil {
		return &Handle{path: info.Path, err: &apperr.ModelUnavailableError{Path: info.Path, Err: fmt.Errorf("no predictor")}}
	}
	return &Handle{path: info.Path, predictor: p, info: info}
}

// Predictor returns the loaded predictor or a *apperr.ModelUnavailableError.
func (h *Handle) Predictor() (Predictor, error) {
	if h == nil {
		return nil, &apperr.ModelUnavailableError{Err: fmt.Errorf("model not initialised")}
	}
	if h.err != nil {
		return nil, h.err
	}
	return h.predictor, nil
}

// Err returns the cached load error, if any.
func (h *Handle) Err() error {
	_, err := h.Predictor()
	return err
}

// Path is the artifact location the handle was opened with.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Info describes the loaded artifact. It is the zero value when loading failed.
func (h *Handle) Info() Info {
	if h == nil {
		return Info{}
	}
	return h.info
}

// Load reads and decodes an artifact. The format follows the file extension:
// .yaml/.yml manifests, .json manifests or raw XGBoost JSON dumps.
func Load(path string) (Predictor, Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Info{}, err
	}
	sum := sha256.Sum256(data)

	var (
		p    Predictor
		info Info
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		p, info, err = decodeManifest(data, filepath.Dir(path))
	case ".json":
		if isJSONArray(data) {
			p, info, err = decodeDump(data)
		} else {
			p, info, err = decodeManifest(data, filepath.Dir(path))
		}
	default:
		err = fmt.Errorf("unsupported model artifact extension %q (expected .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode %s: %w", path, err)
	}

	info.Path = path
	info.SHA256 = hex.EncodeToString(sum[:])
	if info.Name == "" {
		info.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(info.Features) == 0 {
		info.Features = append([]string(nil), features.Columns...)
	}
	return p, info, nil
}

func isJSONArray(data []byte) bool {
	s := strings.TrimSpace(string(data))
	return strings.HasPrefix(s, "[")
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func checkWidth(row features.Row) error {
	if len(row) != features.NumColumns {
		return fmt.Errorf("feature count mismatch: got %d, want %d", len(row), features.NumColumns)
	}
	return nil
}
