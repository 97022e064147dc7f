// Package ecoscore scores products from Go code without the CLI.
package ecoscore

import (
	"context"
	"time"

	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/predict"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

type (
	Request   = features.PredictionRequest
	Category  = features.Category
	Packaging = features.Packaging
	Transport = features.Transport
	Row       = features.Row

	Result = score.Result
	Tier   = score.Tier

	ModelInfo = model.Info
)

// Columns is the feature layout every artifact must be fit on.
var Columns = features.Columns

type Options struct {
	ModelPath string        // Defaults to eco_model.yaml
	Timeout   time.Duration // Per scoring call, zero means none
}

// Scorer wraps one loaded artifact.
type Scorer struct {
	handle *model.Handle
	svc    *predict.Service
}

// Open loads the artifact. The returned error satisfies
// errors.Is(err, apperr.ErrModelUnavailable) when the file is missing or invalid.
func Open(opts Options) (*Scorer, error) {
	h := model.Open(opts.ModelPath)
	if err := h.Err(); err != nil {
		return nil, err
	}
	return &Scorer{handle: h, svc: predict.NewService(h, predict.Options{Timeout: opts.Timeout})}, nil
}

// Score validates, encodes and scores req.
func (s *Scorer) Score(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	return s.svc.Predict(ctx, req)
}

// Info describes the loaded artifact.
func (s *Scorer) Info() ModelInfo { return s.handle.Info() }

// Encode exposes the row the model receives for req.
func Encode(req Request) Row { return features.Encode(req) }

// Classify maps a raw score to its tier.
func Classify(v float64) Tier { return score.Classify(v) }
