// Package predict dispatches a product request to the loaded model and turns
// the outcome into a classified result or one of the two prediction errors.
package predict

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/model"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

// Options tunes the service.
type Options struct {
	// Timeout bounds a single scoring call. Zero means no bound.
	Timeout time.Duration
}

// Service scores requests against one model handle.
type Service struct {
	handle *model.Handle
	opts   Options
}

// NewService creates a service over h.
func NewService(h *model.Handle, opts Options) *Service {
	return &Service{handle: h, opts: opts}
}

// Ready reports whether predictions can be attempted at all.
func (s *Service) Ready() error {
	_, err := s.handle.Predictor()
	return err
}

// ModelPath is the artifact location of the underlying handle.
func (s *Service) ModelPath() string { return s.handle.Path() }

// Predict encodes req, scores it and classifies the score. A missing model
// yields *apperr.ModelUnavailableError; any failure of the scoring call
// yields *apperr.PredictionError. Nothing is retried.
func (s *Service) Predict(ctx context.Context, req features.PredictionRequest) (score.Result, error) {
	p, err := s.handle.Predictor()
	if err != nil {
		return score.Result{}, err
	}

	row := features.Encode(req)
	v, err := s.invoke(ctx, p, row)
	if err != nil {
		logf("", "scoring failed: %v", err)
		return score.Result{}, &apperr.PredictionError{Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		logf("", "model returned %v", v)
		return score.Result{}, &apperr.PredictionError{Err: fmt.Errorf("model returned non-finite score %v", v)}
	}

	res := score.NewResult(v)
	logf(res.Tier.String(), "score=%.3f row=%v", v, row)
	return res, nil
}

type outcome struct {
	v   float64
	err error
}

func (s *Service) invoke(ctx context.Context, p model.Predictor, row features.Row) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.opts.Timeout <= 0 {
		o := call(p, row)
		return o.v, o.err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() { done <- call(p, row) }()

	select {
	case o := <-done:
		return o.v, o.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return 0, fmt.Errorf("scoring exceeded %s", s.opts.Timeout)
		}
		return 0, ctx.Err()
	}
}

// call converts a panic inside the model into an error.
func call(p model.Predictor, row features.Row) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = outcome{err: fmt.Errorf("model panicked: %v", r)}
		}
	}()
	v, err := p.Predict(row)
	return outcome{v: v, err: err}
}
