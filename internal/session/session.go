// Package session runs the interactive form, predict and render loop.
package session

import (
	"context"
	"errors"

	"github.com/idlab-discover/ecoscore-cli/internal/apperr"
	"github.com/idlab-discover/ecoscore-cli/internal/features"
	"github.com/idlab-discover/ecoscore-cli/internal/score"
)

// Scorer is the prediction capability the session drives.
type Scorer interface {
	Ready() error
	Predict(ctx context.Context, req features.PredictionRequest) (score.Result, error)
}

// Prompter collects input from the user. Both methods return
// apperr.ErrCancelled when the user aborts.
type Prompter interface {
	Prompt(ctx context.Context) (features.PredictionRequest, error)
	Continue(ctx context.Context) (bool, error)
}

// Presenter renders session output.
type Presenter interface {
	ShowIntro()
	ShowModelUnavailable(err error)
	ShowResult(req features.PredictionRequest, res score.Result)
	ShowPredictionFailure(err error)
	ShowInputError(err error)
}

// Session ties a scorer to a prompter and a presenter.
type Session struct {
	scorer    Scorer
	prompter  Prompter
	presenter Presenter
}

// New creates a session.
func New(s Scorer, p Prompter, out Presenter) *Session {
	return &Session{scorer: s, prompter: p, presenter: out}
}

// Run shows the form until the user stops. When the model is unavailable the
// blocking message is shown once and the form is never offered. Prediction
// failures and rejected input are shown and the loop continues. Cancellation
// ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	if err := s.scorer.Ready(); err != nil {
		s.presenter.ShowModelUnavailable(err)
		return nil
	}

	s.presenter.ShowIntro()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := s.prompter.Prompt(ctx)
		if apperr.IsUser(err) {
			s.presenter.ShowInputError(err)
			continue
		}
		if err != nil {
			return ignoreCancel(err)
		}

		res, err := s.scorer.Predict(ctx, req)
		switch {
		case err == nil:
			s.presenter.ShowResult(req, res)
		case apperr.IsModelUnavailable(err):
			s.presenter.ShowModelUnavailable(err)
			return nil
		default:
			s.presenter.ShowPredictionFailure(err)
		}

		again, err := s.prompter.Continue(ctx)
		if err != nil {
			return ignoreCancel(err)
		}
		if !again {
			return nil
		}
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, apperr.ErrCancelled) {
		return nil
	}
	return err
}
