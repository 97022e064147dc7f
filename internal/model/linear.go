package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/idlab-discover/ecoscore-cli/internal/features"
)

// linear is intercept + sum(weight * value).
type linear struct {
	intercept float64
	weights   [features.NumColumns]float64
}

func compileLinear(intercept float64, coef map[string]float64) (*linear, error) {
	if len(coef) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}
	l := &linear{intercept: intercept}
	var unknown []string
	for name, w := range coef {
		i, ok := features.ColumnIndex(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		l.weights[i] = w
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("coefficients for unknown features: %s", strings.Join(unknown, ", "))
	}
	return l, nil
}

func (l *linear) Predict(row features.Row) (float64, error) {
	if err := checkWidth(row); err != nil {
		return 0, err
	}
	sum := l.intercept
	for i, v := range row {
		sum += l.weights[i] * v
	}
	return sum, nil
}
