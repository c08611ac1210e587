// Package sentiment provides the in-process VADER estimator.
package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"shopcart_sentiment/internal/domain"
)

type Vader struct {
	a *govader.SentimentIntensityAnalyzer
}

// NewVader loads the VADER lexicon; build it once per process.
func NewVader() *Vader {
	return &Vader{a: govader.NewSentimentIntensityAnalyzer()}
}

// PolarityScores never fails. Blank text scores all zeros, as VADER does.
// Values are rounded like the reference VADER output: compound to 4 decimals,
// the proportions to 3.
func (v *Vader) PolarityScores(_ context.Context, text string) (domain.Polarity, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Polarity{}, nil
	}
	s := v.a.PolarityScores(text)
	return domain.Polarity{
		Negative: roundTo(s.Negative, 3),
		Neutral:  roundTo(s.Neutral, 3),
		Positive: roundTo(s.Positive, 3),
		Compound: roundTo(s.Compound, 4),
	}, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
