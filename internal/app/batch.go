package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"shopcart_sentiment/internal/adapters/observability"
	"shopcart_sentiment/internal/domain"
)

// UpdateAllScores rescores every product sequentially, in the order the
// repository lists them. The first failure stops the run with a *domain.BatchError.
func (s *ScoringService) UpdateAllScores(ctx context.Context) ([]domain.ProductScore, error) {
	ids, err := s.repo.ListProductIDs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProductScore, 0, len(ids))
	for _, id := range ids {
		log.Debug().Stringer("product", id).Msg("processing product")
		score, err := s.computeScore(ctx, id)
		if err != nil {
			observability.ObserveScore("error", 0)
			return nil, &domain.BatchError{Succeeded: len(out), Failed: id, Results: out, Err: err}
		}
		observability.ObserveScore("ok", score)
		out = append(out, domain.ProductScore{ProductID: id, Score: score})
	}
	log.Info().Int("products", len(out)).Msg("sentiment scoring completed")
	return out, nil
}

// RescoreAll is UpdateAllScores with up to workers products in flight. Results
// keep repository order; the first error cancels products not yet started.
func (s *ScoringService) RescoreAll(ctx context.Context, workers int) ([]domain.ProductScore, error) {
	if workers <= 1 {
		return s.UpdateAllScores(ctx)
	}
	ids, err := s.repo.ListProductIDs(ctx)
	if err != nil {
		return nil, err
	}
	scores, errs, first := runBounded(ctx, ids, workers, s.computeScore)

	out := make([]domain.ProductScore, 0, len(ids))
	for i, id := range ids {
		if errs[i] != nil {
			if errs[i] != errSkipped {
				observability.ObserveScore("error", 0)
			}
			continue
		}
		observability.ObserveScore("ok", scores[i])
		out = append(out, domain.ProductScore{ProductID: id, Score: scores[i]})
	}
	if first >= 0 {
		return nil, &domain.BatchError{Succeeded: len(out), Failed: ids[first], Results: out, Err: errs[first]}
	}
	log.Info().Int("products", len(out)).Int("workers", workers).Msg("sentiment scoring completed")
	return out, nil
}

var errSkipped = errors.New("skipped after earlier failure")
