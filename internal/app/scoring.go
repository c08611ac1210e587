package app

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"shopcart_sentiment/internal/adapters/observability"
	"shopcart_sentiment/internal/domain"
)

// The scores listing is cached under a generation-suffixed key. Every score
// write bumps the generation, so a listing read before the write is stored
// under a key no later reader asks for.
const (
	scoresGenKey       = "scores:gen"
	scoresKeyPrefix    = "scores:all:v"
	invalidateDeadline = 2 * time.Second
)

func scoresKey(gen int64) string { return scoresKeyPrefix + strconv.FormatInt(gen, 10) }

type ScoringService struct {
	repo      domain.ScoreRepository
	estimator domain.SentimentEstimator
	cache     domain.Cache
}

func NewScoringService(r domain.ScoreRepository, e domain.SentimentEstimator, c domain.Cache) *ScoringService {
	return &ScoringService{repo: r, estimator: e, cache: c}
}

// MapCompound rescales a compound polarity to an integer in [0, 100].
// Halves round to even, as Python's round does: 12.5 -> 12, 37.5 -> 38.
func MapCompound(c float64) int {
	if math.IsNaN(c) {
		c = 0
	}
	c = math.Max(-1, math.Min(1, c))
	return int(math.RoundToEven((c + 1) * 50))
}

// average of mapped scores, halves to even; 0 for an empty set.
func average(mapped []int) int {
	if len(mapped) == 0 {
		return 0
	}
	total := 0
	for _, m := range mapped {
		total += m
	}
	return int(math.RoundToEven(float64(total) / float64(len(mapped))))
}

// ComputeSentimentScore recomputes and stores the score of one product.
// The product is written exactly once, even when it has no reviews.
func (s *ScoringService) ComputeSentimentScore(ctx context.Context, productID string) (int, error) {
	id, err := domain.ParseProductID(productID)
	if err != nil {
		return 0, err
	}
	score, err := s.computeScore(ctx, id)
	if err != nil {
		observability.ObserveScore("error", 0)
		return 0, err
	}
	observability.ObserveScore("ok", score)
	return score, nil
}

func (s *ScoringService) computeScore(ctx context.Context, id domain.ProductID) (int, error) {
	reviews, err := s.repo.ListReviews(ctx, id)
	if err != nil {
		return 0, err
	}
	log.Debug().Stringer("product", id).Int("reviews", len(reviews)).Msg("reviews found")

	mapped := make([]int, 0, len(reviews))
	for _, rv := range reviews {
		p, err := s.estimator.PolarityScores(ctx, rv.Text)
		if err != nil {
			return 0, err
		}
		m := MapCompound(p.Compound)
		log.Debug().
			Stringer("product", id).
			Str("review", rv.ID).
			Float64("compound", p.Compound).
			Int("mapped", m).
			Msg("review scored")
		mapped = append(mapped, m)
	}

	score := average(mapped)
	if err := s.repo.SetScore(ctx, id, score); err != nil {
		return 0, err
	}
	s.invalidateScores(ctx)
	log.Info().Stringer("product", id).Int("score", score).Msg("product score updated")
	return score, nil
}

// invalidateScores runs after a stored write, so it ignores cancellation of ctx.
func (s *ScoringService) invalidateScores(ctx context.Context) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateDeadline)
	defer cancel()

	gen, err := s.cache.Incr(ctx, scoresGenKey)
	if err != nil {
		log.Warn().Err(err).Str("key", scoresGenKey).Msg("cache invalidation failed")
		return
	}
	if err := s.cache.Del(ctx, scoresKey(gen-1)); err != nil {
		log.Debug().Err(err).Int64("generation", gen-1).Msg("drop old scores listing failed")
	}
}
