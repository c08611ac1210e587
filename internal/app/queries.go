package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"shopcart_sentiment/internal/domain"
)

type QueryService struct {
	repo     domain.ScoreRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ScoreRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// ListScores returns every product with its stored score. A nil cache reads
// straight through; cache failures are logged and never fail the read.
func (s *QueryService) ListScores(ctx context.Context) ([]domain.ProductView, error) {
	key := ""
	if s.cache != nil {
		// generation first: rows read while a write lands go under the old key
		var gen int64
		if _, err := s.cache.Get(ctx, scoresGenKey, &gen); err != nil {
			log.Warn().Err(err).Str("key", scoresGenKey).Msg("cache read failed")
		} else {
			key = scoresKey(gen)
			var cached []domain.ProductView
			if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache read failed")
				key = ""
			} else if ok {
				return cached, nil
			}
		}
	}

	ps, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductView, 0, len(ps))
	for _, p := range ps {
		out = append(out, domain.ProductView{
			ID:    p.ID.String(),
			Name:  p.Name,
			Price: p.Price,
			Image: p.Image,
			Score: p.Score,
		})
	}

	if key != "" && s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return out, nil
}

// Ready reports whether the storage gateway answers.
func (s *QueryService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
