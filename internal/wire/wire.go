package wire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	redisad "shopcart_sentiment/internal/adapters/redis"
	"shopcart_sentiment/internal/adapters/sentimentapi"
	"shopcart_sentiment/internal/app"
	"shopcart_sentiment/internal/domain"
	"shopcart_sentiment/internal/sentiment"
	"shopcart_sentiment/internal/shared"
	mongorepo "shopcart_sentiment/internal/storage/mongo"
	mysqlrepo "shopcart_sentiment/internal/storage/mysql"
)

// Wire bundles the gateway, estimator, cache and services built from config.
type Wire struct {
	Repo      domain.ScoreRepository
	Estimator domain.SentimentEstimator
	Cache     *redisad.Cache // nil when REDIS_ADDR is unset
	Scoring   *app.ScoringService
	Queries   *app.QueryService
}

// New connects storage and builds the services. Call Close on shutdown.
func New(ctx context.Context, cfg shared.Config) (*Wire, error) {
	repo, err := OpenRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	est, err := NewEstimator(cfg)
	if err != nil {
		_ = repo.Close(context.Background())
		return nil, err
	}

	w := &Wire{Repo: repo, Estimator: est}
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		w.Cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := w.Cache.Ping(ctx); err != nil {
			// the cache is an optimisation; keep serving without it
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, scores cache disabled")
			_ = w.Cache.Close()
			w.Cache = nil
		} else {
			cache = w.Cache
		}
	}

	w.Scoring = app.NewScoringService(repo, est, cache)
	w.Queries = app.NewQueryService(repo, cache, cfg.CacheTTL)
	return w, nil
}

func OpenRepository(ctx context.Context, cfg shared.Config) (domain.ScoreRepository, error) {
	switch cfg.StorageDriver {
	case "", "mongo":
		r, err := mongorepo.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", "mongo").Str("db", cfg.MongoDB).Msg("storage connection ok")
		return r, nil
	case "mysql":
		r, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", "mysql").Msg("storage connection ok")
		return r, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want mongo or mysql)", cfg.StorageDriver)
	}
}

// NewEstimator prefers the remote service when SENTIMENT_API_URL is set.
func NewEstimator(cfg shared.Config) (domain.SentimentEstimator, error) {
	if cfg.SentimentURL != "" {
		c, err := sentimentapi.New(cfg.SentimentURL, cfg.SentimentKey, cfg.SentimentRPS)
		if err != nil {
			return nil, err
		}
		log.Info().Str("url", cfg.SentimentURL).Msg("using remote sentiment estimator")
		return c, nil
	}
	return sentiment.NewVader(), nil
}

func (w *Wire) Close(ctx context.Context) error {
	if w.Cache != nil {
		if err := w.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}
	return w.Repo.Close(ctx)
}
