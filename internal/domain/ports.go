package domain

import "context"

type ScoreRepository interface {
	// Read paths
	ListReviews(ctx context.Context, id ProductID) ([]Review, error)
	ListProductIDs(ctx context.Context) ([]ProductID, error)
	ListProducts(ctx context.Context) ([]Product, error)

	// Write path
	SetScore(ctx context.Context, id ProductID, score int) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Polarity mirrors VADER's output. Compound lies in [-1, 1].
type Polarity struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

type SentimentEstimator interface {
	PolarityScores(ctx context.Context, text string) (Polarity, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	// Incr atomically adds one to the integer at key and returns the new value.
	Incr(ctx context.Context, key string) (int64, error)
}

// ProductView is the read projection served by the scores listing.
type ProductView struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Score int     `json:"score"`
}
