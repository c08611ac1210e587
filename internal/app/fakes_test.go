package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shopcart_sentiment/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu       sync.Mutex
	products []domain.Product
	reviews  map[domain.ProductID][]domain.Review
	writes   map[domain.ProductID]int
	listErr  error
	failOn   map[domain.ProductID]error

	// hooks run outside the lock: afterWrite once a score is stored,
	// afterList once ListProducts has taken its snapshot
	afterWrite func(domain.ProductID)
	afterList  func()
}

func newFakeRepo(ps ...domain.Product) *fakeRepo {
	return &fakeRepo{
		products: ps,
		reviews:  map[domain.ProductID][]domain.Review{},
		writes:   map[domain.ProductID]int{},
		failOn:   map[domain.ProductID]error{},
	}
}

func (f *fakeRepo) addReviews(id domain.ProductID, texts ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range texts {
		f.reviews[id] = append(f.reviews[id], domain.Review{ID: fmt.Sprintf("%s-%d", id, i), ProductID: id, Text: t})
	}
}

func (f *fakeRepo) ListReviews(ctx context.Context, id domain.ProductID) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failOn[id]; err != nil {
		return nil, err
	}
	return append([]domain.Review(nil), f.reviews[id]...), nil
}

func (f *fakeRepo) ListProductIDs(ctx context.Context) ([]domain.ProductID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.ProductID, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p.ID)
	}
	return out, nil
}

func (f *fakeRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	if f.listErr != nil {
		f.mu.Unlock()
		return nil, f.listErr
	}
	out := append([]domain.Product(nil), f.products...)
	hook := f.afterList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeRepo) SetScore(ctx context.Context, id domain.ProductID, score int) error {
	f.mu.Lock()
	f.writes[id]++
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Score = score
		}
	}
	hook := f.afterWrite
	f.mu.Unlock()

	if hook != nil {
		hook(id)
	}
	return nil
}

func (f *fakeRepo) Ping(ctx context.Context) error  { return f.listErr }
func (f *fakeRepo) Close(ctx context.Context) error { return nil }

func (f *fakeRepo) score(id domain.ProductID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p.Score
		}
	}
	return -1
}

// fakeEstimator returns the compound registered for a text, 0 otherwise.
type fakeEstimator struct {
	compounds map[string]float64
	err       error
}

func (e *fakeEstimator) PolarityScores(ctx context.Context, text string) (domain.Polarity, error) {
	if e.err != nil {
		return domain.Polarity{}, e.err
	}
	return domain.Polarity{Compound: e.compounds[text]}, nil
}

// fakeCache keeps JSON payloads like the redis adapter does.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels++
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.store[key]; ok {
		if err := json.Unmarshal(v, &n); err != nil {
			return 0, err
		}
	}
	n++
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key], _ = json.Marshal(n)
	return n, nil
}

func pid(s string) domain.ProductID {
	id, err := domain.ParseProductID(s)
	if err != nil {
		panic(err)
	}
	return id
}
