package commands

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcart_sentiment/internal/app"
	"shopcart_sentiment/internal/domain"
	"shopcart_sentiment/internal/shared"
	"shopcart_sentiment/internal/wire"
)

type memRepo struct {
	mu       sync.Mutex
	products []domain.Product
	reviews  map[domain.ProductID][]domain.Review
}

func (m *memRepo) ListReviews(_ context.Context, id domain.ProductID) ([]domain.Review, error) {
	return m.reviews[id], nil
}

func (m *memRepo) ListProductIDs(context.Context) ([]domain.ProductID, error) {
	var out []domain.ProductID
	for _, p := range m.products {
		out = append(out, p.ID)
	}
	return out, nil
}

func (m *memRepo) ListProducts(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Product(nil), m.products...), nil
}

func (m *memRepo) SetScore(_ context.Context, id domain.ProductID, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Score = score
		}
	}
	return nil
}

func (m *memRepo) Ping(context.Context) error  { return nil }
func (m *memRepo) Close(context.Context) error { return nil }

type tableEstimator map[string]float64

func (e tableEstimator) PolarityScores(_ context.Context, text string) (domain.Polarity, error) {
	return domain.Polarity{Compound: e[text]}, nil
}

const (
	hexP = "64b7f0c2a1b2c3d4e5f60001"
	hexQ = "64b7f0c2a1b2c3d4e5f60002"
)

// stubWire swaps the storage wiring for an in-memory catalog and records the
// config the command resolved.
func stubWire(t *testing.T) *shared.Config {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_LEVEL", "error")

	p, _ := domain.ParseProductID(hexP)
	q, _ := domain.ParseProductID(hexQ)
	repo := &memRepo{
		products: []domain.Product{{ID: p, Name: "Lamp"}, {ID: q, Name: "Mug", Score: 80}},
		reviews: map[domain.ProductID][]domain.Review{
			p: {{Text: "good"}, {Text: "bad"}, {}},
		},
	}
	est := tableEstimator{"good": 0.5, "bad": -0.5}

	var seen shared.Config
	prev := newDeps
	newDeps = func(_ context.Context, c shared.Config) (*wire.Wire, error) {
		seen = c
		return &wire.Wire{
			Repo:      repo,
			Estimator: est,
			Scoring:   app.NewScoringService(repo, est, nil),
			Queries:   app.NewQueryService(repo, nil, 0),
		}, nil
	}
	t.Cleanup(func() {
		newDeps = prev
		deps = nil
	})
	return &seen
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAll_WorkersFlagWinsOverEnv(t *testing.T) {
	stubWire(t)
	t.Setenv("RESCORE_WORKERS", "5")

	out, err := execute(t, "all", "--workers", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, workers)
	assert.JSONEq(t, `[{"productId":"`+hexP+`","score":50},{"productId":"`+hexQ+`","score":0}]`, out)
}

func TestAll_WorkersFromEnv(t *testing.T) {
	stubWire(t)
	t.Setenv("RESCORE_WORKERS", "5")

	out, err := execute(t, "all")
	require.NoError(t, err)
	assert.Equal(t, 5, workers)
	assert.JSONEq(t, `[{"productId":"`+hexP+`","score":50},{"productId":"`+hexQ+`","score":0}]`, out)
}

func TestDriverFlagOverridesConfig(t *testing.T) {
	seen := stubWire(t)
	t.Setenv("STORAGE_DRIVER", "mongo")

	out, err := execute(t, "--driver", "mysql", "list")
	require.NoError(t, err)
	assert.Equal(t, "mysql", seen.StorageDriver)
	assert.Contains(t, out, `"name": "Lamp"`)
}

func TestProduct(t *testing.T) {
	stubWire(t)

	out, err := execute(t, "product", hexP)
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":"`+hexP+`","score":50}`, out)

	_, err = execute(t, "product", "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}
