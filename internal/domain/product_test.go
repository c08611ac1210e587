package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopcart_sentiment/internal/domain"
)

func TestParseProductID(t *testing.T) {
	id, err := domain.ParseProductID("64B7F0C2A1B2C3D4E5F60001")
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2a1b2c3d4e5f60001", id.String())

	for _, bad := range []string{"", "64b7f0c2", "64b7f0c2a1b2c3d4e5f6000g", " 64b7f0c2a1b2c3d4e5f60001"} {
		_, err := domain.ParseProductID(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidIdentifier, "input %q", bad)
	}
}

func TestProductScore_JSON(t *testing.T) {
	id, _ := domain.ParseProductID("64b7f0c2a1b2c3d4e5f60001")
	b, err := json.Marshal([]domain.ProductScore{{ProductID: id, Score: 50}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"productId":"64b7f0c2a1b2c3d4e5f60001","score":50}]`, string(b))

	var back []domain.ProductScore
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, id, back[0].ProductID)

	// text decoding accepts exactly what ParseProductID accepts
	err = json.Unmarshal([]byte(`{"productId":" 64b7f0c2a1b2c3d4e5f60001 ","score":1}`), &back[0])
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}

func TestBatchError_Unwraps(t *testing.T) {
	cause := errors.Join(domain.ErrStorageUnavailable, errors.New("timeout"))
	err := error(&domain.BatchError{Succeeded: 2, Err: cause})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "after 2 succeeded")
}
