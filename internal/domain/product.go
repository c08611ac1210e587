package domain

import (
	"encoding/hex"
	"fmt"
)

// ProductID is the 12-byte storage identity of a product, serialized as 24 hex chars.
type ProductID [12]byte

// ParseProductID validates s and returns the typed identity, or ErrInvalidIdentifier.
func ParseProductID(s string) (ProductID, error) {
	var id ProductID
	if len(s) != 2*len(id) {
		return id, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return ProductID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id, nil
}

func (id ProductID) String() string { return hex.EncodeToString(id[:]) }

// MarshalText keeps ids opaque strings in JSON and log output.
func (id ProductID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *ProductID) UnmarshalText(b []byte) error {
	v, err := ParseProductID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Product is the stored product document. Score is owned by the scoring service.
type Product struct {
	ID    ProductID
	Name  string
	Price float64
	Image string
	Score int
}

// ProductScore is one entry of a batch rescore.
type ProductScore struct {
	ProductID ProductID `json:"productId"`
	Score     int       `json:"score"`
}
