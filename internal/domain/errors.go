package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrEstimatorUnavailable = errors.New("sentiment estimator unavailable")
)

// BatchError reports a rescore run that stopped early. Results holds what was
// written before the failing product.
type BatchError struct {
	Succeeded int
	Failed    ProductID
	Results   []ProductScore
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("rescore stopped at product %s after %d succeeded: %v", e.Failed, e.Succeeded, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
