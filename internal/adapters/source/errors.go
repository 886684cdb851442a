package source

import (
	"errors"
	"fmt"
)

// Sentinel errors for record loading.
var (
	ErrGenericMissing = errors.New("generic salary source missing")
	ErrMissingColumn  = errors.New("required column missing")
	ErrMalformedRow   = errors.New("malformed row")
	ErrAnomalies      = errors.New("records failed validation")
)

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
