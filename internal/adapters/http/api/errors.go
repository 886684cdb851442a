package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("dataset not loaded")
)

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
