package render

import (
	"errors"
	"fmt"
)

// Sentinel errors for chart rendering.
var (
	ErrUnknownChart      = errors.New("unknown chart")
	ErrEmptyChart        = errors.New("chart has no data")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
