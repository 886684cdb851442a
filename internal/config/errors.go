package config

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// wrap prefixes err with the failing operation.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// loadErr marks err as a loading failure while keeping the cause.
func loadErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrLoadConfig, err)
}
