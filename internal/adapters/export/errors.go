package export

import (
	"errors"
	"fmt"
)

// ErrWorkbook wraps excelize failures.
var ErrWorkbook = errors.New("workbook export failed")

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrWorkbook, err)
}
