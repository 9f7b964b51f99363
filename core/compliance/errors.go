package compliance

import (
	"errors"
	"fmt"
)

// ErrInvalidYear marks a requested year that is absent from the reduction
// target table. Use errors.Is to match it.
var ErrInvalidYear = errors.New("year not covered by reduction target table")

// InvalidYearError carries the offending year.
type InvalidYearError struct {
	Year int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("invalid compliance year %d: %v", e.Year, ErrInvalidYear)
}

func (e *InvalidYearError) Unwrap() error { return ErrInvalidYear }
