package engine

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidParameter indicates a non-finite or non-positive input the
	// gain derivation cannot meaningfully consume.
	ErrInvalidParameter = errors.New("engine: invalid parameter")

	// ErrInvalidConfig indicates a step size or horizon outside valid range.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
