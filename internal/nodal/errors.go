package nodal

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInputs is matched by every precondition failure of the
	// pipeline. No curve is computed when it is returned.
	ErrMissingInputs = errors.New("missing inputs")

	ErrMissingFluid      = fmt.Errorf("%w: no fluid selected", ErrMissingInputs)
	ErrMissingCompletion = fmt.Errorf("%w: no completion selected", ErrMissingInputs)
	ErrMissingTubing     = fmt.Errorf("%w: no tubing data", ErrMissingInputs)

	// ErrEmptyGrid is returned when a rate or parameter grid has no values.
	ErrEmptyGrid = errors.New("empty grid")

	// ErrUnknownParameter is returned for a sweep parameter other than
	// tubing ID or tubing roughness.
	ErrUnknownParameter = errors.New("unknown sweep parameter")
)
