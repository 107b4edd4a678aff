package sketchdist

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned when a run is started on a
	// collection with no sketches.
	ErrEmptyCollection = errors.New("collection contains no sketches")

	// ErrNilWriter is returned when Run is invoked without an output writer.
	ErrNilWriter = errors.New("output writer is nil")
)

// ErrInvalidThreshold indicates a distance or p-value threshold outside [0,1].
type ErrInvalidThreshold struct {
	Name  string
	Value float64
}

func (e *ErrInvalidThreshold) Error() string {
	return fmt.Sprintf("invalid %s threshold: %g (must be in [0,1])", e.Name, e.Value)
}

// ErrInvalidSlotBudget indicates a non-positive inverted-index slot budget.
type ErrInvalidSlotBudget struct {
	Budget uint64
}

func (e *ErrInvalidSlotBudget) Error() string {
	return fmt.Sprintf("invalid index slot budget: %d (must be positive)", e.Budget)
}
