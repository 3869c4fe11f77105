package algorithms

import (
	"errors"
	"fmt"

	"github.com/dd0wney/communitybench/pkg/graph"
)

// Common sentinel errors
var (
	ErrInvalidSeed = errors.New("seed node not present in graph")
	ErrNilGraph    = errors.New("graph is nil")
)

// ExpansionError provides structured error information for expansion runs.
type ExpansionError struct {
	Op    string       // Operation that failed (e.g., "expand")
	Seed  graph.NodeID // Seed the run started from
	Cause error        // Underlying error
}

// Error implements the error interface.
func (e *ExpansionError) Error() string {
	return fmt.Sprintf("%s seed %d: %v", e.Op, e.Seed, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ExpansionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ExpansionError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// invalidSeedError creates an error for a seed missing from the graph.
func invalidSeedError(op string, seed graph.NodeID) error {
	return &ExpansionError{Op: op, Seed: seed, Cause: ErrInvalidSeed}
}

// IsInvalidSeed returns true if the error indicates a seed absent from the graph.
func IsInvalidSeed(err error) bool {
	return errors.Is(err, ErrInvalidSeed)
}
