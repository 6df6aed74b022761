package network

import (
	"errors"
	"fmt"

	"github.com/dkelsey/fracmosaic/pkg/geometry"
)

// Sentinel errors for graph construction.
var (
	// ErrToleranceConflict marks an ambiguous snap: an endpoint sits within
	// tolerance of two cluster candidates at distances too close to order
	// reliably. Fatal for the mosaic so the caller can adjust the tolerance.
	ErrToleranceConflict = errors.New("ambiguous snap within tolerance")
	// ErrBadTolerance marks a non-positive snapping tolerance.
	ErrBadTolerance = errors.New("tolerance must be positive")
)

// ToleranceConflictError carries the offending endpoint and the two cluster
// candidates it could not be assigned between.
type ToleranceConflictError struct {
	Point      geometry.Point
	CandidateA geometry.Point
	CandidateB geometry.Point
	DistanceA  float64
	DistanceB  float64
}

// Error implements the error interface.
func (e *ToleranceConflictError) Error() string {
	return fmt.Sprintf("point (%g, %g): %v: candidates (%g, %g) at %g and (%g, %g) at %g",
		e.Point.X, e.Point.Y, ErrToleranceConflict,
		e.CandidateA.X, e.CandidateA.Y, e.DistanceA,
		e.CandidateB.X, e.CandidateB.Y, e.DistanceB)
}

// Is reports whether the target matches the tolerance-conflict sentinel.
func (e *ToleranceConflictError) Is(target error) bool {
	return target == ErrToleranceConflict
}
