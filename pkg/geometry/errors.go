package geometry

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry marks input features that cannot contribute segments:
// empty geometries, features with fewer than 2 distinct coordinates, or
// polygon shells that self-intersect.
var ErrInvalidGeometry = errors.New("invalid geometry")

// FeatureError records why one input feature was rejected during ingestion.
// Rejected features are skipped, never fatal for the mosaic.
type FeatureError struct {
	Kind   string // "line" or "polygon"
	Index  int    // index within the collection's slice for that kind
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *FeatureError) Error() string {
	return fmt.Sprintf("%s %d: %s: %v", e.Kind, e.Index, e.Reason, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *FeatureError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's cause.
func (e *FeatureError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func invalidFeature(kind string, index int, reason string) *FeatureError {
	return &FeatureError{Kind: kind, Index: index, Reason: reason, Cause: ErrInvalidGeometry}
}
