package analysis

import (
	"errors"
)

// ErrDegenerateGraph marks a mosaic whose graph has no edges after
// construction: density and spacing are undefined. Fatal for that mosaic's
// metrics, never for the rest of the batch.
var ErrDegenerateGraph = errors.New("degenerate graph: no edges")
