package surface

import "github.com/pkg/errors"

// Sentinel taxonomy errors every layer wraps with errors.Wrap as a
// failure propagates up from the arena through the planar graph, the
// projector and the factory. NotFound stays a plain -1 sentinel return
// (NoIndex) rather than an error, matching FindEdge/FindTriangle.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrGeometryNotProjectable = errors.New("geometry not projectable")
	ErrInvariantViolation     = errors.New("invariant violation")
)
