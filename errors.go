package quickhull

import "errors"

var (
	// ErrBadInput reports input that does not describe a point cloud:
	// a coordinate slice of the wrong arity or a non-finite coordinate.
	ErrBadInput = errors.New("quickhull: bad input")

	// ErrTooFewPoints reports fewer than the 4 points needed to form
	// the initial simplex.
	ErrTooFewPoints = errors.New("quickhull: at least 4 points are required")

	// ErrDegenerate reports an input whose points are all collinear or
	// coplanar within tolerance, so no tetrahedron can be built.
	ErrDegenerate = errors.New("quickhull: degenerate input")

	// ErrInternal reports a violated consistency check inside the
	// builder. It indicates a bug in the hull construction itself and
	// is not recoverable.
	ErrInternal = errors.New("quickhull: internal invariant violated")
)
