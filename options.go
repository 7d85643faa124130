package quickhull

import "github.com/go-gl/mathgl/mgl64"

// Options configures a hull computation. The zero value emits a
// triangulated hull with tracing off.
type Options struct {
	// SkipTriangulation emits each polygonal face whole instead of as
	// a fan of triangles.
	SkipTriangulation bool
	// Debug toggles trace output of the construction steps.
	Debug bool
}

// ConvexHull computes the triangulated convex hull of points and
// returns its faces as index triples into the input.
func ConvexHull(points []mgl64.Vec3) ([][]int, error) {
	return ConvexHullWithOptions(points, Options{})
}

// ConvexHullWithOptions computes the convex hull of points under the
// given options.
func ConvexHullWithOptions(points []mgl64.Vec3, options Options) ([][]int, error) {
	qh := New()
	qh.Debug = options.Debug
	if err := qh.Build(points); err != nil {
		return nil, err
	}
	return qh.CollectFaces(options.SkipTriangulation)
}
