package quickhull

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Coord is the named-component form of an input point. Any record type
// exposing x, y, z scalars can feed the builder through it; the core
// only ever sees mgl64.Vec3 triples.
type Coord interface {
	XYZ() (x, y, z float64)
}

// PointsFromTriples converts ordered triples to points, preserving
// input order.
func PointsFromTriples(triples [][3]float64) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(triples))
	for i, t := range triples {
		points[i] = mgl64.Vec3{t[0], t[1], t[2]}
	}
	return points
}

// PointsFromSlices converts variable-length coordinate slices to
// points. Every inner slice must have exactly 3 elements.
func PointsFromSlices(slices [][]float64) ([]mgl64.Vec3, error) {
	points := make([]mgl64.Vec3, len(slices))
	for i, s := range slices {
		if len(s) != 3 {
			return nil, fmt.Errorf("%w: point %d has %d coordinates, want 3", ErrBadInput, i, len(s))
		}
		points[i] = mgl64.Vec3{s[0], s[1], s[2]}
	}
	return points, nil
}

// PointsFromCoords converts named-component records to points,
// preserving input order.
func PointsFromCoords(coords []Coord) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, len(coords))
	for i, c := range coords {
		x, y, z := c.XYZ()
		points[i] = mgl64.Vec3{x, y, z}
	}
	return points
}
