// Package geom provides the small ℝ³ kernel the hull builder relies on.
//
// Points and vectors are mgl64.Vec3 values; the functions here cover only
// what mathgl does not ship directly: plane normals with a fixed sign
// convention, point-to-line distance, normalization that never produces
// NaN, and a lexicographic ordering used for canonical comparisons.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PlaneNormal returns the unnormalized normal of the triangle (a, b, c),
// computed as (b-c) × (b-a). For a counter-clockwise ordering of the
// vertices the normal points toward the viewer, matching the winding
// produced by the hull's triangle construction.
func PlaneNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	return b.Sub(c).Cross(b.Sub(a))
}

// PointLineDistance returns the Euclidean distance from p to the infinite
// line through l1 and l2. When l1 == l2 the line is undefined and the
// distance is 0.
func PointLineDistance(p, l1, l2 mgl64.Vec3) float64 {
	dir := l2.Sub(l1)
	lenSq := dir.Dot(dir)
	if lenSq == 0 {
		return 0
	}
	return p.Sub(l1).Cross(dir).Len() / math.Sqrt(lenSq)
}

// SafeNormalize returns v scaled to unit length, or the zero vector when
// v has length exactly zero. mgl64's Normalize divides blindly and would
// yield NaN components for a zero input.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	length := v.Len()
	if length == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / length)
}

// Compare orders two vectors lexicographically (x, then y, then z).
// Returns -1, 0 or 1.
func Compare(a, b mgl64.Vec3) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
