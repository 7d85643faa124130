package quickhull

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestHalfEdgeLengths(t *testing.T) {
	v0 := NewVertex(mgl64.Vec3{0, 0, 0}, 0)
	v1 := NewVertex(mgl64.Vec3{3, 4, 0}, 1)
	v2 := NewVertex(mgl64.Vec3{0, 4, 0}, 2)
	face := NewTriangle(v0, v1, v2, 0)

	// edge 1 runs v0 -> v1
	edge := face.Edge(1)
	if edge.Head() != v1 || edge.Tail() != v0 {
		t.Fatalf("Edge(1) spans %v -> %v, want v0 -> v1", edge.Tail(), edge.Head())
	}
	if got := edge.Length(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Length() = %v, want 5", got)
	}
	if got := edge.LengthSquared(); math.Abs(got-25) > 1e-12 {
		t.Errorf("LengthSquared() = %v, want 25", got)
	}
}

func TestHalfEdgeNoTail(t *testing.T) {
	orphan := NewHalfEdge(NewVertex(mgl64.Vec3{1, 1, 1}, 0), nil)
	if orphan.Tail() != nil {
		t.Error("unlinked edge should have no tail")
	}
	if got := orphan.Length(); got != -1 {
		t.Errorf("Length() = %v, want -1 for unlinked edge", got)
	}
	if got := orphan.LengthSquared(); got != -1 {
		t.Errorf("LengthSquared() = %v, want -1 for unlinked edge", got)
	}
}

func TestHalfEdgeSetOpposite(t *testing.T) {
	v0 := NewVertex(mgl64.Vec3{0, 0, 0}, 0)
	v1 := NewVertex(mgl64.Vec3{1, 0, 0}, 1)
	a := NewHalfEdge(v1, nil)
	b := NewHalfEdge(v0, nil)

	a.SetOpposite(b)
	if a.Opposite() != b || b.Opposite() != a {
		t.Error("SetOpposite must pair both directions")
	}
}
