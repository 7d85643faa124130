package quickhull

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vec3ApproxEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return math.Abs(a.X()-b.X()) < tolerance &&
		math.Abs(a.Y()-b.Y()) < tolerance &&
		math.Abs(a.Z()-b.Z()) < tolerance
}

func TestNewTriangle(t *testing.T) {
	v0 := NewVertex(mgl64.Vec3{0, 0, 0}, 0)
	v1 := NewVertex(mgl64.Vec3{1, 0, 0}, 1)
	v2 := NewVertex(mgl64.Vec3{0, 1, 0}, 2)
	face := NewTriangle(v0, v1, v2, 0)

	if face.Mark() != Visible {
		t.Errorf("new face mark = %v, want Visible", face.Mark())
	}
	if face.nVertices != 3 {
		t.Errorf("nVertices = %d, want 3", face.nVertices)
	}

	// the ring must visit v0, v1, v2 in order and close on itself
	heads := []*Vertex{v0, v1, v2}
	edge := face.Edge(0)
	for i := 0; i < 3; i++ {
		if edge.Head() != heads[i] {
			t.Errorf("ring head %d = vertex %d, want vertex %d", i, edge.Head().Index, heads[i].Index)
		}
		if edge.next.prev != edge {
			t.Error("ring link broken: next.prev != self")
		}
		if edge.Face() != face {
			t.Error("ring edge does not point back at its face")
		}
		edge = edge.next
	}
	if edge != face.Edge(0) {
		t.Error("ring of a triangle must close after 3 steps")
	}

	if !vec3ApproxEqual(face.Normal(), mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normal = %v, want (0, 0, 1)", face.Normal())
	}
	if math.Abs(face.area-1) > 1e-12 {
		t.Errorf("area = %v, want 1 (twice the triangle area)", face.area)
	}
	expectedCentroid := mgl64.Vec3{1.0 / 3, 1.0 / 3, 0}
	if !vec3ApproxEqual(face.Centroid(), expectedCentroid, 1e-12) {
		t.Errorf("centroid = %v, want %v", face.Centroid(), expectedCentroid)
	}

	tests := []struct {
		name     string
		point    mgl64.Vec3
		expected float64
	}{
		{name: "above the plane", point: mgl64.Vec3{0, 0, 2}, expected: 2},
		{name: "below the plane", point: mgl64.Vec3{1, 1, -3}, expected: -3},
		{name: "on the plane", point: mgl64.Vec3{0.25, 0.25, 0}, expected: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := face.DistanceToPlane(tt.point); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("DistanceToPlane(%v) = %v, want %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestFaceEdgeSignedWalk(t *testing.T) {
	v0 := NewVertex(mgl64.Vec3{0, 0, 0}, 0)
	v1 := NewVertex(mgl64.Vec3{1, 0, 0}, 1)
	v2 := NewVertex(mgl64.Vec3{0, 1, 0}, 2)
	face := NewTriangle(v0, v1, v2, 0)

	if face.Edge(-1) != face.Edge(2) {
		t.Error("Edge(-1) must equal Edge(2) on a triangle")
	}
	if face.Edge(3) != face.Edge(0) {
		t.Error("Edge(3) must wrap to Edge(0) on a triangle")
	}
	if face.Edge(-3) != face.Edge(0) {
		t.Error("Edge(-3) must wrap to Edge(0) on a triangle")
	}
}

// buildQuadFace stitches a standalone 4-gon ring, bypassing NewTriangle,
// to exercise the Newell sum on a larger ring.
func buildQuadFace(points ...mgl64.Vec3) *Face {
	face := &Face{mark: Visible}
	edges := make([]*HalfEdge, len(points))
	for i, p := range points {
		edges[i] = NewHalfEdge(NewVertex(p, i), face)
	}
	for i := range edges {
		edges[i].next = edges[(i+1)%len(edges)]
		edges[i].prev = edges[(i+len(edges)-1)%len(edges)]
	}
	face.edge = edges[0]
	face.computeNormalAndCentroid()
	return face
}

func TestComputeNormalQuad(t *testing.T) {
	face := buildQuadFace(
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{2, 0, 0},
		mgl64.Vec3{2, 1, 0},
		mgl64.Vec3{0, 1, 0},
	)

	if face.nVertices != 4 {
		t.Errorf("nVertices = %d, want 4", face.nVertices)
	}
	if !vec3ApproxEqual(face.Normal(), mgl64.Vec3{0, 0, 1}, 1e-12) {
		t.Errorf("normal = %v, want (0, 0, 1)", face.Normal())
	}
	// the Newell sum has twice the polygon area as its length
	if math.Abs(face.area-4) > 1e-12 {
		t.Errorf("area = %v, want 4", face.area)
	}
	if !vec3ApproxEqual(face.Centroid(), mgl64.Vec3{1, 0.5, 0}, 1e-12) {
		t.Errorf("centroid = %v, want (1, 0.5, 0)", face.Centroid())
	}
	if math.Abs(face.offset) > 1e-12 {
		t.Errorf("offset = %v, want 0", face.offset)
	}
}

func TestComputeNormalMinArea(t *testing.T) {
	// a non-planar sliver: the raw Newell normal has a component along
	// the longest edge that the correction must remove
	sliver := func() *Face {
		return buildQuadFace(
			mgl64.Vec3{0, 0, 0},
			mgl64.Vec3{1, 1, 0},
			mgl64.Vec3{10, 0, 0},
			mgl64.Vec3{1, 0, 1},
		)
	}

	face := sliver()
	longest := face.Edge(2) // v1 -> v2, length ~9
	maxDir := longest.Head().Point.Sub(longest.Tail().Point).Normalize()
	skew := face.Normal().Dot(maxDir)
	if math.Abs(skew) < 1e-3 {
		t.Fatalf("fixture too tame: raw normal projection on longest edge = %v", skew)
	}

	t.Run("below threshold corrects the normal", func(t *testing.T) {
		face := sliver()
		face.computeNormalMinArea(face.area + 1)
		if got := math.Abs(face.Normal().Dot(maxDir)); got > 1e-9 {
			t.Errorf("corrected normal still has projection %v on the longest edge", got)
		}
		if got := face.Normal().Len(); math.Abs(got-1) > 1e-9 {
			t.Errorf("corrected normal length = %v, want 1", got)
		}
	})

	t.Run("above threshold leaves the normal alone", func(t *testing.T) {
		face := sliver()
		raw := face.Normal()
		face.computeNormalMinArea(face.area / 2)
		if !vec3ApproxEqual(face.Normal(), raw, 1e-12) {
			t.Errorf("normal changed from %v to %v although the area passed", raw, face.Normal())
		}
	})
}

// pyramid is a hand-stitched closed mesh: a unit square base split into
// two triangles plus four side triangles to an apex. Vertex indices:
// 0=a(0,0,0) 1=b(1,0,0) 2=c(1,1,0) 3=d(0,1,0) 4=e(apex).
type pyramid struct {
	base1, base2 *Face   // (a,d,c) and (a,c,b), both with normal -z
	sides        [4]*Face // (a,b,e) (b,c,e) (c,d,e) (d,a,e)
}

func buildPyramid() *pyramid {
	a := NewVertex(mgl64.Vec3{0, 0, 0}, 0)
	b := NewVertex(mgl64.Vec3{1, 0, 0}, 1)
	c := NewVertex(mgl64.Vec3{1, 1, 0}, 2)
	d := NewVertex(mgl64.Vec3{0, 1, 0}, 3)
	e := NewVertex(mgl64.Vec3{0.5, 0.5, 1}, 4)

	p := &pyramid{
		base1: NewTriangle(a, d, c, 0),
		base2: NewTriangle(a, c, b, 0),
		sides: [4]*Face{
			NewTriangle(a, b, e, 0),
			NewTriangle(b, c, e, 0),
			NewTriangle(c, d, e, 0),
			NewTriangle(d, a, e, 0),
		},
	}

	// the shared diagonal a-c
	p.base1.Edge(0).SetOpposite(p.base2.Edge(1))
	// base rim
	p.base2.Edge(0).SetOpposite(p.sides[0].Edge(1))
	p.base2.Edge(2).SetOpposite(p.sides[1].Edge(1))
	p.base1.Edge(2).SetOpposite(p.sides[2].Edge(1))
	p.base1.Edge(1).SetOpposite(p.sides[3].Edge(1))
	// lateral edges between side faces
	p.sides[0].Edge(2).SetOpposite(p.sides[1].Edge(0))
	p.sides[1].Edge(2).SetOpposite(p.sides[2].Edge(0))
	p.sides[2].Edge(2).SetOpposite(p.sides[3].Edge(0))
	p.sides[3].Edge(2).SetOpposite(p.sides[0].Edge(0))
	return p
}

func ringIndices(f *Face) []int {
	return f.CollectIndices()
}

func checkRingClosed(t *testing.T, f *Face) {
	t.Helper()
	edge := f.edge
	count := 0
	for {
		if edge.face != f {
			t.Errorf("ring edge owned by the wrong face")
		}
		if edge.next.prev != edge {
			t.Errorf("ring link broken: next.prev != self")
		}
		if edge.opposite == nil || edge.opposite.opposite != edge {
			t.Errorf("opposite pairing broken")
		} else {
			if edge.opposite.Head() != edge.Tail() || edge.opposite.Tail() != edge.Head() {
				t.Errorf("opposite edge does not reverse this edge")
			}
		}
		count++
		edge = edge.next
		if edge == f.edge {
			break
		}
	}
	if count != f.nVertices {
		t.Errorf("ring length %d does not match nVertices %d", count, f.nVertices)
	}
}

func TestMergeAdjacentFaces(t *testing.T) {
	p := buildPyramid()
	// capture before the merge rewires base1's reference edge
	baseRimEdge := p.base2.Edge(0)

	discarded := p.base1.MergeAdjacentFaces(p.base1.Edge(0), nil)

	if len(discarded) != 1 || discarded[0] != p.base2 {
		t.Fatalf("discarded = %v faces, want exactly the absorbed base triangle", len(discarded))
	}
	if p.base2.Mark() != Deleted {
		t.Error("absorbed face must be marked Deleted")
	}
	if p.base1.nVertices != 4 {
		t.Errorf("merged face has %d vertices, want 4", p.base1.nVertices)
	}
	if got := ringIndices(p.base1); !equalInts(got, []int{3, 2, 1, 0}) {
		t.Errorf("merged ring = %v, want [3 2 1 0]", got)
	}
	if !vec3ApproxEqual(p.base1.Normal(), mgl64.Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("merged normal = %v, want (0, 0, -1)", p.base1.Normal())
	}
	if !vec3ApproxEqual(p.base1.Centroid(), mgl64.Vec3{0.5, 0.5, 0}, 1e-12) {
		t.Errorf("merged centroid = %v, want (0.5, 0.5, 0)", p.base1.Centroid())
	}
	checkRingClosed(t, p.base1)
	for i, side := range p.sides {
		if side.Mark() != Visible {
			t.Errorf("side face %d should survive a base-only merge", i)
		}
		checkRingClosed(t, side)
	}

	// merging across the base rim swallows a side triangle; its two
	// remaining neighbors each end up bordering the merged face on two
	// edges and collapse through connectHalfEdges
	t.Run("merge collapsing triangle neighbors", func(t *testing.T) {
		discarded := p.base1.MergeAdjacentFaces(baseRimEdge, nil)

		if len(discarded) != 3 {
			t.Fatalf("discarded %d faces, want 3 (absorbed side plus two collapsed neighbors)", len(discarded))
		}
		if discarded[0] != p.sides[0] || discarded[1] != p.sides[3] || discarded[2] != p.sides[1] {
			t.Error("unexpected set of discarded faces")
		}
		for _, f := range discarded {
			if f.Mark() != Deleted {
				t.Error("discarded face not marked Deleted")
			}
		}
		if p.base1.nVertices != 3 {
			t.Errorf("collapsed face has %d vertices, want 3", p.base1.nVertices)
		}
		if got := ringIndices(p.base1); !equalInts(got, []int{3, 2, 4}) {
			t.Errorf("collapsed ring = %v, want [3 2 4]", got)
		}
		checkRingClosed(t, p.base1)
		// the mesh degenerates to two triangles back to back
		if p.sides[2].Mark() != Visible {
			t.Error("the far side face must survive")
		}
		checkRingClosed(t, p.sides[2])
		edge := p.base1.edge
		for i := 0; i < 3; i++ {
			if edge.opposite.face != p.sides[2] {
				t.Errorf("merged face edge %d should border the surviving side face", i)
			}
			edge = edge.next
		}
	})
}
