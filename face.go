package quickhull

import (
	"math"

	"github.com/akmonengine/quickhull/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// Mark tracks the lifecycle state of a face.
type Mark int

const (
	// Visible faces are part of the hull under construction.
	Visible Mark = iota
	// NonConvex flags a face left concave by the first merge pass so
	// the second pass revisits it.
	NonConvex
	// Deleted faces were absorbed by a merge or hidden by an added
	// point; they are no longer part of the hull.
	Deleted
)

// Face is a planar polygonal face of the hull, described by a closed
// ring of half-edges. Faces start as triangles and grow by absorbing
// coplanar neighbors during merging.
type Face struct {
	normal   mgl64.Vec3
	centroid mgl64.Vec3
	// offset = dot(normal, centroid), so distanceToPlane is a single
	// dot product.
	offset float64
	// area is twice the true polygon area for triangles (the length of
	// the raw Newell sum); it is only ever compared against other
	// faces, never reported.
	area float64

	mark      Mark
	edge      *HalfEdge
	nVertices int

	// outside heads this face's run inside the builder's claimed list.
	outside *Vertex
}

// NewTriangle builds a triangular face whose edge ring visits v0, v1, v2
// in order. The normal follows geom.PlaneNormal's sign convention, so a
// counter-clockwise vertex order seen from outside yields an outward
// normal. minArea is forwarded to the sliver correction; pass 0 to
// disable it.
func NewTriangle(v0, v1, v2 *Vertex, minArea float64) *Face {
	face := &Face{mark: Visible}
	e0 := NewHalfEdge(v0, face)
	e1 := NewHalfEdge(v1, face)
	e2 := NewHalfEdge(v2, face)

	e0.next = e1
	e1.next = e2
	e2.next = e0
	e0.prev = e2
	e1.prev = e0
	e2.prev = e1

	face.edge = e0
	face.computeNormalAndCentroidMinArea(minArea)
	return face
}

// Mark returns the face's lifecycle state.
func (f *Face) Mark() Mark {
	return f.mark
}

// Normal returns the outward unit normal.
func (f *Face) Normal() mgl64.Vec3 {
	return f.normal
}

// Centroid returns the arithmetic mean of the ring's vertices.
func (f *Face) Centroid() mgl64.Vec3 {
	return f.centroid
}

// Edge returns the ring edge i signed steps away from the face's
// reference edge: positive i walks next, negative i walks prev.
func (f *Face) Edge(i int) *HalfEdge {
	it := f.edge
	for ; i > 0; i-- {
		it = it.next
	}
	for ; i < 0; i++ {
		it = it.prev
	}
	return it
}

// DistanceToPlane returns the signed distance from point to the face's
// plane; positive means outside.
func (f *Face) DistanceToPlane(point mgl64.Vec3) float64 {
	return f.normal.Dot(point) - f.offset
}

// computeNormal accumulates a Newell-style sum of successive edge cross
// products around the ring. The length of the raw sum is kept as the
// face's area before the normal is scaled to unit length; nVertices is
// recounted in the same pass.
func (f *Face) computeNormal() {
	e0 := f.edge
	e1 := e0.next
	e2 := e1.next

	v2 := e1.vertex.Point.Sub(e0.vertex.Point)

	f.nVertices = 2
	f.normal = mgl64.Vec3{}
	for edge := e2; edge != e0; edge = edge.next {
		v1 := v2
		v2 = edge.vertex.Point.Sub(e0.vertex.Point)
		f.normal = f.normal.Add(v1.Cross(v2))
		f.nVertices++
	}
	f.area = f.normal.Len()
	// cheaper than normalizing again, the length is already known
	f.normal = f.normal.Mul(1 / f.area)
}

// computeNormalMinArea recomputes the normal and, when the face is a
// sliver (area below minArea), replaces it with the normal projected
// away from the ring's longest edge. A nearly collinear vertex would
// otherwise amplify noise in the Newell sum.
func (f *Face) computeNormalMinArea(minArea float64) {
	f.computeNormal()
	if f.area < minArea {
		var maxEdge *HalfEdge
		maxLengthSquared := 0.0
		edge := f.edge
		for {
			lengthSquared := edge.LengthSquared()
			if lengthSquared > maxLengthSquared {
				maxEdge = edge
				maxLengthSquared = lengthSquared
			}
			edge = edge.next
			if edge == f.edge {
				break
			}
		}

		p1 := maxEdge.Tail().Point
		p2 := maxEdge.Head().Point
		maxVector := p2.Sub(p1).Mul(1 / math.Sqrt(maxLengthSquared))
		maxProjection := f.normal.Dot(maxVector)
		f.normal = geom.SafeNormalize(f.normal.Sub(maxVector.Mul(maxProjection)))
	}
}

// computeCentroid recomputes the centroid as the mean of the ring's head
// vertices.
func (f *Face) computeCentroid() {
	f.centroid = mgl64.Vec3{}
	edge := f.edge
	for {
		f.centroid = f.centroid.Add(edge.vertex.Point)
		edge = edge.next
		if edge == f.edge {
			break
		}
	}
	f.centroid = f.centroid.Mul(1 / float64(f.nVertices))
}

func (f *Face) computeNormalAndCentroid() {
	f.computeNormal()
	f.computeCentroid()
	f.offset = f.normal.Dot(f.centroid)
}

func (f *Face) computeNormalAndCentroidMinArea(minArea float64) {
	f.computeNormalMinArea(minArea)
	f.computeCentroid()
	f.offset = f.normal.Dot(f.centroid)
}

// connectHalfEdges relinks prev.next = next after a merge spliced out the
// edges between them. When prev and next point into the same neighbor
// face a redundant double edge is about to form; the neighbor either
// collapses entirely (triangle) or has the redundant edge spliced out.
// Returns the collapsed face, if any.
func (f *Face) connectHalfEdges(prev, next *HalfEdge) *Face {
	var discardedFace *Face
	if prev.opposite.face == next.opposite.face {
		oppositeFace := next.opposite.face
		var oppositeEdge *HalfEdge

		if prev == f.edge {
			f.edge = next
		}
		if oppositeFace.nVertices == 3 {
			// the neighbor degenerates to a double edge, drop it
			oppositeEdge = next.opposite.prev.opposite
			oppositeFace.mark = Deleted
			discardedFace = oppositeFace
		} else {
			oppositeEdge = next.opposite.next
			if oppositeFace.edge == oppositeEdge.prev {
				oppositeFace.edge = oppositeEdge
			}
			oppositeEdge.prev = oppositeEdge.prev.prev
			oppositeEdge.prev.next = oppositeEdge
		}

		next.prev = prev.prev
		next.prev.next = next

		next.SetOpposite(oppositeEdge)

		// the neighbor lost vertices, refresh its plane
		oppositeFace.computeNormalAndCentroid()
	} else {
		prev.next = next
		next.prev = prev
	}
	return discardedFace
}

// MergeAdjacentFaces absorbs the face on the other side of adjacentEdge
// into f. The full run of edges shared between the two faces is spliced
// out, the opposite face's surviving edges are adopted, and the two
// stitch points may collapse further neighbor faces. Every face removed
// from the hull is appended to discardedFaces, which is returned.
func (f *Face) MergeAdjacentFaces(adjacentEdge *HalfEdge, discardedFaces []*Face) []*Face {
	oppositeEdge := adjacentEdge.opposite
	oppositeFace := oppositeEdge.face

	discardedFaces = append(discardedFaces, oppositeFace)
	oppositeFace.mark = Deleted

	// the shared boundary may span several edges; extend it in both
	// directions before splicing
	adjacentEdgePrev := adjacentEdge.prev
	adjacentEdgeNext := adjacentEdge.next
	oppositeEdgePrev := oppositeEdge.prev
	oppositeEdgeNext := oppositeEdge.next

	for adjacentEdgePrev.opposite.face == oppositeFace {
		adjacentEdgePrev = adjacentEdgePrev.prev
		oppositeEdgeNext = oppositeEdgeNext.next
	}
	for adjacentEdgeNext.opposite.face == oppositeFace {
		adjacentEdgeNext = adjacentEdgeNext.next
		oppositeEdgePrev = oppositeEdgePrev.prev
	}

	// adopt the opposite face's non-shared edges
	for edge := oppositeEdgeNext; edge != oppositeEdgePrev.next; edge = edge.next {
		edge.face = f
	}

	// f.edge might lie on the spliced-out boundary
	f.edge = adjacentEdgeNext

	if discardedFace := f.connectHalfEdges(oppositeEdgePrev, adjacentEdgeNext); discardedFace != nil {
		discardedFaces = append(discardedFaces, discardedFace)
	}
	if discardedFace := f.connectHalfEdges(adjacentEdgePrev, oppositeEdgeNext); discardedFace != nil {
		discardedFaces = append(discardedFaces, discardedFace)
	}

	f.computeNormalAndCentroid()
	return discardedFaces
}

// CollectIndices returns the input indices of the ring's vertices in
// counter-clockwise order viewed from outside.
func (f *Face) CollectIndices() []int {
	indices := make([]int, 0, f.nVertices)
	edge := f.edge
	for {
		indices = append(indices, edge.vertex.Index)
		edge = edge.next
		if edge == f.edge {
			break
		}
	}
	return indices
}
