// Package quickhull computes the convex hull of a finite set of points
// in ℝ³ using the QuickHull algorithm.
//
// The hull is built incrementally on a half-edge mesh: starting from a
// tetrahedron of extreme points, the point farthest outside the current
// hull is added each round. The faces visible from that point are torn
// out, the horizon loop separating them from the rest of the mesh is
// located, and a fan of new triangles is stitched from the point to the
// horizon. Two merge passes then absorb adjacent near-coplanar faces so
// the hull stays strictly convex under floating point tolerance.
//
// The result is a closed, convex, outward-oriented triangle mesh (or
// polygonal mesh when triangulation is skipped) described by indices
// into the input point sequence.
//
// References:
//   - Barber, Dobkin, Huhdanpaa: "The Quickhull Algorithm for Convex
//     Hulls" (1996)
//   - Preparata, Shamos: "Computational Geometry: An Introduction" (1985)
package quickhull

import (
	"fmt"
	"math"
	"slices"

	"github.com/akmonengine/quickhull/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// mergePolicy selects which convexity test drives a merge pass.
type mergePolicy int

const (
	// mergeNonConvexWrtLargerFace merges only when the larger of the
	// two faces sees the smaller one's centroid above its plane. Used
	// by the first pass; it keeps big stable faces as references.
	mergeNonConvexWrtLargerFace mergePolicy = iota
	// mergeNonConvex merges when either face sees the other's centroid
	// above its plane. Used by the second pass to clean up what the
	// first pass left concave.
	mergeNonConvex
)

// epsilon is the double-precision machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

// fastAcceptScale bounds the face scan when reassigning orphaned
// vertices: once a face is farther than fastAcceptScale times the
// tolerance, later faces cannot meaningfully improve the classification.
const fastAcceptScale = 1000.0

// QuickHull builds the convex hull of a point cloud. The zero value is
// ready to use; call Build and then CollectFaces. A builder is strictly
// single-threaded and must not be reused while Build is running.
type QuickHull struct {
	// Debug toggles trace output of the construction steps.
	Debug bool

	tolerance float64
	bounds    geom.AABB

	vertices []*Vertex
	faces    []*Face
	newFaces []*Face

	// claimed holds every vertex still outside some face, grouped in
	// contiguous per-face runs; unclaimed transiently holds vertices
	// orphaned while their face was torn out.
	claimed   VertexList
	unclaimed VertexList

	horizon []*HalfEdge

	built bool
}

// New returns an empty builder.
func New() *QuickHull {
	return &QuickHull{}
}

// Tolerance returns the plane-side classification threshold computed
// from the input's extent. Only meaningful after Build.
func (qh *QuickHull) Tolerance() float64 {
	return qh.tolerance
}

// Bounds returns the axis-aligned bounding box of the input points.
// Only meaningful after Build.
func (qh *QuickHull) Bounds() geom.AABB {
	return qh.bounds
}

// Build computes the convex hull of points. It fails with
// ErrTooFewPoints for fewer than 4 points, ErrBadInput for non-finite
// coordinates and ErrDegenerate when all points are collinear or
// coplanar within tolerance.
func (qh *QuickHull) Build(points []mgl64.Vec3) error {
	if len(points) < 4 {
		return fmt.Errorf("%w, got %d", ErrTooFewPoints, len(points))
	}
	for i, point := range points {
		for axis := 0; axis < 3; axis++ {
			if math.IsNaN(point[axis]) || math.IsInf(point[axis], 0) {
				return fmt.Errorf("%w: non-finite coordinate in point %d", ErrBadInput, i)
			}
		}
	}

	qh.vertices = make([]*Vertex, len(points))
	for i, point := range points {
		qh.vertices[i] = NewVertex(point, i)
	}
	qh.faces = qh.faces[:0]
	qh.newFaces = qh.newFaces[:0]
	qh.horizon = qh.horizon[:0]
	qh.claimed.Clear()
	qh.unclaimed.Clear()
	qh.built = false

	if err := qh.createInitialSimplex(); err != nil {
		return err
	}
	iterations := 0
	for eyeVertex := qh.nextVertexToAdd(); eyeVertex != nil; eyeVertex = qh.nextVertexToAdd() {
		iterations++
		qh.debugf("iteration %d: adding point %d", iterations, eyeVertex.Index)
		if err := qh.addVertexToHull(eyeVertex); err != nil {
			return err
		}
	}
	qh.reindexFaceVertices()
	qh.built = true
	qh.debugf("hull complete: %d faces after %d iterations", len(qh.faces), iterations)
	return nil
}

// CollectFaces returns the hull boundary as sequences of input indices
// in counter-clockwise order viewed from outside. With skipTriangulation
// each polygonal face is emitted whole; otherwise every n-gon becomes
// n-2 triangles fanned from its first vertex.
func (qh *QuickHull) CollectFaces(skipTriangulation bool) ([][]int, error) {
	if !qh.built {
		return nil, fmt.Errorf("quickhull: Build must succeed before CollectFaces")
	}
	var faceIndices [][]int
	for _, face := range qh.faces {
		if face.mark != Visible {
			return nil, fmt.Errorf("%w: destroyed face in the final hull", ErrInternal)
		}
		indices := face.CollectIndices()
		if skipTriangulation {
			faceIndices = append(faceIndices, indices)
		} else {
			for j := 0; j < len(indices)-2; j++ {
				faceIndices = append(faceIndices, []int{indices[0], indices[j+1], indices[j+2]})
			}
		}
	}
	return faceIndices, nil
}

// VertexIndices returns the sorted input indices of the points that are
// vertices of the hull boundary.
func (qh *QuickHull) VertexIndices() ([]int, error) {
	faces, err := qh.CollectFaces(true)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var indices []int
	for _, face := range faces {
		for _, index := range face {
			if !seen[index] {
				seen[index] = true
				indices = append(indices, index)
			}
		}
	}
	slices.Sort(indices)
	return indices, nil
}

// ContainsPoint reports whether point lies inside or on the built hull,
// within tolerance.
func (qh *QuickHull) ContainsPoint(point mgl64.Vec3) bool {
	if !qh.built {
		return false
	}
	for _, face := range qh.faces {
		if face.DistanceToPlane(point) > qh.tolerance {
			return false
		}
	}
	return true
}

// addVertexToFace claims vertex for face, placing it at the head of the
// face's run inside the claimed list.
func (qh *QuickHull) addVertexToFace(vertex *Vertex, face *Face) {
	vertex.face = face
	if face.outside == nil {
		qh.claimed.Add(vertex)
	} else {
		qh.claimed.InsertBefore(face.outside, vertex)
	}
	face.outside = vertex
}

// removeVertexFromFace releases vertex from its claiming face and from
// the claimed list.
func (qh *QuickHull) removeVertexFromFace(vertex *Vertex, face *Face) {
	if vertex == face.outside {
		if vertex.next != nil && vertex.next.face == face {
			face.outside = vertex.next
		} else {
			face.outside = nil
		}
	}
	qh.claimed.Remove(vertex)
}

// removeAllVerticesFromFace detaches face's whole outside run from the
// claimed list and returns it as a standalone chain, or nil.
func (qh *QuickHull) removeAllVerticesFromFace(face *Face) *Vertex {
	if face.outside == nil {
		return nil
	}
	end := face.outside
	for end.next != nil && end.next.face == face {
		end = end.next
	}
	head := qh.claimed.RemoveChain(face.outside, end)
	face.outside = nil
	return head
}

// deleteFaceVertices disposes of the outside vertices of a face leaving
// the hull. With an absorbing face, vertices still outside it are
// claimed directly; everything else joins the unclaimed list for later
// reassignment.
func (qh *QuickHull) deleteFaceVertices(face, absorbingFace *Face) {
	retained := qh.removeAllVerticesFromFace(face)
	if retained == nil {
		return
	}
	if absorbingFace == nil {
		qh.unclaimed.AddAll(retained)
		return
	}
	var next *Vertex
	for vertex := retained; vertex != nil; vertex = next {
		// re-adding the vertex rewrites its links, read next up front
		next = vertex.next
		if absorbingFace.DistanceToPlane(vertex.Point) > qh.tolerance {
			qh.addVertexToFace(vertex, absorbingFace)
		} else {
			qh.unclaimed.Add(vertex)
		}
	}
}

// resolveUnclaimedPoints reassigns orphaned vertices to the new face
// seeing them farthest away. Vertices inside every new face are inside
// the hull and are dropped.
func (qh *QuickHull) resolveUnclaimedPoints(newFaces []*Face) {
	var next *Vertex
	for vertex := qh.unclaimed.First(); vertex != nil; vertex = next {
		next = vertex.next
		maxDistance := qh.tolerance
		var maxFace *Face
		for _, face := range newFaces {
			if face.mark != Visible {
				continue
			}
			distance := face.DistanceToPlane(vertex.Point)
			if distance > maxDistance {
				maxDistance = distance
				maxFace = face
			}
			if maxDistance > fastAcceptScale*qh.tolerance {
				break
			}
		}
		if maxFace != nil {
			qh.addVertexToFace(vertex, maxFace)
		}
	}
}

// computeExtremes finds the vertices with minimum and maximum coordinate
// per axis, records the input bounds and derives the classification
// tolerance from the cloud's magnitude.
func (qh *QuickHull) computeExtremes() (min, max [3]*Vertex) {
	v0 := qh.vertices[0]
	for axis := 0; axis < 3; axis++ {
		min[axis] = v0
		max[axis] = v0
	}
	bounds := geom.NewAABB(v0.Point)
	for _, vertex := range qh.vertices[1:] {
		for axis := 0; axis < 3; axis++ {
			if vertex.Point[axis] < min[axis].Point[axis] {
				min[axis] = vertex
			}
			if vertex.Point[axis] > max[axis].Point[axis] {
				max[axis] = vertex
			}
		}
		bounds = bounds.Extend(vertex.Point)
	}
	qh.bounds = bounds
	qh.tolerance = 3 * epsilon *
		(math.Max(math.Abs(bounds.Min.X()), math.Abs(bounds.Max.X())) +
			math.Max(math.Abs(bounds.Min.Y()), math.Abs(bounds.Max.Y())) +
			math.Max(math.Abs(bounds.Min.Z()), math.Abs(bounds.Max.Z())))
	qh.debugf("tolerance %g", qh.tolerance)
	return min, max
}

// createInitialSimplex picks four affinely independent extreme points,
// builds the tetrahedron with outward normals and claims every remaining
// vertex for the face that sees it farthest away.
func (qh *QuickHull) createInitialSimplex() error {
	min, max := qh.computeExtremes()

	// v0, v1: the two ends of the axis with the largest extent
	indexMax := 0
	maxExtent := 0.0
	for axis := 0; axis < 3; axis++ {
		extent := max[axis].Point[axis] - min[axis].Point[axis]
		if extent > maxExtent {
			maxExtent = extent
			indexMax = axis
		}
	}
	v0 := min[indexMax]
	v1 := max[indexMax]

	// v2: farthest from the line v0-v1
	var v2 *Vertex
	maxDistance := qh.tolerance
	for _, vertex := range qh.vertices {
		if vertex == v0 || vertex == v1 {
			continue
		}
		distance := geom.PointLineDistance(vertex.Point, v0.Point, v1.Point)
		if distance > maxDistance {
			maxDistance = distance
			v2 = vertex
		}
	}
	if v2 == nil {
		return fmt.Errorf("%w: all points are collinear", ErrDegenerate)
	}

	// v3: farthest from the plane v0-v1-v2
	normal := geom.PlaneNormal(v0.Point, v1.Point, v2.Point)
	distPO := v0.Point.Dot(normal)
	var v3 *Vertex
	maxDistance = qh.tolerance
	for _, vertex := range qh.vertices {
		if vertex == v0 || vertex == v1 || vertex == v2 {
			continue
		}
		distance := math.Abs(normal.Dot(vertex.Point) - distPO)
		if distance > maxDistance {
			maxDistance = distance
			v3 = vertex
		}
	}
	if v3 == nil {
		return fmt.Errorf("%w: all points are coplanar", ErrDegenerate)
	}
	qh.debugf("initial simplex %d %d %d %d", v0.Index, v1.Index, v2.Index, v3.Index)

	var simplexFaces [4]*Face
	if v3.Point.Dot(normal)-distPO < 0 {
		// the plane v0-v1-v2 cannot see v3, its normal already points
		// away from the tetrahedron interior
		simplexFaces = [4]*Face{
			NewTriangle(v0, v1, v2, 0),
			NewTriangle(v3, v1, v0, 0),
			NewTriangle(v3, v2, v1, 0),
			NewTriangle(v3, v0, v2, 0),
		}
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			// join face[i] with the base face
			simplexFaces[i+1].Edge(2).SetOpposite(simplexFaces[0].Edge(j))
			// join face[i] with the next lateral face
			simplexFaces[i+1].Edge(1).SetOpposite(simplexFaces[j+1].Edge(0))
		}
	} else {
		simplexFaces = [4]*Face{
			NewTriangle(v0, v2, v1, 0),
			NewTriangle(v3, v0, v1, 0),
			NewTriangle(v3, v1, v2, 0),
			NewTriangle(v3, v2, v0, 0),
		}
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			simplexFaces[i+1].Edge(2).SetOpposite(simplexFaces[0].Edge((3 - i) % 3))
			simplexFaces[i+1].Edge(0).SetOpposite(simplexFaces[j+1].Edge(1))
		}
	}
	qh.faces = append(qh.faces, simplexFaces[:]...)

	// claim every remaining vertex for the face seeing it farthest
	for _, vertex := range qh.vertices {
		if vertex == v0 || vertex == v1 || vertex == v2 || vertex == v3 {
			continue
		}
		maxDistance = qh.tolerance
		var maxFace *Face
		for _, face := range simplexFaces {
			distance := face.DistanceToPlane(vertex.Point)
			if distance > maxDistance {
				maxDistance = distance
				maxFace = face
			}
		}
		if maxFace != nil {
			qh.addVertexToFace(vertex, maxFace)
		}
	}
	return nil
}

// nextVertexToAdd picks the outside vertex farthest from its claiming
// face, or nil when no outside vertices remain. Scanning the first
// claimed run is enough: its face is guaranteed to still be visible.
func (qh *QuickHull) nextVertexToAdd() *Vertex {
	if qh.claimed.IsEmpty() {
		return nil
	}
	eyeFace := qh.claimed.First().face
	var eyeVertex *Vertex
	maxDistance := 0.0
	for vertex := eyeFace.outside; vertex != nil && vertex.face == eyeFace; vertex = vertex.next {
		distance := eyeFace.DistanceToPlane(vertex.Point)
		if distance > maxDistance {
			maxDistance = distance
			eyeVertex = vertex
		}
	}
	return eyeVertex
}

// computeHorizon tears out the faces visible from eyePoint by
// depth-first traversal and appends the closed loop of edges bordering
// the non-visible region to qh.horizon, in counter-clockwise order as
// seen from eyePoint.
func (qh *QuickHull) computeHorizon(eyePoint mgl64.Vec3, crossEdge *HalfEdge, face *Face) error {
	// the face is about to be discarded, free its outside vertices for
	// reassignment
	qh.deleteFaceVertices(face, nil)
	face.mark = Deleted

	var edge *HalfEdge
	if crossEdge == nil {
		crossEdge = face.Edge(0)
		edge = crossEdge
	} else {
		// the cross edge was reached from the neighbor, its own
		// opposite face is already deleted
		edge = crossEdge.next
	}

	for {
		oppositeEdge := edge.opposite
		if oppositeEdge == nil {
			return fmt.Errorf("%w: half-edge without opposite during horizon computation", ErrInternal)
		}
		oppositeFace := oppositeEdge.face
		if oppositeFace.mark == Visible {
			if oppositeFace.DistanceToPlane(eyePoint) > qh.tolerance {
				if err := qh.computeHorizon(eyePoint, oppositeEdge, oppositeFace); err != nil {
					return err
				}
			} else {
				qh.horizon = append(qh.horizon, edge)
			}
		}
		edge = edge.next
		if edge == crossEdge {
			return nil
		}
	}
}

// addAdjoiningFace creates the triangle spanned by the eye vertex and a
// horizon edge, bound outward to the horizon neighbor. Returns the
// lateral edge pointing at the eye vertex.
func (qh *QuickHull) addAdjoiningFace(eyeVertex *Vertex, horizonEdge *HalfEdge) *HalfEdge {
	face := NewTriangle(eyeVertex, horizonEdge.Tail(), horizonEdge.Head(), 0)
	qh.faces = append(qh.faces, face)
	face.Edge(-1).SetOpposite(horizonEdge.opposite)
	return face.Edge(0)
}

// addAdjoiningFaces fans new triangles from the eye vertex to every
// horizon edge and stitches the lateral edges of consecutive fan faces
// to each other, closing the loop at the end.
func (qh *QuickHull) addAdjoiningFaces(eyeVertex *Vertex, horizon []*HalfEdge) []*Face {
	newFaces := make([]*Face, 0, len(horizon))
	var firstSideEdge, previousSideEdge *HalfEdge
	for _, horizonEdge := range horizon {
		sideEdge := qh.addAdjoiningFace(eyeVertex, horizonEdge)
		if firstSideEdge == nil {
			firstSideEdge = sideEdge
		} else {
			sideEdge.next.SetOpposite(previousSideEdge)
		}
		newFaces = append(newFaces, sideEdge.face)
		previousSideEdge = sideEdge
	}
	firstSideEdge.next.SetOpposite(previousSideEdge)
	return newFaces
}

// oppositeFaceDistance measures how far the neighbor face's centroid
// sits above edge.face's plane.
func (qh *QuickHull) oppositeFaceDistance(edge *HalfEdge) float64 {
	return edge.face.DistanceToPlane(edge.opposite.face.centroid)
}

// doAdjacentMerge walks face's edge ring looking for a neighbor to
// absorb under the given policy. It merges at most one neighbor and
// reports whether it did, so the caller loops until the ring is clean.
func (qh *QuickHull) doAdjacentMerge(face *Face, policy mergePolicy) (bool, error) {
	edge := face.edge
	convex := true
	it := 0
	for {
		if it >= face.nVertices {
			return false, fmt.Errorf("%w: merge recursion limit exceeded", ErrInternal)
		}
		oppositeFace := edge.opposite.face

		merge := false
		if policy == mergeNonConvex {
			if qh.oppositeFaceDistance(edge) > -qh.tolerance ||
				qh.oppositeFaceDistance(edge.opposite) > -qh.tolerance {
				merge = true
			}
		} else {
			// the larger face decides; a concave pair seen only by the
			// smaller face waits for the second pass
			if face.area > oppositeFace.area {
				if qh.oppositeFaceDistance(edge) > -qh.tolerance {
					merge = true
				} else if qh.oppositeFaceDistance(edge.opposite) > -qh.tolerance {
					convex = false
				}
			} else {
				if qh.oppositeFaceDistance(edge.opposite) > -qh.tolerance {
					merge = true
				} else if qh.oppositeFaceDistance(edge) > -qh.tolerance {
					convex = false
				}
			}
		}

		if merge {
			qh.debugf("merging face into neighbor across edge %d-%d",
				edge.Tail().Index, edge.Head().Index)
			discardedFaces := face.MergeAdjacentFaces(edge, nil)
			for _, discardedFace := range discardedFaces {
				qh.deleteFaceVertices(discardedFace, face)
			}
			return true, nil
		}

		edge = edge.next
		it++
		if edge == face.edge {
			break
		}
	}
	if !convex {
		face.mark = NonConvex
	}
	return false, nil
}

// addVertexToHull performs one incremental step: tear out the faces
// visible from eyeVertex, fan new faces to the horizon, restore strict
// convexity with two merge passes and reassign the orphaned vertices.
func (qh *QuickHull) addVertexToHull(eyeVertex *Vertex) error {
	qh.horizon = qh.horizon[:0]
	qh.unclaimed.Clear()

	// detach the eye vertex first so the horizon sweep cannot move it
	// into the unclaimed list
	qh.removeVertexFromFace(eyeVertex, eyeVertex.face)
	if err := qh.computeHorizon(eyeVertex.Point, nil, eyeVertex.face); err != nil {
		return err
	}
	qh.debugf("horizon of %d edges", len(qh.horizon))
	qh.newFaces = qh.addAdjoiningFaces(eyeVertex, qh.horizon)

	for _, face := range qh.newFaces {
		if face.mark == Visible {
			for {
				merged, err := qh.doAdjacentMerge(face, mergeNonConvexWrtLargerFace)
				if err != nil {
					return err
				}
				if !merged {
					break
				}
			}
		}
	}
	for _, face := range qh.newFaces {
		if face.mark == NonConvex {
			face.mark = Visible
			for {
				merged, err := qh.doAdjacentMerge(face, mergeNonConvex)
				if err != nil {
					return err
				}
				if !merged {
					break
				}
			}
		}
	}

	qh.resolveUnclaimedPoints(qh.newFaces)
	return nil
}

// reindexFaceVertices drops every face that did not survive to the
// final hull.
func (qh *QuickHull) reindexFaceVertices() {
	activeFaces := qh.faces[:0]
	for _, face := range qh.faces {
		if face.mark == Visible {
			activeFaces = append(activeFaces, face)
		}
	}
	qh.faces = activeFaces
}

func (qh *QuickHull) debugf(format string, args ...any) {
	if !qh.Debug {
		return
	}
	fmt.Printf("quickhull: "+format+"\n", args...)
}
