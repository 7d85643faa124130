package quickhull

// HalfEdge is a directed edge of the hull mesh. Two half-edges with
// opposite orientation, each owned by one of the two incident faces,
// model a single undirected mesh edge.
type HalfEdge struct {
	// vertex is the head of the edge; the tail is prev's head.
	vertex *Vertex
	face   *Face

	next, prev, opposite *HalfEdge
}

// NewHalfEdge creates an edge pointing at vertex, owned by face.
func NewHalfEdge(vertex *Vertex, face *Face) *HalfEdge {
	return &HalfEdge{vertex: vertex, face: face}
}

// Head returns the vertex the edge points at.
func (e *HalfEdge) Head() *Vertex {
	return e.vertex
}

// Tail returns the vertex the edge starts from, or nil when the edge is
// not yet linked into a ring.
func (e *HalfEdge) Tail() *Vertex {
	if e.prev == nil {
		return nil
	}
	return e.prev.vertex
}

// Face returns the face that owns this edge.
func (e *HalfEdge) Face() *Face {
	return e.face
}

// Opposite returns the matching half-edge in the neighboring face.
func (e *HalfEdge) Opposite() *HalfEdge {
	return e.opposite
}

// SetOpposite pairs e with other in both directions.
func (e *HalfEdge) SetOpposite(other *HalfEdge) {
	e.opposite = other
	other.opposite = e
}

// Length returns the Euclidean distance between tail and head, or -1
// when the edge has no tail.
func (e *HalfEdge) Length() float64 {
	tail := e.Tail()
	if tail == nil {
		return -1
	}
	return e.vertex.Point.Sub(tail.Point).Len()
}

// LengthSquared returns the squared distance between tail and head, or
// -1 when the edge has no tail.
func (e *HalfEdge) LengthSquared() float64 {
	tail := e.Tail()
	if tail == nil {
		return -1
	}
	return e.vertex.Point.Sub(tail.Point).LenSqr()
}
