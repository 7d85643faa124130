package quickhull

import "github.com/go-gl/mathgl/mgl64"

// Vertex wraps an input point with its original index and the links that
// make it a node of one of the builder's intrusive lists. While a vertex
// sits outside the hull, face points at the face currently claiming it.
type Vertex struct {
	Point mgl64.Vec3
	Index int

	prev, next *Vertex
	face       *Face
}

// NewVertex wraps point, remembering its position in the input sequence.
func NewVertex(point mgl64.Vec3, index int) *Vertex {
	return &Vertex{Point: point, Index: index}
}

// Next returns the following vertex in whichever list currently holds
// this one, or nil at the tail.
func (v *Vertex) Next() *Vertex {
	return v.next
}
