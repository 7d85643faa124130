package quickhull

// VertexList is an intrusive doubly linked list of vertices. The builder
// keeps two of them: the claimed list of all outside vertices grouped in
// per-face runs, and the transient unclaimed list of orphans awaiting
// reassignment.
//
// Remove leaves the unlinked node's prev/next pointers dangling, so any
// consumer that mutates the list while walking it must cache Next()
// before removing or re-adding the current vertex.
type VertexList struct {
	head, tail *Vertex
}

// Clear empties the list.
func (l *VertexList) Clear() {
	l.head = nil
	l.tail = nil
}

// First returns the head of the list, or nil when empty.
func (l *VertexList) First() *Vertex {
	return l.head
}

// IsEmpty reports whether the list holds no vertices.
func (l *VertexList) IsEmpty() bool {
	return l.head == nil
}

// Add appends v at the tail.
func (l *VertexList) Add(v *Vertex) {
	if l.head == nil {
		l.head = v
	} else {
		l.tail.next = v
	}
	v.prev = l.tail
	v.next = nil
	l.tail = v
}

// AddAll absorbs a standalone chain starting at head, appending it at
// the tail.
func (l *VertexList) AddAll(head *Vertex) {
	if l.head == nil {
		l.head = head
	} else {
		l.tail.next = head
	}
	head.prev = l.tail

	node := head
	for node.next != nil {
		node = node.next
	}
	l.tail = node
}

// InsertBefore splices v immediately before ref.
func (l *VertexList) InsertBefore(ref, v *Vertex) {
	v.prev = ref.prev
	v.next = ref
	if ref.prev == nil {
		l.head = v
	} else {
		ref.prev.next = v
	}
	ref.prev = v
}

// Remove unlinks v. The node's own prev/next are left untouched; callers
// iterating the list cache next first.
func (l *VertexList) Remove(v *Vertex) {
	if v.prev == nil {
		l.head = v.next
	} else {
		v.prev.next = v.next
	}
	if v.next == nil {
		l.tail = v.prev
	} else {
		v.next.prev = v.prev
	}
}

// RemoveChain unlinks the contiguous subchain from head through tail
// inclusive and returns it standalone, with head.prev and tail.next nil.
func (l *VertexList) RemoveChain(head, tail *Vertex) *Vertex {
	if head.prev == nil {
		l.head = tail.next
	} else {
		head.prev.next = tail.next
	}
	if tail.next == nil {
		l.tail = head.prev
	} else {
		tail.next.prev = head.prev
	}
	head.prev = nil
	tail.next = nil
	return head
}
