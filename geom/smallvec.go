package geom

// smallVecStackCap is the inline capacity before SmallVec falls back
// to a heap-allocated slice. Per-edge triangle lists (at most 2 in a
// manifold mesh) and most node neighbor lists fit below this; a
// per-vertex edge list of degree above 8 spills to the heap (spec.md
// §9's small-array hotspots).
const smallVecStackCap = 8

// SmallVec is a small-vector-optimized container: up to
// smallVecStackCap elements live inline with no allocation, and it
// transparently spills to a heap slice beyond that. The zero value is
// an empty SmallVec ready to use.
type SmallVec[T any] struct {
	stack [smallVecStackCap]T
	n     int
	heap  []T
}

// Len returns the number of stored elements.
func (s *SmallVec[T]) Len() int {
	return s.n
}

// Get returns the element at index i.
func (s *SmallVec[T]) Get(i int) T {
	if s.heap != nil {
		return s.heap[i]
	}
	return s.stack[i]
}

// Set overwrites the element at index i.
func (s *SmallVec[T]) Set(i int, v T) {
	if s.heap != nil {
		s.heap[i] = v
		return
	}
	s.stack[i] = v
}

// Append adds v to the end of the vector, spilling to the heap the
// first time the inline capacity is exceeded.
func (s *SmallVec[T]) Append(v T) {
	if s.heap != nil {
		s.heap = append(s.heap, v)
		s.n++
		return
	}
	if s.n < smallVecStackCap {
		s.stack[s.n] = v
		s.n++
		return
	}
	s.heap = make([]T, s.n, s.n*2+1)
	copy(s.heap, s.stack[:s.n])
	s.heap = append(s.heap, v)
	s.n++
}

// RemoveAt deletes the element at index i, preserving the relative
// order of the remaining elements.
func (s *SmallVec[T]) RemoveAt(i int) {
	if s.heap != nil {
		s.heap = append(s.heap[:i], s.heap[i+1:]...)
		s.n--
		return
	}
	copy(s.stack[i:s.n-1], s.stack[i+1:s.n])
	s.n--
}

// IndexOf returns the first index holding a value equal to v, or -1.
func (s *SmallVec[T]) IndexOf(v T, eq func(a, b T) bool) int {
	for i := 0; i < s.n; i++ {
		if eq(s.Get(i), v) {
			return i
		}
	}
	return -1
}

// Slice copies the vector out into a plain slice, in order.
func (s *SmallVec[T]) Slice() []T {
	res := make([]T, s.n)
	for i := range res {
		res[i] = s.Get(i)
	}
	return res
}

// Reset empties the vector and drops any heap allocation, so later
// appends start again in the inline storage.
func (s *SmallVec[T]) Reset() {
	s.n = 0
	s.heap = nil
}
