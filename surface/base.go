// Package surface implements the mesh arena described in spec.md §4.C:
// indexed, free-listed pools of vertices, edges and triangles, plus
// the topology and geometry queries built on top of them.
//
// All cross-references between entities are plain integer indices into
// the arena's slices; no pointers escape it. This mirrors the design
// note in spec.md §9 ("no raw pointers escape the arena") and is the
// one place in the module where the teacher's coordinate-keyed
// CoordMap style (model3d/fast_maps.go) is deliberately not reused:
// the spec requires stable, GC-rewritable integer identity, which a
// value-keyed map cannot provide.
package surface

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/geom"
)

// GeomEpsilonDefault is the default geometric tolerance, relative to
// unit-box coordinates, used throughout the module (spec.md §5).
const GeomEpsilonDefault = 1e-6

// NoIndex is the sentinel "not found" / "not set" index. Returning it
// from FindEdge/FindTriangle is not an error (spec.md §7, taxonomy
// entry "NotFound").
const NoIndex = -1

// Vertex is a mesh-level vertex: a 3D point plus the ordered,
// insertion-stable list of incident edges.
type Vertex struct {
	Pos   geom.Vec3
	Edges geom.SmallVec[int]
	alive bool
}

// Edge is a mesh-level edge: an ordered pair of vertex indices plus
// the ordered list of incident triangles (length 0-2 in a manifold
// mesh, uncapped otherwise).
type Edge struct {
	From, To int
	Tris     geom.SmallVec[int]
	alive    bool
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.From == v {
		return e.To
	}
	return e.From
}

// Triangle is a mesh-level triangle: three vertex indices, three edge
// indices (edges[i] is opposite vertex i... no: edges[i] joins
// verts[i] and verts[(i+1)%3], matching spec.md §3's edgePoints
// convention), and a patch tag.
type Triangle struct {
	Verts [3]int
	Edges [3]int
	Patch int
	alive bool
}

// LocalVertex returns the local corner index (0, 1 or 2) of v within
// t, or NoIndex if v is not a vertex of t.
func (t Triangle) LocalVertex(v int) int {
	for i, tv := range t.Verts {
		if tv == v {
			return i
		}
	}
	return NoIndex
}

// LocalEdge returns the local edge index (0, 1 or 2) of edge e within
// t, or NoIndex if e does not belong to t.
func (t Triangle) LocalEdge(e int) int {
	for i, te := range t.Edges {
		if te == e {
			return i
		}
	}
	return NoIndex
}

// edgeKey canonicalizes an unordered vertex pair for the edge lookup
// index.
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type triKey [3]int

func newTriKey(a, b, c int) triKey {
	arr := [3]int{a, b, c}
	// Insertion-sort three elements; cheap and allocation-free.
	if arr[0] > arr[1] {
		arr[0], arr[1] = arr[1], arr[0]
	}
	if arr[1] > arr[2] {
		arr[1], arr[2] = arr[2], arr[1]
	}
	if arr[0] > arr[1] {
		arr[0], arr[1] = arr[1], arr[0]
	}
	return triKey(arr)
}

// Base is the mesh arena: indexed vertex/edge/triangle pools with
// free-lists, reusing freed slots before growing the underlying
// slices (spec.md §3, Lifecycle).
type Base struct {
	verts []Vertex
	edges []Edge
	tris  []Triangle

	freeVerts []int
	freeEdges []int
	freeTris  []int

	edgeIndex map[edgeKey]int
	triIndex  map[triKey]int
}

// NewBase creates an empty mesh arena.
func NewBase() *Base {
	return &Base{
		edgeIndex: map[edgeKey]int{},
		triIndex:  map[triKey]int{},
	}
}

// NumVertices, NumEdges and NumTriangles report the number of live
// entities (free slots excluded).
func (b *Base) NumVertices() int {
	return len(b.verts) - len(b.freeVerts)
}

func (b *Base) NumEdges() int {
	return len(b.edges) - len(b.freeEdges)
}

func (b *Base) NumTriangles() int {
	return len(b.tris) - len(b.freeTris)
}

// NumTriangleSlots returns the length of the underlying triangle
// arena, including freed slots; callers that need to iterate every
// potentially-live triangle index (e.g. package psurface, which keeps
// a parallel per-triangle slice) range over [0, NumTriangleSlots()) and
// test TriAlive.
func (b *Base) NumTriangleSlots() int {
	return len(b.tris)
}

// NumVertexSlots returns the length of the underlying vertex arena,
// including freed slots; callers that iterate every potentially-live
// vertex index range over [0, NumVertexSlots()) and test VertexAlive,
// since NumVertices() (the live count) is not a valid index bound once
// any vertex has been freed.
func (b *Base) NumVertexSlots() int {
	return len(b.verts)
}

// Vertex, Edge and Triangle give read access to an entity by index.
// Callers must not mutate the embedded SmallVecs directly; use the
// arena's own mutators.
func (b *Base) Vertex(i int) *Vertex { return &b.verts[i] }
func (b *Base) Edge(i int) *Edge     { return &b.edges[i] }
func (b *Base) Tri(i int) *Triangle  { return &b.tris[i] }

// VertexAlive, EdgeAlive and TriAlive report whether an index refers
// to a live (non-freed) slot.
func (b *Base) VertexAlive(i int) bool { return i >= 0 && i < len(b.verts) && b.verts[i].alive }
func (b *Base) EdgeAlive(i int) bool   { return i >= 0 && i < len(b.edges) && b.edges[i].alive }
func (b *Base) TriAlive(i int) bool    { return i >= 0 && i < len(b.tris) && b.tris[i].alive }

// NewVertex allocates a vertex at position p, reusing a freed slot
// when one is available.
func (b *Base) NewVertex(p geom.Vec3) int {
	if n := len(b.freeVerts); n > 0 {
		idx := b.freeVerts[n-1]
		b.freeVerts = b.freeVerts[:n-1]
		b.verts[idx] = Vertex{Pos: p, alive: true}
		return idx
	}
	b.verts = append(b.verts, Vertex{Pos: p, alive: true})
	return len(b.verts) - 1
}

// NewEdge allocates an edge between vertices a and b if one does not
// already exist, returning the (possibly pre-existing) edge index.
func (b *Base) NewEdge(a, c int) int {
	key := newEdgeKey(a, c)
	if idx, ok := b.edgeIndex[key]; ok {
		return idx
	}
	var idx int
	if n := len(b.freeEdges); n > 0 {
		idx = b.freeEdges[n-1]
		b.freeEdges = b.freeEdges[:n-1]
		b.edges[idx] = Edge{From: a, To: c, alive: true}
	} else {
		b.edges = append(b.edges, Edge{From: a, To: c, alive: true})
		idx = len(b.edges) - 1
	}
	b.edgeIndex[key] = idx
	b.verts[a].Edges.Append(idx)
	b.verts[c].Edges.Append(idx)
	return idx
}

// FindEdge returns the index of the edge between a and b, or NoIndex
// if none exists. Not finding an edge is not an error (spec.md §7).
func (b *Base) FindEdge(a, c int) int {
	if idx, ok := b.edgeIndex[newEdgeKey(a, c)]; ok {
		return idx
	}
	return NoIndex
}

// FindTriangle returns the index of the triangle with the given three
// vertices in any order, or NoIndex.
func (b *Base) FindTriangle(a, c, d int) int {
	if idx, ok := b.triIndex[newTriKey(a, c, d)]; ok {
		return idx
	}
	return NoIndex
}

// CreateSpaceForTriangle reserves a triangle slot with the given
// vertices, looking up or creating its three edges and linking them,
// but does not yet register it in the topology index; call
// IntegrateTriangle to publish it. Splitting allocation from
// publication lets callers (e.g. the normal projector) fill in
// per-triangle planar-graph state before the triangle becomes visible
// to FindTriangle/Neighbors.
func (b *Base) CreateSpaceForTriangle(v0, v1, v2 int) (int, error) {
	if v0 == v1 || v1 == v2 || v0 == v2 {
		return NoIndex, errors.Errorf("degenerate triangle: repeated vertex among (%d,%d,%d)", v0, v1, v2)
	}
	verts := [3]int{v0, v1, v2}
	for _, v := range verts {
		if !b.VertexAlive(v) {
			return NoIndex, errors.Errorf("vertex %d is not a live vertex", v)
		}
	}
	var edges [3]int
	for i := 0; i < 3; i++ {
		edges[i] = b.NewEdge(verts[i], verts[(i+1)%3])
	}

	var idx int
	if n := len(b.freeTris); n > 0 {
		idx = b.freeTris[n-1]
		b.freeTris = b.freeTris[:n-1]
		b.tris[idx] = Triangle{Verts: verts, Edges: edges, alive: true}
	} else {
		b.tris = append(b.tris, Triangle{Verts: verts, Edges: edges, alive: true})
		idx = len(b.tris) - 1
	}
	return idx, nil
}

// IntegrateTriangle publishes a triangle created by
// CreateSpaceForTriangle: it appends the triangle to each of its
// edges' incident-triangle lists and registers it in the topology
// index (spec.md §4.C).
func (b *Base) IntegrateTriangle(idx int) {
	t := &b.tris[idx]
	for _, e := range t.Edges {
		b.edges[e].Tris.Append(idx)
	}
	b.triIndex[newTriKey(t.Verts[0], t.Verts[1], t.Verts[2])] = idx
}

// AddTriangle is the common case of CreateSpaceForTriangle followed
// immediately by IntegrateTriangle.
func (b *Base) AddTriangle(v0, v1, v2 int) (int, error) {
	idx, err := b.CreateSpaceForTriangle(v0, v1, v2)
	if err != nil {
		return NoIndex, err
	}
	b.IntegrateTriangle(idx)
	return idx, nil
}

// RemoveTriangle frees a triangle's slot, unlinking it from its edges'
// incident lists and the topology index. The triangle's planar-graph
// nodes are the caller's responsibility (spec.md §3, Lifecycle: "a
// triangle remove frees its nodes implicitly" -- that coupling lives
// in package psurface, one layer up).
func (b *Base) RemoveTriangle(idx int) {
	t := b.tris[idx]
	delete(b.triIndex, newTriKey(t.Verts[0], t.Verts[1], t.Verts[2]))
	for _, e := range t.Edges {
		removeIntFromSmallVec(&b.edges[e].Tris, idx)
	}
	b.tris[idx] = Triangle{}
	b.freeTris = append(b.freeTris, idx)
}

// RemoveEdge frees an edge's slot. The edge must have no remaining
// incident triangles.
func (b *Base) RemoveEdge(idx int) error {
	e := b.edges[idx]
	if e.Tris.Len() != 0 {
		return errors.Errorf("edge %d still has %d incident triangles", idx, e.Tris.Len())
	}
	delete(b.edgeIndex, newEdgeKey(e.From, e.To))
	removeIntFromSmallVec(&b.verts[e.From].Edges, idx)
	removeIntFromSmallVec(&b.verts[e.To].Edges, idx)
	b.edges[idx] = Edge{}
	b.freeEdges = append(b.freeEdges, idx)
	return nil
}

// RemoveVertex frees a vertex's slot. The vertex must have no
// remaining incident edges.
func (b *Base) RemoveVertex(idx int) error {
	if b.verts[idx].Edges.Len() != 0 {
		return errors.Errorf("vertex %d still has %d incident edges", idx, b.verts[idx].Edges.Len())
	}
	b.verts[idx] = Vertex{}
	b.freeVerts = append(b.freeVerts, idx)
	return nil
}

func removeIntFromSmallVec(sv *geom.SmallVec[int], v int) {
	if i := sv.IndexOf(v, func(a, b int) bool { return a == b }); i >= 0 {
		sv.RemoveAt(i)
	}
}

// TrianglesPerVertex returns the (unordered) triangles incident to
// vertex v, derived from its incident edges.
func (b *Base) TrianglesPerVertex(v int) []int {
	seen := map[int]bool{}
	var res []int
	for i := 0; i < b.verts[v].Edges.Len(); i++ {
		e := b.edges[b.verts[v].Edges.Get(i)]
		for j := 0; j < e.Tris.Len(); j++ {
			t := e.Tris.Get(j)
			if !seen[t] {
				seen[t] = true
				res = append(res, t)
			}
		}
	}
	return res
}

// Neighbors returns the vertices directly edge-connected to v.
func (b *Base) Neighbors(v int) []int {
	res := make([]int, 0, b.verts[v].Edges.Len())
	for i := 0; i < b.verts[v].Edges.Len(); i++ {
		res = append(res, b.edges[b.verts[v].Edges.Get(i)].Other(v))
	}
	return res
}

// FlipTriangle reverses a triangle's orientation in place by swapping
// its 2nd and 3rd corners, mirroring planar.Graph.Flip so the mesh
// arena and the per-triangle planar graph stay in lock-step (spec.md
// §4.E, invert_triangles). The topology index entry is unaffected
// since it keys on the unordered vertex triple.
func (b *Base) FlipTriangle(idx int) {
	t := &b.tris[idx]
	t.Verts[1], t.Verts[2] = t.Verts[2], t.Verts[1]
	t.Edges[0], t.Edges[1], t.Edges[2] = t.Edges[2], t.Edges[1], t.Edges[0]
}

// NeighboringTriangle returns the other triangle sharing the side-th
// edge of tri, or NoIndex if that edge is a boundary edge (only one
// incident triangle) or non-manifold (more than two).
func (b *Base) NeighboringTriangle(tri, side int) int {
	e := b.tris[tri].Edges[side]
	et := &b.edges[e]
	if et.Tris.Len() != 2 {
		return NoIndex
	}
	if et.Tris.Get(0) == tri {
		return et.Tris.Get(1)
	}
	return et.Tris.Get(0)
}
