// Package planar implements the per-domain-triangle planar graph of
// spec.md §4.D: a set of nodes in barycentric coordinates, classified
// into the five node kinds of spec.md §3, connected by a cyclically
// ordered adjacency that supports point location.
package planar

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/geom"
)

// NodeKind tags the five kinds of planar-graph node (spec.md §3).
type NodeKind int

const (
	// Interior nodes are strictly inside the domain triangle; their
	// image is an interior point of a target triangle.
	Interior NodeKind = iota
	// Corner nodes coincide with a domain-triangle corner.
	Corner
	// Touching nodes lie on a domain edge; their image is an interior
	// point of a target triangle.
	Touching
	// Intersection nodes lie on a domain edge; their image lies on a
	// target edge. They come in pairs across the two domain triangles
	// sharing that edge.
	Intersection
	// Ghost nodes are corners whose image is an interior point of a
	// target triangle.
	Ghost
)

func (k NodeKind) String() string {
	switch k {
	case Interior:
		return "Interior"
	case Corner:
		return "Corner"
	case Touching:
		return "Touching"
	case Intersection:
		return "Intersection"
	case Ghost:
		return "Ghost"
	default:
		return "Unknown"
	}
}

// noEdge marks a node that does not lie on any domain edge.
const noEdge = -1

// Node is one vertex of a domain triangle's planar graph.
type Node struct {
	// DomainPos is this node's barycentric coordinate within its
	// domain triangle.
	DomainPos geom.Bary

	Kind NodeKind

	// NodeNumber identifies the global image point shared by every
	// node instance (across triangles) representing the same logical
	// point; it indexes into psurface's iPos array. Only meaningful
	// for Corner, Ghost and Intersection nodes, which are the kinds
	// whose image is deduplicated globally.
	NodeNumber int

	// Neighbors holds the indices (within this Graph) of adjacent
	// nodes. Before CreatePointLocationStructure runs, the order is
	// unspecified; afterwards, it is the CCW cyclic order described in
	// spec.md §4.D.
	Neighbors geom.SmallVec[int]

	// DomainEdge is the local edge index (0, 1 or 2) this node lies
	// on, or noEdge for a strictly interior node. Corner nodes use the
	// "next outgoing" edge, i.e. corner i uses edge i.
	DomainEdge int

	// DomainEdgePosition is this node's parameter along DomainEdge,
	// increasing from the edge's start corner to its end corner.
	DomainEdgePosition float64

	// TargetTri and LocalTargetCoords give the image point directly
	// for node kinds whose image is interior to a target triangle
	// (Interior, Touching, Ghost); they are unused (-1 / zero) for
	// Corner and Intersection nodes, whose image instead comes from
	// NodeNumber.
	TargetTri         int
	LocalTargetCoords geom.Bary
}

// Graph is the planar sub-graph living inside one domain triangle.
type Graph struct {
	Nodes []Node
	// EdgePoints[i] is the ordered list of node indices along the
	// triangle's i-th edge, starting at corner i and ending at corner
	// (i+1)%3 (spec.md §3, invariant 1).
	EdgePoints [3][]int

	locationReady bool
}

// New creates an empty planar graph for one domain triangle, seeded
// with its three corner nodes (at local barycentric positions
// (1,0,0), (0,1,0), (0,0,1)) with the given node numbers.
func New(cornerNodeNumbers [3]int) *Graph {
	g := &Graph{}
	bary := [3]geom.Bary{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for i := 0; i < 3; i++ {
		g.Nodes = append(g.Nodes, Node{
			DomainPos:  bary[i],
			Kind:       Corner,
			NodeNumber: cornerNodeNumbers[i],
			DomainEdge: i,
			TargetTri:  -1,
		})
	}
	for i := 0; i < 3; i++ {
		g.EdgePoints[i] = []int{i, (i + 1) % 3}
		g.Connect(i, (i+1)%3)
	}
	return g
}

// CornerNode returns the node index of local corner i (0, 1 or 2).
// The corner nodes are always the graph's first three nodes; Flip and
// Rotate permute their positions, so the one at corner i is found by
// its DomainPos.
func (g *Graph) CornerNode(i int) int {
	for k := 0; k < 3 && k < len(g.Nodes); k++ {
		if cornerIndexFromPos(g.Nodes[k].DomainPos) == i {
			return k
		}
	}
	return i
}

// AddNode appends a new node to the graph and returns its index.
func (g *Graph) AddNode(n Node) int {
	g.locationReady = false
	g.Nodes = append(g.Nodes, n)
	return len(g.Nodes) - 1
}

// Connect adds an undirected adjacency between nodes a and b. It is
// idempotent: connecting an already-connected pair is a no-op.
func (g *Graph) Connect(a, b int) {
	if a == b {
		return
	}
	g.locationReady = false
	na := &g.Nodes[a]
	if na.Neighbors.IndexOf(b, func(x, y int) bool { return x == y }) < 0 {
		na.Neighbors.Append(b)
	}
	nb := &g.Nodes[b]
	if nb.Neighbors.IndexOf(a, func(x, y int) bool { return x == y }) < 0 {
		nb.Neighbors.Append(a)
	}
}

// Disconnect removes the undirected adjacency between nodes a and b,
// if present. It is a no-op if they are not connected.
func (g *Graph) Disconnect(a, b int) {
	if a == b {
		return
	}
	g.locationReady = false
	na := &g.Nodes[a]
	if i := na.Neighbors.IndexOf(b, func(x, y int) bool { return x == y }); i >= 0 {
		na.Neighbors.RemoveAt(i)
	}
	nb := &g.Nodes[b]
	if i := nb.Neighbors.IndexOf(a, func(x, y int) bool { return x == y }); i >= 0 {
		nb.Neighbors.RemoveAt(i)
	}
}

// InsertEdgePoint inserts node idx into EdgePoints[side] at position
// pos, and connects it to its new polyline neighbors. The two points
// it is wedged between were directly connected as polyline neighbors
// before this insertion (New() links every pair of adjacent edgePoints
// entries, and every previous InsertEdgePoint call preserves that
// invariant); that direct link is now stale; since idx sits between
// them, it is replaced with idx's two new links.
func (g *Graph) InsertEdgePoint(side, pos, idx int) {
	ep := g.EdgePoints[side]
	if pos > 0 && pos < len(ep) {
		g.Disconnect(ep[pos-1], ep[pos])
	}
	ep = append(ep, 0)
	copy(ep[pos+1:], ep[pos:len(ep)-1])
	ep[pos] = idx
	g.EdgePoints[side] = ep
	if pos > 0 {
		g.Connect(ep[pos-1], idx)
	}
	if pos < len(ep)-1 {
		g.Connect(idx, ep[pos+1])
	}
}

// NumTrueNodes returns the number of nodes excluding Intersection
// nodes, whose image already counts toward the neighboring domain
// triangle (spec.md §4.E, NumTrueNodes).
func (g *Graph) NumTrueNodes() int {
	n := 0
	for _, node := range g.Nodes {
		if node.Kind != Intersection {
			n++
		}
	}
	return n
}

// localXY returns the 2D affine-frame coordinates (b1, b2) of a
// node's barycentric position. The map bary -> (b1, b2) is an affine
// bijection of the triangle that preserves CCW orientation, which is
// all CreatePointLocationStructure and Map need: they never compare
// true Euclidean angles or areas, only signs and cyclic order.
func localXY(b geom.Bary) geom.Vec2 {
	return geom.XY(b[1], b[2])
}

// errInvariant flags an internal bug per spec.md §7's InvariantViolation
// taxonomy entry: a graph whose structure breaks an invariant that
// CreatePointLocationStructure or Map relies on, or a Map call made
// before CreatePointLocationStructure.
func errInvariant(format string, args ...any) error {
	return errors.Errorf("planar graph invariant violated: "+format, args...)
}
