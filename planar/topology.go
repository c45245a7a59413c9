package planar

import "github.com/aburch/psurface/geom"

// InsertExtraEdges closes quadrilateral faces left over from edge
// insertion (spec.md §4.D). Along each domain edge, consecutive
// edgePoints entries are connected if they are not already; then, for
// every Intersection node, its single interior-facing neighbor is
// connected to the previous edgePoints entry, splitting the
// quadrilateral between two consecutive target-edge crossings into two
// triangles.
func (g *Graph) InsertExtraEdges() {
	for side := 0; side < 3; side++ {
		list := g.EdgePoints[side]
		for k := 0; k+1 < len(list); k++ {
			g.Connect(list[k], list[k+1])
		}
		for k := 1; k+1 < len(list); k++ {
			node := list[k]
			if g.Nodes[node].Kind != Intersection {
				continue
			}
			if interior, ok := g.singleInteriorNeighbor(node, side); ok {
				g.Connect(interior, list[k-1])
			}
		}
	}
	g.locationReady = false
}

// singleInteriorNeighbor returns the one neighbor of node that does
// not itself lie on domain edge `side`, if there is exactly one.
func (g *Graph) singleInteriorNeighbor(node, side int) (int, bool) {
	list := g.EdgePoints[side]
	var interior int
	count := 0
	for _, nb := range g.Nodes[node].Neighbors.Slice() {
		if indexOfInt(list, nb) >= 0 {
			continue
		}
		interior = nb
		count++
	}
	return interior, count == 1
}

// cornerIndexFromPos returns which local corner (0, 1 or 2) a
// barycentric position exactly equals, or -1 if it is not a corner.
func cornerIndexFromPos(b geom.Bary) int {
	switch {
	case b[0] == 1:
		return 0
	case b[1] == 1:
		return 1
	case b[2] == 1:
		return 2
	default:
		return -1
	}
}

// Flip swaps the triangle's 2nd and 3rd corners: it exchanges the
// DomainPos b1/b2 basis vectors at every node, renumbers boundary
// nodes' domainEdge/domainEdgePosition to match the reversed edge
// ordering, and reverses each edgePoints list (spec.md §4.D). It
// preserves every structural invariant; point location must be rebuilt
// afterward.
func (g *Graph) Flip() {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.DomainPos = geom.Bary{n.DomainPos[0], n.DomainPos[2], n.DomainPos[1]}
		switch n.Kind {
		case Corner, Ghost:
			n.DomainEdge = cornerIndexFromPos(n.DomainPos)
			n.DomainEdgePosition = 0
		default:
			if n.DomainEdge != noEdge {
				n.DomainEdge = 2 - n.DomainEdge
				n.DomainEdgePosition = 1 - n.DomainEdgePosition
			}
		}
	}
	var next [3][]int
	for i := 0; i < 3; i++ {
		old := g.EdgePoints[2-i]
		rev := make([]int, len(old))
		for k, v := range old {
			rev[len(old)-1-k] = v
		}
		next[i] = rev
	}
	g.EdgePoints = next
	g.locationReady = false
}

// Rotate cyclically shifts the triangle's corners by one (corner i
// becomes what was corner (i+1)%3), reinstalling the barycentric
// frame and edgePoints accordingly (spec.md §4.D).
func (g *Graph) Rotate() {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.DomainPos = geom.Bary{n.DomainPos[1], n.DomainPos[2], n.DomainPos[0]}
		switch n.Kind {
		case Corner, Ghost:
			n.DomainEdge = cornerIndexFromPos(n.DomainPos)
			n.DomainEdgePosition = 0
		default:
			if n.DomainEdge != noEdge {
				n.DomainEdge = (n.DomainEdge + 2) % 3
			}
		}
	}
	var next [3][]int
	for i := 0; i < 3; i++ {
		next[i] = g.EdgePoints[(i+1)%3]
	}
	g.EdgePoints = next
	g.locationReady = false
}

// AdjustTouchingNodes snaps every boundary node's DomainPos exactly
// onto its domain edge's line, correcting drift accumulated across
// repeated coordinate conversions (spec.md §4.D). Corner nodes, which
// are exact by construction, are left untouched.
func (g *Graph) AdjustTouchingNodes() {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.DomainEdge == noEdge || n.Kind == Corner {
			continue
		}
		n.DomainPos = snapToEdge(n.DomainPos, n.DomainEdge)
	}
}

// snapToEdge projects b onto domain edge side's line (v=0, u+v=1, or
// u=0, in the (b1, b2) affine frame) by zeroing the off-line
// component and renormalizing the remaining two so they still sum to
// 1.
func snapToEdge(b geom.Bary, side int) geom.Bary {
	switch side {
	case 0:
		sum := b[0] + b[1]
		if sum == 0 {
			return geom.Bary{1, 0, 0}
		}
		return geom.Bary{b[0] / sum, b[1] / sum, 0}
	case 1:
		sum := b[1] + b[2]
		if sum == 0 {
			return geom.Bary{0, 1, 0}
		}
		return geom.Bary{0, b[1] / sum, b[2] / sum}
	default:
		sum := b[0] + b[2]
		if sum == 0 {
			return geom.Bary{1, 0, 0}
		}
		return geom.Bary{b[0] / sum, 0, b[2] / sum}
	}
}
