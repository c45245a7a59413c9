package psurface

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
)

// AddInteriorNode adds a node strictly inside domain triangle tri,
// whose image is the interior point localCoords of target triangle
// targetTri, and connects it to the given existing nodes of the same
// triangle.
func (s *Surface) AddInteriorNode(tri int, pos geom.Bary, targetTri int, localCoords geom.Bary, neighbors ...int) (int, error) {
	g, err := s.graph(tri)
	if err != nil {
		return 0, err
	}
	idx := g.AddNode(planar.Node{
		DomainPos:         pos,
		Kind:              planar.Interior,
		DomainEdge:        -1,
		TargetTri:         targetTri,
		LocalTargetCoords: localCoords,
	})
	for _, n := range neighbors {
		g.Connect(idx, n)
	}
	return idx, nil
}

// AddCornerNode assigns domain triangle tri's local corner a global
// node number, used when the corner's image is finally known to
// coincide with an actual target vertex (spec.md §4.E).
func (s *Surface) AddCornerNode(tri, corner, nodeNumber int) error {
	g, err := s.graph(tri)
	if err != nil {
		return err
	}
	if corner < 0 || corner > 2 {
		return errors.Errorf("corner index %d out of range", corner)
	}
	g.Nodes[g.CornerNode(corner)].NodeNumber = nodeNumber
	return nil
}

// AddGhostNode marks domain triangle tri's local corner as a Ghost
// node: its image is the interior point localCoords of targetTri,
// shared globally via nodeNumber (spec.md §3, "Ghost").
func (s *Surface) AddGhostNode(tri, corner, nodeNumber, targetTri int, localCoords geom.Bary) error {
	g, err := s.graph(tri)
	if err != nil {
		return err
	}
	if corner < 0 || corner > 2 {
		return errors.Errorf("corner index %d out of range", corner)
	}
	n := &g.Nodes[g.CornerNode(corner)]
	n.Kind = planar.Ghost
	n.NodeNumber = nodeNumber
	n.TargetTri = targetTri
	n.LocalTargetCoords = localCoords
	return nil
}

// insertSortedEdgePoint inserts node idx into g.EdgePoints[side],
// keeping the list sorted by DomainEdgePosition between its two
// bounding corners (spec.md's "Setup edgePoints" invariant: "this list
// is constructed by sorting edge-incident nodes by their
// domainEdgePosition and then inserting the two corners at the
// ends"), and wires its polyline neighbors via InsertEdgePoint.
//
// If idx is this triangle's first non-corner node, it is additionally
// connected to the triangle's opposite corner (the one not on side),
// closing the triangle into the two faces a single edge crossing
// produces. A second edge point landing in the same triangle instead
// needs the interior-node-mediated bridging of Graph.InsertExtraEdges
// (see planar.TestInsertExtraEdgesConnectsInteriorDiagonal): connecting
// it to the opposite corner too would cross the first chord.
func insertSortedEdgePoint(g *planar.Graph, side int, idx int, edgePos float64) {
	ep := g.EdgePoints[side]
	pos := len(ep) - 1
	for i := 1; i < len(ep)-1; i++ {
		if g.Nodes[ep[i]].DomainEdgePosition > edgePos {
			pos = i
			break
		}
	}
	g.InsertEdgePoint(side, pos, idx)
	if len(g.Nodes) == 4 {
		g.Connect(g.CornerNode((side+2)%3), idx)
	}
}

// AddTouchingNode adds a node on a domain edge whose image is the
// interior point localCoords of targetTri, for the (common) case where
// only one of the two domain triangles sharing that edge needs it —
// e.g. the edge lies on the domain mesh's boundary.
func (s *Surface) AddTouchingNode(tri int, pos geom.Bary, edge int, edgePos float64, targetTri int, localCoords geom.Bary) (int, error) {
	g, err := s.graph(tri)
	if err != nil {
		return 0, err
	}
	idx := g.AddNode(planar.Node{
		DomainPos:          pos,
		Kind:               planar.Touching,
		DomainEdge:         edge,
		DomainEdgePosition: edgePos,
		TargetTri:          targetTri,
		LocalTargetCoords:  localCoords,
	})
	insertSortedEdgePoint(g, edge, idx, edgePos)
	return idx, nil
}

// AddTouchingNodePair adds matching Touching nodes in the two domain
// triangles sharing an edge, sharing one fresh node number whose IPos
// entry holds imagePos (spec.md §4.E). Both nodes also carry targetTri
// and localCoords, and SetupOriginalSurface gives each of them its own
// point rather than merging them by node number. edgePos is given
// relative to edge1's own direction (start corner to end corner); the
// two triangles sharing an edge traverse it in opposite directions, so
// tri2's node is recorded (and sorted into EdgePoints[edge2]) at
// 1-edgePos, matching AddIntersectionNodePair's convention.
func (s *Surface) AddTouchingNodePair(tri1, tri2 int, pos1, pos2 geom.Bary, edge1, edge2 int, edgePos float64, targetTri int, localCoords geom.Bary, imagePos geom.Vec3) (int, int, error) {
	g1, err := s.graph(tri1)
	if err != nil {
		return 0, 0, err
	}
	g2, err := s.graph(tri2)
	if err != nil {
		return 0, 0, err
	}
	nodeNumber := s.NewNodeNumber()
	s.IPos[nodeNumber] = imagePos
	n1 := g1.AddNode(planar.Node{
		DomainPos: pos1, Kind: planar.Touching, NodeNumber: nodeNumber,
		DomainEdge: edge1, DomainEdgePosition: edgePos,
		TargetTri: targetTri, LocalTargetCoords: localCoords,
	})
	insertSortedEdgePoint(g1, edge1, n1, edgePos)
	n2 := g2.AddNode(planar.Node{
		DomainPos: pos2, Kind: planar.Touching, NodeNumber: nodeNumber,
		DomainEdge: edge2, DomainEdgePosition: 1 - edgePos,
		TargetTri: targetTri, LocalTargetCoords: localCoords,
	})
	insertSortedEdgePoint(g2, edge2, n2, 1-edgePos)
	return n1, n2, nil
}

// AddIntersectionNodePair creates one Intersection node in each of
// tri1 and tri2 (the two domain triangles sharing a domain edge),
// sharing a fresh node number whose image is the 3D point imagePos on
// the crossed target edge (spec.md §4.E).
func (s *Surface) AddIntersectionNodePair(tri1, tri2 int, dp1, dp2 geom.Bary, edge1, edge2 int, edgePos float64, imagePos geom.Vec3) (int, int, int, error) {
	g1, err := s.graph(tri1)
	if err != nil {
		return 0, 0, 0, err
	}
	g2, err := s.graph(tri2)
	if err != nil {
		return 0, 0, 0, err
	}
	nodeNumber := s.NewNodeNumber()
	s.IPos[nodeNumber] = imagePos
	n1 := g1.AddNode(planar.Node{
		DomainPos: dp1, Kind: planar.Intersection, NodeNumber: nodeNumber,
		DomainEdge: edge1, DomainEdgePosition: edgePos, TargetTri: -1,
	})
	insertSortedEdgePoint(g1, edge1, n1, edgePos)
	n2 := g2.AddNode(planar.Node{
		DomainPos: dp2, Kind: planar.Intersection, NodeNumber: nodeNumber,
		DomainEdge: edge2, DomainEdgePosition: 1 - edgePos, TargetTri: -1,
	})
	insertSortedEdgePoint(g2, edge2, n2, 1-edgePos)
	return n1, n2, nodeNumber, nil
}

// SetImagePos records the image position of an already-registered node
// number. AddCornerNode and AddGhostNode take a caller-allocated node
// number (see NewNodeNumber) and do not set its image themselves, since
// a corner's node number is shared across every triangle touching that
// domain vertex; the pair constructors set their shared image directly.
func (s *Surface) SetImagePos(nodeNumber int, pos geom.Vec3) {
	s.IPos[nodeNumber] = pos
}
