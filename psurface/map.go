package psurface

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/surface"
)

// Map evaluates φ at barycentric point p of domain triangle tri,
// starting the point-location walk at local node seed (spec.md §4.E).
// It returns the three local node indices bounding the sub-triangle
// containing p, and p's barycentric coordinates within it.
func (s *Surface) Map(tri int, p geom.Bary, seed int) (subTriNodes [3]int, bary geom.Bary, err error) {
	g, err := s.graph(tri)
	if err != nil {
		return subTriNodes, bary, err
	}
	return g.Map(p, seed)
}

// nodeImagePos resolves a planar-graph node's 3D image point, per
// spec.md §4.D step 2: via nodeNumber -> iPos for Corner/Intersection
// nodes, or directly from targetTri/localTargetCoords for
// Interior/Touching/Ghost nodes.
func (s *Surface) nodeImagePos(n planar.Node, target surface.TargetSurface) (geom.Vec3, error) {
	if n.TargetTri >= 0 {
		tris := target.Triangles()
		if n.TargetTri >= len(tris) {
			return geom.Vec3{}, errors.Errorf("node references out-of-range target triangle %d", n.TargetTri)
		}
		tt := tris[n.TargetTri]
		pts := target.Points()
		return geom.AtBary(n.LocalTargetCoords, pts[tt.Points[0]], pts[tt.Points[1]], pts[tt.Points[2]]), nil
	}
	if n.NodeNumber < 0 || n.NodeNumber >= len(s.IPos) {
		return geom.Vec3{}, errors.Errorf("node has no resolvable image (nodeNumber=%d, targetTri=%d)", n.NodeNumber, n.TargetTri)
	}
	return s.IPos[n.NodeNumber], nil
}

// PositionMap is Map followed by evaluating the image position in 3D:
// it locates p's sub-triangle and returns the barycentric combination
// of its three nodes' image points.
func (s *Surface) PositionMap(tri int, p geom.Bary, seed int, target surface.TargetSurface) (geom.Vec3, error) {
	g, err := s.graph(tri)
	if err != nil {
		return geom.Vec3{}, err
	}
	subTri, bary, err := g.Map(p, seed)
	if err != nil {
		return geom.Vec3{}, err
	}
	var pos [3]geom.Vec3
	for i, nd := range subTri {
		pos[i], err = s.nodeImagePos(g.Nodes[nd], target)
		if err != nil {
			return geom.Vec3{}, err
		}
	}
	return geom.AtBary(bary, pos[0], pos[1], pos[2]), nil
}

// DirectNormalMap returns the 3D image of a single, already-located
// planar-graph node (e.g. one returned by a previous Map call),
// without repeating the point-location walk.
func (s *Surface) DirectNormalMap(tri, node int, target surface.TargetSurface) (geom.Vec3, error) {
	g, err := s.graph(tri)
	if err != nil {
		return geom.Vec3{}, err
	}
	if node < 0 || node >= len(g.Nodes) {
		return geom.Vec3{}, errors.Errorf("node index %d out of range for triangle %d", node, tri)
	}
	return s.nodeImagePos(g.Nodes[node], target)
}

// GetActualVertices resolves a sub-triangle's three planar-graph nodes
// to the global node numbers of the target-mesh vertices it projects
// to. Only Corner, Ghost and Intersection nodes carry a dedup'd node
// number; a sub-triangle touching a pure Interior or Touching node
// (whose image is an unshared interior point of a target face) has no
// well-defined "actual vertex" and returns an error.
func (s *Surface) GetActualVertices(tri int, nds [3]int) ([3]int, error) {
	g, err := s.graph(tri)
	if err != nil {
		return [3]int{}, err
	}
	var out [3]int
	for i, nd := range nds {
		if nd < 0 || nd >= len(g.Nodes) {
			return [3]int{}, errors.Errorf("node index %d out of range for triangle %d", nd, tri)
		}
		n := g.Nodes[nd]
		switch n.Kind {
		case planar.Corner, planar.Ghost, planar.Intersection:
			out[i] = n.NodeNumber
		default:
			return [3]int{}, errors.Errorf("node %d (kind %v) has no dedup'd target vertex identity", nd, n.Kind)
		}
	}
	return out, nil
}

// GetImageSurfaceTriangle returns the target-triangle index a
// sub-triangle projects to, read directly from any of its nodes'
// cached targetTri (Interior/Touching/Ghost nodes of one sub-triangle
// all agree, by invariant 5). A sub-triangle assembled entirely from
// Corner/Intersection nodes carries no direct targetTri reference in
// this layer; resolving that case requires the caller-maintained
// nodeNumber-to-target-vertex mapping built during normal projection
// (package project), so it returns false here rather than guess.
func (s *Surface) GetImageSurfaceTriangle(tri int, nds [3]int) (int, bool) {
	g, err := s.graph(tri)
	if err != nil {
		return -1, false
	}
	for _, nd := range nds {
		if nd < 0 || nd >= len(g.Nodes) {
			continue
		}
		if tt := g.Nodes[nd].TargetTri; tt >= 0 {
			return tt, true
		}
	}
	return -1, false
}
