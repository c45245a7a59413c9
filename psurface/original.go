package psurface

import (
	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/surface"
)

// SetupOriginalSurface emits an explicit target Surface by iterating
// every domain triangle's sub-triangles and de-duplicating points by
// target vertex identity (spec.md §4.E): Corner/Ghost/Intersection
// nodes share a point via their node number, while Interior/Touching
// nodes (whose image is an unshared interior point of a target face)
// each contribute a fresh point, resolved against the borrowed target
// surface.
func (s *Surface) SetupOriginalSurface(target surface.TargetSurface) (*surface.Mem, error) {
	dedup := map[int]int{}
	var pts []geom.Vec3
	var tris []surface.TargetTriangle

	resolve := func(n planar.Node) (int, error) {
		if n.Kind == planar.Corner || n.Kind == planar.Ghost || n.Kind == planar.Intersection {
			if idx, ok := dedup[n.NodeNumber]; ok {
				return idx, nil
			}
			idx := len(pts)
			pts = append(pts, s.IPos[n.NodeNumber])
			dedup[n.NodeNumber] = idx
			return idx, nil
		}
		pos, err := s.nodeImagePos(n, target)
		if err != nil {
			return 0, err
		}
		idx := len(pts)
		pts = append(pts, pos)
		return idx, nil
	}

	for ti, g := range s.Graphs {
		if g == nil || !s.Base.TriAlive(ti) {
			continue
		}
		patch := s.Base.Tri(ti).Patch
		for _, face := range g.Faces() {
			var ids [3]int
			for k, nd := range face {
				id, err := resolve(g.Nodes[nd])
				if err != nil {
					return nil, err
				}
				ids[k] = id
			}
			tri := surface.TargetTriangle{Points: ids, Patch: patch}
			if patch >= 0 && patch < len(s.Patches) {
				pi := s.Patches[patch]
				tri.InnerRegion, tri.OuterRegion, tri.BoundaryID = pi.InnerRegion, pi.OuterRegion, pi.BoundaryID
			}
			tris = append(tris, tri)
		}
	}
	return surface.NewMem(pts, tris), nil
}
