package psurface

import (
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/surface"
)

// GarbageCollection compacts the mesh arena and reindexes this
// Surface's per-triangle planar graphs in lockstep (spec.md §4.E).
// Node numbers (the IPos index space) are untouched by a mesh GC:
// they identify image points, independent of triangle identity.
func (s *Surface) GarbageCollection() {
	remap := s.Base.GarbageCollection()
	newGraphs := make([]*planar.Graph, s.Base.NumTriangleSlots())
	for old, g := range s.Graphs {
		if g == nil || old >= len(remap.Tris) {
			continue
		}
		nw := remap.Tris[old]
		if nw == surface.NoIndex {
			continue
		}
		newGraphs[nw] = g
	}
	s.Graphs = newGraphs
}
