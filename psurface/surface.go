// Package psurface couples a mesh arena (package surface) with one
// planar graph per domain triangle (package planar), an image-point
// store and patch metadata, realizing the PSurface of spec.md §4.E:
// the top-level piecewise-linear parametrization φ from a domain mesh
// to a target mesh.
package psurface

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/surface"
)

// PatchInfo carries the per-patch metadata spec.md §6 requires of a
// target surface (innerRegion/outerRegion/boundaryId), indexed by
// patch tag. New does not fill Surface.Patches from any target
// surface; it stays empty until a caller appends entries.
type PatchInfo struct {
	InnerRegion int
	OuterRegion int
	BoundaryID  int
}

// Surface is a PSurface: a domain mesh arena plus, for every domain
// triangle, a planar.Graph describing φ restricted to that triangle.
type Surface struct {
	Base *surface.Base

	// Graphs[i] is the planar graph of domain triangle i, or nil if
	// triangle i is not alive or has not been seeded yet.
	Graphs []*planar.Graph

	// IPos is the global image-position store, indexed by node number
	// (spec.md §3, "Image positions").
	IPos []geom.Vec3

	freeNodeNumbers []int

	Patches []PatchInfo

	// HasUpToDatePointLocationStructure tracks whether every live
	// triangle's planar graph point-location structure reflects the
	// current topology (spec.md §4.H).
	HasUpToDatePointLocationStructure bool
}

// New creates a PSurface over the given (already populated) domain
// mesh arena, with one empty planar graph per live triangle, its
// three corners seeded as fresh Corner nodes referencing the mesh
// vertices' eventual image positions.
func New(base *surface.Base) *Surface {
	s := &Surface{Base: base}
	s.Graphs = make([]*planar.Graph, base.NumTriangleSlots())
	for tri := 0; tri < base.NumTriangleSlots(); tri++ {
		if !base.TriAlive(tri) {
			continue
		}
		var corners [3]int
		for c := 0; c < 3; c++ {
			corners[c] = s.NewNodeNumber()
		}
		s.Graphs[tri] = planar.New(corners)
	}
	return s
}

// Clear discards all graphs, image positions and patches, leaving the
// mesh arena untouched.
func (s *Surface) Clear() {
	for i := range s.Graphs {
		s.Graphs[i] = nil
	}
	s.IPos = nil
	s.freeNodeNumbers = nil
	s.Patches = nil
	s.HasUpToDatePointLocationStructure = false
}

// BoundingBox returns the axis-aligned bounding box of the domain mesh.
func (s *Surface) BoundingBox() geom.Box {
	return s.Base.BoundingBox()
}

// NumPatches returns the number of registered patches.
func (s *Surface) NumPatches() int {
	return len(s.Patches)
}

// NumNodes returns the total number of planar-graph nodes across every
// live domain triangle.
func (s *Surface) NumNodes() int {
	n := 0
	for i, g := range s.Graphs {
		if g == nil || !s.Base.TriAlive(i) {
			continue
		}
		n += len(g.Nodes)
	}
	return n
}

// NumTrueNodes returns NumNodes minus Intersection nodes, whose image
// already coincides with a target edge counted via its twin in the
// neighboring triangle (spec.md §4.E).
func (s *Surface) NumTrueNodes() int {
	n := 0
	for i, g := range s.Graphs {
		if g == nil || !s.Base.TriAlive(i) {
			continue
		}
		n += g.NumTrueNodes()
	}
	return n
}

// ImagePos returns the 3D image point stored under a global node
// number.
func (s *Surface) ImagePos(nodeNumber int) geom.Vec3 {
	return s.IPos[nodeNumber]
}

// NewNodeNumber allocates a fresh slot in IPos, reusing a freed one if
// available. Callers that build node bundles shared across several
// domain triangles (corners, ghosts, intersection/touching pairs)
// allocate one node number up front and pass it to every Add* call
// that should share it.
func (s *Surface) NewNodeNumber() int {
	if n := len(s.freeNodeNumbers); n > 0 {
		idx := s.freeNodeNumbers[n-1]
		s.freeNodeNumbers = s.freeNodeNumbers[:n-1]
		return idx
	}
	s.IPos = append(s.IPos, geom.Vec3{})
	return len(s.IPos) - 1
}

// graph returns the planar graph of a live domain triangle, erroring
// per spec.md §7's InvalidInput taxonomy entry if tri is out of range
// or dead.
func (s *Surface) graph(tri int) (*planar.Graph, error) {
	if tri < 0 || tri >= len(s.Graphs) || !s.Base.TriAlive(tri) {
		return nil, errors.Wrapf(surface.ErrInvalidInput, "triangle %d is not a live domain triangle", tri)
	}
	return s.Graphs[tri], nil
}
