package surface

import "github.com/aburch/psurface/geom"

// TargetTriangle is one triangle of a borrowed TargetSurface: three
// point indices plus the patch metadata that spec.md §6 requires
// ("innerRegion/outerRegion/boundaryId").
type TargetTriangle struct {
	Points      [3]int
	Patch       int
	InnerRegion int
	OuterRegion int
	BoundaryID  int
}

// TargetSurface is the external, read-only collaborator described in
// spec.md §6: a simplicial 2-surface that the module only ever reads
// from. Implementations are expected to be provided by I/O code
// (GMSH/AmiraMesh readers, etc.) which is explicitly out of scope here
// (spec.md §1); this module depends only on the interface.
type TargetSurface interface {
	// Points returns every vertex position, indexed as referenced by
	// Triangles.
	Points() []geom.Vec3

	// Triangles returns every triangle of the surface.
	Triangles() []TargetTriangle

	// BoundingBox returns the surface's axis-aligned bounding box.
	BoundingBox() geom.Box

	// RemoveUnusedPoints drops points not referenced by any triangle,
	// compacting Points and rewriting Triangles' point indices.
	RemoveUnusedPoints()

	// TrianglesPerPoint returns, for each point index, the indices of
	// the triangles incident to it.
	TrianglesPerPoint() [][]int
}
