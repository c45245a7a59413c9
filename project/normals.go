// Package project implements the normal projector of spec.md §4.G:
// vertex projection by Newton iteration and the edge-insertion state
// machine that walks each target edge across the domain mesh.
package project

import (
	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/surface"
)

// ObserverDirections overrides the one-ring normal at a domain point,
// matching the original implementation's obsDirections callback
// (spec.md §4.G): given a position, it returns the projection
// direction to use there. A nil ObserverDirections falls back to
// averaged one-ring face normals.
type ObserverDirections func(pos geom.Vec3) geom.Vec3

// DomainNormals computes the outward unit normal at every vertex of
// the domain mesh, as the (unnormalized-then-normalized) sum of its
// incident triangles' face normals, unless obs overrides it.
func DomainNormals(base *surface.Base, obs ObserverDirections) []geom.Vec3 {
	n := base.NumVertexSlots()
	out := make([]geom.Vec3, n)
	for v := 0; v < n; v++ {
		if !base.VertexAlive(v) {
			continue
		}
		pos := base.Vertex(v).Pos
		if obs != nil {
			out[v] = obs(pos).Normalize()
			continue
		}
		var sum geom.Vec3
		for _, tri := range base.TrianglesPerVertex(v) {
			sum = sum.Add(base.Normal(tri))
		}
		out[v] = sum.Normalize()
	}
	return out
}
