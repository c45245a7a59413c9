package project

import (
	"github.com/aburch/psurface/geom"
)

// ProjectDomainCorners fills in the image of every domain vertex that
// ProjectVertices' target-vertex pass left unassigned: it intersects
// the line through the vertex along its normal (either direction; the
// hit with the smallest |lambda| wins) with the target mesh and
// installs a Ghost node there (spec.md §3, "Ghost": "corners whose
// image is an interior point of a target triangle"), mirroring the
// original implementation's insertGhostNodeAtVertex. A domain vertex
// whose ray hits no target triangle is left unassigned and does not
// fail the build; map() calls through that corner simply have no
// defined image until a later pass supplies one.
func (p *Projector) ProjectDomainCorners(assigned map[int]int) error {
	base := p.Domain.Base
	tris := p.Target.Triangles()
	pts := p.Target.Points()

	for v := 0; v < base.NumVertexSlots(); v++ {
		if !base.VertexAlive(v) {
			continue
		}
		if _, ok := assigned[v]; ok {
			continue
		}
		pos := base.Vertex(v).Pos
		normal := p.DomainNormals[v]

		bestTri := -1
		var bestLocal geom.Bary
		bestLambda := 0.0
		for ti, tri := range tris {
			p0, p1, p2 := pts[tri.Points[0]], pts[tri.Points[1]], pts[tri.Points[2]]
			a, b, lambda, ok := rayTriangleIntersect(pos, normal, p0, p1, p2, p.Eps)
			if !ok {
				continue
			}
			w := 1 - a - b
			if a < -p.Eps || b < -p.Eps || w < -p.Eps {
				continue
			}
			if bestTri >= 0 && absF(lambda) >= absF(bestLambda) {
				continue
			}
			bestTri, bestLocal, bestLambda = ti, geom.Bary{w, a, b}, lambda
		}
		if bestTri < 0 {
			continue
		}

		nn := p.Domain.NewNodeNumber()
		p.Domain.SetImagePos(nn, geom.AtBary(bestLocal, pts[tris[bestTri].Points[0]], pts[tris[bestTri].Points[1]], pts[tris[bestTri].Points[2]]))
		for _, tri := range base.TrianglesPerVertex(v) {
			corner := base.Tri(tri).LocalVertex(v)
			if err := p.Domain.AddGhostNode(tri, corner, nn, bestTri, bestLocal); err != nil {
				return err
			}
		}
		assigned[v] = nn
	}
	return nil
}

// rayTriangleIntersect solves for the point of triangle (p0, p1, p2)
// hit by the ray origin + lambda*dir, returning its barycentric
// coordinates (1-a-b, a, b) and lambda. The system is linear (both
// the ray and the triangle's plane are affine), unlike the Newton
// solve vertex projection needs against an interpolated normal field.
func rayTriangleIntersect(origin, dir, p0, p1, p2 geom.Vec3, epsDet float64) (a, b, lambda float64, ok bool) {
	m := geom.Mat3{Col0: p1.Sub(p0), Col1: p2.Sub(p0), Col2: dir.Scale(-1)}
	rhs := origin.Sub(p0)
	sol, solved := geom.Solve3x3(m, rhs, epsDet)
	if !solved {
		return 0, 0, 0, false
	}
	return sol.X, sol.Y, sol.Z, true
}
