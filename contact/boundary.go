// Package contact implements the contact selection of spec.md §4.F:
// picking the overlapping sub-meshes of two target surfaces within a
// tolerance ε, the domain patch a PSurfaceFactory builds against.
package contact

import (
	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/spatial"
	"github.com/aburch/psurface/surface"
)

// Boundary is one side's contact sub-mesh: the subset of a
// TargetSurface's vertices and triangles that lie within ε of the
// other surface.
type Boundary struct {
	Vertices  []bool
	Triangles []int
}

// NumVertices reports how many vertices are marked as in contact.
func (b Boundary) NumVertices() int {
	n := 0
	for _, v := range b.Vertices {
		if v {
			n++
		}
	}
	return n
}

// SelectContactBoundaries implements spec.md §4.F's five-step
// algorithm, selecting the sub-meshes of s1 and s2 within ε of each
// other. S1 is kept unconditionally (every vertex and triangle is
// domain); S2's vertices are marked two ways - a precise per-point
// closest-point check against s1's triangles (step 3), and a coarser
// bbox overlap check per s2 triangle that liberally marks all three of
// its vertices to avoid splitting triangles that straddle the contact
// region's edge (step 4) - and a triangle is kept once all three of
// its vertices are marked.
func SelectContactBoundaries(s1, s2 surface.TargetSurface, eps float64) (Boundary, Boundary) {
	pts1, pts2 := s1.Points(), s2.Points()
	s1Boundary := Boundary{Vertices: make([]bool, len(pts1))}
	for i := range s1Boundary.Vertices {
		s1Boundary.Vertices[i] = true
	}
	for ti := range s1.Triangles() {
		s1Boundary.Triangles = append(s1Boundary.Triangles, ti)
	}

	box1 := s1.BoundingBox().Extend(eps)
	box2 := s2.BoundingBox().Extend(eps)
	if !box1.Intersects(box2) {
		return s1Boundary, Boundary{Vertices: make([]bool, len(pts2))}
	}
	candidate := box1.Intersection(box2).Extend(eps)

	idx1 := spatial.NewOctree()
	for i, p := range pts1 {
		idx1.Insert(i, p)
	}

	idx2 := spatial.NewOctree()
	for i, p := range pts2 {
		if candidate.Contains(p) {
			idx2.Insert(i, p)
		}
	}

	s2Marked := make([]bool, len(pts2))
	eps2 := eps * eps
	for _, tri := range s1.Triangles() {
		a, b, c := pts1[tri.Points[0]], pts1[tri.Points[1]], pts1[tri.Points[2]]
		triBox := geom.BoxFromPoints([]geom.Vec3{a, b, c}).Extend(eps)
		candidates, err := idx2.Query(triBox)
		if err != nil {
			continue
		}
		for _, pid := range candidates {
			if s2Marked[pid] {
				continue
			}
			closest := geom.ClosestPointOnTriangle(a, b, c, pts2[pid])
			if d := pts2[pid].Dist(closest); d*d <= eps2 {
				s2Marked[pid] = true
			}
		}
	}

	for _, tri := range s2.Triangles() {
		a, b, c := pts2[tri.Points[0]], pts2[tri.Points[1]], pts2[tri.Points[2]]
		triBox := geom.BoxFromPoints([]geom.Vec3{a, b, c}).Extend(eps)
		candidates, err := idx1.Query(triBox)
		if err != nil || len(candidates) == 0 {
			continue
		}
		s2Marked[tri.Points[0]] = true
		s2Marked[tri.Points[1]] = true
		s2Marked[tri.Points[2]] = true
	}

	var s2Triangles []int
	for ti, tri := range s2.Triangles() {
		if s2Marked[tri.Points[0]] && s2Marked[tri.Points[1]] && s2Marked[tri.Points[2]] {
			s2Triangles = append(s2Triangles, ti)
		}
	}

	return s1Boundary, Boundary{Vertices: s2Marked, Triangles: s2Triangles}
}
