package surface

import (
	"math"

	"github.com/aburch/psurface/geom"
)

// Area returns the area of a triangle given its three corner
// positions.
func Area(p0, p1, p2 geom.Vec3) float64 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Norm() / 2
}

// Area returns the area of triangle idx.
func (b *Base) Area(idx int) float64 {
	t := b.tris[idx]
	return Area(b.verts[t.Verts[0]].Pos, b.verts[t.Verts[1]].Pos, b.verts[t.Verts[2]].Pos)
}

// Normal returns the (non-normalized-input-independent, unit)
// outward normal of a triangle given its three corners in CCW winding.
func Normal(p0, p1, p2 geom.Vec3) geom.Vec3 {
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// Normal returns the unit normal of triangle idx.
func (b *Base) Normal(idx int) geom.Vec3 {
	t := b.tris[idx]
	return Normal(b.verts[t.Verts[0]].Pos, b.verts[t.Verts[1]].Pos, b.verts[t.Verts[2]].Pos)
}

// AspectRatio is the ratio of the longest edge to twice the
// inradius; sqrt(3) for an equilateral triangle (its minimum), growing
// without bound for slivers.
func (b *Base) AspectRatio(idx int) float64 {
	t := b.tris[idx]
	p := [3]geom.Vec3{b.verts[t.Verts[0]].Pos, b.verts[t.Verts[1]].Pos, b.verts[t.Verts[2]].Pos}
	lens := [3]float64{p[0].Dist(p[1]), p[1].Dist(p[2]), p[2].Dist(p[0])}
	longest := math.Max(lens[0], math.Max(lens[1], lens[2]))
	s := (lens[0] + lens[1] + lens[2]) / 2
	area := Area(p[0], p[1], p[2])
	if area == 0 {
		return math.Inf(1)
	}
	inradius := area / s
	return longest / (2 * inradius)
}

// MinInteriorAngle returns the smallest interior angle of triangle
// idx, in radians.
func (b *Base) MinInteriorAngle(idx int) float64 {
	t := b.tris[idx]
	p := [3]geom.Vec3{b.verts[t.Verts[0]].Pos, b.verts[t.Verts[1]].Pos, b.verts[t.Verts[2]].Pos}
	min := math.Pi
	for i := 0; i < 3; i++ {
		a := p[(i+1)%3].Sub(p[i]).Normalize()
		c := p[(i+2)%3].Sub(p[i]).Normalize()
		angle := math.Acos(math.Max(-1, math.Min(1, a.Dot(c))))
		if angle < min {
			min = angle
		}
	}
	return min
}

// DihedralAngle returns the angle between the normals of the two
// triangles sharing edge idx, or NaN if the edge is not shared by
// exactly two triangles.
func (b *Base) DihedralAngle(idx int) float64 {
	e := b.edges[idx]
	if e.Tris.Len() != 2 {
		return math.NaN()
	}
	n0 := b.Normal(e.Tris.Get(0))
	n1 := b.Normal(e.Tris.Get(1))
	return math.Acos(math.Max(-1, math.Min(1, n0.Dot(n1))))
}

// Length returns the 3D length of edge idx.
func (b *Base) Length(idx int) float64 {
	e := b.edges[idx]
	return b.verts[e.From].Pos.Dist(b.verts[e.To].Pos)
}

// BoundingBox returns the axis-aligned bounding box of all live
// vertices.
func (b *Base) BoundingBox() geom.Box {
	box := geom.NewBox(geom.Vec3{})
	first := true
	for i := range b.verts {
		if !b.verts[i].alive {
			continue
		}
		if first {
			box = geom.NewBox(b.verts[i].Pos)
			first = false
		} else {
			box = box.AddPoint(b.verts[i].Pos)
		}
	}
	return box
}

// TriangleEdgeIntersection intersects the plane/line of triangle tri
// with the full line through edge's two endpoints, returning the
// intersection point. When the edge is (numerically) parallel to the
// triangle's plane, the system is solved instead in the coordinate
// plane most aligned with the triangle's normal, and parallel is
// reported true (spec.md §4.C, §9).
func (b *Base) TriangleEdgeIntersection(tri, edge int, eps float64) (p geom.Vec3, parallel bool, ok bool) {
	t := b.tris[tri]
	p0, p1, p2 := b.verts[t.Verts[0]].Pos, b.verts[t.Verts[1]].Pos, b.verts[t.Verts[2]].Pos
	e := b.edges[edge]
	a, c := b.verts[e.From].Pos, b.verts[e.To].Pos
	dir := c.Sub(a)

	// Solve p0 + u*(p1-p0) + v*(p2-p0) - s*dir = a  for (u, v, s).
	m := geom.Mat3{Col0: p1.Sub(p0), Col1: p2.Sub(p0), Col2: dir.Scale(-1)}
	rhs := a.Sub(p0)
	sol, solved := geom.Solve3x3(m, rhs, eps)
	if solved {
		s := sol.Z
		return a.Add(dir.Scale(s)), false, true
	}

	// Degenerate: edge direction lies (numerically) in the triangle's
	// plane. Project onto the coordinate plane most aligned with the
	// triangle normal and solve the corresponding 2x2 system there.
	axis := geom.DominantAxis(Normal(p0, p1, p2))
	p0s, p1s := geom.DropAxis(p0, axis), geom.DropAxis(p1, axis)
	as, dirs := geom.DropAxis(a, axis), geom.DropAxis(dir, axis)
	m2 := geom.Mat2{Col0: p1s.Sub(p0s), Col1: dirs.Scale(-1)}
	rhs2 := as.Sub(p0s)
	sol2, ok2 := geom.Solve2x2(m2, rhs2, eps)
	if !ok2 {
		return geom.Vec3{}, true, false
	}
	s := sol2.Y
	return a.Add(dir.Scale(s)), true, true
}
