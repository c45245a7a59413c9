package geom

import "math"

// Bary is a barycentric coordinate triple (b0, b1, b2) with
// b0 + b1 + b2 = 1. Per spec.md's data model, only two components are
// ever stored independently; the third is always recovered as
// 1 - b0 - b1, but callers work with the full triple for clarity.
type Bary [3]float64

// NewBary builds a Bary from its first two components, deriving the
// third so that the invariant b0+b1+b2=1 holds exactly.
func NewBary(b0, b1 float64) Bary {
	return Bary{b0, b1, 1 - b0 - b1}
}

// Valid reports whether b's components are all within [-eps, 1+eps]
// and sum to 1 within eps, per spec.md §8 property 2.
func (b Bary) Valid(eps float64) bool {
	sum := b[0] + b[1] + b[2]
	if math.Abs(sum-1) > eps {
		return false
	}
	for _, c := range b {
		if c < -eps || c > 1+eps {
			return false
		}
	}
	return true
}

// Clamp projects b onto the closed triangle by clamping each
// component to [0, 1] and renormalizing. Used after numerical drift
// pushes a point slightly outside its triangle.
func (b Bary) Clamp() Bary {
	c := Bary{
		math.Max(0, b[0]),
		math.Max(0, b[1]),
		math.Max(0, b[2]),
	}
	sum := c[0] + c[1] + c[2]
	if sum == 0 {
		return Bary{1, 0, 0}
	}
	return Bary{c[0] / sum, c[1] / sum, c[2] / sum}
}

// AtBary evaluates the affine combination b0*p0 + b1*p1 + b2*p2.
func AtBary(b Bary, p0, p1, p2 Vec3) Vec3 {
	return p0.Scale(b[0]).Add(p1.Scale(b[1])).Add(p2.Scale(b[2]))
}

// AtBary2 is AtBary specialized to the 2D plane, used for the local
// (u, v) barycentric frame inside a domain triangle.
func AtBary2(b Bary, p0, p1, p2 Vec2) Vec2 {
	return p0.Scale(b[0]).Add(p1.Scale(b[1])).Add(p2.Scale(b[2]))
}

// BaryOfPoint2D computes the barycentric coordinates of p with respect
// to the triangle (p0, p1, p2) in the plane, via Cramer's rule on the
// 2x2 system in (b1, b2).
func BaryOfPoint2D(p, p0, p1, p2 Vec2) Bary {
	v0 := p1.Sub(p0)
	v1 := p2.Sub(p0)
	v2 := p.Sub(p0)
	det := v0.Cross2D(v1)
	b1 := v2.Cross2D(v1) / det
	b2 := v0.Cross2D(v2) / det
	return Bary{1 - b1 - b2, b1, b2}
}
