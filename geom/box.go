package geom

import "math"

// Box is an axis-aligned bounding box in 3-space. The zero value is
// the degenerate box holding only the origin; use NewBox or Union to
// build one from real data.
type Box struct {
	MinP, MaxP Vec3
}

// NewBox creates the degenerate box containing exactly one point.
func NewBox(p Vec3) Box {
	return Box{MinP: p, MaxP: p}
}

// BoxFromPoints computes the bounding box of a non-empty point set.
func BoxFromPoints(pts []Vec3) Box {
	b := NewBox(pts[0])
	for _, p := range pts[1:] {
		b = b.AddPoint(p)
	}
	return b
}

// AddPoint grows b to contain p, returning the enlarged box.
func (b Box) AddPoint(p Vec3) Box {
	return Box{MinP: b.MinP.Min(p), MaxP: b.MaxP.Max(p)}
}

// Union returns the smallest box containing both b and b1.
func (b Box) Union(b1 Box) Box {
	return Box{MinP: b.MinP.Min(b1.MinP), MaxP: b.MaxP.Max(b1.MaxP)}
}

// Extend grows the box by eps in every direction, used to build the ε
// search margin around a candidate contact region (spec.md §4.F).
func (b Box) Extend(eps float64) Box {
	d := Vec3{eps, eps, eps}
	return Box{MinP: b.MinP.Sub(d), MaxP: b.MaxP.Add(d)}
}

// Intersects reports whether b and b1 overlap (touching counts as
// overlapping).
func (b Box) Intersects(b1 Box) bool {
	return b.MinP.X <= b1.MaxP.X && b1.MinP.X <= b.MaxP.X &&
		b.MinP.Y <= b1.MaxP.Y && b1.MinP.Y <= b.MaxP.Y &&
		b.MinP.Z <= b1.MaxP.Z && b1.MinP.Z <= b.MaxP.Z
}

// Intersection returns the overlapping region of b and b1. The result
// is only meaningful when Intersects(b1) is true.
func (b Box) Intersection(b1 Box) Box {
	return Box{MinP: b.MinP.Max(b1.MinP), MaxP: b.MaxP.Min(b1.MaxP)}
}

// Contains reports whether p lies within the closed box.
func (b Box) Contains(p Vec3) bool {
	return p.X >= b.MinP.X && p.X <= b.MaxP.X &&
		p.Y >= b.MinP.Y && p.Y <= b.MaxP.Y &&
		p.Z >= b.MinP.Z && p.Z <= b.MaxP.Z
}

// Valid reports whether the box is well-formed (non-negative extent
// in every dimension and free of NaN/Inf).
func (b Box) Valid() bool {
	d := b.MaxP.Sub(b.MinP)
	if math.IsNaN(d.X) || math.IsNaN(d.Y) || math.IsNaN(d.Z) {
		return false
	}
	if math.IsInf(d.X, 0) || math.IsInf(d.Y, 0) || math.IsInf(d.Z, 0) {
		return false
	}
	return d.X >= 0 && d.Y >= 0 && d.Z >= 0
}
