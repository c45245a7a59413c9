package geom

// ClosestPointOnSegment returns the point of segment [a, b] closest to
// p.
func ClosestPointOnSegment(a, b, p Vec3) Vec3 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// ClosestPointOnTriangle returns the point of triangle (a, b, c)
// closest to p: the orthogonal projection onto the triangle's plane
// if that projection falls inside the triangle, otherwise the closest
// point on its boundary.
func ClosestPointOnTriangle(a, b, c, p Vec3) Vec3 {
	e0 := b.Sub(a)
	e1 := c.Sub(a)
	d := p.Sub(a)
	aa := e0.Dot(e0)
	bb := e0.Dot(e1)
	cc := e1.Dot(e1)
	det := aa*cc - bb*bb
	if det != 0 {
		u := (cc*e0.Dot(d) - bb*e1.Dot(d)) / det
		v := (aa*e1.Dot(d) - bb*e0.Dot(d)) / det
		const eps = 1e-9
		if u >= -eps && v >= -eps && u+v <= 1+eps {
			return a.Add(e0.Scale(u)).Add(e1.Scale(v))
		}
	}

	best := ClosestPointOnSegment(a, b, p)
	bestDist := p.Dist(best)
	if q := ClosestPointOnSegment(b, c, p); p.Dist(q) < bestDist {
		best, bestDist = q, p.Dist(q)
	}
	if q := ClosestPointOnSegment(c, a, p); p.Dist(q) < bestDist {
		best = q
	}
	return best
}
