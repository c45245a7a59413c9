package geom

// Mat3 is a 3x3 matrix stored column-major, as three column vectors.
// It exists solely to carry the Cramer's-rule solves shared by
// surface.TriangleEdgeIntersection and project.Projector's Newton
// iteration (spec.md §4.C and §4.G both reduce to small dense linear
// solves).
type Mat3 struct {
	Col0, Col1, Col2 Vec3
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m.Col0.Dot(m.Col1.Cross(m.Col2))
}

// Solve3x3 solves m*x = rhs via Cramer's rule, returning ok=false if m
// is singular (|det| <= epsDet).
func Solve3x3(m Mat3, rhs Vec3, epsDet float64) (x Vec3, ok bool) {
	det := m.Det()
	if det > -epsDet && det < epsDet {
		return Vec3{}, false
	}
	dx := Mat3{rhs, m.Col1, m.Col2}.Det()
	dy := Mat3{m.Col0, rhs, m.Col2}.Det()
	dz := Mat3{m.Col0, m.Col1, rhs}.Det()
	invDet := 1 / det
	return Vec3{dx * invDet, dy * invDet, dz * invDet}, true
}

// Mat2 is a 2x2 matrix stored as two column vectors, used for the
// degenerate (parallel) case of TriangleEdgeIntersection which
// projects onto the coordinate plane most aligned with the triangle
// normal (spec.md §9).
type Mat2 struct {
	Col0, Col1 Vec2
}

func (m Mat2) Det() float64 {
	return m.Col0.X*m.Col1.Y - m.Col0.Y*m.Col1.X
}

// Solve2x2 solves m*x = rhs via Cramer's rule.
func Solve2x2(m Mat2, rhs Vec2, epsDet float64) (x Vec2, ok bool) {
	det := m.Det()
	if det > -epsDet && det < epsDet {
		return Vec2{}, false
	}
	dx := Mat2{rhs, m.Col1}.Det()
	dy := Mat2{m.Col0, rhs}.Det()
	invDet := 1 / det
	return Vec2{dx * invDet, dy * invDet}, true
}

// DropAxis discards one coordinate of v, used to project a 3D
// direction onto the coordinate plane most aligned with a face
// normal: axis 0 drops X, 1 drops Y, 2 drops Z.
func DropAxis(v Vec3, axis int) Vec2 {
	switch axis {
	case 0:
		return Vec2{v.Y, v.Z}
	case 1:
		return Vec2{v.X, v.Z}
	default:
		return Vec2{v.X, v.Y}
	}
}

// DominantAxis returns the index (0, 1 or 2) of n's largest-magnitude
// component, i.e. the axis most aligned with n.
func DominantAxis(n Vec3) int {
	ax, ay, az := absF(n.X), absF(n.Y), absF(n.Z)
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
