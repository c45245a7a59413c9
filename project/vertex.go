package project

import (
	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/surface"
)

// maxNewtonIters bounds the Newton iteration for vertex projection and
// edge-crossing solves (spec.md §5: "Newton iterations cap at 30").
const maxNewtonIters = 30

// newtonConvergence is the residual norm below which a Newton solve is
// accepted.
const newtonConvergence = 1e-10

// newtonSolve finds (u, v, lambda) such that
// (1-u-v)*p0+u*p1+v*p2 + lambda*((1-u-v)*n0+u*n1+v*n2) == target,
// starting from the triangle centroid (spec.md §4.G). It does not
// check that (u, v) lies inside the triangle; callers do that.
func newtonSolve(p0, p1, p2, n0, n1, n2, target geom.Vec3, epsDet float64) (u, v, lambda float64, ok bool) {
	u, v, lambda = 1.0/3, 1.0/3, 0
	for i := 0; i < maxNewtonIters; i++ {
		xEmb := p0.Scale(1 - u - v).Add(p1.Scale(u)).Add(p2.Scale(v))
		nEmb := n0.Scale(1 - u - v).Add(n1.Scale(u)).Add(n2.Scale(v))
		f := xEmb.Add(nEmb.Scale(lambda)).Sub(target)
		if f.Norm() < newtonConvergence {
			return u, v, lambda, true
		}
		dU := p1.Sub(p0).Add(n1.Sub(n0).Scale(lambda))
		dV := p2.Sub(p0).Add(n2.Sub(n0).Scale(lambda))
		dLambda := nEmb
		jac := geom.Mat3{Col0: dU, Col1: dV, Col2: dLambda}
		delta, solved := geom.Solve3x3(jac, f, epsDet)
		if !solved {
			return 0, 0, 0, false
		}
		u -= delta.X
		v -= delta.Y
		lambda -= delta.Z
	}
	return 0, 0, 0, false
}

// Landing describes where a Newton-projected point came to rest
// within its domain triangle.
type Landing struct {
	Tri    int
	Bary   geom.Bary
	Lambda float64
	Kind   planar.NodeKind
	Corner int // valid when Kind == Corner
	Edge   int // valid when Kind == Touching
}

// classifyLanding buckets a converged (u, v) landing point into
// Corner, Touching (edge) or Interior/Ghost, per spec.md §4.G.
func classifyLanding(u, v, eps float64) (kind planar.NodeKind, corner, edge int) {
	w := 1 - u - v
	onW, onU, onV := absF(w) < eps, absF(u) < eps, absF(v) < eps
	switch {
	case onU && onV:
		return planar.Corner, 0, -1
	case onW && onV:
		return planar.Corner, 1, -1
	case onW && onU:
		return planar.Corner, 2, -1
	case onW:
		return planar.Touching, -1, 1
	case onU:
		return planar.Touching, -1, 2
	case onV:
		return planar.Touching, -1, 0
	default:
		return planar.Interior, -1, -1
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// ProjectVertex finds the domain triangle and barycentric point that
// v's outward normal ray lands on, per spec.md §4.G's vertex
// projection: every live domain triangle is tried, and among the
// candidates that converge with an in-range (u, v), the one with
// smallest |lambda| is kept.
func ProjectVertex(base *surface.Base, domainNormals []geom.Vec3, target geom.Vec3, eps float64) (Landing, bool) {
	best := Landing{}
	found := false
	for tri := 0; tri < base.NumTriangleSlots(); tri++ {
		if !base.TriAlive(tri) {
			continue
		}
		t := base.Tri(tri)
		p0, p1, p2 := base.Vertex(t.Verts[0]).Pos, base.Vertex(t.Verts[1]).Pos, base.Vertex(t.Verts[2]).Pos
		n0, n1, n2 := domainNormals[t.Verts[0]], domainNormals[t.Verts[1]], domainNormals[t.Verts[2]]
		u, v, lambda, ok := newtonSolve(p0, p1, p2, n0, n1, n2, target, eps)
		if !ok {
			continue
		}
		w := 1 - u - v
		if u < -eps || v < -eps || w < -eps {
			continue
		}
		if found && absF(lambda) >= absF(best.Lambda) {
			continue
		}
		kind, corner, edge := classifyLanding(u, v, eps)
		best = Landing{
			Tri:    tri,
			Bary:   geom.Bary{w, u, v},
			Lambda: lambda,
			Kind:   kind,
			Corner: corner,
			Edge:   edge,
		}
		found = true
	}
	return best, found
}
