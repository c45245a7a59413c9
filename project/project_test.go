package project

import (
	"testing"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/psurface"
	"github.com/aburch/psurface/surface"
)

func flatSquareBase(t *testing.T) *surface.Base {
	t.Helper()
	base := surface.NewBase()
	v0 := base.NewVertex(geom.XYZ(0, 0, 0))
	v1 := base.NewVertex(geom.XYZ(1, 0, 0))
	v2 := base.NewVertex(geom.XYZ(1, 1, 0))
	v3 := base.NewVertex(geom.XYZ(0, 1, 0))
	if _, err := base.AddTriangle(v0, v1, v2); err != nil {
		t.Fatal(err)
	}
	if _, err := base.AddTriangle(v0, v2, v3); err != nil {
		t.Fatal(err)
	}
	return base
}

func TestNewtonSolveConvergesOnKnownRay(t *testing.T) {
	p0, p1, p2 := geom.XYZ(0, 0, 0), geom.XYZ(1, 0, 0), geom.XYZ(0, 1, 0)
	n0, n1, n2 := geom.XYZ(0, 0, 1), geom.XYZ(0, 0, 1), geom.XYZ(0, 0, 1)
	target := geom.XYZ(0.25, 0.25, 0.6)

	u, v, lambda, ok := newtonSolve(p0, p1, p2, n0, n1, n2, target, 1e-9)
	if !ok {
		t.Fatal("expected Newton solve to converge on a flat, upward-facing patch")
	}
	if diff := u - 0.25; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected u=0.25, got %v", u)
	}
	if diff := v - 0.25; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected v=0.25, got %v", v)
	}
	if diff := lambda - 0.6; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected lambda=0.6, got %v", lambda)
	}
}

// TestProjectDomainCornersGhostOnOffsetPlane realizes the offset-plane
// scenario: a flat unit-square domain with an upward normal field and
// a target plane raised to z=0.3. Every domain corner's ray hits the
// target's two triangles (corners (0,0) and (1,1) on their shared
// diagonal), and no target vertex lands on the domain, so every corner
// should end up a Ghost node rather than a Corner node.
func TestProjectDomainCornersGhostOnOffsetPlane(t *testing.T) {
	base := flatSquareBase(t)
	domain := psurface.New(base)

	target := surface.NewMem(
		[]geom.Vec3{
			geom.XYZ(-1, -1, 0.3), geom.XYZ(2, -1, 0.3), geom.XYZ(2, 2, 0.3), geom.XYZ(-1, 2, 0.3),
		},
		[]surface.TargetTriangle{
			{Points: [3]int{0, 1, 2}},
			{Points: [3]int{0, 2, 3}},
		},
	)

	proj := NewProjector(domain, target, nil, 1e-6)
	if err := proj.ProjectVertices(); err != nil {
		t.Fatal(err)
	}
	if proj.Report.SkippedVertices != len(target.Points()) {
		t.Fatalf("expected all 4 target vertices to project outside the domain square and be skipped, got %d skipped", proj.Report.SkippedVertices)
	}

	for tri := 0; tri < base.NumTriangleSlots(); tri++ {
		if !base.TriAlive(tri) {
			continue
		}
		for corner := 0; corner < 3; corner++ {
			node := domain.Graphs[tri].Nodes[domain.Graphs[tri].CornerNode(corner)]
			if node.Kind != planar.Ghost {
				t.Errorf("triangle %d corner %d: expected Ghost, got %v", tri, corner, node.Kind)
				continue
			}
			pos := domain.ImagePos(node.NodeNumber)
			if diff := pos.Z - 0.3; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("triangle %d corner %d: expected ghost image at z=0.3, got %v", tri, corner, pos)
			}
		}
	}
}

func TestDomainNormalsFlatSquareAllUp(t *testing.T) {
	base := flatSquareBase(t)
	normals := DomainNormals(base, nil)
	for v, n := range normals {
		if !base.VertexAlive(v) {
			continue
		}
		if diff := n.Z - 1; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("vertex %d: expected unit +Z normal on a flat upward patch, got %v", v, n)
		}
	}
}
