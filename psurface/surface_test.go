package psurface

import (
	"testing"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/surface"
)

// unitSquarePSurface builds the identity-projection scenario: two
// coplanar unit triangles as both domain and target mesh, with each
// domain vertex's corner node instances unified under one shared node
// number pointing at the matching target vertex.
func unitSquarePSurface(t *testing.T) (*Surface, *surface.Mem) {
	t.Helper()
	base := surface.NewBase()
	var v [4]int
	v[0] = base.NewVertex(geom.XYZ(0, 0, 0))
	v[1] = base.NewVertex(geom.XYZ(1, 0, 0))
	v[2] = base.NewVertex(geom.XYZ(1, 1, 0))
	v[3] = base.NewVertex(geom.XYZ(0, 1, 0))
	t0, err := base.AddTriangle(v[0], v[1], v[2])
	if err != nil {
		t.Fatal(err)
	}
	t1, err := base.AddTriangle(v[0], v[2], v[3])
	if err != nil {
		t.Fatal(err)
	}

	target := surface.NewMem(
		[]geom.Vec3{geom.XYZ(0, 0, 0), geom.XYZ(1, 0, 0), geom.XYZ(1, 1, 0), geom.XYZ(0, 1, 0)},
		[]surface.TargetTriangle{
			{Points: [3]int{0, 1, 2}},
			{Points: [3]int{0, 2, 3}},
		},
	)

	s := New(base)
	nodeNumberOf := map[int]int{}
	for _, tri := range []int{t0, t1} {
		for corner := 0; corner < 3; corner++ {
			vIdx := base.Tri(tri).Verts[corner]
			nn, ok := nodeNumberOf[vIdx]
			if !ok {
				nn = s.NewNodeNumber()
				nodeNumberOf[vIdx] = nn
				s.SetImagePos(nn, target.Points()[vIdx])
			}
			if err := s.AddCornerNode(tri, corner, nn); err != nil {
				t.Fatal(err)
			}
		}
		g, err := s.graph(tri)
		if err != nil {
			t.Fatal(err)
		}
		if err := g.CreatePointLocationStructure(); err != nil {
			t.Fatal(err)
		}
	}
	return s, target
}

func TestIdentityMapMatchesScenarioS1(t *testing.T) {
	s, target := unitSquarePSurface(t)
	base := s.Base
	t0 := base.FindTriangle(base.Tri(0).Verts[0], base.Tri(0).Verts[1], base.Tri(0).Verts[2])

	p := geom.Bary{0.25, 0.25, 0.5}
	subTri, bary, err := s.Map(t0, p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bary.Valid(1e-9) {
		t.Fatalf("invalid barycentric %v", bary)
	}
	for i := range bary {
		if diff := bary[i] - p[i]; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("expected identity barycentric %v, got %v", p, bary)
		}
	}
	_ = subTri

	pos, err := s.PositionMap(t0, p, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	want := geom.XYZ(0.75, 0.5, 0)
	if pos.Dist(want) > 1e-9 {
		t.Errorf("expected world position %v, got %v", want, pos)
	}
}

func TestNumNodesAndPatches(t *testing.T) {
	s, _ := unitSquarePSurface(t)
	if got := s.NumNodes(); got != 6 {
		t.Errorf("expected 6 total nodes (3 per triangle, 2 triangles), got %d", got)
	}
	if got := s.NumTrueNodes(); got != 6 {
		t.Errorf("expected NumTrueNodes == NumNodes with no Intersection nodes, got %d", got)
	}
	if got := s.NumPatches(); got != 0 {
		t.Errorf("expected no patches registered, got %d", got)
	}
}

func TestInvertTrianglesInvolutive(t *testing.T) {
	s, target := unitSquarePSurface(t)
	base := s.Base
	t0 := 0
	p := geom.Bary{0.25, 0.25, 0.5}
	before, err := s.PositionMap(t0, p, 0, target)
	if err != nil {
		t.Fatal(err)
	}

	if n := s.InvertTriangles(-1); n != base.NumTriangles() {
		t.Fatalf("expected %d triangles flipped, got %d", base.NumTriangles(), n)
	}
	if n := s.InvertTriangles(-1); n != base.NumTriangles() {
		t.Fatalf("expected %d triangles flipped on second pass, got %d", base.NumTriangles(), n)
	}

	for i := range s.Graphs {
		if s.Graphs[i] == nil || !base.TriAlive(i) {
			continue
		}
		if err := s.Graphs[i].CreatePointLocationStructure(); err != nil {
			t.Fatal(err)
		}
	}
	after, err := s.PositionMap(t0, p, 0, target)
	if err != nil {
		t.Fatal(err)
	}
	if after.Dist(before) > 1e-9 {
		t.Errorf("expected invert_triangles applied twice to reproduce the original map output: %v vs %v", before, after)
	}
}

// TestIntersectionNodePairWiresIntoFaces exercises the bug fixed in
// AddIntersectionNodePair: inserting a node pair across the shared
// diagonal must thread both nodes into their graph's EdgePoints list
// and connect them to their polyline neighbors, so CreatePointLocationStructure
// and Faces() see them instead of silently dropping them as
// zero-neighbor nodes.
func TestIntersectionNodePairWiresIntoFaces(t *testing.T) {
	s, target := unitSquarePSurface(t)
	base := s.Base
	t0, t1 := 0, 1 // AddTriangle(v0,v1,v2), AddTriangle(v0,v2,v3): shared edge v0-v2

	// t1's edge0 (v0 -> v2) and t0's edge2 (v2 -> v0) are the same
	// domain edge traversed in opposite directions.
	const u = 0.3
	dp1 := geom.Bary{1 - u, u, 0}
	dp2 := geom.Bary{1 - u, 0, u}
	imagePos := target.Points()[base.Tri(t1).Verts[0]].
		Add(target.Points()[base.Tri(t1).Verts[1]].Sub(target.Points()[base.Tri(t1).Verts[0]]).Scale(u))

	n1, n2, _, err := s.AddIntersectionNodePair(t1, t0, dp1, dp2, 0, 2, u, imagePos)
	if err != nil {
		t.Fatal(err)
	}

	g1, err := s.graph(t1)
	if err != nil {
		t.Fatal(err)
	}
	g0, err := s.graph(t0)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(g1.EdgePoints[0]); got != 3 {
		t.Fatalf("expected the new node inserted into t1's edge0 list (3 entries), got %d: %v", got, g1.EdgePoints[0])
	}
	if got := len(g0.EdgePoints[2]); got != 3 {
		t.Fatalf("expected the new node inserted into t0's edge2 list (3 entries), got %d: %v", got, g0.EdgePoints[2])
	}
	if len(g1.Nodes[n1].Neighbors.Slice()) == 0 {
		t.Error("expected the inserted intersection node in t1 to have polyline neighbors wired")
	}
	if len(g0.Nodes[n2].Neighbors.Slice()) == 0 {
		t.Error("expected the inserted intersection node in t0 to have polyline neighbors wired")
	}

	if err := g1.CreatePointLocationStructure(); err != nil {
		t.Fatal(err)
	}
	if err := g0.CreatePointLocationStructure(); err != nil {
		t.Fatal(err)
	}

	faces1 := g1.Faces()
	faces0 := g0.Faces()
	if len(faces1) != 2 {
		t.Errorf("expected t1's triangle split into 2 faces by the new edge point, got %d: %v", len(faces1), faces1)
	}
	if len(faces0) != 2 {
		t.Errorf("expected t0's triangle split into 2 faces by the new edge point, got %d: %v", len(faces0), faces0)
	}
	if !nodeInAnyFace(faces1, n1) {
		t.Errorf("expected node %d to appear in one of t1's faces %v", n1, faces1)
	}
	if !nodeInAnyFace(faces0, n2) {
		t.Errorf("expected node %d to appear in one of t0's faces %v", n2, faces0)
	}

	// Map() from the seed corner must still resolve to a valid
	// sub-triangle on both sides of the newly inserted edge point.
	for _, p := range []geom.Bary{{0.2, 0.2, 0.6}, {0.05, 0.45, 0.5}} {
		if _, _, err := s.Map(t1, p, 0); err != nil {
			t.Errorf("Map(t1, %v) failed after edge insertion: %v", p, err)
		}
	}
}

func nodeInAnyFace(faces [][3]int, node int) bool {
	for _, f := range faces {
		if f[0] == node || f[1] == node || f[2] == node {
			return true
		}
	}
	return false
}

func TestSetupOriginalSurfaceDedupesCorners(t *testing.T) {
	s, target := unitSquarePSurface(t)
	out, err := s.SetupOriginalSurface(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Points()) != 4 {
		t.Errorf("expected 4 deduplicated points (one per domain vertex), got %d", len(out.Points()))
	}
	if len(out.Triangles()) != 2 {
		t.Errorf("expected 2 emitted triangles, got %d", len(out.Triangles()))
	}
}
