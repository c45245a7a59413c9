package factory

import (
	"testing"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/surface"
)

// unitSquare builds a two-triangle flat square in the z=zOffset plane.
func unitSquare(zOffset float64) *surface.Mem {
	pts := []geom.Vec3{
		geom.XYZ(0, 0, zOffset), geom.XYZ(1, 0, zOffset),
		geom.XYZ(1, 1, zOffset), geom.XYZ(0, 1, zOffset),
	}
	tris := []surface.TargetTriangle{
		{Points: [3]int{0, 1, 2}},
		{Points: [3]int{0, 2, 3}},
	}
	return surface.NewMem(pts, tris)
}

func TestBuildIdenticalSquaresIdentityMap(t *testing.T) {
	s1 := unitSquare(0)
	s2 := unitSquare(0)

	result, err := Build(s1, s2, 1e-6, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Report.SkippedVertices != 0 {
		t.Errorf("expected every vertex of an identical flat square to project, got %d skipped", result.Report.SkippedVertices)
	}
	if !result.Surface.HasUpToDatePointLocationStructure {
		t.Error("expected Build to leave point location structures up to date")
	}
	if result.Surface.NumNodes() == 0 {
		t.Error("expected a non-empty set of planar graph nodes")
	}
	if result.OriginalSurface == nil || len(result.OriginalSurface.Points()) == 0 {
		t.Error("expected a non-empty recovered target surface")
	}
}

func TestBuildOffsetSquaresProducesNodes(t *testing.T) {
	s1 := unitSquare(0)
	s2 := unitSquare(0.02)

	result, err := Build(s1, s2, 0.05, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Surface.NumNodes() == 0 {
		t.Error("expected planar graph nodes even when the target plane is offset within tolerance")
	}
}

func TestFactoryIncrementalAssemblyMatchesDirectBuild(t *testing.T) {
	target := unitSquare(0)

	f := NewFactory(1e-6, nil)
	if _, err := f.InsertVertex(geom.XYZ(0, 0, 0)); err == nil {
		t.Fatal("expected InsertVertex before SetTargetSurface to fail")
	}
	if err := f.SetTargetSurface(target); err != nil {
		t.Fatal(err)
	}
	var v [4]int
	v[0], _ = f.InsertVertex(geom.XYZ(0, 0, 0))
	v[1], _ = f.InsertVertex(geom.XYZ(1, 0, 0))
	v[2], _ = f.InsertVertex(geom.XYZ(1, 1, 0))
	v[3], _ = f.InsertVertex(geom.XYZ(0, 1, 0))
	if _, err := f.InsertSimplex(v[0], v[1], v[2]); err != nil {
		t.Fatal(err)
	}
	if _, err := f.InsertSimplex(v[0], v[2], v[3]); err != nil {
		t.Fatal(err)
	}
	if _, err := f.InsertVertex(geom.XYZ(0, 0, 0)); err == nil {
		t.Fatal("expected InsertVertex after the first InsertSimplex to fail")
	}

	result, err := f.Build()
	if err != nil {
		t.Fatal(err)
	}
	if result.Surface.HasUpToDatePointLocationStructure {
		t.Error("expected Factory.Build to leave point location structures not yet built")
	}
	if result.Report.SkippedVertices != 0 {
		t.Errorf("expected every vertex of an identical flat square to project, got %d skipped", result.Report.SkippedVertices)
	}
	if result.OriginalSurface == nil || len(result.OriginalSurface.Points()) == 0 {
		t.Error("expected a non-empty recovered target surface")
	}

	if _, err := f.Build(); err == nil {
		t.Fatal("expected a second Build call to fail")
	}
}

func TestBuildDisjointSurfacesKeepsDomainWithNoTargetGeometry(t *testing.T) {
	s1 := unitSquare(0)
	s2 := unitSquare(100)

	result, err := Build(s1, s2, 0.05, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Surface.Graphs) != 2 {
		t.Fatalf("expected the domain mesh to retain both of s1's triangles, got %d graphs", len(result.Surface.Graphs))
	}
	if result.Report.SkippedVertices != 0 {
		t.Errorf("expected zero target vertices to exist at all (none in range), got %d skipped", result.Report.SkippedVertices)
	}
}
