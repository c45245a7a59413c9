package planar

import (
	"math"
	"testing"

	"github.com/aburch/psurface/geom"
)

func centroidGraph(t *testing.T) (*Graph, int) {
	t.Helper()
	g := New([3]int{10, 11, 12})
	interior := g.AddNode(Node{
		DomainPos:         geom.Bary{1.0 / 3, 1.0 / 3, 1.0 / 3},
		Kind:              Interior,
		DomainEdge:        noEdge,
		TargetTri:         0,
		LocalTargetCoords: geom.Bary{1.0 / 3, 1.0 / 3, 1.0 / 3},
	})
	g.Connect(interior, 0)
	g.Connect(interior, 1)
	g.Connect(interior, 2)
	if err := g.CreatePointLocationStructure(); err != nil {
		t.Fatal(err)
	}
	return g, interior
}

func TestNewGraphCorners(t *testing.T) {
	g := New([3]int{1, 2, 3})
	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 corner nodes, got %d", len(g.Nodes))
	}
	for i := 0; i < 3; i++ {
		if len(g.EdgePoints[i]) != 2 {
			t.Errorf("edge %d: expected 2 edge points, got %d", i, len(g.EdgePoints[i]))
		}
	}
}

func TestCreatePointLocationStructureOrdersBoundaryEnds(t *testing.T) {
	g, interior := centroidGraph(t)
	nb := g.Nodes[0].Neighbors.Slice()
	if len(nb) != 3 {
		t.Fatalf("expected corner 0 to have 3 neighbors, got %v", nb)
	}
	if nb[0] != 1 {
		t.Errorf("expected first neighbor to be the next edge point (1), got %d", nb[0])
	}
	if nb[len(nb)-1] != 2 {
		t.Errorf("expected last neighbor to be the previous edge point (2), got %d", nb[len(nb)-1])
	}
	if nb[1] != interior {
		t.Errorf("expected interior node between the two edge neighbors, got %d", nb[1])
	}
}

func TestCreatePointLocationStructureIdempotent(t *testing.T) {
	g, _ := centroidGraph(t)
	first := make([][]int, len(g.Nodes))
	for i := range g.Nodes {
		first[i] = g.Nodes[i].Neighbors.Slice()
	}
	if err := g.CreatePointLocationStructure(); err != nil {
		t.Fatal(err)
	}
	for i := range g.Nodes {
		second := g.Nodes[i].Neighbors.Slice()
		if len(first[i]) != len(second) {
			t.Fatalf("node %d: neighbor count changed across runs", i)
		}
		for k := range first[i] {
			if first[i][k] != second[k] {
				t.Fatalf("node %d: order changed across runs: %v vs %v", i, first[i], second)
			}
		}
	}
}

func TestMapFindsCentroidSubTriangle(t *testing.T) {
	g, interior := centroidGraph(t)
	// centroid of sub-triangle (corner0, corner1, interior)
	p := geom.Bary{4.0 / 9, 4.0 / 9, 1.0 / 9}
	face, bary, err := g.Map(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]bool{0: true, 1: true, interior: true}
	for _, f := range face {
		if !want[f] {
			t.Fatalf("unexpected face %v, want nodes among %v", face, want)
		}
	}
	if !bary.Valid(1e-6) {
		t.Fatalf("returned barycentric %v not valid", bary)
	}
	for _, c := range bary {
		if math.Abs(c-1.0/3) > 1e-6 {
			t.Errorf("expected all-thirds barycentric at the sub-triangle centroid, got %v", bary)
		}
	}
}

func TestMapAllThreeSubTriangles(t *testing.T) {
	g, interior := centroidGraph(t)
	cases := []struct {
		p    geom.Bary
		want [3]int
	}{
		{geom.Bary{4.0 / 9, 4.0 / 9, 1.0 / 9}, [3]int{0, 1, interior}},
		{geom.Bary{1.0 / 9, 4.0 / 9, 4.0 / 9}, [3]int{1, 2, interior}},
		{geom.Bary{4.0 / 9, 1.0 / 9, 4.0 / 9}, [3]int{2, 0, interior}},
	}
	for _, c := range cases {
		face, bary, err := g.Map(c.p, 0)
		if err != nil {
			t.Fatal(err)
		}
		if !bary.Valid(1e-6) {
			t.Errorf("p=%v: returned invalid barycentric %v", c.p, bary)
		}
		found := map[int]bool{}
		for _, f := range face {
			found[f] = true
		}
		for _, w := range c.want {
			if !found[w] {
				t.Errorf("p=%v: expected face to include node %d, got %v", c.p, w, face)
			}
		}
	}
}

func TestFlipIsInvolutive(t *testing.T) {
	g, _ := centroidGraph(t)
	type snapshot struct {
		pos  geom.Bary
		edge int
		pos2 float64
	}
	before := make([]snapshot, len(g.Nodes))
	for i, n := range g.Nodes {
		before[i] = snapshot{n.DomainPos, n.DomainEdge, n.DomainEdgePosition}
	}
	g.Flip()
	g.Flip()
	for i, n := range g.Nodes {
		if n.DomainPos != before[i].pos {
			t.Errorf("node %d: DomainPos changed after double flip: %v vs %v", i, n.DomainPos, before[i].pos)
		}
		if n.DomainEdge != before[i].edge {
			t.Errorf("node %d: DomainEdge changed after double flip: %v vs %v", i, n.DomainEdge, before[i].edge)
		}
		if n.DomainEdgePosition != before[i].pos2 {
			t.Errorf("node %d: DomainEdgePosition changed after double flip", i)
		}
	}
}

func TestRotateThriceIsIdentity(t *testing.T) {
	g, _ := centroidGraph(t)
	before := make([]geom.Bary, len(g.Nodes))
	for i, n := range g.Nodes {
		before[i] = n.DomainPos
	}
	g.Rotate()
	g.Rotate()
	g.Rotate()
	for i, n := range g.Nodes {
		if n.DomainPos != before[i] {
			t.Errorf("node %d: DomainPos changed after three rotations: %v vs %v", i, n.DomainPos, before[i])
		}
	}
}

func TestAdjustTouchingNodesSnapsToEdgeLine(t *testing.T) {
	g := New([3]int{1, 2, 3})
	touching := g.AddNode(Node{
		DomainPos:  geom.Bary{0.49, 0.49, 0.02},
		Kind:       Touching,
		DomainEdge: 0,
		TargetTri:  0,
	})
	g.AdjustTouchingNodes()
	pos := g.Nodes[touching].DomainPos
	if pos[2] != 0 {
		t.Errorf("expected node snapped onto edge 0 (b2=0), got %v", pos)
	}
	if math.Abs(pos[0]+pos[1]-1) > 1e-12 {
		t.Errorf("expected snapped barycentric to still sum to 1, got %v", pos)
	}
}

func TestInsertExtraEdgesConnectsInteriorDiagonal(t *testing.T) {
	g := New([3]int{1, 2, 3})
	// Two intersection nodes crossing domain edge 0, simulating two
	// target edges crossing the same domain edge in sequence; only int2
	// is wired to the interior node beforehand.
	int1 := g.AddNode(Node{DomainPos: geom.Bary{0.7, 0.3, 0}, Kind: Intersection, DomainEdge: 0, DomainEdgePosition: 0.3, NodeNumber: 100})
	int2 := g.AddNode(Node{DomainPos: geom.Bary{0.4, 0.6, 0}, Kind: Intersection, DomainEdge: 0, DomainEdgePosition: 0.6, NodeNumber: 101})
	interior1 := g.AddNode(Node{DomainPos: geom.Bary{0.5, 0.3, 0.2}, Kind: Interior, DomainEdge: noEdge, TargetTri: 0})
	g.Connect(int2, interior1)
	g.InsertEdgePoint(0, 1, int1)
	g.InsertEdgePoint(0, 2, int2)

	g.InsertExtraEdges()

	// int2's single interior-facing neighbor (interior1) should now
	// now connect to int1, the previous edgePoints entry, closing the
	// triangle (int1, int2, interior1).
	nb := g.Nodes[int1].Neighbors.Slice()
	found := false
	for _, n := range nb {
		if n == interior1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected int1 to be connected to interior1 after InsertExtraEdges, neighbors=%v", nb)
	}
}
