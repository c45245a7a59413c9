package spatial

import (
	"testing"

	"github.com/aburch/psurface/geom"
)

func TestOctreeQuery(t *testing.T) {
	o := NewOctree()
	pts := []geom.Vec3{
		geom.XYZ(0, 0, 0),
		geom.XYZ(1, 1, 1),
		geom.XYZ(5, 5, 5),
	}
	for i, p := range pts {
		if err := o.Insert(i, p); err != nil {
			t.Fatal(err)
		}
	}
	hits, err := o.Query(geom.Box{MinP: geom.XYZ(-0.5, -0.5, -0.5), MaxP: geom.XYZ(1.5, 1.5, 1.5)})
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d (%v)", len(hits), hits)
	}
}

func TestOctreeRemove(t *testing.T) {
	o := NewOctree()
	if err := o.Insert(0, geom.XYZ(0, 0, 0)); err != nil {
		t.Fatal(err)
	}
	o.Remove(0)
	if o.Len() != 0 {
		t.Fatalf("expected empty octree after remove, got %d", o.Len())
	}
}
