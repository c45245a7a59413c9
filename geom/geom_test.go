package geom

import "testing"

func TestBarySum(t *testing.T) {
	b := NewBary(0.25, 0.25)
	if !b.Valid(1e-9) {
		t.Fatalf("expected valid bary, got %v", b)
	}
	if b[2] < 0.49999 || b[2] > 0.50001 {
		t.Errorf("expected b2=0.5, got %v", b[2])
	}
}

func TestBaryClamp(t *testing.T) {
	b := Bary{1.2, -0.1, -0.1}
	c := b.Clamp()
	if !c.Valid(1e-9) {
		t.Fatalf("clamp produced invalid bary: %v", c)
	}
	for _, x := range c {
		if x < 0 || x > 1 {
			t.Errorf("clamp left component out of range: %v", c)
		}
	}
}

func TestSmallVecSpills(t *testing.T) {
	var sv SmallVec[int]
	for i := 0; i < 20; i++ {
		sv.Append(i)
	}
	if sv.Len() != 20 {
		t.Fatalf("expected length 20, got %d", sv.Len())
	}
	for i := 0; i < 20; i++ {
		if sv.Get(i) != i {
			t.Errorf("index %d: expected %d, got %d", i, i, sv.Get(i))
		}
	}
	sv.RemoveAt(5)
	if sv.Len() != 19 || sv.Get(5) != 6 {
		t.Errorf("RemoveAt did not shift correctly: %v", sv.Slice())
	}
}

func TestBoxIntersects(t *testing.T) {
	b1 := Box{MinP: XYZ(0, 0, 0), MaxP: XYZ(1, 1, 1)}
	b2 := Box{MinP: XYZ(0.5, 0.5, 0.5), MaxP: XYZ(2, 2, 2)}
	b3 := Box{MinP: XYZ(5, 5, 5), MaxP: XYZ(6, 6, 6)}
	if !b1.Intersects(b2) {
		t.Error("expected overlapping boxes to intersect")
	}
	if b1.Intersects(b3) {
		t.Error("expected distant boxes not to intersect")
	}
}

func TestSolve3x3Identity(t *testing.T) {
	m := Mat3{Col0: XYZ(1, 0, 0), Col1: XYZ(0, 1, 0), Col2: XYZ(0, 0, 1)}
	x, ok := Solve3x3(m, XYZ(2, 3, 4), 1e-12)
	if !ok {
		t.Fatal("expected solvable system")
	}
	if x != (Vec3{2, 3, 4}) {
		t.Errorf("expected (2,3,4), got %v", x)
	}
}

func TestSolve3x3Singular(t *testing.T) {
	m := Mat3{Col0: XYZ(1, 1, 1), Col1: XYZ(2, 2, 2), Col2: XYZ(0, 1, 0)}
	_, ok := Solve3x3(m, XYZ(1, 1, 1), 1e-9)
	if ok {
		t.Error("expected singular matrix to be rejected")
	}
}

func TestBaryOfPoint2D(t *testing.T) {
	p0, p1, p2 := XY(0, 0), XY(1, 0), XY(0, 1)
	b := BaryOfPoint2D(XY(0.25, 0.25), p0, p1, p2)
	if !b.Valid(1e-9) {
		t.Fatalf("expected valid bary, got %v", b)
	}
	got := AtBary2(b, p0, p1, p2)
	if got.Sub(XY(0.25, 0.25)).Norm() > 1e-9 {
		t.Errorf("round trip mismatch: %v", got)
	}
}
