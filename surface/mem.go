package surface

import "github.com/aburch/psurface/geom"

// Mem is an in-memory TargetSurface, the concrete collaborator used
// wherever the module needs to hand back or consume a plain simplicial
// surface (e.g. PSurface.SetupOriginalSurface's output, or test
// fixtures) without involving a real file-format reader.
type Mem struct {
	points []geom.Vec3
	tris   []TargetTriangle
}

// NewMem builds a Mem surface from explicit points and triangles.
func NewMem(points []geom.Vec3, tris []TargetTriangle) *Mem {
	return &Mem{points: append([]geom.Vec3{}, points...), tris: append([]TargetTriangle{}, tris...)}
}

func (m *Mem) Points() []geom.Vec3 { return m.points }

func (m *Mem) Triangles() []TargetTriangle { return m.tris }

func (m *Mem) BoundingBox() geom.Box {
	return BoxFromVec3Slice(m.points)
}

// BoxFromVec3Slice is a small free function (rather than a method on
// geom.Box, which knows nothing about TargetSurface) computing the
// bounding box of an arbitrary point slice.
func BoxFromVec3Slice(pts []geom.Vec3) geom.Box {
	if len(pts) == 0 {
		return geom.Box{}
	}
	return geom.BoxFromPoints(pts)
}

// RemoveUnusedPoints drops points not referenced by any triangle,
// compacting m.points and rewriting m.tris' point indices.
func (m *Mem) RemoveUnusedPoints() {
	used := make([]bool, len(m.points))
	for _, t := range m.tris {
		for _, p := range t.Points {
			used[p] = true
		}
	}
	remap := make([]int, len(m.points))
	var compact []geom.Vec3
	for i, u := range used {
		if u {
			remap[i] = len(compact)
			compact = append(compact, m.points[i])
		} else {
			remap[i] = -1
		}
	}
	m.points = compact
	for i := range m.tris {
		for j, p := range m.tris[i].Points {
			m.tris[i].Points[j] = remap[p]
		}
	}
}

// TrianglesPerPoint returns, for each point index, the indices of the
// triangles incident to it.
func (m *Mem) TrianglesPerPoint() [][]int {
	res := make([][]int, len(m.points))
	for ti, t := range m.tris {
		for _, p := range t.Points {
			res[p] = append(res[p], ti)
		}
	}
	return res
}

var _ TargetSurface = (*Mem)(nil)
