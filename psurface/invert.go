package psurface

// InvertTriangles reverses the orientation of every domain triangle in
// the given patch (or every triangle, if patch < 0), flipping both the
// mesh arena's vertex/edge ordering and the triangle's planar graph so
// they stay in lock-step (spec.md §4.E). It returns the number of
// triangles flipped.
func (s *Surface) InvertTriangles(patch int) int {
	count := 0
	for i, g := range s.Graphs {
		if g == nil || !s.Base.TriAlive(i) {
			continue
		}
		if patch >= 0 && s.Base.Tri(i).Patch != patch {
			continue
		}
		s.Base.FlipTriangle(i)
		g.Flip()
		count++
	}
	s.HasUpToDatePointLocationStructure = false
	return count
}
