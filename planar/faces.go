package planar

// Faces enumerates the bounded triangular faces of the planar graph,
// deduplicated, by walking every node's cyclic neighbor order (spec.md
// §8 property 4: "every bounded face ... has exactly three vertices").
// CreatePointLocationStructure must have run first.
func (g *Graph) Faces() [][3]int {
	seen := map[[3]int]bool{}
	var faces [][3]int
	for i := range g.Nodes {
		neighbors := g.Nodes[i].Neighbors.Slice()
		if len(neighbors) == 0 {
			continue
		}
		limit := len(neighbors) - 1
		if g.Nodes[i].DomainEdge == noEdge {
			limit = len(neighbors)
		}
		for k := 0; k < limit; k++ {
			face := [3]int{i, neighbors[k], neighbors[(k+1)%len(neighbors)]}
			key := sorted3(face)
			if seen[key] {
				continue
			}
			seen[key] = true
			faces = append(faces, face)
		}
	}
	return faces
}

func sorted3(f [3]int) [3]int {
	a := f
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
	if a[1] > a[2] {
		a[1], a[2] = a[2], a[1]
	}
	if a[0] > a[1] {
		a[0], a[1] = a[1], a[0]
	}
	return a
}
