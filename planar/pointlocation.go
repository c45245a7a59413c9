package planar

import (
	"math"

	"github.com/unixpickle/essentials"

	"github.com/aburch/psurface/geom"
)

// angleEps is the slack used when testing whether a barycentric
// coordinate is non-negative during point location; it absorbs the
// drift the affine (b1, b2) frame accumulates across insertions.
const angleEps = 1e-9

// CreatePointLocationStructure builds the CCW cyclic neighbor order at
// every node, per spec.md §4.D. Interior nodes get a full cyclic
// sweep; boundary nodes (including corners) get an order that begins
// and ends with their two domainEdge neighbors.
//
// Running it twice is idempotent: the computed order depends only on
// each node's DomainPos and its (unordered) neighbor set, both of
// which CreatePointLocationStructure itself leaves unchanged.
func (g *Graph) CreatePointLocationStructure() error {
	for i := range g.Nodes {
		if err := g.orderNeighbors(i); err != nil {
			return err
		}
	}
	g.locationReady = true
	return nil
}

func (g *Graph) orderNeighbors(i int) error {
	node := &g.Nodes[i]
	neighbors := node.Neighbors.Slice()
	if len(neighbors) == 0 {
		return nil
	}
	origin := localXY(node.DomainPos)
	angle := func(j int) float64 {
		d := localXY(g.Nodes[j].DomainPos).Sub(origin)
		return math.Atan2(d.Y, d.X)
	}

	if node.DomainEdge == noEdge {
		angles := make([]float64, len(neighbors))
		for k, n := range neighbors {
			angles[k] = angle(n)
		}
		essentials.VoodooSort(angles, func(a, b int) bool { return angles[a] < angles[b] }, neighbors)
		g.setNeighbors(i, neighbors)
		return nil
	}

	next, prev, err := g.edgeNeighbors(i)
	if err != nil {
		return err
	}
	base := angle(next)
	rest := make([]int, 0, len(neighbors))
	for _, n := range neighbors {
		if n == next || n == prev {
			continue
		}
		rest = append(rest, n)
	}
	rel := func(j int) float64 {
		d := angle(j) - base
		for d < 0 {
			d += 2 * math.Pi
		}
		return d
	}
	relAngles := make([]float64, len(rest))
	for k, n := range rest {
		relAngles[k] = rel(n)
	}
	essentials.VoodooSort(relAngles, func(a, b int) bool { return relAngles[a] < relAngles[b] }, rest)

	ordered := make([]int, 0, len(neighbors))
	ordered = append(ordered, next)
	ordered = append(ordered, rest...)
	if prev != next {
		ordered = append(ordered, prev)
	}
	g.setNeighbors(i, ordered)
	return nil
}

// edgeNeighbors returns the polyline-adjacent (next, prev) node
// indices for a boundary node i, i.e. the nodes immediately following
// and preceding it along its DomainEdge's edgePoints list. For a
// corner node (Corner or Ghost) the "prev" neighbor instead comes from
// the incoming edge, since a corner sits at the start of its own
// DomainEdge list.
func (g *Graph) edgeNeighbors(i int) (next, prev int, err error) {
	node := &g.Nodes[i]
	edge := node.DomainEdge
	list := g.EdgePoints[edge]
	pos := indexOfInt(list, i)
	if pos < 0 {
		return 0, 0, errInvariant("node %d claims domain edge %d but is absent from its edgePoints list", i, edge)
	}
	if pos+1 >= len(list) {
		return 0, 0, errInvariant("node %d is last in edgePoints[%d], expected a successor corner", i, edge)
	}
	next = list[pos+1]

	if node.Kind == Corner || node.Kind == Ghost {
		prevEdge := (edge + 2) % 3
		prevList := g.EdgePoints[prevEdge]
		if len(prevList) < 2 {
			return 0, 0, errInvariant("edgePoints[%d] too short to have a predecessor of corner %d", prevEdge, i)
		}
		prev = prevList[len(prevList)-2]
		return next, prev, nil
	}

	if pos == 0 {
		return 0, 0, errInvariant("non-corner node %d found at the start of edgePoints[%d]", i, edge)
	}
	prev = list[pos-1]
	return next, prev, nil
}

func (g *Graph) setNeighbors(i int, order []int) {
	var sv geom.SmallVec[int]
	for _, n := range order {
		sv.Append(n)
	}
	g.Nodes[i].Neighbors = sv
}

func indexOfInt(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// Map locates the sub-triangle of the planar graph containing
// barycentric point p, starting the Brown/Faigle-style walk at node
// seed (spec.md §4.D). It returns the three node indices bounding the
// sub-triangle and p's barycentric coordinates within it.
//
// CreatePointLocationStructure must have been called since the last
// topology change, or the walk's edge-crossing step is unreliable.
func (g *Graph) Map(p geom.Bary, seed int) (subTri [3]int, local geom.Bary, err error) {
	if !g.locationReady {
		return subTri, local, errInvariant("Map called before CreatePointLocationStructure")
	}
	target := localXY(p)

	face, ok := g.firstFaceAt(seed)
	if !ok {
		return g.mapByScan(target)
	}

	const maxSteps = 10000
	for step := 0; step < maxSteps; step++ {
		bary := g.faceBary(face, target)
		mi, worst := worstComponent(bary)
		if worst >= -angleEps {
			return face, bary.Clamp(), nil
		}
		b, c := otherTwo(face, mi)
		third, crossErr := g.acrossEdge(face[mi], b, c)
		if crossErr != nil {
			return g.mapByScan(target)
		}
		face[mi] = third
	}
	return g.mapByScan(target)
}

// firstFaceAt returns some face of the triangulation incident to node
// seed, to be used as the Brown/Faigle walk's starting point. Any face
// works: the walk corrects toward the target from there.
func (g *Graph) firstFaceAt(seed int) ([3]int, bool) {
	neighbors := g.Nodes[seed].Neighbors.Slice()
	if len(neighbors) < 2 {
		return [3]int{}, false
	}
	limit := len(neighbors) - 1
	if g.Nodes[seed].DomainEdge == noEdge {
		limit = len(neighbors)
	}
	for k := 0; k < limit; k++ {
		return [3]int{seed, neighbors[k], neighbors[(k+1)%len(neighbors)]}, true
	}
	return [3]int{}, false
}

// acrossEdge returns the third vertex of the face sharing edge (b, c)
// on the side opposite a, using b's cyclic neighbor list: the two
// neighbors of b adjacent to c in that order are the third vertices of
// the two faces bordering edge (b, c), one of which is a.
func (g *Graph) acrossEdge(a, b, c int) (int, error) {
	neighbors := g.Nodes[b].Neighbors.Slice()
	idx := indexOfInt(neighbors, c)
	if idx < 0 {
		return 0, errInvariant("node %d is not adjacent to %d", b, c)
	}
	n := len(neighbors)
	interior := g.Nodes[b].DomainEdge == noEdge
	candidates := []int{}
	if idx > 0 {
		candidates = append(candidates, neighbors[idx-1])
	} else if interior {
		candidates = append(candidates, neighbors[n-1])
	}
	if idx+1 < n {
		candidates = append(candidates, neighbors[idx+1])
	} else if interior {
		candidates = append(candidates, neighbors[0])
	}
	for _, cand := range candidates {
		if cand != a {
			return cand, nil
		}
	}
	return 0, errInvariant("edge (%d,%d) has no face opposite %d", b, c, a)
}

// mapByScan is the robust fallback point-location pass: it tries every
// face of the triangulation in turn. Map runs it when the seed node
// has no incident face, when the walk hits an edge it cannot cross,
// or when the walk exceeds its step bound; it exists so Map always
// returns a result rather than looping.
func (g *Graph) mapByScan(target geom.Vec2) ([3]int, geom.Bary, error) {
	best := [3]int{}
	bestWorst := math.Inf(-1)
	var bestBary geom.Bary
	found := false
	for i := range g.Nodes {
		neighbors := g.Nodes[i].Neighbors.Slice()
		limit := len(neighbors) - 1
		if g.Nodes[i].DomainEdge == noEdge {
			limit = len(neighbors)
		}
		for k := 0; k < limit && len(neighbors) > 0; k++ {
			face := [3]int{i, neighbors[k], neighbors[(k+1)%len(neighbors)]}
			bary := g.faceBary(face, target)
			_, worst := worstComponent(bary)
			if worst >= -angleEps {
				return face, bary.Clamp(), nil
			}
			if worst > bestWorst {
				bestWorst, best, bestBary, found = worst, face, bary, true
			}
		}
	}
	if !found {
		return best, bestBary, errInvariant("no face found containing target point")
	}
	return best, bestBary.Clamp(), nil
}

func (g *Graph) faceBary(face [3]int, target geom.Vec2) geom.Bary {
	p0 := localXY(g.Nodes[face[0]].DomainPos)
	p1 := localXY(g.Nodes[face[1]].DomainPos)
	p2 := localXY(g.Nodes[face[2]].DomainPos)
	return geom.BaryOfPoint2D(target, p0, p1, p2)
}

func worstComponent(b geom.Bary) (int, float64) {
	mi := 0
	for i := 1; i < 3; i++ {
		if b[i] < b[mi] {
			mi = i
		}
	}
	return mi, b[mi]
}

func otherTwo(face [3]int, mi int) (int, int) {
	switch mi {
	case 0:
		return face[1], face[2]
	case 1:
		return face[2], face[0]
	default:
		return face[0], face[1]
	}
}
