package surface

// GCRemap reports how indices moved during a garbage collection pass,
// so that owners of out-of-arena cross-references (psurface's planar
// graphs, in particular) can rewrite their own bookkeeping. Each slice
// maps an old index to its new one; entry i is NoIndex if slot i was
// free (and so has no image).
type GCRemap struct {
	Verts []int
	Edges []int
	Tris  []int
}

// GarbageCollection compacts the three arenas, dropping free slots and
// rewriting every stored cross-reference (edge endpoints, per-vertex
// edge lists, per-edge triangle lists, triangle vertex/edge lists, and
// the topology indices) to the new, dense numbering. It runs three
// sweeps -- vertices, edges, triangles -- exactly as described in
// spec.md §4.C, and is the only operation that ever shrinks an arena.
//
// The returned GCRemap lets a caller (e.g. psurface.Surface, which
// keeps one planar.Graph per domain triangle indexed in lockstep with
// Base's triangle array) rewrite its own indices to match.
func (b *Base) GarbageCollection() GCRemap {
	vertOffset := compactionOffsets(len(b.verts), b.freeVerts)
	edgeOffset := compactionOffsets(len(b.edges), b.freeEdges)
	triOffset := compactionOffsets(len(b.tris), b.freeTris)

	newVerts := make([]Vertex, 0, b.NumVertices())
	for _, v := range b.verts {
		if !v.alive {
			continue
		}
		for j := 0; j < v.Edges.Len(); j++ {
			v.Edges.Set(j, edgeOffset[v.Edges.Get(j)])
		}
		newVerts = append(newVerts, v)
	}

	newEdges := make([]Edge, 0, b.NumEdges())
	for _, e := range b.edges {
		if !e.alive {
			continue
		}
		e.From = vertOffset[e.From]
		e.To = vertOffset[e.To]
		for j := 0; j < e.Tris.Len(); j++ {
			e.Tris.Set(j, triOffset[e.Tris.Get(j)])
		}
		newEdges = append(newEdges, e)
	}

	newTris := make([]Triangle, 0, b.NumTriangles())
	for _, t := range b.tris {
		if !t.alive {
			continue
		}
		for i := 0; i < 3; i++ {
			t.Verts[i] = vertOffset[t.Verts[i]]
			t.Edges[i] = edgeOffset[t.Edges[i]]
		}
		newTris = append(newTris, t)
	}

	b.verts = newVerts
	b.edges = newEdges
	b.tris = newTris
	b.freeVerts = nil
	b.freeEdges = nil
	b.freeTris = nil

	b.edgeIndex = make(map[edgeKey]int, len(newEdges))
	for i, e := range newEdges {
		b.edgeIndex[newEdgeKey(e.From, e.To)] = i
	}
	b.triIndex = make(map[triKey]int, len(newTris))
	for i, t := range newTris {
		b.triIndex[newTriKey(t.Verts[0], t.Verts[1], t.Verts[2])] = i
	}

	return GCRemap{Verts: vertOffset, Edges: edgeOffset, Tris: triOffset}
}

// compactionOffsets builds the old-index -> new-index table for a
// sweep: live slots are renumbered densely in their original relative
// order, free slots map to NoIndex.
func compactionOffsets(n int, free []int) []int {
	isFree := make([]bool, n)
	for _, f := range free {
		isFree[f] = true
	}
	offsets := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if isFree[i] {
			offsets[i] = NoIndex
			continue
		}
		offsets[i] = next
		next++
	}
	return offsets
}
