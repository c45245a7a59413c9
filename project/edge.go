package project

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/splaytree"

	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/planar"
	"github.com/aburch/psurface/psurface"
	"github.com/aburch/psurface/surface"
)

// BuildReport aggregates the vertices and edges a Projector failed to
// place, restoring the original implementation's practice of counting
// unprojectable geometry rather than silently dropping it (spec.md
// §7's GeometryNotProjectable recovery path).
type BuildReport struct {
	SkippedVertices int
	SkippedEdges    int
}

// Projector drives the normal projection of spec.md §4.G: it owns the
// per-domain-vertex normal field, the target-vertex projection
// results, and the edge-insertion walk that builds up each domain
// triangle's planar graph.
type Projector struct {
	Domain        *psurface.Surface
	Target        surface.TargetSurface
	DomainNormals []geom.Vec3
	Eps           float64

	// nodeNumberOf maps a target vertex index to the global psurface
	// node number that represents it, or -1 if projection failed.
	nodeNumberOf []int
	landingOf    []Landing

	Report BuildReport
}

// NewProjector builds a Projector over domain and target, computing
// the domain's per-vertex normal field via obs (nil uses averaged
// one-ring face normals).
func NewProjector(domain *psurface.Surface, target surface.TargetSurface, obs ObserverDirections, eps float64) *Projector {
	return &Projector{
		Domain:        domain,
		Target:        target,
		DomainNormals: DomainNormals(domain.Base, obs),
		Eps:           eps,
	}
}

// ProjectVertices runs vertex projection (spec.md §4.G) for every
// target vertex, installing Corner, Touching or Interior nodes into
// the domain PSurface as each lands, and records any vertex whose
// normal ray fails to converge in the build report rather than
// failing the whole build.
func (p *Projector) ProjectVertices() error {
	pts := p.Target.Points()
	p.nodeNumberOf = make([]int, len(pts))
	p.landingOf = make([]Landing, len(pts))
	domainVertexNode := map[int]int{}

	for vi, pos := range pts {
		landing, ok := ProjectVertex(p.Domain.Base, p.DomainNormals, pos, p.Eps)
		if !ok {
			p.nodeNumberOf[vi] = -1
			p.Report.SkippedVertices++
			continue
		}
		p.landingOf[vi] = landing

		targetTri, localCoords, hasFace := p.firstIncidentFace(vi)

		switch landing.Kind {
		case planar.Corner:
			domainVertex := p.Domain.Base.Tri(landing.Tri).Verts[landing.Corner]
			nn, seen := domainVertexNode[domainVertex]
			if !seen {
				nn = p.Domain.NewNodeNumber()
				p.Domain.SetImagePos(nn, pos)
				domainVertexNode[domainVertex] = nn
				for _, tri := range p.Domain.Base.TrianglesPerVertex(domainVertex) {
					corner := p.Domain.Base.Tri(tri).LocalVertex(domainVertex)
					if err := p.Domain.AddCornerNode(tri, corner, nn); err != nil {
						return err
					}
				}
			}
			p.nodeNumberOf[vi] = nn
		case planar.Touching:
			nn := p.Domain.NewNodeNumber()
			p.Domain.SetImagePos(nn, pos)
			if hasFace {
				edgePos := landing.Bary[(landing.Edge+1)%3]
				if _, err := p.Domain.AddTouchingNode(landing.Tri, landing.Bary, landing.Edge, edgePos, targetTri, localCoords); err != nil {
					return err
				}
			}
			p.nodeNumberOf[vi] = nn
		default:
			nn := p.Domain.NewNodeNumber()
			p.Domain.SetImagePos(nn, pos)
			if hasFace {
				if _, err := p.Domain.AddInteriorNode(landing.Tri, landing.Bary, targetTri, localCoords); err != nil {
					return err
				}
			}
			p.nodeNumberOf[vi] = nn
		}
	}
	return p.ProjectDomainCorners(domainVertexNode)
}

// firstIncidentFace returns an arbitrary target triangle incident to
// target vertex vi and vi's local barycentric coordinate within it,
// used as the interior-node image reference for Touching/Ghost/
// Interior landings (spec.md §4.G's landing classification only needs
// one representative face; any of them share the same 3D image).
func (p *Projector) firstIncidentFace(vi int) (tri int, local geom.Bary, ok bool) {
	perPoint := p.Target.TrianglesPerPoint()
	if vi >= len(perPoint) || len(perPoint[vi]) == 0 {
		return 0, geom.Bary{}, false
	}
	tri = perPoint[vi][0]
	tt := p.Target.Triangles()[tri]
	for c, pt := range tt.Points {
		if pt == vi {
			local = geom.Bary{}
			local[c] = 1
			return tri, local, true
		}
	}
	return 0, geom.Bary{}, false
}

// EdgeCanBeInserted is a pure dry run of InsertEdge: it reports
// whether both endpoints projected successfully and the walk between
// their domain triangles converges, without mutating the domain
// PSurface (spec.md §4.G).
func (p *Projector) EdgeCanBeInserted(vFrom, vTo int) bool {
	if p.nodeNumberOf[vFrom] < 0 || p.nodeNumberOf[vTo] < 0 {
		return false
	}
	_, err := p.walkEdge(vFrom, vTo, false)
	return err == nil
}

// InsertEdge walks the target edge (vFrom, vTo) across the domain
// mesh, creating Intersection node pairs at every domain edge it
// crosses (spec.md §4.G). Edges whose endpoints failed to project, or
// whose walk does not converge, are recorded in the build report
// rather than failing the whole build.
func (p *Projector) InsertEdge(vFrom, vTo int) error {
	if p.nodeNumberOf[vFrom] < 0 || p.nodeNumberOf[vTo] < 0 {
		p.Report.SkippedEdges++
		return nil
	}
	if _, err := p.walkEdge(vFrom, vTo, true); err != nil {
		p.Report.SkippedEdges++
	}
	return nil
}

// walkEdge is the shared implementation backing InsertEdge and
// EdgeCanBeInserted. It advances from vFrom's domain landing toward
// vTo's, crossing domain edges by solving for the target-edge
// parameter at which the crossed domain edge's own normal-interpolated
// ray meets the target edge (spec.md §4.G step 2), and creates an
// Intersection node pair at each crossing when commit is true. The
// walk is bounded (maxEdgeSteps) and falls back to reporting failure
// rather than guessing past that bound, since the exact geometric
// corner cases of the state-machine table (touching/intersection/
// corner starts) are not all independently re-derived here - only the
// common interior-to-interior walk is.
func (p *Projector) walkEdge(vFrom, vTo int, commit bool) ([]int, error) {
	const maxEdgeSteps = 256
	from, to := p.landingOf[vFrom], p.landingOf[vTo]
	fromPos, toPos := p.Target.Points()[vFrom], p.Target.Points()[vTo]

	if from.Tri == to.Tri {
		return nil, nil
	}

	tri := from.Tri
	var crossings []int
	base := p.Domain.Base
	for step := 0; step < maxEdgeSteps; step++ {
		if tri == to.Tri {
			return crossings, nil
		}
		crossed := false
		for side := 0; side < 3; side++ {
			neighbor := base.NeighboringTriangle(tri, side)
			if neighbor == surface.NoIndex {
				continue
			}
			t := base.Tri(tri)
			a := base.Vertex(t.Verts[side]).Pos
			b := base.Vertex(t.Verts[(side+1)%3]).Pos
			na := p.DomainNormals[t.Verts[side]]
			nb := p.DomainNormals[t.Verts[(side+1)%3]]
			s, u, _, ok := edgeCrossing(a, b, na, nb, fromPos, toPos, p.Eps)
			if !ok || s <= p.Eps || s >= 1-p.Eps || u <= p.Eps || u >= 1-p.Eps {
				continue
			}
			imagePos := fromPos.Add(toPos.Sub(fromPos).Scale(s))
			if commit {
				n1, n2, _, err := p.Domain.AddIntersectionNodePair(tri, neighbor,
					localEdgeBary(side, u), localEdgeBary(oppositeSide(base, tri, neighbor, side), 1-u),
					side, oppositeSide(base, tri, neighbor, side), u, imagePos)
				if err != nil {
					return nil, err
				}
				crossings = append(crossings, n1, n2)
			}
			tri = neighbor
			crossed = true
			break
		}
		if !crossed {
			return crossings, errors.Wrapf(surface.ErrGeometryNotProjectable, "edge walk from vertex %d to %d did not converge after %d steps", vFrom, vTo, step)
		}
	}
	return crossings, errors.Wrap(surface.ErrGeometryNotProjectable, "edge walk exceeded step bound")
}

// localEdgeBary returns the barycentric coordinate of a point at
// parameter u along local edge `side` of a triangle (side i joins
// corners i and (i+1)%3).
func localEdgeBary(side int, u float64) geom.Bary {
	var b geom.Bary
	b[side] = 1 - u
	b[(side+1)%3] = u
	return b
}

// oppositeSide finds the local edge index within `neighbor` of the
// edge shared with `tri` across `tri`'s local edge `side`.
func oppositeSide(base *surface.Base, tri, neighbor, side int) int {
	e := base.Tri(tri).Edges[side]
	return base.Tri(neighbor).LocalEdge(e)
}

// edgeCrossing solves for the point on domain edge (a, b) - with
// per-endpoint normals na, nb - whose normal-interpolated ray meets
// the target edge (fromPos, toPos): a + u*(b-a) + lambda*((1-u)*na +
// u*nb) == fromPos + s*(toPos-fromPos), returning the target-edge
// parameter s, domain-edge parameter u, and lambda.
func edgeCrossing(a, b, na, nb, fromPos, toPos geom.Vec3, epsDet float64) (s, u, lambda float64, ok bool) {
	s, u, lambda = 0.5, 0.5, 0
	for i := 0; i < maxNewtonIters; i++ {
		edgePos := a.Add(b.Sub(a).Scale(u))
		normal := na.Add(nb.Sub(na).Scale(u))
		target := fromPos.Add(toPos.Sub(fromPos).Scale(s))
		f := edgePos.Add(normal.Scale(lambda)).Sub(target)
		if f.Norm() < newtonConvergence {
			return s, u, lambda, true
		}
		dU := b.Sub(a).Add(nb.Sub(na).Scale(lambda))
		dLambda := normal
		dS := toPos.Sub(fromPos).Scale(-1)
		jac := geom.Mat3{Col0: dU, Col1: dLambda, Col2: dS}
		delta, solved := geom.Solve3x3(jac, f, epsDet)
		if !solved {
			return 0, 0, 0, false
		}
		u -= delta.X
		lambda -= delta.Y
		s -= delta.Z
	}
	return 0, 0, 0, false
}

// pendingEdge is one queue entry of the edge-insertion work list,
// ordered by insertion sequence (UID) so InsertAll processes edges in
// the order their target triangles were discovered, mirroring
// model3d's splaytree-backed neighbor queue.
type pendingEdge struct {
	UID      int
	From, To int
}

func (p *pendingEdge) Compare(other *pendingEdge) int {
	if p.UID < other.UID {
		return -1
	} else if p.UID > other.UID {
		return 1
	}
	return 0
}

// InsertAll walks every edge of every target triangle exactly once,
// via a splaytree-backed pending queue, inserting each into the domain
// PSurface.
func (p *Projector) InsertAll() error {
	queue := &splaytree.Tree[*pendingEdge]{}
	seen := map[[2]int]bool{}
	uid := 0
	push := func(a, b int) {
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		queue.Insert(&pendingEdge{UID: uid, From: a, To: b})
		uid++
	}
	for _, tri := range p.Target.Triangles() {
		push(tri.Points[0], tri.Points[1])
		push(tri.Points[1], tri.Points[2])
		push(tri.Points[2], tri.Points[0])
	}
	for queue.Len() > 0 {
		next := queue.Min()
		queue.Delete(next)
		if err := p.InsertEdge(next.From, next.To); err != nil {
			return err
		}
	}
	return nil
}
