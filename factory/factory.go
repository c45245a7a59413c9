// Package factory assembles the components of packages contact,
// psurface and project into the single build entry point of spec.md
// §4.H: given two target surfaces and a contact tolerance, produce a
// PSurface parametrizing the contact patch of surface one over
// surface two.
package factory

import (
	"github.com/pkg/errors"

	"github.com/aburch/psurface/contact"
	"github.com/aburch/psurface/geom"
	"github.com/aburch/psurface/project"
	"github.com/aburch/psurface/psurface"
	"github.com/aburch/psurface/surface"
)

// Result bundles a built PSurface with the projection build report and
// the explicit target surface SetupOriginalSurface recovers from it,
// so a caller can inspect how much of the contact patch projected
// successfully without re-deriving it.
type Result struct {
	Surface         *psurface.Surface
	Report          project.BuildReport
	OriginalSurface *surface.Mem
}

// Build runs the full construction order of spec.md §4.H:
//
//  1. select the contact boundary of s1 against s2 within eps
//     (package contact);
//  2. seed a PSurface whose domain mesh is s1's contact sub-mesh
//     (package psurface);
//  3. project every vertex and edge of s2's contact sub-mesh onto that
//     domain (package project);
//  4. recover an explicit target surface from the result and rebuild
//     every graph's point-location structure.
//
// obs overrides the domain's per-vertex projection direction; nil uses
// averaged one-ring normals.
func Build(s1, s2 surface.TargetSurface, eps float64, obs project.ObserverDirections) (*Result, error) {
	domainBoundary, targetBoundary := contact.SelectContactBoundaries(s1, s2, eps)

	domainBase, err := restrictToBase(s1, domainBoundary)
	if err != nil {
		return nil, errors.Wrap(err, "building domain mesh from contact boundary")
	}
	targetMem := restrictToMem(s2, targetBoundary)

	ps := psurface.New(domainBase)

	proj := project.NewProjector(ps, targetMem, obs, eps)
	if err := proj.ProjectVertices(); err != nil {
		return nil, errors.Wrap(err, "projecting vertices")
	}
	if err := proj.InsertAll(); err != nil {
		return nil, errors.Wrap(err, "inserting edges")
	}

	for tri, g := range ps.Graphs {
		if g == nil || !ps.Base.TriAlive(tri) {
			continue
		}
		g.AdjustTouchingNodes()
		g.InsertExtraEdges()
		if err := g.CreatePointLocationStructure(); err != nil {
			return nil, errors.Wrapf(err, "building point location structure for triangle %d", tri)
		}
	}
	ps.HasUpToDatePointLocationStructure = true

	original, err := ps.SetupOriginalSurface(targetMem)
	if err != nil {
		return nil, errors.Wrap(err, "recovering explicit target surface")
	}

	return &Result{Surface: ps, Report: proj.Report, OriginalSurface: original}, nil
}

// factoryStage tracks the construction order spec.md §4.H enforces on
// Factory: a target surface, then domain vertices, then domain
// simplices, then a single Build.
type factoryStage int

const (
	stageNeedTarget factoryStage = iota
	stageVertices
	stageSimplices
	stageDone
)

// Factory is the incremental façade of spec.md §4.H: unlike
// Build, which derives its domain mesh from a contact-boundary search
// over an already-complete target surface, Factory lets a caller
// assemble the domain mesh vertex by vertex and triangle by triangle
// (e.g. while streaming it in from a mesh reader) before running the
// same projection pipeline over it. It enforces SetTargetSurface,
// then InsertVertex*, then InsertSimplex*, then one Build.
type Factory struct {
	domain *surface.Base
	target surface.TargetSurface
	eps    float64
	obs    project.ObserverDirections
	stage  factoryStage
}

// NewFactory creates an empty Factory. eps and obs are the contact
// tolerance and per-vertex projection direction override passed to the
// eventual projection pass (obs nil uses averaged one-ring normals).
func NewFactory(eps float64, obs project.ObserverDirections) *Factory {
	return &Factory{domain: surface.NewBase(), eps: eps, obs: obs}
}

// SetTargetSurface records the surface the assembled domain will be
// projected onto. It must be called exactly once, before any
// InsertVertex or InsertSimplex call.
func (f *Factory) SetTargetSurface(target surface.TargetSurface) error {
	if f.stage != stageNeedTarget {
		return errors.Wrap(surface.ErrInvalidInput, "SetTargetSurface called more than once, or after InsertVertex/InsertSimplex")
	}
	f.target = target
	f.stage = stageVertices
	return nil
}

// InsertVertex appends a domain vertex, returning its index for use in
// a later InsertSimplex call. It requires SetTargetSurface to have run
// first, and may not be called once any InsertSimplex has run.
func (f *Factory) InsertVertex(pos geom.Vec3) (int, error) {
	switch f.stage {
	case stageNeedTarget:
		return 0, errors.Wrap(surface.ErrInvalidInput, "InsertVertex called before SetTargetSurface")
	case stageSimplices, stageDone:
		return 0, errors.Wrap(surface.ErrInvalidInput, "InsertVertex called after the first InsertSimplex")
	}
	return f.domain.NewVertex(pos), nil
}

// InsertSimplex appends a domain triangle referencing three vertices
// already added via InsertVertex. It requires SetTargetSurface to have
// run first, and locks out further InsertVertex calls.
func (f *Factory) InsertSimplex(v0, v1, v2 int) (int, error) {
	if f.stage == stageNeedTarget {
		return 0, errors.Wrap(surface.ErrInvalidInput, "InsertSimplex called before SetTargetSurface")
	}
	if f.stage == stageDone {
		return 0, errors.Wrap(surface.ErrInvalidInput, "InsertSimplex called after Build")
	}
	f.stage = stageSimplices
	return f.domain.AddTriangle(v0, v1, v2)
}

// Build runs the projection pipeline over the incrementally assembled
// domain mesh and recovers the explicit target surface it maps onto,
// then retires this Factory. Per spec.md §4.H, it leaves
// Surface.HasUpToDatePointLocationStructure false: unlike the
// contact-boundary Build, it does not rebuild point-location
// structures itself, since a caller driving the incremental API may
// still want to mutate the result (e.g. InvertTriangles) before paying
// for that pass.
func (f *Factory) Build() (*Result, error) {
	if f.stage == stageNeedTarget {
		return nil, errors.Wrap(surface.ErrInvalidInput, "Build called before SetTargetSurface")
	}
	if f.stage == stageDone {
		return nil, errors.Wrap(surface.ErrInvalidInput, "Build called twice")
	}
	f.stage = stageDone

	ps := psurface.New(f.domain)
	proj := project.NewProjector(ps, f.target, f.obs, f.eps)
	if err := proj.ProjectVertices(); err != nil {
		return nil, errors.Wrap(err, "projecting vertices")
	}
	if err := proj.InsertAll(); err != nil {
		return nil, errors.Wrap(err, "inserting edges")
	}

	original, err := ps.SetupOriginalSurface(f.target)
	if err != nil {
		return nil, errors.Wrap(err, "recovering explicit target surface")
	}
	return &Result{Surface: ps, Report: proj.Report, OriginalSurface: original}, nil
}

// restrictToBase builds a fresh mesh arena containing only the
// vertices and triangles b marks, renumbering vertex indices to the
// compacted range the arena requires.
func restrictToBase(ts surface.TargetSurface, b contact.Boundary) (*surface.Base, error) {
	base := surface.NewBase()
	remap := make(map[int]int, b.NumVertices())
	pts := ts.Points()
	for i, keep := range b.Vertices {
		if !keep {
			continue
		}
		remap[i] = base.NewVertex(pts[i])
	}

	tris := ts.Triangles()
	triSet := b.Triangles
	if triSet == nil {
		triSet = make([]int, len(tris))
		for i := range tris {
			triSet[i] = i
		}
	}
	for _, ti := range triSet {
		t := tris[ti]
		v0, ok0 := remap[t.Points[0]]
		v1, ok1 := remap[t.Points[1]]
		v2, ok2 := remap[t.Points[2]]
		if !ok0 || !ok1 || !ok2 {
			return nil, errors.Wrapf(surface.ErrInvalidInput, "contact triangle %d references a vertex outside the selected boundary", ti)
		}
		if _, err := base.AddTriangle(v0, v1, v2); err != nil {
			return nil, err
		}
	}
	return base, nil
}

// restrictToMem builds an explicit surface.Mem containing only the
// vertices and triangles b marks, preserving patch metadata.
func restrictToMem(ts surface.TargetSurface, b contact.Boundary) *surface.Mem {
	remap := make(map[int]int, b.NumVertices())
	pts := ts.Points()
	var outPts []geom.Vec3
	for i, keep := range b.Vertices {
		if !keep {
			continue
		}
		remap[i] = len(outPts)
		outPts = append(outPts, pts[i])
	}

	tris := ts.Triangles()
	var outTris []surface.TargetTriangle
	for _, ti := range b.Triangles {
		t := tris[ti]
		outTris = append(outTris, surface.TargetTriangle{
			Points:      [3]int{remap[t.Points[0]], remap[t.Points[1]], remap[t.Points[2]]},
			Patch:       t.Patch,
			InnerRegion: t.InnerRegion,
			OuterRegion: t.OuterRegion,
			BoundaryID:  t.BoundaryID,
		})
	}
	return surface.NewMem(outPts, outTris)
}
