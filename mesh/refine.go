package mesh

import (
	"slices"

	log "github.com/sirupsen/logrus"
)

// UniformRefine returns the regular refinement of m: one new vertex at the
// midpoint of every edge, numbered NumVertices() + edge index, and 2^dim
// children per cell. Vertices keep their global numbers and the midpoints
// are numbered after the largest of them, so the refined mesh orders
// consistently with its parent.
func UniformRefine(m *Mesh) (refined *Mesh, err error) {
	tdim := m.Dim()
	if tdim == 0 {
		return nil, configErrorf("cannot refine a mesh of %s", m.CellType().Description(true))
	}
	numEdges, err := m.Init(1)
	if err != nil {
		return nil, err
	}
	var (
		nv       = m.NumVertices()
		nc       = m.NumCells()
		children = 1 << tdim
		g        = m.Geometry()
		ed       = NewEditor()
	)
	if err = ed.Open(m.Kind(), g.Dim()); err != nil {
		return
	}
	if err = ed.InitVertices(nv + numEdges); err != nil {
		return
	}
	for v := 0; v < nv; v++ {
		if err = ed.AddVertex(v, g.X(v)...); err != nil {
			return
		}
	}
	for e := 0; e < numEdges; e++ {
		if err = ed.AddVertexPoint(nv+e, NewEntity(m, 1, e).Midpoint()); err != nil {
			return
		}
	}
	if err = ed.InitCells(nc * children); err != nil {
		return
	}
	var currentCell int
	for c := 0; c < nc; c++ {
		if err = m.CellType().Refine(NewCell(m, c), ed, &currentCell); err != nil {
			return
		}
	}
	if refined, err = ed.Close(); err != nil {
		return
	}

	parent := m.GlobalVertexIndices()
	global := make([]int, nv+numEdges)
	copy(global, parent)
	next := slices.Max(append([]int{-1}, parent...)) + 1
	for e := 0; e < numEdges; e++ {
		global[nv+e] = next + e
	}
	if err = refined.SetGlobalVertexIndices(global); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"kind":     m.Kind().String(),
		"cells":    nc,
		"children": currentCell,
		"vertices": refined.NumVertices(),
	}).Debug("refined mesh")
	return refined, nil
}

// RefineLevels applies UniformRefine n times.
func RefineLevels(m *Mesh, n int) (refined *Mesh, err error) {
	if n < 0 {
		return nil, configErrorf("negative refinement level %d", n)
	}
	refined = m
	for level := 0; level < n; level++ {
		if refined, err = UniformRefine(refined); err != nil {
			return nil, err
		}
	}
	return
}
