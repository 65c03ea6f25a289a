package mesh

import (
	"slices"

	"github.com/james-bowman/sparse"
)

// CellVertexIncidence is the NumCells x NumVertices 0/1 matrix of the cell
// vertex lists.
func (m *Mesh) CellVertexIncidence() *sparse.CSR {
	var (
		nc  = m.NumCells()
		cv  = m.topology.Connectivity(m.Dim(), 0)
		dok = sparse.NewDOK(nc, m.NumVertices())
	)
	for c := 0; c < nc; c++ {
		for _, v := range cv.Row(c) {
			dok.Set(c, v, 1)
		}
	}
	return dok.ToCSR()
}

// CellNeighbors lists for every cell the cells it shares a facet with. Two
// simplices share a facet exactly when they share Dim() vertices, which is
// the off diagonal entry of C·Cᵀ for the incidence matrix C.
func (m *Mesh) CellNeighbors() (neighbors [][]int) {
	var (
		nc   = m.NumCells()
		tdim = m.Dim()
	)
	neighbors = make([][]int, nc)
	if nc == 0 || tdim == 0 {
		return
	}
	C := m.CellVertexIncidence()
	CCt := sparse.NewCSR(nc, nc, nil, nil, nil)
	CCt.Mul(C, C.T())
	CCt.DoNonZero(func(i, j int, v float64) {
		if i != j && int(v+0.5) == tdim {
			neighbors[i] = append(neighbors[i], j)
		}
	})
	for _, n := range neighbors {
		slices.Sort(n)
	}
	return
}

// VertexValence is the number of cells touching each vertex.
func (m *Mesh) VertexValence() (valence []int) {
	valence = make([]int, m.NumVertices())
	if m.NumCells() == 0 {
		return
	}
	m.CellVertexIncidence().DoNonZero(func(_, v int, _ float64) {
		valence[v]++
	})
	return
}

// BoundaryFacets returns the facets that belong to a single cell.
func (m *Mesh) BoundaryFacets() (facets []int, err error) {
	tdim := m.Dim()
	if tdim == 0 {
		return nil, nil
	}
	if err = m.InitConnectivity(tdim-1, tdim); err != nil {
		return nil, err
	}
	fc := m.topology.Connectivity(tdim-1, tdim)
	for f := 0; f < fc.Size(); f++ {
		if fc.Len(f) == 1 {
			facets = append(facets, f)
		}
	}
	return
}
