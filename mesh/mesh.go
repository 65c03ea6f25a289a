package mesh

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"
)

// Mesh owns the vertex coordinates and the connectivity tables of a
// simplicial mesh of a single cell kind. Meshes are created by a
// Editor; afterwards only Init, InitConnectivity and Order modify them
// and none of these may run concurrently with any other use of the mesh.
type Mesh struct {
	cellType CellType
	topology *Topology
	geometry *Geometry
}

func (m *Mesh) CellType() CellType  { return m.cellType }
func (m *Mesh) Kind() CellKind      { return m.cellType.Kind() }
func (m *Mesh) Topology() *Topology { return m.topology }
func (m *Mesh) Geometry() *Geometry { return m.geometry }

// Dim is the topological dimension.
func (m *Mesh) Dim() int { return m.topology.Dim() }

// GeometricDim is the embedding dimension.
func (m *Mesh) GeometricDim() int { return m.geometry.Dim() }

func (m *Mesh) NumVertices() int { return m.topology.Size(0) }
func (m *Mesh) NumCells() int    { return m.topology.Size(m.Dim()) }

// NumEntities is zero for dimensions that have not been initialized.
func (m *Mesh) NumEntities(d int) int { return m.topology.Size(d) }

func (m *Mesh) Cell(i int) Cell     { return NewCell(m, i) }
func (m *Mesh) Vertex(i int) Vertex { return NewVertex(m, i) }

func (m *Mesh) Cells() (cells []Cell) {
	cells = make([]Cell, m.NumCells())
	for i := range cells {
		cells[i] = NewCell(m, i)
	}
	return
}

func (m *Mesh) GlobalVertexIndices() []int {
	return m.topology.GlobalVertexIndices()
}

func (m *Mesh) SetGlobalVertexIndices(global []int) error {
	return m.topology.SetGlobalVertexIndices(global)
}

// Init computes the entities of dimension d with their (d, 0) and
// (dim, d) connectivity and returns their number.
func (m *Mesh) Init(d int) (int, error) {
	tdim := m.Dim()
	if d < 0 || d > tdim {
		return 0, configErrorf("cannot initialize entities of dimension %d in mesh of dimension %d", d, tdim)
	}
	if d == 0 || d == tdim || !m.topology.Empty(tdim, d) {
		return m.topology.Size(d), nil
	}
	var (
		cv       = m.topology.Connectivity(tdim, 0)
		nc       = m.NumCells()
		index    = make(map[[4]int]int)
		rows     [][]int
		cellRows = make([][]int, nc)
	)
	for c := 0; c < nc; c++ {
		ents, err := m.cellType.CreateEntities(d, cv.Row(c))
		if err != nil {
			return 0, err
		}
		cellRows[c] = make([]int, len(ents))
		for i, ev := range ents {
			key := entityKey(ev)
			id, ok := index[key]
			if !ok {
				id = len(rows)
				index[key] = id
				rows = append(rows, ev)
			}
			cellRows[c][i] = id
		}
	}
	m.topology.set(d, 0, NewConnectivity(rows))
	m.topology.set(tdim, d, NewConnectivity(cellRows))
	m.topology.numEntities[d] = len(rows)
	log.WithFields(log.Fields{
		"dim":      d,
		"entities": len(rows),
		"cells":    nc,
	}).Debug("computed mesh entities")
	return len(rows), nil
}

// InitConnectivity computes the (d0, d1) connectivity, computing the
// entities of both dimensions first if needed.
func (m *Mesh) InitConnectivity(d0, d1 int) error {
	tdim := m.Dim()
	if d0 < 0 || d0 > tdim || d1 < 0 || d1 > tdim || d0 == d1 {
		return configErrorf("cannot compute connectivity (%d, %d) in mesh of dimension %d", d0, d1, tdim)
	}
	if !m.topology.Empty(d0, d1) {
		return nil
	}
	for _, d := range []int{d0, d1} {
		if _, err := m.Init(d); err != nil {
			return err
		}
	}
	switch {
	case d0 < d1:
		if err := m.InitConnectivity(d1, d0); err != nil {
			return err
		}
		m.topology.set(d0, d1, m.topology.Connectivity(d1, d0).Transpose(m.topology.Size(d0)))
	default:
		m.topology.set(d0, d1, m.intersect(d0, d1))
	}
	log.WithFields(log.Fields{"d0": d0, "d1": d1}).Debug("computed mesh connectivity")
	return nil
}

// intersect lists, for each entity of dimension d0 > d1, the entities of
// dimension d1 of any cell containing it whose vertices are a subset of its
// own, in the order they appear in the first such cell.
func (m *Mesh) intersect(d0, d1 int) *Connectivity {
	var (
		tdim  = m.Dim()
		n0    = m.topology.Size(d0)
		rows  = make([][]int, n0)
		done  = make([]bool, n0)
		v0    = m.topology.Connectivity(d0, 0)
		v1    = m.topology.Connectivity(d1, 0)
		cells = m.topology.Connectivity(tdim, d0)
		c1    = m.topology.Connectivity(tdim, d1)
	)
	for c := 0; c < m.NumCells(); c++ {
		var e0s []int
		if d0 == tdim {
			e0s = []int{c}
		} else {
			e0s = cells.Row(c)
		}
		for _, e0 := range e0s {
			if done[e0] {
				continue
			}
			done[e0] = true
			verts := v0.Row(e0)
			for _, e1 := range c1.Row(c) {
				if subset(v1.Row(e1), verts) {
					rows[e0] = append(rows[e0], e1)
				}
			}
		}
	}
	return NewConnectivity(rows)
}

// Order applies the canonical ordering of the cell kind to every cell using
// the mesh's global vertex numbering.
func (m *Mesh) Order() error {
	l2g := m.GlobalVertexIndices()
	for c := 0; c < m.NumCells(); c++ {
		if err := m.cellType.Order(NewCell(m, c), l2g); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"cells": m.NumCells()}).Debug("ordered mesh")
	return nil
}

// Ordered reports whether ordering the mesh again would change nothing.
func (m *Mesh) Ordered() (bool, error) {
	c := m.Clone()
	if err := c.Order(); err != nil {
		return false, err
	}
	return c.topology.Equal(m.topology), nil
}

// Clone deep copies the topology and geometry.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		cellType: m.cellType,
		topology: m.topology.Clone(),
		geometry: &Geometry{dim: m.geometry.dim, x: slices.Clone(m.geometry.x)},
	}
}

func (m *Mesh) String() string {
	return fmt.Sprintf("<Mesh of topological dimension %d (%s) with %d vertices and %d cells>",
		m.Dim(), m.cellType.Description(true), m.NumVertices(), m.NumCells())
}

func entityKey(v []int) (key [4]int) {
	key = [4]int{-1, -1, -1, -1}
	copy(key[:], v)
	slices.Sort(key[:len(v)])
	return
}

func subset(a, b []int) bool {
	for _, v := range a {
		if !incident(b, v) {
			return false
		}
	}
	return true
}
