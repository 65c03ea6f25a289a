package mesh

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/notargets/gosimplex/geometry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectivity(t *testing.T) {
	c := NewConnectivity([][]int{{0, 1}, {}, {2, 3, 4}})
	assert.Equal(t, 3, c.Size())
	assert.Equal(t, 0, c.Len(1))
	assert.Equal(t, []int{2, 3, 4}, c.Row(2))
	assert.Empty(t, c.Row(1))

	// Rows alias the arena
	r := c.Row(2)
	r[0], r[2] = r[2], r[0]
	assert.Equal(t, []int{4, 3, 2}, c.Row(2))
	// and cannot grow into the next row
	assert.Equal(t, 2, cap(c.Row(0)))

	tr := c.Transpose(5)
	if diff := cmp.Diff([][]int{{0}, {0}, {2}, {2}, {2}}, rowsOf(tr)); diff != "" {
		t.Errorf("transpose (-want +got):\n%s", diff)
	}

	var nilConn *Connectivity
	assert.True(t, nilConn.Empty())
	assert.Equal(t, 0, nilConn.Size())
	assert.Nil(t, nilConn.Row(0))
	assert.True(t, NewConnectivity(nil).Empty())

	clone := c.Clone()
	assert.True(t, clone.Equal(c))
	clone.Row(0)[0] = 9
	assert.False(t, clone.Equal(c))

	u := NewUniformConnectivity(3, 4)
	assert.Equal(t, 3, u.Size())
	assert.Len(t, u.Row(2), 4)
}

func TestTopologyGlobalIndices(t *testing.T) {
	m := unitTet(t)
	assert.Equal(t, []int{0, 1, 2, 3}, m.GlobalVertexIndices())
	assert.True(t, errors.Is(m.SetGlobalVertexIndices([]int{0, 1, 2}), ErrConfiguration))
	assert.True(t, errors.Is(m.SetGlobalVertexIndices([]int{0, 1, 1, 3}), ErrConfiguration))

	global := []int{8, 6, 4, 2}
	require.NoError(t, m.SetGlobalVertexIndices(global))
	global[0] = 0
	assert.Equal(t, []int{8, 6, 4, 2}, m.GlobalVertexIndices())
	assert.Equal(t, 4, m.Vertex(2).GlobalIndex())
}

func TestInitKuhnCube(t *testing.T) {
	m := kuhnCube(t)
	assert.Equal(t, 8, m.NumVertices())
	assert.Equal(t, 6, m.NumCells())
	assert.Equal(t, 0, m.NumEntities(1))

	ne, err := m.Init(1)
	require.NoError(t, err)
	assert.Equal(t, 19, ne)
	nf, err := m.Init(2)
	require.NoError(t, err)
	assert.Equal(t, 18, nf)
	// Euler characteristic of a ball
	assert.Equal(t, 1, m.NumVertices()-ne+nf-m.NumCells())

	// Repeated initialization is a no-op
	again, err := m.Init(1)
	require.NoError(t, err)
	assert.Equal(t, ne, again)

	require.NoError(t, m.InitConnectivity(0, 3))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, m.Topology().Connectivity(0, 3).Row(0))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, m.Topology().Connectivity(0, 3).Row(7))
	assert.Equal(t, []int{0, 1}, m.Topology().Connectivity(0, 3).Row(1))

	require.NoError(t, m.InitConnectivity(2, 1))
	fe := m.Topology().Connectivity(2, 1)
	ev := m.Topology().Connectivity(1, 0)
	fv := m.Topology().Connectivity(2, 0)
	for f := 0; f < nf; f++ {
		require.Equal(t, 3, fe.Len(f))
		for _, e := range fe.Row(f) {
			assert.True(t, subset(ev.Row(e), fv.Row(f)))
		}
	}

	require.NoError(t, m.InitConnectivity(1, 2))
	ef := m.Topology().Connectivity(1, 2)
	var incidences int
	for e := 0; e < ne; e++ {
		incidences += ef.Len(e)
	}
	assert.Equal(t, 3*nf, incidences)

	t.Run("invalid dimensions", func(t *testing.T) {
		_, err := m.Init(4)
		assert.True(t, errors.Is(err, ErrConfiguration))
		_, err = m.Init(-1)
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.True(t, errors.Is(m.InitConnectivity(1, 1), ErrConfiguration))
		assert.True(t, errors.Is(m.InitConnectivity(0, 4), ErrConfiguration))
	})
}

func TestAdjacency(t *testing.T) {
	t.Run("two tetrahedra", func(t *testing.T) {
		m := twoTets(t)
		assert.Equal(t, [][]int{{1}, {0}}, m.CellNeighbors())
		assert.Equal(t, []int{1, 2, 2, 2, 1}, m.VertexValence())
		bf, err := m.BoundaryFacets()
		require.NoError(t, err)
		assert.Len(t, bf, 6)
		assert.Equal(t, 7, m.NumEntities(2))
	})
	t.Run("kuhn cube", func(t *testing.T) {
		m := kuhnCube(t)
		want := [][]int{{1, 2}, {0, 4}, {0, 3}, {2, 5}, {1, 5}, {3, 4}}
		if diff := cmp.Diff(want, m.CellNeighbors()); diff != "" {
			t.Errorf("cell neighbors (-want +got):\n%s", diff)
		}
		assert.Equal(t, []int{6, 2, 2, 2, 2, 2, 2, 6}, m.VertexValence())
		bf, err := m.BoundaryFacets()
		require.NoError(t, err)
		assert.Len(t, bf, 12)
		for _, f := range bf {
			assert.True(t, NewFacet(m, f).Exterior())
		}
		var interior int
		for f := 0; f < m.NumEntities(2); f++ {
			if !NewFacet(m, f).Exterior() {
				interior++
				// Every interior facet holds the main diagonal
				v := NewFacet(m, f).Entities(0)
				assert.Contains(t, v, 0)
				assert.Contains(t, v, 7)
			}
		}
		assert.Equal(t, 6, interior)
	})
	t.Run("triangles", func(t *testing.T) {
		m, err := NewMesh(Triangle, 2, [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, [][]int{{0, 1, 2}, {1, 3, 2}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1}, {0}}, m.CellNeighbors())
		bf, err := m.BoundaryFacets()
		require.NoError(t, err)
		assert.Len(t, bf, 4)
	})
	t.Run("intervals", func(t *testing.T) {
		m, err := NewMesh(Interval, 1, [][]float64{{0}, {1}, {2}, {3}}, [][]int{{0, 1}, {1, 2}, {2, 3}})
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1}, {0, 2}, {1}}, m.CellNeighbors())
		bf, err := m.BoundaryFacets()
		require.NoError(t, err)
		assert.Equal(t, []int{0, 3}, bf)
	})
}

func TestEntities(t *testing.T) {
	m := unitTet(t)
	_, err := m.Init(1)
	require.NoError(t, err)

	var total float64
	for e := 0; e < m.NumEntities(1); e++ {
		total += NewEdge(m, e).Length()
	}
	assert.InDelta(t, 3+3*math.Sqrt2, total, 1.e-14)

	assertPoint(t, geometry.NewPoint(0.25, 0.25, 0.25), m.Cell(0).Midpoint(), 1.e-15)
	assertPoint(t, geometry.NewPoint(0, 1, 0), m.Vertex(2).Point(), 0)
	assert.Equal(t, []float64{0, 0, 1}, m.Vertex(3).X())
	assert.Equal(t, 4, m.Cell(0).NumEntities(0))
	assert.Equal(t, 6, m.Cell(0).NumEntities(1))

	// Edge 0 joins vertices 2 and 3, edge 5 joins 0 and 1
	assert.True(t, NewEdge(m, 0).Incident(m.Vertex(3).Entity))
	assert.False(t, NewEdge(m, 0).Incident(NewEdge(m, 5).Entity))
	assert.True(t, NewEdge(m, 0).Incident(NewEdge(m, 1).Entity))

	assert.Equal(t, "<Mesh of topological dimension 3 (tetrahedra) with 4 vertices and 1 cells>", m.String())
}

func TestEditor(t *testing.T) {
	t.Run("embedding", func(t *testing.T) {
		for _, gdim := range []int{0, 4} {
			assert.True(t, errors.Is(NewEditor().Open(Interval, gdim), ErrGeometry))
		}
		assert.True(t, errors.Is(NewEditor().Open(Tetrahedron, 2), ErrGeometry))
		assert.True(t, errors.Is(NewEditor().Open(CellKind(5), 3), ErrConfiguration))
	})
	t.Run("closed editor", func(t *testing.T) {
		ed := NewEditor()
		assert.True(t, errors.Is(ed.AddVertex(0, 1), ErrConfiguration))
		assert.True(t, errors.Is(ed.InitCells(1), ErrConfiguration))
		_, err := ed.Close()
		assert.True(t, errors.Is(err, ErrConfiguration))
		assert.Equal(t, "<closed mesh editor>", ed.String())
	})
	t.Run("add out of range", func(t *testing.T) {
		ed := NewEditor()
		require.NoError(t, ed.Open(Triangle, 2))
		assert.True(t, errors.Is(ed.Open(Triangle, 2), ErrConfiguration))
		require.NoError(t, ed.InitVertices(3))
		require.NoError(t, ed.InitCells(1))
		assert.True(t, errors.Is(ed.AddVertex(3, 0, 0), ErrConfiguration))
		assert.True(t, errors.Is(ed.AddVertex(0, 0, 0, 0), ErrGeometry))
		assert.True(t, errors.Is(ed.AddCell(1, 0, 1, 2), ErrConfiguration))
		assert.True(t, errors.Is(ed.AddCell(0, 0, 1), ErrConfiguration))
		assert.True(t, errors.Is(ed.AddCell(0, 0, 1, 3), ErrConfiguration))
		_, err := ed.Point(1)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})
	t.Run("missing entries", func(t *testing.T) {
		ed := NewEditor()
		require.NoError(t, ed.Open(Triangle, 2))
		require.NoError(t, ed.InitVertices(3))
		require.NoError(t, ed.AddVertex(0, 0, 0))
		require.NoError(t, ed.AddVertex(1, 1, 0))
		require.NoError(t, ed.InitCells(1))
		require.NoError(t, ed.AddCell(0, 0, 1, 2))
		_, err := ed.Close()
		assert.True(t, errors.Is(err, ErrConfiguration))

		require.NoError(t, ed.AddVertexPoint(2, geometry.NewPoint(0, 1, 0)))
		p, err := ed.Point(2)
		require.NoError(t, err)
		assertPoint(t, geometry.NewPoint(0, 1, 0), p, 0)
		m, err := ed.Close()
		require.NoError(t, err)
		assert.Equal(t, 3, m.NumVertices())
		assert.Equal(t, []int{0, 1, 2}, m.GlobalVertexIndices())

		// The editor cannot write to the mesh once it has been handed out
		assert.True(t, errors.Is(ed.AddVertex(0, 5, 5), ErrConfiguration))
		assert.Equal(t, []float64{0, 0}, m.Vertex(0).X())
	})
}

func TestStatistics(t *testing.T) {
	t.Run("unit tetrahedron", func(t *testing.T) {
		s, err := ComputeStatistics(unitTet(t))
		require.NoError(t, err)
		assert.InDelta(t, 1., s.Condition.Max, 1.e-12)
		assert.InDelta(t, 1./6., s.TotalVolume, 1.e-15)
		assert.Equal(t, 0., s.Volume.StdDev)
		assert.Equal(t, 4, s.NumBoundaryFacets)
	})
	t.Run("kuhn cube", func(t *testing.T) {
		s, err := ComputeStatistics(kuhnCube(t))
		require.NoError(t, err)
		assert.Equal(t, Tetrahedron, s.Kind)
		assert.Equal(t, 8, s.NumVertices)
		assert.Equal(t, 19, s.NumEdges)
		assert.Equal(t, 18, s.NumFacets)
		assert.Equal(t, 6, s.NumCells)
		assert.Equal(t, 12, s.NumBoundaryFacets)
		assert.Equal(t, 6, s.MaxValence)
		assert.InDelta(t, 1., s.TotalVolume, 1.e-14)
		assert.InDelta(t, 1./6., s.Volume.Min, 1.e-15)
		assert.InDelta(t, 1./6., s.Volume.Max, 1.e-15)
		assert.InDelta(t, math.Sqrt(3), s.Diameter.Mean, 1.e-14)
		assert.GreaterOrEqual(t, s.Condition.Min, 1.)
		assertPoint(t, geometry.NewPoint(0, 0, 0), s.Bounds.XMin, 0)
		assertPoint(t, geometry.NewPoint(1, 1, 1), s.Bounds.XMax, 0)
	})
	t.Run("report", func(t *testing.T) {
		fine, err := RefineLevels(kuhnCube(t), 3)
		require.NoError(t, err)
		s, err := ComputeStatistics(fine)
		require.NoError(t, err)
		var buf bytes.Buffer
		s.Print(&buf)
		assert.Contains(t, buf.String(), "Cells: 3,072")
		assert.Contains(t, buf.String(), "Cell type: tetrahedron")
		assert.Contains(t, buf.String(), "Total volume: 1")
	})
	t.Run("points", func(t *testing.T) {
		m, err := NewMesh(Point, 2, [][]float64{{0, 0}, {1, 2}}, [][]int{{0}, {1}})
		require.NoError(t, err)
		s, err := ComputeStatistics(m)
		require.NoError(t, err)
		assert.Equal(t, 2, s.NumCells)
		assert.Equal(t, 1, s.MaxValence)
		var buf bytes.Buffer
		s.Print(&buf)
		assert.NotContains(t, buf.String(), "Total volume")
	})
}
