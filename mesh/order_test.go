package mesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkTetOrdered asserts every ordering rule on cell c.
func checkTetOrdered(t *testing.T, c Cell) {
	t.Helper()
	var (
		topo = c.Mesh().Topology()
		g    = c.Mesh().GlobalVertexIndices()
		ev   = topo.Connectivity(1, 0)
		fv   = topo.Connectivity(2, 0)
		fe   = topo.Connectivity(2, 1)
		cv   = c.Entities(0)
	)
	ascending := func(v []int) bool {
		for i := 1; i < len(v); i++ {
			if g[v[i-1]] >= g[v[i]] {
				return false
			}
		}
		return true
	}
	assert.Truef(t, ascending(cv), "cell %d vertices %v", c.Index(), cv)
	for m, e := range c.Entities(1) {
		assert.Truef(t, ascending(ev.Row(e)), "edge %d vertices %v", e, ev.Row(e))
		for _, lv := range tetEdgeExclusion[m] {
			assert.Falsef(t, incident(ev.Row(e), cv[lv]), "cell %d edge slot %d touches vertex %d", c.Index(), m, lv)
		}
	}
	for i, f := range c.Entities(2) {
		assert.Truef(t, ascending(fv.Row(f)), "facet %d vertices %v", f, fv.Row(f))
		assert.Falsef(t, incident(fv.Row(f), cv[i]), "cell %d facet slot %d touches vertex %d", c.Index(), i, i)
		for k, e := range fe.Row(f) {
			assert.Falsef(t, incident(ev.Row(e), fv.Row(f)[k]), "facet %d edge slot %d touches its vertex", f, k)
		}
	}
}

func initAll(t *testing.T, m *Mesh) {
	t.Helper()
	require.NoError(t, m.InitConnectivity(2, 1))
	for d := 1; d < m.Dim(); d++ {
		_, err := m.Init(d)
		require.NoError(t, err)
	}
}

func TestOrderTetrahedra(t *testing.T) {
	for _, tt := range []struct {
		name   string
		global []int
	}{
		{"identity numbering", nil},
		{"permuted numbering", []int{40, 10, 30, 20, 0}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			m := twoTets(t)
			if tt.global != nil {
				require.NoError(t, m.SetGlobalVertexIndices(tt.global))
			}
			initAll(t, m)
			ordered, err := m.Ordered()
			require.NoError(t, err)
			assert.False(t, ordered)

			require.NoError(t, m.Order())
			for _, c := range m.Cells() {
				checkTetOrdered(t, c)
			}
			ordered, err = m.Ordered()
			require.NoError(t, err)
			assert.True(t, ordered)
		})
	}
}

// Both cells see the shared facet through the same entity, so they must
// agree on the position of the facet's vertices and edges.
func TestOrderSharedFacet(t *testing.T) {
	m := twoTets(t)
	require.NoError(t, m.SetGlobalVertexIndices([]int{40, 10, 30, 20, 0}))
	initAll(t, m)
	require.NoError(t, m.Order())

	shared := -1
	for _, f := range m.Cell(0).Entities(2) {
		if incident(m.Cell(1).Entities(2), f) {
			shared = f
		}
	}
	require.NotEqual(t, -1, shared)

	var (
		g  = m.GlobalVertexIndices()
		fv = m.Topology().Connectivity(2, 0).Row(shared)
	)
	// Vertices 1, 3, 2 in ascending global order
	assert.Equal(t, []int{1, 3, 2}, fv)
	for _, c := range m.Cells() {
		cv := c.Entities(0)
		var local []int
		for _, v := range cv {
			if incident(fv, v) {
				local = append(local, g[v])
			}
		}
		assert.Equal(t, []int{10, 20, 30}, local, "cell %d", c.Index())
	}
	assert.Equal(t, []int{1, 3, 2, 0}, m.Cell(0).Entities(0))
	assert.Equal(t, []int{4, 1, 3, 2}, m.Cell(1).Entities(0))
	// The shared facet sits opposite vertex 0 in cell 0 and vertex 4 in cell 1
	assert.Equal(t, shared, m.Cell(0).Entities(2)[3])
	assert.Equal(t, shared, m.Cell(1).Entities(2)[0])
}

func TestOrderIdempotent(t *testing.T) {
	m := kuhnCube(t)
	require.NoError(t, m.SetGlobalVertexIndices([]int{7, 3, 5, 1, 6, 2, 4, 0}))
	initAll(t, m)
	require.NoError(t, m.Order())

	once := m.Clone()
	require.NoError(t, m.Order())
	for d0 := 0; d0 <= 3; d0++ {
		for d1 := 0; d1 <= 3; d1++ {
			want := rowsOf(once.Topology().Connectivity(d0, d1))
			got := rowsOf(m.Topology().Connectivity(d0, d1))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("connectivity (%d, %d) changed on second ordering (-want +got):\n%s", d0, d1, diff)
			}
		}
	}
	for _, c := range m.Cells() {
		checkTetOrdered(t, c)
	}
}

func TestOrderSkipsMissingConnectivity(t *testing.T) {
	m, err := NewMesh(Tetrahedron, 3, unitTetCoords, [][]int{{3, 1, 0, 2}})
	require.NoError(t, err)
	ordered, err := m.Ordered()
	require.NoError(t, err)
	assert.False(t, ordered)

	require.NoError(t, m.Order())
	assert.Equal(t, []int{0, 1, 2, 3}, m.Cell(0).Entities(0))
	assert.True(t, m.Topology().Empty(1, 0))
	assert.True(t, m.Topology().Empty(3, 2))
}

func TestOrderMissingDependency(t *testing.T) {
	m := unitTet(t)
	_, err := m.Init(1)
	require.NoError(t, err)
	// Edges without the cell-edge map cannot be ordered
	m.topology.set(3, 1, nil)
	assert.True(t, errors.Is(m.Order(), ErrConfiguration))
}

func TestOrderTriangles(t *testing.T) {
	m, err := NewMesh(Triangle, 2,
		[][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		[][]int{{2, 1, 0}, {3, 2, 1}})
	require.NoError(t, err)
	require.NoError(t, m.SetGlobalVertexIndices([]int{3, 0, 2, 1}))
	_, err = m.Init(1)
	require.NoError(t, err)
	require.NoError(t, m.Order())

	var (
		g  = m.GlobalVertexIndices()
		ev = m.Topology().Connectivity(1, 0)
	)
	for _, c := range m.Cells() {
		cv := c.Entities(0)
		for i := 1; i < len(cv); i++ {
			assert.Less(t, g[cv[i-1]], g[cv[i]])
		}
		for i, e := range c.Entities(1) {
			assert.False(t, incident(ev.Row(e), cv[i]), "cell %d edge slot %d", c.Index(), i)
			assert.Less(t, g[ev.Row(e)[0]], g[ev.Row(e)[1]])
		}
	}
	ordered, err := m.Ordered()
	require.NoError(t, err)
	assert.True(t, ordered)
}

func TestOrderIntervals(t *testing.T) {
	m, err := NewMesh(Interval, 1, [][]float64{{0}, {1}, {2}}, [][]int{{1, 0}, {2, 1}})
	require.NoError(t, err)
	require.NoError(t, m.Order())
	assert.Equal(t, []int{0, 1}, m.Cell(0).Entities(0))
	assert.Equal(t, []int{1, 2}, m.Cell(1).Entities(0))
}
