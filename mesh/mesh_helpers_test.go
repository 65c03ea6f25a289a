package mesh

import (
	"math/rand"
	"testing"

	"github.com/notargets/gosimplex/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standard meshes shared by the tests of this package

var (
	unitTetCoords = [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	// Regular tetrahedron of edge 2√2 centered at the origin
	regularTetCoords = [][]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
)

func unitTet(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewMesh(Tetrahedron, 3, unitTetCoords, [][]int{{0, 1, 2, 3}})
	require.NoError(t, err)
	return m
}

// twoTets shares the facet (1, 2, 3) between two tetrahedra listed with
// different local vertex orders.
func twoTets(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewMesh(Tetrahedron, 3,
		[][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}},
		[][]int{{0, 1, 2, 3}, {4, 3, 1, 2}})
	require.NoError(t, err)
	return m
}

// kuhnCube splits the unit cube into six tetrahedra around the diagonal
// from vertex 0 to vertex 7. Vertex v sits at (v&1, v>>1&1, v>>2&1).
func kuhnCube(t *testing.T) *Mesh {
	t.Helper()
	coords := make([][]float64, 8)
	for v := range coords {
		coords[v] = []float64{float64(v & 1), float64(v >> 1 & 1), float64(v >> 2 & 1)}
	}
	m, err := NewMesh(Tetrahedron, 3, coords, [][]int{
		{0, 1, 3, 7},
		{0, 1, 5, 7},
		{0, 2, 3, 7},
		{0, 2, 6, 7},
		{0, 4, 5, 7},
		{0, 4, 6, 7},
	})
	require.NoError(t, err)
	return m
}

func singleCell(t *testing.T, kind CellKind, gdim int, coords [][]float64) *Mesh {
	t.Helper()
	v := make([]int, len(coords))
	for i := range v {
		v[i] = i
	}
	m, err := NewMesh(kind, gdim, coords, [][]int{v})
	require.NoError(t, err)
	return m
}

// randomTet draws vertices in the unit cube until the tetrahedron is not
// close to degenerate.
func randomTet(rng *rand.Rand) [][]float64 {
	for {
		coords := make([][]float64, 4)
		p := make([]geometry.Point, 4)
		for i := range coords {
			coords[i] = []float64{rng.Float64(), rng.Float64(), rng.Float64()}
			p[i] = geometry.NewPointFromSlice(coords[i])
		}
		if tetVolume(p[0], p[1], p[2], p[3]) > 1.e-2 {
			return coords
		}
	}
}

func permutations(n int) (perms [][]int) {
	var permute func(p []int, k int)
	permute = func(p []int, k int) {
		if k == len(p) {
			perms = append(perms, append([]int(nil), p...))
			return
		}
		for i := k; i < len(p); i++ {
			p[k], p[i] = p[i], p[k]
			permute(p, k+1)
			p[k], p[i] = p[i], p[k]
		}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	permute(p, 0)
	return
}

func rowsOf(c *Connectivity) (rows [][]int) {
	for i := 0; i < c.Size(); i++ {
		rows = append(rows, append([]int(nil), c.Row(i)...))
	}
	return
}

func assertPoint(t *testing.T, want, got geometry.Point, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDeltaf(t, want.At(i), got.At(i), tol, "coordinate %d of %v, want %v", i, got, want)
	}
}

func totalVolume(t *testing.T, m *Mesh) (vol float64) {
	t.Helper()
	for _, c := range m.Cells() {
		v, err := c.Volume()
		require.NoError(t, err)
		vol += v
	}
	return
}

// findVertex returns the vertex at p, failing the test if there is none.
func findVertex(t *testing.T, m *Mesh, p geometry.Point) int {
	t.Helper()
	for v := 0; v < m.NumVertices(); v++ {
		if m.Geometry().Point(v).Distance(p) < 1.e-12 {
			return v
		}
	}
	require.Failf(t, "vertex not found", "no vertex at %v", p)
	return -1
}
