package mesh

import (
	"github.com/notargets/gosimplex/geometry"
)

// Geometry is the vertex coordinate arena, dim coordinates per vertex.
type Geometry struct {
	dim int
	x   []float64
}

func NewGeometry(dim, numVertices int) *Geometry {
	return &Geometry{dim: dim, x: make([]float64, dim*numVertices)}
}

// Dim is the embedding dimension.
func (g *Geometry) Dim() int { return g.dim }

func (g *Geometry) Size() int {
	if g.dim == 0 {
		return 0
	}
	return len(g.x) / g.dim
}

// X returns the coordinates of vertex i. The slice aliases the arena.
func (g *Geometry) X(i int) []float64 {
	return g.x[i*g.dim : (i+1)*g.dim : (i+1)*g.dim]
}

func (g *Geometry) Point(i int) geometry.Point {
	return geometry.NewPointFromSlice(g.X(i))
}

func (g *Geometry) set(i int, x []float64) {
	copy(g.X(i), x)
}
