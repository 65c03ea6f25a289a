package mesh

import (
	"fmt"

	"github.com/notargets/gosimplex/geometry"
)

// Entity is a non-owning view of entity index of dimension dim. All
// storage stays in the mesh.
type Entity struct {
	mesh  *Mesh
	dim   int
	index int
}

func NewEntity(m *Mesh, dim, index int) Entity {
	return Entity{mesh: m, dim: dim, index: index}
}

func (e Entity) Mesh() *Mesh { return e.mesh }
func (e Entity) Dim() int    { return e.dim }
func (e Entity) Index() int  { return e.index }

// Entities lists the incident entities of dimension d, nil when the (dim, d)
// connectivity has not been computed. For d == 0 these are local vertex
// numbers. The slice aliases the mesh topology.
func (e Entity) Entities(d int) []int {
	return e.mesh.topology.Connectivity(e.dim, d).Row(e.index)
}

func (e Entity) NumEntities(d int) int {
	return len(e.Entities(d))
}

// GlobalIndex is the global vertex number for vertices and the local index
// for everything else.
func (e Entity) GlobalIndex() int {
	if e.dim == 0 {
		if g := e.mesh.topology.GlobalVertexIndices(); g != nil {
			return g[e.index]
		}
	}
	return e.index
}

// Incident reports whether the two entities share a vertex.
func (e Entity) Incident(o Entity) bool {
	ev, ov := e.vertices(), o.vertices()
	for _, v := range ev {
		if incident(ov, v) {
			return true
		}
	}
	return false
}

func (e Entity) vertices() []int {
	if e.dim == 0 {
		return []int{e.index}
	}
	return e.Entities(0)
}

// Midpoint is the average of the entity's vertex coordinates.
func (e Entity) Midpoint() geometry.Point {
	return geometry.Centroid(points(e.mesh, e.vertices())...)
}

func (e Entity) String() string {
	return fmt.Sprintf("<Mesh entity %d of topological dimension %d>", e.index, e.dim)
}

type Vertex struct{ Entity }

func NewVertex(m *Mesh, index int) Vertex {
	return Vertex{NewEntity(m, 0, index)}
}

func (v Vertex) Point() geometry.Point { return v.mesh.geometry.Point(v.index) }
func (v Vertex) X() []float64          { return v.mesh.geometry.X(v.index) }

type Edge struct{ Entity }

func NewEdge(m *Mesh, index int) Edge {
	return Edge{NewEntity(m, 1, index)}
}

func (e Edge) Length() float64 {
	v := e.Entities(0)
	return e.mesh.geometry.Point(v[0]).Distance(e.mesh.geometry.Point(v[1]))
}

type Facet struct{ Entity }

func NewFacet(m *Mesh, index int) Facet {
	return Facet{NewEntity(m, m.Dim()-1, index)}
}

// Exterior reports whether the facet belongs to exactly one cell. The
// (dim-1, dim) connectivity must have been computed.
func (f Facet) Exterior() bool {
	return f.NumEntities(f.dim+1) == 1
}

// Cell is a view of a top dimensional entity. Its methods dispatch to the
// mesh's cell type.
type Cell struct{ Entity }

func NewCell(m *Mesh, index int) Cell {
	return Cell{NewEntity(m, m.Dim(), index)}
}

func (c Cell) Volume() (float64, error)   { return c.mesh.cellType.Volume(c.Entity) }
func (c Cell) Diameter() (float64, error) { return c.mesh.cellType.Diameter(c.Entity) }

func (c Cell) FacetArea(facet int) (float64, error) {
	return c.mesh.cellType.FacetArea(c, facet)
}

func (c Cell) Normal(facet int) (geometry.Point, error) {
	return c.mesh.cellType.Normal(c, facet)
}

func (c Cell) CellNormal() (geometry.Point, error) {
	return c.mesh.cellType.CellNormal(c)
}

func (c Cell) Collides(p geometry.Point) (bool, error) {
	return c.mesh.cellType.Collides(c, p)
}

func (c Cell) CollidesEntity(e Entity) (bool, error) {
	return c.mesh.cellType.CollidesEntity(c, e)
}

func (c Cell) SquaredDistance(p geometry.Point) (float64, error) {
	return c.mesh.cellType.SquaredDistance(c, p)
}

func (c Cell) Order(localToGlobal []int) error {
	return c.mesh.cellType.Order(c, localToGlobal)
}

func (c Cell) Points() []geometry.Point {
	return points(c.mesh, c.Entities(0))
}
