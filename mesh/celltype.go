package mesh

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/notargets/gosimplex/geometry"
)

// CellKind enumerates the simplicial cell types a mesh can be built from.
type CellKind int

const (
	Point CellKind = iota
	Interval
	Triangle
	Tetrahedron
)

func (k CellKind) String() string {
	if k < Point || k > Tetrahedron {
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
	return [...]string{"point", "interval", "triangle", "tetrahedron"}[k]
}

// Dim is the topological dimension of a cell of this kind.
func (k CellKind) Dim() int { return int(k) }

// ParseCellKind accepts the kind names and their common aliases.
func ParseCellKind(s string) (CellKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "vertex":
		return Point, nil
	case "interval", "line", "edge":
		return Interval, nil
	case "triangle", "tri":
		return Triangle, nil
	case "tetrahedron", "tet":
		return Tetrahedron, nil
	}
	return 0, configErrorf("unknown cell kind %q", s)
}

// CellType is the per-kind kernel: topology tables, canonical ordering,
// refinement and geometric predicates. One value is chosen per mesh.
type CellType interface {
	Kind() CellKind
	Dim() int
	// NumEntities is the number of sub-entities of dimension dim in a cell.
	NumEntities(dim int) (int, error)
	// NumVertices is the number of vertices of a sub-entity of dimension dim.
	NumVertices(dim int) (int, error)
	// CreateEntities lists the vertex tuples of the dimension dim
	// sub-entities of a cell with vertices v.
	CreateEntities(dim int, v []int) ([][]int, error)

	// Order permutes the connectivity of the cell in place so that shared
	// sub-entities get the same local representation in every cell.
	Order(c Cell, localToGlobal []int) error
	// Refine appends the regular refinement of c to editor, numbering the
	// children from *currentCell on.
	Refine(c Cell, editor *Editor, currentCell *int) error
	RefineIrregular(c Cell, editor *Editor, currentCell *int, rule int, markedEdges []int) error

	Volume(e Entity) (float64, error)
	Diameter(e Entity) (float64, error)
	FacetArea(c Cell, facet int) (float64, error)
	Normal(c Cell, facet int) (geometry.Point, error)
	CellNormal(c Cell) (geometry.Point, error)
	Collides(c Cell, p geometry.Point) (bool, error)
	CollidesEntity(c Cell, e Entity) (bool, error)
	SquaredDistance(c Cell, p geometry.Point) (float64, error)

	Description(plural bool) string
}

func NewCellType(kind CellKind) (CellType, error) {
	switch kind {
	case Point:
		return pointCell{}, nil
	case Interval:
		return intervalCell{}, nil
	case Triangle:
		return triangleCell{}, nil
	case Tetrahedron:
		return tetrahedronCell{}, nil
	}
	return nil, configErrorf("no cell type for kind %d", int(kind))
}

// entityCounts and entityVertexCounts are indexed [kind][dim].
var (
	entityCounts = [...][]int{
		Point:       {1},
		Interval:    {2, 1},
		Triangle:    {3, 3, 1},
		Tetrahedron: {4, 6, 4, 1},
	}
	entityVertexCounts = [...][]int{
		Point:       {1},
		Interval:    {1, 2},
		Triangle:    {1, 2, 3},
		Tetrahedron: {1, 2, 3, 4},
	}
)

func numEntities(kind CellKind, dim int) (int, error) {
	if dim < 0 || dim > kind.Dim() {
		return 0, configErrorf("illegal topological dimension %d for %s cell", dim, kind)
	}
	return entityCounts[kind][dim], nil
}

func numVertices(kind CellKind, dim int) (int, error) {
	if dim < 0 || dim > kind.Dim() {
		return 0, configErrorf("illegal topological dimension %d for subsimplex of %s cell", dim, kind)
	}
	return entityVertexCounts[kind][dim], nil
}

// localPatterns gives, per kind and sub-entity dimension, the local vertex
// numbers of each sub-entity. Sub-entity i of the highest listed dimension
// omits vertex i.
var localPatterns = [...]map[int][][]int{
	Point:    {},
	Interval: {},
	Triangle: {
		1: {{1, 2}, {0, 2}, {0, 1}},
	},
	Tetrahedron: {
		1: {{2, 3}, {1, 3}, {1, 2}, {0, 3}, {0, 2}, {0, 1}},
		2: {{1, 2, 3}, {0, 2, 3}, {0, 1, 3}, {0, 1, 2}},
	},
}

func createEntities(kind CellKind, dim int, v []int) ([][]int, error) {
	pattern, ok := localPatterns[kind][dim]
	if !ok {
		return nil, configErrorf("don't know how to create entities of topological dimension %d for %s cell",
			dim, kind)
	}
	if nv := entityVertexCounts[kind][kind.Dim()]; len(v) != nv {
		return nil, configErrorf("%s cell needs %d vertices to create entities, got %d", kind, nv, len(v))
	}
	e := make([][]int, len(pattern))
	for i, local := range pattern {
		e[i] = make([]int, len(local))
		for j, lv := range local {
			e[i][j] = v[lv]
		}
	}
	return e, nil
}

// sortEntities orders local vertex numbers by their global numbers.
func sortEntities(vertices []int, localToGlobal []int) {
	sort.Slice(vertices, func(i, j int) bool {
		return localToGlobal[vertices[i]] < localToGlobal[vertices[j]]
	})
}

func incident(vertices []int, v int) bool {
	return slices.Contains(vertices, v)
}

// findEdge returns the position among the cell's edges of the edge that
// touches none of the cell vertices listed in exclude[i].
func findEdge(c Cell, i int, exclude [][]int) (int, error) {
	var (
		topo = c.Mesh().Topology()
		v    = c.Entities(0)
		e    = c.Entities(1)
		ev   = topo.Connectivity(1, 0)
	)
	for j, edge := range e {
		vertices := ev.Row(edge)
		match := true
		for _, lv := range exclude[i] {
			if incident(vertices, v[lv]) {
				match = false
				break
			}
		}
		if match {
			return j, nil
		}
	}
	return 0, configErrorf("edge %d not found in cell %d", i, c.Index())
}

// facetVertices returns the vertices of local facet i of c together with
// the cell vertex opposite to it. When facets have been computed the facet
// entity is used, otherwise facet i is the one omitting vertex i.
func facetVertices(c Cell, facet int) (fv []int, opposite int, err error) {
	var (
		tdim = c.Dim()
		topo = c.Mesh().Topology()
		cv   = c.Entities(0)
	)
	if facet < 0 || facet >= len(cv) {
		return nil, 0, configErrorf("facet %d out of range for %s cell", facet, c.Mesh().Kind())
	}
	if !topo.Empty(tdim, tdim-1) && !topo.Empty(tdim-1, 0) {
		fv = topo.Connectivity(tdim-1, 0).Row(c.Entities(tdim - 1)[facet])
		for _, v := range cv {
			if !incident(fv, v) {
				return fv, v, nil
			}
		}
		return nil, 0, configErrorf("facet %d of cell %d contains every cell vertex", facet, c.Index())
	}
	fv = make([]int, 0, len(cv)-1)
	for i, v := range cv {
		if i != facet {
			fv = append(fv, v)
		}
	}
	return fv, cv[facet], nil
}

func points(m *Mesh, vertices []int) (p []geometry.Point) {
	p = make([]geometry.Point, len(vertices))
	for i, v := range vertices {
		p[i] = m.Geometry().Point(v)
	}
	return
}

func checkEntityDim(e Entity, dim int, op string) error {
	if e.Dim() != dim {
		return configErrorf("%s: illegal mesh entity of dimension %d, expected %d", op, e.Dim(), dim)
	}
	return nil
}

func checkFacet(kind CellKind, facet int) error {
	n, _ := numEntities(kind, kind.Dim()-1)
	if kind == Point || facet < 0 || facet >= n {
		return configErrorf("facet %d out of range for %s cell", facet, kind)
	}
	return nil
}
