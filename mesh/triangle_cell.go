package mesh

import (
	"math"

	"github.com/notargets/gosimplex/geometry"
)

type triangleCell struct{}

// Edge slot i of a triangle is the edge not touching vertex i.
var triEdgeExclusion = [][]int{{0}, {1}, {2}}

func (triangleCell) Kind() CellKind { return Triangle }
func (triangleCell) Dim() int       { return 2 }

func (triangleCell) NumEntities(dim int) (int, error) { return numEntities(Triangle, dim) }
func (triangleCell) NumVertices(dim int) (int, error) { return numVertices(Triangle, dim) }

func (triangleCell) CreateEntities(dim int, v []int) ([][]int, error) {
	return createEntities(Triangle, dim, v)
}

func (triangleCell) Description(plural bool) string {
	if plural {
		return "triangles"
	}
	return "triangle"
}

func (triangleCell) Order(c Cell, localToGlobal []int) error {
	topo := c.Mesh().Topology()

	// Vertices on edges, connectivity 1 - 0
	if !topo.Empty(1, 0) {
		if topo.Empty(2, 1) {
			return configErrorf("ordering cell %d: edges exist without cell-edge connectivity", c.Index())
		}
		ev := topo.Connectivity(1, 0)
		for _, e := range c.Entities(1) {
			sortEntities(ev.Row(e), localToGlobal)
		}
	}

	// Cell vertices, connectivity 2 - 0
	if !topo.Empty(2, 0) {
		sortEntities(c.Entities(0), localToGlobal)
	}

	// Cell edges after the non-incident vertex, connectivity 2 - 1
	if !topo.Empty(2, 1) {
		if topo.Empty(1, 0) {
			return configErrorf("ordering cell %d: cell-edge connectivity without edge vertices", c.Index())
		}
		var (
			ev        = topo.Connectivity(1, 0)
			cellVerts = c.Entities(0)
			cellEdges = c.Entities(1)
		)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				if !incident(ev.Row(cellEdges[j]), cellVerts[i]) {
					cellEdges[i], cellEdges[j] = cellEdges[j], cellEdges[i]
					break
				}
			}
		}
	}
	return nil
}

// Refine splits the triangle into three corner triangles and the middle one.
func (triangleCell) Refine(c Cell, editor *Editor, currentCell *int) error {
	var (
		v      = c.Entities(0)
		edges  = c.Entities(1)
		offset = c.Mesh().NumVertices()
		e      [3]int
	)
	if len(edges) != 3 {
		return configErrorf("refining triangle %d: edges have not been computed", c.Index())
	}
	for i := range e {
		j, err := findEdge(c, i, triEdgeExclusion)
		if err != nil {
			return err
		}
		e[i] = offset + edges[j]
	}
	children := [4][3]int{
		{v[0], e[2], e[1]},
		{v[1], e[0], e[2]},
		{v[2], e[1], e[0]},
		{e[0], e[1], e[2]},
	}
	for _, child := range children {
		if err := editor.AddCell(*currentCell, child[:]...); err != nil {
			return err
		}
		*currentCell++
	}
	return nil
}

func (triangleCell) RefineIrregular(c Cell, _ *Editor, _ *int, rule int, _ []int) error {
	return notImplementedf("irregular refinement (rule %d) of triangle %d", rule, c.Index())
}

func (triangleCell) checkEmbedding(e Entity, op string) error {
	if err := checkEntityDim(e, 2, op); err != nil {
		return err
	}
	if gdim := e.Mesh().GeometricDim(); gdim != 2 && gdim != 3 {
		return geometryErrorf("%s: triangle embedded in R^%d, only R^2 and R^3 are supported", op, gdim)
	}
	return nil
}

// Volume is the area of the triangle.
func (tc triangleCell) Volume(e Entity) (float64, error) {
	if err := tc.checkEmbedding(e, "triangle area"); err != nil {
		return 0, err
	}
	p := points(e.Mesh(), e.Entities(0))
	return triArea(p[0], p[1], p[2]), nil
}

func triArea(p0, p1, p2 geometry.Point) float64 {
	return 0.5 * p1.Sub(p0).Cross(p2.Sub(p0)).Norm()
}

// Diameter is twice the circumradius, abc / (2 area).
func (tc triangleCell) Diameter(e Entity) (float64, error) {
	if err := tc.checkEmbedding(e, "triangle diameter"); err != nil {
		return 0, err
	}
	var (
		p = points(e.Mesh(), e.Entities(0))
		a = p[1].Distance(p[2])
		b = p[0].Distance(p[2])
		c = p[0].Distance(p[1])
	)
	return 0.5 * a * b * c / triArea(p[0], p[1], p[2]), nil
}

// FacetArea is the length of the edge opposite vertex facet.
func (tc triangleCell) FacetArea(c Cell, facet int) (float64, error) {
	if err := tc.checkEmbedding(c.Entity, "triangle facet area"); err != nil {
		return 0, err
	}
	if err := checkFacet(Triangle, facet); err != nil {
		return 0, err
	}
	fv, _, err := facetVertices(c, facet)
	if err != nil {
		return 0, err
	}
	g := c.Mesh().Geometry()
	return g.Point(fv[0]).Distance(g.Point(fv[1])), nil
}

// Normal is the outward unit normal of an edge within the plane of the
// triangle.
func (tc triangleCell) Normal(c Cell, facet int) (n geometry.Point, err error) {
	if err = tc.checkEmbedding(c.Entity, "triangle facet normal"); err != nil {
		return
	}
	if err = checkFacet(Triangle, facet); err != nil {
		return
	}
	fv, opposite, err := facetVertices(c, facet)
	if err != nil {
		return
	}
	var (
		g  = c.Mesh().Geometry()
		p0 = g.Point(opposite)
		p1 = g.Point(fv[0])
		p2 = g.Point(fv[1])
		t  = p2.Sub(p1).Unit()
	)
	// Remove the tangential part of p2 - p0
	n = p2.Sub(p0)
	n = n.Sub(t.Scale(n.Dot(t))).Unit()
	return n, nil
}

func (tc triangleCell) CellNormal(c Cell) (geometry.Point, error) {
	if err := checkEntityDim(c.Entity, 2, "triangle cell normal"); err != nil {
		return geometry.Point{}, err
	}
	if gdim := c.Mesh().GeometricDim(); gdim != 3 {
		return geometry.Point{}, notImplementedf("cell normal of triangle %d embedded in R^%d", c.Index(), gdim)
	}
	p := c.Points()
	return p[1].Sub(p[0]).Cross(p[2].Sub(p[0])).Unit(), nil
}

// Collides solves for the coordinates of p - p0 in the edge basis from
// vertex 0. In R^3 the point must also lie in the plane of the triangle.
func (tc triangleCell) Collides(c Cell, point geometry.Point) (bool, error) {
	if err := tc.checkEmbedding(c.Entity, "triangle collision"); err != nil {
		return false, err
	}
	var (
		p   = c.Points()
		v1  = p[1].Sub(p[0])
		v2  = p[2].Sub(p[0])
		v   = point.Sub(p[0])
		a11 = v1.Dot(v1)
		a12 = v1.Dot(v2)
		a22 = v2.Dot(v2)
		b1  = v.Dot(v1)
		b2  = v.Dot(v2)
	)
	invDet := 1. / (a11*a22 - a12*a12)
	x1 := invDet * (a22*b1 - a12*b2)
	x2 := invDet * (a11*b2 - a12*b1)

	eps := math.Max(geometry.EPSLARGE, geometry.EPSLARGE*v1.MaxAbs())
	if !(x1 >= -eps && x2 >= -eps && x1+x2 <= 1.+eps) {
		return false, nil
	}
	// Residual of the projection is the distance out of the plane
	r := v.Sub(v1.Scale(x1)).Sub(v2.Scale(x2))
	return r.Norm() <= eps, nil
}

func (triangleCell) CollidesEntity(c Cell, e Entity) (bool, error) {
	return false, notImplementedf("collision of triangle %d with %s", c.Index(), e)
}

func (tc triangleCell) SquaredDistance(c Cell, point geometry.Point) (float64, error) {
	if err := tc.checkEmbedding(c.Entity, "triangle squared distance"); err != nil {
		return 0, err
	}
	p := c.Points()
	return geometry.SquaredDistanceTriangle(point, p[0], p[1], p[2]), nil
}
