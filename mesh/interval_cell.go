package mesh

import (
	"math"

	"github.com/notargets/gosimplex/geometry"
)

// intervalCell numbers its facets like its vertices: facet i is vertex i.
type intervalCell struct{}

func (intervalCell) Kind() CellKind { return Interval }
func (intervalCell) Dim() int       { return 1 }

func (intervalCell) NumEntities(dim int) (int, error) { return numEntities(Interval, dim) }
func (intervalCell) NumVertices(dim int) (int, error) { return numVertices(Interval, dim) }

func (intervalCell) CreateEntities(dim int, v []int) ([][]int, error) {
	return createEntities(Interval, dim, v)
}

func (intervalCell) Description(plural bool) string {
	if plural {
		return "intervals"
	}
	return "interval"
}

func (intervalCell) Order(c Cell, localToGlobal []int) error {
	if !c.Mesh().Topology().Empty(1, 0) {
		sortEntities(c.Entities(0), localToGlobal)
	}
	return nil
}

// Refine splits the interval at its midpoint. Edges of an interval mesh are
// its cells, so the midpoint is numbered after the cell.
func (intervalCell) Refine(c Cell, editor *Editor, currentCell *int) error {
	var (
		v  = c.Entities(0)
		e0 = c.Mesh().NumVertices() + c.Index()
	)
	for _, child := range [2][2]int{{v[0], e0}, {e0, v[1]}} {
		if err := editor.AddCell(*currentCell, child[:]...); err != nil {
			return err
		}
		*currentCell++
	}
	return nil
}

func (intervalCell) RefineIrregular(c Cell, _ *Editor, _ *int, rule int, _ []int) error {
	return notImplementedf("irregular refinement (rule %d) of interval %d", rule, c.Index())
}

func (intervalCell) endpoints(e Entity, op string) (p0, p1 geometry.Point, err error) {
	if err = checkEntityDim(e, 1, op); err != nil {
		return
	}
	v := e.Entities(0)
	g := e.Mesh().Geometry()
	return g.Point(v[0]), g.Point(v[1]), nil
}

// Volume is the length of the interval.
func (ic intervalCell) Volume(e Entity) (float64, error) {
	p0, p1, err := ic.endpoints(e, "interval length")
	if err != nil {
		return 0, err
	}
	return p0.Distance(p1), nil
}

func (ic intervalCell) Diameter(e Entity) (float64, error) {
	p0, p1, err := ic.endpoints(e, "interval diameter")
	if err != nil {
		return 0, err
	}
	return p0.Distance(p1), nil
}

// FacetArea of a point facet is the counting measure.
func (intervalCell) FacetArea(c Cell, facet int) (float64, error) {
	if err := checkFacet(Interval, facet); err != nil {
		return 0, err
	}
	return 1, nil
}

// Normal at facet i points away from the other vertex.
func (ic intervalCell) Normal(c Cell, facet int) (n geometry.Point, err error) {
	if err = checkFacet(Interval, facet); err != nil {
		return
	}
	p0, p1, err := ic.endpoints(c.Entity, "interval facet normal")
	if err != nil {
		return
	}
	n = p0.Sub(p1)
	if facet == 1 {
		n = n.Scale(-1)
	}
	return n.Unit(), nil
}

// CellNormal is the tangent turned clockwise, defined only in R^2.
func (ic intervalCell) CellNormal(c Cell) (n geometry.Point, err error) {
	switch gdim := c.Mesh().GeometricDim(); gdim {
	case 1:
		return n, notImplementedf("cell normal of interval %d embedded in R^1", c.Index())
	case 2:
	default:
		return n, geometryErrorf("cell normal of interval %d is not unique in R^%d", c.Index(), gdim)
	}
	p0, p1, err := ic.endpoints(c.Entity, "interval cell normal")
	if err != nil {
		return
	}
	t := p1.Sub(p0).Unit()
	return geometry.NewPoint(t.Y, -t.X, 0), nil
}

func (ic intervalCell) Collides(c Cell, point geometry.Point) (bool, error) {
	p0, p1, err := ic.endpoints(c.Entity, "interval collision")
	if err != nil {
		return false, err
	}
	eps := math.Max(geometry.EPSLARGE, geometry.EPSLARGE*p1.Sub(p0).MaxAbs())
	return geometry.SquaredDistanceSegment(point, p0, p1) <= eps*eps, nil
}

func (intervalCell) CollidesEntity(c Cell, e Entity) (bool, error) {
	return false, notImplementedf("collision of interval %d with %s", c.Index(), e)
}

func (ic intervalCell) SquaredDistance(c Cell, point geometry.Point) (float64, error) {
	p0, p1, err := ic.endpoints(c.Entity, "interval squared distance")
	if err != nil {
		return 0, err
	}
	return geometry.SquaredDistanceSegment(point, p0, p1), nil
}
