package mesh

import (
	"github.com/notargets/gosimplex/geometry"
)

type pointCell struct{}

func (pointCell) Kind() CellKind { return Point }
func (pointCell) Dim() int       { return 0 }

func (pointCell) NumEntities(dim int) (int, error) { return numEntities(Point, dim) }
func (pointCell) NumVertices(dim int) (int, error) { return numVertices(Point, dim) }

func (pointCell) CreateEntities(dim int, v []int) ([][]int, error) {
	return createEntities(Point, dim, v)
}

func (pointCell) Description(plural bool) string {
	if plural {
		return "points"
	}
	return "point"
}

func (pointCell) Order(Cell, []int) error { return nil }

func (pointCell) Refine(c Cell, _ *Editor, _ *int) error {
	return configErrorf("point cell %d cannot be refined", c.Index())
}

func (pointCell) RefineIrregular(c Cell, _ *Editor, _ *int, rule int, _ []int) error {
	return notImplementedf("irregular refinement (rule %d) of point %d", rule, c.Index())
}

func (pointCell) Volume(e Entity) (float64, error) {
	return 0, configErrorf("volume not defined for point cell %d", e.Index())
}

func (pointCell) Diameter(e Entity) (float64, error) {
	return 0, configErrorf("diameter not defined for point cell %d", e.Index())
}

func (pointCell) FacetArea(c Cell, facet int) (float64, error) {
	return 0, checkFacet(Point, facet)
}

func (pointCell) Normal(c Cell, facet int) (geometry.Point, error) {
	return geometry.Point{}, checkFacet(Point, facet)
}

func (pointCell) CellNormal(c Cell) (geometry.Point, error) {
	return geometry.Point{}, notImplementedf("cell normal of point %d", c.Index())
}

func (pointCell) Collides(c Cell, point geometry.Point) (bool, error) {
	p := c.Points()[0]
	return p.Distance(point) <= geometry.EPSLARGE*max(1, p.MaxAbs()), nil
}

func (pointCell) CollidesEntity(c Cell, e Entity) (bool, error) {
	return false, notImplementedf("collision of point %d with %s", c.Index(), e)
}

func (pointCell) SquaredDistance(c Cell, point geometry.Point) (float64, error) {
	return c.Points()[0].SquaredDistance(point), nil
}
