package mesh

import (
	"math"

	"github.com/notargets/gosimplex/geometry"
)

type tetrahedronCell struct{}

// tetEdgeExclusion lists, for cell edge slot i, the two cell vertices the
// edge must not touch. Read as pairs this is the lexicographic enumeration
// (0,1) (0,2) (0,3) (1,2) (1,3) (2,3), so slot i holds the edge opposite
// the i'th pair.
var tetEdgeExclusion = [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

func (tetrahedronCell) Kind() CellKind { return Tetrahedron }
func (tetrahedronCell) Dim() int       { return 3 }

func (tetrahedronCell) NumEntities(dim int) (int, error) { return numEntities(Tetrahedron, dim) }
func (tetrahedronCell) NumVertices(dim int) (int, error) { return numVertices(Tetrahedron, dim) }

func (tetrahedronCell) CreateEntities(dim int, v []int) ([][]int, error) {
	return createEntities(Tetrahedron, dim, v)
}

func (tetrahedronCell) Description(plural bool) string {
	if plural {
		return "tetrahedra"
	}
	return "tetrahedron"
}

// Order sorts, in this sequence: vertices on edges, vertices on facets,
// edges on facets by the vertex they do not touch, the cell vertices, the
// cell edges by the vertex pair they do not touch and the cell facets by the
// vertex they do not touch. Steps whose connectivity is absent are skipped.
func (tetrahedronCell) Order(c Cell, localToGlobal []int) error {
	topo := c.Mesh().Topology()

	// Vertices on edges, connectivity 1 - 0
	if !topo.Empty(1, 0) {
		if topo.Empty(3, 1) {
			return configErrorf("ordering cell %d: edges exist without cell-edge connectivity", c.Index())
		}
		ev := topo.Connectivity(1, 0)
		for _, e := range c.Entities(1) {
			sortEntities(ev.Row(e), localToGlobal)
		}
	}

	// Vertices on facets, connectivity 2 - 0
	if !topo.Empty(2, 0) {
		if topo.Empty(3, 2) {
			return configErrorf("ordering cell %d: facets exist without cell-facet connectivity", c.Index())
		}
		fv := topo.Connectivity(2, 0)
		for _, f := range c.Entities(2) {
			sortEntities(fv.Row(f), localToGlobal)
		}
	}

	// Edges on facets after the non-incident vertex, connectivity 2 - 1
	if !topo.Empty(2, 1) {
		if topo.Empty(3, 2) || topo.Empty(2, 0) || topo.Empty(1, 0) {
			return configErrorf("ordering cell %d: facet-edge connectivity needs facets and edges", c.Index())
		}
		var (
			fv = topo.Connectivity(2, 0)
			fe = topo.Connectivity(2, 1)
			ev = topo.Connectivity(1, 0)
		)
		for _, f := range c.Entities(2) {
			facetVertices := fv.Row(f)
			facetEdges := fe.Row(f)
			var m int
			for j := 0; j < 3; j++ {
				for k := m; k < 3; k++ {
					if !incident(ev.Row(facetEdges[k]), facetVertices[j]) {
						facetEdges[m], facetEdges[k] = facetEdges[k], facetEdges[m]
						m++
						break
					}
				}
			}
		}
	}

	// Cell vertices, connectivity 3 - 0
	if !topo.Empty(3, 0) {
		sortEntities(c.Entities(0), localToGlobal)
	}

	// Cell edges after the non-incident vertex pair, connectivity 3 - 1
	if !topo.Empty(3, 1) {
		if topo.Empty(1, 0) {
			return configErrorf("ordering cell %d: cell-edge connectivity without edge vertices", c.Index())
		}
		var (
			ev        = topo.Connectivity(1, 0)
			cellVerts = c.Entities(0)
			cellEdges = c.Entities(1)
			m         int
		)
		for i := 0; i < 3; i++ {
			for j := i + 1; j < 4; j++ {
				for k := m; k < 6; k++ {
					edgeVerts := ev.Row(cellEdges[k])
					if !incident(edgeVerts, cellVerts[i]) && !incident(edgeVerts, cellVerts[j]) {
						cellEdges[m], cellEdges[k] = cellEdges[k], cellEdges[m]
						m++
						break
					}
				}
			}
		}
	}

	// Cell facets after the non-incident vertex, connectivity 3 - 2
	if !topo.Empty(3, 2) {
		if topo.Empty(2, 0) {
			return configErrorf("ordering cell %d: cell-facet connectivity without facet vertices", c.Index())
		}
		var (
			fv         = topo.Connectivity(2, 0)
			cellVerts  = c.Entities(0)
			cellFacets = c.Entities(2)
		)
		for i := 0; i < 4; i++ {
			for j := i; j < 4; j++ {
				if !incident(fv.Row(cellFacets[j]), cellVerts[i]) {
					cellFacets[i], cellFacets[j] = cellFacets[j], cellFacets[i]
					break
				}
			}
		}
	}
	return nil
}

// Refine emits the four corner tetrahedra and then cuts the inner
// octahedron along its shortest diagonal so that repeated refinement does
// not degrade the aspect ratio.
func (tetrahedronCell) Refine(c Cell, editor *Editor, currentCell *int) error {
	var (
		v      = c.Entities(0)
		edges  = c.Entities(1)
		offset = c.Mesh().NumVertices()
		e      [6]int
		p      [6]geometry.Point
	)
	if len(edges) != 6 {
		return configErrorf("refining tetrahedron %d: edges have not been computed", c.Index())
	}
	for i := range e {
		j, err := findEdge(c, i, tetEdgeExclusion)
		if err != nil {
			return err
		}
		e[i] = offset + edges[j]
		if p[i], err = editor.Point(e[i]); err != nil {
			return err
		}
	}
	var (
		d05     = p[0].Distance(p[5])
		d14     = p[1].Distance(p[4])
		d23     = p[2].Distance(p[3])
		pattern = octahedronDiagonal(d05, d14, d23)
	)
	children := tetChildren([4]int{v[0], v[1], v[2], v[3]}, e, pattern)
	for _, child := range children {
		if err := editor.AddCell(*currentCell, child[:]...); err != nil {
			return err
		}
		*currentCell++
	}
	return nil
}

// Cutting patterns of the inner octahedron, named by the pair of edge
// midpoints every central child shares.
const (
	diagonal05 = iota
	diagonal14
	diagonal23
)

// octahedronDiagonal picks the shortest diagonal, the earlier one on ties.
func octahedronDiagonal(d05, d14, d23 float64) int {
	switch {
	case d05 <= d14 && d05 <= d23:
		return diagonal05
	case d14 <= d23:
		return diagonal14
	}
	return diagonal23
}

// tetChildren lists the eight children of a tetrahedron with vertices v and
// edge midpoints e, where e[i] lies on the edge opposite the i'th pair of
// tetEdgeExclusion.
func tetChildren(v [4]int, e [6]int, pattern int) (children [8][4]int) {
	children = [8][4]int{
		// Corners
		{v[0], e[3], e[4], e[5]},
		{v[1], e[1], e[2], e[5]},
		{v[2], e[0], e[2], e[4]},
		{v[3], e[0], e[1], e[3]},
	}
	switch pattern {
	case diagonal05:
		children[4] = [4]int{e[0], e[1], e[2], e[5]}
		children[5] = [4]int{e[0], e[1], e[3], e[5]}
		children[6] = [4]int{e[0], e[2], e[4], e[5]}
		children[7] = [4]int{e[0], e[3], e[4], e[5]}
	case diagonal14:
		children[4] = [4]int{e[0], e[1], e[2], e[4]}
		children[5] = [4]int{e[0], e[1], e[3], e[4]}
		children[6] = [4]int{e[1], e[2], e[4], e[5]}
		children[7] = [4]int{e[1], e[3], e[4], e[5]}
	default:
		children[4] = [4]int{e[0], e[1], e[2], e[3]}
		children[5] = [4]int{e[0], e[2], e[3], e[4]}
		children[6] = [4]int{e[1], e[2], e[3], e[5]}
		children[7] = [4]int{e[2], e[3], e[4], e[5]}
	}
	return
}

// RefineIrregular is reserved for rule based partial refinement.
func (tetrahedronCell) RefineIrregular(c Cell, _ *Editor, _ *int, rule int, _ []int) error {
	return notImplementedf("irregular refinement (rule %d) of tetrahedron %d", rule, c.Index())
}

func (tetrahedronCell) checkR3(e Entity, op string) error {
	if err := checkEntityDim(e, 3, op); err != nil {
		return err
	}
	if gdim := e.Mesh().GeometricDim(); gdim != 3 {
		return geometryErrorf("%s: tetrahedron embedded in R^%d, only R^3 is supported", op, gdim)
	}
	return nil
}

func (tc tetrahedronCell) Volume(e Entity) (float64, error) {
	if err := tc.checkR3(e, "tetrahedron volume"); err != nil {
		return 0, err
	}
	p := points(e.Mesh(), e.Entities(0))
	return tetVolume(p[0], p[1], p[2], p[3]), nil
}

func tetVolume(p0, p1, p2, p3 geometry.Point) float64 {
	return math.Abs(p1.Sub(p0).Dot(p2.Sub(p0).Cross(p3.Sub(p0)))) / 6.
}

// Diameter is twice the circumradius. Degenerate cells divide by a volume
// near zero and the caller must guard against that.
func (tc tetrahedronCell) Diameter(e Entity) (float64, error) {
	if err := tc.checkR3(e, "tetrahedron diameter"); err != nil {
		return 0, err
	}
	var (
		p = points(e.Mesh(), e.Entities(0))
		// Opposite edge pairs
		a, aa = p[1].Distance(p[2]), p[0].Distance(p[3])
		b, bb = p[0].Distance(p[2]), p[1].Distance(p[3])
		c, cc = p[0].Distance(p[1]), p[2].Distance(p[3])
		// "Area" of the triangle with side lengths la, lb, lc
		la, lb, lc = a * aa, b * bb, c * cc
		s          = 0.5 * (la + lb + lc)
		area       = math.Sqrt(s * (s - la) * (s - lb) * (s - lc))
	)
	return area / (3. * tetVolume(p[0], p[1], p[2], p[3])), nil
}

func (tc tetrahedronCell) FacetArea(c Cell, facet int) (float64, error) {
	if err := tc.checkR3(c.Entity, "tetrahedron facet area"); err != nil {
		return 0, err
	}
	if err := checkFacet(Tetrahedron, facet); err != nil {
		return 0, err
	}
	fv, _, err := facetVertices(c, facet)
	if err != nil {
		return 0, err
	}
	g := c.Mesh().Geometry()
	x0, x1, x2 := g.X(fv[0]), g.X(fv[1]), g.X(fv[2])

	// Components of the cross product, expanded to avoid building points
	v0 := (x0[1]*x1[2] + x0[2]*x2[1] + x1[1]*x2[2]) - (x2[1]*x1[2] + x2[2]*x0[1] + x1[1]*x0[2])
	v1 := (x0[2]*x1[0] + x0[0]*x2[2] + x1[2]*x2[0]) - (x2[2]*x1[0] + x2[0]*x0[2] + x1[2]*x0[0])
	v2 := (x0[0]*x1[1] + x0[1]*x2[0] + x1[0]*x2[1]) - (x2[0]*x1[1] + x2[1]*x0[0] + x1[0]*x0[1])
	return 0.5 * math.Sqrt(v0*v0+v1*v1+v2*v2), nil
}

// Normal is the outward unit normal of local facet facet.
func (tc tetrahedronCell) Normal(c Cell, facet int) (n geometry.Point, err error) {
	if err = tc.checkR3(c.Entity, "tetrahedron facet normal"); err != nil {
		return
	}
	if err = checkFacet(Tetrahedron, facet); err != nil {
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
		p3 = g.Point(fv[2])
		v0 = p0.Sub(p1)
	)
	n = p2.Sub(p1).Cross(p3.Sub(p1)).Unit()
	if n.Dot(v0) > 0 {
		n = n.Scale(-1)
	}
	return n, nil
}

func (tetrahedronCell) CellNormal(c Cell) (geometry.Point, error) {
	return geometry.Point{}, notImplementedf("cell normal of tetrahedron %d: a solid has no normal", c.Index())
}

// Collides expresses p - p0 in the basis of the edge vectors from vertex 0
// and checks for a convex combination.
func (tc tetrahedronCell) Collides(c Cell, point geometry.Point) (bool, error) {
	if err := tc.checkR3(c.Entity, "tetrahedron collision"); err != nil {
		return false, err
	}
	var (
		p  = c.Points()
		v1 = p[1].Sub(p[0])
		v2 = p[2].Sub(p[0])
		v3 = p[3].Sub(p[0])
		v  = point.Sub(p[0])
	)

	// Normal equations
	var (
		a11, a12, a13 = v1.Dot(v1), v1.Dot(v2), v1.Dot(v3)
		a22, a23      = v2.Dot(v2), v2.Dot(v3)
		a33           = v3.Dot(v3)
		b1, b2, b3    = v.Dot(v1), v.Dot(v2), v.Dot(v3)
	)

	// Cofactors
	var (
		d11 = a22*a33 - a23*a23
		d12 = a12*a33 - a23*a13
		d13 = a12*a23 - a22*a13
		d22 = a11*a33 - a13*a13
		d23 = a11*a23 - a12*a13
		d33 = a11*a22 - a12*a12
	)
	invDet := 1. / (a11*d11 - a12*d12 + a13*d13)
	var (
		x1 = invDet * (d11*b1 - d12*b2 + d13*b3)
		x2 = invDet * (-d12*b1 + d22*b2 - d23*b3)
		x3 = invDet * (d13*b1 - d23*b2 + d33*b3)
	)

	eps := math.Max(geometry.EPSLARGE, geometry.EPSLARGE*v1.MaxAbs())
	return x1 >= -eps && x2 >= -eps && x3 >= -eps && x1+x2+x3 <= 1.+eps, nil
}

func (tetrahedronCell) CollidesEntity(c Cell, e Entity) (bool, error) {
	return false, notImplementedf("collision of tetrahedron %d with %s", c.Index(), e)
}

// SquaredDistance is zero inside the cell. Outside, only facets whose plane
// separates the point from the opposite vertex can hold the closest point.
func (tc tetrahedronCell) SquaredDistance(c Cell, point geometry.Point) (float64, error) {
	if err := tc.checkR3(c.Entity, "tetrahedron squared distance"); err != nil {
		return 0, err
	}
	var (
		p          = c.Points()
		a, b, cc   = p[0], p[1], p[2]
		d          = p[3]
		r2         = math.MaxFloat64
		facePlanes = [4][4]geometry.Point{
			{a, b, cc, d}, // ABC
			{a, cc, d, b}, // ACD
			{a, d, b, cc}, // ADB
			{b, d, cc, a}, // BDC
		}
	)
	for _, f := range facePlanes {
		if geometry.PointOutsideOfPlane(point, f[0], f[1], f[2], f[3]) {
			r2 = math.Min(r2, geometry.SquaredDistanceTriangle(point, f[0], f[1], f[2]))
		}
	}
	if r2 == math.MaxFloat64 {
		r2 = 0
	}
	return r2, nil
}
