package mesh

import (
	"testing"

	"github.com/notargets/gosimplex/geometry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	m := singleCell(t, Interval, 2, [][]float64{{0, 0}, {2, 0}})
	c := m.Cell(0)

	length, err := c.Volume()
	require.NoError(t, err)
	assert.Equal(t, 2., length)
	d, err := c.Diameter()
	require.NoError(t, err)
	assert.Equal(t, 2., d)

	for f := 0; f < 2; f++ {
		a, err := c.FacetArea(f)
		require.NoError(t, err)
		assert.Equal(t, 1., a)
	}
	_, err = c.FacetArea(2)
	assert.True(t, errors.Is(err, ErrConfiguration))

	n, err := c.Normal(0)
	require.NoError(t, err)
	assertPoint(t, geometry.NewPoint(-1, 0, 0), n, 0)
	n, err = c.Normal(1)
	require.NoError(t, err)
	assertPoint(t, geometry.NewPoint(1, 0, 0), n, 0)

	n, err = c.CellNormal()
	require.NoError(t, err)
	assertPoint(t, geometry.NewPoint(0, -1, 0), n, 0)

	for _, tt := range []struct {
		p       geometry.Point
		collide bool
		dist2   float64
	}{
		{geometry.NewPoint(1, 0, 0), true, 0},
		{geometry.NewPoint(0, 0, 0), true, 0},
		{geometry.NewPoint(1, 0.1, 0), false, 0.01},
		{geometry.NewPoint(1, 1, 0), false, 1},
		{geometry.NewPoint(3, 0, 0), false, 1},
	} {
		hit, err := c.Collides(tt.p)
		require.NoError(t, err)
		assert.Equalf(t, tt.collide, hit, "point %v", tt.p)
		d2, err := c.SquaredDistance(tt.p)
		require.NoError(t, err)
		assert.InDeltaf(t, tt.dist2, d2, 1.e-15, "point %v", tt.p)
	}

	_, err = c.CollidesEntity(c.Entity)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	var current int
	err = m.CellType().RefineIrregular(c, NewEditor(), &current, 0, nil)
	assert.True(t, errors.Is(err, ErrNotImplemented))
}

func TestIntervalCellNormalEmbedding(t *testing.T) {
	_, err := singleCell(t, Interval, 1, [][]float64{{0}, {1}}).Cell(0).CellNormal()
	assert.True(t, errors.Is(err, ErrNotImplemented))

	_, err = singleCell(t, Interval, 3, [][]float64{{0, 0, 0}, {1, 1, 1}}).Cell(0).CellNormal()
	assert.True(t, errors.Is(err, ErrGeometry))

	n, err := singleCell(t, Interval, 2, [][]float64{{0, 0}, {0, 3}}).Cell(0).CellNormal()
	require.NoError(t, err)
	assertPoint(t, geometry.NewPoint(1, 0, 0), n, 0)
}

func TestPointCell(t *testing.T) {
	m := singleCell(t, Point, 3, [][]float64{{1, 2, 3}})
	c := m.Cell(0)
	assert.Equal(t, 0, c.Dim())

	hit, err := c.Collides(geometry.NewPoint(1, 2, 3))
	require.NoError(t, err)
	assert.True(t, hit)
	hit, err = c.Collides(geometry.NewPoint(1, 2, 3.001))
	require.NoError(t, err)
	assert.False(t, hit)

	d2, err := c.SquaredDistance(geometry.NewPoint(1, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 4., d2)

	_, err = c.Volume()
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = c.Diameter()
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = c.FacetArea(0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = c.Normal(0)
	assert.True(t, errors.Is(err, ErrConfiguration))
	_, err = c.CellNormal()
	assert.True(t, errors.Is(err, ErrNotImplemented))
	_, err = c.CollidesEntity(c.Entity)
	assert.True(t, errors.Is(err, ErrNotImplemented))
	assert.NoError(t, m.Order())

	_, err = UniformRefine(m)
	assert.True(t, errors.Is(err, ErrConfiguration))
	var current int
	err = m.CellType().Refine(c, NewEditor(), &current)
	assert.True(t, errors.Is(err, ErrConfiguration))
}
