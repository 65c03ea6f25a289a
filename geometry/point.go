package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location or displacement in R^3. Meshes embedded in fewer
// dimensions leave the trailing coordinates at zero.
type Point struct {
	r3.Vec
}

func NewPoint(x, y, z float64) Point {
	return Point{r3.Vec{X: x, Y: y, Z: z}}
}

// NewPointFromSlice fills the leading len(x) coordinates, at most three.
func NewPointFromSlice(x []float64) (p Point) {
	switch {
	case len(x) >= 3:
		p.Z = x[2]
		fallthrough
	case len(x) == 2:
		p.Y = x[1]
		fallthrough
	case len(x) == 1:
		p.X = x[0]
	}
	return
}

func (p Point) At(i int) float64 {
	switch i {
	case 0:
		return p.X
	case 1:
		return p.Y
	case 2:
		return p.Z
	}
	panic(fmt.Sprintf("point coordinate %d out of range", i))
}

func (p Point) Add(q Point) Point        { return Point{r3.Add(p.Vec, q.Vec)} }
func (p Point) Sub(q Point) Point        { return Point{r3.Sub(p.Vec, q.Vec)} }
func (p Point) Scale(f float64) Point    { return Point{r3.Scale(f, p.Vec)} }
func (p Point) Dot(q Point) float64      { return r3.Dot(p.Vec, q.Vec) }
func (p Point) Cross(q Point) Point      { return Point{r3.Cross(p.Vec, q.Vec)} }
func (p Point) Norm() float64            { return r3.Norm(p.Vec) }
func (p Point) SquaredNorm() float64     { return r3.Norm2(p.Vec) }
func (p Point) Distance(q Point) float64 { return r3.Norm(r3.Sub(p.Vec, q.Vec)) }

func (p Point) SquaredDistance(q Point) float64 {
	return r3.Norm2(r3.Sub(p.Vec, q.Vec))
}

// Unit returns p scaled to length one. The zero vector is returned as is.
func (p Point) Unit() Point {
	n := p.Norm()
	if n == 0 {
		return p
	}
	return p.Scale(1. / n)
}

// MaxAbs is the largest absolute coordinate, used to scale tolerances.
func (p Point) MaxAbs() float64 {
	return math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z)))
}

func (p Point) Slice() []float64 {
	return []float64{p.X, p.Y, p.Z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Centroid of a set of points, the zero point if the set is empty.
func Centroid(pts ...Point) (c Point) {
	if len(pts) == 0 {
		return
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1. / float64(len(pts)))
}
