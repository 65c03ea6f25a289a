package mesh

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/notargets/gosimplex/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Min, Max, Mean, StdDev float64
}

func summarize(x []float64) (s Summary) {
	if len(x) == 0 {
		return
	}
	s.Min, s.Max = floats.Min(x), floats.Max(x)
	if len(x) == 1 {
		s.Mean = x[0]
		return
	}
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	return
}

// Statistics summarizes the size and shape of a mesh.
type Statistics struct {
	Kind              CellKind
	NumVertices       int
	NumEdges          int
	NumFacets         int
	NumCells          int
	NumBoundaryFacets int
	MaxValence        int
	TotalVolume       float64
	Volume            Summary
	Diameter          Summary
	// Condition is the 2-norm condition number of the affine map from the
	// reference cell, 1 for the best shaped cells.
	Condition Summary
	Bounds    *geometry.BoundingBox
}

// CellJacobian is the gdim x tdim matrix of edge vectors from vertex 0.
func CellJacobian(c Cell) *mat.Dense {
	var (
		p    = c.Points()
		gdim = c.Mesh().GeometricDim()
		tdim = c.Dim()
		J    = mat.NewDense(gdim, tdim, nil)
	)
	for j := 1; j <= tdim; j++ {
		e := p[j].Sub(p[0])
		for i := 0; i < gdim; i++ {
			J.Set(i, j-1, e.At(i))
		}
	}
	return J
}

// ComputeStatistics computes edges and facets of m if they are missing.
func ComputeStatistics(m *Mesh) (s *Statistics, err error) {
	tdim := m.Dim()
	s = &Statistics{
		Kind:        m.Kind(),
		NumVertices: m.NumVertices(),
		NumCells:    m.NumCells(),
	}
	if tdim > 0 {
		if s.NumEdges, err = m.Init(1); err != nil {
			return nil, err
		}
		if s.NumFacets, err = m.Init(tdim - 1); err != nil {
			return nil, err
		}
		var boundary []int
		if boundary, err = m.BoundaryFacets(); err != nil {
			return nil, err
		}
		s.NumBoundaryFacets = len(boundary)
	}
	if valence := m.VertexValence(); len(valence) > 0 {
		s.MaxValence = slices.Max(valence)
	}

	pts := make([]geometry.Point, m.NumVertices())
	for i := range pts {
		pts[i] = m.Geometry().Point(i)
	}
	s.Bounds = geometry.NewBoundingBox(pts)

	if tdim == 0 || m.NumCells() == 0 {
		return s, nil
	}
	var (
		volumes   = make([]float64, m.NumCells())
		diameters = make([]float64, m.NumCells())
		condition = make([]float64, m.NumCells())
	)
	for i, c := range m.Cells() {
		if volumes[i], err = c.Volume(); err != nil {
			return nil, err
		}
		if diameters[i], err = c.Diameter(); err != nil {
			return nil, err
		}
		if volumes[i] == 0 {
			condition[i] = math.Inf(1)
			continue
		}
		condition[i] = mat.Cond(CellJacobian(c), 2)
	}
	s.TotalVolume = floats.Sum(volumes)
	s.Volume = summarize(volumes)
	s.Diameter = summarize(diameters)
	s.Condition = summarize(condition)
	return s, nil
}

func (s *Statistics) Print(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Cell type: %s\n", s.Kind)
	fmt.Fprintf(w, "  Vertices: %s\n", humanize.Comma(int64(s.NumVertices)))
	fmt.Fprintf(w, "  Edges: %s\n", humanize.Comma(int64(s.NumEdges)))
	fmt.Fprintf(w, "  Facets: %s\n", humanize.Comma(int64(s.NumFacets)))
	fmt.Fprintf(w, "  Cells: %s\n", humanize.Comma(int64(s.NumCells)))
	fmt.Fprintf(w, "  Boundary facets: %s\n", humanize.Comma(int64(s.NumBoundaryFacets)))
	fmt.Fprintf(w, "  Max vertex valence: %d\n", s.MaxValence)
	if s.Bounds != nil {
		fmt.Fprintf(w, "  Bounds: %v - %v\n", s.Bounds.XMin, s.Bounds.XMax)
	}
	if s.Kind == Point {
		return
	}
	fmt.Fprintf(w, "  Total volume: %.8g\n", s.TotalVolume)
	for _, row := range []struct {
		name string
		sum  Summary
	}{
		{"Volume", s.Volume},
		{"Diameter", s.Diameter},
		{"Condition", s.Condition},
	} {
		fmt.Fprintf(w, "  %-9s min %.6g  max %.6g  mean %.6g  stddev %.6g\n",
			row.name, row.sum.Min, row.sum.Max, row.sum.Mean, row.sum.StdDev)
	}
}
