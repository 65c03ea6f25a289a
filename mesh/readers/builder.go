package readers

import (
	"fmt"

	"github.com/notargets/gosimplex/mesh"
	log "github.com/sirupsen/logrus"
)

// meshBuilder collects the nodes and elements of a file in file order. Only
// the simplices of the highest dimension found become cells; lower
// dimensional elements are boundary and region markup and are dropped.
type meshBuilder struct {
	format    string
	nodeIndex map[int]int // node tag -> vertex index
	coords    [][]float64 // always three coordinates
	cells     [4][][]int  // by kind, node tags
	// Element types that are not linear simplices, by dimension
	unsupported map[int]int
}

func newMeshBuilder(format string) *meshBuilder {
	return &meshBuilder{
		format:      format,
		nodeIndex:   make(map[int]int),
		unsupported: make(map[int]int),
	}
}

func (b *meshBuilder) addNode(tag int, x []float64) error {
	if _, ok := b.nodeIndex[tag]; ok {
		return fmt.Errorf("%s: duplicate node tag %d", b.format, tag)
	}
	coords := make([]float64, 3)
	copy(coords, x)
	b.nodeIndex[tag] = len(b.coords)
	b.coords = append(b.coords, coords)
	return nil
}

func (b *meshBuilder) addElement(kind mesh.CellKind, nodeTags []int) {
	b.cells[kind] = append(b.cells[kind], nodeTags)
}

func (b *meshBuilder) addUnsupported(dim int) {
	b.unsupported[dim]++
}

// embedding is the smallest dimension holding every coordinate, at least
// the topological dimension.
func (b *meshBuilder) embedding(tdim int) int {
	gdim := max(tdim, 1)
	for _, x := range b.coords {
		switch {
		case x[2] != 0:
			return 3
		case x[1] != 0:
			gdim = max(gdim, 2)
		}
	}
	return gdim
}

func (b *meshBuilder) build() (*mesh.Mesh, error) {
	kind := mesh.CellKind(-1)
	for k := mesh.Tetrahedron; k >= mesh.Point; k-- {
		if len(b.cells[k]) > 0 {
			kind = k
			break
		}
	}
	for dim, n := range b.unsupported {
		if kind < 0 || dim >= kind.Dim() {
			return nil, fmt.Errorf("%s: %d elements of dimension %d are not linear simplices", b.format, n, dim)
		}
	}
	if kind < 0 {
		return nil, fmt.Errorf("%s: no simplicial cells found", b.format)
	}

	cells := make([][]int, len(b.cells[kind]))
	for i, nodeTags := range b.cells[kind] {
		cells[i] = make([]int, len(nodeTags))
		for j, tag := range nodeTags {
			v, ok := b.nodeIndex[tag]
			if !ok {
				return nil, fmt.Errorf("%s: element %d references unknown node %d", b.format, i, tag)
			}
			cells[i][j] = v
		}
	}
	gdim := b.embedding(kind.Dim())
	coords := make([][]float64, len(b.coords))
	for i, x := range b.coords {
		coords[i] = x[:gdim]
	}
	m, err := mesh.NewMesh(kind, gdim, coords, cells)
	if err != nil {
		return nil, err
	}

	var dropped []string
	for k := mesh.Point; k < kind; k++ {
		if n := len(b.cells[k]); n > 0 {
			dropped = append(dropped, fmt.Sprintf("%d %s", n, k))
		}
	}
	log.WithFields(log.Fields{
		"format":   b.format,
		"kind":     kind.String(),
		"gdim":     gdim,
		"vertices": m.NumVertices(),
		"cells":    m.NumCells(),
		"dropped":  dropped,
	}).Debug("read mesh")
	return m, nil
}
