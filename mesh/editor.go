package mesh

import (
	"fmt"

	"github.com/notargets/gosimplex/geometry"
	log "github.com/sirupsen/logrus"
)

// Editor is the only writer of a mesh under construction. The mesh is
// handed out by Close and the editor cannot be used afterwards.
type Editor struct {
	mesh          *Mesh
	numVertices   int
	numCells      int
	addedVertices []bool
	addedCells    []bool
}

func NewEditor() *Editor {
	return &Editor{}
}

// Open starts a new mesh of the given kind embedded in gdim dimensions.
func (ed *Editor) Open(kind CellKind, gdim int) error {
	if ed.mesh != nil {
		return configErrorf("mesh editor is already open")
	}
	ct, err := NewCellType(kind)
	if err != nil {
		return err
	}
	if gdim < kind.Dim() || gdim < 1 || gdim > 3 {
		return geometryErrorf("cannot embed %s cells in %d dimensions", kind, gdim)
	}
	*ed = Editor{mesh: &Mesh{
		cellType: ct,
		topology: NewTopology(kind.Dim()),
		geometry: NewGeometry(gdim, 0),
	}}
	return nil
}

func (ed *Editor) checkOpen() error {
	if ed.mesh == nil {
		return configErrorf("mesh editor is not open")
	}
	return nil
}

func (ed *Editor) InitVertices(n int) error {
	if err := ed.checkOpen(); err != nil {
		return err
	}
	ed.numVertices = n
	ed.addedVertices = make([]bool, n)
	ed.mesh.geometry = NewGeometry(ed.mesh.geometry.dim, n)
	ed.mesh.topology.numEntities[0] = n
	return nil
}

func (ed *Editor) InitCells(n int) error {
	if err := ed.checkOpen(); err != nil {
		return err
	}
	tdim := ed.mesh.Dim()
	nv, _ := ed.mesh.cellType.NumVertices(tdim)
	ed.numCells = n
	ed.addedCells = make([]bool, n)
	ed.mesh.topology.set(tdim, 0, NewUniformConnectivity(n, nv))
	ed.mesh.topology.numEntities[tdim] = n
	return nil
}

// AddVertex sets the coordinates of vertex index. Missing trailing
// coordinates are zero.
func (ed *Editor) AddVertex(index int, x ...float64) error {
	if err := ed.checkOpen(); err != nil {
		return err
	}
	if index < 0 || index >= ed.numVertices {
		return configErrorf("vertex index %d out of range [0, %d)", index, ed.numVertices)
	}
	if len(x) > ed.mesh.geometry.dim {
		return geometryErrorf("vertex %d has %d coordinates in a %d dimensional geometry",
			index, len(x), ed.mesh.geometry.dim)
	}
	ed.mesh.geometry.set(index, x)
	ed.addedVertices[index] = true
	return nil
}

func (ed *Editor) AddVertexPoint(index int, p geometry.Point) error {
	return ed.AddVertex(index, p.Slice()[:ed.mesh.geometry.dim]...)
}

// Point returns the coordinates of a vertex already added.
func (ed *Editor) Point(index int) (geometry.Point, error) {
	if err := ed.checkOpen(); err != nil {
		return geometry.Point{}, err
	}
	if index < 0 || index >= ed.numVertices || !ed.addedVertices[index] {
		return geometry.Point{}, configErrorf("vertex %d has not been added", index)
	}
	return ed.mesh.geometry.Point(index), nil
}

func (ed *Editor) AddCell(index int, v ...int) error {
	if err := ed.checkOpen(); err != nil {
		return err
	}
	if index < 0 || index >= ed.numCells {
		return configErrorf("cell index %d out of range [0, %d)", index, ed.numCells)
	}
	row := ed.mesh.topology.Connectivity(ed.mesh.Dim(), 0).Row(index)
	if len(v) != len(row) {
		return configErrorf("%s cell %d needs %d vertices, got %d",
			ed.mesh.Kind(), index, len(row), len(v))
	}
	for _, vi := range v {
		if vi < 0 || vi >= ed.numVertices {
			return configErrorf("cell %d references vertex %d out of range [0, %d)", index, vi, ed.numVertices)
		}
	}
	copy(row, v)
	ed.addedCells[index] = true
	return nil
}

// Close verifies that every vertex and cell was added, installs the
// identity global numbering and returns the mesh.
func (ed *Editor) Close() (m *Mesh, err error) {
	if err = ed.checkOpen(); err != nil {
		return
	}
	if i := firstMissing(ed.addedVertices); i >= 0 {
		return nil, configErrorf("vertex %d of %d was never added", i, ed.numVertices)
	}
	if i := firstMissing(ed.addedCells); i >= 0 {
		return nil, configErrorf("cell %d of %d was never added", i, ed.numCells)
	}
	m = ed.mesh
	identity := make([]int, ed.numVertices)
	for i := range identity {
		identity[i] = i
	}
	m.topology.globalVertexIndices = identity
	*ed = Editor{}
	log.WithFields(log.Fields{
		"kind":     m.Kind().String(),
		"vertices": m.NumVertices(),
		"cells":    m.NumCells(),
	}).Debug("closed mesh editor")
	return m, nil
}

func firstMissing(added []bool) int {
	for i, ok := range added {
		if !ok {
			return i
		}
	}
	return -1
}

func (ed *Editor) String() string {
	if ed.mesh == nil {
		return "<closed mesh editor>"
	}
	return fmt.Sprintf("<mesh editor for %s: %d vertices, %d cells>", ed.mesh.Kind(), ed.numVertices, ed.numCells)
}

// NewMesh builds a mesh in one call from coordinates (one row per vertex)
// and cell vertex lists.
func NewMesh(kind CellKind, gdim int, coords [][]float64, cells [][]int) (*Mesh, error) {
	ed := NewEditor()
	if err := ed.Open(kind, gdim); err != nil {
		return nil, err
	}
	if err := ed.InitVertices(len(coords)); err != nil {
		return nil, err
	}
	for i, x := range coords {
		if err := ed.AddVertex(i, x...); err != nil {
			return nil, err
		}
	}
	if err := ed.InitCells(len(cells)); err != nil {
		return nil, err
	}
	for i, c := range cells {
		if err := ed.AddCell(i, c...); err != nil {
			return nil, err
		}
	}
	return ed.Close()
}
