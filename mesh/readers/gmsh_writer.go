package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/notargets/gosimplex/mesh"
	"github.com/pkg/errors"
)

var gmshElementType = map[mesh.CellKind]int{
	mesh.Point:       15,
	mesh.Interval:    1,
	mesh.Triangle:    2,
	mesh.Tetrahedron: 4,
}

// WriteGmsh22 writes the vertices and cells of m as an ASCII Gmsh 2.2 file.
// Node and element tags are the local indices plus one, and every element
// carries physical and elementary tag 1.
func WriteGmsh22(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fmt.Fprintf(bw, "$Nodes\n%d\n", m.NumVertices())
	for v := 0; v < m.NumVertices(); v++ {
		p := m.Vertex(v).Point()
		fmt.Fprintf(bw, "%d %.17g %.17g %.17g\n", v+1, p.X, p.Y, p.Z)
	}
	fmt.Fprintf(bw, "$EndNodes\n")

	fmt.Fprintf(bw, "$Elements\n%d\n", m.NumCells())
	elemType := gmshElementType[m.Kind()]
	for _, c := range m.Cells() {
		fmt.Fprintf(bw, "%d %d 2 1 1", c.Index()+1, elemType)
		for _, v := range c.Entities(0) {
			fmt.Fprintf(bw, " %d", v+1)
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintf(bw, "$EndElements\n")
	return errors.Wrap(bw.Flush(), "writing gmsh mesh")
}

func WriteGmsh22File(filename string, m *mesh.Mesh) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "creating gmsh file")
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGmsh22(file, m)
}
