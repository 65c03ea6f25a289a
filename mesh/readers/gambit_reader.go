package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/gosimplex/mesh"
	"github.com/pkg/errors"
)

// gambitElementKind maps Gambit NTYPE codes of linear simplices to cell kinds
var gambitElementKind = map[int]mesh.CellKind{
	1: mesh.Interval,    // Edge
	3: mesh.Triangle,    // Triangle
	6: mesh.Tetrahedron, // Tetrahedron
}

var gambitElementDim = map[int]int{
	2: 2, // Quadrilateral
	4: 3, // Brick
	5: 3, // Wedge
	7: 3, // Pyramid
}

// ReadGambitNeutral reads a Gambit neutral file
func ReadGambitNeutral(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening gambit file")
	}
	defer file.Close()
	return readGambitNeutral(file)
}

func readGambitNeutral(r io.Reader) (*mesh.Mesh, error) {
	var (
		scanner = newGmshScanner(r)
		b       = newMeshBuilder("gambit")
		ndfcd   int // coordinate directions
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "NUMNP"):
			if !scanner.Scan() {
				return nil, fmt.Errorf("gambit: unexpected EOF in problem size section")
			}
			v, err := parseInts(strings.Fields(scanner.Text()))
			if err != nil || len(v) < 5 {
				return nil, fmt.Errorf("gambit: invalid problem size line: %s", scanner.Text())
			}
			if ndfcd = v[4]; ndfcd < 1 || ndfcd > 3 {
				return nil, fmt.Errorf("gambit: unsupported coordinate directions NDFCD=%d", ndfcd)
			}

		case strings.HasPrefix(line, "NODAL COORDINATES"):
			if ndfcd == 0 {
				return nil, fmt.Errorf("gambit: NODAL COORDINATES before the problem size section")
			}
			if err := readGambitNodes(scanner, b, ndfcd); err != nil {
				return nil, err
			}

		case strings.HasPrefix(line, "ELEMENTS/CELLS"):
			if err := readGambitElements(scanner, b); err != nil {
				return nil, err
			}
		}
		// Element groups and boundary conditions are passed over
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if ndfcd == 0 {
		return nil, fmt.Errorf("gambit: missing problem size section")
	}
	return b.build()
}

func readGambitNodes(scanner *bufio.Scanner, b *meshBuilder, ndfcd int) error {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 1 && fields[0] == "ENDOFSECTION" {
			return nil
		}
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 1+ndfcd {
			return fmt.Errorf("gambit: invalid node line: expected %d coordinates", ndfcd)
		}
		tag, err := parseInts(fields[:1])
		if err != nil {
			return err
		}
		x, err := parseCoords(fields[1 : 1+ndfcd])
		if err != nil {
			return err
		}
		if err = b.addNode(tag[0], x); err != nil {
			return err
		}
	}
	return fmt.Errorf("gambit: unexpected EOF in NODAL COORDINATES")
}

// readGambitElements reads NE NTYPE NDP NODE..., the node list continues on
// the following lines when it is longer than the record.
func readGambitElements(scanner *bufio.Scanner, b *meshBuilder) error {
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 1 && fields[0] == "ENDOFSECTION" {
			return nil
		}
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return fmt.Errorf("gambit: invalid element line: %s", scanner.Text())
		}
		v, err := parseInts(fields)
		if err != nil {
			return err
		}
		ne, ntype, ndp := v[0], v[1], v[2]
		for len(v) < 3+ndp {
			if !scanner.Scan() {
				return fmt.Errorf("gambit: unexpected EOF in nodes of element %d", ne)
			}
			more, err := parseInts(strings.Fields(scanner.Text()))
			if err != nil {
				return err
			}
			v = append(v, more...)
		}
		kind, ok := gambitElementKind[ntype]
		if !ok {
			dim, known := gambitElementDim[ntype]
			if !known {
				return fmt.Errorf("gambit: unknown element type %d", ntype)
			}
			b.addUnsupported(dim)
			continue
		}
		if ndp != kind.Dim()+1 {
			return fmt.Errorf("gambit: element %d of type %s has %d nodes, high order elements are not supported",
				ne, kind, ndp)
		}
		b.addElement(kind, v[3:3+ndp])
	}
	return fmt.Errorf("gambit: unexpected EOF in ELEMENTS/CELLS")
}
