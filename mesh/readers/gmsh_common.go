package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gosimplex/mesh"
	"github.com/pkg/errors"
)

// gmshElementKind maps the linear simplex element types, shared by both
// format versions, to cell kinds.
var gmshElementKind = map[int]mesh.CellKind{
	15: mesh.Point,       // 1-node point
	1:  mesh.Interval,    // 2-node line
	2:  mesh.Triangle,    // 3-node triangle
	4:  mesh.Tetrahedron, // 4-node tetrahedron
}

// gmshElementDim gives the dimension of the other known element types so
// that a file whose cells are not linear simplices can be reported.
var gmshElementDim = map[int]int{
	3:  2, // 4-node quadrangle
	5:  3, // 8-node hexahedron
	6:  3, // 6-node prism
	7:  3, // 5-node pyramid
	8:  1, // 3-node line
	9:  2, // 6-node triangle
	10: 2, // 9-node quadrangle
	11: 3, // 10-node tetrahedron
	12: 3, // 27-node hexahedron
	13: 3, // 18-node prism
	14: 3, // 14-node pyramid
	16: 2, // 8-node quadrangle
	17: 3, // 20-node hexahedron
	18: 3, // 15-node prism
	19: 3, // 13-node pyramid
	20: 2, // 9-node triangle
	21: 2, // 10-node triangle
}

// ReadGmshAuto automatically detects the Gmsh format version and reads the file
func ReadGmshAuto(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening gmsh file")
	}
	defer file.Close()
	return readGmsh(file)
}

func readGmsh(r io.Reader) (*mesh.Mesh, error) {
	br := bufio.NewReader(r)
	version, err := peekGmshVersion(br)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(version, "4."):
		return readGmsh4(br)
	case strings.HasPrefix(version, "2."):
		return readGmsh22(br)
	}
	return nil, fmt.Errorf("unsupported Gmsh format version: %s", version)
}

// peekGmshVersion reads the version from the $MeshFormat section without
// consuming the reader.
func peekGmshVersion(br *bufio.Reader) (string, error) {
	head, _ := br.Peek(4096)
	scanner := bufio.NewScanner(strings.NewReader(string(head)))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$MeshFormat" && scanner.Scan() {
			if parts := strings.Fields(scanner.Text()); len(parts) > 0 {
				return parts[0], nil
			}
		}
	}
	return "", fmt.Errorf("could not find $MeshFormat section")
}

func newGmshScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// Increase scanner buffer for large files
	const maxScanTokenSize = 1024 * 1024 * 10 // 10MB
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)
	return scanner
}

// readMeshFormat checks the MeshFormat section for an ASCII file
func readMeshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType != 0 {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	return skipSection(scanner, "$EndMeshFormat")
}

func skipSection(scanner *bufio.Scanner, endMarker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF while looking for %s", endMarker)
}

// parseCount reads a count, type or tag field, none of which can be negative
func parseCount(field, what string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", what, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: %d is negative", what, n)
	}
	return n, nil
}

func parseCoords(fields []string) (x []float64, err error) {
	x = make([]float64, len(fields))
	for i, f := range fields {
		if x[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, fmt.Errorf("invalid coordinate: %v", err)
		}
	}
	return
}

func parseInts(fields []string) (v []int, err error) {
	v = make([]int, len(fields))
	for i, f := range fields {
		if v[i], err = strconv.Atoi(f); err != nil {
			return nil, fmt.Errorf("invalid integer: %v", err)
		}
	}
	return
}
