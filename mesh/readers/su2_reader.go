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

// su2ElementKind maps SU2/VTK element type identifiers to cell kinds
var su2ElementKind = map[int]mesh.CellKind{
	1:  mesh.Point,       // VTK_VERTEX
	3:  mesh.Interval,    // VTK_LINE
	5:  mesh.Triangle,    // VTK_TRIANGLE
	10: mesh.Tetrahedron, // VTK_TETRA
}

var su2ElementDim = map[int]int{
	9:  2, // VTK_QUAD
	12: 3, // VTK_HEXAHEDRON
	13: 3, // VTK_WEDGE
	14: 3, // VTK_PYRAMID
}

// ReadSU2 reads an SU2 native format file
func ReadSU2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening su2 file")
	}
	defer file.Close()
	return readSU2(file)
}

func readSU2(r io.Reader) (*mesh.Mesh, error) {
	var (
		scanner  = bufio.NewScanner(r)
		b        = newMeshBuilder("su2")
		ndime    int
		hasNDIME bool
		hasNPOIN bool
	)
	next := func(what string) ([]string, error) {
		for scanner.Scan() {
			line := stripSU2Comment(scanner.Text())
			if line != "" {
				return strings.Fields(line), nil
			}
		}
		return nil, fmt.Errorf("unexpected EOF reading %s", what)
	}

	for scanner.Scan() {
		line := stripSU2Comment(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			if _, err := fmt.Sscanf(line, "NDIME=%d", &ndime); err != nil {
				return nil, fmt.Errorf("invalid NDIME line: %s", line)
			}
			if ndime < 1 || ndime > 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}

		case strings.HasPrefix(line, "NPOIN="):
			if !hasNDIME {
				return nil, fmt.Errorf("NPOIN= before NDIME=")
			}
			hasNPOIN = true
			var npoin int
			if _, err := fmt.Sscanf(line, "NPOIN=%d", &npoin); err != nil {
				return nil, fmt.Errorf("invalid NPOIN line: %s", line)
			}
			for i := 0; i < npoin; i++ {
				fields, err := next("nodes")
				if err != nil {
					return nil, err
				}
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				x, err := parseCoords(fields[:ndime])
				if err != nil {
					return nil, err
				}
				// Node ID is implicit (0-based) based on order
				if err = b.addNode(i, x); err != nil {
					return nil, err
				}
			}

		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			if _, err := fmt.Sscanf(line, "NELEM=%d", &nelem); err != nil {
				return nil, fmt.Errorf("invalid NELEM line: %s", line)
			}
			for i := 0; i < nelem; i++ {
				fields, err := next("elements")
				if err != nil {
					return nil, err
				}
				v, err := parseInts(fields)
				if err != nil {
					return nil, fmt.Errorf("element %d: %v", i, err)
				}
				kind, ok := su2ElementKind[v[0]]
				if !ok {
					dim, known := su2ElementDim[v[0]]
					if !known {
						return nil, fmt.Errorf("unknown element type: %d", v[0])
					}
					b.addUnsupported(dim)
					continue
				}
				numNodes := kind.Dim() + 1
				if len(v) < numNodes+1 {
					return nil, fmt.Errorf("element %d of type %s expects %d nodes, got %d",
						i, kind, numNodes, len(v)-1)
				}
				// A trailing element ID is ignored
				b.addElement(kind, v[1:1+numNodes])
			}

		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			if _, err := fmt.Sscanf(line, "NMARK=%d", &nmark); err != nil {
				return nil, fmt.Errorf("invalid NMARK line: %s", line)
			}
			// Boundary markers are dropped with the other lower dimensional elements
			for i := 0; i < nmark; i++ {
				tag, err := next("MARKER_TAG")
				if err != nil {
					return nil, err
				}
				if !strings.HasPrefix(tag[0], "MARKER_TAG=") {
					return nil, fmt.Errorf("expected MARKER_TAG=, got: %s", strings.Join(tag, " "))
				}
				elems, err := next("MARKER_ELEMS")
				if err != nil {
					return nil, err
				}
				var nMarkerElems int
				if _, err := fmt.Sscanf(strings.Join(elems, ""), "MARKER_ELEMS=%d", &nMarkerElems); err != nil {
					return nil, fmt.Errorf("invalid MARKER_ELEMS line: %s", strings.Join(elems, " "))
				}
				for j := 0; j < nMarkerElems; j++ {
					if _, err := next("boundary elements"); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}
	return b.build()
}

// stripSU2Comment drops text after % and surrounding space
func stripSU2Comment(line string) string {
	if idx := strings.Index(line, "%"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}
