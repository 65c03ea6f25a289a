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

// ReadGmsh22 reads a Gmsh MSH file format version 2.2
func ReadGmsh22(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening gmsh file")
	}
	defer file.Close()
	return readGmsh22(file)
}

func readGmsh22(r io.Reader) (*mesh.Mesh, error) {
	var (
		scanner = newGmshScanner(r)
		b       = newMeshBuilder("gmsh 2.2")
	)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, b); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, b); err != nil {
				return nil, err
			}

		default:
			// Skip $PhysicalNames, $Periodic and the data sections
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := skipSection(scanner, "$End"+line[1:]); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return b.build()
}

// readNodes22 reads "tag x y z" lines
func readNodes22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := parseCount(strings.TrimSpace(scanner.Text()), "node count")
	if err != nil {
		return err
	}

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}

		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node tag: %v", err)
		}
		x, err := parseCoords(parts[1:4])
		if err != nil {
			return err
		}
		if err = b.addNode(nodeID, x); err != nil {
			return err
		}
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndNodes" {
			break
		}
	}
	return nil
}

// readElements22 reads "id type numTags tags... nodes..." lines
func readElements22(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	numElements, err := parseCount(strings.TrimSpace(scanner.Text()), "element count")
	if err != nil {
		return err
	}

	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}

		header, err := parseInts(parts[:3])
		if err != nil {
			return fmt.Errorf("element line %d: %v", i, err)
		}
		elemID, elemType, numTags := header[0], header[1], header[2]
		if elemType < 0 || numTags < 0 {
			return fmt.Errorf("element %d: negative type %d or tag count %d", elemID, elemType, numTags)
		}
		nodeStart := 3 + numTags

		kind, ok := gmshElementKind[elemType]
		if !ok {
			if dim, known := gmshElementDim[elemType]; known {
				b.addUnsupported(dim)
			}
			continue
		}

		expectedNodes := kind.Dim() + 1
		if len(parts) < nodeStart+expectedNodes {
			return fmt.Errorf("element %d: expected %d nodes, got %d",
				elemID, expectedNodes, len(parts)-nodeStart)
		}
		nodeIDs, err := parseInts(parts[nodeStart : nodeStart+expectedNodes])
		if err != nil {
			return fmt.Errorf("element %d: %v", elemID, err)
		}
		b.addElement(kind, nodeIDs)
	}

	// Skip to end
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "$EndElements" {
			break
		}
	}
	return nil
}
