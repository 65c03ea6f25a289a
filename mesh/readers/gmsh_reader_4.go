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

// ReadGmsh4 reads a Gmsh MSH file format version 4.x
func ReadGmsh4(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "opening gmsh file")
	}
	defer file.Close()
	return readGmsh4(file)
}

func readGmsh4(r io.Reader) (*mesh.Mesh, error) {
	var (
		scanner = newGmshScanner(r)
		b       = newMeshBuilder("gmsh 4")
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
			if err := readNodes4(scanner, b); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements4(scanner, b); err != nil {
				return nil, err
			}

		default:
			// $Entities, $PartitionedEntities, $Periodic, $GhostElements and
			// the data sections carry nothing a simplicial kernel uses
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

func readNodes4(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	// Format: numEntityBlocks numNodes minNodeTag maxNodeTag
	header := strings.Fields(scanner.Text())
	if len(header) < 4 {
		return fmt.Errorf("invalid Nodes header")
	}
	numEntityBlocks, err := parseCount(header[0], "node entity block count")
	if err != nil {
		return err
	}

	for i := 0; i < numEntityBlocks; i++ {
		// Read entity info: entityDim entityTag parametric numNodes
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in node entity block %d", i)
		}
		blockHeader := strings.Fields(scanner.Text())
		if len(blockHeader) < 4 {
			return fmt.Errorf("invalid node block header")
		}
		numNodesInBlock, err := parseCount(blockHeader[3], "node block size")
		if err != nil {
			return err
		}

		// All tags of the block come before the coordinates
		nodeTags := make([]int, numNodesInBlock)
		for j := range nodeTags {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected EOF reading node tags")
			}
			tag, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil {
				return fmt.Errorf("invalid node tag: %v", err)
			}
			nodeTags[j] = tag
		}

		// Parametric coordinates, if any, trail x y z and are ignored
		for _, tag := range nodeTags {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected EOF reading node coordinates")
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) < 3 {
				return fmt.Errorf("invalid node coordinate line")
			}
			x, err := parseCoords(fields[:3])
			if err != nil {
				return err
			}
			if err = b.addNode(tag, x); err != nil {
				return err
			}
		}
	}
	return skipSection(scanner, "$EndNodes")
}

func readElements4(scanner *bufio.Scanner, b *meshBuilder) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}

	// Format: numEntityBlocks numElements minElementTag maxElementTag
	header := strings.Fields(scanner.Text())
	if len(header) < 4 {
		return fmt.Errorf("invalid Elements header")
	}
	numEntityBlocks, err := parseCount(header[0], "element entity block count")
	if err != nil {
		return err
	}

	for i := 0; i < numEntityBlocks; i++ {
		// Read entity info: entityDim entityTag elementType numElements
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in element entity block %d", i)
		}
		blockHeader := strings.Fields(scanner.Text())
		if len(blockHeader) < 4 {
			return fmt.Errorf("invalid element block header")
		}
		gmshType, err := parseCount(blockHeader[2], "element type")
		if err != nil {
			return err
		}
		numElemsInBlock, err := parseCount(blockHeader[3], "element block size")
		if err != nil {
			return err
		}

		kind, ok := gmshElementKind[gmshType]
		if !ok {
			dim, known := gmshElementDim[gmshType]
			for j := 0; j < numElemsInBlock; j++ {
				if !scanner.Scan() {
					return fmt.Errorf("unexpected EOF reading elements")
				}
				if known {
					b.addUnsupported(dim)
				}
			}
			continue
		}

		expectedNodes := kind.Dim() + 1
		for j := 0; j < numElemsInBlock; j++ {
			if !scanner.Scan() {
				return fmt.Errorf("unexpected EOF reading elements")
			}
			fields := strings.Fields(scanner.Text())
			if len(fields) < 1+expectedNodes {
				return fmt.Errorf("invalid element line: expected at least %d fields, got %d",
					1+expectedNodes, len(fields))
			}
			nodeIDs, err := parseInts(fields[1 : 1+expectedNodes])
			if err != nil {
				return fmt.Errorf("element %s: %v", fields[0], err)
			}
			b.addElement(kind, nodeIDs)
		}
	}
	return skipSection(scanner, "$EndElements")
}
