package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/gosimplex/mesh"
)

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".msh":
		return ReadGmshAuto(filename)
	case ".su2":
		return ReadSU2(filename)
	case ".neu":
		return ReadGambitNeutral(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// WriteMeshFile writes a mesh file based on extension
func WriteMeshFile(filename string, m *mesh.Mesh) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".msh":
		return WriteGmsh22File(filename, m)
	default:
		return fmt.Errorf("unsupported output mesh format: %s", ext)
	}
}
