/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gosimplex/geometry"
	"github.com/notargets/gosimplex/mesh"
	"github.com/notargets/gosimplex/mesh/readers"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type ProbeResult struct {
	Cells           []int   // Cells that contain the point
	Nearest         int     // Cell closest to the point
	SquaredDistance float64 // Squared distance to the nearest cell
}

// ProbeCmd represents the probe command
var ProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Find the cells of a mesh that contain a point",
	Long: `
Reports every cell containing the point and the squared distance from the
point to the nearest cell.

gosimplex probe -F mesh.msh -p 0.5,0.5,0.5`,
	Run: func(cmd *cobra.Command, args []string) {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		if len(gridFile) == 0 {
			log.Fatal("must supply a grid file (-F, --gridFile) in .msh or .su2 format")
		}
		ps, _ := cmd.Flags().GetString("point")
		p, err := ParsePoint(ps)
		if err != nil {
			log.WithError(err).Fatal("invalid point")
		}
		if err = RunProbe(gridFile, p, os.Stdout); err != nil {
			log.WithError(err).Fatal("probe failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(ProbeCmd)
	ProbeCmd.Flags().StringP("gridFile", "F", "", "Mesh file to read in Gmsh (.msh) or SU2 (.su2) format")
	ProbeCmd.Flags().StringP("point", "p", "0,0,0", "comma separated coordinates of the point, missing ones are zero")
}

// ParsePoint reads up to three comma separated coordinates
func ParsePoint(s string) (p geometry.Point, err error) {
	fields := strings.Split(s, ",")
	if len(fields) > 3 {
		return p, fmt.Errorf("point %q has more than three coordinates", s)
	}
	x := make([]float64, len(fields))
	for i, f := range fields {
		if x[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64); err != nil {
			return p, fmt.Errorf("point %q: %v", s, err)
		}
	}
	return geometry.NewPointFromSlice(x), nil
}

func RunProbe(gridFile string, p geometry.Point, w io.Writer) error {
	m, err := readers.ReadMeshFile(gridFile)
	if err != nil {
		return err
	}
	pr, err := ProbeMesh(m, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Point %v\n", p)
	if len(pr.Cells) == 0 {
		fmt.Fprintf(w, "  outside the mesh, nearest cell %d at distance %.6g\n",
			pr.Nearest, math.Sqrt(pr.SquaredDistance))
		return nil
	}
	for _, c := range pr.Cells {
		fmt.Fprintf(w, "  inside %v\n", m.Cell(c))
	}
	return nil
}

// ProbeMesh tests every cell, the mesh has no search structure.
func ProbeMesh(m *mesh.Mesh, p geometry.Point) (pr *ProbeResult, err error) {
	pr = &ProbeResult{Nearest: -1, SquaredDistance: math.Inf(1)}
	for _, c := range m.Cells() {
		var (
			inside bool
			d2     float64
		)
		if inside, err = c.Collides(p); err != nil {
			return nil, err
		}
		if inside {
			pr.Cells = append(pr.Cells, c.Index())
		}
		if d2, err = c.SquaredDistance(p); err != nil {
			return nil, err
		}
		if d2 < pr.SquaredDistance {
			pr.Nearest, pr.SquaredDistance = c.Index(), d2
		}
	}
	return
}
