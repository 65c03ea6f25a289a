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
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/notargets/gosimplex/InputParameters"
	"github.com/notargets/gosimplex/geometry"
	"github.com/notargets/gosimplex/mesh"
	"github.com/notargets/gosimplex/mesh/readers"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type RefineModel struct {
	GridFile   string
	OutputFile string
	Levels     int
	Order      bool
	Profile    bool
	ProfileDir string // Defaults to the working directory
	Probes     []geometry.Point
}

// RefineCmd represents the refine command
var RefineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Uniformly refine a simplicial mesh and write it in Gmsh 2.2 format",
	Long: `
Reads a mesh, orders it, splits every cell into 2^dim children n times and
writes the result. Parameters may also come from a YAML job file:

gosimplex refine -F cube.msh -n 2 -o cube_fine.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		rm, err := processRefineInput(cmd)
		if err != nil {
			log.WithError(err).Fatal("invalid refine parameters")
		}
		if err = ProfiledRefine(rm); err != nil {
			log.WithError(err).Fatal("refinement failed")
		}
	},
}

// ProfiledRefine runs RunRefine, under the CPU profiler when asked. The
// profile is written before the error is returned.
func ProfiledRefine(rm *RefineModel) error {
	if rm.Profile {
		dir := rm.ProfileDir
		if len(dir) == 0 {
			dir = "."
		}
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
	}
	_, err := RunRefine(rm)
	return err
}

func init() {
	rootCmd.AddCommand(RefineCmd)
	RefineCmd.Flags().StringP("gridFile", "F", "", "Mesh file to read in Gmsh (.msh) or SU2 (.su2) format")
	RefineCmd.Flags().StringP("outputFile", "o", "", "Gmsh (.msh) file for the refined mesh")
	RefineCmd.Flags().IntP("levels", "n", 1, "number of uniform refinement levels")
	RefineCmd.Flags().Bool("order", true, "order the mesh entities before refining")
	RefineCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML job file with:\n\t- MeshFile\n\t- Levels\n\t- Probes")
	RefineCmd.Flags().Bool("profile", false, "write a CPU profile to the current directory")
	_ = viper.BindPFlag("refine.levels", RefineCmd.Flags().Lookup("levels"))
	_ = viper.BindPFlag("refine.order", RefineCmd.Flags().Lookup("order"))
}

// processRefineInput merges the job file with the flags, an explicitly set
// flag wins over the job file.
func processRefineInput(cmd *cobra.Command) (rm *RefineModel, err error) {
	flags := cmd.Flags()
	rm = &RefineModel{
		Levels: viper.GetInt("refine.levels"),
		Order:  viper.GetBool("refine.order"),
	}
	rm.GridFile, _ = flags.GetString("gridFile")
	rm.OutputFile, _ = flags.GetString("outputFile")
	rm.Profile, _ = flags.GetBool("profile")
	icFile, _ := flags.GetString("inputConditionsFile")
	if len(icFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(icFile); err != nil {
			return nil, err
		}
		var rp InputParameters.RefineParameters
		if err = rp.Parse(data); err != nil {
			return nil, err
		}
		if err = rp.Validate(); err != nil {
			return nil, err
		}
		if log.IsLevelEnabled(log.DebugLevel) {
			rp.Print()
		}
		mergeParameters(rm, &rp, flags.Changed)
	}
	if len(rm.GridFile) == 0 {
		return nil, fmt.Errorf("must supply a grid file (-F, --gridFile) in .msh or .su2 format")
	}
	if rm.Levels < 0 {
		return nil, fmt.Errorf("refinement levels must be non negative, have %d", rm.Levels)
	}
	return
}

func mergeParameters(rm *RefineModel, rp *InputParameters.RefineParameters, changed func(string) bool) {
	if !changed("gridFile") {
		rm.GridFile = rp.MeshFile
	}
	if !changed("outputFile") && len(rp.OutputFile) != 0 {
		rm.OutputFile = rp.OutputFile
	}
	if !changed("levels") {
		rm.Levels = rp.Levels
	}
	if !changed("order") {
		rm.Order = rp.Order
	}
	for _, x := range rp.Probes {
		rm.Probes = append(rm.Probes, geometry.NewPointFromSlice(x))
	}
}

// RunRefine reads, orders and refines the mesh, then writes it when an
// output file is named.
func RunRefine(rm *RefineModel) (fine *mesh.Mesh, err error) {
	m, err := readers.ReadMeshFile(rm.GridFile)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"file":     rm.GridFile,
		"kind":     m.Kind().String(),
		"vertices": humanize.Comma(int64(m.NumVertices())),
		"cells":    humanize.Comma(int64(m.NumCells())),
	}).Info("read mesh")

	if rm.Order {
		if err = orderMesh(m); err != nil {
			return nil, err
		}
	}
	before, err := totalVolume(m)
	if err != nil {
		return nil, err
	}
	if fine, err = mesh.RefineLevels(m, rm.Levels); err != nil {
		return nil, err
	}
	if rm.Order {
		if err = orderMesh(fine); err != nil {
			return nil, err
		}
	}
	after, err := totalVolume(fine)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"levels":   rm.Levels,
		"vertices": humanize.Comma(int64(fine.NumVertices())),
		"cells":    humanize.Comma(int64(fine.NumCells())),
		"volume":   after,
		"relerr":   relativeDifference(before, after),
	}).Info("refined mesh")

	for _, p := range rm.Probes {
		var pr *ProbeResult
		if pr, err = ProbeMesh(fine, p); err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{
			"point":    p.String(),
			"cells":    pr.Cells,
			"distance": math.Sqrt(pr.SquaredDistance),
		}).Info("probe")
	}

	if len(rm.OutputFile) != 0 {
		if err = readers.WriteMeshFile(rm.OutputFile, fine); err != nil {
			return nil, err
		}
		log.WithField("file", rm.OutputFile).Info("wrote mesh")
	}
	return
}

// orderMesh builds the connectivity the ordering pass rewrites and orders
// every cell.
func orderMesh(m *mesh.Mesh) error {
	tdim := m.Dim()
	for d := 1; d < tdim; d++ {
		if _, err := m.Init(d); err != nil {
			return err
		}
	}
	if tdim == 3 {
		if err := m.InitConnectivity(2, 1); err != nil {
			return err
		}
	}
	return m.Order()
}

func totalVolume(m *mesh.Mesh) (vol float64, err error) {
	if m.Dim() == 0 {
		return
	}
	for _, c := range m.Cells() {
		var v float64
		if v, err = c.Volume(); err != nil {
			return
		}
		vol += v
	}
	return
}

func relativeDifference(a, b float64) float64 {
	if a == 0 {
		return math.Abs(b)
	}
	return math.Abs(b-a) / math.Abs(a)
}
