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
	"io"
	"os"

	"github.com/notargets/gosimplex/mesh"
	"github.com/notargets/gosimplex/mesh/readers"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// QualityCmd represents the quality command
var QualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Print entity counts and cell quality statistics of a mesh",
	Long: `
Prints vertex, edge, facet and cell counts, the boundary facet count, the
largest vertex valence and the spread of cell volumes, diameters and
Jacobian condition numbers.

gosimplex quality -F mesh.msh`,
	Run: func(cmd *cobra.Command, args []string) {
		gridFile, _ := cmd.Flags().GetString("gridFile")
		if len(gridFile) == 0 {
			log.Fatal("must supply a grid file (-F, --gridFile) in .msh or .su2 format")
		}
		if err := RunQuality(gridFile, os.Stdout); err != nil {
			log.WithError(err).Fatal("quality report failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(QualityCmd)
	QualityCmd.Flags().StringP("gridFile", "F", "", "Mesh file to read in Gmsh (.msh) or SU2 (.su2) format")
}

func RunQuality(gridFile string, w io.Writer) error {
	m, err := readers.ReadMeshFile(gridFile)
	if err != nil {
		return err
	}
	s, err := mesh.ComputeStatistics(m)
	if err != nil {
		return err
	}
	s.Print(w)
	return nil
}
