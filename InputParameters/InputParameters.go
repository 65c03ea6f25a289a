package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML job file
type RefineParameters struct {
	Title      string      `yaml:"Title"`
	MeshFile   string      `yaml:"MeshFile"`
	OutputFile string      `yaml:"OutputFile"`
	Levels     int         `yaml:"Levels"`
	Order      bool        `yaml:"Order"`  // Order the mesh before refining
	Probes     [][]float64 `yaml:"Probes"` // Points located in the refined mesh
}

func (rp *RefineParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

// Validate checks the parameters that can be known before the mesh is read
func (rp *RefineParameters) Validate() error {
	if len(rp.MeshFile) == 0 {
		return fmt.Errorf("job file must name a MeshFile")
	}
	if rp.Levels < 0 {
		return fmt.Errorf("refinement levels must be non negative, have %d", rp.Levels)
	}
	for i, p := range rp.Probes {
		if len(p) < 1 || len(p) > 3 {
			return fmt.Errorf("probe %d has %d coordinates, need 1 to 3", i, len(p))
		}
	}
	return nil
}

func (rp *RefineParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%s]\t\t= Mesh File\n", rp.MeshFile)
	fmt.Printf("[%s]\t\t= Output File\n", rp.OutputFile)
	fmt.Printf("[%d]\t\t\t\t= Refinement Levels\n", rp.Levels)
	fmt.Printf("[%v]\t\t\t= Order\n", rp.Order)
	for i, p := range rp.Probes {
		fmt.Printf("Probes[%d] = %v\n", i, p)
	}
}
