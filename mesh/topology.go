package mesh

import (
	"fmt"
	"slices"
)

// Topology holds the entity counts and the (d0, d1) connectivity tables of
// a mesh, plus the global vertex numbering the ordering pass sorts by.
type Topology struct {
	dim                 int
	numEntities         []int
	connectivity        [][]*Connectivity // [d0][d1], nil until computed
	globalVertexIndices []int
}

func NewTopology(dim int) (t *Topology) {
	t = &Topology{
		dim:          dim,
		numEntities:  make([]int, dim+1),
		connectivity: make([][]*Connectivity, dim+1),
	}
	for d := range t.connectivity {
		t.connectivity[d] = make([]*Connectivity, dim+1)
	}
	return
}

func (t *Topology) Dim() int { return t.dim }

// Size is the number of entities of dimension d, zero if not computed.
func (t *Topology) Size(d int) int {
	if d < 0 || d > t.dim {
		return 0
	}
	return t.numEntities[d]
}

// Connectivity returns the (d0, d1) table. An absent table reads as empty.
func (t *Topology) Connectivity(d0, d1 int) *Connectivity {
	if d0 < 0 || d0 > t.dim || d1 < 0 || d1 > t.dim {
		return nil
	}
	return t.connectivity[d0][d1]
}

func (t *Topology) Empty(d0, d1 int) bool {
	return t.Connectivity(d0, d1).Empty()
}

func (t *Topology) set(d0, d1 int, c *Connectivity) {
	t.connectivity[d0][d1] = c
}

func (t *Topology) GlobalVertexIndices() []int {
	return t.globalVertexIndices
}

// SetGlobalVertexIndices installs a numbering that must be total and
// injective over the local vertices.
func (t *Topology) SetGlobalVertexIndices(global []int) error {
	if len(global) != t.numEntities[0] {
		return configErrorf("global vertex numbering has %d entries for %d vertices",
			len(global), t.numEntities[0])
	}
	seen := make(map[int]int, len(global))
	for local, g := range global {
		if prev, ok := seen[g]; ok {
			return configErrorf("global vertex index %d assigned to local vertices %d and %d",
				g, prev, local)
		}
		seen[g] = local
	}
	t.globalVertexIndices = slices.Clone(global)
	return nil
}

func (t *Topology) Clone() *Topology {
	c := NewTopology(t.dim)
	copy(c.numEntities, t.numEntities)
	for d0 := range t.connectivity {
		for d1, conn := range t.connectivity[d0] {
			c.connectivity[d0][d1] = conn.Clone()
		}
	}
	c.globalVertexIndices = slices.Clone(t.globalVertexIndices)
	return c
}

// Equal compares counts and every connectivity table.
func (t *Topology) Equal(o *Topology) bool {
	if t.dim != o.dim || !slices.Equal(t.numEntities, o.numEntities) {
		return false
	}
	for d0 := range t.connectivity {
		for d1 := range t.connectivity[d0] {
			if !t.connectivity[d0][d1].Equal(o.connectivity[d0][d1]) {
				return false
			}
		}
	}
	return true
}

func (t *Topology) String() (s string) {
	s = fmt.Sprintf("Topology of dimension %d\n", t.dim)
	for d := 0; d <= t.dim; d++ {
		s += fmt.Sprintf("  %d entities of dimension %d\n", t.numEntities[d], d)
	}
	for d0 := range t.connectivity {
		for d1, c := range t.connectivity[d0] {
			if !c.Empty() {
				s += fmt.Sprintf("  (%d, %d): %s\n", d0, d1, c)
			}
		}
	}
	return
}
