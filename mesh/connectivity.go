package mesh

import (
	"fmt"
	"slices"
)

// Connectivity maps each entity of one dimension to an ordered list of
// entities of another dimension. Rows are stored back to back in a single
// arena so that Row hands out views which the ordering pass may permute in
// place.
type Connectivity struct {
	connections []int
	offsets     []int // len(offsets) == Size()+1 once populated
}

func NewConnectivity(rows [][]int) (c *Connectivity) {
	c = &Connectivity{offsets: make([]int, len(rows)+1)}
	var total int
	for _, r := range rows {
		total += len(r)
	}
	c.connections = make([]int, 0, total)
	for i, r := range rows {
		c.connections = append(c.connections, r...)
		c.offsets[i+1] = len(c.connections)
	}
	return
}

// NewUniformConnectivity allocates n rows of width entries each.
func NewUniformConnectivity(n, width int) (c *Connectivity) {
	c = &Connectivity{
		connections: make([]int, n*width),
		offsets:     make([]int, n+1),
	}
	for i := range c.offsets {
		c.offsets[i] = i * width
	}
	return
}

func (c *Connectivity) Empty() bool {
	return c == nil || len(c.offsets) < 2
}

// Size is the number of rows.
func (c *Connectivity) Size() int {
	if c.Empty() {
		return 0
	}
	return len(c.offsets) - 1
}

func (c *Connectivity) Len(i int) int {
	return c.offsets[i+1] - c.offsets[i]
}

// Row returns the connections of entity i. The slice aliases the arena.
func (c *Connectivity) Row(i int) []int {
	if c.Empty() {
		return nil
	}
	lo, hi := c.offsets[i], c.offsets[i+1]
	return c.connections[lo:hi:hi]
}

func (c *Connectivity) Clone() *Connectivity {
	if c == nil {
		return nil
	}
	return &Connectivity{
		connections: slices.Clone(c.connections),
		offsets:     slices.Clone(c.offsets),
	}
}

func (c *Connectivity) Equal(o *Connectivity) bool {
	if c.Empty() || o.Empty() {
		return c.Empty() == o.Empty()
	}
	return slices.Equal(c.offsets, o.offsets) && slices.Equal(c.connections, o.connections)
}

// Transpose builds the inverse map for a target dimension with n entities.
// Rows of the result list source entities in ascending order.
func (c *Connectivity) Transpose(n int) *Connectivity {
	rows := make([][]int, n)
	for i := 0; i < c.Size(); i++ {
		for _, j := range c.Row(i) {
			rows[j] = append(rows[j], i)
		}
	}
	return NewConnectivity(rows)
}

func (c *Connectivity) String() string {
	return fmt.Sprintf("Connectivity{rows: %d, connections: %d}", c.Size(), len(c.connections))
}
