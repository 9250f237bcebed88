package planner

import (
	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/depmatrix"
)

// causalConeProvider isolates cone computation behind a small capability,
// so the greedy cores stay identical whether or not commuting groups are
// present. It reads cones straight from B's columns; it does no sibling
// handling of its own, because depmatrix has already made sibling-group
// members mutually reachable when it built B.
type causalConeProvider struct {
	b         depmatrix.Matrix
	width     int
}

func newCausalConeProvider(d *dag.DAG, b depmatrix.Matrix) *causalConeProvider {
	return &causalConeProvider{b: b, width: d.Width}
}

// Cone returns the set of initial wires in the causal cone of measurement
// q, as a boolean membership set indexed by wire.
func (c *causalConeProvider) Cone(q int) []bool {
	cone := make([]bool, c.width)
	for i := 0; i < c.width; i++ {
		cone[i] = c.b[i][q]
	}
	return cone
}

func unionSize(a, b []bool) int {
	n := 0
	for i := range a {
		if a[i] || b[i] {
			n++
		}
	}
	return n
}

func unionInto(dst, src []bool) {
	for i := range dst {
		if src[i] {
			dst[i] = true
		}
	}
}
