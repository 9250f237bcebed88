package planner

import (
	"math/rand/v2"

	"github.com/kegliz/qreduce/qc/dag"
)

// runGreedyCore implements both 4.E.1 (deterministic) and 4.E.2 (random)
// greedy: only how the "next to measure" tie among minimizers is broken
// differs (smallest index vs. uniformly at random), so both share this
// core. rng == nil selects the deterministic tie-break.
//
// Grounded on the DCKF reference's _construct_measurement_order_by_greedy
// and _manage_qubit_reuse: a register (list of physical slots) is grown
// on demand, wires are "activated" into the first free slot before the
// measurement that needs them, and recycled the moment their measurement
// completes.
func runGreedyCore(d *dag.DAG, cone *causalConeProvider, first int, rng *rand.Rand) Plan {
	w := d.Width
	measured := make([]bool, w)
	activated := make([]bool, w)
	measuredCone := make([]bool, w)

	reg := newRegister()
	order := make([]int, 0, w)
	var edges []Edge

	activateWire := func(q int) {
		if activated[q] {
			return
		}
		activated[q] = true
		if edge, reused := reg.activate(q); reused {
			edges = append(edges, edge)
		}
	}

	measureWire := func(q int) {
		for _, i := range wiresWhere(cone.Cone(q)) {
			activateWire(i)
		}
		reg.free(q)
		order = append(order, q)
		measured[q] = true
		unionInto(measuredCone, cone.Cone(q))
	}

	measureWire(first)

	for len(order) != w {
		next := pickNext(cone, measured, measuredCone, rng)
		measureWire(next)
	}

	return Plan{MeasurementOrder: order, ReuseEdges: edges, Width: len(reg.slots)}
}

// pickNext selects the unmeasured wire whose causal cone adds the fewest
// new wires to the measured union. Ties are broken by
// smallest index (rng == nil) or uniformly at random among minimizers.
func pickNext(cone *causalConeProvider, measured, measuredCone []bool, rng *rand.Rand) int {
	bestSize := len(measured) + 1
	var tied []int
	for q := range measured {
		if measured[q] {
			continue
		}
		size := unionSize(measuredCone, cone.Cone(q))
		if size < bestSize {
			bestSize = size
			tied = tied[:0]
			tied = append(tied, q)
		} else if size == bestSize {
			tied = append(tied, q)
		}
	}
	if rng != nil && len(tied) > 1 {
		return tied[rng.IntN(len(tied))]
	}
	return tied[0]
}

func wiresWhere(set []bool) []int {
	out := make([]int, 0, len(set))
	for i, v := range set {
		if v {
			out = append(out, i)
		}
	}
	return out
}
