// Package relinearize applies a reuse plan to a DAG and rewrites it into a
// concrete dynamic gate schedule: a topological order over the augmented
// graph, physical wire allocation, and inserted measure/reset pairs.
package relinearize

import (
	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/planner"
	"github.com/kegliz/qreduce/qc/qerr"
)

// Result is the rewritten gate history plus the logical-to-physical wire
// mapping re-linearization produced.
type Result struct {
	History           []gate.Record
	LogicalToPhysical map[int]int
	Width             int
}

// Apply builds G' = G ∪ plan.ReuseEdges, rejects with qerr.ErrPlanCyclic
// if that introduces a cycle (defensive: a correct planner never produces
// this), computes a topological order, and walks it allocating physical
// wires with a first-free-slot register (ties broken by smallest index),
// emitting measure/reset pairs at each reuse point.
func Apply(d *dag.DAG, plan planner.Plan) (Result, error) {
	for _, e := range plan.ReuseEdges {
		d.AddEdge(d.Terminals[e.From], d.Roots[e.To])
	}
	if d.HasCycle() {
		return Result{}, qerr.Cyclic("reuse plan introduces a cycle in the augmented DAG")
	}
	order, err := d.TopoSort()
	if err != nil {
		return Result{}, err
	}

	logicalToPhysical := make(map[int]int)
	physicalOf := make(map[int]int) // logical wire -> current physical slot
	slots := make([]int, 0)         // slots[i] = logical wire occupying physical slot i, or -1

	allocate := func(logical int) int {
		for slot, occ := range slots {
			if occ == -1 {
				slots[slot] = logical
				return slot
			}
		}
		slots = append(slots, logical)
		return len(slots) - 1
	}

	var history []gate.Record
	seenWire := make(map[int]bool)
	for _, nodeIdx := range order {
		n := d.Nodes[nodeIdx]

		// First touch of a wire on this node allocates it its physical
		// slot, which may be one just vacated by a reset below, via
		// allocate()'s first-free-slot scan.
		for _, w := range n.Record.Wires {
			if !seenWire[w] {
				seenWire[w] = true
				slot := allocate(w)
				physicalOf[w] = slot
				logicalToPhysical[w] = slot
			}
		}

		history = append(history, remapRecord(n.Record, physicalOf))

		if gate.IsMeasurement(n.Record.Name) {
			w := n.Record.Wires[0]
			if _, ok := findReuseSource(plan.ReuseEdges, w); ok {
				slot := physicalOf[w]
				history = append(history, gate.NewReset(slot))
				slots[slot] = -1
			}
		}
	}

	return Result{History: history, LogicalToPhysical: logicalToPhysical, Width: len(slots)}, nil
}

func findReuseSource(edges []planner.Edge, measured int) (int, bool) {
	for _, e := range edges {
		if e.From == measured {
			return e.To, true
		}
	}
	return 0, false
}

// remapRecord rewrites a gate record's wires from logical to physical
// indices, preserving all other metadata (signature, group tag, mid).
func remapRecord(r gate.Record, physicalOf map[int]int) gate.Record {
	wires := make([]int, len(r.Wires))
	for i, w := range r.Wires {
		wires[i] = physicalOf[w]
	}
	out := r
	out.Wires = wires
	return out
}

// RemapIndices applies a user-supplied remap of physical wire indices
// (an explicit remap), or compacts indices to [0, width) in
// first-use order when remap is nil.
func RemapIndices(res Result, remap map[int]int) Result {
	if remap == nil {
		remap = compactRemap(res)
	}
	newHistory := make([]gate.Record, len(res.History))
	for i, r := range res.History {
		newHistory[i] = remapRecord(r, remap)
	}
	newLTP := make(map[int]int, len(res.LogicalToPhysical))
	for logical, phys := range res.LogicalToPhysical {
		newLTP[logical] = remap[phys]
	}
	return Result{History: newHistory, LogicalToPhysical: newLTP, Width: res.Width}
}

func compactRemap(res Result) map[int]int {
	remap := make(map[int]int)
	next := 0
	for _, r := range res.History {
		for _, w := range r.Wires {
			if _, ok := remap[w]; !ok {
				remap[w] = next
				next++
			}
		}
	}
	return remap
}
