package relinearize

import (
	"testing"

	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/depmatrix"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bernsteinVazirani(t *testing.T, secret string) *dag.DAG {
	t.Helper()
	w := len(secret) + 1
	g := func(name string, wires ...int) gate.Record {
		r, err := gate.NewGate(name, wires)
		require.NoError(t, err)
		return r
	}
	var recs []gate.Record
	for i := 0; i < w-1; i++ {
		recs = append(recs, g("h", i))
	}
	recs = append(recs, g("x", w-1), g("h", w-1))
	for i, c := range secret {
		if c == '1' {
			recs = append(recs, g("cx", i, w-1))
		}
	}
	for i := 0; i < w-1; i++ {
		recs = append(recs, g("h", i))
	}
	for q := 0; q < w; q++ {
		recs = append(recs, gate.NewMeasurement(q, ""))
	}
	d, err := dag.Build(recs, w, true)
	require.NoError(t, err)
	return d
}

func TestApplyProducesCompactedWidth(t *testing.T) {
	d := bernsteinVazirani(t, "10110")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	plan, err := planner.Reduce(d, B, C, planner.MethodDeterministicGreedy)
	require.NoError(t, err)

	res, err := Apply(d, plan)
	require.NoError(t, err)
	assert.Equal(t, plan.Width, res.Width)
	assert.NotEmpty(t, res.History)

	maxPhys := -1
	for _, r := range res.History {
		for _, w := range r.Wires {
			if w > maxPhys {
				maxPhys = w
			}
		}
	}
	assert.Less(t, maxPhys, res.Width)
}

func TestApplyInsertsResetAtReuseEdges(t *testing.T) {
	d := bernsteinVazirani(t, "10110")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	plan, err := planner.Reduce(d, B, C, planner.MethodDeterministicGreedy)
	require.NoError(t, err)
	require.NotEmpty(t, plan.ReuseEdges)

	res, err := Apply(d, plan)
	require.NoError(t, err)

	resets := 0
	for _, r := range res.History {
		if gate.IsReset(r.Name) {
			resets++
		}
	}
	assert.Equal(t, len(plan.ReuseEdges), resets)
}

// Regression: a synthesized reset must carry the physical wire index of
// the slot it frees, not the logical index of the measurement that freed
// it. A logical wire number can exceed the compiled width once reuse has
// shrunk it, which an unmapped reset would then reference out of range.
func TestApplyResetUsesPhysicalWireNotLogical(t *testing.T) {
	d := bernsteinVazirani(t, "10110")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	plan, err := planner.Reduce(d, B, C, planner.MethodDeterministicGreedy)
	require.NoError(t, err)
	require.NotEmpty(t, plan.ReuseEdges)

	res, err := Apply(d, plan)
	require.NoError(t, err)

	for _, r := range res.History {
		if !gate.IsReset(r.Name) {
			continue
		}
		for _, w := range r.Wires {
			assert.GreaterOrEqualf(t, w, 0, "reset wire %d out of physical range [0,%d)", w, res.Width)
			assert.Lessf(t, w, res.Width, "reset wire %d out of physical range [0,%d)", w, res.Width)
		}
	}
}

func TestApplyRejectsCyclicAugmentation(t *testing.T) {
	g := func(name string, wires ...int) gate.Record {
		r, err := gate.NewGate(name, wires)
		require.NoError(t, err)
		return r
	}
	recs := []gate.Record{
		g("h", 0),
		g("cx", 0, 1),
		gate.NewMeasurement(0, ""),
		gate.NewMeasurement(1, ""),
	}
	d, err := dag.Build(recs, 2, true)
	require.NoError(t, err)

	// Force a reuse edge that loops wire 1's terminal back to wire 0's
	// root, which already precedes it: a cycle.
	bad := planner.Plan{
		MeasurementOrder: []int{0, 1},
		ReuseEdges:       []planner.Edge{{From: 1, To: 0}},
		Width:            1,
	}
	_, err = Apply(d, bad)
	require.Error(t, err)
}

func TestRemapIndicesCompactsInFirstUseOrder(t *testing.T) {
	d := bernsteinVazirani(t, "101")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodBooleanMatrix)
	require.NoError(t, err)
	plan, err := planner.Reduce(d, B, C, planner.MethodDeterministicGreedy)
	require.NoError(t, err)
	res, err := Apply(d, plan)
	require.NoError(t, err)

	remapped := RemapIndices(res, nil)
	assert.Equal(t, len(res.History), len(remapped.History))
	assert.Equal(t, res.Width, remapped.Width)
}

func TestRemapIndicesCustomMapping(t *testing.T) {
	d := bernsteinVazirani(t, "1")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	plan, err := planner.Reduce(d, B, C, planner.MethodDeterministicGreedy)
	require.NoError(t, err)
	res, err := Apply(d, plan)
	require.NoError(t, err)

	custom := make(map[int]int, res.Width)
	for i := 0; i < res.Width; i++ {
		custom[i] = res.Width - 1 - i // reverse the physical wires
	}
	remapped := RemapIndices(res, custom)
	for logical, origPhys := range res.LogicalToPhysical {
		assert.Equal(t, custom[origPhys], remapped.LogicalToPhysical[logical])
	}
}
