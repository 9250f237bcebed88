package circuit

import (
	"testing"

	"github.com/kegliz/qreduce/qc/depmatrix"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/planner"
	"github.com/kegliz/qreduce/qc/qerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellCircuit() *Circuit {
	c := New(2, "bell")
	c.H(0).CX(0, 1).Measure(0, "").Measure(1, "")
	return c
}

func TestFluentBuildAccumulatesHistory(t *testing.T) {
	c := bellCircuit()
	require.NoError(t, c.Err())
	assert.Equal(t, 4, len(c.History()))
	assert.Equal(t, []string{"c0", "c1"}, c.OutputIDs())
	assert.Equal(t, 2, c.Width())
}

func TestMeasureReusesExplicitMid(t *testing.T) {
	c := New(1, "single")
	c.Measure(0, "result").Measure(0, "result")
	require.NoError(t, c.Err())
	assert.Equal(t, []string{"result"}, c.OutputIDs(), "repeated mid should not duplicate an output id")
}

func TestBailOutStopsFurtherGates(t *testing.T) {
	c := New(1, "bad")
	c.Depolarizing(1.5, 0) // out-of-range probability bails out immediately
	require.Error(t, c.Err())

	before := len(c.History())
	c.H(0)
	assert.Equal(t, before, len(c.History()), "gates after the first error must be no-ops")
}

func TestWithGroupTagsLastGate(t *testing.T) {
	c := New(2, "grouped")
	c.CZ(0, 1).WithGroup("z_group")
	require.NoError(t, c.Err())
	assert.Equal(t, "z_group", c.History()[len(c.History())-1].GroupTag)
}

func TestWithGroupNoopOnEmptyHistory(t *testing.T) {
	c := New(1, "empty")
	c.WithGroup("z_group")
	assert.Empty(t, c.History())
}

func TestResetAppendsResetRecord(t *testing.T) {
	c := New(1, "reset")
	c.H(0).Reset(0)
	require.NoError(t, c.Err())
	last := c.History()[len(c.History())-1]
	assert.True(t, gate.IsReset(last.Name))
}

func TestDepolarizingRejectsOutOfRangeProbability(t *testing.T) {
	c := New(1, "noisy")
	c.Depolarizing(1.5, 0)
	require.ErrorIs(t, c.Err(), qerr.ErrInvalidProbability)
}

func TestToDAGSkipsResetWhenRequested(t *testing.T) {
	c := New(1, "reset")
	c.H(0).Reset(0).Measure(0, "")
	require.NoError(t, c.Err())

	withoutReset, err := c.ToDAG(false)
	require.NoError(t, err)
	for _, n := range withoutReset.Nodes {
		assert.False(t, gate.IsReset(n.Record.Name))
	}

	withReset, err := c.ToDAG(true)
	require.NoError(t, err)
	assert.Greater(t, len(withReset.Nodes), len(withoutReset.Nodes))
}

func TestBiadjacencyAndCandidateAgree(t *testing.T) {
	c := New(2, "bell")
	c.H(0).CX(0, 1).Measure(0, "").Measure(1, "")
	require.NoError(t, c.Err())

	b, cand, err := c.BiadjacencyAndCandidate(depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	assert.True(t, depmatrix.CheckIdentity(b, cand))
}

func TestCompileReducesWidthAndLeavesReceiverUntouched(t *testing.T) {
	secret := []bool{true, false, true}
	n := len(secret)
	width := n + 1

	c := New(width, "bv")
	c.X(n).H(n)
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i, bit := range secret {
		if bit {
			c.CX(i, n)
		}
	}
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i := 0; i < n; i++ {
		c.Measure(i, "")
	}
	require.NoError(t, c.Err())

	originalWidth := c.Width()
	compiled, plan, err := c.Compile(planner.MethodDeterministicGreedy)
	require.NoError(t, err)

	assert.Equal(t, originalWidth, c.Width(), "Compile must not mutate the receiver")
	assert.LessOrEqual(t, compiled.Width(), originalWidth)
	assert.Equal(t, compiled.Width(), plan.Width)
}

func TestCompileInPlaceMutatesReceiver(t *testing.T) {
	c := bellCircuit()
	require.NoError(t, c.Err())

	originalWidth := c.Width()
	plan, err := c.CompileInPlace(planner.MethodDeterministicGreedy)
	require.NoError(t, err)
	assert.LessOrEqual(t, c.Width(), originalWidth)
	assert.Equal(t, c.Width(), plan.Width)
}

func TestCompileInvalidMethodErrors(t *testing.T) {
	c := bellCircuit()
	require.NoError(t, c.Err())
	_, _, err := c.Compile("not-a-method")
	require.ErrorIs(t, err, qerr.ErrInvalidMethod)
}

func TestRemapIndicesCompactsWires(t *testing.T) {
	c := New(5, "sparse")
	c.H(3).CX(3, 4).Measure(3, "").Measure(4, "")
	require.NoError(t, c.Err())

	err := c.RemapIndices(nil, false)
	require.NoError(t, err)

	seen := map[int]bool{}
	for _, rec := range c.History() {
		for _, w := range rec.Wires {
			seen[w] = true
		}
	}
	assert.Equal(t, map[int]bool{0: true, 1: true}, seen, "first-use wires 3,4 should compact to 0,1")
}

func TestHistorySnapshotRoundTrips(t *testing.T) {
	c := bellCircuit()
	require.NoError(t, c.Err())

	snap := c.HistorySnapshot()
	defer ReturnHistorySnapshot(snap)

	assert.Equal(t, c.History(), snap)
}

func TestMeasureAllMeasuresEveryReferencedWireAscending(t *testing.T) {
	c := New(4, "measure-all")
	c.H(2).CX(2, 0)
	c.MeasureAll()
	require.NoError(t, c.Err())

	var measured []int
	for _, rec := range c.History() {
		if gate.IsMeasurement(rec.Name) {
			measured = append(measured, rec.Wires[0])
		}
	}
	assert.Equal(t, []int{0, 2}, measured, "only wires 0 and 2 were referenced, wire 3 was never touched")
	assert.Equal(t, []string{"c0", "c2"}, c.OutputIDs())
}

func TestMeasureAllNoopOnEmptyHistory(t *testing.T) {
	c := New(3, "empty")
	c.MeasureAll()
	require.NoError(t, c.Err())
	assert.Empty(t, c.History())
}

func TestRunWithoutRegisteredBackendErrors(t *testing.T) {
	// qc/circuit never imports qc/simulator (RegisterRunFunc exists to
	// break that cycle), but the external scenario tests in this test
	// binary import qc/benchmark, which pulls qc/simulator in and installs
	// a backend from its init. Clear it for this test: with no backend
	// installed, Run must fail loudly rather than silently no-op.
	saved := runBackend
	RegisterRunFunc(nil)
	t.Cleanup(func() { RegisterRunFunc(saved) })
	require.Nil(t, runBackend)
	c := bellCircuit()
	require.NoError(t, c.Err())
	_, err := c.Run(10, "itsu")
	require.Error(t, err)
}

func TestDepthCountsTopologicalLayers(t *testing.T) {
	c := New(2, "chain")
	c.H(0).H(0).Measure(0, "")
	require.NoError(t, c.Err())
	assert.GreaterOrEqual(t, c.Depth(), 2)
}
