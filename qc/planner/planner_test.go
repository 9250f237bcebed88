package planner

import (
	"testing"

	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/depmatrix"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bernsteinVazirani(t *testing.T, secret string) *dag.DAG {
	t.Helper()
	w := len(secret) + 1
	var recs []gate.Record
	g := func(name string, wires ...int) gate.Record {
		r, err := gate.NewGate(name, wires)
		require.NoError(t, err)
		return r
	}
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

func TestDeterministicGreedyBernsteinVazirani(t *testing.T) {
	// S1: secret "10110" (6 wires) compiles to width 2 under
	// deterministic_greedy.
	d := bernsteinVazirani(t, "10110")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	require.True(t, depmatrix.CheckIdentity(B, C))

	plan, err := Reduce(d, B, C, MethodDeterministicGreedy)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.Width)
}

func TestWidthMonotonicity(t *testing.T) {
	d := bernsteinVazirani(t, "101")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodBooleanMatrix)
	require.NoError(t, err)
	for _, method := range []string{MethodDeterministicGreedy, MethodBruteForceGreedy} {
		plan, err := Reduce(d, B, C, method)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, plan.Width, 1)
		assert.LessOrEqual(t, plan.Width, d.Width)
	}
}

func TestBruteForceAtLeastAsGoodAsDeterministic(t *testing.T) {
	d := bernsteinVazirani(t, "110101")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)

	det, err := Reduce(d, B, C, MethodDeterministicGreedy)
	require.NoError(t, err)
	bf, err := Reduce(d, B, C, MethodBruteForceGreedy)
	require.NoError(t, err)
	assert.LessOrEqual(t, bf.Width, det.Width)
}

func TestRandomGreedyDeterministicWithSeed(t *testing.T) {
	d := bernsteinVazirani(t, "1100110011")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)

	p1, err := Reduce(d, B, C, MethodRandomGreedy, WithShots(10), WithSeed(42))
	require.NoError(t, err)
	p2, err := Reduce(d, B, C, MethodRandomGreedy, WithShots(10), WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, p1.MeasurementOrder, p2.MeasurementOrder)
	assert.Equal(t, p1.ReuseEdges, p2.ReuseEdges)
	assert.Equal(t, p1.Width, p2.Width)
}

func TestFullyEntangledNoReuse(t *testing.T) {
	var recs []gate.Record
	g := func(name string, wires ...int) gate.Record {
		r, err := gate.NewGate(name, wires)
		require.NoError(t, err)
		return r
	}
	for i := 0; i < 5; i++ {
		recs = append(recs, g("cx", i, i+1))
	}
	for i := 4; i >= 0; i-- {
		recs = append(recs, g("cx", i+1, i))
	}
	for q := 0; q < 6; q++ {
		recs = append(recs, gate.NewMeasurement(q, ""))
	}
	d, err := dag.Build(recs, 6, true)
	require.NoError(t, err)
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)

	plan, err := Reduce(d, B, C, MethodDeterministicGreedy)
	require.NoError(t, err)
	assert.Equal(t, 6, plan.Width)
	assert.Empty(t, plan.ReuseEdges)
}

func TestInvalidMethod(t *testing.T) {
	d := bernsteinVazirani(t, "1")
	B, C, err := depmatrix.Compute(d, depmatrix.MethodTransitiveClosure)
	require.NoError(t, err)
	_, err = Reduce(d, B, C, "nonsense")
	require.Error(t, err)
}
