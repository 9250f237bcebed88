package depmatrix

import (
	"testing"

	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T) *dag.DAG {
	t.Helper()
	h0 := gateMust(t, "h", []int{0})
	cx := gateMust(t, "cx", []int{0, 1})
	m0 := gate.NewMeasurement(0, "c0")
	m1 := gate.NewMeasurement(1, "c1")
	d, err := dag.Build([]gate.Record{h0, cx, m0, m1}, 2, true)
	require.NoError(t, err)
	return d
}

func gateMust(t *testing.T, name string, wires []int, opts ...gate.Option) gate.Record {
	t.Helper()
	r, err := gate.NewGate(name, wires, opts...)
	require.NoError(t, err)
	return r
}

func TestMethodAgreement(t *testing.T) {
	d := buildChain(t)
	bTC, cTC, err := Compute(d, MethodTransitiveClosure)
	require.NoError(t, err)
	bBM, cBM, err := Compute(d, MethodBooleanMatrix)
	require.NoError(t, err)
	assert.Equal(t, bTC, bBM)
	assert.Equal(t, cTC, cBM)
}

func TestDiagonalOfB(t *testing.T) {
	d := buildChain(t)
	B, _, err := Compute(d, MethodTransitiveClosure)
	require.NoError(t, err)
	for q := 0; q < d.Width; q++ {
		assert.True(t, B[q][q], "B[%d][%d] should be 1", q, q)
	}
}

func TestCandidateIdentity(t *testing.T) {
	d := buildChain(t)
	B, C, err := Compute(d, MethodTransitiveClosure)
	require.NoError(t, err)
	assert.True(t, CheckIdentity(B, C))
}

func TestInvalidMethod(t *testing.T) {
	d := buildChain(t)
	_, _, err := Compute(d, "bogus")
	require.Error(t, err)
}

func TestFullyEntangledAllOnesB(t *testing.T) {
	// A forward CX staircase (0,1)(1,2)...(4,5) followed by the reverse
	// staircase (5,4)(4,3)...(1,0) links every wire's root to every wire's
	// terminal through one connected chain, so every measurement's causal
	// cone is every initial wire (S2).
	var recs []gate.Record
	for i := 0; i < 5; i++ {
		recs = append(recs, gateMust(t, "cx", []int{i, i + 1}))
	}
	for i := 4; i >= 0; i-- {
		recs = append(recs, gateMust(t, "cx", []int{i + 1, i}))
	}
	for q := 0; q < 6; q++ {
		recs = append(recs, gate.NewMeasurement(q, ""))
	}
	d, err := dag.Build(recs, 6, true)
	require.NoError(t, err)
	B, C, err := Compute(d, MethodBooleanMatrix)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			assert.True(t, B[i][j], "B[%d][%d]", i, j)
			if i != j {
				assert.False(t, C[i][j], "C[%d][%d]", i, j)
			}
		}
	}
}
