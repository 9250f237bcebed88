package dag

import (
	"errors"
	"testing"

	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/qerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGate(t *testing.T, name string, wires []int, opts ...gate.Option) gate.Record {
	t.Helper()
	r, err := gate.NewGate(name, wires, opts...)
	require.NoError(t, err)
	return r
}

func TestBuildRootsAndTerminals(t *testing.T) {
	h0 := mustGate(t, "h", []int{0})
	cx := mustGate(t, "cx", []int{0, 1})
	m0 := gate.NewMeasurement(0, "c0")
	m1 := gate.NewMeasurement(1, "c1")

	d, err := Build([]gate.Record{h0, cx, m0, m1}, 2, true)
	require.NoError(t, err)
	require.Len(t, d.Nodes, 4)

	assert.Equal(t, 0, d.Roots[0]) // h0 first touches wire 0
	assert.Equal(t, 1, d.Roots[1]) // cx first touches wire 1
	assert.Equal(t, 2, d.Terminals[0])
	assert.Equal(t, 3, d.Terminals[1])

	assert.ElementsMatch(t, []int{0}, d.Nodes[1].Parents)
	assert.ElementsMatch(t, []int{1}, d.Nodes[2].Parents)
}

func TestBuildMalformedOutOfRangeWire(t *testing.T) {
	bad := gate.Record{Name: "h", Wires: []int{5}, Signature: gate.NextSignature()}
	_, err := Build([]gate.Record{bad}, 2, true)
	require.True(t, errors.Is(err, qerr.ErrMalformedCircuit))
}

func TestTopoSortDeterministic(t *testing.T) {
	h0 := mustGate(t, "h", []int{0})
	h1 := mustGate(t, "h", []int{1})
	cx := mustGate(t, "cx", []int{0, 1})

	d, err := Build([]gate.Record{h0, h1, cx}, 2, true)
	require.NoError(t, err)

	order, err := d.TopoSort()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSiblingGrouping(t *testing.T) {
	cz01 := mustGate(t, "cz", []int{0, 1}, gate.WithGroupTag("z_group"))
	cz12 := mustGate(t, "cz", []int{1, 2}, gate.WithGroupTag("z_group"))

	d, err := Build([]gate.Record{cz01, cz12}, 3, true)
	require.NoError(t, err)

	g := d.SiblingGroup(0)
	require.NotZero(t, g)
	assert.Equal(t, g, d.SiblingGroup(1))
	assert.Equal(t, []int{0, 1}, d.GroupMembers(g))
}

func TestAddEdgeAndCycleDetection(t *testing.T) {
	h0 := mustGate(t, "h", []int{0})
	h1 := mustGate(t, "h", []int{1})
	d, err := Build([]gate.Record{h0, h1}, 2, true)
	require.NoError(t, err)

	assert.False(t, d.HasCycle())
	d.AddEdge(0, 1)
	assert.False(t, d.HasCycle())
	d.AddEdge(1, 0)
	assert.True(t, d.HasCycle())
}

func TestResetSkippedWhenFlagFalse(t *testing.T) {
	h0 := mustGate(t, "h", []int{0})
	reset0 := gate.NewReset(0)
	d, err := Build([]gate.Record{h0, reset0}, 1, false)
	require.NoError(t, err)
	assert.Len(t, d.Nodes, 1)
}
