package qsim

import (
	"testing"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOnceDeterministicXMeasurement(t *testing.T) {
	runner := NewQSimRunner()
	c := circuit.New(1, "x-measure")
	c.X(0).Measure(0, "")
	require.NoError(t, c.Err())

	key, err := runner.RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "1", key)
}

func TestRunOnceAppliesReset(t *testing.T) {
	runner := NewQSimRunner()
	c := circuit.New(1, "reset-demo")
	c.X(0).Reset(0).Measure(0, "")
	require.NoError(t, c.Err())

	key, err := runner.RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "0", key)
}

func TestGetResultProbabilitiesBellState(t *testing.T) {
	runner := NewQSimRunner()
	c := circuit.New(2, "bell")
	c.H(0).CX(0, 1)
	require.NoError(t, c.Err())

	probs, err := runner.GetResultProbabilities(c)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, probs["00"], 1e-9)
	assert.InDelta(t, 0.5, probs["11"], 1e-9)
	assert.Len(t, probs, 2)
}

func TestValidateCircuitAcceptsInRangeWire(t *testing.T) {
	runner := NewQSimRunner()
	c := circuit.New(1, "bad")
	c.Measure(0, "")
	require.NoError(t, c.Err())
	require.NoError(t, runner.ValidateCircuit(c))
}

func TestApplyGateUnknownGateErrors(t *testing.T) {
	state := NewQuantumState(1, 0)
	err := state.ApplyGate(gate.Record{Name: "nonsense", Wires: []int{0}})
	require.Error(t, err)
}
