package simulator

import (
	"sync/atomic"
	"testing"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingRunner returns a deterministic key and counts how many times it
// was invoked, so dispatch tests can assert every shot actually ran.
type countingRunner struct {
	key   string
	calls atomic.Int64
}

func (r *countingRunner) RunOnce(c *circuit.Circuit) (string, error) {
	r.calls.Add(1)
	return r.key, nil
}

func bellCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(2, "bell")
	c.H(0).CX(0, 1).Measure(0, "").Measure(1, "")
	require.NoError(t, c.Err())
	return c
}

func TestSimulatorRunDefaultsToParallelStatic(t *testing.T) {
	runner := &countingRunner{key: "11"}
	sim := NewSimulator(SimulatorOptions{Shots: 10, Workers: 2, Runner: runner})

	hist, err := sim.Run(bellCircuit(t))
	require.NoError(t, err)
	assert.Equal(t, int64(10), runner.calls.Load())
	assert.Equal(t, 10, hist["11"])
}

func TestSimulatorRunSerial(t *testing.T) {
	runner := &countingRunner{key: "00"}
	sim := NewSimulator(SimulatorOptions{Shots: 5, Workers: 1, Runner: runner})

	hist, err := sim.RunSerial(bellCircuit(t))
	require.NoError(t, err)
	assert.Equal(t, int64(5), runner.calls.Load())
	assert.Equal(t, 5, hist["00"])
}

func TestSimulatorRunParallelChan(t *testing.T) {
	runner := &countingRunner{key: "01"}
	sim := NewSimulator(SimulatorOptions{Shots: 20, Workers: 4, Runner: runner})

	hist, err := sim.RunParallelChan(bellCircuit(t))
	require.NoError(t, err)
	assert.Equal(t, int64(20), runner.calls.Load())
	assert.Equal(t, 20, hist["01"])
}

func TestSimulatorDefaultsShotsAndWorkers(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{Runner: &countingRunner{key: "0"}})
	assert.Equal(t, 1024, sim.Shots)
	assert.Greater(t, sim.Workers, 0)
}
