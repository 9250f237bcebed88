package itsu

import (
	"sort"
	"testing"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bellCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New(2, "bell")
	c.H(0).CX(0, 1).Measure(0, "").Measure(1, "")
	require.NoError(t, c.Err())
	return c
}

func TestRunOnceBellStateCorrelated(t *testing.T) {
	runner := NewItsuOneShotRunner()
	c := bellCircuit(t)

	hist := make(map[string]int)
	for i := 0; i < 200; i++ {
		key, err := runner.RunOnce(c)
		require.NoError(t, err)
		hist[key]++
	}

	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		assert.True(t, k == "00" || k == "11", "unexpected outcome %q for a Bell pair", k)
	}
}

func TestValidateCircuitAcceptsCatalogGates(t *testing.T) {
	runner := NewItsuOneShotRunner()
	c := bellCircuit(t)
	err := runner.ValidateCircuit(c)
	require.NoError(t, err)
}

func TestRunOnceAppliesReset(t *testing.T) {
	runner := NewItsuOneShotRunner()
	c := circuit.New(1, "reset-demo")
	c.X(0).Reset(0).Measure(0, "")
	require.NoError(t, c.Err())

	key, err := runner.RunOnce(c)
	require.NoError(t, err)
	assert.Equal(t, "0", key)
}

func TestRunBatchReportsShotCount(t *testing.T) {
	runner := NewItsuOneShotRunner()
	c := bellCircuit(t)
	results, err := runner.RunBatch(c, 5)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

// Circuit.Run delegates to qc/simulator via the RegisterRunFunc hook this
// package's import of qc/simulator installs at init time; importing
// qc/simulator/itsu anywhere in a binary is enough to make it work.
func TestCircuitRunDelegatesToRegisteredBackend(t *testing.T) {
	c := bellCircuit(t)
	res, err := c.Run(50, "itsu")
	require.NoError(t, err)
	assert.Equal(t, "itsu", res.Backend)
	assert.Equal(t, 50, res.Shots)

	total := 0
	for key, n := range res.Counts {
		assert.True(t, key == "00" || key == "11", "unexpected outcome %q for a Bell pair", key)
		total += n
	}
	assert.Equal(t, 50, total)
}

func TestCircuitRunUnknownBackendErrors(t *testing.T) {
	c := bellCircuit(t)
	_, err := c.Run(10, "does-not-exist")
	require.Error(t, err)
}
