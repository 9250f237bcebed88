package simulator

import (
	"testing"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	key string
	err error
}

func (s *stubRunner) RunOnce(c *circuit.Circuit) (string, error) {
	return s.key, s.err
}

func TestRunnerRegistryRegisterAndCreate(t *testing.T) {
	reg := NewRunnerRegistry()
	require.NoError(t, reg.Register("stub", func() OneShotRunner { return &stubRunner{key: "00"} }))

	runner, err := reg.Create("stub")
	require.NoError(t, err)
	key, err := runner.RunOnce(nil)
	require.NoError(t, err)
	assert.Equal(t, "00", key)

	assert.Contains(t, reg.ListRunners(), "stub")
}

func TestRunnerRegistryRejectsDuplicateAndEmpty(t *testing.T) {
	reg := NewRunnerRegistry()
	require.NoError(t, reg.Register("stub", func() OneShotRunner { return &stubRunner{} }))
	assert.Error(t, reg.Register("stub", func() OneShotRunner { return &stubRunner{} }))
	assert.Error(t, reg.Register("", func() OneShotRunner { return &stubRunner{} }))
}

func TestRunnerRegistryUnknownNameErrors(t *testing.T) {
	reg := NewRunnerRegistry()
	_, err := reg.Create("does-not-exist")
	assert.Error(t, err)
}

func TestRunnerRegistryUnregister(t *testing.T) {
	reg := NewRunnerRegistry()
	require.NoError(t, reg.Register("stub", func() OneShotRunner { return &stubRunner{} }))
	assert.True(t, reg.Unregister("stub"))
	assert.False(t, reg.Unregister("stub"))
}
