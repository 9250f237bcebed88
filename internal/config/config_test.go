package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(Options{})
	require.NoError(t, err)

	assert.False(t, c.GetBool("debug"))
	assert.Equal(t, 8080, c.GetInt("port"))
	assert.Equal(t, "qsim", c.GetString("default_backend"))
	assert.Equal(t, "deterministic_greedy", c.GetString("default_method"))
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	c, err := Load(Options{Path: "/nonexistent/path/config.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 8080, c.GetInt("port"))
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("QREDUCE_PORT", "9090")
	t.Setenv("QREDUCE_DEBUG", "true")

	c, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, 9090, c.GetInt("port"))
	assert.True(t, c.GetBool("debug"))
}
