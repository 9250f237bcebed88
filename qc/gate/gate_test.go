package gate

import (
	"errors"
	"testing"

	"github.com/kegliz/qreduce/qc/qerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogArityAndSymmetry(t *testing.T) {
	tests := []struct {
		name      string
		wantArity int
		wantSym   bool
	}{
		{"h", 1, false},
		{"x", 1, false},
		{"y", 1, false},
		{"z", 1, false},
		{"s", 1, false},
		{"t", 1, false},
		{"rx", 1, false},
		{"ry", 1, false},
		{"rz", 1, false},
		{"u", 1, false},
		{"u3", 1, false},
		{"cx", 2, false},
		{"cz", 2, true},
		{"swap", 2, true},
		{"ccx", 3, false},
		{"m", 1, false},
		{"depolarizing", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			assert.True(IsKnown(tt.name))
			arity, err := Arity(tt.name)
			require.NoError(err)
			assert.Equal(tt.wantArity, arity)
			assert.Equal(tt.wantSym, IsSymmetric(tt.name))
		})
	}
}

func TestArityUnknownGate(t *testing.T) {
	_, err := Arity("fredkin")
	require.True(t, errors.Is(err, qerr.ErrUnknownGate))
}

func TestNewGateValidatesWireCount(t *testing.T) {
	_, err := NewGate("cx", []int{0})
	require.Error(t, err)
	require.True(t, errors.Is(err, qerr.ErrMalformedCircuit))

	r, err := NewGate("cx", []int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, r.Wires)
	assert.NotZero(t, r.Signature)
}

func TestNewGateDepolarizingProbability(t *testing.T) {
	_, err := NewGate("depolarizing", []int{0}, WithProb(1.5))
	require.True(t, errors.Is(err, qerr.ErrInvalidProbability))

	r, err := NewGate("depolarizing", []int{0}, WithProb(0.1))
	require.NoError(t, err)
	assert.Equal(t, 0.1, r.Prob)
}

func TestSignaturesAreDistinct(t *testing.T) {
	a, err := NewGate("h", []int{0})
	require.NoError(t, err)
	b, err := NewGate("h", []int{0})
	require.NoError(t, err)
	assert.NotEqual(t, a.Signature, b.Signature)
}

func TestMeasurementAndResetRecords(t *testing.T) {
	m := NewMeasurement(2, "c0")
	assert.Equal(t, "m", m.Name)
	assert.Equal(t, []int{2}, m.Wires)
	assert.Equal(t, "c0", m.Mid)

	r := NewReset(2)
	assert.Equal(t, "reset", r.Name)
	assert.True(t, IsReset("reset"))
	assert.False(t, IsReset("m"))
}

func TestGroupTagOption(t *testing.T) {
	r, err := NewGate("cz", []int{0, 1}, WithGroupTag("z_group"))
	require.NoError(t, err)
	assert.Equal(t, "z_group", r.GroupTag)
}
