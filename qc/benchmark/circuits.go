// Package benchmark provides a standardized benchmarking framework for quantum backend plugins.
// It offers consistent benchmark circuits and scenarios that work across all registered backends.
package benchmark

import (
	"fmt"
	"math/rand/v2"

	"github.com/kegliz/qreduce/qc/circuit"
)

// CircuitType represents different categories of benchmark circuits
type CircuitType string

const (
	SimpleCircuit        CircuitType = "simple"        // Basic H + Measure
	EntanglementCircuit  CircuitType = "entanglement"  // H + CNOT + Measure
	SuperpositionCircuit CircuitType = "superposition" // Multiple H gates
	MixedGatesCircuit    CircuitType = "mixed"         // Variety of gates
	BernsteinVazirani    CircuitType = "bernstein_vazirani"
	FullyEntangled       CircuitType = "fully_entangled"
	RippleCarryAdder     CircuitType = "ripple_carry_adder"
	IQPGrouped           CircuitType = "iqp_grouped"
	MaxCutQAOA           CircuitType = "maxcut_qaoa"
)

// CircuitBuilder defines a function that creates a benchmark circuit of a
// given width. Errors surface through the returned Circuit's Err(), not a
// second return value, matching the fluent circuit API's own error
// convention.
type CircuitBuilder func(qubits int) *circuit.Circuit

// StandardCircuits contains predefined benchmark circuits for consistent testing
var StandardCircuits = map[CircuitType]CircuitBuilder{
	SimpleCircuit:        buildSimpleCircuit,
	EntanglementCircuit:  buildEntanglementCircuit,
	SuperpositionCircuit: buildSuperpositionCircuit,
	MixedGatesCircuit:    buildMixedGatesCircuit,
	BernsteinVazirani:    buildBernsteinVazirani,
	FullyEntangled:       buildFullyEntangledCircuit,
	RippleCarryAdder:     buildRippleCarryAdder,
	IQPGrouped:           buildIQPGroupedCircuit,
	MaxCutQAOA:           buildMaxCutQAOA,
}

// buildSimpleCircuit creates a basic H + Measure circuit
// This tests fundamental gate application and measurement
func buildSimpleCircuit(qubits int) *circuit.Circuit {
	if qubits < 1 {
		qubits = 1
	}

	c := circuit.New(qubits, "simple")
	c.H(0)
	c.Measure(0, "c0")
	return c
}

// buildEntanglementCircuit creates an H + CNOT + Measure circuit
// This tests multi-qubit operations and entanglement
func buildEntanglementCircuit(qubits int) *circuit.Circuit {
	if qubits < 2 {
		qubits = 2
	}

	c := circuit.New(qubits, "entanglement")
	c.H(0).CX(0, 1)
	c.Measure(0, "c0").Measure(1, "c1")
	return c
}

// buildSuperpositionCircuit creates multiple H gates + measurements
// This tests scaling with multiple superposition states
func buildSuperpositionCircuit(qubits int) *circuit.Circuit {
	if qubits < 1 {
		qubits = 1
	}

	c := circuit.New(qubits, "superposition")
	maxQubits := min(qubits, 4) // Limit for benchmark performance
	for i := 0; i < maxQubits; i++ {
		c.H(i)
	}
	for i := 0; i < maxQubits; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// buildMixedGatesCircuit creates a circuit with variety of gates
// This tests backend support for different gate types
func buildMixedGatesCircuit(qubits int) *circuit.Circuit {
	if qubits < 2 {
		qubits = 2
	}

	c := circuit.New(qubits, "mixed")
	maxQubits := min(qubits, 3)

	for i := 0; i < maxQubits; i++ {
		switch i % 4 {
		case 0:
			c.H(i)
		case 1:
			c.X(i)
		case 2:
			c.Y(i)
		case 3:
			c.Z(i)
		}
	}

	if maxQubits >= 2 {
		c.CX(0, 1)
	}
	if maxQubits >= 3 {
		c.CZ(1, 2)
	}

	for i := 0; i < maxQubits; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// buildBernsteinVazirani builds the Bernstein-Vazirani oracle circuit for a
// secret string derived deterministically from qubits (alternating bits),
// the S1 reuse-compilation scenario: a classic narrow-causal-cone circuit
// that compiles down to width 2 under deterministic_greedy.
func buildBernsteinVazirani(qubits int) *circuit.Circuit {
	if qubits < 2 {
		qubits = 2
	}
	n := qubits - 1 // last wire is the ancilla
	c := circuit.New(qubits, "bernstein_vazirani")
	c.X(n).H(n)
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i := 0; i < n; i++ {
		if i%2 == 0 { // alternating secret bits
			c.CX(i, n)
		}
	}
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i := 0; i < n; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// buildFullyEntangledCircuit builds the S2 scenario: a single layer of
// controlled gates linking every wire to every other, so the biadjacency
// matrix is all-ones and no reuse is possible (compiled width == qubits).
func buildFullyEntangledCircuit(qubits int) *circuit.Circuit {
	if qubits < 2 {
		qubits = 2
	}
	c := circuit.New(qubits, "fully_entangled")
	for i := 0; i < qubits; i++ {
		c.H(i)
	}
	for i := 0; i < qubits; i++ {
		for j := i + 1; j < qubits; j++ {
			c.CZ(i, j)
		}
	}
	for i := 0; i < qubits; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// buildRippleCarryAdder builds a k-bit ripple-carry adder (S3 scenario),
// qubits = 3k+1 (carry, a_i, b_i per bit plus a final carry-out), using the
// textbook Cuccaro-style majority/unmajority ladder of Toffoli and CNOT
// gates.
func buildRippleCarryAdder(qubits int) *circuit.Circuit {
	k := max(1, (qubits-1)/3)
	width := 3*k + 1
	c := circuit.New(width, "ripple_carry_adder")

	// wire layout: c0,a0,b0, c1,a1,b1, ..., c(k-1),a(k-1),b(k-1), cout
	carry := func(i int) int { return 3 * i }
	a := func(i int) int { return 3*i + 1 }
	b := func(i int) int { return 3*i + 2 }
	cout := width - 1

	for i := 0; i < k; i++ {
		ci, ai, bi := carry(i), a(i), b(i)
		c.CX(ai, bi)
		c.CX(ai, ci)
		c.CCX(bi, ci, ai)
	}
	c.CX(a(k-1), cout)
	for i := k - 1; i >= 0; i-- {
		ci, ai, bi := carry(i), a(i), b(i)
		c.CCX(bi, ci, ai)
		c.CX(ai, ci)
		c.CX(ci, bi)
	}

	for i := 0; i < k; i++ {
		c.Measure(b(i), fmt.Sprintf("c%d", i))
	}
	c.Measure(cout, fmt.Sprintf("c%d", k))
	return c
}

// buildIQPGroupedCircuit builds the S4 scenario: an Instantaneous Quantum
// Polynomial-time circuit (H layer, a ring of CZ gates, H layer) with every
// CZ tagged into one commuting sibling group, so the dependency-matrix
// sibling-expansion pass can collapse them into one causal-cone block.
func buildIQPGroupedCircuit(qubits int) *circuit.Circuit {
	if qubits < 3 {
		qubits = 3
	}
	c := circuit.New(qubits, "iqp_grouped")
	for i := 0; i < qubits; i++ {
		c.H(i)
	}
	for i := 0; i < qubits; i++ {
		c.CZ(i, (i+1)%qubits).WithGroup("z_group")
	}
	for i := 0; i < qubits; i++ {
		c.H(i)
	}
	for i := 0; i < qubits; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// buildMaxCutQAOA builds the S5 scenario: one QAOA cost+mixer layer over a
// random 3-regular graph on qubits nodes (RZZ realized as CX-RZ-CX, RX
// mixer), exercising random_greedy against a non-trivial causal structure.
// Edge selection is seeded so repeated benchmark runs see the same graph.
func buildMaxCutQAOA(qubits int) *circuit.Circuit {
	if qubits < 4 {
		qubits = 4
	}
	c := circuit.New(qubits, "maxcut_qaoa")
	for i := 0; i < qubits; i++ {
		c.H(i)
	}

	rng := rand.New(rand.NewPCG(42, uint64(qubits)))
	degree := make([]int, qubits)
	for i := 0; i < qubits; i++ {
		for degree[i] < 3 {
			j := rng.IntN(qubits)
			if j == i || degree[j] >= 3 {
				continue
			}
			c.CX(i, j).RZ(0.5, j).CX(i, j)
			degree[i]++
			degree[j]++
		}
	}

	gamma := 0.7
	for i := 0; i < qubits; i++ {
		c.RX(gamma, i)
	}
	for i := 0; i < qubits; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	return c
}

// GetCircuitDescription returns a human-readable description of the circuit type
func GetCircuitDescription(circuitType CircuitType) string {
	switch circuitType {
	case SimpleCircuit:
		return "Simple H + Measure (tests basic gates)"
	case EntanglementCircuit:
		return "H + CNOT + Measure (tests entanglement)"
	case SuperpositionCircuit:
		return "Multiple H + Measure (tests superposition scaling)"
	case MixedGatesCircuit:
		return "Mixed gates + CNOT + Measure (tests gate variety)"
	case BernsteinVazirani:
		return "Bernstein-Vazirani oracle (narrow causal cone, reuses down to width 2)"
	case FullyEntangled:
		return "Fully entangled single layer (no reuse possible, width unchanged)"
	case RippleCarryAdder:
		return "Cuccaro ripple-carry adder (reuse benchmark against DCKF width)"
	case IQPGrouped:
		return "IQP circuit with z_group-tagged CZ ring (tests sibling expansion)"
	case MaxCutQAOA:
		return "Random 3-regular MaxCut-QAOA layer (tests random_greedy)"
	default:
		return "Unknown circuit type"
	}
}

// min returns the minimum of two integers (helper function)
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// max returns the maximum of two integers (helper function)
func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
