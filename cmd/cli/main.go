package main

import (
	"fmt"
	"sort"

	"github.com/kegliz/qreduce/qc/circuit"
	"github.com/kegliz/qreduce/qc/simulator"
	"github.com/kegliz/qreduce/qc/simulator/itsu"
)

func main() {
	shots := 1024

	fmt.Println("--- Bell State Simulation ---")
	simulateBellState(shots)

	fmt.Println("\n--- Qubit-Reuse Compilation Demo (Bernstein-Vazirani, secret 10110) ---")
	demoCompile()
}

// simulateBellState prepares the |Φ⁺⟩ Bell state and prints its shot histogram.
func simulateBellState(shots int) {
	c := circuit.New(2, "bell")
	c.H(0).CX(0, 1).Measure(0, "").Measure(1, "")
	if err := c.Err(); err != nil {
		fmt.Printf("Error building Bell state circuit: %v\n", err)
		return
	}

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: shots, Runner: itsu.NewItsuOneShotRunner()})
	hist, err := sim.Run(c)
	if err != nil {
		fmt.Printf("Error running Bell state simulation: %v\n", err)
		return
	}

	pretty(hist, shots)
}

// demoCompile builds a 6-wire Bernstein-Vazirani oracle circuit, compiles it
// under the qubit-reuse pipeline, and prints the width reduction.
func demoCompile() {
	secret := []bool{true, false, true, true, false}
	n := len(secret)
	width := n + 1
	ancilla := n

	c := circuit.New(width, "bernstein_vazirani")
	c.X(ancilla).H(ancilla)
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i, bit := range secret {
		if bit {
			c.CX(i, ancilla)
		}
	}
	for i := 0; i < n; i++ {
		c.H(i)
	}
	for i := 0; i < n; i++ {
		c.Measure(i, fmt.Sprintf("c%d", i))
	}
	if err := c.Err(); err != nil {
		fmt.Printf("Error building circuit: %v\n", err)
		return
	}

	compiled, plan, err := c.Compile("deterministic_greedy")
	if err != nil {
		fmt.Printf("Error compiling circuit: %v\n", err)
		return
	}

	fmt.Printf("original width: %d\n", c.Width())
	fmt.Printf("compiled width: %d (%d reuse edges)\n", compiled.Width(), len(plan.ReuseEdges))

	sim := simulator.NewSimulator(simulator.SimulatorOptions{Shots: 256, Runner: itsu.NewItsuOneShotRunner()})
	hist, err := sim.Run(compiled)
	if err != nil {
		fmt.Printf("Error running compiled circuit: %v\n", err)
		return
	}
	pretty(hist, 256)
}

// pretty prints the histogram results in a readable, sorted format
func pretty(hist map[string]int, shots int) {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, state := range keys {
		count := hist[state]
		probability := float64(count) / float64(shots)
		fmt.Printf("State |%s>: %d counts (%.2f%%)\n", state, count, probability*100)
	}
}
