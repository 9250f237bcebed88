package circuit

import "fmt"

// RunResult is the outcome of Circuit.Run: the shot histogram plus which
// backend and how many shots produced it.
type RunResult struct {
	Counts  map[string]int
	Backend string
	Shots   int
}

// runBackend is installed by qc/simulator's init() via RegisterRunFunc.
// qc/simulator already imports qc/circuit (its OneShotRunner interface
// takes a *Circuit), so Circuit cannot import qc/simulator back without a
// cycle; this is the same registration-by-name indirection
// qc/simulator/registry.go already uses for backend plugins, just running
// in the other direction.
var runBackend func(c *Circuit, shots int, backend string) (map[string]int, error)

// RegisterRunFunc installs the function Circuit.Run delegates to. Called
// once from qc/simulator's init(); not for use outside that wiring.
func RegisterRunFunc(fn func(c *Circuit, shots int, backend string) (map[string]int, error)) {
	runBackend = fn
}

// Run executes the circuit on the named simulator backend for shots
// repetitions and returns the resulting shot histogram, delegating to
// whichever qc/simulator/* package the caller has imported (blank-imported
// for its init-time registration, same as qc/simulator.CreateRunner).
func (c *Circuit) Run(shots int, backend string) (RunResult, error) {
	if c.err != nil {
		return RunResult{}, c.err
	}
	if runBackend == nil {
		return RunResult{}, fmt.Errorf("qreduce: no simulator backend registered; import a qc/simulator/* package")
	}
	counts, err := runBackend(c, shots, backend)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Counts: counts, Backend: backend, Shots: shots}, nil
}
