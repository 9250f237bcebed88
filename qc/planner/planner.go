// Package planner selects a measurement order and a set of reuse edges:
// deterministic greedy, random greedy (seeded, multi-shot),
// and brute-force-seeded greedy (the DCKF variant that enumerates every
// choice of first measurement). All three return a Plan; re-linearization
// consumes it.
package planner

import (
	"math/rand/v2"

	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/depmatrix"
	"github.com/kegliz/qreduce/qc/qerr"
)

// Edge is a reuse edge (terminals[m] -> roots[n]): "the wire freed by
// measuring m will host the initial state of n."
type Edge struct {
	From int // measured wire m
	To   int // newly hosted wire n
}

// Plan is the output of a planner invocation: a measurement order and a
// set of reuse edges, plus the resulting compiled width for convenience.
type Plan struct {
	MeasurementOrder []int
	ReuseEdges       []Edge
	Width            int
}

const (
	MethodDeterministicGreedy = "deterministic_greedy"
	MethodRandomGreedy        = "random_greedy"
	MethodBruteForceGreedy    = "brute_force_greedy"
)

// Option configures a Reduce invocation.
type Option func(*config)

type config struct {
	shots int
	seed  uint64
}

// WithShots sets the number of independent trials for random_greedy.
// Ignored by the other methods. Typical values are 5-10.
func WithShots(n int) Option { return func(c *config) { c.shots = n } }

// WithSeed threads a reproducible seed through the planner's random
// generator, required for reproducible results across runs. Never rely
// on a process-global RNG.
func WithSeed(seed uint64) Option { return func(c *config) { c.seed = seed } }

// Reduce selects a measurement order and reuse-edge set for d using the
// named method. d and b/c are not mutated.
func Reduce(d *dag.DAG, b, c depmatrix.Matrix, method string, opts ...Option) (Plan, error) {
	cfg := config{shots: 5}
	for _, o := range opts {
		o(&cfg)
	}
	cone := newCausalConeProvider(d, b)

	switch method {
	case MethodDeterministicGreedy:
		first := argminColumnSum(b)
		plan := runGreedyFrom(d, cone, first)
		observeReduce(method, 1, plan)
		return plan, nil

	case MethodRandomGreedy:
		rng := rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15))
		var best Plan
		found := false
		for s := 0; s < cfg.shots; s++ {
			first := rng.IntN(d.Width)
			p := runRandomGreedyFrom(d, cone, first, rng)
			if !found || p.Width < best.Width {
				best, found = p, true
			}
		}
		observeReduce(method, cfg.shots, best)
		return best, nil

	case MethodBruteForceGreedy:
		var best Plan
		found := false
		trials := 0
		for first := 0; first < d.Width; first++ {
			p := runGreedyFrom(d, cone, first)
			trials++
			if !found || len(p.ReuseEdges) > len(best.ReuseEdges) {
				best, found = p, true
			}
		}
		observeReduce(method, trials, best)
		return best, nil

	default:
		return Plan{}, qerr.InvalidMethod(method)
	}
}

// argminColumnSum picks the measurement with the smallest causal cone,
// ties broken by smallest index.
func argminColumnSum(b depmatrix.Matrix) int {
	w := len(b)
	best, bestSum := 0, w+1
	for q := 0; q < w; q++ {
		sum := 0
		for i := 0; i < w; i++ {
			if b[i][q] {
				sum++
			}
		}
		if sum < bestSum {
			best, bestSum = q, sum
		}
	}
	return best
}

// register models the physical wire slots: slots[slot] is the logical
// wire currently occupying it, or -1 if free. lastOccupant[slot] keeps the
// slot's most recent occupant, for emitting reuse edges.
type register struct {
	slots        []int // slots[i] = logical wire occupying slot i, or -1 if free
	lastOccupant []int // slots[i]'s most recent occupant before it was freed, or -1
}

func newRegister() *register { return &register{} }

// activate allocates wire q into the first free slot (smallest index
// wins, resolving the Open Question on tie-breaking), growing the
// register if none is free. It returns a reuse edge if q reused a slot
// just vacated by a previously measured wire, or reused=false if it's a fresh
// physical wire.
func (r *register) activate(q int) (edge Edge, reused bool) {
	for slot, occ := range r.slots {
		if occ == -1 {
			prevWire := r.lastOccupant[slot]
			r.slots[slot] = q
			if prevWire != -1 {
				edge = Edge{From: prevWire, To: q}
				reused = true
			}
			return edge, reused
		}
	}
	r.slots = append(r.slots, q)
	r.lastOccupant = append(r.lastOccupant, -1)
	return Edge{}, false
}

func (r *register) free(q int) {
	for slot, occ := range r.slots {
		if occ == q {
			r.slots[slot] = -1
			r.lastOccupant[slot] = q
			return
		}
	}
}

func runGreedyFrom(d *dag.DAG, cone *causalConeProvider, first int) Plan {
	return runGreedyCore(d, cone, first, nil)
}

func runRandomGreedyFrom(d *dag.DAG, cone *causalConeProvider, first int, rng *rand.Rand) Plan {
	return runGreedyCore(d, cone, first, rng)
}
