// Package circuit is the user-facing fluent circuit-building API: one
// type merging what used to be a separate builder/circuit/dag-builder
// split. Circuit accumulates gate records with a deferred "bail-out"
// error (the first error wins, later calls become no-ops), and exposes
// the compiler pipeline (ToDAG, BiadjacencyAndCandidate, Compile,
// RemapIndices) directly on itself.
package circuit

import (
	"fmt"
	"sort"

	"github.com/kegliz/qreduce/internal/logger"
	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/depmatrix"
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/planner"
	"github.com/kegliz/qreduce/qc/relinearize"
)

// Circuit is a mutable, append-only gate history plus its declared width.
// The zero value is not usable; construct with New.
type Circuit struct {
	Name string

	width     int
	history   []gate.Record
	outputIDs []string
	seenMid   map[string]bool
	err       error
}

// New returns an empty Circuit over width wires.
func New(width int, name string) *Circuit {
	return &Circuit{Name: name, width: width, seenMid: make(map[string]bool)}
}

// Err returns the first error encountered while building the circuit, or
// nil. Every gate method is a no-op once Err is non-nil.
func (c *Circuit) Err() error { return c.err }

// Width returns the number of logical wires the circuit is declared over.
func (c *Circuit) Width() int { return c.width }

// History returns the accumulated gate records in insertion order. The
// caller must not mutate the returned slice.
func (c *Circuit) History() []gate.Record { return c.history }

// OutputIDs returns the classical measurement identifiers assigned so far,
// in first-seen order.
func (c *Circuit) OutputIDs() []string { return c.outputIDs }

// Qubits and Clbits exist for compatibility with the simulator runner
// interfaces, which are generic over "anything with a qubit/clbit count".
func (c *Circuit) Qubits() int { return c.width }
func (c *Circuit) Clbits() int { return len(c.outputIDs) }

// Depth returns the number of topological layers in the circuit's DAG.
func (c *Circuit) Depth() int {
	d, err := c.ToDAG(true)
	if err != nil {
		return 0
	}
	depth := make([]int, len(d.Nodes))
	order, err := d.TopoSort()
	if err != nil {
		return 0
	}
	max := 0
	for _, idx := range order {
		nd := 0
		for _, p := range d.Nodes[idx].Parents {
			if depth[p]+1 > nd {
				nd = depth[p] + 1
			}
		}
		depth[idx] = nd
		if nd > max {
			max = nd
		}
	}
	return max + 1
}

func (c *Circuit) bail(err error) *Circuit {
	if c.err == nil {
		c.err = err
	}
	return c
}

func (c *Circuit) add(name string, wires []int, opts ...gate.Option) *Circuit {
	if c.err != nil {
		return c
	}
	rec, err := gate.NewGate(name, wires, opts...)
	if err != nil {
		return c.bail(err)
	}
	c.history = append(c.history, rec)
	return c
}

func (c *Circuit) H(q int) *Circuit { return c.add("h", []int{q}) }
func (c *Circuit) X(q int) *Circuit { return c.add("x", []int{q}) }
func (c *Circuit) Y(q int) *Circuit { return c.add("y", []int{q}) }
func (c *Circuit) Z(q int) *Circuit { return c.add("z", []int{q}) }
func (c *Circuit) S(q int) *Circuit { return c.add("s", []int{q}) }
func (c *Circuit) T(q int) *Circuit { return c.add("t", []int{q}) }

func (c *Circuit) RX(angle float64, q int) *Circuit {
	return c.add("rx", []int{q}, gate.WithAngle(angle))
}
func (c *Circuit) RY(angle float64, q int) *Circuit {
	return c.add("ry", []int{q}, gate.WithAngle(angle))
}
func (c *Circuit) RZ(angle float64, q int) *Circuit {
	return c.add("rz", []int{q}, gate.WithAngle(angle))
}
func (c *Circuit) U(angle float64, q int) *Circuit {
	return c.add("u", []int{q}, gate.WithAngle(angle))
}
func (c *Circuit) U3(angle float64, q int) *Circuit {
	return c.add("u3", []int{q}, gate.WithAngle(angle))
}

func (c *Circuit) CX(ctrl, tgt int) *Circuit    { return c.add("cx", []int{ctrl, tgt}) }
func (c *Circuit) CZ(ctrl, tgt int) *Circuit    { return c.add("cz", []int{ctrl, tgt}) }
func (c *Circuit) SWAP(q0, q1 int) *Circuit     { return c.add("swap", []int{q0, q1}) }
func (c *Circuit) CCX(c0, c1, tgt int) *Circuit { return c.add("ccx", []int{c0, c1, tgt}) }

// Depolarizing applies a depolarizing channel with the given error
// probability to wire q. prob must lie in [0, 1]; out-of-range values bail
// out with qerr.InvalidProbability.
func (c *Circuit) Depolarizing(prob float64, q int) *Circuit {
	return c.add("depolarizing", []int{q}, gate.WithProb(prob))
}

// WithGroup tags the most recently added gate with a commuting-group id, so
// the dependency-matrix stage treats it and gates carrying the same tag that
// directly follow it on a shared wire as mutually reachable siblings
// ("sibling expansion"). It is a
// no-op if no gate has been added yet.
func (c *Circuit) WithGroup(tag string) *Circuit {
	if c.err != nil || len(c.history) == 0 {
		return c
	}
	c.history[len(c.history)-1].GroupTag = tag
	return c
}

// Measure appends a measurement of wire q, recording mid as its classical
// output identifier (auto-assigned from the wire index if mid == "").
func (c *Circuit) Measure(q int, mid string) *Circuit {
	if c.err != nil {
		return c
	}
	if mid == "" {
		mid = fmt.Sprintf("c%d", q)
	}
	c.history = append(c.history, gate.NewMeasurement(q, mid))
	if !c.seenMid[mid] {
		c.seenMid[mid] = true
		c.outputIDs = append(c.outputIDs, mid)
	}
	return c
}

// MeasureAll appends a measurement for every wire referenced by a gate so
// far, in ascending wire order, each with an auto-assigned mid.
func (c *Circuit) MeasureAll() *Circuit {
	if c.err != nil {
		return c
	}
	seen := make(map[int]bool)
	var wires []int
	for _, rec := range c.history {
		for _, w := range rec.Wires {
			if !seen[w] {
				seen[w] = true
				wires = append(wires, w)
			}
		}
	}
	sort.Ints(wires)
	for _, w := range wires {
		c.Measure(w, "")
	}
	return c
}

// Reset appends an explicit reset of wire q to |0>.
func (c *Circuit) Reset(q int) *Circuit {
	if c.err != nil {
		return c
	}
	c.history = append(c.history, gate.NewReset(q))
	return c
}

// ToDAG lowers the circuit's gate history into a DAG.
// reset==false skips reset records, producing the pre-compilation DAG the
// dependency-matrix stage expects; reset==true includes them, the shape
// Depth measures.
func (c *Circuit) ToDAG(reset bool) (*dag.DAG, error) {
	if c.err != nil {
		return nil, c.err
	}
	return dag.Build(c.history, c.width, reset)
}

// BiadjacencyAndCandidate computes the biadjacency and candidate reuse
// matrices for the circuit under the named method.
func (c *Circuit) BiadjacencyAndCandidate(method string) (depmatrix.Matrix, depmatrix.Matrix, error) {
	d, err := c.ToDAG(false)
	if err != nil {
		return nil, nil, err
	}
	return depmatrix.Compute(d, method)
}

// defaultMatrixMethod backs Compile's internal dependency-matrix pass.
// Both depmatrix methods must agree exactly (invariant 5), so which one
// Compile uses internally is an implementation choice, not a correctness
// one; transitive_closure is the default because it is the
// ecosystem-library path (gonum).
const defaultMatrixMethod = depmatrix.MethodTransitiveClosure

// Compile runs the full qubit-reuse pipeline: lower to a DAG, compute its
// dependency matrices, select a reuse plan with the named planner method,
// and re-linearize. It returns a new, compiled Circuit, leaving the
// receiver untouched; CompileInPlace mutates the receiver instead.
func (c *Circuit) Compile(method string, opts ...planner.Option) (*Circuit, planner.Plan, error) {
	if c.err != nil {
		return nil, planner.Plan{}, c.err
	}
	log := logger.NewLogger(logger.LoggerOptions{Debug: false})
	d, err := c.ToDAG(false)
	if err != nil {
		return nil, planner.Plan{}, err
	}
	b, cand, err := depmatrix.Compute(d, defaultMatrixMethod)
	if err != nil {
		return nil, planner.Plan{}, err
	}
	plan, err := planner.Reduce(d, b, cand, method, opts...)
	if err != nil {
		return nil, planner.Plan{}, err
	}
	log.Debug().Str("method", method).Int("width", plan.Width).Int("reuse_edges", len(plan.ReuseEdges)).Msg("qc/circuit: compiled plan")

	res, err := relinearize.Apply(d, plan)
	if err != nil {
		return nil, planner.Plan{}, err
	}

	compiled := &Circuit{
		Name:      c.Name + ":compiled",
		width:     res.Width,
		history:   res.History,
		outputIDs: c.outputIDs,
		seenMid:   c.seenMid,
	}
	return compiled, plan, nil
}

// CompileInPlace is the in-place convenience wrapper around Compile: it
// replaces the receiver's history and width with the compiled result.
func (c *Circuit) CompileInPlace(method string, opts ...planner.Option) (planner.Plan, error) {
	compiled, plan, err := c.Compile(method, opts...)
	if err != nil {
		return plan, err
	}
	*c = *compiled
	return plan, nil
}

// RemapIndices rewrites the circuit's physical wire indices according to
// remap (current index -> new index), or compacts them into [0, width) in
// first-use order when remap is nil. printIndex logs the resulting width
// at Info level, for one-shot diagnostic output; the mapping itself is not
// logged.
func (c *Circuit) RemapIndices(remap map[int]int, printIndex bool) error {
	if c.err != nil {
		return c.err
	}
	res := relinearize.Result{History: c.history, Width: c.width}
	remapped := relinearize.RemapIndices(res, remap)
	c.history = remapped.History
	c.width = remapped.Width

	if printIndex {
		log := logger.NewLogger(logger.LoggerOptions{Debug: false})
		log.Info().Int("width", c.width).Msg("qc/circuit: remapped physical wire indices")
	}
	return nil
}
