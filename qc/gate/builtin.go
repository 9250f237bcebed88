package gate

import (
	"fmt"
	"sync/atomic"

	"github.com/kegliz/qreduce/qc/qerr"
)

// Record is the immutable gate-record tuple of the data model: a name
// from the closed catalog, the logical wires it touches, a stable
// signature distinguishing otherwise-identical gates for DAG-node
// identity, and two pieces of optional metadata: GroupTag (commuting-group
// membership) and Mid (the classical label a measurement reports under).
// A reset record carries no parameters at all beyond its wire.
type Record struct {
	Name      string
	Wires     []int
	Signature uint64
	GroupTag  string
	Mid       string
	Prob      float64 // only meaningful for "depolarizing"
	Angle     float64 // only meaningful for rx/ry/rz/u/u3
}

var sigCounter uint64

// NextSignature returns a fresh monotonically increasing signature. A
// package-level atomic counter is adequate here: signatures only need to
// be distinct within a process, never persisted or compared across runs.
func NextSignature() uint64 { return atomic.AddUint64(&sigCounter, 1) }

// NewGate builds a Record for a catalog gate, validating arity against the
// supplied wires and, for depolarizing, validating the probability.
func NewGate(name string, wires []int, opts ...Option) (Record, error) {
	arity, err := Arity(name)
	if err != nil {
		return Record{}, err
	}
	if len(wires) != arity {
		return Record{}, qerr.Malformed(fmt.Sprintf("gate %s expects %d wires, got %d", name, arity, len(wires)))
	}
	r := Record{Name: name, Wires: append([]int(nil), wires...), Signature: NextSignature()}
	for _, o := range opts {
		o(&r)
	}
	if name == "depolarizing" {
		if r.Prob < 0 || r.Prob > 1 {
			return Record{}, qerr.InvalidProbability(fmt.Sprintf("depolarizing probability %v out of [0,1]", r.Prob))
		}
	}
	return r, nil
}

// NewMeasurement builds a measurement Record over a single wire.
func NewMeasurement(wire int, mid string) Record {
	return Record{Name: "m", Wires: []int{wire}, Signature: NextSignature(), Mid: mid}
}

// NewReset builds a reset Record for a single wire. Resets come from
// re-linearization or from an explicit Circuit.Reset; they carry no
// user-visible parameters.
func NewReset(wire int) Record {
	return Record{Name: "reset", Wires: []int{wire}, Signature: NextSignature()}
}

// Option mutates optional Record metadata at construction time.
type Option func(*Record)

// WithGroupTag attaches commuting-group metadata to a gate record.
func WithGroupTag(tag string) Option { return func(r *Record) { r.GroupTag = tag } }

// WithProb attaches the noise probability parameter (depolarizing only).
func WithProb(p float64) Option { return func(r *Record) { r.Prob = p } }

// WithAngle attaches a rotation angle to a parametrized gate record
// (rx/ry/rz/u/u3). The compiler core never inspects this value — gate
// matrices are an external collaborator — it is carried
// purely for downstream simulator backends.
func WithAngle(theta float64) Option { return func(r *Record) { r.Angle = theta } }
