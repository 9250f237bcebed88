// Package depmatrix computes the biadjacency matrix B and candidate
// matrix C that summarize, at wire granularity, which initial wires a
// measurement causally depends on and which reuse edges are admissible.
//
// Both methods compute node-level DAG reachability
// and then project it down to wire granularity via roots/terminals; they
// differ only in how the n-by-n reachability closure itself is
// represented and squared: "transitive_closure" uses a dense gonum
// float64 matrix, "boolean_matrix" uses hand-rolled bit-packed rows. Both
// operate at node granularity rather than as a wire-level fixpoint: that
// formulation is
// under-specified for gates spanning more than two wires (ccx) and for
// multi-hop causal chains, while the node-level closure is unambiguous
// and trivially satisfies the "method agreement" testable property.
package depmatrix

import (
	"math/bits"

	"github.com/kegliz/qreduce/qc/dag"
	"github.com/kegliz/qreduce/qc/qerr"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense boolean matrix, w rows by w columns (w = circuit
// width), row-major.
type Matrix [][]bool

// NewMatrix allocates a w x w all-false matrix.
func NewMatrix(w int) Matrix {
	m := make(Matrix, w)
	for i := range m {
		m[i] = make([]bool, w)
	}
	return m
}

const (
	MethodTransitiveClosure = "transitive_closure"
	MethodBooleanMatrix     = "boolean_matrix"
)

// Compute derives B and C for d using the named method.
func Compute(d *dag.DAG, method string) (B, C Matrix, err error) {
	var closure [][]bool
	switch method {
	case MethodTransitiveClosure:
		closure = closureGonum(d)
	case MethodBooleanMatrix:
		closure = closureBitset(d)
	default:
		return nil, nil, qerr.InvalidMethod(method)
	}

	w := d.Width
	B = NewMatrix(w)
	C = NewMatrix(w)
	for i := 0; i < w; i++ {
		for j := 0; j < w; j++ {
			if d.Roots[i] == -1 || d.Terminals[j] == -1 {
				continue
			}
			B[i][j] = closure[d.Roots[i]][d.Terminals[j]]
		}
	}
	for i := 0; i < w; i++ {
		for j := 0; j < w; j++ {
			if i == j {
				continue
			}
			if d.Roots[j] == -1 || d.Terminals[i] == -1 {
				C[i][j] = true
				continue
			}
			C[i][j] = !closure[d.Roots[j]][d.Terminals[i]]
		}
	}
	return B, C, nil
}

// CheckIdentity verifies the invariant C = ¬Bᵀ ∧ ¬I that Compute produces:
// C[i][j] is set exactly when i != j and B[j][i] is unset.
func CheckIdentity(B, C Matrix) bool {
	w := len(B)
	for i := 0; i < w; i++ {
		for j := 0; j < w; j++ {
			want := !B[j][i] && i != j
			if i == j {
				want = false
			}
			if C[i][j] != want {
				return false
			}
		}
	}
	return true
}

// adjacency builds the direct node-level adjacency (children edges plus
// sibling-group symmetrization: members of the same commuting group are
// treated as mutually reachable, collapsing the group to one super-node
// for causal-cone purposes ("sibling expansion").
func adjacency(d *dag.DAG) [][]bool {
	n := len(d.Nodes)
	a := make([][]bool, n)
	for i := range a {
		a[i] = make([]bool, n)
		a[i][i] = true // reflexive: every node reaches itself
	}
	for i, node := range d.Nodes {
		for _, c := range node.Children {
			a[i][c] = true
		}
	}
	for gid := 1; ; gid++ {
		members := d.GroupMembers(gid)
		if members == nil {
			break
		}
		for _, p := range members {
			for _, q := range members {
				a[p][q] = true
				a[q][p] = true
			}
		}
	}
	return a
}

func closureGonum(d *dag.DAG) [][]bool {
	n := len(d.Nodes)
	if n == 0 {
		return nil
	}
	a := adjacency(d)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if a[i][j] {
				data[i*n+j] = 1
			}
		}
	}
	closure := mat.NewDense(n, n, data)
	next := mat.NewDense(n, n, nil)
	steps := bitsLen(n)
	for s := 0; s < steps; s++ {
		next.Mul(closure, closure)
		changed := false
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				v := next.At(i, j) > 0 || closure.At(i, j) > 0
				old := closure.At(i, j) > 0
				if v {
					closure.Set(i, j, 1)
				}
				if v != old {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	out := make([][]bool, n)
	for i := 0; i < n; i++ {
		out[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			out[i][j] = closure.At(i, j) > 0
		}
	}
	return out
}

// bitsLen returns ceil(log2(n)), at least 1, the number of squarings
// needed for an n-node transitive closure.
func bitsLen(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// bitrow is a bit-packed boolean row over DAG nodes: ceil(n/64) machine words, AND/OR
// at word granularity instead of per-bool comparisons.
type bitrow []uint64

func newBitrow(n int) bitrow { return make(bitrow, (n+63)/64) }

func (r bitrow) set(i int)      { r[i/64] |= 1 << uint(i%64) }
func (r bitrow) get(i int) bool { return r[i/64]&(1<<uint(i%64)) != 0 }
func (r bitrow) or(o bitrow) {
	for i := range r {
		r[i] |= o[i]
	}
}

func closureBitset(d *dag.DAG) [][]bool {
	n := len(d.Nodes)
	if n == 0 {
		return nil
	}
	a := adjacency(d)
	rows := make([]bitrow, n)
	for i := 0; i < n; i++ {
		rows[i] = newBitrow(n)
		for j := 0; j < n; j++ {
			if a[i][j] {
				rows[i].set(j)
			}
		}
	}
	steps := bitsLen(n)
	for s := 0; s < steps; s++ {
		next := make([]bitrow, n)
		changed := false
		for i := 0; i < n; i++ {
			next[i] = newBitrow(n)
			copy(next[i], rows[i])
			for j := 0; j < n; j++ {
				if !rows[i].get(j) {
					continue
				}
				next[i].or(rows[j])
			}
			for w := range next[i] {
				if next[i][w] != rows[i][w] {
					changed = true
				}
			}
		}
		rows = next
		if !changed {
			break
		}
	}
	out := make([][]bool, n)
	for i := 0; i < n; i++ {
		out[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			out[i][j] = rows[i].get(j)
		}
	}
	return out
}

// IsReuseSchemeNilpotent reproduces the nilpotency sanity check from the
// Bernstein-Vazirani reference example: build the block adjacency matrix
// [[0, B], [reuse, 0]] and verify it is nilpotent of index 2w, i.e. that
// composing the "causal" half with the "reuse" half can never cycle.
func IsReuseSchemeNilpotent(B Matrix, reuse Matrix) bool {
	w := len(B)
	size := 2 * w
	block := make([][]float64, size)
	for i := range block {
		block[i] = make([]float64, size)
	}
	for i := 0; i < w; i++ {
		for j := 0; j < w; j++ {
			if B[i][j] {
				block[i][w+j] = 1
			}
			if reuse[i][j] {
				block[w+i][j] = 1
			}
		}
	}
	m := mat.NewDense(size, size, flatten(block))
	power := mat.NewDense(size, size, flatten(block))
	tmp := mat.NewDense(size, size, nil)
	for k := 1; k < size; k++ {
		tmp.Mul(power, m)
		power.Copy(tmp)
	}
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if power.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}

func flatten(m [][]float64) []float64 {
	n := len(m)
	out := make([]float64, 0, n*n)
	for _, row := range m {
		out = append(out, row...)
	}
	return out
}
