// Package dag builds the per-wire gate DAG a circuit lowers to: one node
// per gate record, edges along each wire's chronological chain, plus the
// roots/terminals used by the dependency-matrix and re-linearization
// stages. Nodes are a plain arena (slice) with adjacency by index, not a
// pointer-heavy graph library — this gives O(1) node identity and cheap
// copies, the representation the Design Notes call for.
package dag

import (
	"github.com/kegliz/qreduce/qc/gate"
	"github.com/kegliz/qreduce/qc/qerr"
)

// Node is one DAG vertex: a gate record plus its adjacency.
type Node struct {
	Record   gate.Record
	Parents  []int
	Children []int
}

// DAG is the node-arena graph lowered from a gate history. Roots[q] and
// Terminals[q] index into Nodes for logical wire q. Nodes added by
// AddEdge (reuse edges) are never created here; DAG only grows its edge
// set, never its node arena, after Build.
type DAG struct {
	Nodes     []Node
	Roots     []int // Roots[q] = node index of the first gate on wire q
	Terminals []int // Terminals[q] = node index of the last gate on wire q
	Width     int

	// siblingGroup[nodeIdx] is a 1-based group id; 0 means "no group".
	// groupMembers[groupID] lists node indices sharing that group, in the
	// order they were added (earliest first).
	siblingGroup []int
	groupMembers map[int][]int
}

// Build lowers a gate history into a DAG: one node per
// record, a per-wire "last node seen" cursor producing chain edges, roots
// as the first touch of each wire and terminals as the cursor at the end.
// If reset is false, reset records are skipped entirely (useful when
// lowering an already-compiled circuit back for idempotence checks);
// if true, resets participate as ordinary chain nodes.
func Build(history []gate.Record, width int, reset bool) (*DAG, error) {
	d := &DAG{
		Nodes:        make([]Node, 0, len(history)),
		Roots:        make([]int, width),
		Terminals:    make([]int, width),
		Width:        width,
		siblingGroup: make([]int, 0, len(history)),
		groupMembers: make(map[int][]int),
	}
	for i := range d.Roots {
		d.Roots[i] = -1
		d.Terminals[i] = -1
	}

	last := make([]int, width)
	for i := range last {
		last[i] = -1
	}
	// lastTag[wire] / lastTagGroup[wire] track the running group a wire's
	// most recent node belongs to, so consecutive same-tag gates on the
	// same wire are recognized as siblings.
	lastTag := make([]string, width)
	lastTagGroup := make([]int, width)

	for _, rec := range history {
		if !reset && gate.IsReset(rec.Name) {
			continue
		}
		for _, w := range rec.Wires {
			if w < 0 || w >= width {
				return nil, qerr.Malformed("gate references wire out of range")
			}
		}

		idx := len(d.Nodes)
		d.Nodes = append(d.Nodes, Node{Record: rec})
		d.siblingGroup = append(d.siblingGroup, 0)

		if rec.GroupTag != "" {
			gid := 0
			for _, w := range rec.Wires {
				if lastTag[w] == rec.GroupTag && lastTagGroup[w] != 0 {
					gid = lastTagGroup[w]
					break
				}
			}
			if gid == 0 {
				gid = len(d.groupMembers) + 1
			}
			d.siblingGroup[idx] = gid
			d.groupMembers[gid] = append(d.groupMembers[gid], idx)
		}

		seen := map[int]struct{}{}
		for _, w := range rec.Wires {
			if d.Roots[w] == -1 {
				d.Roots[w] = idx
			}
			if prev := last[w]; prev != -1 {
				if _, dup := seen[prev]; !dup {
					seen[prev] = struct{}{}
					d.Nodes[prev].Children = append(d.Nodes[prev].Children, idx)
					d.Nodes[idx].Parents = append(d.Nodes[idx].Parents, prev)
				}
			}

			lastTag[w] = rec.GroupTag
			lastTagGroup[w] = d.siblingGroup[idx]

			last[w] = idx
		}
	}
	copy(d.Terminals, last)

	if err := d.checkAcyclic(); err != nil {
		return nil, err
	}
	return d, nil
}

// SiblingGroup returns the 1-based group id node idx belongs to, or 0.
func (d *DAG) SiblingGroup(idx int) int { return d.siblingGroup[idx] }

// GroupMembers returns the node indices sharing sibling group gid, in the
// order added (earliest first — the "effective root" of the group is
// GroupMembers(gid)[0], the "effective terminal" its last element).
func (d *DAG) GroupMembers(gid int) []int { return d.groupMembers[gid] }

// AddEdge records a new edge between two existing nodes (a reuse edge, or
// any other augmentation). It does not check acyclicity; callers that
// need that guarantee call HasCycle afterward.
func (d *DAG) AddEdge(from, to int) {
	d.Nodes[from].Children = append(d.Nodes[from].Children, to)
	d.Nodes[to].Parents = append(d.Nodes[to].Parents, from)
}

// HasCycle runs a DFS cycle check over the current node/edge set.
func (d *DAG) HasCycle() bool { return d.checkAcyclic() != nil }

// checkAcyclic performs a DFS-based cycle check (0 unvisited, 1
// in-progress, 2 done).
func (d *DAG) checkAcyclic() error {
	state := make([]int, len(d.Nodes))
	var dfs func(int) error
	dfs = func(n int) error {
		switch state[n] {
		case 1:
			return qerr.Cyclic("cycle detected in DAG")
		case 2:
			return nil
		}
		state[n] = 1
		for _, c := range d.Nodes[n].Children {
			if err := dfs(c); err != nil {
				return err
			}
		}
		state[n] = 2
		return nil
	}
	for n := range d.Nodes {
		if state[n] == 0 {
			if err := dfs(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// TopoSort returns node indices in a topological order via Kahn's
// algorithm, picking the smallest-index ready node at each step for a
// stable, deterministic order (and, incidentally, the original relative
// order among sibling-group members, since group members share ascending
// indices).
func (d *DAG) TopoSort() ([]int, error) {
	inDeg := make([]int, len(d.Nodes))
	for i := range d.Nodes {
		inDeg[i] = len(d.Nodes[i].Parents)
	}
	ready := make([]int, 0, len(d.Nodes))
	for i, deg := range inDeg {
		if deg == 0 {
			ready = append(ready, i)
		}
	}
	order := make([]int, 0, len(d.Nodes))
	for len(ready) > 0 {
		minPos := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[minPos] {
				minPos = i
			}
		}
		n := ready[minPos]
		ready = append(ready[:minPos], ready[minPos+1:]...)
		order = append(order, n)
		for _, c := range d.Nodes[n].Children {
			inDeg[c]--
			if inDeg[c] == 0 {
				ready = append(ready, c)
			}
		}
	}
	if len(order) != len(d.Nodes) {
		return nil, qerr.Cyclic("topological sort could not process all nodes")
	}
	return order, nil
}
