package circuit

import (
	"sync"

	"github.com/kegliz/qreduce/qc/gate"
)

var recordSlicePool = sync.Pool{
	New: func() any {
		return make([]gate.Record, 0, 25) // Pre-allocate with reasonable capacity
	},
}

// HistorySnapshot returns a pooled copy of the circuit's gate history, for
// callers (benchmark loops, repeated-read diagnostics) that need a transient
// read-only view without holding a reference into the circuit's own slice.
// Pair every call with ReturnHistorySnapshot.
func (c *Circuit) HistorySnapshot() []gate.Record {
	result := recordSlicePool.Get().([]gate.Record)
	result = result[:0]
	result = append(result, c.history...)
	return result
}

// ReturnHistorySnapshot releases a slice obtained from HistorySnapshot back
// to the pool.
func ReturnHistorySnapshot(slice []gate.Record) {
	recordSlicePool.Put(slice) //nolint:staticcheck // reused via copy, no need to clear first
}
