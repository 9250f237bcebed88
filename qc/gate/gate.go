// Package gate is the closed registry of gate names the compiler core
// recognizes: arity and symmetry, nothing else. It deliberately knows
// nothing about matrices, drawing or simulation; those live one layer up
// or are external collaborators.
package gate

import (
	"strings"

	"github.com/kegliz/qreduce/qc/qerr"
)

// CCXArity is the arity of the one three-qubit gate in the catalog.
const CCXArity = 3

type entry struct {
	arity     int
	symmetric bool
}

// catalog is the fixed registry mapping gate name to arity and symmetry.
// cx is directed (control -> target matters); cz and swap are symmetric.
var catalog = map[string]entry{
	"h":            {1, false},
	"x":            {1, false},
	"y":            {1, false},
	"z":            {1, false},
	"s":            {1, false},
	"t":            {1, false},
	"rx":           {1, false},
	"ry":           {1, false},
	"rz":           {1, false},
	"u":            {1, false},
	"u3":           {1, false},
	"cx":           {2, false},
	"cz":           {2, true},
	"swap":         {2, true},
	"ccx":          {CCXArity, false},
	"m":            {1, false},
	"depolarizing": {1, false},
}

// Arity returns how many logical wires the named gate spans.
func Arity(name string) (int, error) {
	e, ok := catalog[norm(name)]
	if !ok {
		return 0, qerr.Unknown(name)
	}
	return e.arity, nil
}

// IsSymmetric reports whether a two-qubit gate treats its operands
// interchangeably (cz, swap) as opposed to directed (cx).
func IsSymmetric(name string) bool {
	e, ok := catalog[norm(name)]
	return ok && e.symmetric
}

// IsKnown reports whether name is in the closed catalog.
func IsKnown(name string) bool {
	_, ok := catalog[norm(name)]
	return ok
}

// IsMeasurement reports whether name is the measurement gate.
func IsMeasurement(name string) bool { return norm(name) == "m" }

// IsReset reports whether name is the reset operation. Reset carries no
// parameters and is added by re-linearization or by Circuit.Reset rather
// than through the gate builders, so it is not part of the catalog, but
// shares this lookup surface.
func IsReset(name string) bool { return norm(name) == "reset" }

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
