// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package gia implements the packed And-Inverter-Graph data engine: structural
// hashing, fanout maintenance, DFS duplication, equivalence-class bookkeeping
// and ternary simulation.
package gia

// Lit is a signal reference: lit = 2*v + c, c in {0,1}. Var 0 is always the
// constant; LitFalse/LitTrue are its two literals. LitNone is the "no fanin"
// sentinel that Child0/Child1 return for an object lacking that fanin.
type Lit int32

const (
	LitNone  Lit = -1
	LitFalse Lit = 0
	LitTrue  Lit = 1
)

// Var returns the variable index carried by lit.
func Var(lit Lit) int32 { return int32(lit) >> 1 }

// Sign returns the polarity bit of lit (0 = positive, 1 = complemented).
func Sign(lit Lit) int32 { return int32(lit) & 1 }

// IsCompl reports whether lit carries the complement bit.
func IsCompl(lit Lit) bool { return lit&1 != 0 }

// Compl returns the complement of lit.
func Compl(lit Lit) Lit { return lit ^ 1 }

// ComplIf returns Compl(lit) iff c is true, else lit.
func ComplIf(lit Lit, c bool) Lit {
	if c {
		return lit ^ 1
	}
	return lit
}

// MkLit builds the literal for variable v under polarity c.
func MkLit(v int32, c bool) Lit {
	l := Lit(v) << 1
	if c {
		l |= 1
	}
	return l
}

// Regular strips the complement bit, returning the positive literal for v's var.
func Regular(lit Lit) Lit { return lit &^ 1 }

// Valid reports whether lit is a well-formed, non-sentinel literal.
func Valid(lit Lit) bool { return lit >= 0 }
