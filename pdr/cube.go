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

package pdr

import (
	"sort"

	"github.com/erigontech/gia-pdr/gia"
)

// Cube is a conjunction of state literals (over register indices, using
// gia's own literal calculus: var = flop index, sign = polarity) plus an
// unordered PI witness tail carried along for CEX reconstruction. Cubes are
// reference-counted; Deref below nRegs+1 never happens because the owning
// frame always holds at least one reference while a cube is stored.
type Cube struct {
	State []gia.Lit // sorted ascending by flop index
	Pis   []gia.Lit // PI witness tail, frame-local, unordered
	Sig   uint64
	refs  int
}

func signature(lits []gia.Lit) uint64 {
	var s uint64
	for _, l := range lits {
		s |= 1 << (uint(gia.Var(l)) % 63)
	}
	return s
}

// NewCube sorts litsState by flop index and computes the subsumption
// signature, matching spec §4.8's create(litsState, litsPi).
func NewCube(litsState, litsPi []gia.Lit) *Cube {
	st := append([]gia.Lit(nil), litsState...)
	sort.Slice(st, func(i, j int) bool { return gia.Var(st[i]) < gia.Var(st[j]) })
	return &Cube{
		State: st,
		Pis:   append([]gia.Lit(nil), litsPi...),
		Sig:   signature(st),
		refs:  1,
	}
}

func (c *Cube) Ref() *Cube { c.refs++; return c }

// Deref drops a reference; callers must not touch c after refs reaches 0.
func (c *Cube) Deref() int { c.refs--; return c.refs }

// CreateFrom returns a cube with the state literal at position i removed
// (spec §4.8's createFrom), used while greedily dropping literals during
// clause generalization.
func (c *Cube) CreateFrom(i int) *Cube {
	st := make([]gia.Lit, 0, len(c.State)-1)
	st = append(st, c.State[:i]...)
	st = append(st, c.State[i+1:]...)
	return NewCube(st, c.Pis)
}

// CreateSubset keeps only the state literals in keep; the PI tail is
// unchanged (spec §4.8's createSubset).
func (c *Cube) CreateSubset(keep []gia.Lit) *Cube {
	return NewCube(keep, c.Pis)
}

// Contains reports whether every state literal of b also appears in a
// (spec's contains(old, new)): a signature quick-reject, then a two-pointer
// scan over both sorted literal lists.
func Contains(a, b *Cube) bool {
	if a.Sig&b.Sig != b.Sig {
		return false
	}
	i, j := 0, 0
	for i < len(a.State) && j < len(b.State) {
		av, bv := gia.Var(a.State[i]), gia.Var(b.State[j])
		switch {
		case av == bv:
			if a.State[i] != b.State[j] {
				return false
			}
			i++
			j++
		case av < bv:
			i++
		default:
			return false
		}
	}
	return j == len(b.State)
}

// IsInit reports whether every state literal (other than index skip) is the
// zero-polarity literal, i.e. asserts its flop is 0 -- the all-zero initial
// state. skip excludes one index from the check, used while tentatively
// dropping a literal during generalization.
func (c *Cube) IsInit(skip int) bool {
	for i, l := range c.State {
		if i == skip {
			continue
		}
		if !gia.IsCompl(l) {
			return false
		}
	}
	return true
}

// Compare orders cubes lexicographically on the state-literal sequence,
// longest cube first.
func Compare(a, b *Cube) int {
	if len(a.State) != len(b.State) {
		if len(a.State) > len(b.State) {
			return -1
		}
		return 1
	}
	for i := range a.State {
		if a.State[i] != b.State[i] {
			if a.State[i] < b.State[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
