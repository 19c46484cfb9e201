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
	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// justifyRoots picks the cone spec §4.6's ternarySim justifies against: the
// register-input drivers of target's constrained flops, or the queried PO
// when target is nil (a bad-state search rather than relative induction).
func (fr *frameSet) justifyRoots(target *Cube, outIdx int) []int32 {
	if target == nil {
		return []int32{fr.m.Co(outIdx)}
	}
	roots := make([]int32, 0, len(target.State))
	for _, l := range target.State {
		roots = append(roots, fr.m.Ri(int(gia.Var(l))))
	}
	return roots
}

// derivePredicate runs spec §4.6's justification routine: initialise CIs from
// the SAT model, then greedily generalise the register outputs to X (single
// ascending pass; the priority-ordered two-pass split belongs to the main
// loop's clause-generalization bookkeeping, not this layer), re-propagating
// only the affected fanout and committing a drop only if the roots still
// match their pre-drop value.
func (fr *frameSet) derivePredicate(s satsolver.Solver, k int, target *Cube, outIdx int) *Cube {
	m := fr.m
	nPis := m.NumPis()
	nRegs := m.NumRegs()

	piVals := make([]bool, nPis)
	for i := 0; i < nPis; i++ {
		v := fr.facade.SatVar(s, k, m.Ci(i))
		piVals[i] = s.ModelValue(v) == 1
	}
	regVals := make([]bool, nRegs)
	for i := 0; i < nRegs; i++ {
		v := fr.curVar(s, k, i)
		regVals[i] = s.ModelValue(int(v)) == 1
	}

	state := gia.NewTernaryState(m.NumObjs())
	state.Set(0, gia.Tri0)
	for i := 0; i < nPis; i++ {
		v := gia.Tri0
		if piVals[i] {
			v = gia.Tri1
		}
		state.Set(m.Ci(i), v)
	}
	for i := 0; i < nRegs; i++ {
		v := gia.Tri0
		if regVals[i] {
			v = gia.Tri1
		}
		state.Set(m.Ro(i), v)
	}
	m.Propagate(state)

	roots := fr.justifyRoots(target, outIdx)
	baseline := make([]gia.TriVal, len(roots))
	for i, r := range roots {
		baseline[i] = m.CoValue(state, r)
	}
	matches := func() bool {
		for i, r := range roots {
			if m.CoValue(state, r) != baseline[i] {
				return false
			}
		}
		return true
	}

	kept := make([]bool, nRegs)
	for i := range kept {
		kept[i] = true
	}
	for i := 0; i < nRegs; i++ {
		ro := m.Ro(i)
		saved := state.Get(ro)
		state.Set(ro, gia.TriX)
		m.PropagateFanout(state, []int32{ro})
		if matches() {
			kept[i] = false
		} else {
			state.Set(ro, saved)
			m.PropagateFanout(state, []int32{ro})
		}
	}

	stateLits := make([]gia.Lit, 0, nRegs)
	for i := 0; i < nRegs; i++ {
		if !kept[i] {
			continue
		}
		stateLits = append(stateLits, gia.MkLit(int32(i), !regVals[i]))
	}
	piLits := make([]gia.Lit, nPis)
	for i := 0; i < nPis; i++ {
		piLits[i] = gia.MkLit(int32(i), !piVals[i])
	}
	return NewCube(stateLits, piLits)
}
