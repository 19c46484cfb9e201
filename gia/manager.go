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

package gia

import (
	"fmt"

	"github.com/erigontech/gia-pdr/internal/common"
)

// InvariantError marks a broken caller contract: invalid literal, cyclic
// fanin, duplicate-fanin AND, use of a freed cube, and the like. Per spec §7
// these are programmer errors and the engine aborts loudly rather than
// returning a value.
type InvariantError struct{ Msg string }

func (e *InvariantError) Error() string { return "gia: invariant violation: " + e.Msg }

func panicInvariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

// Manager owns the packed object array and every side table built on it.
// Object identity is permanent: growth only extends pObjs, it never moves an
// existing object's index.
type Manager struct {
	Name string

	pObjs []Obj
	vCis  []int32
	vCos  []int32
	nRegs int

	hTable  []int32 // structural-hash buckets, 0 means empty (object 0 is never a key)
	hMask   uint64

	// optional side tables, nil until Needs*Is called
	pLevels []int32
	pRefs   []int32
	pMap    []int32
	fanout  *fanoutDB

	pReprs []Repr
	pNexts []int32
	headOf []bool

	travID uint32

	CexComb *CombCex
}

// NewManager allocates object 0 (the constant) and reserves capacity for the
// expected number of further objects.
func NewManager(name string, capacityHint int) *Manager {
	capacityHint = common.GrowCap(0, capacityHint, 16)
	m := &Manager{
		Name:  name,
		pObjs: make([]Obj, 1, capacityHint),
	}
	m.pObjs[0] = Obj{iDiff0: none, iDiff1: none}
	m.initHash(capacityHint)
	return m
}

// SetRegNum declares the last n CIs as register outputs and the last n COs
// as register inputs (the AIGER convention: inputs and latches share the CI
// array, outputs and latch-next-state functions share the CO array). Callers
// -- the AIGER reader chief among them -- must finish appending every CI/CO
// before calling this.
func (m *Manager) SetRegNum(n int) {
	if n < 0 || n > len(m.vCis) || n > len(m.vCos) {
		panicInvariant("SetRegNum: %d exceeds CI/CO count (%d/%d)", n, len(m.vCis), len(m.vCos))
	}
	m.nRegs = n
}

func (m *Manager) NumObjs() int   { return len(m.pObjs) }
func (m *Manager) NumCis() int    { return len(m.vCis) }
func (m *Manager) NumCos() int    { return len(m.vCos) }
func (m *Manager) NumRegs() int   { return m.nRegs }
func (m *Manager) NumPis() int    { return len(m.vCis) - m.nRegs }
func (m *Manager) NumPos() int    { return len(m.vCos) - m.nRegs }
func (m *Manager) NumAnds() int   { return len(m.pObjs) - len(m.vCis) - len(m.vCos) - 1 }

func (m *Manager) Obj(id int32) *Obj { return &m.pObjs[id] }

func (m *Manager) Ci(i int) int32 { return m.vCis[i] }
func (m *Manager) Co(i int) int32 { return m.vCos[i] }

// Ro returns the id of the i-th register output (a CI).
func (m *Manager) Ro(i int) int32 { return m.vCis[len(m.vCis)-m.nRegs+i] }

// Ri returns the id of the i-th register input (a CO).
func (m *Manager) Ri(i int) int32 { return m.vCos[len(m.vCos)-m.nRegs+i] }

func (m *Manager) grow(extra int) {
	need := len(m.pObjs) + extra
	if need <= cap(m.pObjs) {
		return
	}
	newCap := common.GrowCap(cap(m.pObjs), need, 16)
	grown := make([]Obj, len(m.pObjs), newCap)
	copy(grown, m.pObjs)
	m.pObjs = grown
}

func (m *Manager) appendObj(o Obj) int32 {
	m.grow(1)
	id := int32(len(m.pObjs))
	m.pObjs = append(m.pObjs, o)
	return id
}

// AppendCi appends a fresh terminal CI and returns its (always positive) literal.
func (m *Manager) AppendCi() Lit {
	id := m.appendObj(Obj{iDiff0: none, flags: flagTerm})
	m.pObjs[id].setCioID(int32(len(m.vCis)))
	m.vCis = append(m.vCis, id)
	return MkLit(id, false)
}

// AppendCo appends a terminal CO driven by lit and returns its literal.
func (m *Manager) AppendCo(lit Lit) Lit {
	if !Valid(lit) {
		panicInvariant("AppendCo: invalid driving literal")
	}
	drv := int32(Var(lit))
	if int(drv) >= len(m.pObjs) {
		panicInvariant("AppendCo: driver %d out of range", drv)
	}
	id := m.appendObj(Obj{flags: flagTerm})
	o := &m.pObjs[id]
	o.iDiff0 = id - drv
	o.setFlag(flagCompl0, IsCompl(lit))
	o.setCioID(int32(len(m.vCos)))
	m.vCos = append(m.vCos, id)
	return MkLit(id, false)
}

// AppendAnd appends a new, non-hashed 2-input AND node (bypassing structural
// hashing). Prefer HashAnd for user-facing construction; AppendAnd is used by
// the hash-miss path and by duplication.
func (m *Manager) AppendAnd(lit0, lit1 Lit) Lit {
	if lit0 == lit1 {
		panicInvariant("AppendAnd: equal fanins %d", lit0)
	}
	if Regular(lit0) == Regular(lit1) {
		// a & !a == const0, the caller should have gone through HashAnd.
		panicInvariant("AppendAnd: complementary fanins must be simplified by HashAnd")
	}
	// canonical order: smaller literal becomes fanin0
	if Regular(lit1) < Regular(lit0) {
		lit0, lit1 = lit1, lit0
	}
	v0, v1 := Var(lit0), Var(lit1)
	if int(v0) >= len(m.pObjs) || int(v1) >= len(m.pObjs) {
		panicInvariant("AppendAnd: fanin out of range")
	}
	id := m.appendObj(Obj{})
	if int32(v0) >= id || int32(v1) >= id {
		panicInvariant("AppendAnd: fanin %d/%d not topologically below new node %d", v0, v1, id)
	}
	o := &m.pObjs[id]
	o.iDiff0 = id - v0
	o.iDiff1 = id - v1
	o.setFlag(flagCompl0, IsCompl(lit0))
	o.setFlag(flagCompl1, IsCompl(lit1))
	o.setFlag(flagPhase, phaseOfAnd(m, lit0, lit1))
	if m.fanout != nil {
		m.fanout.add(id, v0)
		m.fanout.add(id, v1)
	}
	return MkLit(id, false)
}

func phaseOfAnd(m *Manager, lit0, lit1 Lit) bool {
	p0 := m.Obj(Var(lit0)).Phase() != IsCompl(lit0)
	p1 := m.Obj(Var(lit1)).Phase() != IsCompl(lit1)
	return p0 && p1
}

// Fanin0/Fanin1 return the *un-complemented* fanin object id.
func (m *Manager) Fanin0(id int32) int32 {
	d := m.pObjs[id].iDiff0
	if d == none {
		return none
	}
	return id - d
}
func (m *Manager) Fanin1(id int32) int32 {
	d := m.pObjs[id].iDiff1
	if d == none {
		return none
	}
	return id - d
}

// Child0/Child1 return the fanin literal with its complement bit applied.
func (m *Manager) Child0(id int32) Lit {
	f := m.Fanin0(id)
	if f == none {
		return LitNone
	}
	return MkLit(f, m.pObjs[id].Compl0())
}
func (m *Manager) Child1(id int32) Lit {
	f := m.Fanin1(id)
	if f == none {
		return LitNone
	}
	return MkLit(f, m.pObjs[id].Compl1())
}

// CoDriver returns the literal driving CO object id (panics if id isn't a CO).
func (m *Manager) CoDriver(id int32) Lit {
	if !m.pObjs[id].IsCo() {
		panicInvariant("CoDriver: object %d is not a CO", id)
	}
	return m.Child0(id)
}
