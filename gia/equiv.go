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

// Repr is the representative record for one object's equivalence class.
// IRepr is Void (no class), 0 (the constant class) or some index < the
// object's own id (the class head).
type Repr struct {
	IRepr   int32
	Proved  bool
	Failed  bool
}

const ReprVoid int32 = -1

// NeedsEquiv lazily allocates the representative/next tables.
func (m *Manager) NeedsEquiv() {
	if m.pReprs == nil {
		m.pReprs = make([]Repr, len(m.pObjs))
		for i := range m.pReprs {
			m.pReprs[i].IRepr = ReprVoid
		}
		m.pNexts = make([]int32, len(m.pObjs))
		for i := range m.pNexts {
			m.pNexts[i] = ReprVoid
		}
	}
}

func (m *Manager) growEquiv() {
	for len(m.pReprs) < len(m.pObjs) {
		m.pReprs = append(m.pReprs, Repr{IRepr: ReprVoid})
		m.pNexts = append(m.pNexts, ReprVoid)
	}
}

func (m *Manager) ObjIsConst(id int32) bool {
	return m.pReprs[id].IRepr == 0 && id != 0
}
func (m *Manager) ObjIsHead(id int32) bool {
	return m.pReprs[id].IRepr == ReprVoid && m.isClassHead(id)
}
func (m *Manager) ObjIsNone(id int32) bool { return m.pReprs[id].IRepr == ReprVoid }

// ReprOf returns id's equivalence-class record, or the zero Repr (IRepr ==
// ReprVoid) if NeedsEquiv was never called.
func (m *Manager) ReprOf(id int32) Repr {
	if m.pReprs == nil {
		return Repr{IRepr: ReprVoid}
	}
	return m.pReprs[id]
}

func (m *Manager) isClassHead(id int32) bool {
	// A head is an object that some other object names as its IRepr; its own
	// repr slot stays ReprVoid. DeriveNexts records heads in headOf, so this is
	// only accurate after the latest DeriveNexts call.
	return int(id) < len(m.headOf) && m.headOf[id]
}

// SetEquiv merges objects a and b into the same equivalence class, with the
// smaller index becoming (or staying) the representative. Const0's class is
// special-cased: merging anything with object 0 puts it in the constant class
// (IRepr == 0) regardless of index order.
func (m *Manager) SetEquiv(a, b int32, proved bool) {
	m.NeedsEquiv()
	m.growEquiv()
	if a == b {
		return
	}
	if a == 0 || b == 0 {
		other := a
		if a == 0 {
			other = b
		}
		m.pReprs[other] = Repr{IRepr: 0, Proved: proved}
		return
	}
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	m.pReprs[hi] = Repr{IRepr: lo, Proved: proved}
}

// DeriveNexts rebuilds pNexts (and the head bitmap) from pReprs in O(n):
// every non-void, non-head object is linked into its class's ascending chain.
func (m *Manager) DeriveNexts() {
	m.NeedsEquiv()
	n := len(m.pObjs)
	for i := range m.pNexts {
		m.pNexts[i] = ReprVoid
	}
	m.headOf = make([]bool, n)
	tails := make(map[int32]int32, n)
	for id := int32(0); id < int32(n); id++ {
		r := m.pReprs[id].IRepr
		if r == ReprVoid {
			continue
		}
		head := r
		if head == 0 {
			head = 0
		}
		m.headOf[head] = true
		if t, ok := tails[head]; ok {
			m.pNexts[t] = id
		} else {
			m.pNexts[head] = id
		}
		tails[head] = id
	}
}

// ClassMembers returns every object in head's equivalence class (head itself
// first), walking the pNexts chain built by DeriveNexts.
func (m *Manager) ClassMembers(head int32) []int32 {
	out := []int32{head}
	for n := m.pNexts[head]; n != ReprVoid; n = m.pNexts[n] {
		out = append(out, n)
	}
	return out
}

// ReduceByEquiv rewrites every AND fanin to point at its class representative
// (object 0 if the class is the constant class), returning a fresh manager.
// Equivalence classes here are node-level, not literal-level: SetEquiv(a,b)
// asserts a and b compute the same value, never complementary values.
func (m *Manager) ReduceByEquiv() *Manager {
	m.NeedsEquiv()
	rep := make([]int32, len(m.pObjs))
	for id := int32(0); id < int32(len(m.pObjs)); id++ {
		switch r := m.pReprs[id].IRepr; {
		case r == ReprVoid:
			rep[id] = id
		default:
			rep[id] = rep[r] // r < id always, already resolved
		}
	}
	return m.dupWithMap(func(id int32) int32 { return rep[id] })
}
