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

import "github.com/erigontech/gia-pdr/internal/common"

// initHash (re)allocates the structural-hash bucket array. Size is always a
// power of two so probing can mask instead of mod.
func (m *Manager) initHash(objCapHint int) {
	size := 1
	for size < objCapHint*2 {
		size <<= 1
	}
	if size < 16 {
		size = 16
	}
	m.hTable = make([]int32, size)
	m.hMask = uint64(size - 1)
}

func (m *Manager) rehash() {
	old := m.hTable
	m.initHash(len(m.pObjs))
	for _, id := range old {
		if id == 0 {
			continue
		}
		m.hashInsert(id)
	}
}

func (m *Manager) hashInsert(id int32) {
	lit0, lit1 := m.Child0(id), m.Child1(id)
	slot := m.probe(lit0, lit1)
	m.hTable[slot] = id
	if m.loadFactor() > 0.65 {
		m.rehash()
	}
}

func (m *Manager) loadFactor() float64 {
	used := 0
	for _, id := range m.hTable {
		if id != 0 {
			used++
		}
	}
	return float64(used) / float64(len(m.hTable))
}

// probe returns the bucket index matching (lit0,lit1), or the first empty
// bucket on the probe sequence if no AND with those exact fanins exists yet.
func (m *Manager) probe(lit0, lit1 Lit) uint64 {
	h := common.Fingerprint(int(lit0), int(lit1))
	for slot := h & m.hMask; ; slot = (slot + 1) & m.hMask {
		id := m.hTable[slot]
		if id == 0 {
			return slot
		}
		if m.Child0(id) == lit0 && m.Child1(id) == lit1 {
			return slot
		}
	}
}

// HashAnd returns the (possibly pre-existing) literal for lit0 & lit1,
// applying the Boolean simplifications and structurally hash-consing new AND
// nodes. Calling it twice with the same operands, in either order, returns
// the same object id.
func (m *Manager) HashAnd(lit0, lit1 Lit) Lit {
	if lit1 < lit0 {
		lit0, lit1 = lit1, lit0
	}
	switch {
	case lit0 == LitFalse: // 0 & x == 0
		return LitFalse
	case lit0 == LitTrue: // 1 & x == x
		return lit1
	case lit0 == lit1: // x & x == x
		return lit0
	case lit0 == Compl(lit1): // x & !x == 0
		return LitFalse
	}
	slot := m.probe(lit0, lit1)
	if id := m.hTable[slot]; id != 0 {
		return MkLit(id, false)
	}
	lit := m.AppendAnd(lit0, lit1)
	m.hTable[slot] = Var(lit)
	if m.loadFactor() > 0.65 {
		m.rehash()
	}
	return lit
}

// HashXor reduces XOR to three HashAnd calls: a^b = (a&!b) | (!a&b), expressed
// through De Morgan as !(!(a&!b) & !(!a&b)).
func (m *Manager) HashXor(a, b Lit) Lit {
	return Compl(m.HashAnd(Compl(m.HashAnd(a, Compl(b))), Compl(m.HashAnd(Compl(a), b))))
}

// HashMux builds c ? t : e as (c&t) | (!c&e).
func (m *Manager) HashMux(c, t, e Lit) Lit {
	return Compl(m.HashAnd(Compl(m.HashAnd(c, t)), Compl(m.HashAnd(Compl(c), e))))
}

// NeedsFanout lazily allocates the fanout back-edge database; once present,
// every future AppendAnd call records back-edges for its fanins.
func (m *Manager) NeedsFanout() {
	if m.fanout == nil {
		m.fanout = newFanoutDB(len(m.pObjs))
		for id := int32(1); id < int32(len(m.pObjs)); id++ {
			if m.pObjs[id].IsAnd() {
				m.fanout.add(id, m.Fanin0(id))
				m.fanout.add(id, m.Fanin1(id))
			} else if m.pObjs[id].IsCo() {
				m.fanout.add(id, m.Fanin0(id))
			}
		}
	}
}

func (m *Manager) FanoutsOf(id int32) []int32 {
	if m.fanout == nil {
		return nil
	}
	return m.fanout.of(id)
}

type fanoutDB struct {
	edges map[int32][]int32
}

func newFanoutDB(capHint int) *fanoutDB {
	return &fanoutDB{edges: make(map[int32][]int32, capHint)}
}

func (f *fanoutDB) add(user, driver int32) {
	f.edges[driver] = append(f.edges[driver], user)
}

func (f *fanoutDB) of(id int32) []int32 { return f.edges[id] }
