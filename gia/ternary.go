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

import "github.com/bits-and-blooms/bitset"

// TriVal is a three-valued simulation value: 0, 1 or X (unknown).
type TriVal uint8

const (
	TriUnused TriVal = 0b00
	Tri0      TriVal = 0b01
	Tri1      TriVal = 0b10
	TriX      TriVal = 0b11
)

func triNot(v TriVal) TriVal {
	switch v {
	case Tri0:
		return Tri1
	case Tri1:
		return Tri0
	default:
		return TriX
	}
}

func triAnd(a, b TriVal) TriVal {
	if a == Tri0 || b == Tri0 {
		return Tri0
	}
	if a == TriX || b == TriX {
		return TriX
	}
	return Tri1
}

// TernaryState packs one 2-bit value per object into a pair of bitsets (low
// bit, high bit), the bit layout spec §4.6 calls for, backed by
// bits-and-blooms/bitset instead of a hand-rolled word array.
type TernaryState struct {
	lo, hi *bitset.BitSet
}

func NewTernaryState(n int) *TernaryState {
	return &TernaryState{lo: bitset.New(uint(n)), hi: bitset.New(uint(n))}
}

func (s *TernaryState) Get(id int32) TriVal {
	var v TriVal
	if s.lo.Test(uint(id)) {
		v |= Tri0
	}
	if s.hi.Test(uint(id)) {
		v |= Tri1
	}
	return v
}

func (s *TernaryState) Set(id int32, v TriVal) {
	s.lo.SetTo(uint(id), v&Tri0 != 0)
	s.hi.SetTo(uint(id), v&Tri1 != 0)
}

// Propagate evaluates every AND in topo order (ascending id) from the current
// CI values already stored in s, writing results back into s.
func (m *Manager) Propagate(s *TernaryState) {
	for id := int32(1); id < int32(len(m.pObjs)); id++ {
		o := &m.pObjs[id]
		if !o.IsAnd() {
			continue
		}
		v0 := s.Get(m.Fanin0(id))
		if o.Compl0() {
			v0 = triNot(v0)
		}
		v1 := s.Get(m.Fanin1(id))
		if o.Compl1() {
			v1 = triNot(v1)
		}
		s.Set(id, triAnd(v0, v1))
	}
}

// PropagateFanout re-evaluates only the transitive fanout of the dirty object
// ids, in ascending id order, for the incremental re-propagation pass
// justify needs after tentatively X-ing out one flop.
func (m *Manager) PropagateFanout(s *TernaryState, dirty []int32) {
	m.NeedsFanout()
	m.NextTravID()
	queue := append([]int32(nil), dirty...)
	touched := map[int32]bool{}
	for _, id := range dirty {
		touched[id] = true
	}
	for i := 0; i < len(queue); i++ {
		for _, u := range m.FanoutsOf(queue[i]) {
			if !touched[u] {
				touched[u] = true
				queue = append(queue, u)
			}
		}
	}
	ids := make([]int32, 0, len(touched))
	for id := range touched {
		if m.pObjs[id].IsAnd() {
			ids = append(ids, id)
		}
	}
	// ascending id order == topological order for AIG fanin invariants
	insertionSortInt32(ids)
	for _, id := range ids {
		o := &m.pObjs[id]
		v0 := s.Get(m.Fanin0(id))
		if o.Compl0() {
			v0 = triNot(v0)
		}
		v1 := s.Get(m.Fanin1(id))
		if o.Compl1() {
			v1 = triNot(v1)
		}
		s.Set(id, triAnd(v0, v1))
	}
}

func insertionSortInt32(a []int32) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j-1] > a[j]; j-- {
			a[j-1], a[j] = a[j], a[j-1]
		}
	}
}

// CoValue reads a CO's current simulated value, honoring its complement bit.
func (m *Manager) CoValue(s *TernaryState, coID int32) TriVal {
	o := &m.pObjs[coID]
	v := s.Get(m.Fanin0(coID))
	if o.Compl0() {
		v = triNot(v)
	}
	return v
}
