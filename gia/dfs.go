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

import "github.com/RoaringBitmap/roaring/v2"

// NextTravID bumps and returns the manager's traversal id. A DFS walk stamps
// each visited object's Value with this id; IsVisited/SetVisited compare
// against it so no traversal needs to clear per-object state up front.
func (m *Manager) NextTravID() uint32 {
	m.travID++
	return m.travID
}

func (m *Manager) IsVisited(id int32) bool { return m.pObjs[id].Value == m.travID }
func (m *Manager) SetVisited(id int32)     { m.pObjs[id].Value = m.travID }

// Cone is the result of a single DFS walk rooted at a set of CO/AND literals:
// the CIs it depends on (the support) and the AND nodes in topological order.
type Cone struct {
	Cis  []int32
	Ands []int32
}

// ConeOf walks the structural fanin cone of roots (given as object ids, fanin
// direction only, ignoring complement bits) and returns it in topological
// (children-before-parents) order. fAddStrash has no bearing here: this is a
// read-only structural walk, not a duplication.
func (m *Manager) ConeOf(roots []int32) Cone {
	m.NextTravID()
	m.SetVisited(0)
	var c Cone
	var visit func(id int32)
	visit = func(id int32) {
		if m.IsVisited(id) {
			return
		}
		m.SetVisited(id)
		o := &m.pObjs[id]
		switch {
		case o.IsCi():
			c.Cis = append(c.Cis, id)
		case o.IsAnd():
			visit(m.Fanin0(id))
			visit(m.Fanin1(id))
			c.Ands = append(c.Ands, id)
		case o.IsCo():
			visit(m.Fanin0(id))
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return c
}

// SuppSize returns |support(roots)|, the number of distinct CIs the roots
// structurally depend on.
func (m *Manager) SuppSize(roots []int32) int { return len(m.ConeOf(roots).Cis) }

// ConeSize returns the number of distinct AND nodes in the cone of roots.
func (m *Manager) ConeSize(roots []int32) int { return len(m.ConeOf(roots).Ands) }

// VisitedSet renders the last DFS walk's visited-object set as a roaring
// bitmap, used by the self-check mode and by pdr's soundness verifier (spec
// §8 "PDR soundness") to cross-check which (frame,object) pairs a pass
// actually covered, independent of the travId scratch mechanism itself.
func (m *Manager) VisitedSet() *roaring.Bitmap {
	bm := roaring.New()
	for id := int32(0); id < int32(len(m.pObjs)); id++ {
		if m.IsVisited(id) {
			bm.Add(uint32(id))
		}
	}
	return bm
}
