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

// NeedsLevels computes (or recomputes) the logic-level side table: every CI
// is level 0, every AND is one more than the deeper of its two fanins.
func (m *Manager) NeedsLevels() {
	m.pLevels = make([]int32, len(m.pObjs))
	max := int32(0)
	for id := int32(1); id < int32(len(m.pObjs)); id++ {
		if !m.pObjs[id].IsAnd() {
			continue
		}
		l0, l1 := m.pLevels[m.Fanin0(id)], m.pLevels[m.Fanin1(id)]
		l := l0
		if l1 > l {
			l = l1
		}
		m.pLevels[id] = l + 1
		if m.pLevels[id] > max {
			max = m.pLevels[id]
		}
	}
}

func (m *Manager) Level(id int32) int32 {
	if m.pLevels == nil {
		m.NeedsLevels()
	}
	return m.pLevels[id]
}

// NeedsRefs computes the fanin reference-count side table: how many other
// objects (ANDs and COs) point at each object as a fanin.
func (m *Manager) NeedsRefs() {
	m.pRefs = make([]int32, len(m.pObjs))
	for id := int32(1); id < int32(len(m.pObjs)); id++ {
		o := &m.pObjs[id]
		if o.IsAnd() {
			m.pRefs[m.Fanin0(id)]++
			m.pRefs[m.Fanin1(id)]++
		} else if o.IsCo() {
			m.pRefs[m.Fanin0(id)]++
		}
	}
}

func (m *Manager) RefCount(id int32) int32 {
	if m.pRefs == nil {
		m.NeedsRefs()
	}
	return m.pRefs[id]
}
