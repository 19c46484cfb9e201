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

// CombCex is the manager's scratch combinational counter-example: one PI
// assignment that drives some PO to 1 under a purely combinational reading
// of the graph (registers treated as free PIs). It is the degenerate,
// single-frame case of the sequential CEX format defined in package aiger.
type CombCex struct {
	PO  int
	Pis []bool
}

// Simulate runs m with CI values given by pis (PIs) and regs (register
// outputs, may be nil for an all-zero initial state) and returns each PO's
// concrete Boolean value.
func (m *Manager) Simulate(pis []bool, regs []bool) []bool {
	s := NewTernaryState(len(m.pObjs))
	nPis := m.NumPis()
	for i := 0; i < nPis; i++ {
		v := Tri0
		if i < len(pis) && pis[i] {
			v = Tri1
		}
		s.Set(m.vCis[i], v)
	}
	for i := 0; i < m.nRegs; i++ {
		v := Tri0
		if i < len(regs) && regs[i] {
			v = Tri1
		}
		s.Set(m.vCis[nPis+i], v)
	}
	s.Set(0, Tri0)
	m.Propagate(s)
	out := make([]bool, m.NumPos())
	for i := 0; i < m.NumPos(); i++ {
		out[i] = m.CoValue(s, m.vCos[i]) == Tri1
	}
	return out
}
