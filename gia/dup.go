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

// remapFn substitutes an original object id with the id whose copy should be
// used in its place (e.g. its equivalence-class representative); the identity
// function makes dupWithMap a plain structural clone.
type remapFn func(id int32) int32

// dupWithMap performs a full DFS duplication of m into a fresh manager. Every
// fanin reference is first passed through remap (in original-id space), then
// the remapped object's already-computed copy literal is used, with the
// original complement bit re-applied on top. Each original object receives
// its fresh literal in o.Value, so callers with their own bookkeeping
// (equivalences, CEX witnesses) can look it up after the call returns.
func (m *Manager) dupWithMap(remap remapFn) *Manager {
	out := NewManager(m.Name, len(m.pObjs))
	m.pObjs[0].Value = uint32(LitFalse)

	for i := 0; i < len(m.vCis); i++ {
		id := m.vCis[i]
		lit := out.AppendCi()
		m.pObjs[remap(id)].Value = uint32(lit)
	}

	// visit walks the cone in remapped space: an edge to id is really an edge
	// to remap(id), so a representative is visited (and gets its Value set)
	// the first time ANY member of its class is reached, not only if the
	// representative itself happens to be a root.
	done := make([]bool, len(m.pObjs))
	done[0] = true
	var visit func(id int32) Lit
	visit = func(id int32) Lit {
		rid := remap(id)
		if done[rid] {
			return Lit(m.pObjs[rid].Value)
		}
		done[rid] = true
		o := &m.pObjs[rid]
		var lit Lit
		switch {
		case o.IsConst0():
			lit = LitFalse
		case o.IsAnd():
			l0 := ComplIf(visit(m.Fanin0(rid)), o.Compl0())
			l1 := ComplIf(visit(m.Fanin1(rid)), o.Compl1())
			lit = out.HashAnd(l0, l1)
		default: // CI, already assigned above
			lit = Lit(o.Value)
		}
		o.Value = uint32(lit)
		return lit
	}

	for i := 0; i < len(m.vCos); i++ {
		id := m.vCos[i]
		drv := m.Fanin0(id)
		lit := ComplIf(visit(drv), m.pObjs[id].Compl0())
		out.AppendCo(lit)
	}
	out.nRegs = m.nRegs
	return out
}

// DupOpts controls a Dup call.
type DupOpts struct {
	AddStrash bool // hash-cons new nodes against existing equal ANDs (may collapse the graph)
}

// Dup produces a topological, acyclic copy of m holding only the cone of its
// COs. opts.AddStrash has no effect: every AND is rebuilt through HashAnd in
// a fresh manager whether or not it is set, so structurally equal or
// trivially simplifiable ANDs of m collapse in the copy either way.
func (m *Manager) Dup(opts DupOpts) *Manager {
	_ = opts
	return m.dupWithMap(func(id int32) int32 { return id })
}

// Normalize returns a copy with CIs ordered PI-then-register, and COs ordered
// PO-then-register-input — the canonical order AIGER and the PDR engine both
// assume.
func (m *Manager) Normalize() *Manager {
	out := NewManager(m.Name, len(m.pObjs))
	cone := m.ConeOf(m.vCos) // stamps Value, so it runs before the copies are recorded there
	m.pObjs[0].Value = uint32(LitFalse)
	nPis, nPos := m.NumPis(), m.NumPos()
	for i := 0; i < nPis; i++ {
		lit := out.AppendCi()
		m.pObjs[m.vCis[i]].Value = uint32(lit)
	}
	for i := 0; i < m.nRegs; i++ {
		lit := out.AppendCi()
		m.pObjs[m.vCis[nPis+i]].Value = uint32(lit)
	}
	for _, id := range cone.Ands {
		l0 := ComplIf(Lit(m.pObjs[m.Fanin0(id)].Value), m.pObjs[id].Compl0())
		l1 := ComplIf(Lit(m.pObjs[m.Fanin1(id)].Value), m.pObjs[id].Compl1())
		m.pObjs[id].Value = uint32(out.HashAnd(l0, l1))
	}
	for i := 0; i < nPos; i++ {
		id := m.vCos[i]
		drv := m.Fanin0(id)
		out.AppendCo(ComplIf(Lit(m.pObjs[drv].Value), m.pObjs[id].Compl0()))
	}
	for i := 0; i < m.nRegs; i++ {
		id := m.vCos[nPos+i]
		drv := m.Fanin0(id)
		out.AppendCo(ComplIf(Lit(m.pObjs[drv].Value), m.pObjs[id].Compl0()))
	}
	out.nRegs = m.nRegs
	return out
}

// DupFlopSubset duplicates m keeping only the registers whose index is in
// keep (ascending, deduplicated); all other registers are dropped from both
// the CI and CO lists. Used by the invariant-dump path to project a learned
// clause set onto the flops the CLI actually asked to keep.
func (m *Manager) DupFlopSubset(keep []int32) *Manager {
	keepSet := make(map[int32]bool, len(keep))
	for _, k := range keep {
		keepSet[k] = true
	}
	out := NewManager(m.Name, len(m.pObjs))
	roots := make([]int32, 0, m.NumPos()+len(keep))
	roots = append(roots, m.vCos[:m.NumPos()]...)
	for i := 0; i < m.nRegs; i++ {
		if keepSet[int32(i)] {
			roots = append(roots, m.vCos[m.NumPos()+i])
		}
	}
	cone := m.ConeOf(roots) // stamps Value, so it runs before the copies are recorded there
	m.pObjs[0].Value = uint32(LitFalse)
	nPis := m.NumPis()
	for i := 0; i < nPis; i++ {
		lit := out.AppendCi()
		m.pObjs[m.vCis[i]].Value = uint32(lit)
	}
	for i := 0; i < m.nRegs; i++ {
		if !keepSet[int32(i)] {
			continue
		}
		lit := out.AppendCi()
		m.pObjs[m.vCis[nPis+i]].Value = uint32(lit)
	}
	for _, id := range cone.Ands {
		l0 := ComplIf(Lit(m.pObjs[m.Fanin0(id)].Value), m.pObjs[id].Compl0())
		l1 := ComplIf(Lit(m.pObjs[m.Fanin1(id)].Value), m.pObjs[id].Compl1())
		m.pObjs[id].Value = uint32(out.HashAnd(l0, l1))
	}
	for i := 0; i < m.NumPos(); i++ {
		id := m.vCos[i]
		drv := m.Fanin0(id)
		out.AppendCo(ComplIf(Lit(m.pObjs[drv].Value), m.pObjs[id].Compl0()))
	}
	for i := 0; i < m.nRegs; i++ {
		if !keepSet[int32(i)] {
			continue
		}
		id := m.vCos[m.NumPos()+i]
		drv := m.Fanin0(id)
		out.AppendCo(ComplIf(Lit(m.pObjs[drv].Value), m.pObjs[id].Compl0()))
	}
	out.nRegs = len(keep)
	return out
}

// Miter builds a combinational or sequential pair-miter of a and b: the two
// graphs are merged into one manager sharing PIs (and, if fSeq, registers),
// and their POs are compared. In dual-output mode the CO pairs are kept
// separate (index i, i+nPos); otherwise they are XORed into a single miter
// output (OR of all per-PO XORs).
func Miter(a, b *Manager, fDualOut, fSeq bool) *Manager {
	if a.NumPos() != b.NumPos() {
		panicInvariant("Miter: PO count mismatch %d vs %d", a.NumPos(), b.NumPos())
	}
	if fSeq && a.NumPis() != b.NumPis() {
		panicInvariant("Miter: sequential miter requires matching PI counts")
	}
	out := NewManager("miter", len(a.pObjs)+len(b.pObjs))
	nPis := a.NumPis()
	piLits := make([]Lit, nPis)
	for i := 0; i < nPis; i++ {
		piLits[i] = out.AppendCi()
	}
	regLitsA := make([]Lit, 0)
	regLitsB := make([]Lit, 0)
	if fSeq {
		for i := 0; i < a.nRegs; i++ {
			regLitsA = append(regLitsA, out.AppendCi())
		}
		for i := 0; i < b.nRegs; i++ {
			regLitsB = append(regLitsB, out.AppendCi())
		}
	}

	copyInto := func(src *Manager, piL []Lit, regL []Lit) []Lit {
		cone := src.ConeOf(src.vCos[:src.NumPos()]) // stamps Value, so it runs before the copies are recorded there
		src.pObjs[0].Value = uint32(LitFalse)
		for i := 0; i < src.NumPis(); i++ {
			src.pObjs[src.vCis[i]].Value = uint32(piL[i])
		}
		for i := 0; i < src.nRegs; i++ {
			var l Lit
			if regL != nil {
				l = regL[i]
			} else {
				l = out.AppendCi() // combinational miter: each side gets independent free CIs for its flops
			}
			src.pObjs[src.vCis[src.NumPis()+i]].Value = uint32(l)
		}
		for _, id := range cone.Ands {
			l0 := ComplIf(Lit(src.pObjs[src.Fanin0(id)].Value), src.pObjs[id].Compl0())
			l1 := ComplIf(Lit(src.pObjs[src.Fanin1(id)].Value), src.pObjs[id].Compl1())
			src.pObjs[id].Value = uint32(out.HashAnd(l0, l1))
		}
		poLits := make([]Lit, src.NumPos())
		for i := 0; i < src.NumPos(); i++ {
			drv := src.Fanin0(src.vCos[i])
			poLits[i] = ComplIf(Lit(src.pObjs[drv].Value), src.pObjs[src.vCos[i]].Compl0())
		}
		return poLits
	}

	var rA, rB []Lit
	if fSeq {
		rA, rB = regLitsA, regLitsB
	}
	posA := copyInto(a, piLits, rA)
	posB := copyInto(b, piLits, rB)

	if fDualOut {
		for i := range posA {
			out.AppendCo(posA[i])
			out.AppendCo(posB[i])
		}
	} else {
		miterOut := LitFalse
		for i := range posA {
			miterOut = out.HashAnd(Compl(miterOut), Compl(out.HashXor(posA[i], posB[i])))
			miterOut = Compl(miterOut)
		}
		out.AppendCo(miterOut)
	}
	return out
}
