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

import "github.com/erigontech/gia-pdr/gia"

// Cex is the engine-level counter-example: a reported frame at which output
// IPo is forced to 1, the initial register state (always all-zero), and one
// PI assignment block per time step, matching spec §6's wire format.
type Cex struct {
	IPo    int
	IFrame int
	NRegs  int
	NPis   int
	Bits   []bool // nRegs initial-state bits, then (iFrame+1) blocks of nPis bits each
}

// deriveCex walks the obligation chain starting at o (the frame-0 obligation
// whose cube intersected the initial state) forward through Next pointers to
// the tail obligation that was actually found via a bad-state search, then
// replays it through the manager's own ternary simulator before returning it
// (spec §8's CEX-soundness property).
func (e *Engine) deriveCex(p int, o *Obligation) *Cex {
	chain := []*Obligation{o}
	for chain[len(chain)-1].Next != nil {
		chain = append(chain, chain[len(chain)-1].Next)
	}
	iFrame := chain[len(chain)-1].Frame
	nRegs := e.m.NumRegs()
	nPis := e.m.NumPis()

	bits := make([]bool, 0, nRegs+(iFrame+1)*nPis)
	for i := 0; i < nRegs; i++ {
		bits = append(bits, false)
	}
	for _, ob := range chain {
		pis := ob.Cube.Pis
		for i := 0; i < nPis; i++ {
			v := false
			if i < len(pis) {
				v = !gia.IsCompl(pis[i])
			}
			bits = append(bits, v)
		}
	}

	c := &Cex{IPo: p, IFrame: iFrame, NRegs: nRegs, NPis: nPis, Bits: bits}
	e.verifyCex(c)
	return c
}

// verifyCex replays c frame by frame through the manager's ternary simulator
// and panics (an InvariantError, per spec §7's "these are programmer errors")
// if the reported frame does not actually drive the target PO to 1 -- a
// disproved verdict must never leave the engine with an unsound witness.
func (e *Engine) verifyCex(c *Cex) {
	regs := make([]bool, c.NRegs)
	idx := c.NRegs
	for frame := 0; frame <= c.IFrame; frame++ {
		pis := c.Bits[idx : idx+c.NPis]
		idx += c.NPis

		st := gia.NewTernaryState(e.m.NumObjs())
		st.Set(0, gia.Tri0)
		for i := 0; i < c.NPis; i++ {
			v := gia.Tri0
			if pis[i] {
				v = gia.Tri1
			}
			st.Set(e.m.Ci(i), v)
		}
		for i := 0; i < c.NRegs; i++ {
			v := gia.Tri0
			if regs[i] {
				v = gia.Tri1
			}
			st.Set(e.m.Ro(i), v)
		}
		e.m.Propagate(st)

		if frame == c.IFrame {
			if e.m.CoValue(st, e.m.Co(c.IPo)) != gia.Tri1 {
				panic(&gia.InvariantError{Msg: "pdr: derived CEX does not drive the target PO to 1"})
			}
		}

		next := make([]bool, c.NRegs)
		for i := 0; i < c.NRegs; i++ {
			next[i] = e.m.CoValue(st, e.m.Ri(i)) == gia.Tri1
		}
		regs = next
	}
}
