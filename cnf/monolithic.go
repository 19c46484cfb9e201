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

package cnf

import (
	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// Monolithic computes the whole AIG's CNF against a frame's solver the first
// time that frame is touched, then serves every later SatVar/RegNum call as a
// flat table lookup. It costs more up front than OnDemand but never pays for
// recursive admission during the hot checkCube loop.
type Monolithic struct {
	m *gia.Manager

	varNums map[int][]int   // per-frame: obj id -> sat var (0 = unassigned)
	regOf   map[int]map[int]int // per-frame: sat var -> register index
	built   map[int]bool
}

func NewMonolithic(m *gia.Manager) *Monolithic {
	return &Monolithic{
		m:       m,
		varNums: map[int][]int{},
		regOf:   map[int]map[int]int{},
		built:   map[int]bool{},
	}
}

func (f *Monolithic) Reset(k int) {
	delete(f.varNums, k)
	delete(f.regOf, k)
	delete(f.built, k)
}

func (f *Monolithic) SatVar(solver satsolver.Solver, k int, id int32) int {
	if !f.built[k] {
		f.buildFrame(solver, k)
	}
	return f.varNums[k][id]
}

func (f *Monolithic) RegNum(k int, satVar int) (int, bool) {
	reg, ok := f.regOf[k][satVar]
	return reg, ok
}

func (f *Monolithic) buildFrame(solver satsolver.Solver, k int) {
	n := f.m.NumObjs()
	vars := make([]int, n)
	regOf := make(map[int]int, f.m.NumRegs())

	for id := 0; id < n; id++ {
		o := f.m.Obj(int32(id))
		switch {
		case id == 0:
			vars[id] = solver.NewVar()
			solver.AddClause([]satsolver.Lit{-vars[id]}) // const0 is permanently false
		case o.IsCi() || o.IsAnd():
			vars[id] = solver.NewVar()
		default: // CO: no variable of its own, driven by its fanin's literal
		}
	}

	for id := 0; id < n; id++ {
		o := f.m.Obj(int32(id))
		if !o.IsAnd() {
			continue
		}
		z := vars[id]
		a := lit2var(f.m.Child0(int32(id)), vars[f.m.Fanin0(int32(id))])
		b := lit2var(f.m.Child1(int32(id)), vars[f.m.Fanin1(int32(id))])
		solver.AddClause([]satsolver.Lit{-z, a})
		solver.AddClause([]satsolver.Lit{-z, b})
		solver.AddClause([]satsolver.Lit{z, -a, -b})
	}

	for i := 0; i < f.m.NumRegs(); i++ {
		ro := f.m.Ro(i)
		regOf[vars[ro]] = i
		if k == 0 {
			solver.AddClause([]satsolver.Lit{-vars[ro]}) // initial state: every flop is 0
		}
	}

	f.varNums[k] = vars
	f.regOf[k] = regOf
	f.built[k] = true
}
