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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// OnDemand admits CNF clauses lazily: satVar(k, o) walks o's transitive fanin
// and, for each object not yet seen at frame k, allocates a variable and
// asserts its Tseitin clauses before returning. The AIG's fanin structure is
// immutable, so the admit order for a given object is the same at every
// frame; admitOrder caches it, bounded, so repeated queries against deep
// cones don't re-walk the manager on every frame.
type OnDemand struct {
	m *gia.Manager

	id2var  map[int]map[int32]int // per-frame: obj id -> sat var
	var2reg map[int]map[int]int   // per-frame: sat var -> register index

	admitOrder *lru.Cache[int32, []int32]
}

func NewOnDemand(m *gia.Manager) *OnDemand {
	cache, err := lru.New[int32, []int32](4096)
	if err != nil {
		panic(err) // only fails for a non-positive size, which 4096 isn't
	}
	return &OnDemand{
		m:          m,
		id2var:     map[int]map[int32]int{},
		var2reg:    map[int]map[int]int{},
		admitOrder: cache,
	}
}

func (f *OnDemand) Reset(k int) {
	delete(f.id2var, k)
	delete(f.var2reg, k)
}

func (f *OnDemand) frameMaps(k int) (map[int32]int, map[int]int) {
	vars, ok := f.id2var[k]
	if !ok {
		vars = map[int32]int{}
		f.id2var[k] = vars
	}
	regs, ok := f.var2reg[k]
	if !ok {
		regs = map[int]int{}
		f.var2reg[k] = regs
	}
	return vars, regs
}

// SatVar admits id's full transitive fanin into solver at frame k (skipping
// objects already admitted at that frame) and returns id's sat variable.
func (f *OnDemand) SatVar(solver satsolver.Solver, k int, id int32) int {
	vars, regs := f.frameMaps(k)
	if v, ok := vars[id]; ok {
		return v
	}
	for _, oid := range f.order(id) {
		if _, ok := vars[oid]; ok {
			continue
		}
		f.admit(solver, k, oid, vars, regs)
	}
	return vars[id]
}

func (f *OnDemand) RegNum(k int, satVar int) (int, bool) {
	reg, ok := f.var2reg[k][satVar]
	return reg, ok
}

// order returns id's transitive fanin, id last, computed once per object and
// cached since the AIG's structure never changes across frames.
func (f *OnDemand) order(id int32) []int32 {
	if cached, ok := f.admitOrder.Get(id); ok {
		return cached
	}
	var out []int32
	seen := map[int32]bool{}
	var walk func(x int32)
	walk = func(x int32) {
		if seen[x] {
			return
		}
		seen[x] = true
		o := f.m.Obj(x)
		if o.IsAnd() {
			walk(f.m.Fanin0(x))
			walk(f.m.Fanin1(x))
		} else if o.IsCo() {
			walk(f.m.Fanin0(x))
		}
		out = append(out, x)
	}
	walk(id)
	f.admitOrder.Add(id, out)
	return out
}

func (f *OnDemand) admit(solver satsolver.Solver, k int, id int32, vars map[int32]int, regs map[int]int) {
	o := f.m.Obj(id)
	switch {
	case id == 0:
		v := solver.NewVar()
		vars[id] = v
		solver.AddClause([]satsolver.Lit{-v})
	case o.IsCi():
		v := solver.NewVar()
		vars[id] = v
		if regIdx, isReg := f.regIdxOf(id); isReg {
			regs[v] = regIdx
			if k == 0 {
				solver.AddClause([]satsolver.Lit{-v})
			}
		}
	case o.IsAnd():
		v := solver.NewVar()
		vars[id] = v
		a := lit2var(f.m.Child0(id), vars[f.m.Fanin0(id)])
		b := lit2var(f.m.Child1(id), vars[f.m.Fanin1(id)])
		solver.AddClause([]satsolver.Lit{-v, a})
		solver.AddClause([]satsolver.Lit{-v, b})
		solver.AddClause([]satsolver.Lit{v, -a, -b})
	case o.IsCo():
		// COs have no variable of their own; their fanin was just admitted.
	}
}

func (f *OnDemand) regIdxOf(id int32) (int, bool) {
	for i := 0; i < f.m.NumRegs(); i++ {
		if f.m.Ro(i) == id {
			return i, true
		}
	}
	return 0, false
}
