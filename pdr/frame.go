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

import (
	"github.com/erigontech/gia-pdr/cnf"
	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// frameSet owns one SAT solver per frame plus the clause database. A clause
// stored at level i holds at every frame <= i (it was proved relative to
// F_{i-1}, and lower frames are tighter), so frame k's solver is primed with
// the union of clauses stored at levels k and above.
type frameSet struct {
	m         *gia.Manager
	facade    cnf.Facade
	newSolver func() satsolver.Solver

	solvers  []satsolver.Solver
	actVars  []int
	clauses  [][]*Cube
	nRecycle int
}

func newFrameSet(m *gia.Manager, facade cnf.Facade, newSolver func() satsolver.Solver, nRecycle int) *frameSet {
	if nRecycle <= 0 {
		nRecycle = 300
	}
	return &frameSet{m: m, facade: facade, newSolver: newSolver, nRecycle: nRecycle}
}

func (fr *frameSet) ensureFrame(k int) {
	for len(fr.solvers) <= k {
		fr.solvers = append(fr.solvers, nil)
		fr.actVars = append(fr.actVars, 0)
		fr.clauses = append(fr.clauses, nil)
	}
}

// NumFrames returns the count of frames opened so far (0..NumFrames-1).
func (fr *frameSet) NumFrames() int { return len(fr.solvers) }

// AddClause stores cube's negation as a clause known to hold at level k and
// below, asserting it into every already-live solver at levels <= k (spec's
// solverAddClause plus the bookkeeping createSolver would otherwise redo).
func (fr *frameSet) AddClause(k int, cube *Cube) {
	fr.ensureFrame(k)
	fr.clauses[k] = append(fr.clauses[k], cube.Ref())
	for i := 0; i <= k; i++ {
		if fr.solvers[i] != nil {
			fr.solverAddClauseFor(fr.solvers[i], i, cube)
		}
	}
}

// ClausesAt returns the clause list stored exactly at level k.
func (fr *frameSet) ClausesAt(k int) []*Cube {
	if k >= len(fr.clauses) {
		return nil
	}
	return fr.clauses[k]
}

// RemoveClause deletes the clause at position i of level k's list (used once
// a pushed clause has been subsumed into the next frame and moved, not
// duplicated).
func (fr *frameSet) RemoveClause(k, i int) {
	cs := fr.clauses[k]
	cube := cs[i]
	fr.clauses[k] = append(cs[:i:i], cs[i+1:]...)
	cube.Deref()
}

func (fr *frameSet) createSolver(k int) satsolver.Solver {
	fr.ensureFrame(k)
	s := fr.newSolver()
	fr.facade.Reset(k)
	for i := k; i < len(fr.clauses); i++ {
		for _, c := range fr.clauses[i] {
			fr.solverAddClauseFor(s, k, c)
		}
	}
	fr.solvers[k] = s
	fr.actVars[k] = 0
	return s
}

// fetchSolver returns frame k's current solver, rebuilding it from the stored
// clause database when its activation-literal count has crossed nRecycle.
func (fr *frameSet) fetchSolver(k int) satsolver.Solver {
	fr.ensureFrame(k)
	if fr.solvers[k] == nil || fr.actVars[k] >= fr.nRecycle {
		return fr.createSolver(k)
	}
	return fr.solvers[k]
}

func (fr *frameSet) curVar(s satsolver.Solver, k, flopIdx int) satsolver.Lit {
	v := fr.facade.SatVar(s, k, fr.m.Ro(flopIdx))
	return satsolver.Lit(v)
}

func (fr *frameSet) nextVar(s satsolver.Solver, k, flopIdx int) satsolver.Lit {
	child := fr.m.Child0(fr.m.Ri(flopIdx))
	v := fr.facade.SatVar(s, k, gia.Var(child))
	if gia.IsCompl(child) {
		return -satsolver.Lit(v)
	}
	return satsolver.Lit(v)
}

func (fr *frameSet) nextVarForLit(s satsolver.Solver, k int, l gia.Lit) satsolver.Lit {
	v := fr.nextVar(s, k, int(gia.Var(l)))
	if gia.IsCompl(l) {
		return -v
	}
	return v
}

func (fr *frameSet) poVar(s satsolver.Solver, k, outIdx int) satsolver.Lit {
	child := fr.m.CoDriver(fr.m.Co(outIdx))
	v := fr.facade.SatVar(s, k, gia.Var(child))
	if gia.IsCompl(child) {
		return -satsolver.Lit(v)
	}
	return satsolver.Lit(v)
}

// solverAddClause asserts the negation of cube as a plain permanent clause in
// s, translating cube's current-state literals into frame k's SAT variables.
func (fr *frameSet) solverAddClauseFor(s satsolver.Solver, k int, c *Cube) {
	lits := make([]satsolver.Lit, 0, len(c.State))
	for _, l := range c.State {
		v := fr.curVar(s, k, int(gia.Var(l)))
		if gia.IsCompl(l) {
			lits = append(lits, v)
		} else {
			lits = append(lits, -v)
		}
	}
	s.AddClause(lits)
}

// LastUnsatCore re-derives, from the unsat proof the solver at frame k just
// produced for cube, which of cube's state literals actually participated
// (spec §4.9's var -> state-literal translation path): FinalConflict()
// yields the surviving assumption literals, and facade.RegNum maps each
// assumption's SAT variable back to a register index when that assumption
// was a direct register reference. ok is false when no solver is live at k
// yet, meaning there is no proof to mine. A flop absent from the returned
// set was not needed by that proof: it can be dropped from cube without a
// fresh relative-induction check, since the remaining assumptions alone
// already sufficed for Unsat. Flops whose assumption variable doesn't
// resolve through RegNum (the next-state function is gated through AND
// nodes rather than being a bare register reference) are conservatively
// reported as necessary, falling back to the greedy per-literal check.
func (fr *frameSet) LastUnsatCore(k int, cube *Cube) (map[int32]bool, bool) {
	if k < 0 || k >= len(fr.solvers) || fr.solvers[k] == nil {
		return nil, false
	}
	s := fr.solvers[k]
	core := s.FinalConflict()
	inCore := make(map[satsolver.Lit]bool, len(core))
	for _, l := range core {
		inCore[l] = true
	}

	necessary := make(map[int32]bool, len(cube.State))
	for _, l := range cube.State {
		flopIdx := gia.Var(l)
		v := fr.nextVarForLit(s, k, l)
		regSatVar := int(v)
		if regSatVar < 0 {
			regSatVar = -regSatVar
		}
		if _, ok := fr.facade.RegNum(k, regSatVar); !ok {
			necessary[flopIdx] = true
			continue
		}
		if inCore[v] || inCore[-v] {
			necessary[flopIdx] = true
		}
	}
	return necessary, true
}

// checkCube implements spec §4.9's relative-induction query. cube == nil asks
// "is there a reachable bad state at frame k"; otherwise it asks "does ¬cube
// hold inductively relative to frame k". wantPred requests a justified
// predecessor cube when the query is SAT.
func (fr *frameSet) checkCube(k int, cube *Cube, outIdx int, wantPred bool, confLimit int) (satsolver.Result, *Cube) {
	s := fr.fetchSolver(k)

	if cube == nil {
		v := fr.poVar(s, k, outIdx)
		res := s.Solve([]satsolver.Lit{v}, confLimit, 0)
		if res != satsolver.Sat || !wantPred {
			return res, nil
		}
		return res, fr.derivePredicate(s, k, nil, outIdx)
	}

	lits := make([]satsolver.Lit, 0, len(cube.State))
	for _, l := range cube.State {
		v := fr.curVar(s, k, int(gia.Var(l)))
		if gia.IsCompl(l) {
			lits = append(lits, v)
		} else {
			lits = append(lits, -v)
		}
	}
	a := s.NewVar()
	clause := append([]satsolver.Lit{satsolver.Lit(a)}, lits...)
	s.AddClause(clause)

	assumptions := make([]satsolver.Lit, 0, len(cube.State)+1)
	for _, l := range cube.State {
		assumptions = append(assumptions, fr.nextVarForLit(s, k, l))
	}
	assumptions = append(assumptions, -satsolver.Lit(a))

	res := s.Solve(assumptions, confLimit, 0)
	fr.actVars[k]++

	if res != satsolver.Sat || !wantPred {
		return res, nil
	}
	return res, fr.derivePredicate(s, k, cube, outIdx)
}
