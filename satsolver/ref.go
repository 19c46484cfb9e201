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

package satsolver

import "time"

// RefSolver is a small, dependency-free DPLL solver with unit propagation. It
// exists so pdr's own tests can run against known-correct, easily-audited SAT
// semantics instead of depending on gini's behavior under restarts; it is not
// meant to be fast, only small and obviously correct.
type RefSolver struct {
	clauses  [][]Lit
	numVars  int
	model    map[int]bool
	deadline time.Time
	lastCore []Lit
}

func NewRefSolver() *RefSolver { return &RefSolver{model: map[int]bool{}} }

func (s *RefSolver) NewVar() int {
	s.numVars++
	return s.numVars
}

func (s *RefSolver) SetNumVars(n int) {
	for s.numVars < n {
		s.NewVar()
	}
}

func (s *RefSolver) AddClause(lits []Lit) bool {
	cl := append([]Lit(nil), lits...)
	s.clauses = append(s.clauses, cl)
	return true
}

func (s *RefSolver) Solve(assumptions []Lit, confLimit, memLimit int) Result {
	_ = confLimit
	_ = memLimit
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return Undef
	}
	assign := map[int]bool{}
	for _, a := range assumptions {
		v, pos := absLit(a)
		assign[v] = pos
	}
	ok, final := dpll(s.clauses, assign, s.numVars)
	if !ok {
		s.lastCore = minimizeCore(s.clauses, assumptions)
		return Unsat
	}
	s.model = final
	return Sat
}

func absLit(l Lit) (int, bool) {
	if l < 0 {
		return -l, false
	}
	return l, true
}

func dpll(clauses [][]Lit, assign map[int]bool, numVars int) (bool, map[int]bool) {
	assign = cloneAssign(assign)
	for {
		unit, val, v, found := findUnit(clauses, assign)
		if !found {
			break
		}
		_ = unit
		assign[v] = val
		if sat, conflict := evalClauses(clauses, assign); conflict {
			return false, nil
		} else if sat {
			return true, fill(assign, numVars)
		}
	}
	if sat, conflict := evalClauses(clauses, assign); conflict {
		return false, nil
	} else if sat {
		return true, fill(assign, numVars)
	}
	// pick first unassigned var and branch
	for v := 1; v <= numVars; v++ {
		if _, ok := assign[v]; ok {
			continue
		}
		for _, val := range []bool{true, false} {
			try := cloneAssign(assign)
			try[v] = val
			if ok, m := dpll(clauses, try, numVars); ok {
				return true, m
			}
		}
		return false, nil
	}
	return false, nil
}

func cloneAssign(a map[int]bool) map[int]bool {
	b := make(map[int]bool, len(a))
	for k, v := range a {
		b[k] = v
	}
	return b
}

func findUnit(clauses [][]Lit, assign map[int]bool) (Lit, bool, int, bool) {
	for _, cl := range clauses {
		unassigned := 0
		satisfied := false
		var lastLit Lit
		for _, l := range cl {
			v, pos := absLit(l)
			if val, ok := assign[v]; ok {
				if val == pos {
					satisfied = true
					break
				}
				continue
			}
			unassigned++
			lastLit = l
		}
		if satisfied {
			continue
		}
		if unassigned == 1 {
			v, pos := absLit(lastLit)
			return lastLit, pos, v, true
		}
	}
	return 0, false, 0, false
}

func evalClauses(clauses [][]Lit, assign map[int]bool) (allSat bool, conflict bool) {
	allSat = true
	for _, cl := range clauses {
		satisfied := false
		hasUnassigned := false
		for _, l := range cl {
			v, pos := absLit(l)
			if val, ok := assign[v]; ok {
				if val == pos {
					satisfied = true
					break
				}
			} else {
				hasUnassigned = true
			}
		}
		if satisfied {
			continue
		}
		if !hasUnassigned {
			return false, true
		}
		allSat = false
	}
	return allSat, false
}

func fill(assign map[int]bool, numVars int) map[int]bool {
	out := cloneAssign(assign)
	for v := 1; v <= numVars; v++ {
		if _, ok := out[v]; !ok {
			out[v] = false
		}
	}
	return out
}

// minimizeCore greedily drops assumptions that aren't needed for the formula
// to stay unsat, a slow but simple stand-in for a real solver's conflict-
// clause-derived unsat core.
func minimizeCore(clauses [][]Lit, assumptions []Lit) []Lit {
	core := append([]Lit(nil), assumptions...)
	for i := 0; i < len(core); {
		trial := append(append([]Lit(nil), core[:i]...), core[i+1:]...)
		assign := map[int]bool{}
		for _, a := range trial {
			v, pos := absLit(a)
			assign[v] = pos
		}
		maxVar := 0
		for _, cl := range clauses {
			for _, l := range cl {
				v, _ := absLit(l)
				if v > maxVar {
					maxVar = v
				}
			}
		}
		if ok, _ := dpll(clauses, assign, maxVar); !ok {
			core = trial
			continue
		}
		i++
	}
	return core
}

func (s *RefSolver) ModelValue(v int) int {
	if s.model[v] {
		return 1
	}
	return 0
}

func (s *RefSolver) FinalConflict() []Lit { return s.lastCore }

func (s *RefSolver) SetPolarity(vars []int, positive bool) { _, _ = vars, positive }

func (s *RefSolver) SetRuntimeLimit(deadline time.Time) { s.deadline = deadline }

func (s *RefSolver) Rollback(toNumVars int) {
	s.numVars = toNumVars
	kept := s.clauses[:0]
	for _, cl := range s.clauses {
		inRange := true
		for _, l := range cl {
			v, _ := absLit(l)
			if v > toNumVars {
				inRange = false
				break
			}
		}
		if inRange {
			kept = append(kept, cl)
		}
	}
	s.clauses = kept
}
