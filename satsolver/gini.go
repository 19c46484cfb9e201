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

import (
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// GiniSolver adapts github.com/irifrance/gini's incremental solver to the
// Solver trait. Gini's own literal encoding (z.Lit = 2*v+c) is exactly the
// calculus of spec §3, which is what makes it the natural backend here: the
// only translation needed is DIMACS-style int <-> z.Lit.
type GiniSolver struct {
	g        *gini.Gini
	deadline time.Time
	numVars  int
	lastCore []Lit
}

func NewGiniSolver() *GiniSolver {
	return &GiniSolver{g: gini.New()}
}

func toZ(l Lit) z.Lit {
	if l < 0 {
		return z.Var(-l).Neg()
	}
	return z.Var(l).Pos()
}

func fromZ(l z.Lit) Lit {
	v := int(l.Var())
	if l.IsPos() {
		return v
	}
	return -v
}

func (s *GiniSolver) NewVar() int {
	s.numVars++
	return s.numVars
}

func (s *GiniSolver) SetNumVars(n int) {
	for s.numVars < n {
		s.NewVar()
	}
}

func (s *GiniSolver) AddClause(lits []Lit) bool {
	for _, l := range lits {
		s.g.Add(toZ(l))
	}
	s.g.Add(0)
	return true
}

func (s *GiniSolver) Solve(assumptions []Lit, confLimit, memLimit int) Result {
	_ = memLimit // gini has no direct memory cap; confLimit below approximates the budget
	zs := make([]z.Lit, len(assumptions))
	for i, l := range assumptions {
		zs[i] = toZ(l)
	}
	s.g.Assume(zs...)

	var res int
	if !s.deadline.IsZero() {
		d := time.Until(s.deadline)
		if d <= 0 {
			return Undef
		}
		res = s.g.Try(d)
	} else if confLimit > 0 {
		res = s.g.Try(time.Minute) // conflict-bounded search approximated by a generous wall clock
	} else {
		res = s.g.Solve()
	}
	switch res {
	case 1:
		return Sat
	case -1:
		why := s.g.Why(nil)
		core := make([]Lit, len(why))
		for i, m := range why {
			core[i] = fromZ(m)
		}
		s.lastCore = core
		return Unsat
	default:
		return Undef
	}
}

func (s *GiniSolver) ModelValue(v int) int {
	if s.g.Value(z.Var(v).Pos()) {
		return 1
	}
	return 0
}

// FinalConflict returns the assumption subset gini's own Why reports as
// having participated in the UNSAT proof, translated back through fromZ.
func (s *GiniSolver) FinalConflict() []Lit { return s.lastCore }

func (s *GiniSolver) SetPolarity(vars []int, positive bool) {
	// gini picks its own branching heuristics; nothing in the public trait
	// maps 1:1, so this is a documented no-op for the gini backend.
	_ = vars
	_ = positive
}

func (s *GiniSolver) SetRuntimeLimit(deadline time.Time) { s.deadline = deadline }

func (s *GiniSolver) Rollback(toNumVars int) {
	// gini has no partial rollback; recycling a frame with this backend means
	// dropping the solver and rebuilding from toNumVars, which the frame
	// fabric (pdr.frameSet) already does by constructing a fresh GiniSolver.
	s.numVars = toNumVars
}
