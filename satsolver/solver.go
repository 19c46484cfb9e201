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

// Package satsolver defines the narrow SAT contract the PDR core is written
// against (spec §6), plus two concrete backends: a gini-backed incremental
// solver and a small reference DPLL solver used by tests. The core never
// imports a specific backend's package directly outside of cmd/giapdr wiring.
package satsolver

import "time"

// Result is the three-way verdict SAT calls return under a budget.
type Result int

const (
	Undef Result = iota
	Sat
	Unsat
)

// Lit is a DIMACS-style literal: variable v (1-based) is encoded as v for
// positive, -v for negative, matching how PDR's own lit/2+c literals are
// translated at the CNF boundary (cnf.Facade does that translation; this
// package only ever sees plain ints).
type Lit = int

// Solver is the trait every PDR frame is built on. Implementations may be
// incremental (gini) or batch (a reference solver that rebuilds from scratch
// on every Solve); PDR only relies on the semantics below, never on solver
// internals.
type Solver interface {
	// NewVar allocates and returns a fresh 1-based variable id.
	NewVar() int
	// SetNumVars ensures the solver has at least n variables allocated.
	SetNumVars(n int)
	// AddClause asserts the permanent disjunction of lits. Returns false if
	// the solver detected the formula is now trivially unsatisfiable.
	AddClause(lits []Lit) bool
	// Solve checks satisfiability under the given assumption literals, honoring
	// an optional conflict limit and memory limit (either may be 0 = unlimited).
	Solve(assumptions []Lit, confLimit, memLimit int) Result
	// ModelValue returns 0 or 1 for v under the last Sat result.
	ModelValue(v int) int
	// FinalConflict returns the subset of the last Solve's assumptions that
	// participated in the UNSAT proof (the unsat core), valid after Unsat.
	FinalConflict() []Lit
	// SetPolarity biases the solver's branching default for vars.
	SetPolarity(vars []int, positive bool)
	// SetRuntimeLimit aborts any in-flight or future Solve call past deadline,
	// returning Undef.
	SetRuntimeLimit(deadline time.Time)
	// Rollback discards every variable and clause added after toNumVars was
	// current. pdr's frameSet does not call it: it recycles a frame by
	// building a fresh solver.
	Rollback(toNumVars int)
}
