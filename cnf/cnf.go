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

// Package cnf translates an AIG into CNF clauses against a satsolver.Solver,
// one frame at a time. Two strategies share the Facade interface: Monolithic
// computes the whole CNF once and reuses it at every frame; OnDemand grows
// each frame's variable set lazily, admitting only the transitive fanin a
// given query actually touches.
package cnf

import (
	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// Facade is the CNF boundary PDR's frame fabric is written against. SatVar
// returns the SAT variable representing object id's current-state literal at
// frame k, admitting clauses into solver as needed. RegNum is SatVar's
// reverse: given a SAT variable at frame k, it reports which register (by
// index into the flop array) that variable corresponds to, if any.
type Facade interface {
	SatVar(solver satsolver.Solver, k int, id int32) int
	RegNum(k int, satVar int) (regIdx int, ok bool)
	// Reset drops frame k's variable mappings (other frames are untouched),
	// used when a frame's solver is recycled and rebuilt from scratch.
	Reset(k int)
}

// lit2var translates a gia.Lit into a satsolver.Lit given the SAT variable
// already allocated for its regular form.
func lit2var(l gia.Lit, v int) satsolver.Lit {
	if gia.IsCompl(l) {
		return -v
	}
	return v
}
