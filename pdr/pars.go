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

// Package pdr implements property-directed reachability over a gia.Manager,
// driven entirely through the satsolver.Solver trait and the cnf.Facade CNF
// boundary.
package pdr

import "time"

// Verdict is the three-way proof result, matching the exit-status encoding
// callers expect: proved=1, disproved=0, undecided=-1.
type Verdict int

const (
	Undecided Verdict = -1
	Disproved Verdict = 0
	Proved    Verdict = 1
)

// Pars mirrors the engine's tunable parameter struct. Only iOutput selects a
// single property when fSolveAll is false; otherwise every PO is solved in
// one run and tracked in the engine's per-output verdict map.
type Pars struct {
	IOutput      int
	NRecycle     int
	NFrameMax    int
	NConfLimit   int
	NRestLimit   int
	NTimeOut     time.Duration
	FTwoRounds   bool
	FMonoCnf     bool
	FDumpInv     bool
	FShortest    bool
	FSkipGeneral bool
	FSolveAll    bool
	FVerbose     bool
	FVeryVerbose bool
}

// DefaultPars returns the documented defaults.
func DefaultPars() Pars {
	return Pars{
		NRecycle:  300,
		NFrameMax: 10000,
		NRestLimit: 0,
	}
}
