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
	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/internal/chkpt"
	"github.com/erigontech/gia-pdr/satsolver"
)

// SaveCheckpoint persists the engine's frame/clause database to path, the
// save half of spec §4.11's incremental PDR driver.
func (e *Engine) SaveCheckpoint(path string) error {
	snap := chkpt.Snapshot{NumRegs: e.m.NumRegs(), NumPis: e.m.NumPis()}
	for i := 0; i < e.frames.NumFrames(); i++ {
		fs := chkpt.FrameSnapshot{Level: i}
		for _, c := range e.frames.ClausesAt(i) {
			cs := chkpt.CubeSnapshot{}
			for _, l := range c.State {
				cs.Flops = append(cs.Flops, gia.Var(l))
				cs.Signs = append(cs.Signs, gia.IsCompl(l))
			}
			fs.Clauses = append(fs.Clauses, cs)
		}
		snap.Frames = append(snap.Frames, fs)
	}
	return chkpt.Save(path, snap)
}

// LoadCheckpoint rebuilds the frame/clause database from a snapshot. When
// revalidate is set, every reloaded cube is re-checked by relative induction
// before being trusted, guarding against a checkpoint taken against a
// different AIG revision; cubes that no longer hold are silently dropped
// rather than aborting the whole reload.
func (e *Engine) LoadCheckpoint(path string, revalidate bool) error {
	snap, err := chkpt.Load(path)
	if err != nil {
		return err
	}
	if snap.NumRegs != e.m.NumRegs() || snap.NumPis != e.m.NumPis() {
		return errors.New("chkpt: register/PI count mismatch with current AIG")
	}

	for _, fs := range snap.Frames {
		e.frames.ensureFrame(fs.Level)
		for _, cs := range fs.Clauses {
			lits := make([]gia.Lit, len(cs.Flops))
			for i, flop := range cs.Flops {
				lits[i] = gia.MkLit(flop, cs.Signs[i])
			}
			cube := NewCube(lits, nil)
			if revalidate {
				res, _ := e.frames.checkCube(fs.Level, cube, 0, false, e.pars.NConfLimit)
				if res != satsolver.Unsat {
					continue
				}
			}
			e.frames.AddClause(fs.Level, cube)
		}
	}
	return nil
}

// Resume continues a reloaded engine's main loop. It is deliberately the
// same entry point as a fresh run: spec §8 scenario 6 requires the two to
// agree on a verdict within the same resource budget.
func (e *Engine) Resume() map[int]Verdict {
	return e.Solve()
}
