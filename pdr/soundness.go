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
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

// CheckClauses is the engine's self-check mode: spec §8's "PDR soundness"
// property, that every clause ever recorded into the frame/clause database
// actually holds at the frame it is stored at. A clause at frame 0 must not
// be violated by the all-zero initial state; a clause at frame k>0 must
// follow by relative induction from frame k-1, the same query blockQueued
// uses to admit a clause in the first place -- CheckClauses re-runs it after
// the fact as an independent audit, so a bug that corrupts the clause
// database after insertion (a bad push, a bad subsumption) is still caught.
//
// It returns the first violated clause's frame/cube as an error, or nil if
// every stored clause checks out. Alongside that it returns, per frame, the
// union of object ids that a cone walk from each clause's register outputs
// visits, i.e. those register outputs plus the constant object
// (gia.Manager's DFS/cone machinery, keyed by frame) -- a coverage report a
// caller can inspect to confirm the pass actually walked every clause's
// support rather than trusting an empty loop.
func (e *Engine) CheckClauses() (map[int]*roaring.Bitmap, error) {
	coverage := make(map[int]*roaring.Bitmap)

	for k := 0; k < e.frames.NumFrames(); k++ {
		for _, c := range e.frames.ClausesAt(k) {
			roots := make([]int32, len(c.State))
			for i, l := range c.State {
				roots[i] = e.m.Ro(int(gia.Var(l)))
			}
			e.m.ConeOf(roots)
			bm := e.m.VisitedSet()
			if cov, ok := coverage[k]; ok {
				cov.Or(bm)
			} else {
				coverage[k] = bm
			}

			if k == 0 {
				if c.IsInit(-1) {
					return coverage, errors.Errorf("pdr: clause at frame 0 violated by the initial state: %v", c.State)
				}
				continue
			}
			res, _ := e.frames.checkCube(k-1, c, 0, false, e.pars.NConfLimit)
			if res != satsolver.Unsat {
				return coverage, errors.Errorf("pdr: clause at frame %d does not hold inductively relative to frame %d: %v", k, k-1, c.State)
			}
		}
	}
	return coverage, nil
}
