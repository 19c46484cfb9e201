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
	"sort"
	"time"

	"github.com/erigontech/gia-pdr/cnf"
	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/internal/obslog"
	"github.com/erigontech/gia-pdr/satsolver"
)

// Engine runs property-directed reachability over one gia.Manager. It owns
// the shared frame/clause database (reachable-state over-approximations are
// property-independent) and, when fSolveAll is set, steps every still-open
// output forward together one frame at a time, exactly as spec §4.11 lays
// out its outer loop.
type Engine struct {
	m      *gia.Manager
	facade cnf.Facade
	frames *frameSet
	pars   Pars

	outputs []int
	verdict map[int]Verdict
	cex     map[int]*Cex
	prio    []int // vPrio: how often each flop has survived a learned clause

	obligCap int
	deadline time.Time
	solved   func() bool // cooperative cancellation poll shared by a portfolio wrapper
}

func NewEngine(m *gia.Manager, pars Pars, newSolver func() satsolver.Solver) *Engine {
	var facade cnf.Facade
	if pars.FMonoCnf {
		facade = cnf.NewMonolithic(m)
	} else {
		facade = cnf.NewOnDemand(m)
	}
	outs := []int{pars.IOutput}
	if pars.FSolveAll {
		outs = make([]int, m.NumPos())
		for i := range outs {
			outs[i] = i
		}
	}
	e := &Engine{
		m:        m,
		facade:   facade,
		frames:   newFrameSet(m, facade, newSolver, pars.NRecycle),
		pars:     pars,
		outputs:  outs,
		verdict:  map[int]Verdict{},
		cex:      map[int]*Cex{},
		prio:     make([]int, m.NumRegs()),
		obligCap: 50000,
	}
	if pars.NTimeOut > 0 {
		e.deadline = time.Now().Add(pars.NTimeOut)
	}
	for _, p := range outs {
		e.verdict[p] = Undecided
	}
	return e
}

// SetCancelPoll installs the portfolio wrapper's cooperative "someone already
// solved it" callback, polled at every checkCube.
func (e *Engine) SetCancelPoll(f func() bool) { e.solved = f }

func (e *Engine) Verdicts() map[int]Verdict { return e.verdict }
func (e *Engine) Cex(output int) *Cex       { return e.cex[output] }

// Solve runs the main loop until every output is solved, a resource gate
// fires, or nFrameMax is reached.
func (e *Engine) Solve() map[int]Verdict {
	obls := NewObligationQueue()
	e.frames.ensureFrame(0)

	for k := 0; ; k++ {
		if e.timedOut() || len(e.activeOutputs()) == 0 {
			break
		}

		for _, p := range e.activeOutputs() {
			e.solveOutputAtFrame(k, p, obls)
		}

		if len(e.activeOutputs()) == 0 {
			break
		}
		if k+1 >= e.pars.NFrameMax {
			obslog.Warn("[pdr] nFrameMax reached, undecided", "k", k)
			break
		}

		e.frames.ensureFrame(k + 1)
		if e.pushClauses(k) {
			for _, p := range e.activeOutputs() {
				e.verdict[p] = Proved
			}
			break
		}
		obls.Clear()
	}
	return e.verdict
}

func (e *Engine) solveOutputAtFrame(k, p int, obls *ObligationQueue) {
	for {
		if e.timedOut() {
			return
		}
		res, pred := e.frames.checkCube(k, nil, p, true, e.pars.NConfLimit)
		if res == satsolver.Undef {
			return
		}
		if res == satsolver.Unsat {
			return
		}
		obls.Push(&Obligation{Frame: k, Prio: 0, Cube: pred})
		if !e.blockQueued(k, p, obls) {
			return
		}
		if e.verdict[p] != Undecided {
			return
		}
	}
}

func (e *Engine) blockQueued(k, p int, obls *ObligationQueue) bool {
	for obls.Len() > 0 {
		if e.timedOut() {
			return false
		}
		if obls.Len() > e.obligCap {
			obslog.Warn("[pdr] obligation queue cap exceeded, flushing", "cap", e.obligCap)
			obls.Clear()
			e.obligCap = e.obligCap * 3 / 2
			return false
		}

		o, _ := obls.Pop()
		s, j := o.Cube, o.Frame

		if e.contained(j, s) {
			continue
		}

		if j == 0 {
			if s.IsInit(-1) {
				e.verdict[p] = Disproved
				e.cex[p] = e.deriveCex(p, o)
				obls.Clear()
				return true
			}
			continue
		}

		res, pred := e.frames.checkCube(j-1, s, p, true, e.pars.NConfLimit)
		switch res {
		case satsolver.Unsat:
			gen := e.generalize(j-1, s)
			e.frames.AddClause(j, gen)
		case satsolver.Sat:
			obls.Push(&Obligation{Frame: j - 1, Prio: o.Prio + 1, Cube: pred, Next: o})
			obls.Push(&Obligation{Frame: j, Prio: o.Prio, Cube: s, Next: o.Next})
		default:
			return false
		}
	}
	return true
}

// contained reports whether s is already excluded by some clause stored at
// frame j or above (spec's subsumption pre-check before re-deriving it).
func (e *Engine) contained(j int, s *Cube) bool {
	for i := j; i < e.frames.NumFrames(); i++ {
		for _, stored := range e.frames.ClausesAt(i) {
			if Contains(s, stored) {
				return true
			}
		}
	}
	return false
}

// generalize reduces s in two steps, spec §4.11.1.b.ii: (A) an unsat-core
// pre-filter that drops every literal the relative-induction proof just run
// at baseFrame didn't need, at no extra SAT-query cost, then (B) greedy
// per-literal dropping (ascending vPrio order, so flops that have survived
// more learned clauses are tried last) over whatever the core step left,
// rejecting any drop that would make the cube all-initial or that breaks
// relative induction at baseFrame. Literals that end up surviving have their
// priority bumped.
func (e *Engine) generalize(baseFrame int, s *Cube) *Cube {
	cur := s
	if !e.pars.FSkipGeneral {
		if necessary, ok := e.frames.LastUnsatCore(baseFrame, cur); ok {
			cur = dropCoreUnnecessary(cur, necessary)
		}

		order := e.dropOrder(cur)
		for _, flopIdx := range order {
			if len(cur.State) <= 1 {
				break
			}
			pos := indexOfFlop(cur.State, flopIdx)
			if pos < 0 {
				continue
			}
			if cur.IsInit(pos) {
				continue
			}
			trial := cur.CreateFrom(pos)
			res, _ := e.frames.checkCube(baseFrame, trial, 0, false, e.pars.NConfLimit)
			if res == satsolver.Unsat {
				cur = trial
			}
		}
	}
	for _, l := range cur.State {
		e.prio[gia.Var(l)]++
	}
	return cur
}

// dropCoreUnnecessary removes every state literal of cur whose flop is
// absent from necessary, skipping any drop that would leave the cube empty
// or make it all-initial (the same guards the greedy loop applies).
func dropCoreUnnecessary(cur *Cube, necessary map[int32]bool) *Cube {
	for {
		if len(cur.State) <= 1 {
			return cur
		}
		dropped := -1
		for i, l := range cur.State {
			if necessary[gia.Var(l)] {
				continue
			}
			if cur.IsInit(i) {
				continue
			}
			dropped = i
			break
		}
		if dropped < 0 {
			return cur
		}
		cur = cur.CreateFrom(dropped)
	}
}

func (e *Engine) dropOrder(c *Cube) []int32 {
	idx := make([]int32, len(c.State))
	for i, l := range c.State {
		idx[i] = gia.Var(l)
	}
	sort.Slice(idx, func(a, b int) bool { return e.prio[idx[a]] < e.prio[idx[b]] })
	return idx
}

func indexOfFlop(state []gia.Lit, flopIdx int32) int {
	for i, l := range state {
		if gia.Var(l) == flopIdx {
			return i
		}
	}
	return -1
}

// pushClauses tries to promote every clause at frames 0..k one level higher
// (spec's "test if it still holds at i+1; if yes, move it"). Reports whether
// some frame i (i>0) was emptied entirely, meaning a fixed point -- and
// therefore an inductive invariant -- was reached.
func (e *Engine) pushClauses(k int) bool {
	invariantFound := false
	for i := 0; i <= k; i++ {
		cs := e.frames.ClausesAt(i)
		kept := make([]*Cube, 0, len(cs))
		for _, c := range cs {
			res, _ := e.frames.checkCube(i, c, 0, false, e.pars.NConfLimit)
			if res == satsolver.Unsat {
				e.promote(i+1, c)
				c.Deref()
			} else {
				kept = append(kept, c)
			}
		}
		e.frames.clauses[i] = kept
		if len(kept) == 0 && i > 0 {
			invariantFound = true
		}
	}
	return invariantFound
}

func (e *Engine) promote(to int, c *Cube) {
	e.frames.ensureFrame(to)
	existing := e.frames.clauses[to]
	for _, ex := range existing {
		if Contains(ex, c) {
			return
		}
	}
	filtered := existing[:0:0]
	for _, ex := range existing {
		if Contains(c, ex) {
			ex.Deref()
			continue
		}
		filtered = append(filtered, ex)
	}
	e.frames.clauses[to] = filtered
	e.frames.AddClause(to, c)
}

func (e *Engine) activeOutputs() []int {
	var out []int
	for _, p := range e.outputs {
		if e.verdict[p] == Undecided {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) timedOut() bool {
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		return true
	}
	if e.solved != nil && e.solved() {
		return true
	}
	return false
}

// Invariant returns the union of clauses stored at every frame from the one
// that was found empty (hence a fixed point) up to the last opened frame --
// spec §8's "invariant extraction" property. Callers only get a meaningful
// result once Solve has returned Proved.
func (e *Engine) Invariant() []*Cube {
	for i := 1; i < e.frames.NumFrames(); i++ {
		if len(e.frames.ClausesAt(i)) == 0 {
			var inv []*Cube
			for j := i; j < e.frames.NumFrames(); j++ {
				inv = append(inv, e.frames.ClausesAt(j)...)
			}
			return inv
		}
	}
	return nil
}
