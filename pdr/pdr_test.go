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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

func newRef() satsolver.Solver { return satsolver.NewRefSolver() }

// Scenario 1: one PI, PO driven by constant 0 -- always unreachable.
func TestTautologicalUnsatProved(t *testing.T) {
	m := gia.NewManager("t1", 8)
	m.AppendCi()
	m.AppendCo(gia.LitFalse)

	e := NewEngine(m, DefaultPars(), newRef)
	verdicts := e.Solve()
	require.Equal(t, Proved, verdicts[0])
	require.Empty(t, e.Invariant())
}

// Scenario 2: PO driven by constant 1 -- disproved at frame 0, CEX length 1.
func TestImmediateSatDisproved(t *testing.T) {
	m := gia.NewManager("t2", 8)
	m.AppendCi()
	m.AppendCo(gia.LitTrue)

	e := NewEngine(m, DefaultPars(), newRef)
	verdicts := e.Solve()
	require.Equal(t, Disproved, verdicts[0])
	cex := e.Cex(0)
	require.NotNil(t, cex)
	require.Equal(t, 0, cex.IFrame)
	require.Equal(t, 0, cex.NRegs)
	require.Equal(t, 0, cex.IPo)
}

// Scenario 3: one flop init 0, next = !q, PO = q -- disproved at frame 1.
func TestOneLatchToggleDisproved(t *testing.T) {
	m := gia.NewManager("t3", 8)
	q := m.AppendCi()
	m.AppendCo(q)            // PO = q
	m.AppendCo(gia.Compl(q)) // next = !q
	m.SetRegNum(1)

	e := NewEngine(m, DefaultPars(), newRef)
	verdicts := e.Solve()
	require.Equal(t, Disproved, verdicts[0])
	cex := e.Cex(0)
	require.NotNil(t, cex)
	require.Equal(t, 1, cex.NRegs)
	require.Equal(t, 0, cex.NPis)
}

// Scenario 4: two flops p,q init 0, both self-held, PO = p & q -- unreachable.
func TestUnreachableBadStateProved(t *testing.T) {
	m := gia.NewManager("t4", 8)
	p := m.AppendCi()
	q := m.AppendCi()
	m.AppendCo(m.HashAnd(p, q))
	m.AppendCo(p) // next_p = p
	m.AppendCo(q) // next_q = q
	m.SetRegNum(2)

	e := NewEngine(m, DefaultPars(), newRef)
	verdicts := e.Solve()
	require.Equal(t, Proved, verdicts[0])
	require.NotEmpty(t, e.Invariant())

	coverage, err := e.CheckClauses()
	require.NoError(t, err)
	require.NotEmpty(t, coverage)
}

// Scenario 5: two flops p,q init 0 implementing a mod-4 up-counter (q is the
// low bit, toggling every step; p flips whenever q was 1), PO = count==3 --
// disproved at frame 3, with the CEX's initial-state bits both 0.
func TestCounterMod4Disproved(t *testing.T) {
	m := gia.NewManager("t5", 16)
	p := m.AppendCi()
	q := m.AppendCi()
	pAndNotQ := m.HashAnd(p, gia.Compl(q))
	notPAndQ := m.HashAnd(gia.Compl(p), q)
	nextP := gia.Compl(m.HashAnd(gia.Compl(pAndNotQ), gia.Compl(notPAndQ))) // p XOR q
	m.AppendCo(m.HashAnd(p, q))
	m.AppendCo(nextP)
	m.AppendCo(gia.Compl(q)) // next_q = !q
	m.SetRegNum(2)

	e := NewEngine(m, DefaultPars(), newRef)
	verdicts := e.Solve()
	require.Equal(t, Disproved, verdicts[0])
	cex := e.Cex(0)
	require.NotNil(t, cex)
	require.Equal(t, 2, cex.NRegs)
	require.Equal(t, 0, cex.NPis)
	require.Equal(t, 3, cex.IFrame)
	require.False(t, cex.Bits[0])
	require.False(t, cex.Bits[1])
}

// Scenario 6: a run stopped early, checkpointed, and resumed must agree with
// a fresh run on the same property.
func TestIncrementalCheckpointAgreesWithFreshRun(t *testing.T) {
	m := gia.NewManager("t6", 8)
	p := m.AppendCi()
	q := m.AppendCi()
	m.AppendCo(p)
	m.AppendCo(q)
	m.AppendCo(m.HashAnd(p, q))
	m.SetRegNum(2)

	fresh := NewEngine(m, DefaultPars(), newRef)
	freshVerdicts := fresh.Solve()

	first := NewEngine(m, DefaultPars(), newRef)
	first.Solve()
	path := t.TempDir() + "/ckpt.gob"
	require.NoError(t, first.SaveCheckpoint(path))

	second := NewEngine(m, DefaultPars(), newRef)
	require.NoError(t, second.LoadCheckpoint(path, true))
	resumed := second.Resume()

	require.Equal(t, freshVerdicts[0], resumed[0])
}
