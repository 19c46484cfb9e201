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

package cnf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/satsolver"
)

func buildAndGate(t *testing.T) (*gia.Manager, gia.Lit) {
	t.Helper()
	m := gia.NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b)
	m.AppendCo(and1)
	return m, and1
}

func TestMonolithicTseitinSatisfiable(t *testing.T) {
	m, and1 := buildAndGate(t)
	f := NewMonolithic(m)
	s := satsolver.NewRefSolver()

	va := f.SatVar(s, 0, gia.Var(and1))
	require.NotZero(t, va)

	// asserting both inputs true must force the AND's output true too
	vA := f.SatVar(s, 0, m.Fanin0(gia.Var(and1)))
	vB := f.SatVar(s, 0, m.Fanin1(gia.Var(and1)))
	res := s.Solve([]satsolver.Lit{satsolver.Lit(vA), satsolver.Lit(vB)}, 0, 0)
	require.Equal(t, satsolver.Sat, res)
	require.Equal(t, 1, s.ModelValue(va))
}

func TestOnDemandReusesVariableWithinFrame(t *testing.T) {
	m, and1 := buildAndGate(t)
	f := NewOnDemand(m)
	s := satsolver.NewRefSolver()

	v := f.SatVar(s, 0, gia.Var(and1))
	require.NotZero(t, v)
	// calling again at the same frame must not allocate a new variable
	v2 := f.SatVar(s, 0, gia.Var(and1))
	require.Equal(t, v, v2)
}

func TestOnDemandPerFrameIndependence(t *testing.T) {
	m, and1 := buildAndGate(t)
	f := NewOnDemand(m)
	s := satsolver.NewRefSolver()

	v0 := f.SatVar(s, 0, gia.Var(and1))
	v1 := f.SatVar(s, 1, gia.Var(and1))
	require.NotEqual(t, v0, v1, "each frame must get its own copy of the variable")
}
