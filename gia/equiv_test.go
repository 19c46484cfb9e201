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

package gia

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEquivClassesAndReduce(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b) // declared constant-0 below, so the reduced PO must be LitFalse
	m.AppendCo(and1)

	m2 := NewManager("t2", 8)
	_ = m2

	m.SetEquiv(Var(and1), 0, true) // assert the AND is actually constant-0
	m.DeriveNexts()
	require.True(t, m.ObjIsConst(Var(and1)))

	red := m.ReduceByEquiv()
	require.Equal(t, LitFalse, red.CoDriver(red.Co(0)))
}

func TestTernaryPropagateBasic(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b)
	m.AppendCo(and1)

	s := NewTernaryState(m.NumObjs())
	s.Set(0, Tri0)
	s.Set(Var(a), Tri1)
	s.Set(Var(b), TriX)
	m.Propagate(s)
	require.Equal(t, TriX, m.CoValue(s, m.Co(0)))

	s.Set(Var(b), Tri0)
	m.Propagate(s)
	require.Equal(t, Tri0, m.CoValue(s, m.Co(0)))
}
