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

func TestObjectTopology(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b)
	require.Less(t, m.Fanin0(Var(and1)), Var(and1))
	require.Less(t, m.Fanin1(Var(and1)), Var(and1))
}

func TestHashAndConsing(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()

	l1 := m.HashAnd(a, b)
	l2 := m.HashAnd(a, b)
	require.Equal(t, l1, l2, "same operands must hash-cons to the same object")

	l3 := m.HashAnd(b, a)
	require.Equal(t, l1, l3, "HashAnd must be commutative")
}

func TestHashAndBooleanSimplifications(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	require.Equal(t, LitFalse, m.HashAnd(LitFalse, a))
	require.Equal(t, a, m.HashAnd(LitTrue, a))
	require.Equal(t, a, m.HashAnd(a, a))
	require.Equal(t, LitFalse, m.HashAnd(a, Compl(a)))
}

func TestAppendAndRejectsEqualFanins(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	require.Panics(t, func() { m.AppendAnd(a, a) })
}

func TestCiCoRoundTrip(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b)
	m.AppendCo(and1)
	require.Equal(t, 2, m.NumCis())
	require.Equal(t, 1, m.NumCos())
	require.True(t, m.Obj(m.Co(0)).IsCo())
	require.Equal(t, and1, m.CoDriver(m.Co(0)))
}

func buildCounter(t *testing.T) *Manager {
	t.Helper()
	// two-bit up-counter: next_p = p XOR q, next_q = !q ; PO = p & q (count==3)
	m := NewManager("counter", 16)
	p := m.AppendCi()
	q := m.AppendCi()
	nextP := m.HashXor(p, q)
	nextQ := Compl(q)
	m.AppendCo(m.HashAnd(p, q))
	m.AppendCo(nextP)
	m.AppendCo(nextQ)
	m.nRegs = 2
	return m
}

func TestDupPreservesCiCoCounts(t *testing.T) {
	m := buildCounter(t)
	d1 := m.Dup(DupOpts{})
	d2 := d1.Dup(DupOpts{})
	require.Equal(t, m.NumCis(), d1.NumCis())
	require.Equal(t, m.NumCos(), d1.NumCos())
	require.Equal(t, d1.NumCis(), d2.NumCis())
	require.Equal(t, d1.NumCos(), d2.NumCos())
	require.Equal(t, d1.NumAnds(), d2.NumAnds(), "dup(dup(G)) must match dup(G) up to relabelling")
}

func TestSuppSizeAndConeSize(t *testing.T) {
	m := NewManager("t", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	c := m.AppendCi()
	and1 := m.HashAnd(a, b)
	and2 := m.HashAnd(and1, c)
	require.Equal(t, 3, m.SuppSize([]int32{Var(and2)}))
	require.Equal(t, 2, m.ConeSize([]int32{Var(and2)}))
}
