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

package aiger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/gia-pdr/gia"
	"github.com/erigontech/gia-pdr/pdr"
)

func buildToggleLatch() *gia.Manager {
	m := gia.NewManager("toggle", 8)
	q := m.AppendCi()
	m.AppendCo(q)            // PO = q
	m.AppendCo(gia.Compl(q)) // next = !q
	m.SetRegNum(1)
	return m
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	m := buildToggleLatch()
	path := t.TempDir() + "/toggle.aig"

	require.NoError(t, WriteFile(m, path, true, false))

	m2, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, m.NumPis(), m2.NumPis())
	require.Equal(t, m.NumRegs(), m2.NumRegs())
	require.Equal(t, m.NumPos(), m2.NumPos())
	require.Equal(t, m.NumAnds(), m2.NumAnds())
}

func TestWriteCompactStillRoundTrips(t *testing.T) {
	m := buildToggleLatch()
	m.SetEquiv(m.Ro(0), m.Ro(0), true) // no-op merge, exercises NeedsEquiv path
	path := t.TempDir() + "/toggle_compact.aig"

	require.NoError(t, WriteFile(m, path, false, true))

	m2, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, m.NumRegs(), m2.NumRegs())
}

func TestEquivalenceRecordsRoundTripThroughPackedBytes(t *testing.T) {
	m := buildToggleLatch()
	m.SetEquiv(1, 2, true)

	recs := EncodeEquivalenceClasses(m)
	require.Len(t, recs, 1)

	packed := packEquivalenceRecords(recs)
	back, err := unpackEquivalenceRecords(packed)
	require.NoError(t, err)
	require.Equal(t, recs, back)
}

func buildTwoAndGates() *gia.Manager {
	m := gia.NewManager("two_ands", 8)
	a := m.AppendCi()
	b := m.AppendCi()
	and1 := m.HashAnd(a, b)
	and2 := m.HashAnd(gia.Compl(a), and1)
	m.AppendCo(and2)
	return m
}

func TestMappingRecordsRoundTripThroughPackedBytes(t *testing.T) {
	m := buildTwoAndGates()

	recs := EncodeMappingRecords(m)
	require.Len(t, recs, 2)
	for _, r := range recs {
		require.Len(t, r.Fanins, 2)
	}

	packed := packMappingRecords(recs)
	back, err := unpackMappingRecords(packed)
	require.NoError(t, err)
	require.Equal(t, recs, back)
}

func TestWriteThenReadRoundTripsWithMapping(t *testing.T) {
	m := buildTwoAndGates()
	path := t.TempDir() + "/two_ands.aig"

	require.NoError(t, WriteFile(m, path, false, true))

	m2, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, m.NumAnds(), m2.NumAnds())
}

func TestCexRoundTrips(t *testing.T) {
	c := &pdr.Cex{
		IPo:    0,
		IFrame: 2,
		NRegs:  1,
		NPis:   1,
		Bits:   []bool{false, true, false, true},
	}
	data := EncodeCex(c)
	back, err := DecodeCex(data)
	require.NoError(t, err)
	require.Equal(t, c, back)
}
