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
)

// dropCoreUnnecessary must remove every literal absent from necessary,
// leaving only the literals the unsat core marked as participating.
func TestDropCoreUnnecessaryDropsAbsentLiterals(t *testing.T) {
	p := gia.MkLit(1, false)
	q := gia.MkLit(2, true)
	r := gia.MkLit(3, true)
	cube := NewCube([]gia.Lit{p, q, r}, nil)

	necessary := map[int32]bool{1: true, 3: true} // flop 2 (q) not in the core
	got := dropCoreUnnecessary(cube, necessary)

	require.Len(t, got.State, 2)
	for _, l := range got.State {
		require.True(t, necessary[gia.Var(l)])
	}
}

// A literal that would leave the cube entirely initial-state literals if
// dropped must survive even when the core doesn't mark it necessary,
// matching the greedy loop's own IsInit guard.
func TestDropCoreUnnecessaryKeepsLiteralThatWouldMakeCubeAllInitial(t *testing.T) {
	p := gia.MkLit(1, false) // the only non-complemented literal; must survive
	q := gia.MkLit(2, true)
	r := gia.MkLit(3, true)
	cube := NewCube([]gia.Lit{p, q, r}, nil)

	necessary := map[int32]bool{} // the core didn't mark any of them necessary
	got := dropCoreUnnecessary(cube, necessary)

	require.Len(t, got.State, 1)
	require.Equal(t, p, got.State[0])
}

// necessary==nil (no solver live yet) must not panic; a one-literal cube comes
// back unchanged.
func TestDropCoreUnnecessaryNilMapKeepsSingleLiteralCube(t *testing.T) {
	p := gia.MkLit(1, false)
	cube := NewCube([]gia.Lit{p}, nil)

	got := dropCoreUnnecessary(cube, nil)
	require.Equal(t, cube, got)
}
