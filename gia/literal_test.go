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
	"pgregory.net/rapid"
)

func TestLiteralDuality(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Int32Range(0, 1<<20).Draw(t, "v")
		c := rapid.Bool().Draw(t, "c")

		lit := MkLit(v, c)
		require.Equal(t, v, Var(lit))
		require.Equal(t, Compl(Compl(lit)), lit)
		require.Equal(t, lit, Compl(Compl(lit)))

		pos := MkLit(v, false)
		require.EqualValues(t, 0, Sign(pos))
	})
}

func TestLiteralComplementIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lit := Lit(rapid.Int32Range(0, 1<<21).Draw(t, "lit"))
		require.Equal(t, lit, Compl(Compl(lit)))
		require.NotEqual(t, lit, Compl(lit))
		require.Equal(t, Regular(lit), Regular(Compl(lit)))
	})
}
