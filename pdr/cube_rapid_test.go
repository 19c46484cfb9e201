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

	"pgregory.net/rapid"

	"github.com/erigontech/gia-pdr/gia"
)

func litsGen(maxFlop int) *rapid.Generator[[]gia.Lit] {
	return rapid.SliceOfDistinct(
		rapid.IntRange(0, maxFlop),
		func(v int) int { return v },
	).Map(func(flops []int) []gia.Lit {
		lits := make([]gia.Lit, len(flops))
		for i, f := range flops {
			lits[i] = gia.MkLit(int32(f), f%2 == 0)
		}
		return lits
	})
}

// A cube built from a strict superset of another's literals must always
// report Contains for that subset (spec's contains(old, new) quick-reject
// plus scan must never disagree with a literal-set superset check).
func TestCubeContainsAgreesWithSubsetRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		all := litsGen(20).Draw(rt, "all")
		n := rapid.IntRange(0, len(all)).Draw(rt, "n")
		subset := append([]gia.Lit(nil), all[:n]...)

		big := NewCube(all, nil)
		small := NewCube(subset, nil)

		if !Contains(big, small) {
			rt.Fatalf("superset cube does not Contains its own subset: all=%v subset=%v", all, subset)
		}
	})
}
