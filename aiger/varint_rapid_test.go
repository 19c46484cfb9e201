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
	"bufio"
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// Every uint64 AIGER's delta-encoding can represent must survive an
// encode/decode round trip bit-exactly.
func TestDeltaVarintRoundTripsRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Uint64().Draw(rt, "x")

		var buf bytes.Buffer
		if err := encodeDelta(&buf, x); err != nil {
			rt.Fatalf("encode: %v", err)
		}
		got, err := decodeDelta(bufio.NewReader(&buf))
		if err != nil {
			rt.Fatalf("decode: %v", err)
		}
		if got != x {
			rt.Fatalf("round trip mismatch: got %d, want %d", got, x)
		}
	})
}

func TestZigzagRoundTripsRapid(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Int64().Draw(rt, "x")
		if got := unzigzag(zigzag(x)); got != x {
			rt.Fatalf("zigzag round trip mismatch: got %d, want %d", got, x)
		}
	})
}
