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

// Package common holds small bit/overflow helpers shared by the gia and pdr
// engines. It carries no engine-specific types so both packages can depend on
// it without creating an import cycle.
package common

import "math/bits"

// None is the sentinel distance value marking "no fanin" on an AIG object,
// and the sentinel frame/variable value marking "not yet assigned" elsewhere.
// 29 bits of fanin distance leaves room for fTerm/fCompl/fMark packing above it.
const None = 1<<29 - 1

// SafeMul returns x*y and whether the multiplication overflowed 64 bits.
func SafeMul(x, y uint64) (uint64, bool) {
	hi, lo := bits.Mul64(x, y)
	return lo, hi != 0
}

// SafeAdd returns x+y and whether the addition overflowed 64 bits.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carryOut := bits.Add64(x, y, 0)
	return sum, carryOut != 0
}

// CeilDiv returns ceil(x/y), or 0 if y is 0.
func CeilDiv(x, y int) int {
	if y == 0 {
		return 0
	}
	return (x + y - 1) / y
}

// GrowCap doubles cur until it is >= need, starting from at least min.
func GrowCap(cur, need, min int) int {
	if cur < min {
		cur = min
	}
	for cur < need {
		cur *= 2
	}
	return cur
}

// Fingerprint produces a cheap structural signature for a candidate (lit0,
// lit1) pair, used to pre-bucket structural-hash probes before the full
// linear-probe comparison. This is the one idea kept from the original's
// isomorphism fingerprinting (giaIso.c): a fast, approximate pre-filter, not
// a replacement for the exact equality check the hash table still performs.
func Fingerprint(lit0, lit1 int) uint64 {
	h := uint64(lit0)*2654435761 ^ uint64(lit1)*2246822519
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return h
}
