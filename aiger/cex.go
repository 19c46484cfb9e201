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
	"io"

	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/pdr"
)

// EncodeCex serializes a counterexample as {iPo, iFrame, nRegs, nPis,
// bits[...]}: five varints (the four fields, then the bit count) followed by
// the bit vector packed LSB-first, 8 bits per byte, zero-padded in the final
// byte.
func EncodeCex(c *pdr.Cex) []byte {
	var buf bytes.Buffer
	encodeDelta(&buf, uint64(c.IPo))
	encodeDelta(&buf, uint64(c.IFrame))
	encodeDelta(&buf, uint64(c.NRegs))
	encodeDelta(&buf, uint64(c.NPis))
	encodeDelta(&buf, uint64(len(c.Bits)))

	var cur byte
	var nbits uint
	for _, b := range c.Bits {
		if b {
			cur |= 1 << nbits
		}
		nbits++
		if nbits == 8 {
			buf.WriteByte(cur)
			cur, nbits = 0, 0
		}
	}
	if nbits > 0 {
		buf.WriteByte(cur)
	}
	return buf.Bytes()
}

// DecodeCex is the inverse of EncodeCex.
func DecodeCex(data []byte) (*pdr.Cex, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	iPo, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: decode cex iPo")
	}
	iFrame, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: decode cex iFrame")
	}
	nRegs, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: decode cex nRegs")
	}
	nPis, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: decode cex nPis")
	}
	nBits, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: decode cex bit count")
	}

	bits := make([]bool, 0, nBits)
	var cur byte
	var have uint64
	for have < nBits {
		if have%8 == 0 {
			cur, err = br.ReadByte()
			if err != nil && !errors.Is(err, io.EOF) {
				return nil, errors.Wrap(err, "aiger: decode cex bits")
			}
		}
		bits = append(bits, cur&(1<<(have%8)) != 0)
		have++
	}

	return &pdr.Cex{
		IPo:    int(iPo),
		IFrame: int(iFrame),
		NRegs:  int(nRegs),
		NPis:   int(nPis),
		Bits:   bits,
	}, nil
}
