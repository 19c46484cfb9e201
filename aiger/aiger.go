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

// Package aiger reads and writes the AIGER binary circuit format bit-exactly,
// plus the equivalence/mapping/packing extension sections and the CEX wire
// format spec §6 defines.
package aiger

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/gia"
)

// ReadFile memory-maps path and parses it as a binary AIGER file, returning a
// freshly populated gia.Manager with registers declared via SetRegNum.
func ReadFile(path string) (*gia.Manager, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "aiger: open %s", path)
	}
	defer f.Close()

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "aiger: mmap %s", path)
	}
	defer region.Unmap()

	m, err := parse(bytes.NewReader(region), path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

type header struct {
	maxVar, nInputs, nLatches, nOutputs, nAnds int
}

func parse(r *bytes.Reader, path string) (*gia.Manager, error) {
	br := bufio.NewReader(r)

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, errors.Wrapf(err, "aiger: read header of %s", path)
	}
	var h header
	var magic string
	if _, err := fmt.Sscanf(line, "%3s %d %d %d %d %d", &magic, &h.maxVar, &h.nInputs, &h.nLatches, &h.nOutputs, &h.nAnds); err != nil {
		return nil, errors.Wrapf(err, "aiger: malformed header %q in %s", line, path)
	}
	if magic != "aig" {
		return nil, errors.Errorf("aiger: %s is not a binary AIGER file (magic %q)", path, magic)
	}

	m := gia.NewManager(path, h.maxVar+h.nOutputs+8)

	// inputs: implicit, literals 2, 4, ... 2*nInputs; each becomes a fresh CI.
	inputCi := make([]gia.Lit, h.nInputs)
	for i := 0; i < h.nInputs; i++ {
		inputCi[i] = m.AppendCi()
	}

	// latches: one ASCII decimal next-state literal per line, in the
	// original (1-indexed AIGER variable) numbering; registers get their CI
	// appended now and their CO (next-state function) appended once every
	// AND gate has been read, since the next-state literal can reference
	// gates not yet seen in the CI/CO ordering AIGER uses.
	latchCi := make([]gia.Lit, h.nLatches)
	latchNext := make([]int, h.nLatches)
	for i := 0; i < h.nLatches; i++ {
		latchCi[i] = m.AppendCi()
		lit, err := readASCIILit(br)
		if err != nil {
			return nil, errors.Wrapf(err, "aiger: latch %d of %s", i, path)
		}
		latchNext[i] = lit
	}

	outputLits := make([]int, h.nOutputs)
	for i := 0; i < h.nOutputs; i++ {
		lit, err := readASCIILit(br)
		if err != nil {
			return nil, errors.Wrapf(err, "aiger: output %d of %s", i, path)
		}
		outputLits[i] = lit
	}

	// AND gates: lhs is assigned sequentially starting at nInputs+nLatches+1;
	// rhs0/rhs1 are stored as two binary-encoded deltas (lhs-rhs0, then
	// rhs0-rhs1).
	varToLit := make([]gia.Lit, h.maxVar+1)
	varToLit[0] = gia.LitFalse
	for i, ci := range inputCi {
		varToLit[i+1] = ci
	}
	for i, ci := range latchCi {
		varToLit[h.nInputs+i+1] = ci
	}

	nextVar := h.nInputs + h.nLatches + 1
	for i := 0; i < h.nAnds; i++ {
		lhs := nextVar
		nextVar++
		d0, err := decodeDelta(br)
		if err != nil {
			return nil, errors.Wrapf(err, "aiger: and-gate %d of %s", i, path)
		}
		d1, err := decodeDelta(br)
		if err != nil {
			return nil, errors.Wrapf(err, "aiger: and-gate %d of %s", i, path)
		}
		rhs0 := 2*lhs - int(d0)
		rhs1 := rhs0 - int(d1)
		l0 := litOf(varToLit, rhs0)
		l1 := litOf(varToLit, rhs1)
		varToLit[lhs] = m.HashAnd(l0, l1)
	}

	for _, lit := range outputLits {
		drv := litOf(varToLit, lit)
		m.AppendCo(drv)
	}
	for _, lit := range latchNext {
		drv := litOf(varToLit, lit)
		m.AppendCo(drv)
	}
	m.SetRegNum(h.nLatches)

	skipSymbolTable(br)
	if recs, err := readEquivalenceSection(br); err == nil {
		ApplyEquivalenceClasses(m, recs)
	}
	// The mapping section is decoded for round-trip fidelity but not applied
	// back onto m: m's AND gates are always their own canonical 2-input LUTs,
	// so a foreign file's (possibly wider) mapping records describe a
	// technology mapping this reader has no cell library to interpret.
	if _, err := readMappingSection(br); err != nil {
		return nil, errors.Wrap(err, "aiger: read mapping section")
	}

	return m, nil
}

// skipSymbolTable consumes the optional "i#/o#/l# name" lines and the "c"
// comment marker that precede the packing extension section, stopping at the
// first unrecognized byte or EOF so callers can try the binary section next.
func skipSymbolTable(br *bufio.Reader) {
	for {
		b, err := br.Peek(1)
		if err != nil || len(b) == 0 {
			return
		}
		switch b[0] {
		case 'i', 'o', 'l':
			if _, err := br.ReadString('\n'); err != nil {
				return
			}
		case 'c':
			br.ReadByte()
			br.ReadString('\n')
			return
		default:
			return
		}
	}
}

func litOf(varToLit []gia.Lit, aigerLit int) gia.Lit {
	v := aigerLit >> 1
	c := aigerLit&1 != 0
	return gia.ComplIf(varToLit[v], c)
}

func readASCIILit(br *bufio.Reader) (int, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return 0, err
	}
	var v int
	if _, err := fmt.Sscanf(line, "%d", &v); err != nil {
		return 0, err
	}
	return v, nil
}

// decodeDelta reads AIGER's 7-bit continuation varint encoding.
func decodeDelta(br *bufio.Reader) (uint64, error) {
	var x uint64
	var i uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		x |= uint64(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			break
		}
		i++
	}
	return x, nil
}

func encodeDelta(w io.Writer, x uint64) error {
	for x&^uint64(0x7f) != 0 {
		if _, err := w.Write([]byte{byte(x&0x7f) | 0x80}); err != nil {
			return err
		}
		x >>= 7
	}
	_, err := w.Write([]byte{byte(x)})
	return err
}
