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
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/gia"
)

// WriteFile serializes m as a binary AIGER file to path. When writeSymbols is
// set, a positional symbol table ("i0 pi0", "o0 po0", ...) is emitted after
// the AND table. When compact is set, the trailing equivalence and mapping
// extension sections are zstd-compressed.
func WriteFile(m *gia.Manager, path string, writeSymbols, compact bool) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "aiger: create %s", path)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)

	nPis := m.NumPis()
	nRegs := m.NumRegs()
	nPos := m.NumPos()
	nAnds := m.NumAnds()
	maxVar := nPis + nRegs + nAnds

	if _, err := fmt.Fprintf(bw, "aig %d %d %d %d %d\n", maxVar, nPis, nRegs, nPos, nAnds); err != nil {
		return errors.Wrapf(err, "aiger: write header of %s", path)
	}

	// id -> sequential 1-indexed AIGER variable, assigned PI-then-latch-then-and.
	varOf := make(map[int32]int, m.NumObjs())
	next := 1
	for i := 0; i < nPis; i++ {
		varOf[gia.Var(m.Ci(i))] = next
		next++
	}
	for i := 0; i < nRegs; i++ {
		varOf[gia.Var(m.Ro(i))] = next
		next++
	}

	latchLits := make([]int, nRegs)
	for i := 0; i < nRegs; i++ {
		latchLits[i] = aigerLit(varOf, m.CoDriver(m.Ri(i)))
	}

	// AND gates appear in topological order in pObjs by construction (every
	// fanin's id is strictly smaller than its user's), so a single forward
	// scan over every object already yields a valid write order.
	var andIDs []int32
	for id := int32(1); id < int32(m.NumObjs()); id++ {
		if m.Obj(id).IsAnd() {
			andIDs = append(andIDs, id)
			varOf[id] = next
			next++
		}
	}

	for _, l := range latchLits {
		if _, err := fmt.Fprintf(bw, "%d\n", l); err != nil {
			return errors.Wrapf(err, "aiger: write latch of %s", path)
		}
	}

	outputLits := make([]int, nPos)
	for i := 0; i < nPos; i++ {
		outputLits[i] = aigerLit(varOf, m.CoDriver(m.Co(i)))
	}
	for _, l := range outputLits {
		if _, err := fmt.Fprintf(bw, "%d\n", l); err != nil {
			return errors.Wrapf(err, "aiger: write output of %s", path)
		}
	}

	for _, id := range andIDs {
		lhs := varOf[id]
		rhs0 := aigerLit(varOf, m.Child0(id))
		rhs1 := aigerLit(varOf, m.Child1(id))
		if rhs0 < rhs1 {
			rhs0, rhs1 = rhs1, rhs0
		}
		d0 := uint64(2*lhs - rhs0)
		d1 := uint64(rhs0 - rhs1)
		if err := encodeDelta(bw, d0); err != nil {
			return errors.Wrapf(err, "aiger: write and-gate of %s", path)
		}
		if err := encodeDelta(bw, d1); err != nil {
			return errors.Wrapf(err, "aiger: write and-gate of %s", path)
		}
	}

	if writeSymbols {
		if err := writeSymbolTable(bw, nPis, nPos); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprint(bw, "c\n"); err != nil {
		return errors.Wrapf(err, "aiger: write comment marker of %s", path)
	}
	if err := writeEquivalenceSection(bw, m, compact); err != nil {
		return err
	}
	if err := writeMappingSection(bw, m, compact); err != nil {
		return err
	}

	return bw.Flush()
}

func aigerLit(varOf map[int32]int, lit gia.Lit) int {
	v := varOf[gia.Var(lit)]
	if gia.IsCompl(lit) {
		return 2*v + 1
	}
	return 2 * v
}

func writeSymbolTable(bw *bufio.Writer, nPis, nPos int) error {
	for i := 0; i < nPis; i++ {
		if _, err := fmt.Fprintf(bw, "i%d pi%d\n", i, i); err != nil {
			return errors.Wrap(err, "aiger: write symbol table")
		}
	}
	for i := 0; i < nPos; i++ {
		if _, err := fmt.Fprintf(bw, "o%d po%d\n", i, i); err != nil {
			return errors.Wrap(err, "aiger: write symbol table")
		}
	}
	return nil
}
