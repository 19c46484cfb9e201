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
	"fmt"
	"io"

	"github.com/erigontech/gia-pdr/gia"
)

// DumpInvariantPLA writes the inductive invariant (spec §6's "inductive-
// invariant dump") as a PLA file in the kept-flops coordinate system: one
// cube per stored clause's negation, flop names taken from m's register
// outputs in index order.
func (e *Engine) DumpInvariantPLA(w io.Writer, m *gia.Manager) error {
	inv := e.Invariant()
	n := m.NumRegs()

	if _, err := fmt.Fprintf(w, ".i %d\n.o 1\n.p %d\n", n, len(inv)); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, ".ilb"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, " f%d", i); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\n.ob inv\n"); err != nil {
		return err
	}

	for _, c := range inv {
		row := make([]byte, n)
		for i := range row {
			row[i] = '-'
		}
		for _, l := range c.State {
			v := gia.Var(l)
			if gia.IsCompl(l) {
				row[v] = '0'
			} else {
				row[v] = '1'
			}
		}
		if _, err := fmt.Fprintf(w, "%s 1\n", row); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ".e\n")
	return err
}
