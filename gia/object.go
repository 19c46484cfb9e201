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

import "github.com/erigontech/gia-pdr/internal/common"

const none = int32(common.None)

const (
	flagCompl0 uint8 = 1 << iota
	flagCompl1
	flagTerm
	flagMark0
	flagMark1
	flagPhase
)

// Obj is one packed AIG node: a constant, a CI/CO terminal, or a 2-input AND.
// iDiff0/iDiff1 are positive distances from this object's own index to each
// fanin (none marks "no fanin"); Value is general-purpose scratch, reused as
// the current travId stamp during a DFS walk.
type Obj struct {
	iDiff0 int32
	iDiff1 int32
	flags  uint8
	Value  uint32
}

func (o *Obj) hasFlag(f uint8) bool { return o.flags&f != 0 }
func (o *Obj) setFlag(f uint8, v bool) {
	if v {
		o.flags |= f
	} else {
		o.flags &^= f
	}
}

func (o *Obj) Compl0() bool  { return o.hasFlag(flagCompl0) }
func (o *Obj) Compl1() bool  { return o.hasFlag(flagCompl1) }
func (o *Obj) IsTerm() bool  { return o.hasFlag(flagTerm) }
func (o *Obj) Mark0() bool   { return o.hasFlag(flagMark0) }
func (o *Obj) Mark1() bool   { return o.hasFlag(flagMark1) }
func (o *Obj) Phase() bool   { return o.hasFlag(flagPhase) }
func (o *Obj) SetMark0(v bool) { o.setFlag(flagMark0, v) }
func (o *Obj) SetMark1(v bool) { o.setFlag(flagMark1, v) }

// IsConst0 holds only for object 0: no fanins at all.
func (o *Obj) IsConst0() bool { return o.iDiff0 == none && o.iDiff1 == none }

// IsCi holds for a terminal with no driver: a PI or a register output.
func (o *Obj) IsCi() bool { return o.IsTerm() && o.iDiff0 == none }

// IsCo holds for a terminal with a driver: a PO or a register input.
func (o *Obj) IsCo() bool { return o.IsTerm() && o.iDiff0 != none }

// IsAnd holds for a non-terminal, non-constant node.
func (o *Obj) IsAnd() bool { return !o.IsTerm() && o.iDiff0 != none }

// cioID is only meaningful on terminals: the positional index within vCis/vCos.
func (o *Obj) cioID() int32 { return o.iDiff1 }

func (o *Obj) setCioID(v int32) { o.iDiff1 = v }
