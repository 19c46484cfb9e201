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

import "github.com/google/btree"

// Obligation is "state cube s must be blocked at frame iFrame". Next chains
// to the obligation that produced this one as its predecessor (spec's
// obligation chain, walked by deriveCex); by construction it only ever points
// from an earlier frame to a later one, so no cycle is possible.
type Obligation struct {
	Frame int
	Prio  int
	Cube  *Cube
	Next  *Obligation

	seq uint64 // insertion order, breaks ties so the tree has a total order
}

func obligationLess(a, b *Obligation) bool {
	if a.Frame != b.Frame {
		return a.Frame < b.Frame
	}
	if a.Prio != b.Prio {
		return a.Prio < b.Prio
	}
	return a.seq < b.seq
}

// ObligationQueue is the singly-linked priority list of spec §4.10, backed by
// a B-tree ordered on (frame ascending, priority ascending) instead of a hand
// rolled linked list.
type ObligationQueue struct {
	tree *btree.BTreeG[*Obligation]
	seq  uint64
}

func NewObligationQueue() *ObligationQueue {
	return &ObligationQueue{tree: btree.NewG(32, obligationLess)}
}

// Push inserts o, taking shared ownership of its cube (spec: "push shares
// ownership with the frame's storage").
func (q *ObligationQueue) Push(o *Obligation) {
	q.seq++
	o.seq = q.seq
	o.Cube.Ref()
	q.tree.ReplaceOrInsert(o)
}

// Pop removes and returns the lowest (frame, priority) obligation, dereffing
// the cube reference the queue held.
func (q *ObligationQueue) Pop() (*Obligation, bool) {
	o, ok := q.tree.DeleteMin()
	if !ok {
		return nil, false
	}
	o.Cube.Deref()
	return o, true
}

func (q *ObligationQueue) Len() int { return q.tree.Len() }

// Clear drops every pending obligation, used at each new frame boundary.
func (q *ObligationQueue) Clear() {
	q.tree.Ascend(func(o *Obligation) bool {
		o.Cube.Deref()
		return true
	})
	q.tree = btree.NewG(32, obligationLess)
}
