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

// Package chkpt persists an incremental PDR run's frame/clause database to
// disk between invocations, guarded by an on-disk flock so two processes
// never read a partially-written snapshot.
package chkpt

import (
	"encoding/gob"
	"os"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
)

// CubeSnapshot is one stored clause's negation: sorted state literals as
// (flopIdx, polarity) pairs. The PI witness tail is not persisted -- it only
// ever matters for CEX reconstruction within a single run.
type CubeSnapshot struct {
	Flops []int32
	Signs []bool
}

// FrameSnapshot holds every clause recorded at one frame level.
type FrameSnapshot struct {
	Level  int
	Clauses []CubeSnapshot
}

// Snapshot is the full reloadable state of an incremental PDR run.
type Snapshot struct {
	NumRegs int
	NumPis  int
	Frames  []FrameSnapshot
}

// Save writes snap to path, holding an exclusive flock on path+".lock" for
// the duration of the write so a concurrent Load never observes a torn file.
func Save(path string, snap Snapshot) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrapf(err, "chkpt: lock %s", path)
	}
	defer lock.Unlock()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "chkpt: create %s", tmp)
	}
	if err := gob.NewEncoder(f).Encode(snap); err != nil {
		f.Close()
		return errors.Wrapf(err, "chkpt: encode %s", tmp)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "chkpt: close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "chkpt: rename %s -> %s", tmp, path)
	}
	return nil
}

// Load reads a snapshot previously written by Save, holding a shared flock
// for the duration of the read.
func Load(path string) (Snapshot, error) {
	var snap Snapshot
	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return snap, errors.Wrapf(err, "chkpt: rlock %s", path)
	}
	defer lock.Unlock()

	f, err := os.Open(path)
	if err != nil {
		return snap, errors.Wrapf(err, "chkpt: open %s", path)
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return snap, errors.Wrapf(err, "chkpt: decode %s", path)
	}
	return snap, nil
}
