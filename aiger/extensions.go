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

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/erigontech/gia-pdr/gia"
)

// EquivRecord is one object's equivalence-class membership, as stored in the
// "packing" extension section: ID is the object index, IRepr its class
// representative (0 for the constant class), Proved marks whether the merge
// has been combinationally checked or is still a candidate from simulation.
type EquivRecord struct {
	ID     int32
	IRepr  int32
	Proved bool
}

// EncodeEquivalenceClasses scans m's objects in ascending id order and
// collects every non-void equivalence record.
func EncodeEquivalenceClasses(m *gia.Manager) []EquivRecord {
	var out []EquivRecord
	for id := int32(1); id < int32(m.NumObjs()); id++ {
		r := m.ReprOf(id)
		if r.IRepr == gia.ReprVoid {
			continue
		}
		out = append(out, EquivRecord{ID: id, IRepr: r.IRepr, Proved: r.Proved})
	}
	return out
}

// ApplyEquivalenceClasses replays decoded records back into m via SetEquiv.
func ApplyEquivalenceClasses(m *gia.Manager, recs []EquivRecord) {
	for _, r := range recs {
		m.SetEquiv(r.ID, r.IRepr, r.Proved)
	}
}

// packEquivalenceRecords serializes recs as a sequence of delta-encoded
// varints: a record count, then for each record the (id-delta, marker) pair
// where marker = 2*(iRepr-prevRepr)+Proved, zigzag-encoded so a negative
// repr delta fits an unsigned varint. Every record is one object; there is no
// separate class-start record, and members are not grouped by class.
func packEquivalenceRecords(recs []EquivRecord) []byte {
	var buf bytes.Buffer
	encodeDelta(&buf, uint64(len(recs)))
	prevID, prevRepr := int32(0), int32(0)
	for _, r := range recs {
		encodeDelta(&buf, uint64(r.ID-prevID))
		marker := 2*(int64(r.IRepr)-int64(prevRepr)) + boolBit(r.Proved)
		encodeDelta(&buf, zigzag(marker))
		prevID, prevRepr = r.ID, r.IRepr
	}
	return buf.Bytes()
}

func unpackEquivalenceRecords(data []byte) ([]EquivRecord, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	count, err := decodeDelta(br)
	if err != nil {
		return nil, err
	}
	recs := make([]EquivRecord, 0, count)
	prevID, prevRepr := int32(0), int32(0)
	for i := uint64(0); i < count; i++ {
		idDelta, err := decodeDelta(br)
		if err != nil {
			return nil, err
		}
		rawMarker, err := decodeDelta(br)
		if err != nil {
			return nil, err
		}
		marker := unzigzag(rawMarker)
		id := prevID + int32(idDelta)
		repr := prevRepr + int32(marker>>1)
		recs = append(recs, EquivRecord{ID: id, IRepr: repr, Proved: marker&1 != 0})
		prevID, prevRepr = id, repr
	}
	return recs, nil
}

// MappingRecord is one LUT record of the mapping extension section: Self is
// the mapped object's id and Fanins its ordered input ids (spec §6 "mapping
// section"). Every AND gate in m is trivially its own 2-input LUT, so
// EncodeMappingRecords has no separate technology-mapping pass to run -- the
// mapping section it emits is the AIG's own fanin structure, readable by any
// reader that decodes the format regardless of what produced it.
type MappingRecord struct {
	Self   int32
	Fanins []int32
}

// EncodeMappingRecords walks m's objects in ascending id order and emits one
// record per AND gate, fanin0 before fanin1.
func EncodeMappingRecords(m *gia.Manager) []MappingRecord {
	var out []MappingRecord
	for id := int32(1); id < int32(m.NumObjs()); id++ {
		if !m.Obj(id).IsAnd() {
			continue
		}
		out = append(out, MappingRecord{
			Self:   id,
			Fanins: []int32{m.Fanin0(id), m.Fanin1(id)},
		})
	}
	return out
}

// packMappingRecords serializes recs as spec §6 describes: a single stream of
// values (record count, then per record nFanins, fanin0, ..., faninK, self),
// each stored as a zigzag-encoded difference from the immediately preceding
// value in the stream.
func packMappingRecords(recs []MappingRecord) []byte {
	var buf bytes.Buffer
	prev := int64(0)
	emit := func(v int32) {
		encodeDelta(&buf, zigzag(int64(v)-prev))
		prev = int64(v)
	}
	encodeDelta(&buf, zigzag(int64(len(recs))-prev))
	prev = int64(len(recs))
	for _, r := range recs {
		emit(int32(len(r.Fanins)))
		for _, f := range r.Fanins {
			emit(f)
		}
		emit(r.Self)
	}
	return buf.Bytes()
}

func unpackMappingRecords(data []byte) ([]MappingRecord, error) {
	br := bufio.NewReader(bytes.NewReader(data))
	prev := int64(0)
	next := func() (int32, error) {
		raw, err := decodeDelta(br)
		if err != nil {
			return 0, err
		}
		prev += unzigzag(raw)
		return int32(prev), nil
	}
	count, err := next()
	if err != nil {
		return nil, err
	}
	recs := make([]MappingRecord, 0, count)
	for i := int32(0); i < count; i++ {
		nFanins, err := next()
		if err != nil {
			return nil, err
		}
		fanins := make([]int32, nFanins)
		for j := range fanins {
			fanins[j], err = next()
			if err != nil {
				return nil, err
			}
		}
		self, err := next()
		if err != nil {
			return nil, err
		}
		recs = append(recs, MappingRecord{Self: self, Fanins: fanins})
	}
	return recs, nil
}

// writeMappingSection appends the mapping extension section in the same
// length-prefixed, optionally zstd-compressed framing as
// writeEquivalenceSection.
func writeMappingSection(w io.Writer, m *gia.Manager, compact bool) error {
	payload := packMappingRecords(EncodeMappingRecords(m))

	flag := byte(0)
	if compact {
		flag = 1
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.Wrap(err, "aiger: new zstd writer")
		}
		payload = enc.EncodeAll(payload, nil)
		enc.Close()
	}

	if _, err := w.Write([]byte{flag}); err != nil {
		return errors.Wrap(err, "aiger: write mapping flag")
	}
	lenBuf := bufio.NewWriter(w)
	if err := encodeDelta(lenBuf, uint64(len(payload))); err != nil {
		return errors.Wrap(err, "aiger: write mapping length")
	}
	if err := lenBuf.Flush(); err != nil {
		return errors.Wrap(err, "aiger: flush mapping length")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "aiger: write mapping payload")
	}
	return nil
}

// readMappingSection is the inverse of writeMappingSection; like the
// equivalence section it tolerates io.EOF since older files omit it.
func readMappingSection(br *bufio.Reader) ([]MappingRecord, error) {
	flag, err := br.ReadByte()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "aiger: read mapping flag")
	}
	n, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: read mapping length")
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, errors.Wrap(err, "aiger: read mapping payload")
	}
	if flag == 1 {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "aiger: new zstd reader")
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, errors.Wrap(err, "aiger: zstd-decompress mapping section")
		}
	}
	return unpackMappingRecords(payload)
}

func boolBit(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func zigzag(x int64) uint64  { return uint64((x << 1) ^ (x >> 63)) }
func unzigzag(x uint64) int64 { return int64(x>>1) ^ -int64(x&1) }

// writeEquivalenceSection appends the equivalence/packing extension: a
// length-prefixed blob, zstd-compressed when compact is set (this is the
// "packing section" spec §6 describes -- equivalence-class data doubles as
// the packed payload here rather than a separate unrelated blob, since it is
// the only bulk side-table the PDR/equivalence-checking flow produces).
func writeEquivalenceSection(w io.Writer, m *gia.Manager, compact bool) error {
	payload := packEquivalenceRecords(EncodeEquivalenceClasses(m))

	flag := byte(0)
	if compact {
		flag = 1
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return errors.Wrap(err, "aiger: new zstd writer")
		}
		payload = enc.EncodeAll(payload, nil)
		enc.Close()
	}

	if _, err := w.Write([]byte{flag}); err != nil {
		return errors.Wrap(err, "aiger: write packing flag")
	}
	lenBuf := bufio.NewWriter(w)
	if err := encodeDelta(lenBuf, uint64(len(payload))); err != nil {
		return errors.Wrap(err, "aiger: write packing length")
	}
	if err := lenBuf.Flush(); err != nil {
		return errors.Wrap(err, "aiger: flush packing length")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "aiger: write packing payload")
	}
	return nil
}

// readEquivalenceSection is the inverse of writeEquivalenceSection; it
// tolerates and ignores io.EOF since the section is optional (older files or
// files produced with packing disabled omit it entirely).
func readEquivalenceSection(br *bufio.Reader) ([]EquivRecord, error) {
	flag, err := br.ReadByte()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "aiger: read packing flag")
	}
	n, err := decodeDelta(br)
	if err != nil {
		return nil, errors.Wrap(err, "aiger: read packing length")
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, errors.Wrap(err, "aiger: read packing payload")
	}
	if flag == 1 {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, errors.Wrap(err, "aiger: new zstd reader")
		}
		payload, err = dec.DecodeAll(payload, nil)
		dec.Close()
		if err != nil {
			return nil, errors.Wrap(err, "aiger: zstd-decompress packing section")
		}
	}
	return unpackEquivalenceRecords(payload)
}
