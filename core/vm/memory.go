// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package vm

import "github.com/ClementWalter/kakarot/params"

// Memory is a byte-addressable buffer whose expansion gas is priced in
// whole 32-byte words. Resize grows the backing slice to exactly the
// requested byte length, not to a word boundary; lastGasCost remembers the
// fee already computed so ExpansionCost only ever charges the delta.
type Memory struct {
	store       []byte
	lastGasCost uint64
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Len returns the number of bytes currently backing the buffer.
func (m *Memory) Len() int { return len(m.store) }

// Words returns the number of active 32-byte words, for gas accounting.
func (m *Memory) Words() uint64 { return toWordSize(uint64(len(m.store))) }

// Resize grows the buffer to size bytes if it is currently smaller. It
// never shrinks and never charges gas; callers must charge ExpansionCost
// themselves before calling Resize.
func (m *Memory) Resize(size uint64) {
	if uint64(len(m.store)) >= size {
		return
	}
	grown := make([]byte, size)
	copy(grown, m.store)
	m.store = grown
}

// Store writes src into the buffer at offset, growing the buffer first if
// necessary. It does not itself charge gas (spec.md's store_n).
func (m *Memory) Store(offset uint64, src []byte) {
	if len(src) == 0 {
		return
	}
	m.Resize(offset + uint64(len(src)))
	copy(m.store[offset:], src)
}

// Load returns a freshly allocated size-byte slice read from offset,
// zero-filling any portion beyond the buffer's current length. It does not
// itself charge gas (spec.md's load_n).
func (m *Memory) Load(offset, size uint64) []byte {
	out := make([]byte, size)
	if offset >= uint64(len(m.store)) {
		return out
	}
	copy(out, m.store[offset:])
	return out
}

// Data returns the live backing buffer. Callers must not retain the slice
// past the next mutating call.
func (m *Memory) Data() []byte { return m.store }

// ExpansionCost returns the gas required to grow the buffer so that byte
// newEndByte becomes addressable, given the buffer's current word count.
// It returns 0 when newEndByte already fits, and the standard
// 3*w + w^2/512 quadratic delta (charged only for the newly reached words)
// otherwise.
func (m *Memory) ExpansionCost(newEndByte uint64) (uint64, error) {
	if newEndByte == 0 {
		return 0, nil
	}
	if newEndByte > 0x1FFFFFFFE0 {
		return 0, ErrGasUintOverflow
	}
	newWords := toWordSize(newEndByte)
	newSize := newWords * 32
	if newSize <= uint64(len(m.store)) {
		return 0, nil
	}
	square := newWords * newWords
	linear := newWords * params.MemoryGas
	total := linear + square/params.QuadCoeffDiv
	fee := total - m.lastGasCost
	m.lastGasCost = total
	return fee, nil
}

const maxUint64 = 1<<64 - 1

// toWordSize rounds size up to the next multiple of 32, expressed in words.
func toWordSize(size uint64) uint64 {
	if size > maxUint64-31 {
		return maxUint64/32 + 1
	}
	return (size + 31) / 32
}
