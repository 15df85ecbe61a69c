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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLoadRoundTrip(t *testing.T) {
	m := NewMemory()
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	m.Store(32, data)

	require.Equal(t, data, m.Load(32, 4))
	require.Equal(t, make([]byte, 32), m.Load(0, 32), "untouched region reads as zero")
}

func TestMemoryLoadBeyondLengthIsZeroFilled(t *testing.T) {
	m := NewMemory()
	out := m.Load(100, 8)
	require.Equal(t, make([]byte, 8), out)
}

func TestMemoryExpansionChargesOnlyDelta(t *testing.T) {
	m := NewMemory()

	first, err := m.ExpansionCost(32)
	require.NoError(t, err)
	require.Greater(t, first, uint64(0))

	second, err := m.ExpansionCost(32)
	require.NoError(t, err)
	require.Equal(t, uint64(0), second, "no further growth, no further charge")

	third, err := m.ExpansionCost(64)
	require.NoError(t, err)
	require.Greater(t, third, uint64(0))
}

func TestMemoryExpansionCostIsQuadratic(t *testing.T) {
	m := NewMemory()
	small, err := m.ExpansionCost(32)
	require.NoError(t, err)

	m2 := NewMemory()
	large, err := m2.ExpansionCost(32 * 1000)
	require.NoError(t, err)

	// 1000x the words costs more than 1000x the gas: the quadratic term adds
	// 1000^2/512 = 1953 on top of the linear 3*1000.
	require.Greater(t, large, small*1000)
}

func TestMemoryExpansionOverflowGuard(t *testing.T) {
	m := NewMemory()
	_, err := m.ExpansionCost(0x2000000000)
	require.ErrorIs(t, err, ErrGasUintOverflow)
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := NewMemory()
	m.Resize(64)
	require.Equal(t, 64, m.Len())
	m.Resize(32)
	require.Equal(t, 64, m.Len())
}
