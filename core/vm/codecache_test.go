// Copyright 2019 The go-ethereum Authors
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

func TestCodeCacheMissThenHit(t *testing.T) {
	c := NewCodeCache(1 << 20)
	addr := mustHexAddr(t, "9999999999999999999999999999999999999999")

	_, ok := c.Get(addr)
	require.False(t, ok)

	code := []byte{0x60, 0x00, 0xf3}
	c.Set(addr, code)

	got, ok := c.Get(addr)
	require.True(t, ok)
	require.Equal(t, code, got)
}

func TestCodeCacheResetClearsEntries(t *testing.T) {
	c := NewCodeCache(1 << 20)
	addr := mustHexAddr(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	c.Set(addr, []byte{0x01})

	c.Reset()

	_, ok := c.Get(addr)
	require.False(t, ok)
}

func TestCodeCacheDistinguishesAddresses(t *testing.T) {
	c := NewCodeCache(1 << 20)
	a := mustHexAddr(t, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	b := mustHexAddr(t, "cccccccccccccccccccccccccccccccccccccccc")
	c.Set(a, []byte{0xaa})
	c.Set(b, []byte{0xbb})

	gotA, _ := c.Get(a)
	gotB, _ := c.Get(b)
	require.Equal(t, []byte{0xaa}, gotA)
	require.Equal(t, []byte{0xbb}, gotB)
}
