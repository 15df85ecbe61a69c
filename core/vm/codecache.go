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
	"github.com/VictoriaMetrics/fastcache"

	"github.com/ClementWalter/kakarot/common"
)

// CodeCache memoizes deployed contract code by EVM address across
// Execute calls, avoiding a state-overlay lookup (and, in an embedder
// backed by a remote or on-disk store, a round trip) on every CALL to a
// hot address. It never needs invalidation beyond its own LRU eviction:
// contract code is immutable once deployed, so a stale hit is never wrong,
// only (after a SELFDESTRUCT at the same address within EIP-6780's
// same-transaction window) momentarily ahead of state - a case this engine
// does not implement, see DESIGN.md.
type CodeCache struct {
	cache *fastcache.Cache
}

// NewCodeCache returns a CodeCache with maxBytes of backing storage.
func NewCodeCache(maxBytes int) *CodeCache {
	return &CodeCache{cache: fastcache.New(maxBytes)}
}

// Get returns the cached code for addr, if present.
func (c *CodeCache) Get(addr common.EvmAddress) ([]byte, bool) {
	val, ok := c.cache.HasGet(nil, addr.Bytes())
	return val, ok
}

// Set installs code as the cached value for addr.
func (c *CodeCache) Set(addr common.EvmAddress, code []byte) {
	c.cache.Set(addr.Bytes(), code)
}

// Reset discards every cached entry.
func (c *CodeCache) Reset() {
	c.cache.Reset()
}
