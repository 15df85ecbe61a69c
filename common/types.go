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

// Package common holds the dual-chain address and hash types shared by the
// engine. Unlike go-ethereum, where an Address is a single 20-byte EVM
// value, addresses here carry both the EVM-visible value and its
// deterministic host-chain counterpart, since the engine executes under a
// host chain that does not itself speak 160-bit addresses.
package common

import (
	"encoding/hex"
	"fmt"

	"github.com/holiman/uint256"
)

// EvmAddressLength is the size of an address as seen by EVM bytecode.
const EvmAddressLength = 20

// HashLength is the size of a keccak-256 digest.
const HashLength = 32

// EvmAddress is the 160-bit address bytecode operates on.
type EvmAddress [EvmAddressLength]byte

// BytesToEvmAddress truncates or left-pads b to 20 bytes, taking the low
// order bytes the way go-ethereum's BytesToAddress does.
func BytesToEvmAddress(b []byte) EvmAddress {
	var a EvmAddress
	if len(b) > EvmAddressLength {
		b = b[len(b)-EvmAddressLength:]
	}
	copy(a[EvmAddressLength-len(b):], b)
	return a
}

// Bytes returns a, copied into a fresh slice.
func (a EvmAddress) Bytes() []byte { return a[:] }

// Hex renders a as a 0x-prefixed lower-case hex string.
func (a EvmAddress) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

func (a EvmAddress) String() string { return a.Hex() }

// IsZero reports whether a is the all-zero address.
func (a EvmAddress) IsZero() bool { return a == EvmAddress{} }

// HostAddress is the host chain's deterministic counterpart of an
// EvmAddress, computed by an external collaborator (see the
// HostAddressMapper interface consumed by core/vm). The host chain this
// engine was designed against addresses accounts by field element, so a
// HostAddress is modeled the same width as a Word rather than as raw bytes.
type HostAddress = uint256.Int

// Address is the (host_addr, evm_addr) pair the spec's data model calls
// for: every account the engine touches is addressable both by the
// bytecode-visible EVM address and by its host-chain counterpart.
type Address struct {
	Evm  EvmAddress
	Host HostAddress
}

// NewAddress pairs evmAddr with its host counterpart, computed via mapper.
func NewAddress(evmAddr EvmAddress, mapper func(EvmAddress) HostAddress) Address {
	return Address{Evm: evmAddr, Host: mapper(evmAddr)}
}

func (a Address) String() string {
	return fmt.Sprintf("%s (host %s)", a.Evm.Hex(), a.Host.Hex())
}

// Hash is a keccak-256 digest.
type Hash [HashLength]byte

// BytesToHash truncates or left-pads b to 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

func (h Hash) Bytes() []byte { return h[:] }

func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero reports whether h is the all-zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }
