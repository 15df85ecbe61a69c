// Copyright 2016 The go-ethereum Authors
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
	"github.com/ClementWalter/kakarot/common"
	"github.com/ClementWalter/kakarot/internal/rlp"
)

// Keccak256 hashes data with keccak-256, big-endian, the one primitive this
// package never implements itself (spec.md excludes it explicitly).
type Keccak256 func(data []byte) [32]byte

// DeriveCreateAddress computes the address CREATE deploys to:
// keccak(rlp([sender, nonce]))[12:].
func DeriveCreateAddress(keccak Keccak256, sender common.EvmAddress, nonce uint64) common.EvmAddress {
	encoded := rlp.EncodeSenderNonce(sender.Bytes(), nonce)
	digest := keccak(encoded)
	return common.BytesToEvmAddress(digest[12:])
}

// DeriveCreate2Address computes the address CREATE2 deploys to:
// keccak(0xff ++ sender ++ salt ++ keccak(initcode))[12:].
func DeriveCreate2Address(keccak Keccak256, sender common.EvmAddress, salt common.Hash, initcode []byte) common.EvmAddress {
	initcodeHash := keccak(initcode)

	buf := make([]byte, 0, 1+20+32+32)
	buf = append(buf, 0xff)
	buf = append(buf, sender.Bytes()...)
	buf = append(buf, salt.Bytes()...)
	buf = append(buf, initcodeHash[:]...)

	digest := keccak(buf)
	return common.BytesToEvmAddress(digest[12:])
}
