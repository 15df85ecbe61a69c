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
	"github.com/holiman/uint256"

	"github.com/ClementWalter/kakarot/common"
)

// Word is the 256-bit unsigned integer every Stack slot and Account balance
// is made of. It is an alias of uint256.Int rather than a hand-rolled
// big-endian byte array: every stack push/pop the interpreter performs goes
// through arithmetic uint256 already does overflow-checked and
// allocation-free, and it is the representation the rest of the pack (and
// the teacher) converge on.
type Word = uint256.Int

// NewWord returns the zero word.
func NewWord() *Word { return new(uint256.Int) }

// WordFromUint64 returns the word with value x.
func WordFromUint64(x uint64) *Word { return uint256.NewInt(x) }

// SplitWord splits w into its high and low 128-bit halves.
func SplitWord(w *Word) (high, low *uint256.Int) {
	b := w.Bytes32()
	low = new(uint256.Int).SetBytes(b[16:32])
	high = new(uint256.Int).SetBytes(b[0:16])
	return high, low
}

// JoinWord reconstructs a Word from its high and low 128-bit halves, the
// inverse of SplitWord.
func JoinWord(high, low *uint256.Int) *Word {
	w := new(uint256.Int).Lsh(high, 128)
	return w.Or(w, low)
}

// FitsUint128 reports whether w's high 128 bits are all zero. CallHelper
// and CreateHelper do not call it; they bound stack-popped offsets and
// sizes with Uint64WithOverflow instead.
func FitsUint128(w *Word) bool {
	high, _ := SplitWord(w)
	return high.IsZero()
}

// ToAddress truncates w to its low 160 bits, the address extraction every
// CALL-family and CREATE-family opcode performs on a stack-popped word.
func ToAddress(w *Word) common.EvmAddress {
	b := w.Bytes32()
	return common.BytesToEvmAddress(b[12:])
}

// WordFromAddress widens addr back into a Word with its high 96 bits zero.
func WordFromAddress(addr common.EvmAddress) *Word {
	return new(uint256.Int).SetBytes(addr.Bytes())
}

// Uint256LessThan reports whether x < y, matching spec.md's uint256_lt.
func Uint256LessThan(x, y *Word) bool { return x.Lt(y) }
