// Copyright 2015 The go-ethereum Authors
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

import "github.com/ClementWalter/kakarot/common/math"

// Charge deducts g from the frame's remaining gas. If g exceeds what is
// left, gas_left is zeroed and the frame is marked reverted (out of gas),
// matching spec.md's charge: callers never observe a negative balance.
func (f *Frame) Charge(g uint64) error {
	if g > f.GasLeft {
		f.GasLeft = 0
		f.Reverted = true
		return ErrOutOfGas
	}
	f.GasLeft -= g
	return nil
}

// CallGasCap returns the 63/64ths of available gas a CALL-family opcode is
// allowed to forward to a child frame.
func CallGasCap(available uint64) uint64 {
	return available - available/64
}

// ForwardedGas returns the gas a CALL-family opcode actually forwards: the
// smaller of what the caller requested and the 63/64 cap of what it has
// left. A requested amount above the cap is silently reduced, never an
// error (spec.md's 63/64 rule).
func ForwardedGas(requested, available uint64) uint64 {
	limit := CallGasCap(available)
	if requested > limit {
		return limit
	}
	return requested
}

// memoryWordCost charges cost per 32-byte word of n bytes, rounding up,
// used for CREATE/CREATE2's init-code and keccak256 word costs.
func memoryWordCost(n uint64, costPerWord uint64) (uint64, bool) {
	words := toWordSize(n)
	return math.SafeMul(words, costPerWord)
}
