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

package params

const (
	MaxCodeSize uint64 = 24576 // Maximum bytecode a contract can have deployed after a successful CREATE/CREATE2.
	MaxNonce    uint64 = 1<<64 - 1

	CallCreateDepth uint64 = 1024 // Maximum depth of the call/create frame stack.
	StackLimit      uint64 = 1024 // Maximum number of words live on a Stack.

	MemoryGas    uint64 = 3   // Linear coefficient of the memory expansion formula.
	QuadCoeffDiv uint64 = 512 // Divisor of the quadratic coefficient of the memory expansion formula.

	Keccak256WordGas uint64 = 6   // Paid per word of input hashed for CREATE2's init-code digest.
	InitCodeWordGas  uint64 = 2   // Paid per word of CREATE/CREATE2 init code, EIP-3860.
	CreateDataGas    uint64 = 200 // Paid per byte of code deposited by a successful CREATE/CREATE2.
)
