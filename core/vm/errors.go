// Copyright 2017 The go-ethereum Authors
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

import "errors"

// List evaluation order matches gas_table.go/evm.go in the teacher. Errors
// raised by CALL/CREATE/halt handling surface as a reverted frame, never as
// a host-level panic or exception: SystemOps and CallHelper/CreateHelper
// translate them into Frame.Reverted or a zero/failure push, and Execute
// halts the dispatching frame reverted with no gas left when a system
// operation returns one. An error from the OpcodeRunner, and
// ErrNoCompatibleInterpreter when no runner is configured, ends Execute and
// is returned to its caller.
var (
	ErrOutOfGas                 = errors.New("vm: out of gas")
	ErrGasUintOverflow          = errors.New("vm: gas uint64 overflow")
	ErrStackUnderflow           = errors.New("vm: stack underflow")
	ErrStackOverflow            = errors.New("vm: stack overflow (1024 word limit)")
	ErrDepth                    = errors.New("vm: max call depth exceeded")
	ErrInsufficientBalance      = errors.New("vm: insufficient balance for transfer")
	ErrContractAddressCollision = errors.New("vm: contract address collision")
	ErrNonceUintOverflow        = errors.New("vm: nonce uint64 overflow")
	ErrCodeStoreOutOfGas        = errors.New("vm: contract creation code storage out of gas")
	ErrMaxCodeSizeExceeded      = errors.New("vm: max code size exceeded")
	ErrMaxInitCodeSizeExceeded  = errors.New("vm: max init code size exceeded")
	ErrWriteProtection          = errors.New("vm: write protection (state modification in read-only frame)")
	ErrExecutionReverted        = errors.New("vm: execution reverted")
	ErrNoCompatibleInterpreter  = errors.New("vm: no compatible interpreter")
)
