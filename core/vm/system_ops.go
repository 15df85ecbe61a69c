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
	"github.com/ClementWalter/kakarot/common"
	"github.com/ClementWalter/kakarot/common/math"
	"github.com/ClementWalter/kakarot/core/vm/state"
)

// SystemOps is the opcode-level front for CallHelper and CreateHelper, plus
// the four halting opcodes (RETURN/REVERT/INVALID/SELFDESTRUCT) spec.md
// groups into the same component. Each Exec* method assumes
// frame.Message.Bytecode[frame.ProgramCounter] is the opcode it names; it
// is the driver loop's job (interpreter.go) to have checked that already.
type SystemOps struct {
	evm *EVM
}

// ExecCall dispatches the CALL opcode.
func (s SystemOps) ExecCall(frame *Frame) (*Frame, error) {
	return s.evm.call.InitSubContext(s.evm, frame, callKindCall)
}

// ExecCallCode dispatches the CALLCODE opcode.
func (s SystemOps) ExecCallCode(frame *Frame) (*Frame, error) {
	return s.evm.call.InitSubContext(s.evm, frame, callKindCallCode)
}

// ExecDelegateCall dispatches the DELEGATECALL opcode.
func (s SystemOps) ExecDelegateCall(frame *Frame) (*Frame, error) {
	return s.evm.call.InitSubContext(s.evm, frame, callKindDelegateCall)
}

// ExecStaticCall dispatches the STATICCALL opcode.
func (s SystemOps) ExecStaticCall(frame *Frame) (*Frame, error) {
	return s.evm.call.InitSubContext(s.evm, frame, callKindStaticCall)
}

// ExecCreate dispatches the CREATE opcode.
func (s SystemOps) ExecCreate(frame *Frame) (*Frame, error) {
	return s.evm.create.ExecCreate(s.evm, frame, createKindCreate)
}

// ExecCreate2 dispatches the CREATE2 opcode.
func (s SystemOps) ExecCreate2(frame *Frame) (*Frame, error) {
	return s.evm.create.ExecCreate(s.evm, frame, createKindCreate2)
}

// ExecReturn halts frame successfully, returning the memory range
// [offset, offset+size) as its return data.
func (s SystemOps) ExecReturn(frame *Frame) {
	data, ok := s.readMemoryRange(frame)
	if !ok {
		frame.Halt(nil, true)
		return
	}
	frame.Halt(data, false)
}

// ExecRevert halts frame reverted, returning the memory range
// [offset, offset+size) as revert data. Unlike ExecInvalid, a REVERT
// preserves its gas_left: Charge already happened for the memory
// expansion this opcode needed, but none of the remaining gas is burned.
func (s SystemOps) ExecRevert(frame *Frame) {
	data, ok := s.readMemoryRange(frame)
	if !ok {
		frame.Halt(nil, true)
		return
	}
	frame.Halt(data, true)
}

// ExecInvalid halts frame reverted with no return data and its entire
// remaining gas burned, matching the INVALID opcode's semantics.
func (s SystemOps) ExecInvalid(frame *Frame) {
	frame.GasLeft = 0
	frame.Halt(nil, true)
}

// ExecSelfDestruct marks frame's own account destructed and transfers its
// entire balance to beneficiary, then halts frame successfully. It is
// rejected in a read-only frame, matching every other state-modifying
// system operation. Self-beneficiary (an account destructing to itself)
// has its beneficiary replaced by the zero address, so its balance moves
// there and its own balance ends at zero rather than being left in place:
// this engine mirrors spec.md's stated behavior rather than EIP-6780's
// later carve-out (see DESIGN.md).
func (s SystemOps) ExecSelfDestruct(frame *Frame) error {
	if frame.Message.ReadOnly {
		frame.Reverted = true
		return nil
	}
	beneficiaryWord, err := frame.Stack.Pop()
	if err != nil {
		return err
	}
	beneficiary := ToAddress(&beneficiaryWord)
	selfAddr := frame.Message.Address.Evm

	account := frame.State.GetAccount(selfAddr)
	balance := account.Balance

	if beneficiary == selfAddr {
		beneficiary = common.EvmAddress{}
	}
	frame.State.AddTransfer(state.Transfer{From: selfAddr, To: beneficiary, Amount: balance})
	frame.State.SelfDestruct(selfAddr)
	frame.Halt(nil, false)
	return nil
}

// readMemoryRange pops offset and size off frame's stack, charges the
// memory expansion they require, and returns the addressed bytes.
func (s SystemOps) readMemoryRange(frame *Frame) ([]byte, bool) {
	popped, err := frame.Stack.PopN(2)
	if err != nil {
		return nil, false
	}
	offset, ofOverflow := popped[0].Uint64WithOverflow()
	size, sOverflow := popped[1].Uint64WithOverflow()
	if ofOverflow || sOverflow {
		return nil, false
	}
	end, overflow := math.SafeAdd(offset, size)
	if overflow {
		return nil, false
	}
	cost, err := frame.Memory.ExpansionCost(end)
	if err != nil {
		return nil, false
	}
	if err := frame.Charge(cost); err != nil {
		return nil, false
	}
	frame.Memory.Resize(end)
	return frame.Memory.Load(offset, size), true
}
