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
	"github.com/holiman/uint256"

	"github.com/ClementWalter/kakarot/common"
	"github.com/ClementWalter/kakarot/common/math"
	"github.com/ClementWalter/kakarot/core/vm/state"
	"github.com/ClementWalter/kakarot/params"
)

// createKind distinguishes CREATE from CREATE2: the only difference is
// whether a salt is consumed off the stack and folded into address
// derivation.
type createKind int

const (
	createKindCreate createKind = iota
	createKindCreate2
)

// CreateHelper implements the shared CREATE/CREATE2 initiation and
// finalization spec.md describes in §4.I.
type CreateHelper struct{}

// ExecCreate pops the CREATE-family operands off parent's stack, charges
// init-code and memory gas, derives the deployment address, and returns the
// freshly constructed child Frame running initcode. A nil Frame with no
// error means the parent already absorbed the failure: on a collision, a
// depth overrun, insufficient balance or a nonce overflow it pushed its own
// 0 result; on OOG or a read-only violation it is left reverted with
// nothing pushed.
func (CreateHelper) ExecCreate(evm *EVM, parent *Frame, kind createKind) (*Frame, error) {
	if parent.Message.ReadOnly {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}

	nPop := 3
	if kind == createKindCreate2 {
		nPop = 4
	}
	popped, err := parent.Stack.PopN(nPop)
	if err != nil {
		return nil, err
	}
	valueWord, offsetWord, sizeWord := popped[0], popped[1], popped[2]
	var salt common.Hash
	if kind == createKindCreate2 {
		b := popped[3].Bytes32()
		salt = common.BytesToHash(b[:])
	}

	if parent.Message.Depth+1 > uint16(params.CallCreateDepth) {
		if evm.Metrics != nil {
			evm.Metrics.DepthExceeded.Inc()
		}
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}

	offset, ofOverflow := offsetWord.Uint64WithOverflow()
	size, sOverflow := sizeWord.Uint64WithOverflow()
	if ofOverflow || sOverflow {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}
	if size > params.MaxCodeSize*2 {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, ErrMaxInitCodeSizeExceeded
	}

	memEnd, overflow := math.SafeAdd(offset, size)
	if overflow {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}
	memCost, err := parent.Memory.ExpansionCost(memEnd)
	if err != nil {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}

	initWordCost, overflow := memoryWordCost(size, params.InitCodeWordGas)
	if overflow {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}
	keccakCost, overflow := memoryWordCost(size, params.Keccak256WordGas)
	if overflow {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}

	upfront, overflow := math.SafeAdd(memCost, initWordCost)
	if overflow {
		parent.GasLeft = 0
		parent.Reverted = true
		return nil, nil
	}
	if kind == createKindCreate2 {
		upfront, overflow = math.SafeAdd(upfront, keccakCost)
		if overflow {
			parent.GasLeft = 0
			parent.Reverted = true
			return nil, nil
		}
	}
	if err := parent.Charge(upfront); err != nil {
		if evm.Metrics != nil {
			evm.Metrics.OutOfGas.Inc()
		}
		return nil, nil
	}

	parent.Memory.Resize(memEnd)
	initcode := parent.Memory.Load(offset, size)
	parent.ReturnData = nil

	sender := parent.Message.Address.Evm
	senderAccount := parent.State.GetAccount(sender)

	if senderAccount.Balance.Lt(&valueWord) {
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}
	if senderAccount.Nonce >= params.MaxNonce {
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}

	forwarded := CallGasCap(parent.GasLeft)
	if err := parent.Charge(forwarded); err != nil {
		return nil, nil
	}

	var newAddr common.EvmAddress
	if kind == createKindCreate2 {
		newAddr = DeriveCreate2Address(evm.Keccak, sender, salt, initcode)
	} else {
		newAddr = DeriveCreateAddress(evm.Keccak, sender, senderAccount.Nonce)
	}

	if err := parent.State.SetNonce(sender, senderAccount.Nonce+1); err != nil {
		parent.GasLeft += forwarded
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}

	existing := parent.State.GetAccount(newAddr)
	if state.HasCodeOrNonce(existing) {
		parent.GasLeft += forwarded
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}

	hostAddr := evm.HostMapper(newAddr)
	target := common.Address{Evm: newAddr, Host: hostAddr}

	child := NewFrame(&Message{
		Bytecode: initcode,
		Calldata: nil,
		Value:    &valueWord,
		GasPrice: parent.Message.GasPrice,
		Origin:   parent.Message.Origin,
		Parent:   parent,
		Address:  target,
		ReadOnly: false,
		IsCreate: true,
		Depth:    parent.Message.Depth + 1,
	}, forwarded, parent.State)

	_ = child.State.SetNonce(newAddr, 1)

	if !valueWord.IsZero() {
		ok := child.State.AddTransfer(state.Transfer{From: sender, To: newAddr, Amount: &valueWord})
		if !ok {
			ReturnStack(child.Stack)
			parent.GasLeft += forwarded
			_ = parent.Stack.PushUint128(0)
			parent.ProgramCounter++
			return nil, nil
		}
	}

	return child, nil
}

// FinalizeParent folds a halted CREATE-family child back into parent: on
// success, charges the per-byte code-deposit cost, installs the deployed
// code, and pushes the new address; on failure it pushes 0. Gas and state
// reconcile identically to CallHelper.FinalizeParent.
func (CreateHelper) FinalizeParent(evm *EVM, parent, child *Frame) (*Frame, error) {
	if child.Reverted {
		parent.ProgramCounter++
		ReturnStack(child.Stack)
		_ = parent.Stack.PushUint128(0)
		return parent, nil
	}

	code := child.ReturnData
	if len(code) > params.MaxCodeSize {
		parent.Reverted = true
		parent.ProgramCounter++
		ReturnStack(child.Stack)
		_ = parent.Stack.PushUint128(0)
		return parent, ErrMaxCodeSizeExceeded
	}

	depositCost, overflow := math.SafeMul(uint64(len(code)), params.CreateDataGas)
	if overflow || depositCost > child.GasLeft {
		parent.ProgramCounter++
		ReturnStack(child.Stack)
		_ = parent.Stack.PushUint128(0)
		return parent, ErrCodeStoreOutOfGas
	}
	child.GasLeft -= depositCost

	newAddr := child.Message.Address.Evm
	child.State.SetCode(newAddr, code)
	if evm.CodeCache != nil {
		evm.CodeCache.Set(newAddr, code)
	}

	parent.GasLeft += child.GasLeft
	parent.State.Commit(child.State)

	addrWord := new(uint256.Int).SetBytes(newAddr.Bytes())
	_ = parent.Stack.Push(addrWord)
	parent.ProgramCounter++
	ReturnStack(child.Stack)
	return parent, nil
}
