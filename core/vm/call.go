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
	"github.com/ClementWalter/kakarot/log"
	"github.com/ClementWalter/kakarot/params"
)

// callKind distinguishes the four CALL-family opcodes by the three
// booleans spec.md's init_sub_context takes, per DESIGN.md's resolution of
// the "polymorphism over call variants" open question: a small sum type
// internally, the flat boolean parameters at the leaf where spec.md names
// them.
type callKind int

const (
	callKindCall callKind = iota
	callKindCallCode
	callKindDelegateCall
	callKindStaticCall
)

func (k callKind) flags() (withValue, forceReadOnly, selfCall bool) {
	switch k {
	case callKindCall:
		return true, false, false
	case callKindCallCode:
		return true, false, true
	case callKindDelegateCall:
		return false, false, true
	case callKindStaticCall:
		return false, true, false
	default:
		panic("vm: unknown callKind")
	}
}

// CallHelper implements the shared CALL/CALLCODE/STATICCALL/DELEGATECALL
// initiation and finalization spec.md describes in §4.H.
type CallHelper struct{}

// InitSubContext pops the CALL-family operands off parent's stack (leaving
// ret_offset/ret_size in place for FinalizeParent), charges memory
// expansion and forwarded gas, and returns the freshly constructed child
// Frame. A nil Frame with no error means the parent already absorbed the
// failure (OOG, write-protection, or depth) and holds the outcome; the
// interpreter loop should simply continue without pushing a child.
func (CallHelper) InitSubContext(evm *EVM, parent *Frame, kind callKind) (*Frame, error) {
	withValue, forceReadOnly, selfCall := kind.flags()

	nPop := 4
	if withValue {
		nPop = 5
	}
	popped, err := parent.Stack.PopN(nPop)
	if err != nil {
		return nil, err
	}
	gasWord, addrWord := popped[0], popped[1]
	idx := 2
	var value *Word
	if withValue {
		v := popped[idx]
		value = &v
		idx++
	} else {
		value = NewWord()
	}
	argsOffsetWord, argsSizeWord := popped[idx], popped[idx+1]

	retOffsetPtr, err := parent.Stack.Peek(0)
	if err != nil {
		return nil, err
	}
	retSizePtr, err := parent.Stack.Peek(1)
	if err != nil {
		return nil, err
	}

	if parent.Message.Depth+1 > uint16(params.CallCreateDepth) {
		if evm.Metrics != nil {
			evm.Metrics.DepthExceeded.Inc()
		}
		_, _ = parent.Stack.PopN(2) // ret_offset, ret_size, left in place by the Peeks above
		_ = parent.Stack.PushUint128(0)
		parent.ProgramCounter++
		return nil, nil
	}

	argsOffset, ofOverflow := argsOffsetWord.Uint64WithOverflow()
	argsSize, sOverflow := argsSizeWord.Uint64WithOverflow()
	retOffset, roOverflow := retOffsetPtr.Uint64WithOverflow()
	retSize, rsOverflow := retSizePtr.Uint64WithOverflow()
	if ofOverflow || sOverflow || roOverflow || rsOverflow {
		parent.Reverted = true
		parent.GasLeft = 0
		return nil, nil
	}

	argsEnd, overflow1 := math.SafeAdd(argsOffset, argsSize)
	retEnd, overflow2 := math.SafeAdd(retOffset, retSize)
	if overflow1 || overflow2 {
		parent.Reverted = true
		parent.GasLeft = 0
		return nil, nil
	}
	memEnd := argsEnd
	if retEnd > memEnd {
		memEnd = retEnd
	}

	memCost, err := parent.Memory.ExpansionCost(memEnd)
	if err != nil {
		parent.Reverted = true
		parent.GasLeft = 0
		return nil, nil
	}

	requestedGas, _ := gasWord.Uint64WithOverflow()
	forwarded := ForwardedGas(requestedGas, parent.GasLeft)

	total, overflow := math.SafeAdd(forwarded, memCost)
	if overflow {
		parent.Reverted = true
		parent.GasLeft = 0
		return nil, nil
	}

	readOnly := parent.Message.ReadOnly || forceReadOnly
	writeAttempt := withValue && !value.IsZero() && parent.Message.ReadOnly

	if err := parent.Charge(total); err != nil {
		log.Trace("call initiation out of gas", "requested", requestedGas, "memCost", memCost)
		if evm.Metrics != nil {
			evm.Metrics.OutOfGas.Inc()
		}
		return nil, nil
	}
	if writeAttempt {
		parent.Reverted = true
		return nil, nil
	}

	if !withValue && selfCall {
		value = parent.Message.Value
	}

	parent.Memory.Resize(memEnd)
	calldata := parent.Memory.Load(argsOffset, argsSize)
	parent.ReturnData = nil

	targetEvmAddr := ToAddress(&addrWord)

	if evm.Precompiles != nil && evm.Precompiles.IsPrecompile(targetEvmAddr) {
		child, err := evm.Precompiles.Run(targetEvmAddr, calldata, value, parent, forwarded)
		if err != nil {
			return nil, err
		}
		return child, nil
	}

	hostAddr := evm.HostMapper(targetEvmAddr)
	target := common.Address{Evm: targetEvmAddr, Host: hostAddr}

	msgAddr := target
	if selfCall {
		msgAddr = parent.Message.Address
	}

	code := evm.lookupCode(parent, targetEvmAddr)

	child := NewFrame(&Message{
		Bytecode: code,
		Calldata: calldata,
		Value:    value,
		GasPrice: parent.Message.GasPrice,
		Origin:   parent.Message.Origin,
		Parent:   parent,
		Address:  msgAddr,
		ReadOnly: readOnly,
		IsCreate: false,
		Depth:    parent.Message.Depth + 1,
	}, forwarded, parent.State)

	if withValue && !value.IsZero() {
		callerEvmAddr := parent.Message.Address.Evm
		ok := child.State.AddTransfer(state.Transfer{From: callerEvmAddr, To: targetEvmAddr, Amount: value})
		if !ok {
			ReturnStack(child.Stack)
			_, _ = parent.Stack.PopN(2) // ret_offset, ret_size, left in place by the Peeks above
			_ = parent.Stack.PushUint128(0)
			parent.ProgramCounter++
			return nil, nil
		}
	}

	return child, nil
}

// FinalizeParent folds a halted CALL-family child back into parent: pops
// the ret_offset/ret_size InitSubContext left on the stack at initiation
// time, pushes the success flag, copies (truncated) return data into
// parent memory, and reconciles gas and state per spec.md §4.H.2.
func (CallHelper) FinalizeParent(parent, child *Frame) (*Frame, error) {
	operands, err := parent.Stack.PopN(2)
	if err != nil {
		return nil, err
	}
	retOffset, _ := operands[0].Uint64WithOverflow()
	retSize, _ := operands[1].Uint64WithOverflow()

	success := !child.Reverted
	if success {
		_ = parent.Stack.PushUint128(1)
	} else {
		_ = parent.Stack.PushUint128(0)
	}

	returnData := child.ReturnData
	if uint64(len(returnData)) > retSize {
		returnData = returnData[:retSize]
	}
	parent.Memory.Store(retOffset, returnData)
	parent.ReturnData = child.ReturnData

	if success {
		parent.GasLeft += child.GasLeft
		parent.State.Commit(child.State)
	}
	// On revert, parent.State is already the pre-call snapshot: it was never
	// mutated, since child.State was a Copy() taken before the child ran.

	parent.ProgramCounter++
	ReturnStack(child.Stack)
	return parent, nil
}
