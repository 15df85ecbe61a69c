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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/ClementWalter/kakarot/common"
	"github.com/ClementWalter/kakarot/core/vm/state"
)

func identityHostMapper(addr common.EvmAddress) common.HostAddress {
	return *WordFromAddress(addr)
}

func newTestEVM() *EVM {
	return NewEVM(keccak, identityHostMapper, nil, nil, BlockContext{}, Config{})
}

func testSelfEvmAddr(t *testing.T) common.EvmAddress {
	return mustHexAddr(t, "1111111111111111111111111111111111111111")
}

func newRootFrameForTest(t *testing.T, st *state.Overlay, gasLeft uint64) *Frame {
	t.Helper()
	self := common.Address{Evm: testSelfEvmAddr(t)}
	f := NewFrame(&Message{
		Address:  self,
		Origin:   self,
		Value:    NewWord(),
		GasPrice: NewWord(),
	}, gasLeft, st)
	return f
}

// TestCallForwardsSixtyThreeSixtyFourths exercises spec.md's scenario 4: a
// caller with gas_left=640000 requesting 1_000_000 forwarded gets
// min(1_000_000, 640_000 - 10_000) = 630_000.
func TestCallForwardsSixtyThreeSixtyFourths(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	callee := mustHexAddr(t, "2222222222222222222222222222222222222222")
	st.SetCode(callee, []byte{})

	parent := newRootFrameForTest(t, st, 640_000)

	require.NoError(t, parent.Stack.PushUint128(0)) // ret_size
	require.NoError(t, parent.Stack.PushUint128(0)) // ret_offset
	require.NoError(t, parent.Stack.PushUint128(0)) // args_size
	require.NoError(t, parent.Stack.PushUint128(0)) // args_offset
	require.NoError(t, parent.Stack.PushUint128(0)) // value
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(1_000_000)) // gas

	child, err := CallHelper{}.InitSubContext(evm, parent, callKindCall)
	require.NoError(t, err)
	require.NotNil(t, child)
	require.Equal(t, uint64(630_000), child.GasLeft)
}

// TestRevertRollsBackTransfer exercises spec.md's scenario 3: a CALL
// forwards value to a callee that reverts; the transfer never took effect,
// the caller's stack gets 0, and the gas forwarded to the reverted child is
// not refunded to the caller.
func TestRevertRollsBackTransfer(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	selfAddr := testSelfEvmAddr(t)
	st.SetAccount(selfAddr, &state.Account{Balance: uint256.NewInt(1000), Storage: map[uint256.Int]uint256.Int{}})

	callee := mustHexAddr(t, "3333333333333333333333333333333333333333")
	st.SetCode(callee, []byte{})

	parent := newRootFrameForTest(t, st, 100_000)

	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(100))
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(50_000))

	preCallGas := parent.GasLeft
	child, err := CallHelper{}.InitSubContext(evm, parent, callKindCall)
	require.NoError(t, err)
	require.NotNil(t, child)

	forwarded := child.GasLeft
	child.Halt(nil, true) // callee executes REVERT with empty data

	out, err := CallHelper{}.FinalizeParent(parent, child)
	require.NoError(t, err)

	result, err := out.Stack.Pop()
	require.NoError(t, err)
	require.True(t, result.IsZero(), "reverted call pushes 0")

	require.True(t, out.State.GetAccount(selfAddr).Balance.Eq(uint256.NewInt(1000)), "balance(A) unchanged")
	require.True(t, out.State.GetAccount(callee).Balance.IsZero(), "balance(B) unchanged")
	require.Equal(t, preCallGas-forwarded, out.GasLeft, "the reverted child's forwarded gas is not refunded")
}

func TestStaticCallForcesReadOnly(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	callee := mustHexAddr(t, "4444444444444444444444444444444444444444")
	st.SetCode(callee, []byte{})

	parent := newRootFrameForTest(t, st, 100_000)

	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(10_000))

	child, err := CallHelper{}.InitSubContext(evm, parent, callKindStaticCall)
	require.NoError(t, err)
	require.True(t, child.Message.ReadOnly)
}

func TestReadOnlyFramePropagatesToChild(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	callee := mustHexAddr(t, "5555555555555555555555555555555555555555")
	st.SetCode(callee, []byte{})

	parent := newRootFrameForTest(t, st, 100_000)
	parent.Message.ReadOnly = true

	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(10_000))

	child, err := CallHelper{}.InitSubContext(evm, parent, callKindDelegateCall)
	require.NoError(t, err)
	require.True(t, child.Message.ReadOnly)
}

func TestCallWithValueUnderReadOnlyReverts(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	selfAddr := testSelfEvmAddr(t)
	st.SetAccount(selfAddr, &state.Account{Balance: uint256.NewInt(1000), Storage: map[uint256.Int]uint256.Int{}})

	parent := newRootFrameForTest(t, st, 100_000)
	parent.Message.ReadOnly = true

	callee := mustHexAddr(t, "6666666666666666666666666666666666666666")

	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(1)) // non-zero value
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(10_000))

	child, err := CallHelper{}.InitSubContext(evm, parent, callKindCall)
	require.NoError(t, err)
	require.Nil(t, child)
	require.True(t, parent.Reverted)
}

func TestCallDepthLimitRejectsBeforeSpawning(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	parent := newRootFrameForTest(t, st, 100_000)
	parent.Message.Depth = 1024

	callee := mustHexAddr(t, "7777777777777777777777777777777777777777")

	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(10_000))

	preGas := parent.GasLeft
	child, err := CallHelper{}.InitSubContext(evm, parent, callKindCall)
	require.NoError(t, err)
	require.Nil(t, child)
	require.Equal(t, preGas, parent.GasLeft, "no gas charged for a rejected over-depth call")

	result, err := parent.Stack.Pop()
	require.NoError(t, err)
	require.True(t, result.IsZero())
	require.Equal(t, 0, parent.Stack.Len(), "ret_offset/ret_size must be consumed, not left stale under the pushed result")
}

// TestCallInsufficientBalanceRejectsWithoutSpawningChild exercises a CALL
// that transfers value the caller cannot cover: no child spawns, the
// operand stack nets down to the pushed 0 result with no stale words left
// from the ret_offset/ret_size peeked at initiation, and execution
// continues rather than aborting.
func TestCallInsufficientBalanceRejectsWithoutSpawningChild(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	selfAddr := testSelfEvmAddr(t)
	st.SetAccount(selfAddr, &state.Account{Balance: uint256.NewInt(0), Storage: map[uint256.Int]uint256.Int{}})

	callee := mustHexAddr(t, "8888888888888888888888888888888888888888")
	st.SetCode(callee, []byte{})

	parent := newRootFrameForTest(t, st, 100_000)

	require.NoError(t, parent.Stack.PushUint128(99)) // ret_size, a non-zero sentinel
	require.NoError(t, parent.Stack.PushUint128(99)) // ret_offset, a non-zero sentinel
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(0))
	require.NoError(t, parent.Stack.PushUint128(1)) // value the caller cannot cover
	require.NoError(t, parent.Stack.Push(WordFromAddress(callee)))
	require.NoError(t, parent.Stack.PushUint128(10_000))

	child, err := CallHelper{}.InitSubContext(evm, parent, callKindCall)
	require.NoError(t, err)
	require.Nil(t, child)

	result, err := parent.Stack.Pop()
	require.NoError(t, err)
	require.True(t, result.IsZero())
	require.Equal(t, 0, parent.Stack.Len(), "ret_offset/ret_size must be consumed, not left stale under the pushed result")
}
