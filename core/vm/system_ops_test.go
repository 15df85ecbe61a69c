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

	"github.com/ClementWalter/kakarot/core/vm/state"
)

func newTestSystemOps(evm *EVM) SystemOps {
	return SystemOps{evm: evm}
}

func TestExecReturnHaltsSuccessfullyWithMemoryRange(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	frame := newRootFrameForTest(t, st, 100_000)

	data := []byte{0xde, 0xad, 0xbe, 0xef}
	frame.Memory.Resize(uint64(len(data)))
	frame.Memory.Store(0, data)

	require.NoError(t, frame.Stack.PushUint128(uint64(len(data)))) // size
	require.NoError(t, frame.Stack.PushUint128(0))                 // offset

	newTestSystemOps(evm).ExecReturn(frame)

	require.True(t, frame.Stopped)
	require.False(t, frame.Reverted)
	require.Equal(t, data, frame.ReturnData)
}

func TestExecRevertHaltsRevertedWithMemoryRangeAndPreservesGas(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	frame := newRootFrameForTest(t, st, 100_000)

	data := []byte{0x01, 0x02}
	frame.Memory.Resize(uint64(len(data)))
	frame.Memory.Store(0, data)

	require.NoError(t, frame.Stack.PushUint128(uint64(len(data))))
	require.NoError(t, frame.Stack.PushUint128(0))

	preGas := frame.GasLeft
	newTestSystemOps(evm).ExecRevert(frame)

	require.True(t, frame.Reverted)
	require.Equal(t, data, frame.ReturnData)
	require.Less(t, frame.GasLeft, preGas, "memory expansion is still charged")
	require.Greater(t, frame.GasLeft, uint64(0), "REVERT does not burn remaining gas")
}

func TestExecRevertEmptyRangeCostsNoGas(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	frame := newRootFrameForTest(t, st, 100_000)

	require.NoError(t, frame.Stack.PushUint128(0))
	require.NoError(t, frame.Stack.PushUint128(0))

	preGas := frame.GasLeft
	newTestSystemOps(evm).ExecRevert(frame)

	require.True(t, frame.Reverted)
	require.Empty(t, frame.ReturnData)
	require.Equal(t, preGas, frame.GasLeft)
}

func TestExecInvalidBurnsAllGasAndReverts(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	frame := newRootFrameForTest(t, st, 100_000)

	newTestSystemOps(evm).ExecInvalid(frame)

	require.True(t, frame.Reverted)
	require.Equal(t, uint64(0), frame.GasLeft)
	require.Nil(t, frame.ReturnData)
}

func TestExecSelfDestructRejectsUnderReadOnly(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	frame := newRootFrameForTest(t, st, 100_000)
	frame.Message.ReadOnly = true

	err := newTestSystemOps(evm).ExecSelfDestruct(frame)
	require.NoError(t, err)
	require.True(t, frame.Reverted)
}

func TestExecSelfDestructTransfersBalanceToBeneficiary(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	selfAddr := testSelfEvmAddr(t)
	st.SetAccount(selfAddr, &state.Account{Balance: uint256.NewInt(500), Storage: map[uint256.Int]uint256.Int{}})

	beneficiary := mustHexAddr(t, "8888888888888888888888888888888888888888")

	frame := newRootFrameForTest(t, st, 100_000)
	require.NoError(t, frame.Stack.Push(WordFromAddress(beneficiary)))

	err := newTestSystemOps(evm).ExecSelfDestruct(frame)
	require.NoError(t, err)
	require.True(t, frame.Stopped)

	require.True(t, frame.State.GetAccount(selfAddr).Balance.IsZero())
	require.True(t, frame.State.GetAccount(beneficiary).Balance.Eq(uint256.NewInt(500)))
	require.True(t, frame.State.GetAccount(selfAddr).Destructed)
}

func TestExecSelfDestructToSelfZeroesBalance(t *testing.T) {
	evm := newTestEVM()
	st := state.New()
	selfAddr := testSelfEvmAddr(t)
	st.SetAccount(selfAddr, &state.Account{Balance: uint256.NewInt(500), Storage: map[uint256.Int]uint256.Int{}})

	frame := newRootFrameForTest(t, st, 100_000)
	require.NoError(t, frame.Stack.Push(WordFromAddress(selfAddr)))

	err := newTestSystemOps(evm).ExecSelfDestruct(frame)
	require.NoError(t, err)
	require.True(t, frame.Stopped)

	require.True(t, frame.State.GetAccount(selfAddr).Balance.IsZero(), "self-beneficiary destruct still zeroes its own balance")
	require.True(t, frame.State.GetAccount(selfAddr).Destructed)
}
