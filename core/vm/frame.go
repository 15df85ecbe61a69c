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
	"github.com/ClementWalter/kakarot/core/vm/state"
)

// Message is the immutable call/create request a Frame executes.
type Message struct {
	Bytecode []byte
	Calldata []byte
	Value    *Word
	GasPrice *Word
	Origin   common.Address
	Parent   *Frame
	Address  common.Address
	ReadOnly bool
	IsCreate bool
	Depth    uint16
}

// Frame is one activation record of the interpreter: a program counter,
// its own Stack and Memory, the state overlay it exclusively owns, and the
// terminal flags SystemOps dispatch sets on halt. A Frame exclusively owns
// its Stack, Memory, and State; the only link back to the caller is
// Message.Parent, a pointer to the caller's live Frame set at construction
// time. core/vm never writes through it; FinalizeParent receives the
// parent from the driver loop and updates it in place.
type Frame struct {
	State   *state.Overlay
	Message *Message

	Stack  *Stack
	Memory *Memory

	ProgramCounter uint64
	GasLeft        uint64
	ReturnData     []byte

	Stopped  bool
	Reverted bool
}

// NewFrame constructs a running Frame for message, with gasLimit as its
// starting gas_left, a fresh Stack and Memory, and a state overlay derived
// as a child copy of parentState (spec.md's init(message, gas_limit)).
func NewFrame(message *Message, gasLimit uint64, parentState *state.Overlay) *Frame {
	return &Frame{
		State:   parentState.Copy(),
		Message: message,
		Stack:   NewStack(),
		Memory:  NewMemory(),
		GasLeft: gasLimit,
	}
}

// Halted reports whether the frame has reached a terminal state.
func (f *Frame) Halted() bool { return f.Stopped || f.Reverted }

// Halt sets the frame's terminal return data and outcome flag, matching
// spec.md's stop(frame, data, reverted).
func (f *Frame) Halt(data []byte, reverted bool) {
	f.ReturnData = data
	if reverted {
		f.Reverted = true
	} else {
		f.Stopped = true
	}
}

// UpdateState swaps in a new state overlay. The finalize paths in this
// package do not use it; they fold a child in with Overlay.Commit.
func (f *Frame) UpdateState(s *state.Overlay) { f.State = s }

// Success reports whether the root frame returned by execute() succeeded:
// the EVM-level mirror of spec.md's success = ¬reverted.
func (f *Frame) Success() bool { return !f.Reverted }
