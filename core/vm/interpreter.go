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
	"github.com/ClementWalter/kakarot/log"
)

// Opcodes this package owns. Every other opcode is out of scope: fetch,
// arithmetic, storage, and logging opcodes belong to the OpcodeRunner this
// package consumes as an external collaborator, per spec.md's framing of
// "the interpreter" as everything outside CALL/CREATE/halt handling.
const (
	opCreate       = 0xf0
	opCall         = 0xf1
	opCallCode     = 0xf2
	opReturn       = 0xf3
	opDelegateCall = 0xf4
	opCreate2      = 0xf5
	opStaticCall   = 0xfa
	opRevert       = 0xfd
	opInvalid      = 0xfe
	opSelfDestruct = 0xff
)

// IsSystemOp reports whether opcode is one of the CALL/CREATE/halting
// opcodes SystemOps dispatches, as opposed to one the injected OpcodeRunner
// must handle.
func IsSystemOp(opcode byte) bool {
	switch opcode {
	case opCreate, opCall, opCallCode, opReturn, opDelegateCall, opCreate2, opStaticCall, opRevert, opInvalid, opSelfDestruct:
		return true
	default:
		return false
	}
}

// OpcodeRunner executes exactly one non-system opcode against frame,
// mutating its Stack/Memory/State/ProgramCounter in place. This is the
// opcode dispatch table spec.md treats as external: core/vm never
// implements ADD, MLOAD, SLOAD, JUMP, or any opcode outside the
// CALL/CREATE/halt family.
type OpcodeRunner interface {
	Step(frame *Frame) error
}

// PrecompileSet resolves and executes precompiled contracts. CallHelper
// consults it before falling back to an ordinary account code lookup.
type PrecompileSet interface {
	IsPrecompile(addr common.EvmAddress) bool
	Run(addr common.EvmAddress, calldata []byte, value *Word, parent *Frame, gas uint64) (*Frame, error)
}

// HostAddressMapper computes the host-chain counterpart of an EVM address,
// the collaborator that gives every common.Address its Host half.
type HostAddressMapper func(common.EvmAddress) common.HostAddress

// BlockContext carries the block-scoped values opcodes outside this
// package's scope (NUMBER, TIMESTAMP, COINBASE, ...) would read; it is
// plumbed through untouched by core/vm's own system-operations logic.
type BlockContext struct {
	BlockNumber    uint64
	BlockTimestamp uint64
	Coinbase       common.EvmAddress
	GasLimit       uint64
}

// ChainRules toggles the fork-gated behaviors spec.md's Open Questions
// leave as explicit follow-ups (EIP-2929 access lists, EIP-6780
// SELFDESTRUCT-same-transaction semantics). Both default false: this
// engine implements the pre-EIP-2929/6780 behavior spec.md describes.
type ChainRules struct {
	EIP2929 bool
	EIP6780 bool
}

// Tracer is the frame-transition observer interface for debugging/telemetry,
// mirroring the teacher's EVMLogger. NullTracer is the zero-cost default.
// Execute stores Config.Tracer but does not call it.
type Tracer interface {
	CaptureEnter(kind string, from, to common.EvmAddress, input []byte, gas uint64, value *Word)
	CaptureExit(output []byte, gasUsed uint64, err error)
}

// NullTracer discards every event; it is the Config.Tracer default.
type NullTracer struct{}

func (NullTracer) CaptureEnter(string, common.EvmAddress, common.EvmAddress, []byte, uint64, *Word) {}
func (NullTracer) CaptureExit([]byte, uint64, error)                                                {}

// Config bundles the engine's ambient knobs, named and shaped the way the
// teacher's vm.Config groups NoRecursion/Debug/Tracer for its interpreter.
type Config struct {
	// NoRecursion is carried for embedders; the CALL/CREATE depth checks in
	// this package do not read it, so it does not stop child frames from
	// being spawned.
	NoRecursion bool
	Debug       bool
	Tracer      Tracer
	Rules       ChainRules
}

// EVM bundles the collaborators core/vm needs but does not implement
// itself: a keccak oracle, the host-chain address mapper, the precompile
// set, the non-system opcode dispatch table, and ambient config/metrics.
type EVM struct {
	Keccak      Keccak256
	HostMapper  HostAddressMapper
	Precompiles PrecompileSet
	Runner      OpcodeRunner
	Block       BlockContext
	Config      Config
	Metrics     *Metrics
	CodeCache   *CodeCache

	call   CallHelper
	create CreateHelper
}

// NewEVM constructs an EVM ready to Execute. runner may be nil only if the
// bytecode under execution consists entirely of system opcodes (tests);
// precompiles may be nil to disable precompile short-circuiting.
func NewEVM(keccak Keccak256, hostMapper HostAddressMapper, runner OpcodeRunner, precompiles PrecompileSet, block BlockContext, cfg Config) *EVM {
	if cfg.Tracer == nil {
		cfg.Tracer = NullTracer{}
	}
	return &EVM{
		Keccak:      keccak,
		HostMapper:  hostMapper,
		Precompiles: precompiles,
		Runner:      runner,
		Block:       block,
		Config:      cfg,
	}
}

// lookupCode returns the deployed code at addr, consulting evm.CodeCache
// first when one is configured.
func (evm *EVM) lookupCode(frame *Frame, addr common.EvmAddress) []byte {
	if evm.CodeCache != nil {
		if code, ok := evm.CodeCache.Get(addr); ok {
			return code
		}
	}
	code := frame.State.GetAccount(addr).Code
	if evm.CodeCache != nil && len(code) > 0 {
		evm.CodeCache.Set(addr, code)
	}
	return code
}

// frameLink tracks a live frame together with the dispatch kind that
// spawned it, so the driver loop knows whether to route a halted child
// through CallHelper.FinalizeParent or CreateHelper.FinalizeParent.
type frameLink struct {
	frame    *Frame
	isCreate bool
}

// Execute runs bytecode as a fresh top-level message call from origin,
// carrying value and calldata, bounded by gasLimit. It drives the
// push-down loop spec.md's Design Notes describe: pop the top frame,
// dispatch one opcode (system ops grow the stack by one frame; everything
// else delegates to Runner), and fold a halted frame back into its parent
// until only the root remains.
func (evm *EVM) Execute(origin common.Address, value *Word, bytecode, calldata []byte, gasLimit uint64) (*Frame, *Stack, *Memory, error) {
	root := NewFrame(&Message{
		Bytecode: bytecode,
		Calldata: calldata,
		Value:    value,
		GasPrice: NewWord(),
		Origin:   origin,
		Parent:   nil,
		Address:  origin,
		ReadOnly: false,
		IsCreate: false,
		Depth:    0,
	}, gasLimit, state.New())

	frames := []*frameLink{{frame: root}}

	if evm.Metrics != nil {
		evm.Metrics.FramesExecuted.Inc()
	}

	for len(frames) > 0 {
		top := frames[len(frames)-1]

		if top.frame.Halted() {
			frames = frames[:len(frames)-1]
			if len(frames) == 0 {
				break
			}
			parentLink := frames[len(frames)-1]
			var (
				newParent *Frame
				err       error
			)
			if top.isCreate {
				newParent, err = evm.create.FinalizeParent(evm, parentLink.frame, top.frame)
			} else {
				newParent, err = evm.call.FinalizeParent(parentLink.frame, top.frame)
			}
			if err != nil {
				log.Debug("finalize error", "err", err)
			}
			parentLink.frame = newParent
			continue
		}

		if top.frame.ProgramCounter >= uint64(len(top.frame.Message.Bytecode)) {
			top.frame.Halt(nil, false)
			continue
		}

		opcode := top.frame.Message.Bytecode[top.frame.ProgramCounter]

		if IsSystemOp(opcode) {
			child, isCreate, err := evm.dispatchSystemOp(top.frame, opcode)
			if err != nil {
				log.Debug("system op error", "err", err)
				top.frame.GasLeft = 0
				top.frame.Halt(nil, true)
				continue
			}
			if child != nil {
				frames = append(frames, &frameLink{frame: child, isCreate: isCreate})
				if evm.Metrics != nil {
					evm.Metrics.FramesExecuted.Inc()
					if isCreate {
						evm.Metrics.CreatesDispatched.WithLabelValues(opcodeLabel(opcode)).Inc()
					} else {
						evm.Metrics.CallsDispatched.WithLabelValues(opcodeLabel(opcode)).Inc()
					}
				}
			}
			continue
		}

		if evm.Runner == nil {
			return nil, nil, nil, ErrNoCompatibleInterpreter
		}
		if err := evm.Runner.Step(top.frame); err != nil {
			return nil, nil, nil, err
		}
	}

	if evm.Metrics != nil {
		evm.Metrics.GasUsed.Observe(float64(gasLimit - root.GasLeft))
	}

	return root, root.Stack, root.Memory, nil
}

// opcodeLabel renders a system opcode as a metrics label.
func opcodeLabel(opcode byte) string {
	switch opcode {
	case opCall:
		return "call"
	case opCallCode:
		return "callcode"
	case opDelegateCall:
		return "delegatecall"
	case opStaticCall:
		return "staticcall"
	case opCreate:
		return "create"
	case opCreate2:
		return "create2"
	default:
		return "unknown"
	}
}

// dispatchSystemOp routes opcode to SystemOps and reports whether the
// spawned child (if any) is a CREATE-family frame, for the loop's
// finalize routing.
func (evm *EVM) dispatchSystemOp(frame *Frame, opcode byte) (child *Frame, isCreate bool, err error) {
	ops := SystemOps{evm: evm}
	switch opcode {
	case opCall:
		child, err = ops.ExecCall(frame)
	case opCallCode:
		child, err = ops.ExecCallCode(frame)
	case opDelegateCall:
		child, err = ops.ExecDelegateCall(frame)
	case opStaticCall:
		child, err = ops.ExecStaticCall(frame)
	case opCreate:
		child, err = ops.ExecCreate(frame)
		isCreate = true
	case opCreate2:
		child, err = ops.ExecCreate2(frame)
		isCreate = true
	case opReturn:
		ops.ExecReturn(frame)
	case opRevert:
		ops.ExecRevert(frame)
	case opInvalid:
		ops.ExecInvalid(frame)
	case opSelfDestruct:
		err = ops.ExecSelfDestruct(frame)
	}
	return child, isCreate, err
}
