// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package machine

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

// New returns a reset machine attached to console.
func New(console Console) *Machine {
	mc := &Machine{
		Console: console,
		Logger:  hclog.NewNullLogger(),
		Prompt:  DEFAULT_PROMPT,
	}

	mc.Reset()

	return mc
}

// Reset zeroes registers and memory and rewinds the program counter.
func (mc *Machine) Reset() {
	mc.State.Registers.Reset()
	mc.State.Memory.Reset()
	mc.Cycles = 0
	mc.LastAddr = 0
	mc.LastInstruction = 0
	mc.halted = false
}

// LoadImage copies a program image into memory. Words past the end of the
// address space are dropped.
func (mc *Machine) LoadImage(image *encoding.Image) {
	n := mc.State.Memory.LoadImage(image.Origin, image.Words)

	if n < len(image.Words) {
		mc.log().Warn(
			"image truncated at end of memory",
			"origin", fmt.Sprintf("%#04x", image.Origin),
			"loaded", n,
			"dropped", len(image.Words)-n,
		)
	} else {
		mc.log().Debug(
			"image loaded",
			"origin", fmt.Sprintf("%#04x", image.Origin),
			"words", n,
		)
	}
}

func (mc *Machine) Halted() bool {
	return mc.halted
}

func (mc *Machine) log() hclog.Logger {
	if mc.Logger == nil {
		return hclog.NewNullLogger()
	}

	return mc.Logger
}

func (mc *Machine) keyboard() Keyboard {
	if mc.Console == nil {
		return nil
	}

	return mc.Console
}

func (mc *Machine) read(addr uint16) (uint16, error) {
	value, err := mc.State.Memory.Read(addr, mc.keyboard())

	if err != nil {
		return 0, err
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	return value, nil
}

func (mc *Machine) write(addr uint16, value uint16) {
	mc.State.Memory.Write(addr, value)

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}
}

// Step fetches, decodes and executes one instruction. Any error halts the
// machine.
func (mc *Machine) Step() error {
	if mc.halted {
		return ErrHalted
	}

	err := mc.execute()

	if err != nil {
		mc.halted = true
		mc.log().Error("fatal", "error", err)
		return err
	}

	if mc.Debugger != nil {
		return mc.Debugger.Step(mc)
	}

	return nil
}

func (mc *Machine) execute() error {
	addr := mc.State.Registers.PC()
	instruction, err := mc.read(addr)

	if err != nil {
		return err
	}

	mc.State.Registers.SetPC(addr + 1)
	mc.Cycles++
	mc.LastAddr = addr
	mc.LastInstruction = instruction

	reg := &mc.State.Registers

	switch Decode(instruction) {
	case OP_ADD:
		reg.add(instruction)
	case OP_AND:
		reg.and(instruction)
	case OP_NOT:
		reg.not(instruction)
	case OP_BR:
		reg.br(instruction)
	case OP_JMP:
		reg.jmp(instruction)
	case OP_JSR:
		reg.jsr(instruction)
	case OP_LEA:
		reg.lea(instruction)
	case OP_LD:
		return mc.ld(instruction)
	case OP_LDI:
		return mc.ldi(instruction)
	case OP_LDR:
		return mc.ldr(instruction)
	case OP_ST:
		mc.st(instruction)
	case OP_STI:
		return mc.sti(instruction)
	case OP_STR:
		mc.str(instruction)
	case OP_TRAP:
		return mc.trap(instruction)

	// RTI  |1000    |000000000000            | Return from interrupt
	// RES  |1101    |                        | Reserved (illegal)
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	case OP_RTI, OP_RES:
		return &ErrOpcode{Addr: addr, Instruction: instruction}
	}

	return nil
}

// Run steps the machine until it halts. It returns nil after a HALT trap and
// the fatal error otherwise.
func (mc *Machine) Run() error {
	for !mc.halted {
		if err := mc.Step(); err != nil {
			return err
		}
	}

	return nil
}
