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
	"github.com/hashicorp/go-hclog"
)

// Keyboard is the input half of the console. KeyAvailable must never block.
type Keyboard interface {
	ReadChar() (byte, error)
	KeyAvailable() bool
}

// Console is the host I/O the machine delegates device access and trap
// routines to.
type Console interface {
	Keyboard
	WriteChar(c byte) error
	Flush() error
}

type Registers struct {
	General [8]uint16
	Program uint16
	Cond    Flag
}

type Memory struct {
	Cells [MEMORY_SIZE]uint16
}

type MachineState struct {
	Registers Registers
	Memory    Memory
}

// MachineDebugger observes execution. A non-nil error from Step stops Run.
type MachineDebugger interface {
	Step(mc *Machine) error
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Console  Console
	State    MachineState
	Debugger MachineDebugger
	Logger   hclog.Logger

	// Prompt is written by the IN trap before reading a character
	Prompt string

	// Cycles counts completed instruction fetches
	Cycles uint64

	// Address and value of the most recently fetched instruction
	LastAddr        uint16
	LastInstruction uint16

	halted bool
}
