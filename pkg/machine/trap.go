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

	"github.com/lassandro/lc3vm/pkg/encoding"
)

const DEFAULT_PROMPT = "Enter a character: "

// TRAP |1111    |0000   |trapvect8       | System call
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) trap(instruction uint16) error {
	vector := TrapVector(encoding.ZeroExtend(instruction, 8))

	mc.State.Registers.Write(7, mc.State.Registers.PC())

	var err error

	switch vector {
	case TRAP_GETC:
		err = mc.getc()
	case TRAP_OUT:
		err = mc.out()
	case TRAP_PUTS:
		err = mc.puts()
	case TRAP_IN:
		err = mc.in()
	case TRAP_PUTSP:
		err = mc.putsp()
	case TRAP_HALT:
		mc.log().Debug("halt", "pc", fmt.Sprintf("%#04x", mc.State.Registers.PC()-1))
		mc.halted = true
	default:
		return &ErrTrapVector{
			Addr:   mc.State.Registers.PC() - 1,
			Vector: vector,
		}
	}

	var flushErr error

	if mc.Console != nil {
		flushErr = mc.Console.Flush()
	}

	if err != nil {
		return fmt.Errorf("%s %v: %w", f("trap"), vector, err)
	}

	return flushErr
}

func (mc *Machine) console() (Console, error) {
	if mc.Console == nil {
		return nil, ErrNoConsole
	}

	return mc.Console, nil
}

func (mc *Machine) getc() error {
	console, err := mc.console()

	if err != nil {
		return err
	}

	key, err := console.ReadChar()

	if err != nil {
		return err
	}

	mc.State.Registers.Write(0, uint16(key))

	return nil
}

func (mc *Machine) out() error {
	console, err := mc.console()

	if err != nil {
		return err
	}

	return console.WriteChar(byte(mc.State.Registers.Read(0)))
}

func (mc *Machine) puts() error {
	console, err := mc.console()

	if err != nil {
		return err
	}

	for addr := mc.State.Registers.Read(0); ; addr++ {
		value, err := mc.read(addr)

		if err != nil {
			return err
		} else if value == 0 {
			return nil
		}

		if err := console.WriteChar(byte(value)); err != nil {
			return err
		}
	}
}

func (mc *Machine) in() error {
	console, err := mc.console()

	if err != nil {
		return err
	}

	for _, c := range []byte(mc.Prompt) {
		if err := console.WriteChar(c); err != nil {
			return err
		}
	}

	if err := console.Flush(); err != nil {
		return err
	}

	key, err := console.ReadChar()

	if err != nil {
		return err
	}

	mc.State.Registers.Write(0, uint16(key))

	return console.WriteChar(key)
}

// Each word packs two characters, low byte first. A zero high byte ends
// the string after its low byte.
func (mc *Machine) putsp() error {
	console, err := mc.console()

	if err != nil {
		return err
	}

	for addr := mc.State.Registers.Read(0); ; addr++ {
		value, err := mc.read(addr)

		if err != nil {
			return err
		} else if value == 0 {
			return nil
		}

		if err := console.WriteChar(byte(value & 0xFF)); err != nil {
			return err
		}

		if value>>8 == 0 {
			return nil
		}

		if err := console.WriteChar(byte(value >> 8)); err != nil {
			return err
		}
	}
}
