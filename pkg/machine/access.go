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
	"github.com/lassandro/lc3vm/pkg/encoding"
)

func (mc *Machine) pcOffset9(instruction uint16) uint16 {
	return mc.State.Registers.PC() + encoding.SignExtend(instruction&0x1FF, 9)
}

func (mc *Machine) baseOffset6(instruction uint16) uint16 {
	base := (instruction >> 6) & 0x7

	return mc.State.Registers.Read(base) +
		encoding.SignExtend(instruction&0x3F, 6)
}

func (mc *Machine) load(dest uint16, addr uint16) error {
	value, err := mc.read(addr)

	if err != nil {
		return err
	}

	mc.State.Registers.Write(dest, value)
	mc.State.Registers.SetFlagsFrom(value)

	return nil
}

// LD   |0010    |DR   |PCoffset9         | Load
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) ld(instruction uint16) error {
	return mc.load((instruction>>9)&0x7, mc.pcOffset9(instruction))
}

// LDI  |1010    |DR   |PCoffset9         | Load indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) ldi(instruction uint16) error {
	addr, err := mc.read(mc.pcOffset9(instruction))

	if err != nil {
		return err
	}

	return mc.load((instruction>>9)&0x7, addr)
}

// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) ldr(instruction uint16) error {
	return mc.load((instruction>>9)&0x7, mc.baseOffset6(instruction))
}

// ST   |0011    |SR   |PCoffset9         | Store
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) st(instruction uint16) {
	src := (instruction >> 9) & 0x7

	mc.write(mc.pcOffset9(instruction), mc.State.Registers.Read(src))
}

// STI  |1011    |SR   |PCoffset9         | Store indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) sti(instruction uint16) error {
	src := (instruction >> 9) & 0x7
	addr, err := mc.read(mc.pcOffset9(instruction))

	if err != nil {
		return err
	}

	mc.write(addr, mc.State.Registers.Read(src))

	return nil
}

// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) str(instruction uint16) {
	src := (instruction >> 9) & 0x7

	mc.write(mc.baseOffset6(instruction), mc.State.Registers.Read(src))
}
