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

// The ALU and control-flow unit only touches the register file.

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) add(instruction uint16) {
	dest := (instruction >> 9) & 0x7
	src1 := (instruction >> 6) & 0x7

	reg.Write(dest, reg.Read(src1)+reg.operand(instruction))
	reg.SetFlagsFrom(reg.Read(dest))
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) and(instruction uint16) {
	dest := (instruction >> 9) & 0x7
	src1 := (instruction >> 6) & 0x7

	reg.Write(dest, reg.Read(src1)&reg.operand(instruction))
	reg.SetFlagsFrom(reg.Read(dest))
}

// Second operand of ADD and AND: imm5 when bit 5 is set, else SR2.
func (reg *Registers) operand(instruction uint16) uint16 {
	if (instruction>>5)&0x1 == 1 {
		return encoding.SignExtend(instruction&0x1F, 5)
	}

	return reg.Read(instruction & 0x7)
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) not(instruction uint16) {
	dest := (instruction >> 9) & 0x7
	src := (instruction >> 6) & 0x7

	reg.Write(dest, ^reg.Read(src))
	reg.SetFlagsFrom(reg.Read(dest))
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) br(instruction uint16) {
	mask := Flag((instruction >> 9) & 0x7)

	if mask&reg.Flags() != 0 {
		reg.SetPC(reg.PC() + encoding.SignExtend(instruction&0x1FF, 9))
	}
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) jmp(instruction uint16) {
	base := (instruction >> 6) & 0x7

	reg.SetPC(reg.Read(base))
}

// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) jsr(instruction uint16) {
	// Read the base before linking so JSRR R7 jumps to the old R7
	target := reg.Read((instruction >> 6) & 0x7)
	link := reg.PC()

	if (instruction>>11)&0x1 == 1 {
		target = link + encoding.SignExtend(instruction&0x7FF, 11)
	}

	reg.Write(7, link)
	reg.SetPC(target)
}

// LEA  |1110    |DR   |PCoffset9         | Load effective address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (reg *Registers) lea(instruction uint16) {
	dest := (instruction >> 9) & 0x7

	reg.Write(dest, reg.PC()+encoding.SignExtend(instruction&0x1FF, 9))
	reg.SetFlagsFrom(reg.Read(dest))
}
