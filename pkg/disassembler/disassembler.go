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


// Package disassembler renders LC-3 machine words as assembly text.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/machine"
)

// Disassemble renders instruction as if it were fetched from addr. PC
// relative operands are shown as absolute targets.
func Disassemble(addr uint16, instruction uint16) string {
	pc := addr + 1
	dr := (instruction >> 9) & 0x7
	sr := (instruction >> 6) & 0x7
	offset9 := pc + encoding.SignExtend(instruction&0x1FF, 9)

	switch op := machine.Decode(instruction); op {
	case machine.OP_ADD, machine.OP_AND:
		if (instruction>>5)&0x1 == 1 {
			imm5 := encoding.Signed(encoding.SignExtend(instruction&0x1F, 5))
			return fmt.Sprintf("%v R%d, R%d, #%d", op, dr, sr, imm5)
		}

		return fmt.Sprintf("%v R%d, R%d, R%d", op, dr, sr, instruction&0x7)

	case machine.OP_NOT:
		return fmt.Sprintf("NOT R%d, R%d", dr, sr)

	case machine.OP_BR:
		var cond strings.Builder

		for i, c := range "nzp" {
			if (instruction>>(11-i))&0x1 == 1 {
				cond.WriteRune(c)
			}
		}

		if cond.Len() == 0 {
			return "NOP"
		}

		return fmt.Sprintf("BR%s x%04X", cond.String(), offset9)

	case machine.OP_JMP:
		if sr == 7 {
			return "RET"
		}

		return fmt.Sprintf("JMP R%d", sr)

	case machine.OP_JSR:
		if (instruction>>11)&0x1 == 1 {
			target := pc + encoding.SignExtend(instruction&0x7FF, 11)
			return fmt.Sprintf("JSR x%04X", target)
		}

		return fmt.Sprintf("JSRR R%d", sr)

	case machine.OP_LD, machine.OP_LDI, machine.OP_LEA,
		machine.OP_ST, machine.OP_STI:
		return fmt.Sprintf("%v R%d, x%04X", op, dr, offset9)

	case machine.OP_LDR, machine.OP_STR:
		offset6 := encoding.Signed(encoding.SignExtend(instruction&0x3F, 6))
		return fmt.Sprintf("%v R%d, R%d, #%d", op, dr, sr, offset6)

	case machine.OP_TRAP:
		vector := machine.TrapVector(encoding.ZeroExtend(instruction, 8))
		return fmt.Sprintf("TRAP x%02X (%v)", uint16(vector), vector)

	default:
		return fmt.Sprintf(".FILL x%04X", instruction)
	}
}
