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

type Flag uint16

const (
	FLAG_POS  Flag = 1 << 0
	FLAG_ZERO Flag = 1 << 1
	FLAG_NEG  Flag = 1 << 2
)

type TrapVector uint16

const (
	TRAP_GETC  TrapVector = 0x20
	TRAP_OUT   TrapVector = 0x21
	TRAP_PUTS  TrapVector = 0x22
	TRAP_IN    TrapVector = 0x23
	TRAP_PUTSP TrapVector = 0x24
	TRAP_HALT  TrapVector = 0x25
)

const MEMSPACE_USER uint16 = 0x3000

const MEMORY_SIZE = 1 << 16

// Program execution begins at the start of user space
const PC_START = MEMSPACE_USER

const (
	DEV_KBSR uint16 = 0xFE00
	DEV_KBDR uint16 = 0xFE02
	DEV_DSR  uint16 = 0xFE04
	DEV_DDR  uint16 = 0xFE06
	DEV_MCR  uint16 = 0xFFFE
)

// Status register bit signalling a pending keyboard character
const KBSR_READY uint16 = 1 << 15

type Opcode uint16

const (
	OP_BR   Opcode = 0b0000
	OP_ADD  Opcode = 0b0001
	OP_LD   Opcode = 0b0010
	OP_ST   Opcode = 0b0011
	OP_JSR  Opcode = 0b0100
	OP_AND  Opcode = 0b0101
	OP_LDR  Opcode = 0b0110
	OP_STR  Opcode = 0b0111
	OP_RTI  Opcode = 0b1000
	OP_NOT  Opcode = 0b1001
	OP_LDI  Opcode = 0b1010
	OP_STI  Opcode = 0b1011
	OP_JMP  Opcode = 0b1100
	OP_RES  Opcode = 0b1101
	OP_LEA  Opcode = 0b1110
	OP_TRAP Opcode = 0b1111
)

var opcodeNames = [16]string{
	"BR", "ADD", "LD", "ST", "JSR", "AND", "LDR", "STR",
	"RTI", "NOT", "LDI", "STI", "JMP", "RES", "LEA", "TRAP",
}

func (op Opcode) String() string {
	return opcodeNames[op&0xF]
}

var trapNames = map[TrapVector]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

func (vec TrapVector) String() string {
	if name, ok := trapNames[vec]; ok {
		return name
	}

	return "UNKNOWN"
}

func (flag Flag) String() string {
	switch flag {
	case FLAG_POS:
		return "P"
	case FLAG_ZERO:
		return "Z"
	case FLAG_NEG:
		return "N"
	default:
		return "?"
	}
}

// Decode splits an instruction into its opcode; the remaining 12 bits are
// operand fields interpreted per opcode.
func Decode(instruction uint16) Opcode {
	return Opcode(instruction >> 12)
}
