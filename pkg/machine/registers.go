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

// General register indices are always masked to 3 bits by the decoder.

func (reg *Registers) Read(r uint16) uint16 {
	return reg.General[r&0x7]
}

func (reg *Registers) Write(r uint16, value uint16) {
	reg.General[r&0x7] = value
}

func (reg *Registers) PC() uint16 {
	return reg.Program
}

func (reg *Registers) SetPC(value uint16) {
	reg.Program = value
}

func (reg *Registers) Flags() Flag {
	return reg.Cond
}

// SetFlagsFrom selects the single condition flag matching the signed value.
func (reg *Registers) SetFlagsFrom(value uint16) {
	if value == 0 {
		reg.Cond = FLAG_ZERO
	} else if value>>15 == 1 {
		reg.Cond = FLAG_NEG
	} else {
		reg.Cond = FLAG_POS
	}
}

func (reg *Registers) Reset() {
	for i := range reg.General {
		reg.General[i] = 0x0000
	}

	reg.Program = PC_START
	reg.Cond = FLAG_ZERO
}
