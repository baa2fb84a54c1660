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
	"errors"
	"fmt"
	"io"
)

// Read returns the word at addr. Reading the keyboard status register first
// polls kb and latches a pending character into the keyboard data register.
func (mem *Memory) Read(addr uint16, kb Keyboard) (uint16, error) {
	if addr == DEV_KBSR {
		if err := mem.pollKeyboard(kb); err != nil {
			return 0, err
		}
	}

	return mem.Cells[addr], nil
}

func (mem *Memory) pollKeyboard(kb Keyboard) error {
	if kb == nil || !kb.KeyAvailable() {
		mem.Cells[DEV_KBSR] = 0
		return nil
	}

	key, err := kb.ReadChar()

	if errors.Is(err, io.EOF) {
		mem.Cells[DEV_KBSR] = 0
		return nil
	} else if err != nil {
		return fmt.Errorf("%s: %w", f("keyboard"), err)
	}

	mem.Cells[DEV_KBSR] = KBSR_READY
	mem.Cells[DEV_KBDR] = uint16(key)

	return nil
}

// Device addresses are not special-cased on write.
func (mem *Memory) Write(addr uint16, value uint16) {
	mem.Cells[addr] = value
}

// LoadImage copies words into memory starting at origin and returns how many
// were copied. Copying stops at the end of memory rather than wrapping.
func (mem *Memory) LoadImage(origin uint16, words []uint16) int {
	return copy(mem.Cells[origin:], words)
}

func (mem *Memory) Reset() {
	for i := range mem.Cells {
		mem.Cells[i] = 0x0000
	}
}
