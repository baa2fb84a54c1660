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


package machine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lassandro/lc3vm/pkg/machine"
)

func TestSetFlagsFrom(t *testing.T) {
	assert := assert.New(t)

	var reg machine.Registers

	for _, value := range []uint16{0x0000, 0x0001, 0x7FFF, 0x8000, 0xFFFF, 0x1234} {
		reg.SetFlagsFrom(value)

		flags := reg.Flags()
		assert.Contains(
			[]machine.Flag{machine.FLAG_POS, machine.FLAG_ZERO, machine.FLAG_NEG},
			flags,
		)

		switch {
		case value == 0:
			assert.Equal(machine.FLAG_ZERO, flags)
		case int16(value) < 0:
			assert.Equal(machine.FLAG_NEG, flags)
		default:
			assert.Equal(machine.FLAG_POS, flags)
		}
	}
}

func TestRegisterAccess(t *testing.T) {
	assert := assert.New(t)

	var reg machine.Registers

	for r := uint16(0); r < 8; r++ {
		reg.Write(r, 0x1000+r)
	}

	for r := uint16(0); r < 8; r++ {
		assert.Equal(0x1000+r, reg.Read(r))
	}

	reg.SetPC(0xBEEF)
	assert.Equal(uint16(0xBEEF), reg.PC())
}

func TestLoadImage(t *testing.T) {
	assert := assert.New(t)

	var mem machine.Memory
	words := []uint16{0x1111, 0x2222, 0x3333, 0x4444}

	assert.Equal(len(words), mem.LoadImage(0x3000, words))

	for i, word := range words {
		value, err := mem.Read(0x3000+uint16(i), nil)
		assert.NoError(err)
		assert.Equal(word, value)
	}

	for addr, value := range mem.Cells {
		if addr < 0x3000 || addr >= 0x3000+len(words) {
			if !assert.Zero(value, "memory %#04x", addr) {
				break
			}
		}
	}
}

func TestLoadImageEndOfMemory(t *testing.T) {
	assert := assert.New(t)

	var mem machine.Memory

	assert.Equal(2, mem.LoadImage(0xFFFE, []uint16{0xAAAA, 0xBBBB, 0xCCCC}))
	assert.Equal(uint16(0xAAAA), mem.Cells[0xFFFE])
	assert.Equal(uint16(0xBBBB), mem.Cells[0xFFFF])
	assert.Zero(mem.Cells[0x0000])
}

func TestDeviceWritesPassThrough(t *testing.T) {
	assert := assert.New(t)

	var mem machine.Memory

	for _, addr := range []uint16{
		machine.DEV_KBDR, machine.DEV_DSR, machine.DEV_DDR, machine.DEV_MCR,
	} {
		mem.Write(addr, 0x5A5A)

		value, err := mem.Read(addr, newTestConsole("x"))
		assert.NoError(err)
		assert.Equal(uint16(0x5A5A), value)
	}
}

type brokenKeyboard struct{}

var errBroken = errors.New("broken keyboard")

func (brokenKeyboard) ReadChar() (byte, error) { return 0, errBroken }
func (brokenKeyboard) KeyAvailable() bool     { return true }

func TestKeyboardStatusRead(t *testing.T) {
	assert := assert.New(t)

	var mem machine.Memory
	mem.Write(machine.DEV_KBSR, 0xFFFF)

	value, err := mem.Read(machine.DEV_KBSR, newTestConsole(""))
	assert.NoError(err)
	assert.Zero(value)

	value, err = mem.Read(machine.DEV_KBSR, newTestConsole("!"))
	assert.NoError(err)
	assert.Equal(machine.KBSR_READY, value)
	assert.Equal(uint16('!'), mem.Cells[machine.DEV_KBDR])

	value, err = mem.Read(machine.DEV_KBSR, nil)
	assert.NoError(err)
	assert.Zero(value)

	_, err = mem.Read(machine.DEV_KBSR, brokenKeyboard{})
	assert.ErrorIs(err, errBroken)
}
