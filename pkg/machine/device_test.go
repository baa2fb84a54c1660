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
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lassandro/lc3vm/pkg/machine"
)

func TestDeviceHandler(t *testing.T) {
	assert := assert.New(t)

	var display bytes.Buffer
	dh := machine.NewDeviceHandler(strings.NewReader("ab"), &display)

	assert.False(dh.KeyAvailable())

	c, err := dh.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('a'), c)
	assert.True(dh.KeyAvailable())

	c, err = dh.ReadChar()
	assert.NoError(err)
	assert.Equal(byte('b'), c)

	_, err = dh.ReadChar()
	assert.ErrorIs(err, io.EOF)

	assert.NoError(dh.WriteChar('x'))
	assert.Empty(display.String())
	assert.NoError(dh.Flush())
	assert.Equal("x", display.String())
}

func TestDeviceHandlerPoll(t *testing.T) {
	assert := assert.New(t)

	polled := 0
	dh := machine.NewDeviceHandler(strings.NewReader("k"), io.Discard)
	dh.Poll = func() bool {
		polled++
		return true
	}

	assert.True(dh.KeyAvailable())
	assert.Equal(1, polled)

	mc := machine.New(dh)
	mc.State.Memory.Cells[0x3000] = 0b1010_000_000000000 // LDI R0, x3001
	mc.State.Memory.Cells[0x3001] = machine.DEV_KBSR

	assert.NoError(mc.Step())
	assert.Equal(machine.KBSR_READY, mc.State.Registers.Read(0))
	assert.Equal(uint16('k'), mc.State.Memory.Cells[machine.DEV_KBDR])
}

func TestDeviceHandlerDetached(t *testing.T) {
	assert := assert.New(t)

	var dh machine.DeviceHandler

	assert.False(dh.KeyAvailable())
	_, err := dh.ReadChar()
	assert.ErrorIs(err, io.EOF)
	assert.NoError(dh.WriteChar('x'))
	assert.NoError(dh.Flush())
}
