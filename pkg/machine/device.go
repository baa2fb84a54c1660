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
	"bufio"
	"io"
)

// DeviceHandler is a Console over buffered streams. Poll reports whether the
// underlying keyboard stream has input ready without blocking; with no Poll
// only already-buffered input counts as available.
type DeviceHandler struct {
	Keyboard *bufio.Reader
	Display  *bufio.Writer
	Poll     func() bool
}

// NewDeviceHandler wraps keyboard and display in buffered streams.
func NewDeviceHandler(keyboard io.Reader, display io.Writer) *DeviceHandler {
	return &DeviceHandler{
		Keyboard: bufio.NewReader(keyboard),
		Display:  bufio.NewWriter(display),
	}
}

func (dh *DeviceHandler) ReadChar() (byte, error) {
	if dh.Keyboard == nil {
		return 0, io.EOF
	}

	return dh.Keyboard.ReadByte()
}

func (dh *DeviceHandler) KeyAvailable() bool {
	if dh.Keyboard == nil {
		return false
	}

	if dh.Keyboard.Buffered() > 0 {
		return true
	}

	return dh.Poll != nil && dh.Poll()
}

func (dh *DeviceHandler) WriteChar(c byte) error {
	if dh.Display == nil {
		return nil
	}

	return dh.Display.WriteByte(c)
}

func (dh *DeviceHandler) Flush() error {
	if dh.Display == nil {
		return nil
	}

	return dh.Display.Flush()
}
