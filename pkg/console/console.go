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


//go:build linux || darwin || freebsd || netbsd || openbsd

// Package console connects the machine to the host terminal.
package console

import (
	"io"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lassandro/lc3vm/pkg/machine"
)

// New returns a console reading keys from in and writing to out.
func New(in *os.File, out io.Writer) *machine.DeviceHandler {
	dh := machine.NewDeviceHandler(in, out)
	dh.Poll = Poller(in)
	return dh
}

// Poller reports whether file has input ready, without blocking.
func Poller(file *os.File) func() bool {
	fd := int(file.Fd())

	return func() bool {
		var readfds unix.FdSet
		readfds.Set(fd)

		timeout := unix.NsecToTimeval(0)

		n, err := unix.Select(fd+1, &readfds, nil, nil, &timeout)
		if err != nil {
			return false
		}

		return n > 0
	}
}

// Terminal switches an input terminal out of canonical mode for the
// duration of a run.
type Terminal struct {
	file    *os.File
	restore unix.Termios
	raw     bool
}

func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// EnterRaw disables line buffering and echo. It does nothing if file is not
// a terminal.
func EnterRaw(file *os.File) (*Terminal, error) {
	t := &Terminal{file: file}

	if !IsTerminal(file) {
		return t, nil
	}

	if err := termios.Tcgetattr(file.Fd(), &t.restore); err != nil {
		return nil, err
	}

	state := t.restore
	state.Lflag &^= unix.ICANON | unix.ECHO

	if err := termios.Tcsetattr(file.Fd(), termios.TCSANOW, &state); err != nil {
		return nil, err
	}

	t.raw = true

	return t, nil
}

// Restore puts the terminal back the way EnterRaw found it.
func (t *Terminal) Restore() error {
	if t == nil || !t.raw {
		return nil
	}

	t.raw = false

	return termios.Tcsetattr(t.file.Fd(), termios.TCSANOW, &t.restore)
}
