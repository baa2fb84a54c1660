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


package debugger

import (
	"errors"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var (
	ErrBreakpoint  = errors.New(f("breakpoint"))
	ErrWatchSyntax = errors.New(f("watchpoint must be ADDR[:r|w|rw]"))
)

type WatchpointType uint

const (
	ReadWatch WatchpointType = 1 << iota
	WriteWatch

	ReadWriteWatch = ReadWatch | WriteWatch
)

func (wtype WatchpointType) String() string {
	switch wtype {
	case ReadWatch:
		return "R"
	case WriteWatch:
		return "W"
	case ReadWriteWatch:
		return "RW"
	default:
		return "?"
	}
}

type Watchpoint struct {
	Addr uint16
	Type WatchpointType
}

type Breakpoint struct {
	Addr uint16
}

type Debugger struct {
	Breakpoints []Breakpoint
	Watchpoints []Watchpoint

	// Condition stops execution whenever it evaluates truthy
	Condition *Condition

	// Trace logs every executed instruction at trace level
	Trace bool

	Logger hclog.Logger
}

// ErrBreak stops a run at Addr, the next instruction to execute.
type ErrBreak struct {
	Addr   uint16
	Reason string
}

func (err *ErrBreak) Error() string {
	return f("%s at %#04x", err.Reason, err.Addr)
}

func (err *ErrBreak) Unwrap() error {
	return ErrBreakpoint
}

// ParseBreakpoint decodes a hex address such as x3000.
func ParseBreakpoint(s string) (Breakpoint, error) {
	addr, err := encoding.DecodeHex(s)

	if err != nil {
		return Breakpoint{}, err
	}

	return Breakpoint{Addr: addr}, nil
}

// ParseWatchpoint decodes ADDR[:TYPE] where TYPE is r, w or rw (default).
func ParseWatchpoint(s string) (Watchpoint, error) {
	addrString, typeString, found := strings.Cut(s, ":")

	addr, err := encoding.DecodeHex(addrString)

	if err != nil {
		return Watchpoint{}, err
	}

	if !found {
		return Watchpoint{Addr: addr, Type: ReadWriteWatch}, nil
	}

	var wtype WatchpointType

	switch typeString {
	case "r", "read":
		wtype = ReadWatch
	case "w", "write":
		wtype = WriteWatch
	case "rw", "readwrite":
		wtype = ReadWriteWatch
	default:
		return Watchpoint{}, ErrWatchSyntax
	}

	return Watchpoint{Addr: addr, Type: wtype}, nil
}
