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

	"github.com/lassandro/lc3vm/pkg/translate"
)

var f = translate.From

var (
	ErrHalted      = errors.New(f("machine halted"))
	ErrNoConsole   = errors.New(f("no console attached"))
	ErrInvalidOp   = errors.New(f("invalid opcode"))
	ErrInvalidTrap = errors.New(f("invalid trap vector"))
)

// ErrOpcode reports a fetched instruction in one of the reserved opcode
// slots.
type ErrOpcode struct {
	Addr        uint16
	Instruction uint16
}

func (err *ErrOpcode) Error() string {
	return f(
		"%#04x: bad opcode %v (%#04x)",
		err.Addr, Decode(err.Instruction), err.Instruction,
	)
}

func (err *ErrOpcode) Unwrap() error {
	return ErrInvalidOp
}

type ErrTrapVector struct {
	Addr   uint16
	Vector TrapVector
}

func (err *ErrTrapVector) Error() string {
	return f("%#04x: bad trap vector %#02x", err.Addr, uint16(err.Vector))
}

func (err *ErrTrapVector) Unwrap() error {
	return ErrInvalidTrap
}
