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
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/lassandro/lc3vm/pkg/machine"
)

// Condition is a Starlark expression over the register file, for example
// "PC == 0x3010 and R0 > 5". R0-R7, PC, COND, N, Z, P and CYCLES are
// predeclared.
type Condition struct {
	expr string
	opts syntax.FileOptions
}

// NewCondition compiles expr, rejecting syntax errors and unknown names.
// Evaluation errors surface from Eval.
func NewCondition(expr string) (*Condition, error) {
	cond := &Condition{expr: expr}
	env := bindings(machine.New(nil))

	if _, err := starlark.ExprFuncOptions(&cond.opts, "break-if", expr, env); err != nil {
		return nil, fmt.Errorf("%s %q: %w", f("condition"), expr, err)
	}

	return cond, nil
}

func (cond *Condition) String() string {
	return cond.expr
}

func (cond *Condition) Eval(mc *machine.Machine) (bool, error) {
	thread := starlark.Thread{Name: "break-if"}

	value, err := starlark.EvalOptions(&cond.opts, &thread, "break-if", cond.expr, bindings(mc))

	if err != nil {
		return false, fmt.Errorf("%s %q: %w", f("condition"), cond.expr, err)
	}

	return bool(value.Truth()), nil
}

func bindings(mc *machine.Machine) starlark.StringDict {
	reg := &mc.State.Registers

	env := starlark.StringDict{
		"PC":     starlark.MakeInt(int(reg.PC())),
		"COND":   starlark.MakeInt(int(reg.Flags())),
		"N":      starlark.Bool(reg.Flags() == machine.FLAG_NEG),
		"Z":      starlark.Bool(reg.Flags() == machine.FLAG_ZERO),
		"P":      starlark.Bool(reg.Flags() == machine.FLAG_POS),
		"CYCLES": starlark.MakeUint64(mc.Cycles),
	}

	for r := uint16(0); r < 8; r++ {
		env[fmt.Sprintf("R%d", r)] = starlark.MakeInt(int(reg.Read(r)))
	}

	return env
}
