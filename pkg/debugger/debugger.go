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

	"github.com/hashicorp/go-hclog"

	"github.com/lassandro/lc3vm/pkg/disassembler"
	"github.com/lassandro/lc3vm/pkg/machine"
)

func (dbg *Debugger) log() hclog.Logger {
	if dbg.Logger == nil {
		return hclog.NewNullLogger()
	}

	return dbg.Logger
}

func (dbg *Debugger) Step(mc *machine.Machine) error {
	pc := mc.State.Registers.PC()

	if dbg.Trace {
		dbg.log().Trace(
			disassembler.Disassemble(mc.LastAddr, mc.LastInstruction),
			"addr", fmt.Sprintf("%#04x", mc.LastAddr),
			"regs", FormatRegisters(&mc.State.Registers),
		)
	}

	if mc.Halted() {
		return nil
	}

	for _, breakpoint := range dbg.Breakpoints {
		if pc == breakpoint.Addr {
			return &ErrBreak{Addr: pc, Reason: f("breakpoint")}
		}
	}

	if dbg.Condition != nil {
		hit, err := dbg.Condition.Eval(mc)

		if err != nil {
			return err
		} else if hit {
			return &ErrBreak{Addr: pc, Reason: dbg.Condition.String()}
		}
	}

	return nil
}

func (dbg *Debugger) Read(addr uint16, mc *machine.Machine) {
	dbg.watch(addr, ReadWatch, mc)
}

func (dbg *Debugger) Write(addr uint16, mc *machine.Machine) {
	dbg.watch(addr, WriteWatch, mc)
}

func (dbg *Debugger) watch(addr uint16, wtype WatchpointType, mc *machine.Machine) {
	for _, watchpoint := range dbg.Watchpoints {
		if watchpoint.Addr != addr || watchpoint.Type&wtype == 0 {
			continue
		}

		dbg.log().Debug(
			"watchpoint",
			"access", wtype.String(),
			"addr", fmt.Sprintf("%#04x", addr),
			"value", fmt.Sprintf("%#04x", mc.State.Memory.Cells[addr]),
			"pc", fmt.Sprintf("%#04x", mc.LastAddr),
		)

		break
	}
}

// FormatRegisters renders the register file on one line.
func FormatRegisters(reg *machine.Registers) string {
	return fmt.Sprintf(
		"R0=%04X R1=%04X R2=%04X R3=%04X R4=%04X R5=%04X R6=%04X R7=%04X PC=%04X CC=%v",
		reg.General[0], reg.General[1], reg.General[2], reg.General[3],
		reg.General[4], reg.General[5], reg.General[6], reg.General[7],
		reg.Program, reg.Cond,
	)
}
