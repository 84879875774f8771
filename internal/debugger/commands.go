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
	"os"
	"strconv"

	"github.com/kylerbraun/srisc-emulator/internal/cpu"
	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

// dispatch runs one parsed command line against c and reports whether
// the shell should be left (s/step, n/next, c/continue all leave it).
func dispatch(c *cpu.CPU, cmd string, args []string) (leave bool) {
	if reg, ok := registerIndex(cmd); ok {
		printNum(c.R[reg])
		return false
	}

	switch cmd {
	case "byte", "hword", "word":
		printMemory(c, cmd, args)
	case "b", "break":
		addBreak(c, args)
	case "d", "delete":
		deleteBreak(c, args)
	case "s", "step":
		c.ForceStep = true
		return true
	case "n", "next":
		c.ForceStep = false
		c.AddOneShot(c.PC + 4)
		return true
	case "c", "continue":
		c.ForceStep = false
		return true
	default:
		fmt.Fprintf(os.Stderr, "unknown debugger command: %s\n", cmd)
	}
	return false
}

func printNum(num uint32) {
	fmt.Fprintf(os.Stderr, "0x%x (%d)\n", num, num)
}

// registerIndex recognizes r0..r7.
func registerIndex(cmd string) (int, bool) {
	if len(cmd) != 2 || cmd[0] != 'r' {
		return 0, false
	}
	n, err := strconv.Atoi(cmd[1:])
	if err != nil || n < 0 || n > 7 {
		return 0, false
	}
	return n, true
}

// argNum parses the first argument as an unsigned number accepting the C
// integer literal forms. It reports failures itself so every command
// shares the same diagnostics.
func argNum(args []string) (uint32, bool) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "not enough arguments")
		return 0, false
	}
	n, err := isa.ParseNumber(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad number: %s\n", args[0])
		return 0, false
	}
	return n, true
}

// printMemory implements byte/hword/word as a single read-and-mask path:
// all three read the full word at addr and mask it to 8/16/32 bits,
// rather than using distinct byte/halfword accessors.
func printMemory(c *cpu.CPU, cmd string, args []string) {
	addr, ok := argNum(args)
	if !ok {
		return
	}
	word := c.World.Dispatch.ReadWord(addr)
	switch cmd {
	case "byte":
		word &= 0xFF
	case "hword":
		word &= 0xFFFF
	}
	printNum(word)
}

func addBreak(c *cpu.CPU, args []string) {
	if addr, ok := argNum(args); ok {
		c.AddBreakpoint(addr)
	}
}

func deleteBreak(c *cpu.CPU, args []string) {
	if id, ok := argNum(args); ok {
		c.RemoveBreakpoint(int(int32(id)))
	}
}
