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

// Package debugger implements the interactive single-step shell: a
// raw-mode (or plain) line editor, a whitespace tokenizer, and the
// r0-r7/byte/hword/word/break/delete/step/next/continue command set.
package debugger

import (
	"fmt"
	"os"

	"github.com/kylerbraun/srisc-emulator/internal/cpu"
	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

// Shell owns the line editor used across every debugger entry.
type Shell struct {
	editor *lineEditor
}

// New constructs a Shell. Its line editor probes stdin once; if stdin is
// a terminal it is switched into raw mode for the remainder of the
// process (restored by Close).
func New() *Shell {
	return &Shell{editor: newLineEditor()}
}

// Close restores stdin's terminal mode, if the Shell changed it.
func (s *Shell) Close() {
	s.editor.Close()
}

// Attach wires s into c as its single-step hook (internal/cpu's Shell
// function-value field), so internal/cpu never imports internal/debugger.
func (s *Shell) Attach(c *cpu.CPU) {
	c.Shell = s.Enter
}

// Enter is run by the CPU immediately before decoding the instruction at
// c.PC whenever single-step mode is active. It prints the current
// address and disassembly, then loops reading and dispatching commands
// until one of them leaves the shell.
func (s *Shell) Enter(c *cpu.CPU, inst uint32) {
	fmt.Fprintf(os.Stderr, "0x%x: %s\n", c.PC, isa.Format(inst))
	for {
		fmt.Fprint(os.Stderr, "> ")
		line, ok := s.editor.ReadLine()
		if !ok {
			return
		}
		tokens := Tokenize(line)
		if len(tokens) == 0 {
			continue
		}
		if dispatch(c, tokens[0], tokens[1:]) {
			return
		}
	}
}
