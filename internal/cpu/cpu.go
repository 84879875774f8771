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

// Package cpu implements the fetch/decode/execute loop for the 20-opcode
// ISA described in internal/isa: register file, condition flags,
// breakpoint list and the hot-path bypass of the address dispatcher.
package cpu

import (
	"fmt"
	"os"

	"github.com/kylerbraun/srisc-emulator/internal/device"
	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

// ExitInvalidOpcode is the process exit code for a program that executes
// an invalid opcode (including a malformed CALL). There is no resumable
// trap.
const ExitInvalidOpcode = -2

// CPU holds the machine's execution state: eight general-purpose
// registers, the program counter, the Z/N/Cmp flags, and the breakpoint
// list that drives single-step entry.
type CPU struct {
	R  [8]uint32
	PC uint32

	Z   bool
	N   bool
	Cmp bool

	// ForceStep keeps single-step mode active independent of the
	// breakpoint list; the debugger's "step" command sets it, and
	// "continue"/"next" clear it.
	ForceStep bool

	World *device.World

	breakpoints []Breakpoint
	nextBPID    int

	// Shell, if non-nil, is invoked whenever single-step mode is active,
	// immediately before decoding the instruction at PC. A plain
	// function value (rather than an interface) keeps internal/cpu free
	// of any dependency on internal/debugger, so internal/debugger can
	// import internal/cpu one-directionally.
	Shell func(c *CPU, inst uint32)
}

// New returns a CPU with all registers, PC and flags zeroed, bound to
// world.
func New(world *device.World) *CPU {
	return &CPU{World: world, nextBPID: 1}
}

// fetch reads the word at addr, bypassing the dispatcher when addr's
// 4-byte window lies entirely within World.LargestReadable. It serves
// both instruction fetch and LOAD.
func (c *CPU) fetch(addr uint32) uint32 {
	if lr := c.World.LargestReadable; lr != nil {
		base, limit := lr.Base(), lr.Limit()
		if addr >= base && addr-base <= limit && limit-(addr-base) >= 3 {
			return lr.GetWordRaw(addr - base)
		}
	}
	return c.World.Dispatch.ReadWord(addr)
}

// storeWord writes word to addr, using the Memory fast path when addr's
// window lies entirely within World.LargestMemory.
func (c *CPU) storeWord(addr uint32, word uint32) {
	if lm := c.World.LargestMemory; lm != nil {
		base, limit := lm.Base(), lm.Limit()
		if addr >= base && addr-base <= limit && limit-(addr-base) >= 3 {
			lm.SetWordRaw(addr-base, word)
			return
		}
	}
	c.World.Dispatch.WriteWord(addr, word)
}

// Run executes instructions forever. The ISA has no halt instruction, so
// Run only terminates via os.Exit on an invalid opcode or external
// termination of the process.
func (c *CPU) Run() {
	for {
		c.Step()
	}
}

// Step runs a single iteration of the main loop: breakpoint check,
// fetch, optional shell entry, decode, execute, and the unconditional
// pc += 4.
func (c *CPU) Step() {
	singleStep := c.pollBreakpoints()

	word := c.fetch(c.PC)

	if singleStep && c.Shell != nil {
		c.Shell(c, word)
	}

	inst := isa.Decode(word)
	if !inst.Op.Valid() {
		fmt.Fprintln(os.Stderr, "invalid opcode")
		os.Exit(ExitInvalidOpcode)
	}

	c.execute(inst)
	c.PC += 4
}

func (c *CPU) execute(inst isa.Inst) {
	switch inst.Op {
	case isa.ADD:
		c.R[inst.Rd] = c.R[inst.Rs1] + c.R[inst.Rs2]
	case isa.SUB:
		c.R[inst.Rd] = c.R[inst.Rs1] - c.R[inst.Rs2]
	case isa.AND:
		c.R[inst.Rd] = c.R[inst.Rs1] & c.R[inst.Rs2]
	case isa.OR:
		c.R[inst.Rd] = c.R[inst.Rs1] | c.R[inst.Rs2]
	case isa.XOR:
		c.R[inst.Rd] = c.R[inst.Rs1] ^ c.R[inst.Rs2]
	case isa.NOT:
		c.R[inst.Rd] = ^c.R[inst.Rs1]
	case isa.LOAD:
		c.R[inst.Rd] = c.fetch(c.R[inst.Rs2] + uint32(inst.Imm))
	case isa.STORE:
		c.storeWord(c.R[inst.Rs2]+uint32(inst.Imm), c.R[inst.Rd])
	case isa.JUMP:
		c.PC += uint32(inst.Imm)
	case isa.BRANCH:
		if c.R[inst.Rs2] == 0 {
			c.PC += uint32(inst.Imm)
		}
	case isa.CMP:
		rs1, rs2 := c.R[inst.Rs1], c.R[inst.Rs2]
		c.Z = rs1 == rs2
		c.N = int32(rs1) < int32(rs2)
		c.Cmp = true
	case isa.BEQ:
		if c.branchTaken(inst.Rs2, c.Z, func(r uint32) bool { return r == 0 }) {
			c.PC += uint32(inst.Imm)
		}
	case isa.BNE:
		if c.branchTaken(inst.Rs2, !c.Z, func(r uint32) bool { return r != 0 }) {
			c.PC += uint32(inst.Imm)
		}
	case isa.BLT:
		if c.branchTaken(inst.Rs2, c.N, func(r uint32) bool { return int32(r) < 0 }) {
			c.PC += uint32(inst.Imm)
		}
	case isa.BGT:
		if c.branchTaken(inst.Rs2, !c.N && !c.Z, func(r uint32) bool { return int32(r) >= 0 }) {
			c.PC += uint32(inst.Imm)
		}
	case isa.LOADI:
		c.R[inst.Rd] = uint32(inst.LoadImm)
	case isa.CALL:
		if inst.Rs1 != 0 || inst.Rs2 != 0 || inst.Imm != 0 {
			fmt.Fprintln(os.Stderr, "invalid opcode")
			os.Exit(ExitInvalidOpcode)
		}
		c.PC = c.R[inst.Rd] - 4
	case isa.LOADI16:
		c.R[inst.Rd] = (c.R[inst.Rd] & 0xFFFF0000) | (uint32(inst.Imm) & 0xFFFF)
	case isa.LOADI16H:
		c.R[inst.Rd] = (c.R[inst.Rd] & 0xFFFF) | ((uint32(inst.Imm) & 0xFFFF) << 16)
	}
}

// branchTaken implements the dual-mode branch semantics: once any CMP
// has executed, branches test the corresponding flag; before that, they
// test rs2's value directly via regTest.
func (c *CPU) branchTaken(rs2Reg uint8, flagResult bool, regTest func(uint32) bool) bool {
	if c.Cmp {
		return flagResult
	}
	return regTest(c.R[rs2Reg])
}
