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

// Command emulate parses device options, builds a World, attaches the
// debugger shell, and runs the CPU until the guest program executes an
// invalid opcode.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/kylerbraun/srisc-emulator/internal/cpu"
	"github.com/kylerbraun/srisc-emulator/internal/debugger"
	"github.com/kylerbraun/srisc-emulator/internal/device"
)

const (
	exitBadOption = -1
	exitIOFailure = -3
)

func init() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
}

func emulate() int {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		return exitBadOption
	}

	// The zero device catches every access not claimed by a configured
	// device; later installs override it within their own ranges.
	world := device.NewWorld()
	world.Install(0, 0xFFFFFFFF, device.NewZero())

	for _, m := range cfg.memories {
		mem, err := device.NewMemory(m.base, m.limit)
		if err != nil {
			log.Print(err)
			return exitBadOption
		}
		world.Install(m.base, m.limit, mem)
	}

	for _, r := range cfg.roms {
		if err := installROM(world, r); err != nil {
			log.Print(err)
			return exitIOFailure
		}
	}

	if cfg.haveStdio {
		world.Install(cfg.stdioBase, 7, device.NewStdio(cfg.stdioBase))
	}
	if cfg.haveTicks {
		world.Install(cfg.ticksBase, 3, device.NewTicks(cfg.ticksBase))
	}

	c := cpu.New(world)
	for _, addr := range cfg.breakpoints {
		c.AddBreakpoint(addr)
	}

	shell := debugger.New()
	defer shell.Close()
	shell.Attach(c)

	c.Run()
	return 0
}

// installROM opens the ROM at r.path and either shadows it into an
// existing memory's backing buffer (when its whole range is managed by a
// single Memory device) or installs it as its own device.
func installROM(world *device.World, r romOpt) error {
	rom, err := device.OpenROM(r.base, r.path)
	if err != nil {
		return err
	}

	start := world.Dispatch.Lookup(r.base)
	end := world.Dispatch.Lookup(r.base + rom.Limit())
	if start == end {
		if mem, ok := start.(*device.Memory); ok {
			copy(mem.Contents()[r.base-mem.Base():], rom.Contents()[:rom.Limit()+1])
			return rom.Close()
		}
	}

	world.Install(r.base, rom.Limit(), rom)
	return nil
}

func main() {
	os.Exit(emulate())
}
