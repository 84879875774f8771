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

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

// memOpt is one -m/--memory BASE,LIMIT argument.
type memOpt struct {
	base, limit uint32
}

// romOpt is one -r/--rom BASE,PATH argument.
type romOpt struct {
	base uint32
	path string
}

// config is the fully parsed command line, ready to build a World from.
type config struct {
	stdioBase   uint32
	haveStdio   bool
	ticksBase   uint32
	haveTicks   bool
	memories    []memOpt
	roms        []romOpt
	breakpoints []uint32
}

var errBadNumber = errors.New("bad number")

// hexValue parses a single hexadecimal flag argument (optional 0x
// prefix) and records that the flag was seen.
type hexValue struct {
	val  *uint32
	seen *bool
}

func (h hexValue) String() string { return "" }

func (h hexValue) Set(s string) error {
	v, err := isa.ParseHex(s)
	if err != nil {
		return errBadNumber
	}
	*h.val = v
	*h.seen = true
	return nil
}

// repeatable implements flag.Value for an option that may be supplied
// multiple times, appending to a shared slice each time it is seen. The
// flag package has no built-in support for repeated options, so each one
// is registered under both its short and long name with a value like
// this.
type repeatable[T any] struct {
	values *[]T
	parse  func(string) (T, error)
}

func (r repeatable[T]) String() string { return "" }

func (r repeatable[T]) Set(s string) error {
	v, err := r.parse(s)
	if err != nil {
		return err
	}
	*r.values = append(*r.values, v)
	return nil
}

func parseMemOpt(s string) (memOpt, error) {
	baseStr, limitStr, ok := strings.Cut(s, ",")
	if !ok {
		return memOpt{}, errors.New("no comma in argument")
	}
	base, err := isa.ParseHex(baseStr)
	if err != nil {
		return memOpt{}, errBadNumber
	}
	limit, err := isa.ParseHex(limitStr)
	if err != nil {
		return memOpt{}, errBadNumber
	}
	return memOpt{base: base, limit: limit}, nil
}

func parseRomOpt(s string) (romOpt, error) {
	baseStr, path, ok := strings.Cut(s, ",")
	if !ok {
		return romOpt{}, errors.New("no comma in argument")
	}
	base, err := isa.ParseHex(baseStr)
	if err != nil {
		return romOpt{}, errBadNumber
	}
	return romOpt{base: base, path: path}, nil
}

// parseFlags parses args (the command line after the program name). Any
// diagnostic has already been printed by the flag package when an error
// is returned.
func parseFlags(args []string) (*config, error) {
	var cfg config

	fs := flag.NewFlagSet("emulate", flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }

	stdio := hexValue{val: &cfg.stdioBase, seen: &cfg.haveStdio}
	fs.Var(stdio, "s", "")
	fs.Var(stdio, "stdio", "")

	ticks := hexValue{val: &cfg.ticksBase, seen: &cfg.haveTicks}
	fs.Var(ticks, "t", "")
	fs.Var(ticks, "ticks", "")

	registerRepeatable(fs, "m", "memory", &cfg.memories, parseMemOpt)
	registerRepeatable(fs, "r", "rom", &cfg.roms, parseRomOpt)
	registerRepeatable(fs, "b", "break", &cfg.breakpoints, isa.ParseHex)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func registerRepeatable[T any](fs *flag.FlagSet, short, long string, values *[]T, parse func(string) (T, error)) {
	v := repeatable[T]{values: values, parse: parse}
	fs.Var(v, short, "")
	fs.Var(v, long, "")
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintln(fs.Output(), `usage: emulate [-s BASE | --stdio BASE]
        [-m BASE,LIMIT | --memory BASE,LIMIT]*
        [-r BASE,PATH  | --rom BASE,PATH]*
        [-t BASE | --ticks BASE]
        [-b ADDR | --break ADDR]*`)
}
