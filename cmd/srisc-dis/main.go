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

// Command srisc-dis disassembles a raw binary file of 4-byte
// little-endian instruction words, writing one textual instruction per
// line.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/kylerbraun/srisc-emulator/internal/isa"
)

func init() {
	log.SetFlags(0)
	log.SetPrefix(filepath.Base(os.Args[0]) + ": ")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "not enough arguments")
		os.Exit(-1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Print(err)
		os.Exit(-2)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var buf [4]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			break
		}
		word := isa.Unlayout(buf)
		fmt.Fprintln(w, isa.Format(word))
	}
}
