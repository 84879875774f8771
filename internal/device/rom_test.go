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

package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kylerbraun/srisc-emulator/internal/device"
)

func writeROMFile(t *testing.T, contents []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestROMReadsBackingFile(t *testing.T) {
	path := writeROMFile(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	rom, err := device.OpenROM(0x1000, path)
	if err != nil {
		t.Fatal(err)
	}
	defer rom.Close()

	if rom.Limit() != 7 {
		t.Fatalf("Limit() = %d, want 7", rom.Limit())
	}
	if got := rom.GetWord(0); got != 0x04030201 {
		t.Fatalf("GetWord(0) = %#x, want 0x04030201", got)
	}
	if got := rom.GetWord(4); got != 0x08070605 {
		t.Fatalf("GetWord(4) = %#x, want 0x08070605", got)
	}
}

// A file whose size is not a word multiple still reads its final partial
// word, zero-extended.
func TestROMPartialLastWord(t *testing.T) {
	path := writeROMFile(t, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF})
	rom, err := device.OpenROM(0, path)
	if err != nil {
		t.Fatal(err)
	}
	defer rom.Close()

	if rom.Limit() != 5 {
		t.Fatalf("Limit() = %d, want 5", rom.Limit())
	}
	if got := rom.GetWord(4); got != 0x0000FFEE {
		t.Fatalf("GetWord(4) = %#x, want 0x0000ffee", got)
	}
	if got := rom.GetByte(5); got != 0xFF {
		t.Fatalf("GetByte(5) = %#x, want 0xff", got)
	}
}

func TestROMWritesIgnored(t *testing.T) {
	path := writeROMFile(t, []byte{0x01, 0x02, 0x03, 0x04})
	rom, err := device.OpenROM(0, path)
	if err != nil {
		t.Fatal(err)
	}
	defer rom.Close()

	rom.SetWord(0, 0xFFFFFFFF)
	rom.SetByte(1, 0xFF)
	if got := rom.GetWord(0); got != 0x04030201 {
		t.Fatalf("GetWord(0) after writes = %#x, want 0x04030201", got)
	}
}

func TestOpenROMMissingFile(t *testing.T) {
	if _, err := device.OpenROM(0, filepath.Join(t.TempDir(), "nonexistent")); err == nil {
		t.Fatal("OpenROM of a missing file should fail")
	}
}
