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

package device

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ROM is a read-only, memory-mapped file-backed region. Its contents are
// mapped for the device's entire lifetime and never written back.
type ROM struct {
	ArrayDevice
}

// OpenROM maps path at base. The device's limit is the file size minus
// one, capped at 0xFFFFFFFA whatever base is; the mapping length is
// rounded up to a whole word so the last partial word reads zero-padded.
func OpenROM(base uint32, path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s for reading: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("cannot stat %s: %w", path, err)
	}
	size := uint64(info.Size())
	if size == 0 {
		return nil, fmt.Errorf("cannot map ROM %s: empty file", path)
	}
	if size >= 0xFFFFFFFB {
		size = 0xFFFFFFFB
	}
	limit := uint32(size - 1)

	buf, err := unix.Mmap(int(f.Fd()), 0, int((size+3)&^3), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("cannot map ROM %s: %w", path, err)
	}

	return &ROM{ArrayDevice: newArrayDevice(NewBase(base, limit), buf)}, nil
}

// Close unmaps the ROM's backing file. ROMs live for process lifetime in
// normal operation, so callers ordinarily never call this; it exists for
// the shadowing path and for tests that open and discard many ROMs.
func (r *ROM) Close() error {
	return unix.Munmap(r.buf)
}

// SetByte and SetWord are no-ops: ROM pages are mapped PROT_READ only, so
// writing through would fault. This shadows ArrayDevice's writers rather
// than going through the generic ReadOnly wrapper, so the type assertions
// the fast-path cache uses to recognize ROM as a raw word reader still
// see through to ArrayDevice's accessors.
func (r *ROM) SetByte(uint32, uint8)  {}
func (r *ROM) SetWord(uint32, uint32) {}
