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
	"errors"

	"golang.org/x/sys/unix"
)

// MaxMemoryLimit is the largest limit a Memory device may carry: it
// leaves room for a word access starting at the last byte without the
// offset arithmetic overflowing uint32.
const MaxMemoryLimit = 0xFFFFFFFB

// Memory is an owning, zero-initialized, heap-backed read/write region.
// Its backing allocation is rounded up to the host page size.
type Memory struct {
	ArrayDevice
}

// NewMemory allocates a Memory device covering [base, base+limit].
func NewMemory(base, limit uint32) (*Memory, error) {
	if limit > MaxMemoryLimit {
		return nil, errors.New("limit too large")
	}
	size := pageRound(uint64(limit) + 1)
	return &Memory{ArrayDevice: newArrayDevice(NewBase(base, limit), make([]byte, size))}, nil
}

func pageRound(n uint64) uint64 {
	page := uint64(unix.Getpagesize())
	return (n + page - 1) / page * page
}
