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
	"testing"

	"github.com/kylerbraun/srisc-emulator/internal/device"
)

func TestZeroDeviceAbsorbsAccess(t *testing.T) {
	z := device.NewZero()
	if got := z.GetWord(0x12345678); got != 0 {
		t.Fatalf("GetWord = %#x, want 0", got)
	}
	z.SetWord(0x12345678, 0xFFFFFFFF)
	if got := z.GetWord(0x12345678); got != 0 {
		t.Fatalf("write to zero device should not stick, GetWord = %#x", got)
	}
	if z.Limit() != 0xFFFFFFFF {
		t.Fatalf("Limit() = %#x, want 0xffffffff", z.Limit())
	}
}

func TestTicksMonotonicAndReadOnly(t *testing.T) {
	ticks := device.NewTicks(0)
	a := ticks.GetWord(0)
	ticks.SetWord(0, 0) // no-op: read-only
	b := ticks.GetWord(0)
	if b < a {
		t.Fatalf("ticks went backwards: %d then %d", a, b)
	}
}
