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

import "time"

// ticksDevice is a 4-byte read-only counter of monotonic milliseconds,
// modulo 2^32, for measuring duration rather than telling time. An
// aligned read at offset 0 returns the clock value directly; an unaligned
// read rotates it by the offset, since there is no second device to
// shift-and-combine with inside a 4-byte region.
type ticksDevice struct {
	devBase
	epoch time.Time
}

// NewTicks returns a Ticks device at base, wrapped read-only.
func NewTicks(base uint32) Device {
	return ReadOnly(&ticksDevice{devBase: NewBase(base, 3), epoch: time.Now()})
}

func (t *ticksDevice) millis() uint32 {
	return uint32(time.Since(t.epoch).Milliseconds())
}

func (t *ticksDevice) GetByte(off uint32) uint8 {
	if !t.InRange(off) {
		return 0
	}
	return uint8(t.millis() >> ((off & 3) * 8))
}

func (t *ticksDevice) SetByte(uint32, uint8) {}

func (t *ticksDevice) getWordImpl(off uint32) uint32 {
	bits := (off & 3) * 8
	v := t.millis()
	return v>>bits | v<<(32-bits)
}

func (t *ticksDevice) GetWord(off uint32) uint32 { return GetWord(t, off) }
func (t *ticksDevice) SetWord(uint32, uint32)    {}
