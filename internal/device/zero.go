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

// zeroDevice absorbs every access: reads always yield 0, writes are
// dropped. It is installed to cover [0, 0xFFFFFFFF] before any other
// device, so every address resolves to something even before the CLI has
// configured memories, ROMs, or peripherals.
type zeroDevice struct {
	devBase
}

func (z *zeroDevice) GetByte(uint32) uint8   { return 0 }
func (z *zeroDevice) SetByte(uint32, uint8)  {}
func (z *zeroDevice) GetWord(uint32) uint32  { return 0 }
func (z *zeroDevice) SetWord(uint32, uint32) {}

// NewZero returns a device covering [0, 0xFFFFFFFF] that absorbs all
// traffic, wrapped in ReadOnly for consistency with how the other
// no-storage peripherals (Ticks) are built, even though zeroDevice's own
// setters are already no-ops.
func NewZero() Device {
	return ReadOnly(&zeroDevice{devBase: NewBase(0, 0xFFFFFFFF)})
}
