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

// readOnly wraps any Device and discards writes. It is used for devices
// with no raw fast-path to preserve (the zero device, ticks); ROM instead
// overrides its own setters directly so that the CPU's array-device
// fast-path type assertion still sees through to the underlying array
// accessor.
type readOnly struct {
	Device
}

func (readOnly) SetByte(uint32, uint8)  {}
func (readOnly) SetWord(uint32, uint32) {}

// ReadOnly wraps d so that SetByte/SetWord become no-ops while GetByte/
// GetWord/Base/Limit continue to delegate to d.
func ReadOnly(d Device) Device {
	return readOnly{Device: d}
}
