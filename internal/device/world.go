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

// arrayReader is implemented by the array-backed devices (Memory, ROM)
// eligible to become the CPU's fast-fetch source.
type arrayReader interface {
	Device
	GetWordRaw(off uint32) uint32
}

// World bundles the dispatch table with the CPU's fast-path caches:
// explicit fields owned by one value, maintained as devices are
// installed, rather than process-wide mutable globals.
type World struct {
	Dispatch *Dispatcher

	// LargestReadable is the array device (Memory or ROM) with the
	// greatest limit, used by the CPU's fast-fetch path. Nil until the
	// first array device is installed.
	LargestReadable arrayReader

	// LargestMemory is the Memory device with the greatest limit, used by
	// the CPU's fast-store path. Nil until the first Memory is installed.
	LargestMemory *Memory
}

// NewWorld returns a World whose dispatcher has not yet had any device
// installed. Callers must install a zero device covering the whole
// address space before any lookup.
func NewWorld() *World {
	return &World{Dispatch: NewDispatcher()}
}

// Install maps [base, base+limRel] to dev and, if dev is an array device
// with a greater limit than the current cache, updates the fast-path
// caches.
func (w *World) Install(base, limRel uint32, dev Device) {
	w.Dispatch.Install(base, limRel, dev)

	if ar, ok := dev.(arrayReader); ok {
		if w.LargestReadable == nil || ar.Limit() > w.LargestReadable.Limit() {
			w.LargestReadable = ar
		}
	}
	if mem, ok := dev.(*Memory); ok {
		if w.LargestMemory == nil || mem.Limit() > w.LargestMemory.Limit() {
			w.LargestMemory = mem
		}
	}
}
