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

// entry is one slot of a dispatch table level: a tagged sum of a
// large-page device reference (children == nil) or an owned subtable
// (children != nil).
type entry struct {
	dev      Device
	children *[1024]entry
}

// Dispatcher is a three-level sparse page table routing any 32-bit
// address to the device responsible for it: L3 indexes address bits
// 22..31, L2 bits 12..21, L1 bits 2..11 (4-byte granules at the leaf).
// Lookups are O(1); installation is top-down with automatic large-page
// splitting.
type Dispatcher struct {
	root [1024]entry
}

// NewDispatcher returns an empty Dispatcher. The caller is responsible
// for installing a world-covering device (normally the zero device at
// [0, 0xFFFFFFFF]) before any lookup.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Install maps the inclusive range [base, base+limRel] to dev. Later
// installs override earlier ones at 4-byte granularity. The caller
// guarantees base+limRel does not overflow uint32.
func (d *Dispatcher) Install(base, limRel uint32, dev Device) {
	installTable(&d.root, 22, base, base+limRel, dev)
}

// Lookup returns the device managing addr.
func (d *Dispatcher) Lookup(addr uint32) Device {
	e := &d.root[addr>>22]
	if e.children == nil {
		return e.dev
	}
	e = &e.children[(addr>>12)&0x3FF]
	if e.children == nil {
		return e.dev
	}
	e = &e.children[(addr>>2)&0x3FF]
	return e.dev
}

// installTable fills a branch-level table (shift 22 for L3, 12 for L2)
// with dev over [base, lim], or, at the leaf level (shift 2), assigns dev
// directly to each 4-byte slot. base and lim are relative to the start of
// the table's covered range and must both fall within it.
func installTable(tab *[1024]entry, shift uint, base, lim uint32, dev Device) {
	if shift == 2 {
		si, li := base>>2, lim>>2
		for i := si; i <= li; i++ {
			tab[i] = entry{dev: dev}
		}
		return
	}

	mask := uint32(1)<<shift - 1
	si, li := base>>shift, lim>>shift
	os, ol := base&mask, lim&mask

	// Cover every fully-contained slot with a large page.
	first := int64(si)
	if os != 0 {
		first++
	}
	last := int64(li)
	if ol != mask {
		last--
	}
	for i := first; i <= last; i++ {
		tab[i] = entry{dev: dev}
	}

	// Descend into the partially-covered slot(s) at each end.
	if si == li {
		if os != 0 || ol != mask {
			installEntry(&tab[si], shift, os, ol, dev)
		}
		return
	}
	if os != 0 {
		installEntry(&tab[si], shift, os, mask, dev)
	}
	if ol != mask {
		installEntry(&tab[li], shift, 0, ol, dev)
	}
}

// installEntry descends into a single slot, splitting it into a fresh
// child table (every one of whose 1024 entries is initialized to the
// slot's current large-page device) if it is not already a branch.
func installEntry(e *entry, shift uint, base, lim uint32, dev Device) {
	if e.children == nil {
		children := &[1024]entry{}
		old := e.dev
		for i := range children {
			children[i] = entry{dev: old}
		}
		e.children = children
		e.dev = nil
	}
	installTable(e.children, shift-10, base, lim, dev)
}

// ReadByte returns the byte at addr, delegating to whichever device the
// dispatcher resolves it to.
func (d *Dispatcher) ReadByte(addr uint32) uint8 {
	dev := d.Lookup(addr)
	return dev.GetByte(addr - dev.Base())
}

// WriteByte stores b at addr.
func (d *Dispatcher) WriteByte(addr uint32, b uint8) {
	dev := d.Lookup(addr)
	dev.SetByte(addr-dev.Base(), b)
}

// ReadWord reads the 32-bit word at addr. When addr is not 4-byte aligned
// the access may straddle two devices; both are consulted and their
// contributions OR-combined. The second device is looked up at addr+3 (the
// address that carries its high bytes) but is asked for its portion at
// offset addr-dev2.Base(): that offset wraps past 0xFFFFFFFF into the
// small negative range cleanWord's wraparound branch handles, which
// selects and positions only the high bytes that belong to dev2.
func (d *Dispatcher) ReadWord(addr uint32) uint32 {
	dev1 := d.Lookup(addr)
	res := dev1.GetWord(addr - dev1.Base())
	if addr&3 != 0 {
		dev2 := d.Lookup(addr + 3)
		if dev2 != dev1 {
			res |= dev2.GetWord(addr - dev2.Base())
		}
	}
	return res
}

// WriteWord stores word at addr, splitting across two devices when
// unaligned. The second device is looked up at addr+3 and asked to write
// at offset addr-dev2.Base(), as in ReadWord.
func (d *Dispatcher) WriteWord(addr uint32, word uint32) {
	dev1 := d.Lookup(addr)
	dev1.SetWord(addr-dev1.Base(), word)
	if addr&3 != 0 {
		dev2 := d.Lookup(addr + 3)
		if dev2 != dev1 {
			dev2.SetWord(addr-dev2.Base(), word)
		}
	}
}
