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
	"os"
	"sync"
)

// Stdio is the 8-byte console peripheral: a reader goroutine feeds one
// byte at a time from stdin into input/inputReady, and a writer goroutine
// drains output/outputFinished to stdout. Each direction is a half-duplex
// handshake on a flag guarded by mu; holding mu across every read and
// write of the flags gives the interpreter acquire/release visibility of
// the reader's stores.
//
// Memory map (offsets relative to base):
//
//	0 read:  the pending input byte if one is ready, else 0
//	1 read:  bit 0 = input ready; bit 1 = input ready and stdin hit EOF
//	4 read:  bit 0 = previous output byte fully written
//	4 write: latch a byte for the writer if it is idle, else ignored
//
// A word read whose window covers offset 0 consumes the pending input
// byte. All other offsets read 0 and ignore writes.
type Stdio struct {
	devBase

	mu   sync.Mutex
	cond *sync.Cond

	inputReady bool
	inputEOF   bool
	input      byte

	outputFinished bool
	output         byte
}

// NewStdio constructs a Stdio device at base and starts its reader and
// writer goroutines, which run for the life of the process and are never
// joined; they terminate with it. If stdin is a terminal it is switched
// into raw mode.
func NewStdio(base uint32) *Stdio {
	s := &Stdio{devBase: NewBase(base, 7), outputFinished: true}
	s.cond = sync.NewCond(&s.mu)

	if isTerminal(int(os.Stdin.Fd())) {
		setRawMode(int(os.Stdin.Fd()))
	}

	go s.readLoop()
	go s.writeLoop()
	return s
}

func (s *Stdio) readLoop() {
	var b [1]byte
	for {
		_, err := os.Stdin.Read(b[:])
		s.mu.Lock()
		for s.inputReady {
			s.cond.Wait()
		}
		if err != nil {
			s.inputEOF = true
		} else {
			s.input = b[0]
		}
		s.inputReady = true
		s.cond.Broadcast()
		eof := s.inputEOF
		s.mu.Unlock()
		if eof {
			return
		}
	}
}

func (s *Stdio) writeLoop() {
	for {
		s.mu.Lock()
		for s.outputFinished {
			s.cond.Wait()
		}
		b := s.output
		s.mu.Unlock()

		os.Stdout.Write([]byte{b})

		s.mu.Lock()
		s.outputFinished = true
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

func (s *Stdio) GetByte(off uint32) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch off {
	case 0:
		if s.inputReady {
			return s.input
		}
		return 0
	case 1:
		var v uint8
		if s.inputReady {
			v |= 1
			if s.inputEOF {
				v |= 2
			}
		}
		return v
	case 4:
		if s.outputFinished {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (s *Stdio) SetByte(off uint32, b uint8) {
	if off != 4 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outputFinished {
		s.output = b
		s.outputFinished = false
		s.cond.Broadcast()
	}
}

// GetWord composes the default byte-read path, then, if the access
// window covers offset 0 (directly or by wrapping) and input was observed
// ready, clears inputReady and wakes the reader goroutine.
func (s *Stdio) GetWord(off uint32) uint32 {
	word := GetWord(s, off)
	if off == 0 || off >= 0xFFFFFFFD {
		s.mu.Lock()
		if s.inputReady {
			s.inputReady = false
			s.cond.Broadcast()
		}
		s.mu.Unlock()
	}
	return word
}

func (s *Stdio) SetWord(off uint32, w uint32) { SetWord(s, off, w) }
