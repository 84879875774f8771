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

import "golang.org/x/sys/unix"

// isTerminal reports whether fd refers to a tty, probing with the same
// get-termios ioctl used to read the current mode.
func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	return err == nil
}

// setRawMode switches fd into the raw mode the console peripheral needs:
// PARMRK|ISTRIP|IXON cleared from Iflag, ECHO|ICANON|IEXTEN cleared from
// Lflag, CSIZE|PARENB cleared and CS8 set in Cflag, VMIN=1, VTIME=0. It
// returns the previous state so the caller can restore it.
func setRawMode(fd int) (*unix.Termios, error) {
	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, err
	}
	raw := *saved
	raw.Iflag &^= unix.PARMRK | unix.ISTRIP | unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, err
	}
	return saved, nil
}

// restoreMode reinstates a Termios saved by setRawMode.
func restoreMode(fd int, saved *unix.Termios) error {
	return unix.IoctlSetTermios(fd, ioctlSetTermios, saved)
}
