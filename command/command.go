// This file is part of CoreHost.
//
// CoreHost is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// CoreHost is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with CoreHost.  If not, see <https://www.gnu.org/licenses/>.

// Package command is the auxiliary command channel: single keypresses on the
// controlling terminal, read outside of the SDL window's input path. Useful
// when the session runs headless or when the window has lost the keyboard.
//
// The terminal is switched to cbreak mode for the lifetime of the reader.
// Keys are decoded on a background goroutine and buffered; the frontend
// drains them once per frame with Next().
package command

import (
	"os"
	"sync/atomic"

	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Op is one decoded terminal command.
type Op int

// List of terminal commands.
const (
	OpNone Op = iota
	OpQuit
	OpPauseToggle
	OpMenuToggle
	OpMute
	OpReset
	OpSaveState
	OpLoadState
	OpScreenshot
)

// Reader decodes terminal keypresses into Ops.
type Reader struct {
	input *os.File

	// terminal attributes on entry, restored by Deinit()
	canAttr    unix.Termios
	cbreakAttr unix.Termios

	ops     chan Op
	stopped atomic.Bool
}

// NewReader is the preferred method of initialisation for the Reader type.
// The reader is inert until Init().
func NewReader() *Reader {
	return &Reader{
		input: os.Stdin,
		ops:   make(chan Op, 8),
	}
}

// Init switches the terminal to cbreak mode and starts the decode goroutine.
// Fails cleanly when stdin is not a terminal.
func (r *Reader) Init() error {
	if err := termios.Tcgetattr(r.input.Fd(), &r.canAttr); err != nil {
		return fault.Errorf("command: stdin is not a terminal: %v", err)
	}

	r.cbreakAttr = r.canAttr
	termios.Cfmakecbreak(&r.cbreakAttr)
	if err := termios.Tcsetattr(r.input.Fd(), termios.TCSANOW, &r.cbreakAttr); err != nil {
		return fault.Errorf("command: %v", err)
	}

	go r.decode()

	logger.Log("command", "terminal command channel open")

	return nil
}

func (r *Reader) decode() {
	b := make([]byte, 1)
	for {
		n, err := r.input.Read(b)
		if err != nil {
			return
		}
		if r.stopped.Load() {
			return
		}
		if n != 1 {
			continue
		}

		op := decodeKey(b[0])
		if op == OpNone {
			continue
		}

		// a full buffer drops the keypress rather than stalling the
		// goroutine
		select {
		case r.ops <- op:
		default:
		}
	}
}

func decodeKey(k byte) Op {
	switch k {
	case 'q':
		return OpQuit
	case 'p':
		return OpPauseToggle
	case 'm':
		return OpMenuToggle
	case 'a':
		return OpMute
	case 'r':
		return OpReset
	case 's':
		return OpSaveState
	case 'l':
		return OpLoadState
	case 'c':
		return OpScreenshot
	}
	return OpNone
}

// Next returns the oldest undrained command. The second return value is
// false when there is none pending.
func (r *Reader) Next() (Op, bool) {
	select {
	case op := <-r.ops:
		return op, true
	default:
		return OpNone, false
	}
}

// Deinit restores the terminal. The decode goroutine ends on the next
// keypress or when stdin closes; it touches nothing after Deinit.
func (r *Reader) Deinit() {
	r.stopped.Store(true)
	if err := termios.Tcsetattr(r.input.Fd(), termios.TCSANOW, &r.canAttr); err != nil {
		logger.Logf("command", "restoring terminal: %v", err)
	}
}
