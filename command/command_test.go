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

package command

import (
	"testing"

	"github.com/lodgepole/corehost/test"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

func TestKeyDecoding(t *testing.T) {
	test.ExpectEquality(t, decodeKey('q'), OpQuit)
	test.ExpectEquality(t, decodeKey('p'), OpPauseToggle)
	test.ExpectEquality(t, decodeKey('m'), OpMenuToggle)
	test.ExpectEquality(t, decodeKey('a'), OpMute)
	test.ExpectEquality(t, decodeKey('r'), OpReset)
	test.ExpectEquality(t, decodeKey('s'), OpSaveState)
	test.ExpectEquality(t, decodeKey('l'), OpLoadState)
	test.ExpectEquality(t, decodeKey('c'), OpScreenshot)

	// anything else is discarded
	test.ExpectEquality(t, decodeKey('x'), OpNone)
	test.ExpectEquality(t, decodeKey(0x1b), OpNone)
}

func TestNextDrainsInOrder(t *testing.T) {
	r := NewReader()

	_, ok := r.Next()
	test.ExpectFailure(t, ok)

	r.ops <- OpPauseToggle
	r.ops <- OpMute

	op, ok := r.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, op, OpPauseToggle)

	op, ok = r.Next()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, op, OpMute)

	_, ok = r.Next()
	test.ExpectFailure(t, ok)
}

// the saved attribute fields must be of the type the termios package works
// on. no terminal is needed to check that; cbreak preparation is a pure
// transformation of the struct.
func TestTerminalAttributeType(t *testing.T) {
	r := NewReader()

	r.cbreakAttr.Lflag = unix.ICANON | unix.ECHO
	termios.Cfmakecbreak(&r.cbreakAttr)

	test.ExpectEquality(t, r.cbreakAttr.Lflag&unix.ICANON, 0)
	test.ExpectEquality(t, r.cbreakAttr.Lflag&unix.ECHO, 0)
}
