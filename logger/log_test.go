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

package logger

import (
	"strings"
	"testing"

	"github.com/lodgepole/corehost/test"
)

func TestRepeatFolding(t *testing.T) {
	l := newLogger(10)
	l.log("session", "core initialised")
	l.log("session", "core initialised")
	l.log("session", "core initialised")
	l.log("runloop", "quit")

	s := &strings.Builder{}
	l.write(s)

	test.ExpectEquality(t, s.String(),
		"session: core initialised (repeat x3)\nrunloop: quit\n")
}

func TestMaxEntries(t *testing.T) {
	l := newLogger(2)
	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	test.ExpectEquality(t, len(l.entries), 2)
	test.ExpectEquality(t, l.entries[0].Tag, "b")
	test.ExpectEquality(t, l.entries[1].Tag, "c")
}

func TestTail(t *testing.T) {
	l := newLogger(10)
	l.log("a", "1")
	l.log("b", "2")
	l.log("c", "3")

	s := &strings.Builder{}
	l.tail(s, 2)
	test.ExpectEquality(t, s.String(), "b: 2\nc: 3\n")

	// tail longer than the log is capped
	s.Reset()
	l.tail(s, 100)
	test.ExpectEquality(t, s.String(), "a: 1\nb: 2\nc: 3\n")
}
