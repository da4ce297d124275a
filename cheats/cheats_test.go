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

package cheats_test

import (
	"testing"

	"github.com/lodgepole/corehost/cheats"
	"github.com/lodgepole/corehost/test"
)

func TestIndexWrapsAndAnnounces(t *testing.T) {
	var last string
	m := cheats.NewManager(func(msg string, _ uint, _ uint, _ bool) {
		last = msg
	})
	m.Append(cheats.Cheat{Desc: "infinite lives", Code: "AAAA"})
	m.Append(cheats.Cheat{Desc: "level select", Code: "BBBB"})

	m.IndexNext()
	test.ExpectEquality(t, m.Index(), 1)
	test.ExpectEquality(t, last, "Cheat: #1 (level select) OFF")

	m.IndexNext()
	test.ExpectEquality(t, m.Index(), 0)

	m.IndexPrev()
	test.ExpectEquality(t, m.Index(), 1)
}

func TestToggleAndApplied(t *testing.T) {
	m := cheats.NewManager(nil)
	m.Append(cheats.Cheat{Desc: "infinite lives", Code: "AAAA"})
	m.Append(cheats.Cheat{Desc: "level select", Code: "BBBB"})

	m.Toggle()
	m.IndexNext()
	m.Toggle()

	a := m.Applied()
	test.ExpectEquality(t, len(a), 2)
	test.ExpectEquality(t, a[0], "AAAA")
	test.ExpectEquality(t, a[1], "BBBB")

	m.Toggle()
	test.ExpectEquality(t, len(m.Applied()), 1)
}

func TestEmptyList(t *testing.T) {
	var last string
	m := cheats.NewManager(func(msg string, _ uint, _ uint, _ bool) {
		last = msg
	})

	m.IndexNext()
	test.ExpectEquality(t, last, "No cheats loaded")
	test.ExpectEquality(t, m.Index(), 0)

	m.Toggle()
	test.ExpectEquality(t, len(m.Applied()), 0)
}
