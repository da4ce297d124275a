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

// Package cheats maintains the session's cheat list and the index the user
// steps through with the cheat commands.
package cheats

import (
	"fmt"
)

// Cheat is one entry in the list.
type Cheat struct {
	Desc    string
	Code    string
	Enabled bool
}

// Notify is how index changes and toggles are surfaced to the user. It
// matches the signature of the message queue's Push.
type Notify func(msg string, prio uint, duration uint, flush bool)

// Manager is the cheat list plus the user's position in it. Not safe for
// concurrent use; the run loop is the only caller.
type Manager struct {
	notify Notify
	cheats []Cheat
	index  int
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager(notify Notify) *Manager {
	return &Manager{
		notify: notify,
	}
}

// Append adds a cheat to the end of the list.
func (m *Manager) Append(c Cheat) {
	m.cheats = append(m.cheats, c)
}

// Len returns the number of cheats in the list.
func (m *Manager) Len() int {
	return len(m.cheats)
}

// Index returns the currently selected cheat index.
func (m *Manager) Index() int {
	return m.index
}

func (m *Manager) announceIndex() {
	if m.notify == nil {
		return
	}
	if len(m.cheats) == 0 {
		m.notify("No cheats loaded", 1, 60, true)
		return
	}
	c := m.cheats[m.index]
	state := "OFF"
	if c.Enabled {
		state = "ON"
	}
	m.notify(fmt.Sprintf("Cheat: #%d (%s) %s", m.index, c.Desc, state), 1, 60, true)
}

// IndexNext selects the next cheat, wrapping at the end of the list.
func (m *Manager) IndexNext() {
	if len(m.cheats) > 0 {
		m.index = (m.index + 1) % len(m.cheats)
	}
	m.announceIndex()
}

// IndexPrev selects the previous cheat, wrapping at the start of the list.
func (m *Manager) IndexPrev() {
	if len(m.cheats) > 0 {
		m.index = (m.index + len(m.cheats) - 1) % len(m.cheats)
	}
	m.announceIndex()
}

// Toggle flips the enabled state of the selected cheat.
func (m *Manager) Toggle() {
	if len(m.cheats) == 0 {
		m.announceIndex()
		return
	}
	m.cheats[m.index].Enabled = !m.cheats[m.index].Enabled
	m.announceIndex()
}

// Applied returns the codes of every enabled cheat, in list order.
func (m *Manager) Applied() []string {
	var a []string
	for _, c := range m.cheats {
		if c.Enabled {
			a = append(a, c.Code)
		}
	}
	return a
}

// Clear empties the list and resets the index.
func (m *Manager) Clear() {
	m.cheats = nil
	m.index = 0
}
