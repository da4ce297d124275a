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

// Package menu defines the overlay menu the run loop drives when the menu
// is active. The run loop translates pressed commands into a single Action
// per frame and advances the menu by one iteration.
package menu

import (
	"github.com/lodgepole/corehost/userinput"
)

// Action is the single menu action derived from a frame's input.
type Action int

// List of menu actions.
const (
	ActionNoop Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionOK
	ActionCancel
	ActionQuit
)

// Menu is the overlay menu driven by the run loop.
type Menu interface {
	// Alive returns true while the menu is on screen.
	Alive() bool

	Open()
	Close()

	// Binding returns true while the menu is capturing input for a key
	// binding. A quit action is ignored in this state.
	Binding() bool

	// Event translates the frame's pressed and triggered command bits into
	// a single action.
	Event(pressed userinput.Bits, triggered userinput.Bits) Action

	// Iterate advances the menu by one step. It returns false when the menu
	// has decided to exit of its own accord.
	Iterate(action Action) bool

	// Render draws the menu. The arguments describe the state the session
	// is in; the menu may present differently when no real core is loaded.
	Render(idle bool, inited bool, dummyCore bool)
}

// Null is a menu that is never alive. Used for headless sessions and in
// tests.
type Null struct{}

func (m *Null) Alive() bool                               { return false }
func (m *Null) Open()                                     {}
func (m *Null) Close()                                    {}
func (m *Null) Binding() bool                             { return false }
func (m *Null) Event(_ userinput.Bits, _ userinput.Bits) Action { return ActionNoop }
func (m *Null) Iterate(_ Action) bool                     { return true }
func (m *Null) Render(_ bool, _ bool, _ bool)             {}
