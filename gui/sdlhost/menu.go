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

package sdlhost

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/lodgepole/corehost/menu"
	"github.com/lodgepole/corehost/userinput"
)

// MenuOp is an operation the overlay menu asks its handler to perform. The
// menu knows nothing about the session; the handler does.
type MenuOp int

// List of menu operations.
const (
	MenuOpNone MenuOp = iota
	MenuOpReset
	MenuOpSaveState
	MenuOpLoadState
	MenuOpQuit
)

// SetMenuHandler registers the function the overlay menu calls when an item
// is chosen. Without a handler the menu can still resume and quit.
func (h *SdlHost) SetMenuHandler(f func(MenuOp)) {
	h.mnu.onOp = f
}

type menuItem struct {
	label string
	op    MenuOp

	// item only appears when a real core is loaded
	needsCore bool
}

var menuItems = []menuItem{
	{"Resume", MenuOpNone, true},
	{"Reset", MenuOpReset, true},
	{"Save State", MenuOpSaveState, true},
	{"Load State", MenuOpLoadState, true},
	{"Quit", MenuOpQuit, false},
}

// overlayMenu is the imgui menu drawn over the core's frame.
type overlayMenu struct {
	host *SdlHost

	onOp func(MenuOp)

	alive bool
	sel   int

	// state from the most recent Render(). decides which items appear and
	// whether the menu may close at all
	idle      bool
	inited    bool
	dummyCore bool
}

func (m *overlayMenu) Alive() bool {
	return m.alive
}

func (m *overlayMenu) Open() {
	m.alive = true
	m.sel = 0
}

func (m *overlayMenu) Close() {
	m.alive = false
}

func (m *overlayMenu) Binding() bool {
	return false
}

// Event translates the frame's input into a single menu action. Navigation
// comes from the input driver's nav keys rather than the logical commands.
func (m *overlayMenu) Event(_ userinput.Bits, triggered userinput.Bits) menu.Action {
	if triggered.IsSet(userinput.Quit) {
		return menu.ActionQuit
	}

	inp := m.host.inp
	switch {
	case inp.navEdge(navUp):
		return menu.ActionUp
	case inp.navEdge(navDown):
		return menu.ActionDown
	case inp.navEdge(navOK):
		return menu.ActionOK
	case inp.navEdge(navCancel):
		return menu.ActionCancel
	}

	return menu.ActionNoop
}

// visible returns the items the menu offers in its current state.
func (m *overlayMenu) visible() []menuItem {
	if m.inited && !m.dummyCore {
		return menuItems
	}
	v := make([]menuItem, 0, len(menuItems))
	for _, it := range menuItems {
		if !it.needsCore {
			v = append(v, it)
		}
	}
	return v
}

// Iterate advances the menu by one step. Returning false means the menu has
// decided the application should quit.
func (m *overlayMenu) Iterate(action menu.Action) bool {
	if !m.alive {
		return true
	}

	items := m.visible()
	if m.sel >= len(items) {
		m.sel = len(items) - 1
	}

	switch action {
	case menu.ActionUp:
		m.sel--
		if m.sel < 0 {
			m.sel = len(items) - 1
		}

	case menu.ActionDown:
		m.sel++
		if m.sel >= len(items) {
			m.sel = 0
		}

	case menu.ActionCancel:
		// closing the menu needs a real core to return to
		if m.inited && !m.dummyCore {
			m.alive = false
		}

	case menu.ActionQuit:
		return false

	case menu.ActionOK:
		it := items[m.sel]
		switch it.op {
		case MenuOpNone:
			m.alive = false
		case MenuOpQuit:
			return false
		default:
			if m.onOp != nil {
				m.onOp(it.op)
			}
			m.alive = false
		}
	}

	return true
}

// Render draws the menu over the most recent frame.
func (m *overlayMenu) Render(idle bool, inited bool, dummyCore bool) {
	m.idle = idle
	m.inited = inited
	m.dummyCore = dummyCore

	if !m.alive {
		return
	}

	m.host.vid.present(m.draw)
}

func (m *overlayMenu) draw() {
	displaySize := m.host.plt.displaySize()

	imgui.SetNextWindowPosV(
		imgui.Vec2{X: displaySize[0] / 2, Y: displaySize[1] / 2},
		imgui.ConditionAlways,
		imgui.Vec2{X: 0.5, Y: 0.5})

	imgui.BeginV("##menu", nil, imgui.WindowFlagsNoDecoration|
		imgui.WindowFlagsNoMove|imgui.WindowFlagsAlwaysAutoResize|
		imgui.WindowFlagsNoSavedSettings)

	items := m.visible()
	for i, it := range items {
		if i == m.sel {
			imgui.Text("> " + it.label)
		} else {
			imgui.Text("  " + it.label)
		}
	}

	imgui.End()
}

// compile-time check that overlayMenu satisfies the menu contract
var _ menu.Menu = (*overlayMenu)(nil)
