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
	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// navKey is a menu navigation key. Navigation is not part of the logical
// command set so the menu reads these directly from the input driver.
type navKey int

const (
	navUp navKey = iota
	navDown
	navLeft
	navRight
	navOK
	navCancel
	numNavKeys
)

// the default keyboard bindings. there is no rebinding UI yet; edit here
type binding struct {
	key sdl.Keycode
	cmd userinput.Command
}

var bindings = []binding{
	{sdl.K_ESCAPE, userinput.Quit},
	{sdl.K_F1, userinput.MenuToggle},
	{sdl.K_F2, userinput.SaveState},
	{sdl.K_F4, userinput.LoadState},
	{sdl.K_F5, userinput.StateSlotMinus},
	{sdl.K_F6, userinput.StateSlotPlus},
	{sdl.K_F8, userinput.Screenshot},
	{sdl.K_F9, userinput.Mute},
	{sdl.K_F10, userinput.GrabMouseToggle},
	{sdl.K_F11, userinput.FullscreenToggle},
	{sdl.K_F12, userinput.GameFocusToggle},
	{sdl.K_p, userinput.PauseToggle},
	{sdl.K_n, userinput.FrameAdvance},
	{sdl.K_SPACE, userinput.FastForwardHold},
	{sdl.K_TAB, userinput.FastForward},
	{sdl.K_r, userinput.Rewind},
	{sdl.K_e, userinput.SlowMotion},
	{sdl.K_h, userinput.Reset},
	{sdl.K_o, userinput.MovieRecordToggle},
	{sdl.K_KP_PLUS, userinput.VolumeUp},
	{sdl.K_KP_MINUS, userinput.VolumeDown},
	{sdl.K_m, userinput.ShaderNext},
	{sdl.K_COMMA, userinput.ShaderPrev},
	{sdl.K_y, userinput.DiskEjectToggle},
	{sdl.K_u, userinput.DiskNext},
	{sdl.K_i, userinput.DiskPrev},
}

var navBindings = map[sdl.Keycode]navKey{
	sdl.K_UP:     navUp,
	sdl.K_DOWN:   navDown,
	sdl.K_LEFT:   navLeft,
	sdl.K_RIGHT:  navRight,
	sdl.K_RETURN: navOK,
	sdl.K_BACKSPACE: navCancel,
}

// input is the SDL keyboard driver. It reduces the keyboard state to the
// logical command bits the run loop wants, and keeps nav key edges on the
// side for the overlay menu.
type input struct {
	host *SdlHost

	keyDown map[sdl.Keycode]bool

	navDown      [numNavKeys]bool
	navPrev      [numNavKeys]bool
	navTriggered [numNavKeys]bool
}

func (inp *input) Init() error {
	inp.keyDown = make(map[sdl.Keycode]bool)
	return nil
}

func (inp *input) Deinit() {
	inp.keyDown = nil
	inp.navDown = [numNavKeys]bool{}
	inp.navPrev = [numNavKeys]bool{}
	inp.navTriggered = [numNavKeys]bool{}
}

// serviceKey records a keyboard event. Called by the platform while it
// drains the SDL event queue.
func (inp *input) serviceKey(ev *sdl.KeyboardEvent) {
	if inp.keyDown == nil {
		return
	}

	down := ev.Type == sdl.KEYDOWN
	code := ev.Keysym.Sym

	inp.keyDown[code] = down
	if nk, ok := navBindings[code]; ok {
		inp.navDown[nk] = down
	}
}

// Poll latches nav key edges for the frame. Keyboard events themselves
// arrive through serviceKey() during event servicing.
func (inp *input) Poll() {
	for nk := navKey(0); nk < numNavKeys; nk++ {
		inp.navTriggered[nk] = inp.navDown[nk] && !inp.navPrev[nk]
		inp.navPrev[nk] = inp.navDown[nk]
	}
}

// Pressed reduces the keyboard state to the logical command bits.
func (inp *input) Pressed() userinput.Bits {
	var b userinput.Bits
	for _, bnd := range bindings {
		if inp.keyDown[bnd.key] {
			b.Set(bnd.cmd)
		}
	}
	return b
}

func (inp *input) SetGrabMouse(on bool) {
	plt := inp.host.plt
	if plt.window == nil {
		return
	}

	if err := sdl.CaptureMouse(on); err != nil {
		logger.Log("sdlhost", err.Error())
	}
	plt.window.SetGrab(on)

	if on {
		_, _ = sdl.ShowCursor(sdl.DISABLE)
	} else {
		_, _ = sdl.ShowCursor(sdl.ENABLE)
	}
}

// navEdge returns true if the nav key became pressed this frame. Consumed
// by the overlay menu.
func (inp *input) navEdge(nk navKey) bool {
	return inp.navTriggered[nk]
}
