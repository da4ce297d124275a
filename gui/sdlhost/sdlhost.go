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

// Package sdlhost is the SDL backend for the frontend's video, audio and
// input drivers, plus the dear imgui overlay menu. Everything in this
// package must run on the main thread; SDL and OpenGL both insist on it.
package sdlhost

import (
	"github.com/lodgepole/corehost/drivers"
	"github.com/lodgepole/corehost/menu"
)

// SdlHost gathers the SDL drivers and the overlay menu. The sub-components
// share the window, GL context and imgui context between them.
type SdlHost struct {
	plt *platform
	vid *video
	aud *audio
	inp *input
	mnu *overlayMenu
}

// New is the preferred method of initialisation for the SdlHost type.
// Nothing is touched until the drivers' Init() functions run.
func New() *SdlHost {
	h := &SdlHost{}
	h.plt = &platform{host: h}
	h.vid = &video{host: h}
	h.aud = &audio{host: h}
	h.inp = &input{host: h}
	h.mnu = &overlayMenu{host: h}
	return h
}

// Group returns the SDL drivers as a driver group.
func (h *SdlHost) Group() *drivers.Group {
	return &drivers.Group{
		Video: h.vid,
		Audio: h.aud,
		Input: h.inp,
	}
}

// Menu returns the overlay menu.
func (h *SdlHost) Menu() menu.Menu {
	return h.mnu
}
