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

// Package drivers defines the video, audio and input backends the frontend
// drives, and the Group type that handles their collective lifecycle. The
// backends themselves live elsewhere (gui/sdlhost for the SDL backend, this
// package's null drivers for headless use and testing).
package drivers

import (
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/userinput"
)

// Video is the display backend.
type Video interface {
	Init() error
	Deinit()

	// Render presents a finished RGBA frame.
	Render(pix []byte, width int, height int) error

	// Service window events. Must be called from the main thread, once per
	// host frame.
	Service()

	// Status reports whether the window still exists and whether it has
	// input focus.
	Status() (alive bool, focused bool)

	SetFullscreen(on bool)

	// Screenshot writes the most recent frame to the given file.
	Screenshot(path string) error
}

// Audio is the sound backend.
type Audio interface {
	Init() error
	Deinit()

	Queue(samples []int16) error

	SetMute(on bool)
	Muted() bool

	// VolumeDelta nudges the output volume. The step size is the driver's
	// business.
	VolumeDelta(up bool)

	// SetNonblock switches the driver between paced and free-running
	// delivery. Used during fast-forward.
	SetNonblock(on bool)
}

// Input is the input backend.
type Input interface {
	Init() error
	Deinit()

	// Poll physical devices. Called once per host frame before Pressed().
	Poll()

	// Pressed reduces the state of all devices to a command bitmask.
	Pressed() userinput.Bits

	SetGrabMouse(on bool)
}

// Group gathers the three drivers and manages their collective lifecycle.
type Group struct {
	Video Video
	Audio Audio
	Input Input

	active bool
}

// Preinit marks the drivers as present ahead of full initialisation. It
// mirrors the frontend's own init ordering: the session knows which drivers
// it has before it knows if they will start.
func (g *Group) Preinit() {
	g.active = true
}

// Init initialises all drivers in a fixed order, stopping at the first
// failure. A failed Init leaves earlier drivers initialised; the caller is
// expected to Deinit on any error.
func (g *Group) Init() error {
	if !g.active {
		return fault.Errorf("drivers: init without preinit")
	}

	if err := g.Video.Init(); err != nil {
		return fault.Errorf("drivers: %v", err)
	}
	if err := g.Audio.Init(); err != nil {
		return fault.Errorf("drivers: %v", err)
	}
	if err := g.Input.Init(); err != nil {
		return fault.Errorf("drivers: %v", err)
	}

	return nil
}

// Deinit deinitialises all drivers in reverse order. Safe to call on a
// partially initialised or already deinitialised group.
func (g *Group) Deinit() {
	if !g.active {
		return
	}
	g.Input.Deinit()
	g.Audio.Deinit()
	g.Video.Deinit()
	g.active = false
}

// SetNonblock propagates the non-blocking state to the drivers that care.
func (g *Group) SetNonblock(on bool) {
	g.Audio.SetNonblock(on)
}
