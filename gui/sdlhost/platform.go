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
	"runtime"

	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/version"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	windowTitle  = version.ApplicationName
	windowWidth  = 960
	windowHeight = 720
)

// platform owns the SDL window and the GL context, and services the SDL
// event queue for the other components.
type platform struct {
	host *SdlHost

	window    *sdl.Window
	glContext sdl.GLContext

	alive      bool
	focused    bool
	fullscreen bool
}

func (plt *platform) init() error {
	// the SDL package calls LockOSThread() but we call it here too. it can't
	// hurt and we never unlock it in any case
	runtime.LockOSThread()

	err := sdl.Init(sdl.INIT_EVERYTHING)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}

	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}
	err = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}

	plt.window, err = sdl.CreateWindow(windowTitle,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		windowWidth, windowHeight,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}

	plt.glContext, err = plt.window.GLCreateContext()
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}

	err = plt.window.GLMakeCurrent(plt.glContext)
	if err != nil {
		return fault.Errorf("sdl: %v", err)
	}

	// synchronise presentation with the monitor
	err = sdl.GLSetSwapInterval(1)
	if err != nil {
		logger.Logf("sdl", "cannot set swap interval: %v", err)
	}

	plt.alive = true
	plt.focused = true

	return nil
}

func (plt *platform) destroy() {
	if plt.window != nil {
		sdl.GLDeleteContext(plt.glContext)
		_ = plt.window.Destroy()
		plt.window = nil
		sdl.Quit()
	}
	plt.alive = false
}

// service drains the SDL event queue. window and keyboard events are acted
// on; everything else is discarded.
func (plt *platform) service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			plt.alive = false

		case *sdl.WindowEvent:
			switch ev.Event {
			case sdl.WINDOWEVENT_FOCUS_GAINED:
				plt.focused = true
			case sdl.WINDOWEVENT_FOCUS_LOST:
				plt.focused = false
			case sdl.WINDOWEVENT_CLOSE:
				plt.alive = false
			}

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}
			plt.host.inp.serviceKey(ev)
		}
	}
}

func (plt *platform) setFullscreen(on bool) {
	if plt.window == nil || on == plt.fullscreen {
		return
	}
	plt.fullscreen = on

	if on {
		_ = plt.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	} else {
		_ = plt.window.SetFullscreen(0)
	}
}

// displaySize returns the dimension of the display in screen coordinates.
func (plt *platform) displaySize() [2]float32 {
	w, h := plt.window.GetSize()
	return [2]float32{float32(w), float32(h)}
}

// framebufferSize returns the dimension of the display in pixels.
func (plt *platform) framebufferSize() [2]float32 {
	w, h := plt.window.GLGetDrawableSize()
	return [2]float32{float32(w), float32(h)}
}
