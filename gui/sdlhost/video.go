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
	"image"
	"image/png"
	"os"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/lodgepole/corehost/drivers"
)

// video is the SDL display driver. The core's frames are uploaded to a GL
// texture and drawn as a borderless imgui window covering the display;
// the overlay menu draws its own windows on top of the same imgui frame.
type video struct {
	host *SdlHost

	imguiCtx *imgui.Context
	rnd      *glsl

	frameTexture uint32
	texWidth     int
	texHeight    int

	// copy of the most recent frame, kept for Screenshot()
	lastPix    []byte
	lastWidth  int
	lastHeight int

	// for imgui's delta time
	time uint64
}

func (vid *video) Init() error {
	err := vid.host.plt.init()
	if err != nil {
		return err
	}

	vid.imguiCtx = imgui.CreateContext(nil)
	imgui.CurrentIO().SetIniFilename("")

	vid.rnd, err = newGlsl()
	if err != nil {
		vid.imguiCtx.Destroy()
		vid.imguiCtx = nil
		vid.host.plt.destroy()
		return err
	}

	gl.GenTextures(1, &vid.frameTexture)
	gl.BindTexture(gl.TEXTURE_2D, vid.frameTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	return nil
}

func (vid *video) Deinit() {
	if vid.imguiCtx == nil {
		return
	}

	if vid.frameTexture != 0 {
		gl.DeleteTextures(1, &vid.frameTexture)
		vid.frameTexture = 0
	}

	vid.rnd.destroy()
	vid.rnd = nil
	vid.imguiCtx.Destroy()
	vid.imguiCtx = nil
	vid.host.plt.destroy()

	vid.lastPix = nil
	vid.lastWidth = 0
	vid.lastHeight = 0
	vid.texWidth = 0
	vid.texHeight = 0
	vid.time = 0
}

// Render presents a finished RGBA frame.
func (vid *video) Render(pix []byte, width int, height int) error {
	if vid.imguiCtx == nil {
		return fault.Errorf("sdlhost: video: render before init")
	}
	if len(pix) < width*height*4 {
		return fault.Errorf("sdlhost: video: frame buffer too small for %dx%d", width, height)
	}

	gl.BindTexture(gl.TEXTURE_2D, vid.frameTexture)
	if width != vid.texWidth || height != vid.texHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
			int32(width), int32(height), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
		vid.texWidth = width
		vid.texHeight = height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
			int32(width), int32(height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	}

	if cap(vid.lastPix) < len(pix) {
		vid.lastPix = make([]byte, len(pix))
	}
	vid.lastPix = vid.lastPix[:width*height*4]
	copy(vid.lastPix, pix)
	vid.lastWidth = width
	vid.lastHeight = height

	vid.present(nil)

	return nil
}

// present builds and draws one imgui frame. overlay, if not nil, is called
// after the core's frame window so that it draws on top.
func (vid *video) present(overlay func()) {
	plt := vid.host.plt
	if plt.window == nil {
		return
	}

	displaySize := plt.displaySize()

	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	frequency := sdl.GetPerformanceFrequency()
	currentTime := sdl.GetPerformanceCounter()
	if vid.time > 0 {
		io.SetDeltaTime(float32(currentTime-vid.time) / float32(frequency))
	} else {
		io.SetDeltaTime(1.0 / 60.0)
	}
	vid.time = currentTime

	imgui.NewFrame()
	vid.drawFrameWindow(displaySize)
	if overlay != nil {
		overlay()
	}
	imgui.Render()

	vid.rnd.preRender()
	vid.rnd.render(displaySize, plt.framebufferSize())
	plt.window.GLSwap()
}

// drawFrameWindow draws the core's most recent frame as a borderless window
// covering the display, letterboxed to preserve the frame's aspect ratio.
func (vid *video) drawFrameWindow(displaySize [2]float32) {
	if vid.texWidth == 0 || vid.texHeight == 0 {
		return
	}

	imgui.SetNextWindowPos(imgui.Vec2{X: 0, Y: 0})
	imgui.SetNextWindowSize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.Vec2{X: 0, Y: 0})
	imgui.BeginV("##frame", nil, imgui.WindowFlagsNoDecoration|
		imgui.WindowFlagsNoMove|imgui.WindowFlagsNoBringToFrontOnFocus|
		imgui.WindowFlagsNoFocusOnAppearing|imgui.WindowFlagsNoSavedSettings)

	scale := displaySize[0] / float32(vid.texWidth)
	if s := displaySize[1] / float32(vid.texHeight); s < scale {
		scale = s
	}
	w := float32(vid.texWidth) * scale
	h := float32(vid.texHeight) * scale

	imgui.SetCursorPos(imgui.Vec2{
		X: (displaySize[0] - w) / 2,
		Y: (displaySize[1] - h) / 2,
	})
	imgui.Image(imgui.TextureID(vid.frameTexture), imgui.Vec2{X: w, Y: h})

	imgui.End()
	imgui.PopStyleVar()
}

// Service window events. Must be called on the main thread.
func (vid *video) Service() {
	vid.host.plt.service()
}

// Status reports whether the window still exists and whether it has input
// focus.
func (vid *video) Status() (bool, bool) {
	return vid.host.plt.alive, vid.host.plt.focused
}

func (vid *video) SetFullscreen(on bool) {
	vid.host.plt.setFullscreen(on)
}

// Screenshot writes the most recent frame to the given file as a PNG.
func (vid *video) Screenshot(path string) error {
	if vid.lastWidth == 0 || vid.lastHeight == 0 {
		return fault.Errorf("sdlhost: video: no frame to save")
	}

	img := image.NewRGBA(image.Rect(0, 0, vid.lastWidth, vid.lastHeight))
	copy(img.Pix, vid.lastPix)

	f, err := os.Create(path)
	if err != nil {
		return fault.Errorf("sdlhost: video: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Logf("sdlhost", "screenshot: %v", err)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fault.Errorf("sdlhost: video: %v", err)
	}

	return nil
}

// compile-time check that video satisfies the display driver contract
var _ drivers.Video = (*video)(nil)
