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

package runloop_test

import (
	"testing"

	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/drivers"
	"github.com/lodgepole/corehost/menu"
	"github.com/lodgepole/corehost/runloop"
	"github.com/lodgepole/corehost/session"
	"github.com/lodgepole/corehost/test"
	"github.com/lodgepole/corehost/userinput"
)

// a core that counts its steps. FPS of zero keeps deadline pacing out of the
// tests.
type countingCore struct {
	steps int
}

func (c *countingCore) Info() core.Info            { return core.Info{Name: "counting"} }
func (c *countingCore) AVInfo() core.AVInfo        { return core.AVInfo{FPS: 0, SampleRate: 48000} }
func (c *countingCore) Step() error                { c.steps++; return nil }
func (c *countingCore) Serialize() ([]byte, error) { return []byte{}, nil }
func (c *countingCore) Deserialize(_ []byte) error { return nil }
func (c *countingCore) Reset() error               { return nil }
func (c *countingCore) Deinit() error              { return nil }

// an input driver whose pressed bits are scripted by the test.
type scriptInput struct {
	drivers.NullInput
	bits userinput.Bits
}

func (i *scriptInput) Pressed() userinput.Bits { return i.bits }

// a video driver whose focus is scripted by the test.
type scriptVideo struct {
	drivers.NullVideo
	focused bool
}

func (v *scriptVideo) Status() (bool, bool) { return true, v.focused }

// a movie that has reached the end of playback.
type eofMovie struct {
	session.NullMovie
}

func (m *eofMovie) Active() bool     { return true }
func (m *eofMovie) ReachedEOF() bool { return true }

type harness struct {
	ses   *session.Session
	loop  *runloop.Loop
	core  *countingCore
	input *scriptInput
	video *scriptVideo
}

func newHarness(t *testing.T, mnu menu.Menu) *harness {
	t.Helper()

	h := &harness{
		core:  &countingCore{},
		input: &scriptInput{},
		video: &scriptVideo{focused: true},
	}

	if mnu == nil {
		mnu = &menu.Null{}
	}

	h.ses = session.New(&drivers.Group{
		Video: h.video,
		Audio: &drivers.NullAudio{},
		Input: h.input,
	}, mnu)

	h.ses.RegisterLoader(core.TypePlain, func(_ core.Environment, _ string) (core.Core, error) {
		return h.core, nil
	})

	if err := h.ses.Init("", "game.bin"); err != nil {
		t.Fatalf("session init: %v", err)
	}

	h.loop = runloop.NewLoop(h.ses)
	return h
}

// press holds the command for one frame and releases it on the next.
func (h *harness) press(c userinput.Command) {
	h.input.bits.Set(c)
}

func (h *harness) release(c userinput.Command) {
	h.input.bits.Clear(c)
}

func TestStepPerFrame(t *testing.T) {
	h := newHarness(t, nil)

	for i := 0; i < 3; i++ {
		v, _ := h.loop.Iterate()
		test.ExpectEquality(t, v, runloop.Frame)
	}

	test.ExpectEquality(t, h.core.steps, 3)
	test.ExpectEquality(t, h.ses.FrameCount(), 3)

	h.ses.Destroy()
}

func TestQuitTriggered(t *testing.T) {
	h := newHarness(t, nil)

	h.press(userinput.Quit)
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Quit)
	test.ExpectSuccess(t, h.ses.Shutdown())

	h.ses.Destroy()
}

func TestCoreShutdownFallback(t *testing.T) {
	h := newHarness(t, nil)

	// the fallback option is on by default
	test.ExpectSuccess(t, h.ses.Settings.LoadDummyOnCoreShutdown)

	h.ses.RequestShutdown()
	test.ExpectSuccess(t, h.ses.CoreShutdown())

	// quit pressed on the same frame the shutdown is noticed
	h.press(userinput.Quit)
	v, _ := h.loop.Iterate()

	// session stays alive on the placeholder core with both flags cleared
	test.ExpectInequality(t, v, runloop.Quit)
	test.ExpectFailure(t, h.ses.Shutdown())
	test.ExpectFailure(t, h.ses.CoreShutdown())
	test.ExpectSuccess(t, h.ses.DummyCore())

	h.ses.Destroy()
}

func TestCoreShutdownWithoutFallback(t *testing.T) {
	h := newHarness(t, nil)
	h.ses.Settings.LoadDummyOnCoreShutdown = false

	h.ses.RequestShutdown()
	v, _ := h.loop.Iterate()

	test.ExpectEquality(t, v, runloop.Quit)
	test.ExpectSuccess(t, h.ses.Shutdown())

	h.ses.Destroy()
}

func TestPauseAndFrameAdvance(t *testing.T) {
	h := newHarness(t, nil)

	h.press(userinput.PauseToggle)
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectSuccess(t, h.ses.Paused())
	test.ExpectEquality(t, h.core.steps, 0)

	// holding pause does not retrigger
	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectSuccess(t, h.ses.Paused())
	h.release(userinput.PauseToggle)

	// frame advance forces exactly one step while staying paused
	h.press(userinput.FrameAdvance)
	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	test.ExpectEquality(t, h.core.steps, 1)
	test.ExpectSuccess(t, h.ses.Paused())
	h.release(userinput.FrameAdvance)

	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectEquality(t, h.core.steps, 1)

	// unpause resumes stepping
	h.press(userinput.PauseToggle)
	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	test.ExpectFailure(t, h.ses.Paused())

	h.ses.Destroy()
}

func TestUnfocusedSleep(t *testing.T) {
	h := newHarness(t, nil)

	test.ExpectSuccess(t, h.ses.Settings.PauseWhenUnfocused)

	h.video.focused = false
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectEquality(t, h.core.steps, 0)

	h.video.focused = true
	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	test.ExpectEquality(t, h.core.steps, 1)

	h.ses.Destroy()
}

// a menu that is on screen and records how often it iterated.
type openMenu struct {
	menu.Null
	open     bool
	iterated int
	exit     bool
}

func (m *openMenu) Alive() bool { return m.open }
func (m *openMenu) Open()       { m.open = true }
func (m *openMenu) Close()      { m.open = false }

func (m *openMenu) Iterate(_ menu.Action) bool {
	m.iterated++
	return !m.exit
}

func TestMenuFocusLostSleep(t *testing.T) {
	mnu := &openMenu{open: true}
	h := newHarness(t, mnu)

	// menu on screen with focus lost: the frame outcome is a sleep even
	// though no pause command was pressed
	h.video.focused = false
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectEquality(t, mnu.iterated, 1)
	test.ExpectEquality(t, h.core.steps, 0)

	h.ses.Destroy()
}

func TestMenuExitQuits(t *testing.T) {
	mnu := &openMenu{open: true, exit: true}
	h := newHarness(t, mnu)

	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Quit)

	h.ses.Destroy()
}

func TestMenuToggle(t *testing.T) {
	mnu := &openMenu{}
	h := newHarness(t, mnu)

	// entering the menu is always allowed
	h.press(userinput.MenuToggle)
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	test.ExpectSuccess(t, mnu.open)
	test.ExpectEquality(t, h.core.steps, 0)
	h.release(userinput.MenuToggle)

	// input is flushed for a frame after the transition
	h.loop.Iterate()

	// leaving is allowed because a real core is loaded
	h.press(userinput.MenuToggle)
	h.loop.Iterate()
	test.ExpectFailure(t, mnu.open)
	h.release(userinput.MenuToggle)

	h.ses.Destroy()
}

func TestMovieEOFQuits(t *testing.T) {
	h := newHarness(t, nil)
	h.ses.Movie = &eofMovie{}

	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Quit)

	h.ses.Destroy()
}

func TestMaxFrames(t *testing.T) {
	h := newHarness(t, nil)
	h.ses.Settings.MaxFrames = 2

	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)

	v, _ = h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Quit)

	h.ses.Destroy()
}

func TestIdleSleep(t *testing.T) {
	h := newHarness(t, nil)

	h.ses.SetIdle(true)
	v, d := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Sleep)
	test.ExpectSuccess(t, d > 0)

	h.ses.Destroy()
}

func TestSlowMotionHeld(t *testing.T) {
	h := newHarness(t, nil)

	h.press(userinput.SlowMotion)
	v, _ := h.loop.Iterate()
	test.ExpectEquality(t, v, runloop.Frame)
	test.ExpectSuccess(t, h.ses.SlowMotion())

	h.release(userinput.SlowMotion)
	h.loop.Iterate()
	test.ExpectFailure(t, h.ses.SlowMotion())

	h.ses.Destroy()
}

func TestHardcoreForbidsAssistance(t *testing.T) {
	h := newHarness(t, nil)
	h.loop.Hardcore = true

	h.press(userinput.SlowMotion)
	h.loop.Iterate()
	test.ExpectFailure(t, h.ses.SlowMotion())
	h.release(userinput.SlowMotion)

	h.press(userinput.Rewind)
	h.loop.Iterate()
	test.ExpectFailure(t, h.ses.Rewind.Reversing())

	h.ses.Destroy()
}

func TestFastForwardToggle(t *testing.T) {
	h := newHarness(t, nil)

	h.press(userinput.FastForward)
	h.loop.Iterate()
	test.ExpectSuccess(t, h.ses.InputNonblock())
	h.release(userinput.FastForward)

	h.loop.Iterate()
	test.ExpectSuccess(t, h.ses.InputNonblock())

	h.press(userinput.FastForward)
	h.loop.Iterate()
	test.ExpectFailure(t, h.ses.InputNonblock())
	h.release(userinput.FastForward)

	h.ses.Destroy()
}

func TestFastForwardHold(t *testing.T) {
	h := newHarness(t, nil)

	h.press(userinput.FastForwardHold)
	h.loop.Iterate()
	test.ExpectSuccess(t, h.ses.ForcedNonblock())

	h.release(userinput.FastForwardHold)
	h.loop.Iterate()
	test.ExpectFailure(t, h.ses.ForcedNonblock())

	h.ses.Destroy()
}
