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

// Package runloop is the per-frame decision engine. Each call to Iterate()
// polls input, arbitrates the frame's commands against the session state and
// either steps the core, advances the menu, tells the caller to sleep, or
// ends the session.
//
// There is no persistent loop state beyond the input edge detector and a few
// previous-frame booleans; the outcome is recomputed from scratch every
// frame.
package runloop

import (
	"time"

	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/session"
	"github.com/lodgepole/corehost/userinput"
)

// Verdict is the outcome of one Iterate() call.
type Verdict int

// List of verdicts.
const (
	// Frame means the host frame was consumed, with or without a
	// simulation step.
	Frame Verdict = iota

	// Sleep means nothing was stepped; the caller should wait for the
	// returned duration and call Iterate() again.
	Sleep

	// Quit means the session is terminating. The caller must not call
	// Iterate() again.
	Quit
)

// the internal frame state. recomputed fresh each frame
type state int

const (
	stateIterate state = iota
	stateSleep
	stateMenuIterate
	stateEnd
	stateQuit
)

// sleep used for paused, idle and unfocused frames, where there is no
// deadline to aim for
const idleSleep = 10 * time.Millisecond

// Loop drives one session through its frames. Main-goroutine-only; the
// precondition is checked on every Iterate().
type Loop struct {
	ses *session.Session
	det userinput.Detector

	// competitive play forbids the assistance features
	Hardcore bool

	// a pending exec request ends the loop at the next quit check
	exec bool

	// frames left during which sampled input is discarded
	flush int
}

// NewLoop is the preferred method of initialisation for the Loop type. The
// session must already be initialised.
func NewLoop(ses *session.Session) *Loop {
	return &Loop{ses: ses}
}

// RequestExec asks the loop to exit at the next quit check so that the
// caller can hand off to different content. The request is consumed by the
// check whether or not the session survives it.
func (l *Loop) RequestExec() {
	l.exec = true
}

// FlushInput discards sampled input for the given number of frames. Used
// around menu transitions so that the keypress that caused the transition
// does not leak into the other context.
func (l *Loop) FlushInput(frames int) {
	l.flush = frames
}

// timeToExit is the per-frame quit condition.
func timeToExit(shutdown bool, quitTriggered bool, windowAlive bool, movieEOF bool, maxFrames uint64, frameCount uint64, execRequested bool) bool {
	return shutdown || quitTriggered || !windowAlive || movieEOF || execRequested ||
		(maxFrames != 0 && frameCount >= maxFrames)
}

// assistanceAllowed is the gate on rewind, slow motion and state loading
// while competitive play is active.
func assistanceAllowed(hardcore bool) bool {
	return !hardcore
}

// Iterate advances the session by one host frame.
//
// The returned duration is only meaningful with a Sleep verdict; the caller
// waits that long and calls Iterate() again.
func (l *Loop) Iterate() (Verdict, time.Duration) {
	if !l.ses.OnMainGoroutine() {
		logger.Log("runloop", "iterate called off the main goroutine; refusing")
		return Sleep, idleSleep
	}

	ses := l.ses
	set := ses.Settings

	switch l.checkState() {
	case stateQuit:
		ses.Deadline.Reset()
		return Quit, 0

	case stateSleep:
		return Sleep, idleSleep

	case stateEnd:
		// unthrottled menu frame
		return Frame, 0

	case stateMenuIterate:
		// the menu advanced during the state check; all that is left is
		// to pace the frame
		if sleep, wait := ses.Deadline.Check(time.Now()); wait {
			return Sleep, sleep
		}
		return Frame, 0
	}

	// stateIterate. pace first: if the deadline has not been reached the
	// frame's commands have already been processed and only the step is
	// deferred
	if !(l.fastforward() && set.FastForwardRatio == 0) {
		if sleep, wait := ses.Deadline.Check(time.Now()); wait {
			return Sleep, sleep
		}
	}

	now := time.Now()
	locked := ses.Paused() || ses.InputNonblock() || ses.ForcedNonblock() || ses.Recorder.Active()
	ses.FrameTime.Step(now, locked, ses.SlowMotion(), set.SlowMotionRatio)

	ses.Movie.FrameStart()
	if err := ses.Core().Step(); err != nil {
		logger.Logf("runloop", "core: %v", err)
		ses.RequestShutdown()
	}
	ses.Movie.FrameEnd()

	ses.Rewind.Frame(set.RewindGranularity)
	ses.AdvanceFrame()

	return Frame, 0
}

// checkState is the frame's decision function, evaluated top to bottom in
// fixed priority order.
func (l *Loop) checkState() state {
	ses := l.ses
	set := ses.Settings

	// poll input and window events
	ses.Drivers.Input.Poll()
	ses.Drivers.Video.Service()
	alive, focused := ses.Drivers.Video.Status()

	pressed := ses.Drivers.Input.Pressed()
	if l.flush > 0 {
		l.flush--
		pressed = 0

		// the pause command stays asserted through the flush so that the
		// pause state survives the transition
		if ses.Paused() {
			pressed.Set(userinput.PauseToggle)
		}
	}
	l.det.Sample(pressed)

	// display and capture commands come before everything, the quit check
	// included
	if l.det.Triggered(userinput.OverlayNext) {
		ses.Dispatch(session.EventOverlayNext)
	}
	if l.det.Triggered(userinput.FullscreenToggle) {
		ses.Dispatch(session.EventFullscreenToggle)
	}
	if l.det.Triggered(userinput.GrabMouseToggle) {
		ses.Dispatch(session.EventGrabMouseToggle)
	}

	// quit check
	if timeToExit(ses.Shutdown(), l.det.Triggered(userinput.Quit), alive,
		ses.Movie.ReachedEOF(), set.MaxFrames, ses.FrameCount(), l.exec) {

		l.exec = false

		if ses.CoreShutdown() && set.LoadDummyOnCoreShutdown {
			// the core asked to stop and the fallback option is on: swap
			// in the placeholder and carry on as if nothing happened
			if err := ses.StartDummyCore(); err == nil {
				ses.SetCoreShutdown(false)
				ses.SetShutdown(false)
			} else {
				logger.Logf("runloop", "placeholder core: %v", err)
				ses.MainQuit()
				return stateQuit
			}
		} else {
			ses.MainQuit()
			return stateQuit
		}
	}

	// a menu already on screen gets the frame's input
	if ses.Menu.Alive() {
		action := ses.Menu.Event(pressed, l.triggeredBits())
		running := ses.Menu.Iterate(action)

		if focused || !ses.Idle() {
			ses.Menu.Render(ses.Idle(), ses.Inited(), ses.DummyCore())
		}

		if !running && !ses.Menu.Binding() {
			ses.MainQuit()
			return stateQuit
		}

		if !focused && set.PauseWhenUnfocused {
			return stateSleep
		}
	}

	if ses.Idle() {
		return stateSleep
	}

	// menu visibility toggle. entering is always allowed; leaving needs a
	// real core to return to
	if l.det.Triggered(userinput.MenuToggle) {
		if ses.Menu.Alive() {
			if ses.Inited() && !ses.DummyCore() {
				ses.Menu.Close()
				l.FlushInput(1)
			}
		} else {
			ses.Menu.Open()
			l.FlushInput(1)
		}
	}

	if ses.Menu.Alive() {
		if !set.MenuThrottleFramerate && l.fastforward() {
			return stateEnd
		}
		return stateMenuIterate
	}

	// remaining commands, each idempotent per trigger
	if l.det.Triggered(userinput.GameFocusToggle) {
		ses.Dispatch(session.EventGameFocusToggle)
	}
	if l.det.Triggered(userinput.Screenshot) {
		ses.Dispatch(session.EventScreenshot)
	}
	if l.det.Triggered(userinput.Mute) {
		ses.Dispatch(session.EventMute)
	}
	if l.det.Triggered(userinput.OSK) {
		ses.Dispatch(session.EventOSK)
	}

	// volume repeats for as long as the command is held
	if l.det.Held(userinput.VolumeUp) {
		ses.Dispatch(session.EventVolumeUp)
	}
	if l.det.Held(userinput.VolumeDown) {
		ses.Dispatch(session.EventVolumeDown)
	}

	if l.det.Triggered(userinput.NetplayFlip) {
		ses.Dispatch(session.EventNetplayFlip)
	}
	if l.det.Triggered(userinput.NetplayWatch) {
		ses.Dispatch(session.EventNetplayWatch)
	}

	// pause and frame advance. a frame advance while unpaused pauses; while
	// paused it forces exactly one step
	frameAdvance := false
	if l.det.Triggered(userinput.PauseToggle) {
		l.setPaused(!ses.Paused())
	}
	if l.det.Triggered(userinput.FrameAdvance) {
		if ses.Paused() {
			frameAdvance = true
		} else {
			l.setPaused(true)
		}
	}

	// rewind runs for as long as the command is held
	rewinding := false
	if assistanceAllowed(l.Hardcore) {
		if msg, duration, ok := ses.Rewind.Check(l.det.Held(userinput.Rewind), ses.Paused()); ok {
			ses.Msgs.Push(msg, 1, duration, true)
		}
		rewinding = ses.Rewind.Reversing()
	}

	// slow motion is held, not toggled
	if assistanceAllowed(l.Hardcore) {
		sm := l.det.Held(userinput.SlowMotion)
		if sm != ses.SlowMotion() {
			ses.SetSlowMotion(sm)
			if sm {
				ses.Msgs.Push("Slow motion", 1, 60, true)
			}
		}
	}

	// fast forward: a latching toggle and a hold-to-turbo variant
	if l.det.Triggered(userinput.FastForward) {
		ses.SetInputNonblock(!ses.InputNonblock())
		l.applyPacing()
		if ses.InputNonblock() {
			ses.Msgs.Push("Fast forward", 1, 60, true)
		}
	}
	if l.det.Triggered(userinput.FastForwardHold) {
		ses.SetForcedNonblock(true)
		l.applyPacing()
	}
	if l.det.Released(userinput.FastForwardHold) {
		ses.SetForcedNonblock(false)
		l.applyPacing()
	}

	if l.det.Triggered(userinput.StateSlotPlus) {
		ses.Dispatch(session.EventStateSlotPlus)
	}
	if l.det.Triggered(userinput.StateSlotMinus) {
		ses.Dispatch(session.EventStateSlotMinus)
	}
	if l.det.Triggered(userinput.SaveState) {
		ses.Dispatch(session.EventSaveState)
	}
	if l.det.Triggered(userinput.LoadState) && assistanceAllowed(l.Hardcore) {
		ses.Dispatch(session.EventLoadState)
	}

	if l.det.Triggered(userinput.MovieRecordToggle) {
		ses.Dispatch(session.EventMovieRecordToggle)
	}

	if l.det.Triggered(userinput.ShaderNext) {
		ses.Dispatch(session.EventShaderNext)
	}
	if l.det.Triggered(userinput.ShaderPrev) {
		ses.Dispatch(session.EventShaderPrev)
	}

	if l.det.Triggered(userinput.DiskEjectToggle) {
		ses.Dispatch(session.EventDiskEjectToggle)
	}
	if l.det.Triggered(userinput.DiskNext) {
		ses.Dispatch(session.EventDiskNext)
	}
	if l.det.Triggered(userinput.DiskPrev) {
		ses.Dispatch(session.EventDiskPrev)
	}

	if l.det.Triggered(userinput.Reset) {
		ses.Dispatch(session.EventReset)
	}

	if l.det.Triggered(userinput.CheatIndexPlus) {
		ses.Dispatch(session.EventCheatIndexPlus)
	}
	if l.det.Triggered(userinput.CheatIndexMinus) {
		ses.Dispatch(session.EventCheatIndexMinus)
	}
	if l.det.Triggered(userinput.CheatToggle) {
		ses.Dispatch(session.EventCheatToggle)
	}

	// a paused frame that is neither a forced advance nor a rewind frame
	// has nothing left to do
	if ses.Paused() && !frameAdvance && !rewinding {
		return stateSleep
	}

	if !focused && set.PauseWhenUnfocused {
		return stateSleep
	}

	return stateIterate
}

func (l *Loop) setPaused(v bool) {
	l.ses.SetPaused(v)
	if v {
		l.ses.Msgs.Push("Paused", 1, 60, true)
	} else {
		l.ses.Msgs.Push("Unpaused", 1, 60, true)
	}
}

func (l *Loop) fastforward() bool {
	return l.ses.InputNonblock() || l.ses.ForcedNonblock()
}

// applyPacing rederives the step interval after a fast-forward change.
func (l *Loop) applyPacing() {
	c := l.ses.Core()
	if c == nil {
		return
	}

	ratio := float32(1.0)
	if l.fastforward() {
		ratio = l.ses.Settings.FastForwardRatio
	}
	l.ses.Deadline.SetRate(c.AVInfo().FPS, ratio, time.Now())
}

func (l *Loop) triggeredBits() userinput.Bits {
	var b userinput.Bits
	for c := userinput.Command(0); c < userinput.NumCommands; c++ {
		if l.det.Triggered(c) {
			b.Set(c)
		}
	}
	return b
}
