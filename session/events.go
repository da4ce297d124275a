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

package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
)

// Event is one of the named session events the run loop dispatches when a
// command triggers.
type Event int

// List of session events.
const (
	EventOverlayNext Event = iota
	EventFullscreenToggle
	EventGrabMouseToggle
	EventGameFocusToggle
	EventScreenshot
	EventMute
	EventOSK
	EventVolumeUp
	EventVolumeDown
	EventNetplayFlip
	EventNetplayWatch
	EventSaveState
	EventLoadState
	EventStateSlotPlus
	EventStateSlotMinus
	EventMovieRecordToggle
	EventShaderNext
	EventShaderPrev
	EventDiskEjectToggle
	EventDiskNext
	EventDiskPrev
	EventReset
	EventCheatIndexPlus
	EventCheatIndexMinus
	EventCheatToggle
	EventQuit
)

// Dispatch routes an event to the collaborator that handles it. The return
// value is false for events the session could not act on; the frame loop
// carries on regardless.
func (s *Session) Dispatch(ev Event) bool {
	switch ev {
	case EventOverlayNext:
		s.overlayIndex++
		logger.Logf("session", "overlay: %d", s.overlayIndex)

	case EventFullscreenToggle:
		s.Settings.Fullscreen = !s.Settings.Fullscreen
		s.Drivers.Video.SetFullscreen(s.Settings.Fullscreen)

	case EventGrabMouseToggle:
		s.grabMouse = !s.grabMouse
		s.Drivers.Input.SetGrabMouse(s.grabMouse || s.gameFocus)

	case EventGameFocusToggle:
		s.gameFocus = !s.gameFocus

		// game focus captures the mouse too
		s.Drivers.Input.SetGrabMouse(s.grabMouse || s.gameFocus)
		if s.gameFocus {
			s.Msgs.Push("Game focus on", 1, 60, true)
		} else {
			s.Msgs.Push("Game focus off", 1, 60, true)
		}

	case EventScreenshot:
		p := s.screenshotPath()
		if err := s.Drivers.Video.Screenshot(p); err != nil {
			logger.Logf("session", "screenshot: %v", err)
			s.Msgs.Push("Failed to take screenshot", 1, 180, true)
			return false
		}
		s.Msgs.Push("Taking screenshot", 1, 60, true)

	case EventMute:
		m := !s.Drivers.Audio.Muted()
		s.Drivers.Audio.SetMute(m)
		if m {
			s.Msgs.Push("Audio muted", 1, 60, true)
		} else {
			s.Msgs.Push("Audio unmuted", 1, 60, true)
		}

	case EventOSK:
		s.oskActive = !s.oskActive

	case EventVolumeUp:
		s.Drivers.Audio.VolumeDelta(true)

	case EventVolumeDown:
		s.Drivers.Audio.VolumeDelta(false)

	case EventNetplayFlip:
		if !s.Netplay.Active() {
			return false
		}
		s.Netplay.FlipUsers()

	case EventNetplayWatch:
		if !s.Netplay.Active() {
			return false
		}
		s.Netplay.ToggleWatch()

	case EventSaveState:
		if err := s.SaveState(s.stateSlot); err != nil {
			logger.Logf("session", "%v", err)
			s.Msgs.Push("Failed to save state", 1, 180, true)
			return false
		}

	case EventLoadState:
		if err := s.LoadState(s.stateSlot); err != nil {
			logger.Logf("session", "%v", err)
			s.Msgs.Push("Failed to load state", 1, 180, true)
			return false
		}

	case EventStateSlotPlus:
		s.SetStateSlot(s.stateSlot + 1)

	case EventStateSlotMinus:
		s.SetStateSlot(s.stateSlot - 1)

	case EventMovieRecordToggle:
		s.Msgs.Push(s.Movie.ToggleRecord(), 1, 180, true)

	case EventShaderNext:
		s.shaderIndex++
		s.Msgs.Push(fmt.Sprintf("Shader #%d", s.shaderIndex), 1, 120, true)

	case EventShaderPrev:
		if s.shaderIndex > 0 {
			s.shaderIndex--
		}
		s.Msgs.Push(fmt.Sprintf("Shader #%d", s.shaderIndex), 1, 120, true)

	case EventDiskEjectToggle:
		s.diskEjected = !s.diskEjected
		if s.diskEjected {
			s.Msgs.Push("Disk ejected", 1, 60, true)
		} else {
			s.Msgs.Push("Disk inserted", 1, 60, true)
		}

	case EventDiskNext:
		if !s.diskEjected {
			return false
		}
		if s.diskIndex < s.diskCount-1 {
			s.diskIndex++
		}
		s.Msgs.Push(fmt.Sprintf("Disk %d", s.diskIndex), 1, 60, true)

	case EventDiskPrev:
		if !s.diskEjected {
			return false
		}
		if s.diskIndex > 0 {
			s.diskIndex--
		}
		s.Msgs.Push(fmt.Sprintf("Disk %d", s.diskIndex), 1, 60, true)

	case EventReset:
		if s.core == nil {
			return false
		}
		if err := s.core.Reset(); err != nil {
			logger.Logf("session", "reset: %v", err)
			return false
		}
		s.Msgs.Push("Reset", 1, 120, true)

	case EventCheatIndexPlus:
		s.Cheats.IndexNext()

	case EventCheatIndexMinus:
		s.Cheats.IndexPrev()

	case EventCheatToggle:
		s.Cheats.Toggle()

	case EventQuit:
		s.MainQuit()

	default:
		return false
	}

	return true
}

// MainQuit finalises session shutdown: pending state is autosaved, active
// overrides are disabled, the default render preset is restored and the
// shutdown flag is raised. The run loop returns a quit verdict on the
// following check.
func (s *Session) MainQuit() {
	autosave := s.AutosavePending()
	if s.Settings != nil && s.Settings.Autosave {
		autosave = true
	}
	if autosave && s.core != nil {
		if err := s.SaveState(s.stateSlot); err != nil {
			logger.Logf("session", "autosave: %v", err)
		}
		s.SetAutosavePending(false)
	}

	s.SetOverridesActive(false)
	s.shaderIndex = 0
	s.SetShutdown(true)
}

// SetStateSlot changes the active savestate slot. Slots are floored at zero.
// The change is announced with a flushing notice so that rapid slot cycling
// shows only the final choice.
func (s *Session) SetStateSlot(slot int) {
	if slot < 0 {
		slot = 0
	}
	s.stateSlot = slot
	s.Msgs.Push(fmt.Sprintf("State slot: %d", slot), 1, 180, true)
}

// statePath returns the savestate filename for the given slot. Slot zero has
// no suffix.
func (s *Session) statePath(slot int) string {
	dir := "."
	if s.Settings.StatePath != "" {
		dir = s.Settings.StatePath
	}

	base := "content"
	if s.contentPath != "" {
		base = filepath.Base(s.contentPath)
	} else if s.core != nil {
		base = s.SystemInfo().Name
	}

	name := base + ".state"
	if slot > 0 {
		name += strconv.Itoa(slot)
	}

	return filepath.Join(dir, name)
}

// SaveState serialises the core to the savestate file for the given slot.
func (s *Session) SaveState(slot int) error {
	if s.core == nil {
		return fault.Errorf("session: save state: no core loaded")
	}

	d, err := s.core.Serialize()
	if err != nil {
		return fault.Errorf("session: save state: %v", err)
	}

	p := s.statePath(slot)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fault.Errorf("session: save state: %v", err)
	}
	if err := os.WriteFile(p, d, 0644); err != nil {
		return fault.Errorf("session: save state: %v", err)
	}

	s.Msgs.Push(fmt.Sprintf("Saved state to slot %d", slot), 1, 180, true)
	logger.Logf("session", "state saved to %s", p)

	return nil
}

// LoadState deserialises the core from the savestate file for the given
// slot.
func (s *Session) LoadState(slot int) error {
	if s.core == nil {
		return fault.Errorf("session: load state: no core loaded")
	}

	d, err := os.ReadFile(s.statePath(slot))
	if err != nil {
		return fault.Errorf("session: load state: %v", err)
	}

	if err := s.core.Deserialize(d); err != nil {
		return fault.Errorf("session: load state: %v", err)
	}

	s.Msgs.Push(fmt.Sprintf("Loaded state from slot %d", slot), 1, 180, true)

	return nil
}

func (s *Session) screenshotPath() string {
	base := "corehost"
	if s.contentPath != "" {
		base = filepath.Base(s.contentPath)
	}
	return fmt.Sprintf("%s-%s.png", base, time.Now().Format("20060102-150405"))
}
