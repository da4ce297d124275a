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
	"os"

	"github.com/lodgepole/corehost/cheats"
	"github.com/lodgepole/corehost/config"
	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/notifications"
	"github.com/lodgepole/corehost/recorder"
	"github.com/lodgepole/corehost/rewind"
	"github.com/lodgepole/corehost/tasks"
)

// applyVerbosity echoes the log to stderr while the verbose setting is on.
func (s *Session) applyVerbosity() {
	if s.Settings.Verbose {
		logger.SetEcho(os.Stderr)
	} else {
		logger.SetEcho(nil)
	}
}

// Preinit brings up the pieces that must exist before Init() and that
// survive an Init() failure. At the moment that is only the message queue.
func (s *Session) Preinit() {
	if s.Msgs == nil {
		s.Msgs = notifications.NewQueue()
	}
}

// Init brings the session up. The sequence is ordered and short-circuits on
// the first failure; on failure everything that did come up is torn down
// again before Init returns, leaving the session not-initialised and safe to
// Destroy().
//
// A core that fails to load while the menu is already on screen is replaced
// with the placeholder core rather than failing the whole session.
func (s *Session) Init(configPath string, contentPath string) error {
	s.Preinit()
	s.captureMainGoroutine()

	// transient init state
	s.SetForceFullscreen(false)
	s.Drivers.Preinit()

	err := s.initSequence(configPath, contentPath)
	if err != nil {
		// single unwind point. the core is deinitialised here and nowhere
		// else on the failure path
		s.unloadCore()
		if s.Tasks != nil {
			s.Tasks.Deinit()
			s.Tasks = nil
		}
		s.Drivers.Deinit()
		s.setInited(false)
		return err
	}

	return nil
}

func (s *Session) initSequence(configPath string, contentPath string) error {
	// startup configuration that must take effect before anything else can
	// log
	if s.Settings != nil {
		s.applyVerbosity()
	}

	if err := validateCPU(); err != nil {
		return err
	}

	if err := s.loadSettings(configPath); err != nil {
		return err
	}
	s.applyVerbosity()

	// the task queue reports through the message queue
	s.Tasks = tasks.NewQueue(s.Settings.ThreadedTasks, s.Msgs.Push)

	typ := s.routeContent(contentPath)

	if err := s.Drivers.Init(); err != nil {
		return err
	}

	if err := s.initCore(typ, contentPath); err != nil {
		return err
	}

	s.initSubsystems()
	s.setInited(true)

	return nil
}

// loadSettings reads the settings file, keeping any value that was
// explicitly supplied this session in preference to the value on disk.
func (s *Session) loadSettings(configPath string) error {
	if s.Settings == nil {
		s.Settings = config.Defaults()
	}
	if s.BlockConfigRead() {
		return nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}

	prev := s.Settings
	if s.overrides.IsSet(OverrideVerbosity) {
		loaded.Verbose = prev.Verbose
	}
	if s.overrides.IsSet(OverrideCorePath) {
		loaded.CorePath = prev.CorePath
	}
	if s.overrides.IsSet(OverrideCoreDirectory) {
		loaded.CoreDirectory = prev.CoreDirectory
	}
	if s.overrides.IsSet(OverrideSavePath) {
		loaded.SavePath = prev.SavePath
	}
	if s.overrides.IsSet(OverrideStatePath) {
		loaded.StatePath = prev.StatePath
	}
	if s.overrides.IsSet(OverrideNetplayMode) {
		loaded.Netplay.Mode = prev.Netplay.Mode
	}
	if s.overrides.IsSet(OverrideNetplayAddress) {
		loaded.Netplay.Address = prev.Netplay.Address
	}
	if s.overrides.IsSet(OverrideNetplayPort) {
		loaded.Netplay.Port = prev.Netplay.Port
	}
	if s.overrides.IsSet(OverrideNetplayStateless) {
		loaded.Netplay.Stateless = prev.Netplay.Stateless
	}
	if s.overrides.IsSet(OverrideNetplayCheckFrames) {
		loaded.Netplay.CheckFrames = prev.Netplay.CheckFrames
	}
	if s.overrides.IsSet(OverrideUPS) || s.overrides.IsSet(OverrideBPS) || s.overrides.IsSet(OverrideIPS) {
		loaded.PatchPreference = prev.PatchPreference
	}

	s.Settings = loaded

	return nil
}

// initCore loads and resets the core of the given type. If that fails while
// the menu is on screen the placeholder core is tried instead.
func (s *Session) initCore(typ core.Type, contentPath string) error {
	err := s.startCore(typ, contentPath)
	if err != nil && s.Menu.Alive() {
		logger.Logf("session", "%v", err)
		logger.Log("session", "falling back to placeholder core")
		err = s.startCore(core.TypeDummy, "")
	}
	return err
}

func (s *Session) startCore(typ core.Type, contentPath string) error {
	s.unloadCore()
	if err := s.loadCore(typ, contentPath); err != nil {
		return err
	}

	// a failed reset leaves the core loaded; the caller's unwind (or the
	// placeholder retry) deinitialises it
	return s.core.Reset()
}

// initSubsystems brings up everything that depends on a running core, in
// fixed order. Nothing here can fail the session; a subsystem that cannot
// start is logged and skipped.
func (s *Session) initSubsystems() {
	if s.Commands != nil {
		if err := s.Commands.Init(); err != nil {
			logger.Logf("session", "command channel: %v", err)
			s.Commands = nil
		}
	}

	if s.Settings.Netplay.Mode != "" {
		np := s.Settings.Netplay
		if err := s.Netplay.Init(np.Mode, np.Address, np.Port, np.Stateless, np.CheckFrames); err != nil {
			logger.Logf("session", "netplay: %v", err)
		}
	}

	s.Rewind = rewind.New(s.Settings.RewindBufferSize,
		func() ([]byte, error) { return s.core.Serialize() },
		func(d []byte) error { return s.core.Deserialize(d) },
	)

	for port := uint(0); port < NumDevicePorts; port++ {
		if s.overrides.IsSetDevice(port) {
			logger.Logf("session", "input device on port %d explicitly assigned", port)
		}
	}

	if s.Settings.RecordPath != "" {
		av := s.core.AVInfo()
		s.Recorder = recorder.New(s.Settings.RecordPath, av.SampleRate, 2)
	}

	s.Cheats = cheats.NewManager(s.Msgs.Push)

	for _, dir := range []string{s.Settings.SavePath, s.Settings.StatePath} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Logf("session", "%v", err)
		}
	}

	if s.Settings.Fullscreen || s.ForceFullscreen() {
		s.Drivers.Video.SetFullscreen(true)
	}
}

// MainDeinit tears down everything Init() brought up, in reverse-oriented
// order. A no-op if the session is not initialised.
func (s *Session) MainDeinit() {
	if !s.Inited() {
		return
	}

	s.Netplay.Deinit()

	if s.Commands != nil {
		s.Commands.Deinit()
	}

	// pending save data goes to disk before the core disappears
	if s.AutosavePending() {
		if err := s.SaveState(s.stateSlot); err != nil {
			logger.Logf("session", "autosave: %v", err)
		}
		s.SetAutosavePending(false)
	}

	if err := s.Recorder.End(); err != nil {
		logger.Logf("session", "%v", err)
	}
	s.Recorder = nil

	s.Rewind.Deinit()
	s.Rewind = nil

	if s.Cheats != nil {
		s.Cheats.Clear()
		s.Cheats = nil
	}

	s.Movie.Deinit()

	s.unloadCore()
	s.contentPath = ""

	if s.Tasks != nil {
		s.Tasks.Deinit()
		s.Tasks = nil
	}

	s.setInited(false)
}

// Destroy resets every session flag to its default, empties the message
// queue and deinitialises the drivers. The session cannot be reused; create
// a new one with New().
func (s *Session) Destroy() {
	s.MainDeinit()

	s.flags = flags{}
	s.overrides.Clear()
	s.frameCount = 0
	s.stateSlot = 0
	s.shaderIndex = 0
	s.diskEjected = false
	s.diskIndex = 0
	s.gameFocus = false
	s.grabMouse = false
	s.oskActive = false
	s.overlayIndex = 0
	s.requestedType = core.TypeNone

	if s.Msgs != nil {
		s.Msgs.Deinit()
	}
	s.Drivers.Deinit()

	s.keyEvent = nil
	s.FrameTime.Free()
	s.Deadline.Reset()
	s.Settings = nil
	s.mainID = 0
}
