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

// Package session is the frontend's lifecycle controller. It owns every
// session-wide flag, the override bitset, the loaded core and the subsystems
// that come up with it, and it is the only place any of that state is
// mutated.
//
// The session is main-goroutine-only. The identity of the main goroutine is
// captured at Init() and checked by the run loop every frame. The message
// queue is the one exception; it is safe to push to from anywhere.
package session

import (
	"time"

	"github.com/lodgepole/corehost/cheats"
	"github.com/lodgepole/corehost/config"
	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/core/dummy"
	"github.com/lodgepole/corehost/core/media"
	"github.com/lodgepole/corehost/drivers"
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/logger"
	"github.com/lodgepole/corehost/menu"
	"github.com/lodgepole/corehost/notifications"
	"github.com/lodgepole/corehost/pacer"
	"github.com/lodgepole/corehost/recorder"
	"github.com/lodgepole/corehost/rewind"
	"github.com/lodgepole/corehost/tasks"
)

// CommandChannel is an auxiliary command source serviced once per frame, the
// terminal command reader in practice. Optional; a session without one works
// fine.
type CommandChannel interface {
	Init() error
	Deinit()
}

// Session gathers everything with session lifetime. Use New() followed by
// Preinit() and Init().
type Session struct {
	Settings *config.Settings
	Msgs     *notifications.Queue
	Drivers  *drivers.Group
	Menu     menu.Menu

	// subsystems brought up by the final stage of Init()
	Tasks    *tasks.Queue
	Rewind   *rewind.Rewind
	Recorder *recorder.Recorder
	Cheats   *cheats.Manager
	Commands CommandChannel
	Netplay  Netplay
	Movie    Movie

	// step pacing and the core's frame-time callback
	Deadline  pacer.Deadline
	FrameTime pacer.FrameTime

	// the loaded core. coreType is what is actually loaded; requestedType
	// is what the user explicitly asked for, if anything
	core          core.Core
	coreType      core.Type
	requestedType core.Type
	contentPath   string
	loaders       map[core.Type]core.Loader

	// core options handle. valid for the whole session
	options *core.Options

	// key events forwarded by the input driver to whoever registered the slot
	keyEvent func(down bool, key int, mod int)

	flags     flags
	overrides Overrides

	frameCount uint64
	stateSlot  int

	// render preset index. zero is the default preset
	shaderIndex int

	// disk control state
	diskEjected bool
	diskIndex   int
	diskCount   int

	// focus and capture state toggled through Dispatch()
	gameFocus    bool
	grabMouse    bool
	oskActive    bool
	overlayIndex int

	// goroutine that called Init(). zero until then
	mainID int64
}

// New is the preferred method of initialisation for the Session type. The
// driver group and menu must be supplied; everything else comes up during
// Preinit() and Init().
func New(drv *drivers.Group, mnu menu.Menu) *Session {
	s := &Session{
		Drivers: drv,
		Menu:    mnu,
		Netplay: &NullNetplay{},
		Movie:   &NullMovie{},
		options: core.NewOptions(),
		loaders: make(map[core.Type]core.Loader),
	}
	s.RegisterLoader(core.TypeDummy, dummy.Load)
	s.RegisterLoader(core.TypeMedia, media.Load)
	return s
}

// RegisterLoader associates a core type with its loader. Loaders for the
// dummy and media cores are registered by New().
func (s *Session) RegisterLoader(t core.Type, l core.Loader) {
	s.loaders[t] = l
}

// RequestCoreType records an explicit core-type choice. It takes priority
// over content-based routing during Init().
func (s *Session) RequestCoreType(t core.Type) {
	s.requestedType = t
}

// Core returns the loaded core. Nil before Init() and after MainDeinit().
func (s *Session) Core() core.Core {
	return s.core
}

// CoreType returns the type of the loaded core.
func (s *Session) CoreType() core.Type {
	return s.coreType
}

// DummyCore returns true if the loaded core is the placeholder.
func (s *Session) DummyCore() bool {
	return s.coreType == core.TypeDummy
}

// ContentPath returns the path of the loaded content. Empty when none.
func (s *Session) ContentPath() string {
	return s.contentPath
}

// SystemInfo describes the loaded core. Fields the core leaves empty get
// placeholder values so that callers can print them without checking.
func (s *Session) SystemInfo() core.Info {
	var nfo core.Info
	if s.core != nil {
		nfo = s.core.Info()
	}
	if nfo.Name == "" {
		nfo.Name = "Unknown"
	}
	if nfo.Version == "" {
		nfo.Version = "v0"
	}
	return nfo
}

// Options returns the core options handle. Never nil.
func (s *Session) Options() *core.Options {
	return s.options
}

// Overrides returns the override bitset.
func (s *Session) Overrides() *Overrides {
	return &s.overrides
}

// SetKeyEvent registers the key event slot. A nil function unregisters it.
func (s *Session) SetKeyEvent(f func(down bool, key int, mod int)) {
	s.keyEvent = f
}

// KeyEvent returns the registered key event slot, or nil.
func (s *Session) KeyEvent() func(down bool, key int, mod int) {
	return s.keyEvent
}

// loadCore runs the loader for the given type and makes the result the
// active core. AV timing is taken from the new core immediately.
func (s *Session) loadCore(t core.Type, contentPath string) error {
	l, ok := s.loaders[t]
	if !ok {
		return fault.Errorf("session: no loader for %s core", t)
	}

	c, err := l(s, contentPath)
	if err != nil {
		return fault.Errorf("session: %v", err)
	}

	s.core = c
	s.coreType = t
	s.contentPath = contentPath

	// normal-speed pacing. the run loop rederives the rate when fast
	// forward engages
	av := c.AVInfo()
	s.Deadline.SetRate(av.FPS, 1.0, time.Now())

	nfo := s.SystemInfo()
	logger.Logf("session", "core: %s (%s)", nfo.Name, nfo.Version)

	return nil
}

// unloadCore deinitialises the active core and forgets the frame-time
// callback it may have registered. Safe to call with no core loaded.
func (s *Session) unloadCore() {
	if s.core == nil {
		return
	}
	if err := s.core.Deinit(); err != nil {
		logger.Logf("session", "core deinit: %v", err)
	}
	s.core = nil
	s.coreType = core.TypeNone
	s.FrameTime.Free()
}

// StartDummyCore swaps the active core for the placeholder. Used when a real
// core shuts itself down and the fallback option is enabled.
func (s *Session) StartDummyCore() error {
	s.unloadCore()
	if err := s.loadCore(core.TypeDummy, ""); err != nil {
		return err
	}
	s.contentPath = ""
	return nil
}

// routeContent decides which core type should take the given content. An
// explicit request always wins.
func (s *Session) routeContent(contentPath string) core.Type {
	if s.requestedType != core.TypeNone {
		return s.requestedType
	}
	if contentPath == "" {
		return core.TypeDummy
	}
	if s.Settings.BuiltinMediaPlayer && media.IsMediaFile(contentPath) {
		// the routing decision counts as an explicit core choice
		s.overrides.Set(OverrideCorePath)
		return core.TypeMedia
	}
	return core.TypePlain
}

// FrameCount returns the number of completed simulation steps this session.
func (s *Session) FrameCount() uint64 {
	return s.frameCount
}

// AdvanceFrame counts a completed simulation step.
func (s *Session) AdvanceFrame() {
	s.frameCount++
}

// StateSlot returns the active savestate slot.
func (s *Session) StateSlot() int {
	return s.stateSlot
}
