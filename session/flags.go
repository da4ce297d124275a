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

// flags is the flat table of session-wide booleans. Main-goroutine-only,
// mutated solely through the typed accessors below.
type flags struct {
	paused       bool
	idle         bool
	slowmotion   bool
	shutdown     bool
	coreShutdown bool

	overridesActive   bool
	missingBIOS       bool
	gameOptionsActive bool
	autosavePending   bool

	// input delivered without pacing. distinct from fast-forward proper;
	// this is the hold-to-turbo variant
	forcedNonblock bool
	inputNonblock  bool

	perfEnabled bool

	inited          bool
	blockConfigRead bool
	forceFullscreen bool
}

// Paused returns true while the session is paused.
func (s *Session) Paused() bool { return s.flags.paused }

// SetPaused pauses or unpauses the session.
func (s *Session) SetPaused(v bool) { s.flags.paused = v }

// Idle returns true while the session is idling.
func (s *Session) Idle() bool { return s.flags.idle }

// SetIdle marks the session as idling.
func (s *Session) SetIdle(v bool) { s.flags.idle = v }

// SlowMotion returns true while slow motion is engaged.
func (s *Session) SlowMotion() bool { return s.flags.slowmotion }

// SetSlowMotion engages or disengages slow motion.
func (s *Session) SetSlowMotion(v bool) { s.flags.slowmotion = v }

// Shutdown returns true once session shutdown has been initiated.
func (s *Session) Shutdown() bool { return s.flags.shutdown }

// SetShutdown initiates or cancels session shutdown.
func (s *Session) SetShutdown(v bool) { s.flags.shutdown = v }

// CoreShutdown returns true if the core has asked for the session to end.
func (s *Session) CoreShutdown() bool { return s.flags.coreShutdown }

// SetCoreShutdown records or clears a core shutdown request.
func (s *Session) SetCoreShutdown(v bool) { s.flags.coreShutdown = v }

// OverridesActive returns true while per-game overrides are applied.
func (s *Session) OverridesActive() bool { return s.flags.overridesActive }

// SetOverridesActive marks per-game overrides as applied.
func (s *Session) SetOverridesActive(v bool) { s.flags.overridesActive = v }

// MissingBIOS returns true if the core reported required support files as
// missing.
func (s *Session) MissingBIOS() bool { return s.flags.missingBIOS }

// SetMissingBIOS records missing core support files.
func (s *Session) SetMissingBIOS(v bool) { s.flags.missingBIOS = v }

// GameOptionsActive returns true while a per-game options file is in use.
func (s *Session) GameOptionsActive() bool { return s.flags.gameOptionsActive }

// SetGameOptionsActive marks a per-game options file as in use.
func (s *Session) SetGameOptionsActive(v bool) { s.flags.gameOptionsActive = v }

// AutosavePending returns true if save data is waiting to be flushed.
func (s *Session) AutosavePending() bool { return s.flags.autosavePending }

// SetAutosavePending marks save data as waiting to be flushed.
func (s *Session) SetAutosavePending(v bool) { s.flags.autosavePending = v }

// ForcedNonblock returns true while hold-to-turbo has forced non-blocking
// delivery.
func (s *Session) ForcedNonblock() bool { return s.flags.forcedNonblock }

// SetForcedNonblock forces or releases non-blocking delivery and propagates
// the change to the drivers.
func (s *Session) SetForcedNonblock(v bool) {
	s.flags.forcedNonblock = v
	if s.Drivers != nil {
		s.Drivers.SetNonblock(v || s.flags.inputNonblock)
	}
}

// InputNonblock returns true while fast-forward has input in non-blocking
// mode.
func (s *Session) InputNonblock() bool { return s.flags.inputNonblock }

// SetInputNonblock switches input between paced and non-blocking mode and
// propagates the change to the drivers.
func (s *Session) SetInputNonblock(v bool) {
	s.flags.inputNonblock = v
	if s.Drivers != nil {
		s.Drivers.SetNonblock(v || s.flags.forcedNonblock)
	}
}

// PerfEnabled returns true while performance counters are collected.
func (s *Session) PerfEnabled() bool { return s.flags.perfEnabled }

// SetPerfEnabled switches performance counter collection.
func (s *Session) SetPerfEnabled(v bool) { s.flags.perfEnabled = v }

// Inited returns true once Init() has completed successfully and until
// MainDeinit().
func (s *Session) Inited() bool { return s.flags.inited }

func (s *Session) setInited(v bool) { s.flags.inited = v }

// BlockConfigRead returns true if settings must not be (re)read from disk.
func (s *Session) BlockConfigRead() bool { return s.flags.blockConfigRead }

// SetBlockConfigRead prevents settings from being (re)read from disk.
func (s *Session) SetBlockConfigRead(v bool) { s.flags.blockConfigRead = v }

// ForceFullscreen returns true if fullscreen was forced at startup.
func (s *Session) ForceFullscreen() bool { return s.flags.forceFullscreen }

// SetForceFullscreen forces fullscreen at startup.
func (s *Session) SetForceFullscreen(v bool) { s.flags.forceFullscreen = v }
