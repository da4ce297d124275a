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

package session_test

import (
	"testing"

	"github.com/lodgepole/corehost/core"
	"github.com/lodgepole/corehost/drivers"
	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/menu"
	"github.com/lodgepole/corehost/session"
	"github.com/lodgepole/corehost/test"
	"github.com/lodgepole/corehost/userinput"
)

// a core whose Reset() fails, for exercising the init unwind path.
type brokenCore struct {
	deinitCt int
}

func (c *brokenCore) Info() core.Info            { return core.Info{Name: "broken"} }
func (c *brokenCore) AVInfo() core.AVInfo        { return core.AVInfo{FPS: 60} }
func (c *brokenCore) Step() error                { return nil }
func (c *brokenCore) Serialize() ([]byte, error) { return []byte{}, nil }
func (c *brokenCore) Deserialize(_ []byte) error { return nil }
func (c *brokenCore) Reset() error               { return fault.Errorf("broken core") }
func (c *brokenCore) Deinit() error {
	c.deinitCt++
	return nil
}

// a menu that claims to be on screen, for exercising the placeholder
// fallback.
type aliveMenu struct {
	menu.Null
}

func (m *aliveMenu) Alive() bool { return true }

func newTestSession(mnu menu.Menu) *session.Session {
	if mnu == nil {
		mnu = &menu.Null{}
	}
	return session.New(drivers.NullGroup(), mnu)
}

func TestInitFailureWithNoMenu(t *testing.T) {
	s := newTestSession(nil)

	bc := &brokenCore{}
	s.RegisterLoader(core.TypePlain, func(_ core.Environment, _ string) (core.Core, error) {
		return bc, nil
	})

	err := s.Init("", "game.bin")
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, s.Inited())

	// the failed core was deinitialised exactly once by the unwind
	test.ExpectEquality(t, bc.deinitCt, 1)

	// nothing from the final init stage was touched
	test.ExpectSuccess(t, s.Rewind == nil)
	test.ExpectSuccess(t, s.Cheats == nil)
	test.ExpectSuccess(t, s.Recorder == nil)

	s.Destroy()
}

func TestInitFallbackToPlaceholder(t *testing.T) {
	s := newTestSession(&aliveMenu{})

	s.RegisterLoader(core.TypePlain, func(_ core.Environment, _ string) (core.Core, error) {
		return nil, fault.Errorf("no such core")
	})

	// with the menu on screen a failing core degrades to the placeholder
	err := s.Init("", "game.bin")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, s.Inited())
	test.ExpectSuccess(t, s.DummyCore())

	s.Destroy()
}

func TestDestroyResetsDefaults(t *testing.T) {
	s := newTestSession(nil)
	test.ExpectSuccess(t, s.Init("", ""))

	s.SetPaused(true)
	s.SetIdle(true)
	s.SetSlowMotion(true)
	s.SetOverridesActive(true)
	s.SetCoreShutdown(true)
	s.AdvanceFrame()
	s.Overrides().Set(session.OverrideCorePath)

	s.Destroy()

	test.ExpectFailure(t, s.Paused())
	test.ExpectFailure(t, s.Idle())
	test.ExpectFailure(t, s.SlowMotion())
	test.ExpectFailure(t, s.OverridesActive())
	test.ExpectFailure(t, s.CoreShutdown())
	test.ExpectFailure(t, s.Shutdown())
	test.ExpectFailure(t, s.Inited())
	test.ExpectEquality(t, s.FrameCount(), 0)
	test.ExpectFailure(t, s.Overrides().IsSet(session.OverrideCorePath))
}

func TestOverrideBitset(t *testing.T) {
	var o session.Overrides

	o.Set(session.OverrideVerbosity)
	o.Set(session.OverrideNetplayPort)
	test.ExpectSuccess(t, o.IsSet(session.OverrideVerbosity))
	test.ExpectSuccess(t, o.IsSet(session.OverrideNetplayPort))
	test.ExpectFailure(t, o.IsSet(session.OverrideStatePath))

	o.Unset(session.OverrideVerbosity)
	test.ExpectFailure(t, o.IsSet(session.OverrideVerbosity))

	// device overrides cover the full 128 ports
	o.SetDevice(0)
	o.SetDevice(63)
	o.SetDevice(64)
	o.SetDevice(127)
	test.ExpectSuccess(t, o.IsSetDevice(0))
	test.ExpectSuccess(t, o.IsSetDevice(63))
	test.ExpectSuccess(t, o.IsSetDevice(64))
	test.ExpectSuccess(t, o.IsSetDevice(127))
	test.ExpectFailure(t, o.IsSetDevice(1))

	// out of range ports are ignored
	o.SetDevice(128)
	test.ExpectFailure(t, o.IsSetDevice(128))

	o.UnsetDevice(64)
	test.ExpectFailure(t, o.IsSetDevice(64))

	o.Clear()
	test.ExpectFailure(t, o.IsSet(session.OverrideNetplayPort))
	test.ExpectFailure(t, o.IsSetDevice(127))
}

func TestCoreShutdownFallback(t *testing.T) {
	s := newTestSession(nil)
	test.ExpectSuccess(t, s.Init("", ""))

	// a core requesting shutdown through its environment sets the flag
	s.RequestShutdown()
	test.ExpectSuccess(t, s.CoreShutdown())

	// swapping to the placeholder keeps the session alive
	test.ExpectSuccess(t, s.StartDummyCore())
	test.ExpectSuccess(t, s.DummyCore())
	test.ExpectSuccess(t, s.Core() != nil)

	s.Destroy()
}

func TestStateSlotFloor(t *testing.T) {
	s := newTestSession(nil)
	test.ExpectSuccess(t, s.Init("", ""))

	s.SetStateSlot(2)
	test.ExpectEquality(t, s.StateSlot(), 2)

	s.Dispatch(session.EventStateSlotMinus)
	s.Dispatch(session.EventStateSlotMinus)
	s.Dispatch(session.EventStateSlotMinus)
	test.ExpectEquality(t, s.StateSlot(), 0)

	// slot changes flush the queue so only the final choice is pending
	e, ok := s.Msgs.Pull()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Msg, "State slot: 0")
	_, ok = s.Msgs.Pull()
	test.ExpectFailure(t, ok)

	s.Destroy()
}

func TestMainQuit(t *testing.T) {
	s := newTestSession(nil)
	test.ExpectSuccess(t, s.Init("", ""))

	s.SetOverridesActive(true)
	s.MainQuit()

	test.ExpectSuccess(t, s.Shutdown())
	test.ExpectFailure(t, s.OverridesActive())

	s.Destroy()
}

// the session must satisfy the environment contract it hands to cores.
var _ core.Environment = (*session.Session)(nil)

// the null input driver reports no commands; a sanity check that the test
// drivers are usable for run loop tests elsewhere.
func TestNullInput(t *testing.T) {
	g := drivers.NullGroup()
	g.Input.Poll()
	test.ExpectEquality(t, g.Input.Pressed(), userinput.Bits(0))
}
