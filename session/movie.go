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

// Movie is the input movie recorder/player the run loop brackets each
// simulation step with. The session ends when playback reaches the end of a
// movie.
type Movie interface {
	// Active returns true while a movie is being recorded or played.
	Active() bool

	// ReachedEOF returns true when playback has consumed the whole movie.
	ReachedEOF() bool

	// FrameStart and FrameEnd bracket one simulation step.
	FrameStart()
	FrameEnd()

	// ToggleRecord starts or stops recording. The returned notice is
	// surfaced to the user.
	ToggleRecord() string

	Deinit()
}

// NullMovie is a movie system that never records or plays.
type NullMovie struct{}

func (m *NullMovie) Active() bool          { return false }
func (m *NullMovie) ReachedEOF() bool      { return false }
func (m *NullMovie) FrameStart()           {}
func (m *NullMovie) FrameEnd()             {}
func (m *NullMovie) ToggleRecord() string  { return "Movie recording unavailable" }
func (m *NullMovie) Deinit()               {}

// Netplay is the network play subsystem. Only the operations the run loop
// dispatches are defined here; the wire protocol is its own business.
type Netplay interface {
	Init(mode string, address string, port uint16, stateless bool, checkFrames int) error
	Active() bool

	// FlipUsers swaps which side is player one.
	FlipUsers()

	// ToggleWatch moves the local session in or out of spectator mode.
	ToggleWatch()

	Deinit()
}

// NullNetplay is a netplay system that never connects.
type NullNetplay struct{}

func (n *NullNetplay) Init(_ string, _ string, _ uint16, _ bool, _ int) error { return nil }
func (n *NullNetplay) Active() bool                                           { return false }
func (n *NullNetplay) FlipUsers()                                             {}
func (n *NullNetplay) ToggleWatch()                                           {}
func (n *NullNetplay) Deinit()                                                {}
