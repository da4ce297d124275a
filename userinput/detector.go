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

package userinput

// Detector converts level-triggered command bits into edge-triggered events.
// The previous frame's state is kept in a fixed table indexed by Command and
// lives for the whole session.
//
// A single physical press yields exactly one trigger, no matter how many
// frames the command remains held.
type Detector struct {
	prev      [NumCommands]bool
	triggered [NumCommands]bool
	released  [NumCommands]bool
	held      Bits
}

// Sample the pressed commands for this frame. Sample must be called exactly
// once per frame, before any call to Triggered(), Released() or Held().
func (dt *Detector) Sample(pressed Bits) {
	for c := Command(0); c < NumCommands; c++ {
		p := pressed.IsSet(c)

		if c == Screenshot {
			// screenshot fires on the second consecutive pressed frame
			// rather than on the rising edge. long-standing behaviour that
			// users' muscle memory depends on, so it stays
			dt.triggered[c] = p && dt.prev[c]
		} else {
			dt.triggered[c] = p && !dt.prev[c]
		}

		dt.released[c] = !p && dt.prev[c]
		dt.prev[c] = p
	}
	dt.held = pressed
}

// Triggered returns true if the command became pressed this frame.
func (dt *Detector) Triggered(c Command) bool {
	return dt.triggered[c]
}

// Released returns true if the command became unpressed this frame.
func (dt *Detector) Released(c Command) bool {
	return dt.released[c]
}

// Held returns true if the command is pressed this frame, regardless of
// edges.
func (dt *Detector) Held(c Command) bool {
	return dt.held.IsSet(c)
}

// Pressed returns the raw bits from the most recent Sample().
func (dt *Detector) Pressed() Bits {
	return dt.held
}

// Reset forgets all previous-frame state.
func (dt *Detector) Reset() {
	*dt = Detector{}
}
