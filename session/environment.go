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
	"time"

	"github.com/lodgepole/corehost/logger"
)

// the session is the environment it hands to every core it loads.

// RequestShutdown implements the core.Environment interface. The request is
// recorded and honoured at the next frame boundary. Both shutdown flags are
// raised; the run loop distinguishes a core-initiated shutdown from a user
// quit by the core flag.
func (s *Session) RequestShutdown() {
	s.SetShutdown(true)
	s.SetCoreShutdown(true)
}

// SetFrameTime implements the core.Environment interface.
func (s *Session) SetFrameTime(callback func(delta time.Duration), reference time.Duration) {
	s.FrameTime.Callback = callback
	s.FrameTime.Reference = reference
	logger.Logf("session", "core registered frame-time callback (reference %v)", reference)
}

// Message implements the core.Environment interface.
func (s *Session) Message(msg string) {
	s.Msgs.Push(msg, 1, 180, true)
}

// QueueAudio implements the core.Environment interface. Samples are also fed
// to the recorder when one is running.
func (s *Session) QueueAudio(samples []int16) {
	if err := s.Drivers.Audio.Queue(samples); err != nil {
		logger.Logf("session", "audio: %v", err)
	}
	s.Recorder.Write(samples)
}

// RenderFrame implements the core.Environment interface.
func (s *Session) RenderFrame(pix []byte, width int, height int) {
	if err := s.Drivers.Video.Render(pix, width, height); err != nil {
		logger.Logf("session", "video: %v", err)
	}
}
