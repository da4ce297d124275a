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

package pacer

import (
	"time"
)

// FrameTime services a core's variable-timestep callback. The core registers
// the callback together with a reference interval, the delta between
// successive frames is measured by the host and handed to the callback just
// before each step.
type FrameTime struct {
	Callback  func(delta time.Duration)
	Reference time.Duration

	// timestamp of the previous callback. the zero value means the next call
	// is treated as the first
	last time.Time
}

// Active returns true if a callback has been registered.
func (ft *FrameTime) Active() bool {
	return ft.Callback != nil
}

// Step measures the time since the previous call and invokes the callback.
//
// When locked is true (the session is paused, input is in non-blocking turbo
// mode, or output recording is running) the measured delta is replaced with
// the reference interval and the last-callback timestamp is suppressed. The
// core then sees a perfectly regular timestep, which keeps captures and
// lockstep sessions deterministic.
//
// Slow motion divides the measured delta by the given ratio. It has no
// effect while locked.
func (ft *FrameTime) Step(now time.Time, locked bool, slowmotion bool, slowRatio float32) {
	if ft.Callback == nil {
		return
	}

	delta := now.Sub(ft.last)

	if ft.last.IsZero() || locked {
		delta = ft.Reference
	} else if slowmotion && slowRatio > 0 {
		delta = time.Duration(float64(delta) / float64(slowRatio))
	}

	ft.last = now
	if locked {
		ft.last = time.Time{}
	}

	ft.Callback(delta)
}

// Free unregisters the callback and forgets all timing state.
func (ft *FrameTime) Free() {
	*ft = FrameTime{}
}
