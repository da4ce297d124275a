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

// Package pacer regulates how often the simulation core is stepped. The
// Deadline type paces completed steps against a fixed interval and the
// FrameTime type services a core's variable-timestep callback.
package pacer

import (
	"math"
	"time"
)

// Deadline decides whether enough time has passed since the last simulation
// step. The interval between steps is derived from the core's frame rate and
// the fast-forward ratio.
//
// The deadline is a phase accumulator: it only ever advances by whole
// intervals. Scheduling jitter in the caller therefore never accumulates
// into drift.
type Deadline struct {
	last     time.Time
	interval time.Duration
}

// SetRate derives the minimum interval between steps from the core's frame
// rate and the fast-forward ratio. A ratio of zero or less is treated as 1.0.
// The deadline is re-anchored to now.
func (dl *Deadline) SetRate(fps float32, ratio float32, now time.Time) {
	if ratio <= 0 {
		ratio = 1.0
	}
	if fps <= 0 {
		dl.interval = 0
		return
	}

	us := math.Round(1000000.0 / float64(fps*ratio))
	dl.interval = time.Duration(us) * time.Microsecond
	dl.last = now
}

// Interval returns the current minimum interval between steps.
func (dl *Deadline) Interval() time.Duration {
	return dl.interval
}

// Check reports whether the caller must sleep before the next step. When the
// deadline has not yet been reached the required sleep is returned and the
// deadline is left alone so that the caller can retry. When the deadline has
// been reached it advances by exactly one interval.
func (dl *Deadline) Check(now time.Time) (time.Duration, bool) {
	if dl.interval == 0 || dl.last.IsZero() {
		return 0, false
	}

	target := dl.last.Add(dl.interval)
	if now.Before(target) {
		return target.Sub(now), true
	}

	dl.last = dl.last.Add(dl.interval)
	return 0, false
}

// Reset forgets the deadline. The next SetRate() re-anchors it.
func (dl *Deadline) Reset() {
	dl.last = time.Time{}
}
