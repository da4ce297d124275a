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

package pacer_test

import (
	"testing"
	"time"

	"github.com/lodgepole/corehost/pacer"
	"github.com/lodgepole/corehost/test"
)

func TestInterval(t *testing.T) {
	now := time.Unix(100, 0)
	dl := &pacer.Deadline{}

	// 60fps at native rate
	dl.SetRate(60, 1.0, now)
	test.ExpectEquality(t, dl.Interval(), 16667*time.Microsecond)

	// fast-forward doubles the step rate
	dl.SetRate(60, 2.0, now)
	test.ExpectEquality(t, dl.Interval(), 8333*time.Microsecond)

	// ratio of zero means native rate
	dl.SetRate(60, 0, now)
	test.ExpectEquality(t, dl.Interval(), 16667*time.Microsecond)

	dl.SetRate(50, 1.0, now)
	test.ExpectEquality(t, dl.Interval(), 20000*time.Microsecond)
}

func TestDeadlineSleep(t *testing.T) {
	now := time.Unix(100, 0)
	dl := &pacer.Deadline{}
	dl.SetRate(100, 1.0, now) // 10ms interval

	// too early. sleep reported, deadline not advanced
	sleep, wait := dl.Check(now.Add(4 * time.Millisecond))
	test.ExpectSuccess(t, wait)
	test.ExpectEquality(t, sleep, 6*time.Millisecond)

	// retrying without stepping still reports the remainder
	sleep, wait = dl.Check(now.Add(9 * time.Millisecond))
	test.ExpectSuccess(t, wait)
	test.ExpectEquality(t, sleep, 1*time.Millisecond)

	// deadline reached
	_, wait = dl.Check(now.Add(10 * time.Millisecond))
	test.ExpectFailure(t, wait)
}

// deadlines only ever differ from the anchor by whole intervals, no matter
// how irregular the observed times are.
func TestDeadlineNoDrift(t *testing.T) {
	anchor := time.Unix(100, 0)
	dl := &pacer.Deadline{}
	dl.SetRate(100, 1.0, anchor) // 10ms interval

	// deliberately jittered observation times, all late
	jitter := []time.Duration{3, 1, 7, 2, 9, 4, 6, 8, 5, 3}

	now := anchor
	for i, j := range jitter {
		now = now.Add(10*time.Millisecond + j*time.Millisecond)
		_, wait := dl.Check(now)
		test.ExpectFailure(t, wait)

		// the next deadline must be an exact multiple of the interval from
		// the anchor
		sleep, wait := dl.Check(now)
		if wait {
			target := now.Add(sleep)
			elapsed := target.Sub(anchor)
			if elapsed%(10*time.Millisecond) != 0 {
				t.Fatalf("deadline drifted after %d steps: %v from anchor", i+1, elapsed)
			}
		}
	}
}

func TestFrameTimeFirstCallClamped(t *testing.T) {
	var got time.Duration
	ft := &pacer.FrameTime{
		Callback:  func(d time.Duration) { got = d },
		Reference: 16 * time.Millisecond,
	}

	now := time.Unix(100, 0)

	// first call uses the reference interval
	ft.Step(now, false, false, 1.0)
	test.ExpectEquality(t, got, 16*time.Millisecond)

	// subsequent calls use the measured delta
	ft.Step(now.Add(20*time.Millisecond), false, false, 1.0)
	test.ExpectEquality(t, got, 20*time.Millisecond)
}

func TestFrameTimeLocked(t *testing.T) {
	var got time.Duration
	ft := &pacer.FrameTime{
		Callback:  func(d time.Duration) { got = d },
		Reference: 16 * time.Millisecond,
	}

	now := time.Unix(100, 0)
	ft.Step(now, false, false, 1.0)
	ft.Step(now.Add(20*time.Millisecond), false, false, 1.0)

	// locked frames always see the reference interval
	ft.Step(now.Add(40*time.Millisecond), true, false, 1.0)
	test.ExpectEquality(t, got, 16*time.Millisecond)

	// the locked frame also suppressed the timestamp, so the next unlocked
	// frame is treated as a first call
	ft.Step(now.Add(500*time.Millisecond), false, false, 1.0)
	test.ExpectEquality(t, got, 16*time.Millisecond)
}

func TestFrameTimeSlowMotion(t *testing.T) {
	var got time.Duration
	ft := &pacer.FrameTime{
		Callback:  func(d time.Duration) { got = d },
		Reference: 16 * time.Millisecond,
	}

	now := time.Unix(100, 0)
	ft.Step(now, false, false, 1.0)

	ft.Step(now.Add(30*time.Millisecond), false, true, 3.0)
	test.ExpectEquality(t, got, 10*time.Millisecond)
}

func TestFrameTimeInactive(t *testing.T) {
	ft := &pacer.FrameTime{}
	test.ExpectFailure(t, ft.Active())

	// no callback, no panic
	ft.Step(time.Unix(100, 0), false, false, 1.0)
}
