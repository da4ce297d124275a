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

package userinput_test

import (
	"testing"

	"github.com/lodgepole/corehost/test"
	"github.com/lodgepole/corehost/userinput"
)

// one press-release cycle gives exactly one trigger no matter how long the
// command is held.
func TestSingleTriggerPerPress(t *testing.T) {
	for c := userinput.Command(0); c < userinput.NumCommands; c++ {
		if c == userinput.Screenshot {
			continue
		}

		dt := &userinput.Detector{}
		var b userinput.Bits
		b.Set(c)

		ct := 0
		for i := 0; i < 10; i++ {
			dt.Sample(b)
			if dt.Triggered(c) {
				ct++
			}
		}
		dt.Sample(userinput.Bits(0))
		if dt.Triggered(c) {
			ct++
		}

		if ct != 1 {
			t.Errorf("command %q triggered %d times for one press", c, ct)
		}
		test.ExpectSuccess(t, dt.Released(c))
	}
}

// screenshot triggers on the second of two consecutive pressed frames.
func TestScreenshotSecondFrame(t *testing.T) {
	dt := &userinput.Detector{}
	var b userinput.Bits
	b.Set(userinput.Screenshot)

	dt.Sample(b)
	test.ExpectFailure(t, dt.Triggered(userinput.Screenshot))

	dt.Sample(b)
	test.ExpectSuccess(t, dt.Triggered(userinput.Screenshot))

	dt.Sample(b)
	test.ExpectSuccess(t, dt.Triggered(userinput.Screenshot))

	dt.Sample(userinput.Bits(0))
	test.ExpectFailure(t, dt.Triggered(userinput.Screenshot))

	// a tap lasting a single frame never fires
	dt.Sample(b)
	test.ExpectFailure(t, dt.Triggered(userinput.Screenshot))
	dt.Sample(userinput.Bits(0))
	test.ExpectFailure(t, dt.Triggered(userinput.Screenshot))
}

func TestHeldAndReleased(t *testing.T) {
	dt := &userinput.Detector{}
	var b userinput.Bits
	b.Set(userinput.Rewind)
	b.Set(userinput.SlowMotion)

	dt.Sample(b)
	test.ExpectSuccess(t, dt.Held(userinput.Rewind))
	test.ExpectSuccess(t, dt.Held(userinput.SlowMotion))
	test.ExpectFailure(t, dt.Held(userinput.Quit))

	b.Clear(userinput.Rewind)
	dt.Sample(b)
	test.ExpectFailure(t, dt.Held(userinput.Rewind))
	test.ExpectSuccess(t, dt.Released(userinput.Rewind))
	test.ExpectFailure(t, dt.Released(userinput.SlowMotion))
}

func TestReset(t *testing.T) {
	dt := &userinput.Detector{}
	var b userinput.Bits
	b.Set(userinput.Quit)

	dt.Sample(b)
	test.ExpectSuccess(t, dt.Triggered(userinput.Quit))

	// after a reset the same held command triggers again
	dt.Reset()
	dt.Sample(b)
	test.ExpectSuccess(t, dt.Triggered(userinput.Quit))
}
