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

package rewind_test

import (
	"fmt"
	"testing"

	"github.com/lodgepole/corehost/rewind"
	"github.com/lodgepole/corehost/test"
)

// a fake core whose entire state is a frame number.
type fakeCore struct {
	frame int
}

func (c *fakeCore) capture() ([]byte, error) {
	return []byte(fmt.Sprintf("%d", c.frame)), nil
}

func (c *fakeCore) restore(d []byte) error {
	_, err := fmt.Sscanf(string(d), "%d", &c.frame)
	return err
}

func TestRewindRestoresInReverseOrder(t *testing.T) {
	c := &fakeCore{}
	rw := rewind.New(8, c.capture, c.restore)

	for c.frame = 1; c.frame <= 5; c.frame++ {
		rw.Frame(1)
	}

	_, _, ok := rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.frame, 5)
	test.ExpectSuccess(t, rw.Reversing())

	_, _, ok = rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.frame, 4)

	// releasing the command stops the reversal
	_, _, ok = rw.Check(false, false)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, rw.Reversing())
}

func TestExhaustedBuffer(t *testing.T) {
	c := &fakeCore{}
	rw := rewind.New(4, c.capture, c.restore)

	c.frame = 1
	rw.Frame(1)

	msg, _, ok := rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, msg, "Rewinding")
	test.ExpectSuccess(t, rw.Reversing())

	// the command is still held but there is nothing left to restore. the
	// reversing state must not outlive the buffer
	msg, _, ok = rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, msg, "Reached end of rewind buffer")
	test.ExpectFailure(t, rw.Reversing())
}

func TestGranularity(t *testing.T) {
	c := &fakeCore{}
	rw := rewind.New(8, c.capture, c.restore)

	// with granularity 3, only every third frame is captured
	for c.frame = 1; c.frame <= 9; c.frame++ {
		rw.Frame(3)
	}

	_, _, ok := rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.frame, 9)

	_, _, ok = rw.Check(true, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, c.frame, 6)
}

func TestDisabled(t *testing.T) {
	rw := rewind.New(0, nil, nil)

	// a disabled rewind is a nil pointer and every method is a no-op
	rw.Frame(1)
	_, _, ok := rw.Check(true, false)
	test.ExpectFailure(t, ok)
	rw.Deinit()
}
