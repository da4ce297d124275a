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

package tasks_test

import (
	"testing"

	"github.com/lodgepole/corehost/fault"
	"github.com/lodgepole/corehost/notifications"
	"github.com/lodgepole/corehost/tasks"
	"github.com/lodgepole/corehost/test"
)

func TestInlineCompletion(t *testing.T) {
	msg := notifications.NewQueue()
	q := tasks.NewQueue(false, msg.Push)

	ran := false
	q.Push(tasks.Task{Title: "Scanning content", Run: func() error {
		ran = true
		return nil
	}})

	test.ExpectSuccess(t, ran)

	e, ok := msg.Pull()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Msg, "Scanning content")

	q.Deinit()
}

func TestThreadedOrderAndDeinit(t *testing.T) {
	msg := notifications.NewQueue()
	q := tasks.NewQueue(true, msg.Push)

	var order []int
	done := make(chan bool)
	for i := 0; i < 3; i++ {
		i := i
		q.Push(tasks.Task{Run: func() error {
			order = append(order, i)
			if i == 2 {
				close(done)
			}
			return nil
		}})
	}

	<-done
	q.Deinit()

	test.ExpectEquality(t, len(order), 3)
	for i, v := range order {
		test.ExpectEquality(t, v, i)
	}
}

func TestFailureNotice(t *testing.T) {
	msg := notifications.NewQueue()
	q := tasks.NewQueue(false, msg.Push)

	q.Push(tasks.Task{Title: "Loading state", Run: func() error {
		return fault.Errorf("no state file")
	}})

	e, ok := msg.Pull()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Msg, "Loading state failed")

	q.Deinit()
}
