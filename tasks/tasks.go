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

// Package tasks is the background work queue. Tasks report back to the user
// only through the notification function given at initialisation, which in
// practice is the message queue's Push. Nothing else in the frontend is safe
// to touch from a task.
package tasks

import (
	"sync"

	"github.com/lodgepole/corehost/logger"
)

// Notify is the function a finished task reports through. It matches the
// signature of the message queue's Push.
type Notify func(msg string, prio uint, duration uint, flush bool)

// Task is one unit of background work.
type Task struct {
	// Title appears in the completion notice
	Title string
	Run   func() error
}

// Queue runs tasks in submission order. When threaded, a single worker
// goroutine services the queue; otherwise Push runs the task inline.
type Queue struct {
	notify   Notify
	threaded bool

	jobs chan Task
	wg   sync.WaitGroup
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue(threaded bool, notify Notify) *Queue {
	q := &Queue{
		notify:   notify,
		threaded: threaded,
	}

	if threaded {
		q.jobs = make(chan Task, 16)
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			for t := range q.jobs {
				q.run(t)
			}
		}()
	}

	return q
}

func (q *Queue) run(t Task) {
	err := t.Run()
	if err != nil {
		logger.Logf("tasks", "%s: %v", t.Title, err)
		if q.notify != nil {
			q.notify(t.Title+" failed", 1, 180, false)
		}
		return
	}
	if q.notify != nil && t.Title != "" {
		q.notify(t.Title, 1, 60, false)
	}
}

// Push submits a task. In threaded mode a full queue blocks the caller
// briefly; tasks are expected to be few and coarse.
func (q *Queue) Push(t Task) {
	if t.Run == nil {
		return
	}
	if q.threaded {
		q.jobs <- t
		return
	}
	q.run(t)
}

// Deinit waits for pending tasks to finish and stops the worker. The queue
// cannot be used afterwards.
func (q *Queue) Deinit() {
	if q.threaded {
		close(q.jobs)
		q.wg.Wait()
		q.threaded = false
	}
}
