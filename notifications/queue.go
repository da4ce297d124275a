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

// Package notifications is the channel through which any part of the
// application surfaces a transient notice to the user. The UI pulls entries
// from the queue and presents them however it sees fit.
//
// The queue is the only structure in the frontend designed for access from
// more than one goroutine. Background producers, the task queue in
// particular, push to it directly.
package notifications

import (
	"sync"
)

// MaxEntries is the fixed capacity of the queue. Pushing to a full queue
// silently drops the oldest entry.
const MaxEntries = 8

// Entry is a single queued notice. Duration is expressed in frames.
type Entry struct {
	Msg      string
	Prio     uint
	Duration uint
}

// Sink receives a synchronous copy of every pushed entry. Used to mirror
// notices to a companion UI.
type Sink interface {
	Notify(msg string, prio uint, duration uint, flush bool)
}

// Queue is a bounded FIFO of notices. The zero value is not usable; use
// NewQueue().
type Queue struct {
	crit    sync.Mutex
	entries []Entry
	sink    Sink
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{
		entries: make([]Entry, 0, MaxEntries),
	}
}

// SetSink registers a secondary sink. A nil sink unregisters it.
func (q *Queue) SetSink(sink Sink) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.sink = sink
}

// Push appends a notice to the queue. If flush is true all pending entries
// are discarded first. Pushing to a full queue drops the oldest entry. Push
// never blocks and never fails.
func (q *Queue) Push(msg string, prio uint, duration uint, flush bool) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.entries == nil {
		// queue has been deinitialised
		return
	}

	if flush {
		q.entries = q.entries[:0]
	}

	if len(q.entries) == MaxEntries {
		copy(q.entries, q.entries[1:])
		q.entries = q.entries[:MaxEntries-1]
	}

	q.entries = append(q.entries, Entry{Msg: msg, Prio: prio, Duration: duration})

	if q.sink != nil {
		q.sink.Notify(msg, prio, duration, flush)
	}
}

// Pull removes and returns the oldest pending notice. The second return
// value is false if the queue is empty.
func (q *Queue) Pull() (Entry, bool) {
	q.crit.Lock()
	defer q.crit.Unlock()

	if len(q.entries) == 0 {
		return Entry{}, false
	}

	e := q.entries[0]
	copy(q.entries, q.entries[1:])
	q.entries = q.entries[:len(q.entries)-1]
	return e, true
}

// Len returns the number of pending notices.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return len(q.entries)
}

// Deinit empties the queue and unregisters the sink. Pushes after Deinit are
// discarded.
func (q *Queue) Deinit() {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.entries = nil
	q.sink = nil
}
